package types

import (
	"math"
	"testing"
)

func TestTranslate4(t *testing.T) {
	m := Translate4(Vec3{1, 2, 3})

	got := m.TransformPoint(Vec3{10, 20, 30})
	exp := Vec3{11, 22, 33}
	if got != exp {
		t.Fatalf("expected transformed point %v; got %v", exp, got)
	}

	// Directions ignore translation.
	dir := m.TransformDirection(Vec3{1, 0, 0})
	if dir != (Vec3{1, 0, 0}) {
		t.Fatalf("expected direction to be unaffected by translation; got %v", dir)
	}
}

func TestMat4Mul4(t *testing.T) {
	a := Translate4(Vec3{1, 0, 0})
	b := Translate4(Vec3{0, 2, 0})

	got := a.Mul4(b).TransformPoint(Vec3{0, 0, 0})
	exp := Vec3{1, 2, 0}
	if got != exp {
		t.Fatalf("expected composed translation %v; got %v", exp, got)
	}
}

func TestQuatRotationMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))

	got := q.Rotate(Vec3{1, 0, 0})
	exp := Vec3{0, 0, -1}
	for axis := 0; axis < 3; axis++ {
		if math.Abs(float64(got[axis]-exp[axis])) > 1e-6 {
			t.Fatalf("expected rotation %v; got %v", exp, got)
		}
	}
}

func TestLuminance(t *testing.T) {
	if got := (Vec3{1, 1, 1}).Luminance(); math.Abs(float64(got-1)) > 1e-6 {
		t.Fatalf("expected white luminance 1; got %f", got)
	}
	if got := (Vec3{0, 1, 0}).Luminance(); math.Abs(float64(got-0.7152)) > 1e-6 {
		t.Fatalf("expected green luminance 0.7152; got %f", got)
	}
}
