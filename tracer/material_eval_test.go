package tracer

import (
	"math"
	"testing"

	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/types"
)

func TestOpaqueAttenuation(t *testing.T) {
	type spec struct {
		opacity float32
		exp     float32
	}
	specs := []spec{
		spec{0, 1},
		spec{0.25, 0.75},
		spec{1, 0},
	}

	for index, s := range specs {
		att := opaqueAttenuation(material.OpacityInteraction{Opacity: s.opacity})
		if !near(att[0], s.exp) || !near(att[1], s.exp) || !near(att[2], s.exp) {
			t.Fatalf("[spec %d] expected attenuation %f; got %v", index, s.exp, att)
		}
	}
}

func TestThinWallFalloff(t *testing.T) {
	it := material.TranslucentInteraction{
		Transmittance: types.Vec3{0.25, 0.5, 1},
		Thickness:     -2,
	}

	// Normal incidence: path length equals the shell thickness.
	att := translucentAttenuation(it, types.Vec3{0, 0, 1}, types.Vec3{0, 0, -1})
	if !near(att[0], 0.0625) || !near(att[1], 0.25) || !near(att[2], 1) {
		t.Fatalf("expected transmittance^2 at normal incidence; got %v", att)
	}

	// Oblique incidence lengthens the path through the shell.
	cos := float32(math.Sqrt(0.5))
	dir := types.Vec3{cos, 0, -cos}
	att = translucentAttenuation(it, types.Vec3{0, 0, 1}, dir)
	expected := float32(math.Pow(0.5, float64(2/cos)))
	if !near(att[1], expected) {
		t.Fatalf("expected oblique falloff %f; got %f", expected, att[1])
	}
}

func TestThinWallGrazingClamp(t *testing.T) {
	it := material.TranslucentInteraction{
		Transmittance: types.Vec3{0.25, 0.5, 1},
		Thickness:     -1,
	}

	// A grazing ray perpendicular to the normal would infer an infinite
	// path length without the cosine clamp.
	att := translucentAttenuation(it, types.Vec3{0, 0, 1}, types.Vec3{1, 0, 0})
	if att[0] < 0 || att[0] > 1e-6 {
		t.Fatalf("expected near-total absorption at grazing incidence; got %f", att[0])
	}
	// A unit transmittance channel never attenuates regardless of path
	// length.
	if !near(att[2], 1) {
		t.Fatalf("expected the unit channel to stay 1; got %f", att[2])
	}
}

func TestThickMediumFullTransmission(t *testing.T) {
	it := material.TranslucentInteraction{
		Transmittance: types.Vec3{0.25, 0.5, 1},
		Thickness:     0.5,
	}

	att := translucentAttenuation(it, types.Vec3{0, 0, 1}, types.Vec3{0, 0, -1})
	if !near(att[0], 1) || !near(att[1], 1) || !near(att[2], 1) {
		t.Fatalf("expected thick media to contribute no occlusion; got %v", att)
	}
}
