package tracer

import (
	"testing"

	"github.com/achilleasa/penumbra/types"
)

func TestProbeRayBias(t *testing.T) {
	si := &SurfaceInteraction{
		Position: types.Vec3{0, 0, 0},
		Normal:   types.Vec3{0, 0, 1},
	}

	// Target on the normal side: the origin is biased along the normal.
	ray := NewProbeRay(si, types.Vec3{0, 0, 10}, false, 1)
	if !near(ray.Origin[2], surfaceBias) {
		t.Fatalf("expected the origin biased along the normal; got %v", ray.Origin)
	}
	if !near(ray.TMax, 10-0) {
		t.Fatalf("expected travel limit 10; got %f", ray.TMax)
	}

	// Target behind the surface: the bias flips to the ray side.
	ray = NewProbeRay(si, types.Vec3{0, 0, -10}, false, 1)
	if !near(ray.Origin[2], -surfaceBias) {
		t.Fatalf("expected the origin biased toward the target side; got %v", ray.Origin)
	}

	// Penetrating rays start on the far side instead.
	ray = NewProbeRay(si, types.Vec3{0, 0, 10}, true, 1)
	if !near(ray.Origin[2], -surfaceBias) {
		t.Fatalf("expected a penetrating origin on the far side; got %v", ray.Origin)
	}
}

func TestProbeRayTravelScale(t *testing.T) {
	si := &SurfaceInteraction{
		Position: types.Vec3{0, 0, 0},
		Normal:   types.Vec3{0, 1, 0},
	}

	ray := NewProbeRay(si, types.Vec3{0, 4, 0}, false, 0.5)
	if !near(ray.TMax, 2) {
		t.Fatalf("expected the travel limit scaled to 2; got %f", ray.TMax)
	}
	if !nearVec(ray.Dir, types.Vec3{0, 1, 0}) {
		t.Fatalf("expected a unit direction toward the target; got %v", ray.Dir)
	}
}

func TestPointAt(t *testing.T) {
	ray := NewRay(types.Vec3{1, 2, 3}, types.Vec3{0, 0, -1}, 10)
	if !nearVec(ray.PointAt(4), types.Vec3{1, 2, -1}) {
		t.Fatalf("expected (1, 2, -1); got %v", ray.PointAt(4))
	}
}
