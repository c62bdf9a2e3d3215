package tracer

import (
	"github.com/achilleasa/penumbra/types"
)

// Distance to offset probe ray origins off the spawning surface so the
// first traversal step does not re-intersect it.
const surfaceBias float32 = 1e-3

// A probe ray. Apart from the two portal-induced rewrites performed by
// the visibility tracer, rays are immutable once traversal starts. The
// cone radius and spread angle track footprint growth for texture
// detail selection by downstream consumers.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	TMax   float32

	ConeRadius  float32
	SpreadAngle float32
}

// Create a ray from an origin, a unit direction and a maximum travel
// distance.
func NewRay(origin, dir types.Vec3, tMax float32) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		TMax:   tMax,
	}
}

// Get the world position at parametric distance t along the ray.
func (r *Ray) PointAt(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// A surface interaction derived from one candidate intersection. It is
// scoped to a single evaluation and never persisted.
type SurfaceInteraction struct {
	Position     types.Vec3
	Normal       types.Vec3
	UV           types.Vec2
	SurfaceIndex uint32
}

// Create a probe ray connecting a shaded surface point to a target
// point. The origin is biased off the surface along its normal to
// avoid immediate self-intersection; penetrate flips the bias to the
// far side for rays that must start inside the surface (e.g.
// transmission rays). The maximum travel distance is the distance to
// the target scaled by tMaxScale.
func NewProbeRay(si *SurfaceInteraction, target types.Vec3, penetrate bool, tMaxScale float32) Ray {
	toTarget := target.Sub(si.Position)
	dist := toTarget.Len()
	dir := toTarget.Normalize()

	bias := si.Normal
	if bias.Dot(dir) < 0 {
		bias = bias.Mul(-1)
	}
	if penetrate {
		bias = bias.Mul(-1)
	}

	return Ray{
		Origin: si.Position.Add(bias.Mul(surfaceBias)),
		Dir:    dir,
		TMax:   dist * tMaxScale,
	}
}
