package tracer

import (
	"math"

	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

// Sentinel distance reported for portal test branches that produce no
// usable intersection. Callers must check the transparency before
// consuming the returned distance.
const portalMissT float32 = math.MaxFloat32

// Intersect a ray against a portal rectangle and evaluate how much
// light the portal surface transmits at the hit point.
//
// The ray must approach the portal's front face; grazing, receding and
// degenerate (parallel, NaN parameter) configurations all report zero
// transparency. A plane hit is projected into the portal's local 2D
// basis; hits outside the [-1,1]^2 rectangle report zero transparency.
// Inside the rectangle the portal material's mask decides: transparency
// is 1-alpha, forced to zero when the mask marks the point outside the
// portal's logical inside region (the visual cutout can be smaller
// than the physical rectangle).
func rayPortalTransparency(ray *Ray, portal *scene.Portal, sc *scene.Scene) (transparency float32, t float32) {
	denom := ray.Dir.Dot(portal.Normal)
	if denom >= 0 {
		return 0, portalMissT
	}

	t = portal.Centroid.Sub(ray.Origin).Dot(portal.Normal) / denom
	if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
		t = portalMissT
	}
	if t < 0 || t > ray.TMax {
		return 0, t
	}

	rel := ray.PointAt(t).Sub(portal.Centroid)
	u := rel.Dot(portal.XAxis) * portal.InvHalfExtents[0]
	v := rel.Dot(portal.YAxis) * portal.InvHalfExtents[1]
	if u < -1 || u > 1 || v < -1 || v > 1 {
		return 0, t
	}

	mat, isPortalMat := sc.MaterialList[portal.MaterialIndex].(material.RayPortal)
	if !isPortalMat {
		return 0, t
	}

	it := mat.Evaluate(portalLocalUV(u, v), sc.Mask(mat.MaskTexture))
	if !it.InsidePortal {
		return 0, t
	}
	return 1.0 - it.MaskAlpha, t
}

// Map portal-local [-1,1] rectangle coordinates to [0,1] UV space.
func portalLocalUV(u, v float32) types.Vec2 {
	return types.Vec2{u*0.5 + 0.5, v*0.5 + 0.5}
}
