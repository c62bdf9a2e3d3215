package tracer

import (
	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

// Decide how much light one candidate intersection along a visibility
// ray attenuates. Pure and total: every branch yields a value, there
// is no failure path.
//
// Queries against the previous frame resolve the candidate surface
// through the surface mapping first. Unmappable candidates - dynamic
// non-persistent instances or stale indices - contribute no occlusion:
// in a temporally reused estimator a false shadow reads far worse than
// a missed one, so the bias runs toward under-occlusion.
func handleVisibilityVertex(q *VisibilityQuery, rayDir types.Vec3, c *Candidate) types.Vec3 {
	sc := q.Scene
	surfIndex := c.SurfaceIndex

	if q.Frame == PreviousFrame {
		if q.Prev == nil || int(surfIndex) >= len(q.Prev.SurfaceList) {
			return fullTransmission
		}
		if q.Prev.SurfaceList[surfIndex].Flags&scene.FlagDynamic != 0 {
			return fullTransmission
		}
		curr := q.Mapping.Lookup(surfIndex)
		if curr == scene.InvalidSurfaceIndex {
			return fullTransmission
		}
		surfIndex = uint32(curr)
	}

	surf := &sc.SurfaceList[surfIndex]
	if surf.Flags&scene.FlagDecal != 0 {
		// Decals never cast shadows.
		return fullTransmission
	}
	if surf.Clipped(c.Position) {
		return fullTransmission
	}

	switch mat := sc.MaterialList[surf.MaterialIndex].(type) {
	case material.Opaque:
		return opaqueAttenuation(mat.Evaluate(c.UV, sc.Mask(mat.MaskTexture)))
	case material.Translucent:
		if !q.Mode.Has(EnableTranslucent) {
			return fullTransmission
		}
		return translucentAttenuation(mat.Evaluate(), c.Normal, rayDir)
	default:
		// Portals are handled explicitly by the tracer and decal
		// materials never occlude; anything unrecognized falls back
		// to full transmission.
		return fullTransmission
	}
}
