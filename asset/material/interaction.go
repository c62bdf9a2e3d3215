package material

import (
	"github.com/achilleasa/penumbra/asset/texture"
	"github.com/achilleasa/penumbra/types"
)

// The decoded interaction of an opaque material with a surface hit.
type OpacityInteraction struct {
	Opacity float32
}

// The decoded interaction of a translucent material with a surface hit.
type TranslucentInteraction struct {
	Transmittance types.Vec3
	Thickness     float32
}

// The decoded interaction of a portal material with a point on the
// portal plane.
type PortalInteraction struct {
	MaskAlpha    float32
	InsidePortal bool
}

// Evaluate the opaque material at a surface UV. The mask argument is
// the resolved MaskTexture entry or nil when the material is unmasked.
func (m Opaque) Evaluate(uv types.Vec2, mask *texture.Mask) OpacityInteraction {
	opacity := m.Opacity * mask.Sample(uv)
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return OpacityInteraction{Opacity: opacity}
}

// Evaluate the translucent material. Transmittance parameters do not
// vary across the surface.
func (m Translucent) Evaluate() TranslucentInteraction {
	return TranslucentInteraction{
		Transmittance: m.Transmittance,
		Thickness:     m.Thickness,
	}
}

// Evaluate the portal material at a portal-local UV. The stored 3x2
// texture transform is applied before sampling the mask.
func (m RayPortal) Evaluate(uv types.Vec2, mask *texture.Mask) PortalInteraction {
	tuv := types.Vec2{
		m.UVTransform[0]*uv[0] + m.UVTransform[1]*uv[1] + m.UVTransform[4],
		m.UVTransform[2]*uv[0] + m.UVTransform[3]*uv[1] + m.UVTransform[5],
	}

	return PortalInteraction{
		MaskAlpha:    mask.Sample(tuv),
		InsidePortal: mask.SampleInside(tuv),
	}
}
