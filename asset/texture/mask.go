package texture

import (
	"math"

	"github.com/achilleasa/penumbra/types"
)

// A single channel alpha mask. Masks modulate surface opacity for
// alpha-tested geometry and define the visual cutout of portals. Mask
// data is stored uncompressed inside the scene snapshot so lookups
// never touch the filesystem.
type Mask struct {
	Width  uint32
	Height uint32

	// Per-texel alpha values in [0, 1].
	Alpha []float32

	// Optional per-texel flags marking texels that belong to the
	// logical inside region of a portal cutout. A portal's visual
	// mask can be smaller than its physical rectangle.
	Inside []bool
}

// Create a uniform mask with the given alpha value covering the inside region.
func UniformMask(alpha float32) *Mask {
	return &Mask{
		Width:  1,
		Height: 1,
		Alpha:  []float32{alpha},
		Inside: []bool{true},
	}
}

// Map a UV coordinate to a texel offset using wrap-around addressing.
func (m *Mask) texelOffset(uv types.Vec2) uint32 {
	u := uv[0] - float32(math.Floor(float64(uv[0])))
	v := uv[1] - float32(math.Floor(float64(uv[1])))

	x := uint32(u * float32(m.Width))
	if x >= m.Width {
		x = m.Width - 1
	}
	y := uint32(v * float32(m.Height))
	if y >= m.Height {
		y = m.Height - 1
	}
	return y*m.Width + x
}

// Sample the mask alpha at a UV coordinate. Empty masks are treated as
// fully opaque.
func (m *Mask) Sample(uv types.Vec2) float32 {
	if m == nil || len(m.Alpha) == 0 {
		return 1.0
	}
	return m.Alpha[m.texelOffset(uv)]
}

// Check whether a UV coordinate falls inside the mask's logical inside
// region. Masks without region flags treat every texel as inside.
func (m *Mask) SampleInside(uv types.Vec2) bool {
	if m == nil || len(m.Inside) == 0 {
		return true
	}
	return m.Inside[m.texelOffset(uv)]
}
