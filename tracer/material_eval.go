package tracer

import (
	"math"

	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/types"
)

var fullTransmission = types.Vec3{1, 1, 1}

// Minimum |cos| between a ray and a thin-walled surface normal when
// inferring the traversal distance through the shell. Prevents the
// inferred path length from exploding at grazing angles.
const minThinWallCosine float32 = 0.01

// Get the attenuation contributed by an opaque material interaction.
func opaqueAttenuation(it material.OpacityInteraction) types.Vec3 {
	a := 1.0 - it.Opacity
	return types.Vec3{a, a, a}
}

// Get the attenuation contributed by a translucent material interaction.
//
// Thin-walled surfaces (negative thickness sentinel) approximate the
// traversal distance through the shell from the surface orientation
// and apply a Beer-Lambert falloff against the material transmittance
// at unit reference thickness. The medium is never actually traced.
//
// Thick media cannot be resolved by an unordered query - the true path
// length through the volume is unknowable without ordered traversal -
// so they contribute no occlusion rather than a wrong estimate.
func translucentAttenuation(it material.TranslucentInteraction, normal, dir types.Vec3) types.Vec3 {
	if it.Thickness >= 0 {
		return fullTransmission
	}

	cos := normal.Dot(dir)
	if cos < 0 {
		cos = -cos
	}
	if cos < minThinWallCosine {
		cos = minThinWallCosine
	}
	distance := -it.Thickness / cos

	// transmittance^distance == exp(-extinction * distance) with the
	// extinction coefficient derived at unit reference thickness.
	return types.Vec3{
		channelFalloff(it.Transmittance[0], distance),
		channelFalloff(it.Transmittance[1], distance),
		channelFalloff(it.Transmittance[2], distance),
	}
}

func channelFalloff(transmittance, distance float32) float32 {
	if transmittance <= 0 {
		return 0
	}
	if transmittance >= 1 {
		return 1
	}
	return float32(math.Pow(float64(transmittance), float64(distance)))
}
