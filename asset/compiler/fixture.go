package compiler

import (
	"math"

	"github.com/achilleasa/penumbra/asset/compiler/input"
	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/asset/texture"
	"github.com/achilleasa/penumbra/types"
)

// Indices of the demo scene surfaces. Exported so that tests and the
// CLI probe command can target specific geometry.
const (
	DemoSurfaceFloor = iota
	DemoSurfaceWall
	DemoSurfaceThinPane
	DemoSurfaceThickPane
	DemoSurfaceDecal
	DemoSurfaceDynamic
)

// Assemble the built-in demo scene: a floor and back wall, a thin and
// a thick translucent pane, a decal overlay, a dynamically instanced
// blocker and a linked portal pair on the +X/-X sides of the room.
func DemoScene() *input.Scene {
	materials := []material.Material{
		material.Opaque{Opacity: 1.0, MaskTexture: -1},
		material.Translucent{Transmittance: types.Vec3{0.6, 0.9, 0.7}, Thickness: -0.1},
		material.Translucent{Transmittance: types.Vec3{0.2, 0.3, 0.9}, Thickness: 0.5},
		material.Decal{},
		material.RayPortal{MaskTexture: 0, UVTransform: material.IdentityUVTransform},
	}

	masks := []*texture.Mask{
		circularPortalMask(32),
	}

	surfaces := []scene.Surface{
		{MaterialIndex: 0, Mask: scene.MaskOpaqueGeometry},
		{MaterialIndex: 0, Mask: scene.MaskOpaqueGeometry},
		{MaterialIndex: 1, Mask: scene.MaskTranslucent},
		{MaterialIndex: 2, Mask: scene.MaskTranslucent},
		{MaterialIndex: 3, Mask: scene.MaskDecal, Flags: scene.FlagDecal},
		{MaterialIndex: 0, Mask: scene.MaskOpaqueGeometry, Flags: scene.FlagDynamic},
	}

	var prims []*input.Primitive
	// Floor and back wall.
	prims = append(prims, quad(
		types.Vec3{-10, 0, 10}, types.Vec3{10, 0, 10},
		types.Vec3{10, 0, -10}, types.Vec3{-10, 0, -10},
		DemoSurfaceFloor)...)
	prims = append(prims, quad(
		types.Vec3{-10, 0, -10}, types.Vec3{10, 0, -10},
		types.Vec3{10, 8, -10}, types.Vec3{-10, 8, -10},
		DemoSurfaceWall)...)
	// Thin and thick translucent panes across the room center.
	prims = append(prims, quad(
		types.Vec3{-2, 0, -2}, types.Vec3{2, 0, -2},
		types.Vec3{2, 4, -2}, types.Vec3{-2, 4, -2},
		DemoSurfaceThinPane)...)
	prims = append(prims, quad(
		types.Vec3{-2, 0, -4}, types.Vec3{2, 0, -4},
		types.Vec3{2, 4, -4}, types.Vec3{-2, 4, -4},
		DemoSurfaceThickPane)...)
	// Decal overlay sitting just in front of the wall.
	prims = append(prims, quad(
		types.Vec3{-1, 1, -9.99}, types.Vec3{1, 1, -9.99},
		types.Vec3{1, 3, -9.99}, types.Vec3{-1, 3, -9.99},
		DemoSurfaceDecal)...)
	// A dynamically instanced blocker.
	prims = append(prims, quad(
		types.Vec3{3, 0, -6}, types.Vec3{5, 0, -6},
		types.Vec3{5, 2, -6}, types.Vec3{3, 2, -6},
		DemoSurfaceDynamic)...)

	// Portal A faces +X; portal B is portal A's basis spun half a
	// turn around the Y axis and shifted to the other side.
	portalAX := types.Vec3{0, 0, -1}
	portalAY := types.Vec3{0, 1, 0}
	portalAN := types.Vec3{1, 0, 0}
	spin := types.QuatFromAxisAngle(types.Vec3{0, 1, 0}, float32(math.Pi))
	portals := []input.Portal{
		{
			Centroid:      types.Vec3{-5, 2, 0},
			Normal:        portalAN,
			XAxis:         portalAX,
			YAxis:         portalAY,
			HalfExtents:   types.Vec2{1, 1.5},
			MaterialIndex: 4,
			PairIndex:     1,
		},
		{
			Centroid:      types.Vec3{5, 2, 0},
			Normal:        spin.Rotate(portalAN),
			XAxis:         spin.Rotate(portalAX),
			YAxis:         spin.Rotate(portalAY),
			HalfExtents:   types.Vec2{1, 1.5},
			MaterialIndex: 4,
			PairIndex:     0,
		},
	}

	return &input.Scene{
		Primitives: prims,
		Surfaces:   surfaces,
		Materials:  materials,
		Masks:      masks,
		Portals:    portals,
	}
}

// Split a quad defined by four counter-clockwise corners into two
// triangle primitives.
func quad(v0, v1, v2, v3 types.Vec3, surfaceIndex uint32) []*input.Primitive {
	return []*input.Primitive{
		{
			Vertices:     [3]types.Vec3{v0, v1, v2},
			UVs:          [3]types.Vec2{{0, 0}, {1, 0}, {1, 1}},
			SurfaceIndex: surfaceIndex,
		},
		{
			Vertices:     [3]types.Vec3{v0, v2, v3},
			UVs:          [3]types.Vec2{{0, 0}, {1, 1}, {0, 1}},
			SurfaceIndex: surfaceIndex,
		},
	}
}

// Build a circular portal cutout mask. Texels inside the inscribed
// circle pass light through; the rest is opaque portal frame outside
// the logical inside region.
func circularPortalMask(size uint32) *texture.Mask {
	mask := &texture.Mask{
		Width:  size,
		Height: size,
		Alpha:  make([]float32, size*size),
		Inside: make([]bool, size*size),
	}

	center := float32(size-1) * 0.5
	radius := float32(size) * 0.5
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			dx := float32(x) - center
			dy := float32(y) - center
			offset := y*size + x
			if dx*dx+dy*dy <= radius*radius {
				mask.Inside[offset] = true
			} else {
				mask.Alpha[offset] = 1.0
			}
		}
	}
	return mask
}
