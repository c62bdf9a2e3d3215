package input

import (
	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/asset/texture"
	"github.com/achilleasa/penumbra/types"
)

// A triangle primitive.
type Primitive struct {
	Vertices     [3]types.Vec3
	UVs          [3]types.Vec2
	SurfaceIndex uint32
}

// Get the primitive AABB.
func (prim *Primitive) BBox() [2]types.Vec3 {
	min := types.MinVec3(types.MinVec3(prim.Vertices[0], prim.Vertices[1]), prim.Vertices[2])
	max := types.MaxVec3(types.MaxVec3(prim.Vertices[0], prim.Vertices[1]), prim.Vertices[2])
	return [2]types.Vec3{min, max}
}

// Get the primitive center.
func (prim *Primitive) Center() types.Vec3 {
	return prim.Vertices[0].Add(prim.Vertices[1]).Add(prim.Vertices[2]).Mul(1.0 / 3.0)
}

// Get the geometric triangle normal.
func (prim *Primitive) Normal() types.Vec3 {
	e1 := prim.Vertices[1].Sub(prim.Vertices[0])
	e2 := prim.Vertices[2].Sub(prim.Vertices[0])
	return e1.Cross(e2).Normalize()
}

// A portal rectangle before link transforms are derived. Portals must
// come in pairs with symmetric PairIndex references.
type Portal struct {
	Centroid    types.Vec3
	Normal      types.Vec3
	XAxis       types.Vec3
	YAxis       types.Vec3
	HalfExtents types.Vec2

	MaterialIndex uint32
	PairIndex     uint32
}

// A raw scene as assembled by the host engine before compilation.
type Scene struct {
	Primitives []*Primitive
	Surfaces   []scene.Surface
	Materials  []material.Material
	Masks      []*texture.Mask
	Portals    []Portal
}
