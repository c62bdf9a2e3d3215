package scene

import (
	"github.com/achilleasa/penumbra/types"
)

// ObjectMask assigns scene objects to traversal categories. Queries
// carry a mask of the categories they are allowed to intersect.
type ObjectMask uint8

const (
	MaskOpaqueGeometry ObjectMask = 1 << iota
	MaskAlphaTested
	MaskTranslucent
	MaskPortal
	MaskDecal

	MaskAll ObjectMask = 0xff
)

type SurfaceFlags uint8

const (
	// The surface is a decal overlay; decals never occlude.
	FlagDecal SurfaceFlags = 1 << iota

	// The surface belongs to a dynamically instanced, non-persistent
	// object which cannot be remapped across frames.
	FlagDynamic

	// The surface carries an active clip plane.
	FlagClipActive

	// The surface is known to be fully opaque everywhere; traversal
	// may commit hits against it without evaluating the material.
	FlagFullyOpaque
)

// A static scene primitive reference. Surfaces are read-only during a
// query and shared by all triangles that belong to the same draw.
type Surface struct {
	MaterialIndex uint32
	Mask          ObjectMask
	Flags         SurfaceFlags

	// Plane equation ax+by+cz+d; points on the negative side are
	// clipped when FlagClipActive is set.
	ClipPlane types.Vec4
}

// Check whether a world position falls under the surface's active
// clip plane.
func (s *Surface) Clipped(pos types.Vec3) bool {
	if s.Flags&FlagClipActive == 0 {
		return false
	}
	return s.ClipPlane.Vec3().Dot(pos)+s.ClipPlane[3] < 0
}
