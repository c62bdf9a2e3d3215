package scene

import (
	"github.com/achilleasa/penumbra/types"
)

// A planar teleportation portal. Portals are rectangles described by a
// centroid, a front-facing normal and an orthonormal in-plane basis
// with inverse half-extents. Crossing a portal rewrites a ray via the
// link transform to the paired portal.
type Portal struct {
	Centroid types.Vec3
	Normal   types.Vec3

	XAxis          types.Vec3
	YAxis          types.Vec3
	InvHalfExtents types.Vec2

	// Index of the RayPortal material governing the portal's visual mask.
	MaterialIndex uint32

	// Index of the paired portal in the scene portal list.
	PairIndex uint32

	// Maps points and directions from this portal's side of the link
	// to the paired portal's side.
	LinkTransform types.Mat4
}
