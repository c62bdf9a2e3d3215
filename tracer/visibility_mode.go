package tracer

// VisibilityMode holds the per-query behavior flags supplied by the
// caller.
type VisibilityMode uint8

const (
	// Narrow to the closest hit so the reported distance is exact.
	// Without this flag traversal accepts the first hit it finds.
	AccurateHitDistance VisibilityMode = 1 << iota

	// Evaluate translucent materials instead of treating them as
	// fully transparent.
	EnableTranslucent

	// Disable backface culling for this query.
	DisableCulling
)

// Check whether a mode flag is set.
func (m VisibilityMode) Has(flag VisibilityMode) bool {
	return m&flag != 0
}

// PortalSpaceState tags which logical copy of world space a ray
// currently occupies. The visibility tracer only forwards and updates
// the tag; interpreting it is left to shading-consistency collaborators.
type PortalSpaceState uint8

const (
	PortalSpaceNone PortalSpaceState = iota
	PortalSpaceA
	PortalSpaceB
	PortalSpaceUnknown
)

// SpaceTransitionFunc is the external collaborator rule applied when a
// ray crosses a portal.
type SpaceTransitionFunc func(state PortalSpaceState, portalIndex uint32) PortalSpaceState
