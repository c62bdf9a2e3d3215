package scene

// InvalidSurfaceIndex marks previous-frame surfaces with no counterpart
// in the current frame.
const InvalidSurfaceIndex int32 = -1

// SurfaceMapping translates previous-frame surface indices to the
// current frame. It is rebuilt once per frame by the scene update pass
// and read-only afterwards.
type SurfaceMapping []int32

// Look up the current-frame surface index for a previous-frame index.
// Returns InvalidSurfaceIndex when the surface no longer exists.
func (m SurfaceMapping) Lookup(prevIndex uint32) int32 {
	if int(prevIndex) >= len(m) {
		return InvalidSurfaceIndex
	}
	return m[prevIndex]
}

// Create an identity mapping for count surfaces.
func IdentityMapping(count int) SurfaceMapping {
	m := make(SurfaceMapping, count)
	for i := range m {
		m[i] = int32(i)
	}
	return m
}
