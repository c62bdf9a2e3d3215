package tracer

import (
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

// FrameIndex selects which scene snapshot a query traverses.
type FrameIndex uint8

const (
	CurrentFrame FrameIndex = iota
	PreviousFrame
)

// QueryParams configure a single traversal segment.
type QueryParams struct {
	// Only surfaces whose category overlaps the mask are intersected.
	Mask scene.ObjectMask

	// Commit the first accepted hit instead of narrowing to the
	// closest one. Cheaper when only a boolean or approximate
	// distance is needed.
	AcceptFirstHit bool

	// Skip triangles whose front face points away from the ray.
	CullBackFaces bool

	Frame FrameIndex
}

// A candidate intersection surfaced during traversal. Candidates are
// valid only for the duration of the visit callback.
type Candidate struct {
	SurfaceIndex  uint32
	TriangleIndex uint32
	T             float32
	Position      types.Vec3
	Normal        types.Vec3
	UV            types.Vec2
}

// The visit callback's verdict on a candidate.
type Decision uint8

const (
	IgnoreCandidate Decision = iota
	CommitCandidate
)

// CandidateFunc inspects one non-opaque candidate and decides whether
// traversal should commit it as a blocking hit. Candidates arrive in
// arbitrary order.
type CandidateFunc func(c *Candidate) Decision

type CommitStatus uint8

const (
	StatusMiss CommitStatus = iota
	StatusCommitted
)

// The outcome of one traversal segment.
type QueryResult struct {
	Status        CommitStatus
	Distance      float32
	SurfaceIndex  uint32
	TriangleIndex uint32
}

// SceneQuery is the traversal primitive the visibility tracer drives.
// Implementations must intersect the queried snapshot's geometry,
// commit fully opaque hits on their own and route every other
// candidate through the visit callback.
type SceneQuery interface {
	Trace(ray *Ray, params QueryParams, visit CandidateFunc) QueryResult
}
