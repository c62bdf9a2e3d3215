package tracer

import (
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

// NoPortal disables the expected-portal precheck for a query.
const NoPortal int32 = -1

// The accumulated-opacity cutoff used when the caller does not supply
// one. Matches one 8-bit quantization step below full opacity.
const DefaultOpaquenessThreshold float32 = 254.0 / 255.0

// VisibilityQuery carries the read-only inputs shared by every segment
// of one visibility evaluation. The tracer never mutates it, so a
// single value can be reused across a batch of probes.
type VisibilityQuery struct {
	// The traversal primitive and the snapshots it resolves against.
	Query SceneQuery
	Scene *scene.Scene

	// Previous-frame snapshot and surface remap table; only consulted
	// when Frame selects the previous frame.
	Prev    *scene.Scene
	Mapping scene.SurfaceMapping
	Frame   FrameIndex

	Mode VisibilityMode
	Mask scene.ObjectMask

	// Accumulated opacity (1 - attenuation luminance) at which the
	// tracer stops evaluating candidates and commits a full block.
	// Values <= 0 select DefaultOpaquenessThreshold.
	OpaquenessThreshold float32

	// Enable backface culling for this secondary ray class. The
	// DisableCulling mode flag overrides it per query.
	CullSecondaryRays bool

	// Index of the portal the ray is expected to cross, or NoPortal.
	ExpectedPortal int32

	// Portal space tag carried into the query and the external rule
	// used to update it on a crossing.
	PortalSpace     PortalSpaceState
	SpaceTransition SpaceTransitionFunc
}

func (q *VisibilityQuery) opaquenessThreshold() float32 {
	t := q.OpaquenessThreshold
	if t <= 0 {
		return DefaultOpaquenessThreshold
	}
	if t > 1 {
		return 1
	}
	return t
}

// The outcome of a visibility evaluation. Attenuation channels always
// lie in [0,1]; HasOpaqueHit is set exactly when attenuation is zero
// due to a committed full block. HitDistance is always relative to the
// original query ray, even when the ray crossed a portal.
type VisibilityResult struct {
	Attenuation  types.Vec3
	RayDirection types.Vec3
	HitDistance  float32
	HasOpaqueHit bool
	PortalSpace  PortalSpaceState
}

// Evaluate whether an unobstructed path exists along a probe ray and,
// if not fully blocked, how much light the path transmits.
//
// The ray traverses at most two segments: one when no portal crossing
// is expected, two when the caller supplies an expected portal and the
// portal's surface transmits. Candidates surfaced by each segment's
// scene query compound their attenuation multiplicatively, consistent
// with sequential absorption; once the accumulated opacity reaches the
// resolve threshold the triggering candidate is promoted to a full
// occluder and evaluation stops, bounding the cost of stacked faint
// layers.
func TraceVisibilityRay(ray Ray, q *VisibilityQuery) VisibilityResult {
	// Portals are intersected analytically below, never via generic
	// geometry candidates.
	params := QueryParams{
		Mask:           q.Mask &^ scene.MaskPortal,
		AcceptFirstHit: !q.Mode.Has(AccurateHitDistance),
		CullBackFaces:  q.CullSecondaryRays && !q.Mode.Has(DisableCulling),
		Frame:          q.Frame,
	}

	space := q.PortalSpace
	attenuation := fullTransmission
	threshold := q.opaquenessThreshold()
	originalTMax := ray.TMax

	pendingPortal := false
	var portalT, portalTransparency float32

	if q.ExpectedPortal >= 0 && int(q.ExpectedPortal) < len(q.Scene.PortalList) {
		portal := &q.Scene.PortalList[q.ExpectedPortal]
		portalTransparency, portalT = rayPortalTransparency(&ray, portal, q.Scene)
		if portalTransparency == 0 {
			// The expected portal blocks (or is never reached);
			// report a full block without issuing a scene query.
			// The exact block distance is unknown so the ray's
			// travel limit is reported as a safe upper bound.
			return VisibilityResult{
				Attenuation:  types.Vec3{},
				RayDirection: ray.Dir,
				HitDistance:  originalTMax,
				HasOpaqueHit: true,
				PortalSpace:  space,
			}
		}

		// Clamp the first segment to the portal plane.
		ray.TMax = portalT
		pendingPortal = true
	}

	// Distance already consumed by completed segments, relative to
	// the original ray origin.
	var consumed float32

	for {
		visit := func(c *Candidate) Decision {
			attenuation = attenuation.MulVec(handleVisibilityVertex(q, ray.Dir, c))
			if 1.0-attenuation.Luminance() >= threshold {
				// Enough opacity accumulated; promote this
				// candidate to a full occluder.
				return CommitCandidate
			}
			return IgnoreCandidate
		}

		res := q.Query.Trace(&ray, params, visit)
		if res.Status == StatusCommitted {
			return VisibilityResult{
				Attenuation:  types.Vec3{},
				RayDirection: ray.Dir,
				HitDistance:  consumed + res.Distance,
				HasOpaqueHit: true,
				PortalSpace:  space,
			}
		}

		if !pendingPortal {
			return VisibilityResult{
				Attenuation:  attenuation,
				RayDirection: ray.Dir,
				HitDistance:  consumed + ray.TMax,
				HasOpaqueHit: false,
				PortalSpace:  space,
			}
		}

		// Cross the portal: rewrite the ray through the link
		// transform and trace the remainder as a second segment.
		// Only one crossing is permitted per query.
		portal := &q.Scene.PortalList[q.ExpectedPortal]
		ray.Origin = portal.LinkTransform.TransformPoint(ray.PointAt(portalT))
		ray.Dir = portal.LinkTransform.TransformDirection(ray.Dir).Normalize()
		ray.TMax = originalTMax - portalT
		ray.ConeRadius += portalT * ray.SpreadAngle
		attenuation = attenuation.Mul(portalTransparency)
		if q.SpaceTransition != nil {
			space = q.SpaceTransition(space, uint32(q.ExpectedPortal))
		}
		consumed += portalT
		pendingPortal = false
	}
}
