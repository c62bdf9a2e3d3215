package tracer

import (
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

const triIntersectEpsilon float32 = 1e-7

// Max BVH depth supported by the fixed traversal stack.
const traversalStackSize = 64

// A SceneQuery implementation that traverses the flat BVH of a
// compiled scene snapshot. Holds at most two snapshots: the current
// frame and, for temporal reuse queries, the previous one.
type bvhQuery struct {
	frames [2]*scene.Scene
}

// Create a scene query over a current-frame snapshot and an optional
// previous-frame snapshot.
func NewSceneQuery(current, previous *scene.Scene) SceneQuery {
	return &bvhQuery{
		frames: [2]*scene.Scene{current, previous},
	}
}

func (q *bvhQuery) Trace(ray *Ray, params QueryParams, visit CandidateFunc) QueryResult {
	sc := q.frames[params.Frame]
	if sc == nil || len(sc.BvhNodeList) == 0 {
		return QueryResult{Status: StatusMiss}
	}

	invDir := types.Vec3{1.0 / ray.Dir[0], 1.0 / ray.Dir[1], 1.0 / ray.Dir[2]}

	var stack [traversalStackSize]uint32
	sp := 0
	stack[sp] = 0
	sp++

	res := QueryResult{Status: StatusMiss}
	closest := ray.TMax

	for sp > 0 {
		sp--
		node := &sc.BvhNodeList[stack[sp]]
		if !aabbHit(node.Min, node.Max, ray.Origin, invDir, closest) {
			continue
		}

		if !node.IsLeaf() {
			left, right := node.GetChildNodes()
			stack[sp] = left
			stack[sp+1] = right
			sp += 2
			continue
		}

		firstPrim, primCount := node.GetPrimitives()
		for tri := firstPrim; tri < firstPrim+primCount; tri++ {
			surfIndex := sc.SurfaceIndexList[tri]
			surf := &sc.SurfaceList[surfIndex]
			if surf.Mask&params.Mask == 0 {
				continue
			}

			t, baryU, baryV, hit := intersectTriangle(
				ray,
				sc.VertexList[tri*3].Vec3(),
				sc.VertexList[tri*3+1].Vec3(),
				sc.VertexList[tri*3+2].Vec3(),
				params.CullBackFaces,
			)
			if !hit || t <= triIntersectEpsilon || t > closest {
				continue
			}

			// Dynamic surfaces cannot be remapped across frames, so
			// previous-frame queries route them through the visit
			// callback instead of committing them outright.
			fullyOpaque := surf.Flags&scene.FlagFullyOpaque != 0
			if params.Frame == PreviousFrame && surf.Flags&scene.FlagDynamic != 0 {
				fullyOpaque = false
			}

			if fullyOpaque {
				res = QueryResult{
					Status:        StatusCommitted,
					Distance:      t,
					SurfaceIndex:  surfIndex,
					TriangleIndex: tri,
				}
				if params.AcceptFirstHit {
					return res
				}
				closest = t
				continue
			}

			if visit == nil {
				continue
			}

			uv0 := sc.UvList[tri*3]
			uv1 := sc.UvList[tri*3+1]
			uv2 := sc.UvList[tri*3+2]
			w := 1.0 - baryU - baryV
			cand := Candidate{
				SurfaceIndex:  surfIndex,
				TriangleIndex: tri,
				T:             t,
				Position:      ray.PointAt(t),
				Normal:        sc.NormalList[tri].Vec3(),
				UV: types.Vec2{
					uv0[0]*w + uv1[0]*baryU + uv2[0]*baryV,
					uv0[1]*w + uv1[1]*baryU + uv2[1]*baryV,
				},
			}

			if visit(&cand) == CommitCandidate {
				res = QueryResult{
					Status:        StatusCommitted,
					Distance:      t,
					SurfaceIndex:  surfIndex,
					TriangleIndex: tri,
				}
				if params.AcceptFirstHit {
					return res
				}
				closest = t
			}
		}
	}

	return res
}

// Slab test for the ray against a node bounding box.
func aabbHit(min, max, origin, invDir types.Vec3, tMax float32) bool {
	var tMin float32
	for axis := 0; axis < 3; axis++ {
		t0 := (min[axis] - origin[axis]) * invDir[axis]
		t1 := (max[axis] - origin[axis]) * invDir[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// Moeller-Trumbore ray/triangle intersection. Returns the parametric
// hit distance and barycentric coordinates. When cull is set, hits
// against the triangle's back face are rejected.
func intersectTriangle(ray *Ray, v0, v1, v2 types.Vec3, cull bool) (t, baryU, baryV float32, hit bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if cull {
		if det < triIntersectEpsilon {
			return 0, 0, 0, false
		}
	} else if det > -triIntersectEpsilon && det < triIntersectEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Sub(v0)
	baryU = tvec.Dot(pvec) * invDet
	if baryU < 0 || baryU > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(e1)
	baryV = ray.Dir.Dot(qvec) * invDet
	if baryV < 0 || baryU+baryV > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(qvec) * invDet
	return t, baryU, baryV, t > 0
}
