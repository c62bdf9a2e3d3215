package compiler

import (
	"math"
	"strings"
	"testing"

	"github.com/achilleasa/penumbra/asset/compiler/input"
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

func TestCompileDemoScene(t *testing.T) {
	sc, err := Compile(DemoScene())
	if err != nil {
		t.Fatalf("failed to compile demo scene: %v", err)
	}

	// Six quads split into two triangles each.
	if sc.TriangleCount() != 12 {
		t.Fatalf("expected 12 triangles; got %d", sc.TriangleCount())
	}
	if len(sc.SurfaceIndexList) != 12 {
		t.Fatalf("expected one surface index per triangle; got %d", len(sc.SurfaceIndexList))
	}
	if len(sc.NormalList) != 12 {
		t.Fatalf("expected one face normal per triangle; got %d", len(sc.NormalList))
	}
	if len(sc.UvList) != 36 {
		t.Fatalf("expected three UV entries per triangle; got %d", len(sc.UvList))
	}
	if len(sc.PortalList) != 2 {
		t.Fatalf("expected 2 portals; got %d", len(sc.PortalList))
	}

	// Every leaf primitive range must land inside the packed arrays and
	// cover each triangle exactly once.
	covered := make([]int, sc.TriangleCount())
	for nodeIndex, node := range sc.BvhNodeList {
		if !node.IsLeaf() {
			left, right := node.GetChildNodes()
			if int(left) >= len(sc.BvhNodeList) || int(right) >= len(sc.BvhNodeList) {
				t.Fatalf("node %d references out-of-range children (%d, %d)", nodeIndex, left, right)
			}
			continue
		}
		firstPrim, primCount := node.GetPrimitives()
		if int(firstPrim+primCount) > sc.TriangleCount() {
			t.Fatalf("leaf %d range [%d, %d) exceeds triangle count", nodeIndex, firstPrim, firstPrim+primCount)
		}
		for tri := firstPrim; tri < firstPrim+primCount; tri++ {
			covered[tri]++
		}
	}
	for tri, count := range covered {
		if count != 1 {
			t.Fatalf("expected triangle %d to appear in exactly one leaf; got %d", tri, count)
		}
	}
}

func TestBakedSurfaceFlags(t *testing.T) {
	sc, err := Compile(DemoScene())
	if err != nil {
		t.Fatalf("failed to compile demo scene: %v", err)
	}

	type spec struct {
		surfIndex int
		expOpaque bool
	}
	specs := []spec{
		spec{DemoSurfaceFloor, true},
		spec{DemoSurfaceWall, true},
		spec{DemoSurfaceThinPane, false},
		spec{DemoSurfaceThickPane, false},
		spec{DemoSurfaceDecal, false},
		spec{DemoSurfaceDynamic, true},
	}

	for _, s := range specs {
		gotOpaque := sc.SurfaceList[s.surfIndex].Flags&scene.FlagFullyOpaque != 0
		if gotOpaque != s.expOpaque {
			t.Fatalf("expected surface %d fully-opaque flag to be %t; got %t", s.surfIndex, s.expOpaque, gotOpaque)
		}
	}
}

func TestPortalLinkTransform(t *testing.T) {
	sc, err := Compile(DemoScene())
	if err != nil {
		t.Fatalf("failed to compile demo scene: %v", err)
	}

	link := sc.PortalList[0].LinkTransform

	// The source centroid maps onto the paired centroid.
	got := link.TransformPoint(types.Vec3{-5, 2, 0})
	if !vecNear(got, types.Vec3{5, 2, 0}) {
		t.Fatalf("expected the source centroid to map to (5, 2, 0); got %v", got)
	}

	// In-plane offsets are preserved in the paired portal's local frame
	// (mirrored about the Y axis).
	got = link.TransformPoint(types.Vec3{-5, 3, -0.5})
	if !vecNear(got, types.Vec3{5, 3, -0.5}) {
		t.Fatalf("expected the offset point to map to (5, 3, -0.5); got %v", got)
	}

	// A direction entering the source front face must exit through the
	// pair's front face.
	dir := link.TransformDirection(types.Vec3{-1, 0, 0}).Normalize()
	pairNormal := sc.PortalList[1].Normal
	if dir.Dot(pairNormal) <= 0 {
		t.Fatalf("expected the mapped direction to leave through the pair's front face; got %v", dir)
	}
}

func TestCompileValidation(t *testing.T) {
	type spec struct {
		mutate func(*input.Scene)
		expErr string
	}
	specs := []spec{
		spec{
			func(raw *input.Scene) { raw.Surfaces[0].MaterialIndex = 99 },
			"references undefined material",
		},
		spec{
			func(raw *input.Scene) { raw.Primitives[0].SurfaceIndex = 99 },
			"references undefined surface",
		},
		spec{
			func(raw *input.Scene) { raw.Portals[0].MaterialIndex = 0 },
			"references non-portal material",
		},
		spec{
			func(raw *input.Scene) { raw.Portals[0].PairIndex = 99 },
			"references undefined pair",
		},
		spec{
			func(raw *input.Scene) { raw.Portals[0].PairIndex = 0 },
			"is not symmetric",
		},
		spec{
			func(raw *input.Scene) { raw.Portals[0].HalfExtents = types.Vec2{0, 1} },
			"degenerate half extents",
		},
	}

	for index, s := range specs {
		raw := DemoScene()
		s.mutate(raw)

		_, err := Compile(raw)
		if err == nil {
			t.Fatalf("[spec %d] expected a validation error", index)
		}
		if !strings.Contains(err.Error(), s.expErr) {
			t.Fatalf("[spec %d] expected error to contain %q; got %q", index, s.expErr, err.Error())
		}
	}
}

func TestPrimitiveNormal(t *testing.T) {
	prim := &input.Primitive{
		Vertices: [3]types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	}
	normal := prim.Normal()
	if !vecNear(normal, types.Vec3{0, 0, 1}) {
		t.Fatalf("expected face normal (0, 0, 1); got %v", normal)
	}
}

func vecNear(a, b types.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if math.Abs(float64(a[axis]-b[axis])) > 1e-4 {
			return false
		}
	}
	return true
}
