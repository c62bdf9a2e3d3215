package scene

import (
	"testing"

	"github.com/achilleasa/penumbra/types"
)

func TestSurfaceClipping(t *testing.T) {
	surf := Surface{
		Flags: FlagClipActive,
		// Keep everything above the y=1 plane.
		ClipPlane: types.Vec4{0, 1, 0, -1},
	}

	if surf.Clipped(types.Vec3{0, 2, 0}) {
		t.Fatalf("expected a point above the plane to be kept")
	}
	if !surf.Clipped(types.Vec3{0, 0, 0}) {
		t.Fatalf("expected a point below the plane to be clipped")
	}

	surf.Flags = 0
	if surf.Clipped(types.Vec3{0, 0, 0}) {
		t.Fatalf("expected no clipping when the plane is inactive")
	}
}

func TestSurfaceMappingLookup(t *testing.T) {
	m := SurfaceMapping{3, InvalidSurfaceIndex, 0}

	if got := m.Lookup(0); got != 3 {
		t.Fatalf("expected lookup(0) = 3; got %d", got)
	}
	if got := m.Lookup(1); got != InvalidSurfaceIndex {
		t.Fatalf("expected lookup(1) to be invalid; got %d", got)
	}
	if got := m.Lookup(99); got != InvalidSurfaceIndex {
		t.Fatalf("expected an out-of-range lookup to be invalid; got %d", got)
	}

	ident := IdentityMapping(4)
	for i := uint32(0); i < 4; i++ {
		if got := ident.Lookup(i); got != int32(i) {
			t.Fatalf("expected identity lookup(%d) = %d; got %d", i, i, got)
		}
	}
}

func TestBvhNodePacking(t *testing.T) {
	var node BvhNode

	node.SetChildNodes(1, 2)
	if node.IsLeaf() {
		t.Fatalf("expected an inner node")
	}
	left, right := node.GetChildNodes()
	if left != 1 || right != 2 {
		t.Fatalf("expected child nodes (1, 2); got (%d, %d)", left, right)
	}

	node.OffsetChildNodes(10)
	left, right = node.GetChildNodes()
	if left != 11 || right != 12 {
		t.Fatalf("expected offset child nodes (11, 12); got (%d, %d)", left, right)
	}

	node.SetPrimitives(7, 3)
	if !node.IsLeaf() {
		t.Fatalf("expected a leaf node")
	}
	firstPrim, count := node.GetPrimitives()
	if firstPrim != 7 || count != 3 {
		t.Fatalf("expected primitives (7, 3); got (%d, %d)", firstPrim, count)
	}

	// Offsets never apply to leaves.
	node.OffsetChildNodes(10)
	firstPrim, count = node.GetPrimitives()
	if firstPrim != 7 || count != 3 {
		t.Fatalf("expected leaf primitives to be unaffected by offsets; got (%d, %d)", firstPrim, count)
	}
}
