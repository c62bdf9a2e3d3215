package bvh

import (
	"testing"

	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/types"
)

type boundedBox struct {
	min types.Vec3
	max types.Vec3
}

func (b *boundedBox) BBox() [2]types.Vec3 {
	return [2]types.Vec3{b.min, b.max}
}

func (b *boundedBox) Center() types.Vec3 {
	return b.min.Add(b.max).Mul(0.5)
}

func TestLeafCallback(t *testing.T) {
	boxes := []boundedBox{
		{types.Vec3{-2, 0, -2}, types.Vec3{-1, 1, -1}},
		{types.Vec3{1, 0, -2}, types.Vec3{2, 1, -1}},
		{types.Vec3{-2, 0, 1}, types.Vec3{-1, 1, 2}},
		{types.Vec3{1, 0, 1}, types.Vec3{2, 1, 2}},
	}

	itemList := make([]BoundedVolume, len(boxes))
	for idx := range boxes {
		itemList[idx] = &boxes[idx]
	}

	var cbCount = 0
	var expItemListCount = 0
	cb := func(leaf *scene.BvhNode, itemList []BoundedVolume) {
		cbCount++
		if len(itemList) != expItemListCount {
			t.Fatalf("expected leaf callback to be called with %d items; got %d", expItemListCount, len(itemList))
		}
	}

	var expCount = 0

	// Partition each item in a single leaf
	cbCount = 0
	expItemListCount = 1
	treeNodes := Build(itemList, 1, cb, SurfaceAreaHeuristic)

	expCount = 4
	if cbCount != expCount {
		t.Fatalf("expected leaf callback to be called %d times; called %d", expCount, cbCount)
	}
	expCount = 7
	if len(treeNodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(treeNodes))
	}

	// Partition two items in a single leaf
	cbCount = 0
	expItemListCount = 2
	treeNodes = Build(itemList, 2, cb, SurfaceAreaHeuristic)

	expCount = 2
	if cbCount != expCount {
		t.Fatalf("expected leaf callback to be called %d times; called %d", expCount, cbCount)
	}
	expCount = 3
	if len(treeNodes) != expCount {
		t.Fatalf("expected bvh tree to have %d nodes; got %d", expCount, len(treeNodes))
	}
}

func TestLeafPrimitivePacking(t *testing.T) {
	boxes := []boundedBox{
		{types.Vec3{-2, 0, -2}, types.Vec3{-1, 1, -1}},
		{types.Vec3{1, 0, -2}, types.Vec3{2, 1, -1}},
		{types.Vec3{-2, 0, 1}, types.Vec3{-1, 1, 2}},
		{types.Vec3{1, 0, 1}, types.Vec3{2, 1, 2}},
	}

	itemList := make([]BoundedVolume, len(boxes))
	for idx := range boxes {
		itemList[idx] = &boxes[idx]
	}

	packed := 0
	cb := func(leaf *scene.BvhNode, itemList []BoundedVolume) {
		leaf.SetPrimitives(uint32(packed), uint32(len(itemList)))
		packed += len(itemList)
	}

	treeNodes := Build(itemList, 1, cb, SurfaceAreaHeuristic)

	if packed != len(boxes) {
		t.Fatalf("expected %d packed items; got %d", len(boxes), packed)
	}

	// Every item must be reachable through exactly one leaf.
	seen := make(map[uint32]int)
	for idx := range treeNodes {
		node := &treeNodes[idx]
		if !node.IsLeaf() {
			continue
		}
		first, count := node.GetPrimitives()
		for prim := first; prim < first+count; prim++ {
			seen[prim]++
		}
	}
	for prim := uint32(0); prim < uint32(len(boxes)); prim++ {
		if seen[prim] != 1 {
			t.Fatalf("expected primitive %d to appear in exactly one leaf; found %d", prim, seen[prim])
		}
	}
}
