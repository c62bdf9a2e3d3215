package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/asset/texture"
	"github.com/achilleasa/penumbra/types"
	"github.com/olekukonko/tablewriter"
)

// Bvh nodes are comprised of two Vec3 and two multipurpose int32
// parameters whose value depends on the node type:
//
// - For non-leaf nodes they are both >0 and point to the L/R child nodes
// - For leaf nodes:
//   - left W is <= 0 and points to the first triangle primitive index
//   - right W is >0 and contains the count of leaf primitives
type BvhNode struct {
	Min   types.Vec3
	LData int32

	Max   types.Vec3
	RData int32
}

// Set bounding box.
func (n *BvhNode) SetBBox(bbox [2]types.Vec3) {
	n.Min = bbox[0]
	n.Max = bbox[1]
}

// Set left and right child node indices.
func (n *BvhNode) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Get left and right child node indices.
func (n *BvhNode) GetChildNodes() (left, right uint32) {
	return uint32(n.LData), uint32(n.RData)
}

// Check whether this node is a leaf.
func (n *BvhNode) IsLeaf() bool {
	return n.LData <= 0
}

// Set primitive index and count.
func (n *BvhNode) SetPrimitives(firstPrimIndex, count uint32) {
	n.LData = -int32(firstPrimIndex)
	n.RData = int32(count)
}

// Get primitive index and count.
func (n *BvhNode) GetPrimitives() (firstPrimIndex, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// Add offset to indices of child nodes.
func (n *BvhNode) OffsetChildNodes(offset int32) {
	// Ignore leafs
	if n.LData <= 0 {
		return
	}

	n.LData += offset
	n.RData += offset
}

// The optimized scene contains all static data consumed by visibility
// queries, packed into flat arrays. Triangles are stored in BVH leaf
// order; every list is read-only for the duration of a frame and shared
// by all concurrent queries without locking.
type Scene struct {
	BvhNodeList []BvhNode

	// Triangle geometry. Three vertices and three UV entries per
	// triangle plus one face normal and one surface index.
	VertexList       []types.Vec4
	NormalList       []types.Vec4
	UvList           []types.Vec2
	SurfaceIndexList []uint32

	SurfaceList  []Surface
	MaterialList []material.Material

	// Alpha masks referenced by material MaskTexture indices.
	MaskList []*texture.Mask

	PortalList []Portal
}

// Get the number of triangles in the scene.
func (sc *Scene) TriangleCount() int {
	return len(sc.VertexList) / 3
}

// Resolve a material mask texture index to the mask data. Returns nil
// for unmasked materials.
func (sc *Scene) Mask(index int32) *texture.Mask {
	if index < 0 || int(index) >= len(sc.MaskList) {
		return nil
	}
	return sc.MaskList[index]
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Size"})
	table.Append([]string{"Geometry", "---", fmtSize(sc.VertexList, sc.NormalList, sc.UvList, sc.SurfaceIndexList, sc.BvhNodeList)})
	table.Append([]string{"", "Vertices", fmtSize(sc.VertexList)})
	table.Append([]string{"", "Normals", fmtSize(sc.NormalList)})
	table.Append([]string{"", "UVs", fmtSize(sc.UvList)})
	table.Append([]string{"", "Surface indices", fmtSize(sc.SurfaceIndexList)})
	table.Append([]string{"", "BVH", fmtSize(sc.BvhNodeList)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Surfaces", "---", fmtSize(sc.SurfaceList)})
	table.Append([]string{"Portals", "---", fmtSize(sc.PortalList)})
	table.Append([]string{"Materials", "---", fmt.Sprintf("%3d entries", len(sc.MaterialList))})
	table.Append([]string{"Masks", "---", fmtMaskSize(sc.MaskList)})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(sc.VertexList, sc.NormalList, sc.UvList, sc.SurfaceIndexList, sc.BvhNodeList, sc.SurfaceList, sc.PortalList), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}

// Sum the space used by mask texel data.
func fmtMaskSize(masks []*texture.Mask) string {
	var alpha []float32
	var inside []bool
	for _, m := range masks {
		if m == nil {
			continue
		}
		alpha = append(alpha, m.Alpha...)
		inside = append(inside, m.Inside...)
	}
	return fmtSize(alpha, inside)
}
