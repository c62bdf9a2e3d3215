package compiler

import (
	"fmt"
	"time"

	"github.com/achilleasa/penumbra/asset/compiler/bvh"
	"github.com/achilleasa/penumbra/asset/compiler/input"
	"github.com/achilleasa/penumbra/asset/material"
	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/log"
	"github.com/achilleasa/penumbra/types"
)

const minPrimitivesPerLeaf = 4

type sceneCompiler struct {
	rawScene       *input.Scene
	optimizedScene *scene.Scene
	logger         log.Logger
}

// Compile a raw scene assembled by the host engine into the flat
// optimized format consumed by visibility queries.
func Compile(rawScene *input.Scene) (*scene.Scene, error) {
	compiler := &sceneCompiler{
		rawScene:       rawScene,
		optimizedScene: &scene.Scene{},
		logger:         log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	var err error
	err = compiler.validateReferences()
	if err != nil {
		return nil, err
	}

	err = compiler.bakeSurfaceFlags()
	if err != nil {
		return nil, err
	}

	err = compiler.bakePortals()
	if err != nil {
		return nil, err
	}

	err = compiler.partitionGeometry()
	if err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.optimizedScene, nil
}

// Ensure that all cross-references between primitives, surfaces,
// materials and portals resolve.
func (sc *sceneCompiler) validateReferences() error {
	for index, surf := range sc.rawScene.Surfaces {
		if int(surf.MaterialIndex) >= len(sc.rawScene.Materials) {
			return fmt.Errorf("compiler: surface %d references undefined material %d", index, surf.MaterialIndex)
		}
	}

	for index, prim := range sc.rawScene.Primitives {
		if int(prim.SurfaceIndex) >= len(sc.rawScene.Surfaces) {
			return fmt.Errorf("compiler: primitive %d references undefined surface %d", index, prim.SurfaceIndex)
		}
	}

	for index, portal := range sc.rawScene.Portals {
		if int(portal.MaterialIndex) >= len(sc.rawScene.Materials) {
			return fmt.Errorf("compiler: portal %d references undefined material %d", index, portal.MaterialIndex)
		}
		if _, isPortalMat := sc.rawScene.Materials[portal.MaterialIndex].(material.RayPortal); !isPortalMat {
			return fmt.Errorf("compiler: portal %d references non-portal material %d", index, portal.MaterialIndex)
		}
		if int(portal.PairIndex) >= len(sc.rawScene.Portals) {
			return fmt.Errorf("compiler: portal %d references undefined pair %d", index, portal.PairIndex)
		}
		if sc.rawScene.Portals[portal.PairIndex].PairIndex != uint32(index) {
			return fmt.Errorf("compiler: portal pair %d <-> %d is not symmetric", index, portal.PairIndex)
		}
	}

	return nil
}

// Derive per-surface traversal hints. Surfaces whose material cannot
// attenuate anything partially are flagged fully opaque so that the
// query primitive can commit hits against them without a material
// evaluation round-trip.
func (sc *sceneCompiler) bakeSurfaceFlags() error {
	sc.optimizedScene.SurfaceList = make([]scene.Surface, len(sc.rawScene.Surfaces))
	copy(sc.optimizedScene.SurfaceList, sc.rawScene.Surfaces)

	for index := range sc.optimizedScene.SurfaceList {
		surf := &sc.optimizedScene.SurfaceList[index]
		surf.Flags &^= scene.FlagFullyOpaque

		if surf.Flags&(scene.FlagDecal|scene.FlagClipActive) != 0 {
			continue
		}

		mat, isOpaque := sc.rawScene.Materials[surf.MaterialIndex].(material.Opaque)
		if isOpaque && mat.Opacity >= 1.0 && mat.MaskTexture < 0 {
			surf.Flags |= scene.FlagFullyOpaque
		}
	}

	sc.optimizedScene.MaterialList = make([]material.Material, len(sc.rawScene.Materials))
	copy(sc.optimizedScene.MaterialList, sc.rawScene.Materials)
	sc.optimizedScene.MaskList = sc.rawScene.Masks

	return nil
}

// Convert raw portal rectangles into their optimized form and derive
// the link transform for each pair.
func (sc *sceneCompiler) bakePortals() error {
	sc.optimizedScene.PortalList = make([]scene.Portal, len(sc.rawScene.Portals))

	for index, raw := range sc.rawScene.Portals {
		if raw.HalfExtents[0] <= 0 || raw.HalfExtents[1] <= 0 {
			return fmt.Errorf("compiler: portal %d has degenerate half extents", index)
		}

		pair := sc.rawScene.Portals[raw.PairIndex]
		sc.optimizedScene.PortalList[index] = scene.Portal{
			Centroid:       raw.Centroid,
			Normal:         raw.Normal.Normalize(),
			XAxis:          raw.XAxis.Normalize(),
			YAxis:          raw.YAxis.Normalize(),
			InvHalfExtents: types.Vec2{1.0 / raw.HalfExtents[0], 1.0 / raw.HalfExtents[1]},
			MaterialIndex:  raw.MaterialIndex,
			PairIndex:      raw.PairIndex,
			LinkTransform:  linkTransform(&raw, &pair),
		}
	}

	return nil
}

// Calculate the transform mapping points on the src portal's side of
// the link to the dst portal's side. Local coordinates are mirrored
// about the portal Y axis so that a ray entering the src front face
// exits through the dst front face.
func linkTransform(src, dst *input.Portal) types.Mat4 {
	srcX := src.XAxis.Normalize()
	srcY := src.YAxis.Normalize()
	srcN := src.Normal.Normalize()

	dstX := dst.XAxis.Normalize().Mul(-1)
	dstY := dst.YAxis.Normalize()
	dstN := dst.Normal.Normalize().Mul(-1)

	var rot types.Mat4
	for row := 0; row < 3; row++ {
		rot[row*4+0] = dstX[row]*srcX[0] + dstY[row]*srcY[0] + dstN[row]*srcN[0]
		rot[row*4+1] = dstX[row]*srcX[1] + dstY[row]*srcY[1] + dstN[row]*srcN[1]
		rot[row*4+2] = dstX[row]*srcX[2] + dstY[row]*srcY[2] + dstN[row]*srcN[2]
	}
	rot[15] = 1

	return types.Translate4(dst.Centroid).Mul4(rot).Mul4(types.Translate4(src.Centroid.Mul(-1)))
}

// Partition scene primitives into a BVH and pack triangle data into
// flat arrays following BVH leaf order.
func (sc *sceneCompiler) partitionGeometry() error {
	start := time.Now()
	sc.logger.Infof("building scene BVH tree (%d primitives)", len(sc.rawScene.Primitives))

	totalVertices := 3 * len(sc.rawScene.Primitives)
	sc.optimizedScene.VertexList = make([]types.Vec4, 0, totalVertices)
	sc.optimizedScene.NormalList = make([]types.Vec4, 0, len(sc.rawScene.Primitives))
	sc.optimizedScene.UvList = make([]types.Vec2, 0, totalVertices)
	sc.optimizedScene.SurfaceIndexList = make([]uint32, 0, len(sc.rawScene.Primitives))

	volList := make([]bvh.BoundedVolume, len(sc.rawScene.Primitives))
	for index, prim := range sc.rawScene.Primitives {
		volList[index] = prim
	}

	sc.optimizedScene.BvhNodeList = bvh.Build(volList, minPrimitivesPerLeaf, func(node *scene.BvhNode, workList []bvh.BoundedVolume) {
		node.SetPrimitives(uint32(len(sc.optimizedScene.SurfaceIndexList)), uint32(len(workList)))

		for _, workItem := range workList {
			prim := workItem.(*input.Primitive)
			normal := prim.Normal()

			sc.optimizedScene.VertexList = append(
				sc.optimizedScene.VertexList,
				prim.Vertices[0].Vec4(0),
				prim.Vertices[1].Vec4(0),
				prim.Vertices[2].Vec4(0),
			)
			sc.optimizedScene.NormalList = append(sc.optimizedScene.NormalList, normal.Vec4(0))
			sc.optimizedScene.UvList = append(sc.optimizedScene.UvList, prim.UVs[0], prim.UVs[1], prim.UVs[2])
			sc.optimizedScene.SurfaceIndexList = append(sc.optimizedScene.SurfaceIndexList, prim.SurfaceIndex)
		}
	}, bvh.SurfaceAreaHeuristic)

	sc.logger.Infof("partitioned geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
