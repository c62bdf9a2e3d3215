// Package io serializes optimized scenes to compressed snapshot files.
// Snapshots are gob streams framed by zstd; they hold everything a
// visibility query needs (geometry, BVH, surfaces, materials, masks,
// portals) so a snapshot can be traced without the original assets.
package io

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/achilleasa/penumbra/asset/scene"
	"github.com/achilleasa/penumbra/log"
)

// Write an optimized scene snapshot to a file.
func WriteScene(sc *scene.Scene, sceneFile string) error {
	logger := log.New("scene writer")
	logger.Noticef(`writing compressed scene snapshot to "%s"`, sceneFile)
	start := time.Now()

	f, err := os.Create(sceneFile)
	if err != nil {
		return fmt.Errorf("scene writer: %v", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("scene writer: %v", err)
	}

	if err = gob.NewEncoder(zw).Encode(sc); err != nil {
		zw.Close()
		return fmt.Errorf("scene writer: failed to encode scene: %v", err)
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("scene writer: %v", err)
	}

	logger.Noticef("compressed scene snapshot in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Read an optimized scene snapshot from a file.
func ReadScene(sceneFile string) (*scene.Scene, error) {
	logger := log.New("scene reader")
	logger.Noticef(`parsing compressed scene snapshot from "%s"`, sceneFile)
	start := time.Now()

	f, err := os.Open(sceneFile)
	if err != nil {
		return nil, fmt.Errorf("scene reader: %v", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("scene reader: %v", err)
	}
	defer zr.Close()

	sc := &scene.Scene{}
	if err = gob.NewDecoder(zr).Decode(sc); err != nil {
		return nil, fmt.Errorf("scene reader: failed to decode scene: %v", err)
	}

	logger.Noticef("loaded scene snapshot in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}
