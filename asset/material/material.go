package material

import (
	"encoding/gob"

	"github.com/achilleasa/penumbra/types"
)

// Type represents the surface material categories supported by the tracer.
type Type int

const (
	typeInvalid Type = iota
	TypeOpaque
	TypeTranslucent
	TypeRayPortal
	TypeDecal
)

func (t Type) String() string {
	switch t {
	case TypeOpaque:
		return "opaque"
	case TypeTranslucent:
		return "translucent"
	case TypeRayPortal:
		return "rayPortal"
	case TypeDecal:
		return "decal"
	}

	return "invalid"
}

// Materials form a closed set of variants; each variant decodes into a
// different interaction when evaluated against a surface hit. Material
// definitions are immutable scene data shared read-only by all
// concurrent queries.
type Material interface {
	Type() Type
}

// An opaque surface with an optional alpha-test mask. Opacity values
// below 1 model alpha-blended geometry.
type Opaque struct {
	Opacity float32

	// Index into the scene mask list or -1 when unmasked.
	MaskTexture int32
}

func (m Opaque) Type() Type { return TypeOpaque }

// A translucent surface. A negative thickness is a sentinel selecting
// the thin-walled interpretation where the absolute value is the shell
// thickness; non-negative values describe a true volumetric medium.
type Translucent struct {
	// Per-channel transmittance through one reference unit of the medium.
	Transmittance types.Vec3
	Thickness     float32
}

func (m Translucent) Type() Type { return TypeTranslucent }

// A teleportation portal surface. The mask defines the portal's visual
// cutout; UVTransform is a 3x2 affine transform applied to the portal's
// local UV before sampling the mask.
type RayPortal struct {
	MaskTexture int32
	UVTransform [6]float32
}

func (m RayPortal) Type() Type { return TypeRayPortal }

// A decal overlay. Decals never cast shadows.
type Decal struct{}

func (m Decal) Type() Type { return TypeDecal }

// IdentityUVTransform is the no-op 3x2 texture transform.
var IdentityUVTransform = [6]float32{1, 0, 0, 1, 0, 0}

func init() {
	// Material lists are serialized via gob as part of scene snapshots.
	gob.Register(Opaque{})
	gob.Register(Translucent{})
	gob.Register(RayPortal{})
	gob.Register(Decal{})
}
