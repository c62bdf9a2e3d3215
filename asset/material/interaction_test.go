package material

import (
	"testing"

	"github.com/achilleasa/penumbra/asset/texture"
	"github.com/achilleasa/penumbra/types"
)

func TestOpaqueEvaluate(t *testing.T) {
	mat := Opaque{Opacity: 0.5, MaskTexture: -1}

	// Unmasked materials use the base opacity.
	it := mat.Evaluate(types.Vec2{0.5, 0.5}, nil)
	if it.Opacity != 0.5 {
		t.Fatalf("expected opacity 0.5; got %f", it.Opacity)
	}

	// Masks modulate the base opacity.
	it = mat.Evaluate(types.Vec2{0.5, 0.5}, texture.UniformMask(0.5))
	if it.Opacity != 0.25 {
		t.Fatalf("expected masked opacity 0.25; got %f", it.Opacity)
	}

	// Out-of-range products are clamped.
	mat = Opaque{Opacity: 3, MaskTexture: -1}
	it = mat.Evaluate(types.Vec2{0.5, 0.5}, nil)
	if it.Opacity != 1 {
		t.Fatalf("expected opacity clamped to 1; got %f", it.Opacity)
	}
}

func TestRayPortalEvaluateUVTransform(t *testing.T) {
	mask := &texture.Mask{
		Width:  2,
		Height: 1,
		Alpha:  []float32{0, 1},
		Inside: []bool{true, false},
	}

	// The identity transform samples the portal-local UV directly.
	mat := RayPortal{MaskTexture: 0, UVTransform: IdentityUVTransform}
	it := mat.Evaluate(types.Vec2{0.1, 0.5}, mask)
	if it.MaskAlpha != 0 || !it.InsidePortal {
		t.Fatalf("expected the left texel (alpha 0, inside); got %+v", it)
	}

	// A U offset of 0.5 shifts the sample into the right texel.
	mat.UVTransform = [6]float32{1, 0, 0, 1, 0.5, 0}
	it = mat.Evaluate(types.Vec2{0.1, 0.5}, mask)
	if it.MaskAlpha != 1 || it.InsidePortal {
		t.Fatalf("expected the right texel (alpha 1, outside); got %+v", it)
	}
}

func TestMaterialTypes(t *testing.T) {
	type spec struct {
		mat     Material
		expType Type
		expName string
	}
	specs := []spec{
		spec{Opaque{}, TypeOpaque, "opaque"},
		spec{Translucent{}, TypeTranslucent, "translucent"},
		spec{RayPortal{}, TypeRayPortal, "rayPortal"},
		spec{Decal{}, TypeDecal, "decal"},
	}

	for index, s := range specs {
		if s.mat.Type() != s.expType {
			t.Fatalf("[spec %d] unexpected material type %d", index, s.mat.Type())
		}
		if s.mat.Type().String() != s.expName {
			t.Fatalf("[spec %d] expected type name %q; got %q", index, s.expName, s.mat.Type().String())
		}
	}
}
