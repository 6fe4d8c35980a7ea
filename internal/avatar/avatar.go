// Package avatar builds the editable parts of an avatar from an OBJ file or
// from built-in primitives.
package avatar

import (
	"fmt"

	"github.com/Faultbox/orchid-atelier/internal/editor"
	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/internal/engine/transform"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
	"github.com/Faultbox/orchid-atelier/pkg/formats"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Built-in avatar proportions.
const (
	BodyHeight = 20
	Segments   = 32

	// WaistHeight is where the built-in dress hangs from, as a fraction of
	// BodyHeight.
	WaistHeight = 0.62
	// DressScale maps the unit dress onto the built-in body.
	DressScale = 4
)

// Part names of the built-in avatar.
const (
	BodyPart  = "Body"
	DressPart = "Dress"
)

// Builtin returns a mannequin body and a dress sized by d.
func Builtin(d wardrobe.Dress) ([]editor.Part, error) {
	body, err := geometry.Mannequin(BodyPart, BodyHeight, Segments)
	if err != nil {
		return nil, fmt.Errorf("building body: %w", err)
	}
	dress, err := geometry.Dress(DressPart, d.Width, d.Length, Segments)
	if err != nil {
		return nil, fmt.Errorf("building dress: %w", err)
	}

	dressMesh := dress.Instantiate()
	// Hang the top of the skirt at the waist.
	half := (1.5 + d.Length) / 2 * DressScale
	dressMesh.SetTransform(transform.Uniform(DressScale, math.Vec3{Y: WaistHeight*BodyHeight - half}))

	return []editor.Part{
		{Name: BodyPart, Mesh: body.Instantiate()},
		{Name: DressPart, Mesh: dressMesh},
	}, nil
}

// FromOBJ returns one part per object in an OBJ model.
func FromOBJ(model *formats.OBJModel) ([]editor.Part, error) {
	parts := make([]editor.Part, 0, len(model.Objects))
	for _, obj := range model.Objects {
		src, err := geometry.NewSource(obj.Name, obj.Positions, obj.Indices)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.Name, err)
		}
		parts = append(parts, editor.Part{Name: obj.Name, Mesh: src.Instantiate()})
	}
	return parts, nil
}

// Load reads parts from an OBJ path, or builds the built-in avatar when
// path is empty.
func Load(path string, d wardrobe.Dress) ([]editor.Part, error) {
	if path == "" {
		return Builtin(d)
	}
	model, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return FromOBJ(model)
}

// DefaultClassifier classifies the built-in parts.
func DefaultClassifier() *wardrobe.Classifier {
	return wardrobe.NewClassifier(map[string]wardrobe.PartCategory{
		BodyPart:  wardrobe.Skin,
		DressPart: wardrobe.Clothing,
	})
}

// Install adds parts to the editor with categories from cl.
func Install(ed *editor.Editor, parts []editor.Part, cl *wardrobe.Classifier) error {
	for _, p := range parts {
		if err := ed.AddPart(p.Name, p.Mesh, cl.Classify(p.Name)); err != nil {
			return err
		}
	}
	return nil
}
