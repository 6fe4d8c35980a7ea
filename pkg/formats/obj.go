// Package formats provides parsers for avatar mesh files.
// OBJ (Wavefront) loading for multi-part avatar meshes.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJ    = errors.New("invalid OBJ data")
	ErrOBJIndexRange = errors.New("OBJ face index out of range")
	ErrOBJNoGeometry = errors.New("OBJ file has no faces")
)

// defaultObjectName names faces that appear before any "o" line.
const defaultObjectName = "default"

// OBJObject is one named part with its own compact vertex buffer.
type OBJObject struct {
	Name      string
	Positions []math.Vec3
	Indices   []uint32 // Triangles, counter-clockwise
}

// TriangleCount returns the face count.
func (o *OBJObject) TriangleCount() int {
	return len(o.Indices) / 3
}

// OBJModel is a parsed OBJ file.
type OBJModel struct {
	Objects []OBJObject

	// VertexCount is the number of "v" lines in the file.
	VertexCount int
}

// Object returns the part with the given name.
func (m *OBJModel) Object(name string) (*OBJObject, bool) {
	for i := range m.Objects {
		if m.Objects[i].Name == name {
			return &m.Objects[i], true
		}
	}
	return nil, false
}

// LoadOBJ reads an OBJ file from disk.
func LoadOBJ(path string) (*OBJModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(bytes.NewReader(data))
}

// objBuilder accumulates one object's faces, remapping file-global vertex
// numbers to a per-object buffer.
type objBuilder struct {
	obj   OBJObject
	remap map[int]uint32
}

func newOBJBuilder(name string) *objBuilder {
	return &objBuilder{obj: OBJObject{Name: name}, remap: make(map[int]uint32)}
}

func (b *objBuilder) vertex(global int, positions []math.Vec3) uint32 {
	if idx, ok := b.remap[global]; ok {
		return idx
	}
	idx := uint32(len(b.obj.Positions))
	b.obj.Positions = append(b.obj.Positions, positions[global])
	b.remap[global] = idx
	return idx
}

// ParseOBJ decodes positions, objects and faces. Texture coordinates,
// normals and materials are dropped; polygons are fan-triangulated. Objects
// whose name repeats are merged.
func ParseOBJ(r io.Reader) (*OBJModel, error) {
	// The decoder needs an open object before the first face.
	src := io.MultiReader(strings.NewReader("o "+defaultObjectName+"\n"), r)
	dec, err := obj.DecodeReader(src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}

	positions := make([]math.Vec3, 0, len(dec.Vertices)/3)
	for i := 0; i+2 < len(dec.Vertices); i += 3 {
		positions = append(positions, math.Vec3{X: dec.Vertices[i], Y: dec.Vertices[i+1], Z: dec.Vertices[i+2]})
	}

	var builders []*objBuilder
	byName := make(map[string]*objBuilder)
	for _, o := range dec.Objects {
		b, ok := byName[o.Name]
		if !ok {
			b = newOBJBuilder(o.Name)
			byName[o.Name] = b
			builders = append(builders, b)
		}
		for _, f := range o.Faces {
			face := make([]uint32, 0, len(f.Vertices))
			for _, global := range f.Vertices {
				if global < 0 || global >= len(positions) {
					return nil, fmt.Errorf("%w: %d with %d vertices", ErrOBJIndexRange, global+1, len(positions))
				}
				face = append(face, b.vertex(global, positions))
			}
			for i := 1; i+1 < len(face); i++ {
				b.obj.Indices = append(b.obj.Indices, face[0], face[i], face[i+1])
			}
		}
	}

	model := &OBJModel{VertexCount: len(positions)}
	for _, b := range builders {
		if len(b.obj.Indices) == 0 {
			continue
		}
		model.Objects = append(model.Objects, b.obj)
	}
	if len(model.Objects) == 0 {
		return nil, ErrOBJNoGeometry
	}
	return model, nil
}
