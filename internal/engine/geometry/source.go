package geometry

import (
	"github.com/Faultbox/orchid-atelier/internal/engine/transform"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Source is immutable geometry shared by every instance created from it.
// Instances reference its buffers until their first write.
type Source struct {
	name      string
	positions []math.Vec3
	indices   []uint32
}

// NewSource copies positions and indices into a new shared source.
func NewSource(name string, positions []math.Vec3, indices []uint32) (*Source, error) {
	if len(positions) == 0 {
		return nil, ErrNoPositions
	}
	if err := validateIndices(indices, len(positions)); err != nil {
		return nil, err
	}

	s := &Source{
		name:      name,
		positions: make([]math.Vec3, len(positions)),
	}
	copy(s.positions, positions)
	if len(indices) > 0 {
		s.indices = make([]uint32, len(indices))
		copy(s.indices, indices)
	}
	return s, nil
}

// Name returns the source identifier (mesh name from the asset).
func (s *Source) Name() string {
	return s.name
}

// VertexCount returns the number of source vertices.
func (s *Source) VertexCount() int {
	return len(s.positions)
}

// Instantiate returns a new mesh instance with identity transform whose
// positions are copy-on-write over the source buffer.
func (s *Source) Instantiate() *Mesh {
	m := &Mesh{
		Name:      s.name,
		Topology:  Triangles,
		src:       s,
		positions: s.positions,
	}
	m.SetTransform(transform.New())
	m.RecomputeNormals()
	return m
}
