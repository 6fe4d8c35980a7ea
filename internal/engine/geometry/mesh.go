package geometry

import (
	"fmt"

	"github.com/Faultbox/orchid-atelier/internal/engine/transform"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Mesh is one editable mesh instance. Positions are in local space.
type Mesh struct {
	Name     string
	Topology Topology

	src       *Source
	positions []math.Vec3
	owned     bool // positions no longer alias src
	normals   []math.Vec3

	transform transform.Transform
	world     math.Mat4
	invWorld  math.Mat4

	bounds      Bounds
	boundsValid bool
	dirty       bool
}

// NewMesh creates a mesh that owns copies of positions and indices.
func NewMesh(positions []math.Vec3, indices []uint32) (*Mesh, error) {
	src, err := NewSource("", positions, indices)
	if err != nil {
		return nil, err
	}
	return src.Instantiate(), nil
}

// NewPointCloud creates an unindexed mesh with point topology.
func NewPointCloud(positions []math.Vec3) (*Mesh, error) {
	m, err := NewMesh(positions, nil)
	if err != nil {
		return nil, err
	}
	m.Topology = Points
	m.RecomputeNormals()
	return m, nil
}

func validateIndices(indices []uint32, vertexCount int) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangles, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexOutOfRange, idx, i, vertexCount)
		}
	}
	return nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.positions)
}

// Position returns the local position of vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	return m.positions[i]
}

// SetPosition writes vertex i, detaching from the shared source on first write.
func (m *Mesh) SetPosition(i int, p math.Vec3) {
	if !m.owned {
		m.detach()
	}
	m.positions[i] = p
	m.boundsValid = false
}

func (m *Mesh) detach() {
	own := make([]math.Vec3, len(m.positions))
	copy(own, m.positions)
	m.positions = own
	m.owned = true
}

// Shared reports whether the positions still alias the source buffer.
func (m *Mesh) Shared() bool {
	return !m.owned
}

// Source returns the immutable source this instance was created from.
func (m *Mesh) Source() *Source {
	return m.src
}

// Indexed reports whether the mesh has an index buffer.
func (m *Mesh) Indexed() bool {
	return len(m.src.indices) > 0
}

// Indices returns the shared index buffer. Callers must not modify it.
func (m *Mesh) Indices() []uint32 {
	return m.src.indices
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	if m.Topology == Points {
		return 0
	}
	if m.Indexed() {
		return len(m.src.indices) / 3
	}
	return len(m.positions) / 3
}

// Triangle returns the vertex indices of a face.
func (m *Mesh) Triangle(face int) ([3]int, bool) {
	if face < 0 || face >= m.TriangleCount() {
		return [3]int{}, false
	}
	if m.Indexed() {
		idx := m.src.indices[face*3 : face*3+3]
		return [3]int{int(idx[0]), int(idx[1]), int(idx[2])}, true
	}
	return [3]int{face * 3, face*3 + 1, face*3 + 2}, true
}

// FaceNormal returns the unit normal of a face in local space.
func (m *Mesh) FaceNormal(face int) (math.Vec3, bool) {
	tri, ok := m.Triangle(face)
	if !ok {
		return math.Vec3{}, false
	}
	return TriangleNormal(m.positions[tri[0]], m.positions[tri[1]], m.positions[tri[2]])
}

// Normals returns the per-vertex normals from the last recomputation.
func (m *Mesh) Normals() []math.Vec3 {
	return m.normals
}

// SetTransform places the instance in world space.
func (m *Mesh) SetTransform(t transform.Transform) {
	m.transform = t
	m.world = t.ObjectToWorld()
	m.invWorld = t.WorldToObject()
}

// Transform returns the current instance transform.
func (m *Mesh) Transform() transform.Transform {
	return m.transform
}

// WorldMatrix returns the local-to-world matrix.
func (m *Mesh) WorldMatrix() math.Mat4 {
	return m.world
}

// InverseWorldMatrix returns the world-to-local matrix.
func (m *Mesh) InverseWorldMatrix() math.Mat4 {
	return m.invWorld
}

// Bounds returns the local-space bounding box, recomputed after writes.
func (m *Mesh) Bounds() Bounds {
	if !m.boundsValid {
		m.bounds = computeBounds(m.positions)
		m.boundsValid = true
	}
	return m.bounds
}

// WorldBounds returns the box enclosing the transformed local bounds.
func (m *Mesh) WorldBounds() Bounds {
	b := m.Bounds()
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out.Extend(m.world.TransformPoint(corner))
	}
	return out
}

// MarkDirty flags the position buffer for re-upload.
func (m *Mesh) MarkDirty() {
	m.dirty = true
}

// Dirty reports whether positions changed since the last ClearDirty.
func (m *Mesh) Dirty() bool {
	return m.dirty
}

// ClearDirty is called by the renderer after uploading positions.
func (m *Mesh) ClearDirty() {
	m.dirty = false
}

// ToLocal converts a world-space point into the accessor's local space.
func ToLocal(a Accessor, world math.Vec3) math.Vec3 {
	return a.InverseWorldMatrix().TransformPoint(world)
}

// ToWorld converts a local-space point into world space.
func ToWorld(a Accessor, local math.Vec3) math.Vec3 {
	return a.WorldMatrix().TransformPoint(local)
}

func computeBounds(positions []math.Vec3) Bounds {
	b := EmptyBounds()
	for _, p := range positions {
		b.Extend(p)
	}
	return b
}
