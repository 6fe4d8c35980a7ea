// Package geometry provides the mesh buffers that sculpting, picking and
// decal placement operate on.
package geometry

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Geometry errors.
var (
	ErrNoPositions     = errors.New("mesh has no vertex positions")
	ErrNotTriangles    = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("triangle index out of range")
)

// Topology describes how the position buffer is assembled into primitives.
type Topology int

const (
	// Triangles uses the index buffer, or consecutive triples when unindexed.
	Triangles Topology = iota
	// Points has no faces; used for point clouds and tests.
	Points
)

// Accessor is the narrow view of a mesh that the interaction solvers use.
type Accessor interface {
	VertexCount() int
	Position(i int) math.Vec3
	SetPosition(i int, p math.Vec3)

	// Indexed reports whether the mesh has an index buffer.
	Indexed() bool
	TriangleCount() int
	// Triangle returns the vertex indices of a face.
	Triangle(face int) ([3]int, bool)

	WorldMatrix() math.Mat4
	InverseWorldMatrix() math.Mat4
	Bounds() Bounds

	// MarkDirty flags the position buffer for re-upload.
	MarkDirty()
	RecomputeNormals()
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns an inverted box that any point expands.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Height returns the Y extent.
func (b Bounds) Height() float32 {
	return b.Max.Y - b.Min.Y
}

// Center returns the box centre.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the radius of the sphere around Center enclosing the box.
func (b Bounds) Radius() float32 {
	return b.Size().Length() / 2
}
