// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Line is a world-space segment.
type Line [2]math.Vec3

// BBoxWireframeLineCount is the number of edges of a box wireframe.
const BBoxWireframeLineCount = 12

// DefaultBBoxPadding is the default padding for selection boxes, in local
// units.
const DefaultBBoxPadding = 0.02

// BoundsWireframe returns the 12 edges of a local box, padded and
// transformed by world.
func BoundsWireframe(b geometry.Bounds, world math.Mat4, padding float32) []Line {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	var c [8]math.Vec3
	for i := range c {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		c[i] = world.TransformPoint(p)
	}

	return []Line{
		// Bottom face
		{c[0], c[1]}, {c[1], c[5]}, {c[5], c[4]}, {c[4], c[0]},
		// Top face
		{c[2], c[3]}, {c[3], c[7]}, {c[7], c[6]}, {c[6], c[2]},
		// Vertical edges
		{c[0], c[2]}, {c[1], c[3]}, {c[5], c[7]}, {c[4], c[6]},
	}
}

// MeshWireframe returns each unique triangle edge of mesh in world space.
func MeshWireframe(mesh geometry.Accessor) []Line {
	world := mesh.WorldMatrix()
	n := mesh.TriangleCount()
	seen := make(map[[2]int]struct{}, n*3/2)
	lines := make([]Line, 0, n*3/2)

	for f := 0; f < n; f++ {
		tri, ok := mesh.Triangle(f)
		if !ok {
			continue
		}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			lines = append(lines, Line{
				world.TransformPoint(mesh.Position(a)),
				world.TransformPoint(mesh.Position(b)),
			})
		}
	}
	return lines
}

// QuadOutline closes four local corners into a loop transformed by world.
func QuadOutline(corners [4]math.Vec3, world math.Mat4) []Line {
	lines := make([]Line, 4)
	for i := range corners {
		lines[i] = Line{
			world.TransformPoint(corners[i]),
			world.TransformPoint(corners[(i+1)%4]),
		}
	}
	return lines
}
