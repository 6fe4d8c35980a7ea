package geometry

import "github.com/Faultbox/orchid-atelier/pkg/math"

// degenerateArea is the cross-product magnitude below which a triangle has no normal.
const degenerateArea = 1e-12

// TriangleNormal returns the unit normal (b-a)x(c-a) of a counter-clockwise
// triangle. ok is false for degenerate triangles.
func TriangleNormal(a, b, c math.Vec3) (math.Vec3, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.LengthSquared() < degenerateArea {
		return math.Vec3{}, false
	}
	return n.Normalize(), true
}

// RecomputeNormals rebuilds per-vertex normals by accumulating area-weighted
// face normals. Vertices touched by no valid face get +Y.
func (m *Mesh) RecomputeNormals() {
	if len(m.normals) != len(m.positions) {
		m.normals = make([]math.Vec3, len(m.positions))
	} else {
		for i := range m.normals {
			m.normals[i] = math.Vec3{}
		}
	}

	for f, n := 0, m.TriangleCount(); f < n; f++ {
		tri, _ := m.Triangle(f)
		a, b, c := m.positions[tri[0]], m.positions[tri[1]], m.positions[tri[2]]
		// Unnormalized cross product weights by area.
		fn := b.Sub(a).Cross(c.Sub(a))
		for _, vi := range tri {
			m.normals[vi] = m.normals[vi].Add(fn)
		}
	}

	for i, n := range m.normals {
		if n.LengthSquared() < degenerateArea {
			m.normals[i] = math.UnitY
			continue
		}
		m.normals[i] = n.Normalize()
	}
}
