package sculpt

import (
	"fmt"

	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Influence is one vertex affected by a stroke.
type Influence struct {
	Index  int
	Weight float32 // in (0, 1]
}

// ComputeInfluences scans every vertex and returns those strictly within
// radius of hitLocal, weighted by Falloff. When symmetry is set the scan is
// repeated independently around the X-mirrored hit point; a vertex may
// appear in both sets.
//
// radius must be positive and the mesh must have vertices; violations panic
// because they indicate an integration bug (see BrushConfig.Validate).
func ComputeInfluences(mesh geometry.Accessor, hitLocal math.Vec3, radius float32, symmetry bool) (primary, mirror []Influence) {
	if mesh == nil || mesh.VertexCount() == 0 {
		panic("sculpt: ComputeInfluences on a mesh without positions")
	}
	if !(radius > 0) {
		panic(fmt.Sprintf("sculpt: ComputeInfluences radius %v is not positive", radius))
	}

	primary = scan(mesh, hitLocal, radius)
	if symmetry {
		mirror = scan(mesh, hitLocal.MirrorX(), radius)
	}
	return primary, mirror
}

func scan(mesh geometry.Accessor, center math.Vec3, radius float32) []Influence {
	var out []Influence
	for i, n := 0, mesh.VertexCount(); i < n; i++ {
		d := mesh.Position(i).Distance(center)
		if d < radius {
			out = append(out, Influence{Index: i, Weight: Falloff(d, radius)})
		}
	}
	return out
}
