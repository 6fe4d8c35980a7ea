package decal

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/internal/engine/picking"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// parallelUp is the |normal·up| above which the look-at basis switches to
// the fallback up axis.
const parallelUp = 0.999

// Placement is a decal pose in the mesh's local space.
type Placement struct {
	Position math.Vec3
	Normal   math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	Face    int
	HasFace bool // false when Normal is the +Z fallback
}

// Matrix returns the decal's local TRS matrix.
func (p Placement) Matrix() math.Mat4 {
	return math.Compose(p.Position, p.Rotation, p.Scale)
}

// WorldMatrix returns the decal's world matrix on mesh.
func (p Placement) WorldMatrix(mesh geometry.Accessor) math.Mat4 {
	return mesh.WorldMatrix().Mul(p.Matrix())
}

// Corners returns the four local-space corners of the decal quad.
func (p Placement) Corners() [4]math.Vec3 {
	m := p.Matrix()
	return [4]math.Vec3{
		m.TransformPoint(math.Vec3{X: -0.5, Y: -0.5}),
		m.TransformPoint(math.Vec3{X: 0.5, Y: -0.5}),
		m.TransformPoint(math.Vec3{X: 0.5, Y: 0.5}),
		m.TransformPoint(math.Vec3{X: -0.5, Y: 0.5}),
	}
}

// Solver computes decal placements. It holds no state between calls.
type Solver struct {
	cfg Config
}

// NewSolver creates a solver. cfg must pass Validate.
func NewSolver(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// Config returns the solver constants.
func (s *Solver) Config() Config {
	return s.cfg
}

// Place builds a placement at a world-space surface point. The face normal
// is used when hasFace is set and the mesh is indexed; otherwise the decal
// faces local +Z.
func (s *Solver) Place(mesh geometry.Accessor, worldHit math.Vec3, face int, hasFace bool) Placement {
	local := geometry.ToLocal(mesh, worldHit)

	normal, ok := faceNormal(mesh, face, hasFace)
	if !ok {
		normal = math.UnitZ
	}

	height := mesh.Bounds().Height()
	offset := s.cfg.offsetFor(height)
	if !(height > 0) {
		height = 1
	}
	size := s.cfg.SizeFraction * height

	return Placement{
		Position: local.Add(normal.Scale(offset)),
		Normal:   normal,
		Rotation: orient(normal, localUp(mesh), localAxis(mesh, math.UnitZ)),
		Scale:    math.Vec3{X: size, Y: size, Z: s.cfg.DepthFraction * height},
		Face:     face,
		HasFace:  ok,
	}
}

// PlaceDefault places a decal on the torso without a click. Rays are cast
// inward at chest height from evenly spaced horizontal directions, starting
// at +Z; the hit closest to its probe origin wins. ok is false when no probe
// hits the mesh.
func (s *Solver) PlaceDefault(mesh geometry.Accessor) (Placement, bool) {
	b := mesh.Bounds()
	if b.IsEmpty() {
		return Placement{}, false
	}
	center := b.Center()
	center.Y = b.Min.Y + s.cfg.ChestHeight*b.Height()
	reach := b.Radius()*2 + 1

	world := mesh.WorldMatrix()
	var (
		best  picking.Hit
		found bool
	)
	n := s.cfg.ProbeDirections
	for i := 0; i < n; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(n)
		dir := math.Vec3{X: math32.Sin(angle), Z: math32.Cos(angle)}

		origin := center.Add(dir.Scale(reach))
		ray := picking.Ray{
			Origin:    world.TransformPoint(origin),
			Direction: world.TransformDirection(dir.Negate()).Normalize(),
		}
		hit, ok := picking.IntersectMesh(mesh, ray)
		if ok && (!found || hit.Distance < best.Distance) {
			best = hit
			found = true
		}
	}
	if !found {
		return Placement{}, false
	}
	return s.Place(mesh, best.Point, best.Face, true), true
}

func faceNormal(mesh geometry.Accessor, face int, hasFace bool) (math.Vec3, bool) {
	if !hasFace || !mesh.Indexed() {
		return math.Vec3{}, false
	}
	tri, ok := mesh.Triangle(face)
	if !ok {
		return math.Vec3{}, false
	}
	return geometry.TriangleNormal(mesh.Position(tri[0]), mesh.Position(tri[1]), mesh.Position(tri[2]))
}

// localAxis expresses a world direction in the mesh's local space.
func localAxis(mesh geometry.Accessor, world math.Vec3) math.Vec3 {
	return mesh.InverseWorldMatrix().TransformDirection(world).Normalize()
}

// localUp is world +Y in the mesh's local space.
func localUp(mesh geometry.Accessor) math.Vec3 {
	return localAxis(mesh, math.UnitY)
}

// orient returns a rotation taking local +Z to normal, using up as the
// secondary axis, followed by a quarter-turn roll about the normal so the
// texture's up matches the surface. fallback replaces up when the normal is
// parallel to it.
func orient(normal, up, fallback math.Vec3) math.Quat {
	if math32.Abs(normal.Dot(up)) > parallelUp {
		up = fallback
	}
	x := up.Cross(normal).Normalize()
	y := normal.Cross(x)

	look := math.QuatFromMat4(math.Basis(x, y, normal))
	roll := math.QuatFromAxisAngle(math.UnitZ, math32.Pi/2)
	return look.Mul(roll).Normalize()
}
