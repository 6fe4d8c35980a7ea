// Package picking provides ray casting against planes, boxes and meshes.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// parallelEpsilon is the |n·d| below which a ray is treated as parallel.
const parallelEpsilon = 1e-6

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coordinates, Y flipped.
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1, 1})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1, 1})

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

func unproject(invViewProj math.Mat4, clip math.Vec4) math.Vec3 {
	p := invViewProj.MulVec4(clip)
	if p[3] != 0 {
		return math.Vec3{X: p[0] / p[3], Y: p[1] / p[3], Z: p[2] / p[3]}
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Plane is the set of points p with Normal·(p - Point) = 0.
type Plane struct {
	Normal math.Vec3
	Point  math.Vec3
}

// NewPlane returns a plane through point with the given (normalized) normal.
func NewPlane(normal, point math.Vec3) Plane {
	return Plane{Normal: normal.Normalize(), Point: point}
}

// IntersectPlane returns the point where the ray crosses the plane.
// ok is false when the ray is parallel to the plane or the crossing lies
// behind the origin.
func (r Ray) IntersectPlane(p Plane) (math.Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math32.Abs(denom) < parallelEpsilon {
		return math.Vec3{}, false
	}
	t := p.Normal.Dot(p.Point.Sub(r.Origin)) / denom
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// triangleEpsilon rejects near-parallel ray/triangle pairs.
const triangleEpsilon = 1e-8

// IntersectTriangle runs the Möller–Trumbore test against a two-sided
// triangle. Returns the ray distance t.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit is the closest ray/mesh intersection.
type Hit struct {
	Point    math.Vec3 // World space
	Local    math.Vec3 // Mesh local space
	Distance float32   // World-space distance from the ray origin
	Face     int
}

// IntersectMesh returns the closest hit of a world-space ray against the
// mesh's triangles. The ray is tested in local space so positions are never
// transformed per vertex.
func IntersectMesh(mesh geometry.Accessor, ray Ray) (Hit, bool) {
	if mesh.TriangleCount() == 0 {
		return Hit{}, false
	}

	inv := mesh.InverseWorldMatrix()
	localOrigin := inv.TransformPoint(ray.Origin)
	localDir := inv.TransformDirection(ray.Direction)
	if localDir.LengthSquared() == 0 {
		return Hit{}, false
	}
	local := Ray{Origin: localOrigin, Direction: localDir}

	box := mesh.Bounds()
	if _, ok := local.IntersectAABB(AABB{Min: box.Min, Max: box.Max}); !ok {
		return Hit{}, false
	}

	best := Hit{Face: -1}
	bestT := float32(math32.MaxFloat32)
	for f, n := 0, mesh.TriangleCount(); f < n; f++ {
		tri, _ := mesh.Triangle(f)
		t, ok := local.IntersectTriangle(mesh.Position(tri[0]), mesh.Position(tri[1]), mesh.Position(tri[2]))
		if ok && t < bestT {
			bestT = t
			best.Face = f
		}
	}
	if best.Face < 0 {
		return Hit{}, false
	}

	// localDir is unnormalized, so t is a parameter, not a distance; the
	// world point is recovered through the world matrix.
	best.Local = local.At(bestT)
	best.Point = mesh.WorldMatrix().TransformPoint(best.Local)
	best.Distance = best.Point.Distance(ray.Origin)
	return best, true
}
