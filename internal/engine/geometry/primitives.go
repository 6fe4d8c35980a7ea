package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// ProfilePoint is one ring of a surface of revolution around the Y axis.
type ProfilePoint struct {
	Radius float32
	Y      float32
}

// Lathe revolves a top-to-bottom profile around the Y axis. The first and
// last profile points become single pole vertices; interior points become
// rings of segments vertices. Faces wind counter-clockwise seen from outside.
func Lathe(name string, profile []ProfilePoint, segments int) (*Source, error) {
	if len(profile) < 3 || segments < 3 {
		return nil, ErrNoPositions
	}

	rings := len(profile) - 2
	positions := make([]math.Vec3, 0, 2+rings*segments)
	positions = append(positions, math.Vec3{Y: profile[0].Y})

	for r := 1; r <= rings; r++ {
		p := profile[r]
		for s := 0; s < segments; s++ {
			phi := 2 * math32.Pi * float32(s) / float32(segments)
			positions = append(positions, math.Vec3{
				X: p.Radius * math32.Cos(phi),
				Y: p.Y,
				Z: p.Radius * math32.Sin(phi),
			})
		}
	}
	bottom := uint32(len(positions))
	positions = append(positions, math.Vec3{Y: profile[len(profile)-1].Y})

	ring := func(r, s int) uint32 {
		return uint32(1 + (r-1)*segments + s%segments)
	}

	var indices []uint32
	// Top cap.
	for s := 0; s < segments; s++ {
		indices = append(indices, 0, ring(1, s+1), ring(1, s))
	}
	// Bands between consecutive rings.
	for r := 1; r < rings; r++ {
		for s := 0; s < segments; s++ {
			u0, u1 := ring(r, s), ring(r, s+1)
			l0, l1 := ring(r+1, s), ring(r+1, s+1)
			indices = append(indices, u0, l1, l0, u0, u1, l1)
		}
	}
	// Bottom cap.
	for s := 0; s < segments; s++ {
		indices = append(indices, bottom, ring(rings, s), ring(rings, s+1))
	}

	return NewSource(name, positions, indices)
}

// UVSphere returns a sphere centred at the origin. With an even segment
// count the vertex set is mirror symmetric across X.
func UVSphere(name string, radius float32, rings, segments int) (*Source, error) {
	if rings < 2 {
		rings = 2
	}
	profile := make([]ProfilePoint, rings+1)
	for i := 0; i <= rings; i++ {
		theta := math32.Pi * float32(i) / float32(rings)
		profile[i] = ProfilePoint{
			Radius: radius * math32.Sin(theta),
			Y:      radius * math32.Cos(theta),
		}
	}
	profile[0].Radius = 0
	profile[rings].Radius = 0
	return Lathe(name, profile, segments)
}

// mannequinProfile approximates a standing figure as (radius, height)
// fractions of total height, head to feet.
var mannequinProfile = []ProfilePoint{
	{0, 1.00},
	{0.060, 0.98},
	{0.075, 0.93},
	{0.060, 0.87},
	{0.035, 0.84},
	{0.110, 0.80},
	{0.125, 0.72},
	{0.100, 0.62},
	{0.120, 0.52},
	{0.090, 0.40},
	{0.060, 0.25},
	{0.045, 0.08},
	{0, 0.00},
}

// Mannequin returns a rotationally symmetric body proxy of the given height
// standing on Y=0.
func Mannequin(name string, height float32, segments int) (*Source, error) {
	profile := make([]ProfilePoint, len(mannequinProfile))
	for i, p := range mannequinProfile {
		profile[i] = ProfilePoint{Radius: p.Radius * height, Y: p.Y * height}
	}
	return Lathe(name, profile, segments)
}

// LatticeCube returns n*n*n points spread uniformly over [-half, half]^3.
func LatticeCube(n int, half float32) (*Mesh, error) {
	if n < 2 {
		return nil, ErrNoPositions
	}
	step := 2 * half / float32(n-1)
	positions := make([]math.Vec3, 0, n*n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				positions = append(positions, math.Vec3{
					X: -half + float32(x)*step,
					Y: -half + float32(y)*step,
					Z: -half + float32(z)*step,
				})
			}
		}
	}
	return NewPointCloud(positions)
}

// Dress returns a flared skirt tube centred on the origin: waist radius 0.5,
// hem radius 0.5+width and length 1.5+length, capped at both ends.
func Dress(name string, width, length float32, segments int) (*Source, error) {
	half := (1.5 + length) / 2
	return Lathe(name, []ProfilePoint{
		{0, half},
		{0.5, half},
		{0.5 + width, -half},
		{0, -half},
	}, segments)
}
