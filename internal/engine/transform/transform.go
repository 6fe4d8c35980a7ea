// Package transform provides position/rotation/scale transforms for mesh
// instances and converts them to the matrices used by the geometry layer.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Transform places a mesh instance in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// New returns an identity transform.
func New() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Uniform returns a transform with a uniform scale and a translation.
func Uniform(scale float32, position math.Vec3) Transform {
	t := New()
	t.Scale = mgl32.Vec3{scale, scale, scale}
	t.Position = mgl32.Vec3{position.X, position.Y, position.Z}
	return t
}

// RotateY rotates the transform about the world Y axis by angle radians.
func (t *Transform) RotateY(angle float32) {
	t.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}).Mul(t.Rotation).Normalize()
}

// ObjectToWorld returns the local-to-world matrix (T * R * S).
func (t Transform) ObjectToWorld() math.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Normalize().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return math.Mat4(translate.Mul4(rotate).Mul4(scale))
}

// WorldToObject returns the inverse of ObjectToWorld, composed analytically
// so that non-singular scales round-trip without a general inverse.
func (t Transform) WorldToObject() math.Mat4 {
	if t.Scale.X() == 0 || t.Scale.Y() == 0 || t.Scale.Z() == 0 {
		return t.ObjectToWorld().Inverse()
	}
	invScale := mgl32.Scale3D(1/t.Scale.X(), 1/t.Scale.Y(), 1/t.Scale.Z())
	invRotate := t.Rotation.Normalize().Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())
	return math.Mat4(invScale.Mul4(invRotate).Mul4(invTranslate))
}

// MaxScale returns the largest absolute axis scale, used to convert
// world-space brush radii into local space.
func (t Transform) MaxScale() float32 {
	m := t.Scale.X()
	if m < 0 {
		m = -m
	}
	for _, s := range []float32{t.Scale.Y(), t.Scale.Z()} {
		if s < 0 {
			s = -s
		}
		if s > m {
			m = s
		}
	}
	return m
}
