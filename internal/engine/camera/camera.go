// Package camera provides the orbit camera used to view and edit avatars.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/internal/engine/picking"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY           float32 // radians
	Near, Far      float32
	ViewportWidth  float32
	ViewportHeight float32

	orbitDisabled bool
}

// NewOrbitCamera creates a camera framing a figure at the origin from +Z.
// Pitch limits allow 70 degrees above and below the horizon.
func NewOrbitCamera(width, height int) *OrbitCamera {
	limit := float32(70 * math32.Pi / 180)
	return &OrbitCamera{
		Distance:        40,
		MinDistance:     10,
		MaxDistance:     100,
		MinPitch:        -limit,
		MaxPitch:        limit,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            45 * math32.Pi / 180,
		Near:            0.1,
		Far:             1000,
		ViewportWidth:   float32(width),
		ViewportHeight:  float32(height),
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewDirection returns the unit vector the camera looks along.
func (c *OrbitCamera) ViewDirection() math.Vec3 {
	return c.Center.Sub(c.Position()).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.UnitY)
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	aspect := float32(1)
	if c.ViewportHeight > 0 {
		aspect = c.ViewportWidth / c.ViewportHeight
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// PointerRay returns the world-space ray under a pixel.
func (c *OrbitCamera) PointerRay(x, y float32) picking.Ray {
	return picking.ScreenToRay(x, y, c.ViewportWidth, c.ViewportHeight, c.ViewProjection().Inverse())
}

// Project maps a world point to pixel coordinates. ok is false for points
// behind the camera.
func (c *OrbitCamera) Project(p math.Vec3) (x, y float32, ok bool) {
	clip := c.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return (ndcX + 1) / 2 * c.ViewportWidth, (1 - ndcY) / 2 * c.ViewportHeight, true
}

// Resize updates the viewport dimensions.
func (c *OrbitCamera) Resize(width, height int) {
	c.ViewportWidth = float32(width)
	c.ViewportHeight = float32(height)
}

// SetOrbitEnabled toggles drag orbiting; sculpt strokes disable it.
func (c *OrbitCamera) SetOrbitEnabled(enabled bool) {
	c.orbitDisabled = !enabled
}

// OrbitEnabled reports whether drags currently orbit the camera.
func (c *OrbitCamera) OrbitEnabled() bool {
	return !c.orbitDisabled
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	if c.orbitDisabled {
		return
	}
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds centres the camera on a box and backs off far enough to see
// its full height.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min)
	extent := math32.Max(size.Y, math32.Max(size.X, size.Z))
	c.Distance = extent / (2 * math32.Tan(c.FovY/2)) * 1.2

	if c.MinDistance > c.Distance/4 {
		c.MinDistance = c.Distance / 4
	}
	if c.MaxDistance < c.Distance*4 {
		c.MaxDistance = c.Distance * 4
	}

	c.RotationX = 0
	c.RotationY = 0
}
