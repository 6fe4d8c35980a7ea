package camera

import (
	"testing"

	"github.com/Faultbox/orchid-atelier/pkg/math"
)

func TestDefaultCameraLooksDownMinusZ(t *testing.T) {
	c := NewOrbitCamera(800, 600)

	if got := c.Position(); !got.ApproxEqual(math.Vec3{Z: 40}, 1e-4) {
		t.Errorf("Position() = %v, want (0,0,40)", got)
	}
	if got := c.ViewDirection(); !got.ApproxEqual(math.Vec3{Z: -1}, 1e-5) {
		t.Errorf("ViewDirection() = %v, want (0,0,-1)", got)
	}
}

func TestPointerRayThroughCenter(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	ray := c.PointerRay(400, 300)
	if !ray.Direction.ApproxEqual(c.ViewDirection(), 1e-4) {
		t.Errorf("center ray %v, view %v", ray.Direction, c.ViewDirection())
	}
}

func TestProjectRoundTrip(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	c.RotationY = 0.4
	c.RotationX = 0.2

	p := math.Vec3{X: 1, Y: 2, Z: -1}
	x, y, ok := c.Project(p)
	if !ok {
		t.Fatal("point should be in front of the camera")
	}
	ray := c.PointerRay(x, y)
	toPoint := p.Sub(ray.Origin).Normalize()
	if !toPoint.ApproxEqual(ray.Direction, 1e-3) {
		t.Errorf("ray %v does not pass through %v (dir to point %v)", ray.Direction, p, toPoint)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	if _, _, ok := c.Project(math.Vec3{Z: 100}); ok {
		t.Error("point behind camera should not project")
	}
}

func TestOrbitLock(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	c.SetOrbitEnabled(false)
	c.HandleDrag(100, 50)
	if c.RotationX != 0 || c.RotationY != 0 {
		t.Errorf("locked camera rotated to (%v, %v)", c.RotationX, c.RotationY)
	}

	c.SetOrbitEnabled(true)
	c.HandleDrag(100, 50)
	if c.RotationY == 0 || c.RotationX == 0 {
		t.Error("unlocked camera should rotate")
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want clamp at %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want clamp at %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera(800, 600)
	c.FitToBounds(math.Vec3{X: -20, Y: 0, Z: -10}, math.Vec3{X: 20, Y: 170, Z: 10})

	if !c.Center.ApproxEqual(math.Vec3{Y: 85}, 1e-4) {
		t.Errorf("Center = %v", c.Center)
	}
	if c.Distance <= 170/2 {
		t.Errorf("Distance %v too close to frame the figure", c.Distance)
	}
	if c.Distance > c.MaxDistance || c.Distance < c.MinDistance {
		t.Errorf("Distance %v outside [%v, %v]", c.Distance, c.MinDistance, c.MaxDistance)
	}
}
