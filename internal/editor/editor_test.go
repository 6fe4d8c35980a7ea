package editor

import (
	"errors"
	"testing"

	"github.com/Faultbox/orchid-atelier/internal/decal"
	"github.com/Faultbox/orchid-atelier/internal/engine/camera"
	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/internal/engine/transform"
	"github.com/Faultbox/orchid-atelier/internal/sculpt"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

const (
	width   = 800
	height  = 600
	centerX = width / 2
	centerY = height / 2
)

func sphere(t *testing.T, radius float32) *geometry.Mesh {
	t.Helper()
	src, err := geometry.UVSphere("ball", radius, 16, 32)
	if err != nil {
		t.Fatalf("UVSphere: %v", err)
	}
	return src.Instantiate()
}

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	state := wardrobe.NewState()
	state.Sculpt = sculpt.BrushConfig{Radius: 1, Intensity: 1}

	cfg := decal.DefaultConfig()
	cfg.ChestHeight = 0.7
	e := New(camera.NewOrbitCamera(width, height), state, Options{Decal: cfg})
	if err := e.AddPart("Body", sphere(t, 5), wardrobe.Skin); err != nil {
		t.Fatalf("AddPart: %v", err)
	}
	e.ClearDirty()
	return e
}

func TestModeNames(t *testing.T) {
	for _, m := range []Mode{View, Modeling, Paint, Decal} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("sculpt"); err == nil {
		t.Error("ParseMode accepted an unknown name")
	}
}

func TestAddPartDuplicate(t *testing.T) {
	e := newTestEditor(t)
	if err := e.AddPart("Body", sphere(t, 1), wardrobe.Skin); !errors.Is(err, ErrDuplicatePart) {
		t.Errorf("AddPart duplicate error = %v", err)
	}
	if p, ok := e.State().Part("Body"); !ok || p.Category != wardrobe.Skin {
		t.Errorf("Body state = %+v, %v", p, ok)
	}
}

func TestViewModeOrbits(t *testing.T) {
	e := newTestEditor(t)
	before := snapshotPositions(e)

	e.PointerDown(centerX, centerY, true)
	e.PointerMove(centerX+50, centerY)
	e.PointerUp(true)

	if e.Camera().RotationY == 0 {
		t.Error("drag in view mode should orbit the camera")
	}
	if e.Dirty() || !samePositions(before, snapshotPositions(e)) {
		t.Error("view mode must not touch geometry")
	}
}

func TestModelingStroke(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Modeling)

	e.PointerDown(centerX, centerY, true)
	if e.Session().State() != sculpt.Dragging {
		t.Fatalf("session state = %v, want dragging", e.Session().State())
	}
	if e.Camera().OrbitEnabled() {
		t.Error("orbit should be disabled during a stroke")
	}

	e.PointerMove(centerX+20, centerY)
	if e.Camera().RotationY != 0 {
		t.Error("camera orbited during a stroke")
	}
	if !e.Dirty() {
		t.Error("stroke should dirty the mesh")
	}

	e.PointerUp(true)
	if e.Session().State() != sculpt.Idle || !e.Camera().OrbitEnabled() {
		t.Error("stroke did not end cleanly")
	}
	e.ClearDirty()
	if e.Dirty() {
		t.Error("ClearDirty left dirty parts")
	}
}

func TestModelingMissOrbits(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Modeling)

	e.PointerDown(5, 5, true)
	if e.Session().State() != sculpt.Idle {
		t.Fatal("stroke started on empty space")
	}
	e.PointerMove(40, 5)
	if e.Camera().RotationY == 0 {
		t.Error("missed press should orbit")
	}
}

func TestSecondaryButtonOrbitsInEveryMode(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Modeling)

	e.PointerDown(centerX, centerY, false)
	e.PointerMove(centerX, centerY+30)
	if e.Session().State() != sculpt.Idle {
		t.Error("secondary button started a stroke")
	}
	if e.Camera().RotationX == 0 {
		t.Error("secondary drag should orbit")
	}
}

func TestSecondaryReleaseKeepsStroke(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Modeling)

	e.PointerDown(centerX, centerY, true)
	e.PointerDown(centerX, centerY, false)
	e.PointerUp(false)
	if e.Session().State() != sculpt.Dragging {
		t.Fatal("secondary release ended the stroke")
	}
	if !e.Active() {
		t.Error("editor should stay active during the stroke")
	}

	e.PointerMove(centerX+20, centerY)
	if !e.Dirty() {
		t.Error("stroke stopped displacing after a secondary release")
	}

	e.PointerUp(true)
	if e.Session().State() != sculpt.Idle || e.Active() {
		t.Error("primary release should end the stroke")
	}
}

func TestOrbitEndsWithItsButton(t *testing.T) {
	e := newTestEditor(t)

	e.PointerDown(centerX, centerY, true)
	e.PointerUp(false)
	e.PointerMove(centerX+50, centerY)
	if e.Camera().RotationY == 0 {
		t.Error("secondary release ended a primary orbit")
	}

	e.PointerUp(true)
	rot := e.Camera().RotationY
	e.PointerMove(centerX+90, centerY)
	if e.Camera().RotationY != rot || e.Active() {
		t.Error("orbit continued after its button was released")
	}
}

func TestInvalidBrushBlocksStroke(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Modeling)
	e.State().Sculpt.Radius = 0

	e.PointerDown(centerX, centerY, true)
	if e.Session().State() != sculpt.Idle {
		t.Error("stroke started with an invalid brush")
	}
}

func TestSetModeCancelsStroke(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Modeling)
	e.PointerDown(centerX, centerY, true)

	e.SetMode(View)
	if e.Session().State() != sculpt.Idle {
		t.Error("leaving modeling should end the stroke")
	}
	if !e.Camera().OrbitEnabled() {
		t.Error("orbit should be restored")
	}
}

func TestPaintMode(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Paint)

	e.PointerDown(centerX, centerY, true)
	if p, _ := e.State().Part("Body"); p.Color != wardrobe.DefaultColor {
		t.Error("painted without a brush")
	}

	if err := e.State().SelectBrush(wardrobe.Palette[6]); err != nil {
		t.Fatal(err)
	}
	e.PointerDown(centerX, centerY, true)
	e.PointerUp(true)
	if p, _ := e.State().Part("Body"); p.Color != wardrobe.Palette[6] {
		t.Errorf("Body colour = %s, want %s", p.Color, wardrobe.Palette[6])
	}

	e.Escape()
	if e.State().HasBrush() {
		t.Error("Escape should clear the brush")
	}
}

func TestDecalClick(t *testing.T) {
	e := newTestEditor(t)
	e.SetMode(Decal)

	if _, _, ok := e.Decal(); ok {
		t.Fatal("decal placed before any click")
	}
	e.PointerDown(centerX, centerY, true)
	e.PointerUp(true)

	part, p, ok := e.Decal()
	if !ok || part != "Body" {
		t.Fatalf("Decal() = %q, %v", part, ok)
	}
	if !p.HasFace || p.Normal.Z < 0.9 {
		t.Errorf("decal normal = %v, want facing the camera", p.Normal)
	}

	// A miss keeps the placement.
	e.PointerDown(5, 5, true)
	e.PointerUp(true)
	if _, again, _ := e.Decal(); again != p {
		t.Error("missed click moved the decal")
	}
}

func TestPickNearestVisible(t *testing.T) {
	e := newTestEditor(t)
	pendant := sphere(t, 1)
	pendant.SetTransform(transform.Uniform(1, math.Vec3{Z: 10}))
	if err := e.AddPart("Pendant", pendant, wardrobe.Accessory); err != nil {
		t.Fatal(err)
	}

	part, _, ok := e.Pick(centerX, centerY)
	if !ok || part.Name != "Pendant" {
		t.Errorf("picked %q, want Pendant", part.Name)
	}

	if err := e.State().SetVisible("Pendant", false); err != nil {
		t.Fatal(err)
	}
	part, _, ok = e.Pick(centerX, centerY)
	if !ok || part.Name != "Body" {
		t.Errorf("picked %q with Pendant hidden, want Body", part.Name)
	}
}

func TestAutoDecal(t *testing.T) {
	e := newTestEditor(t)
	src, err := geometry.Mannequin("figure", 2, 20)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.AddPart("Figure", src.Instantiate(), wardrobe.Skin); err != nil {
		t.Fatal(err)
	}

	ok, err := e.AutoDecal("Figure")
	if err != nil || !ok {
		t.Fatalf("AutoDecal = %v, %v", ok, err)
	}
	if part, _, _ := e.Decal(); part != "Figure" {
		t.Errorf("decal part = %q", part)
	}
	if _, err := e.AutoDecal("Cape"); !errors.Is(err, ErrUnknownPart) {
		t.Errorf("AutoDecal(Cape) error = %v", err)
	}
}

func TestToggleSymmetry(t *testing.T) {
	e := newTestEditor(t)
	if !e.ToggleSymmetry() || !e.State().Sculpt.Symmetry {
		t.Error("symmetry should turn on")
	}
	if e.ToggleSymmetry() {
		t.Error("symmetry should turn off")
	}
}

func TestFitCameraAndWheel(t *testing.T) {
	e := newTestEditor(t)
	e.FitCamera()

	c := e.Camera()
	if !c.Center.ApproxEqual(math.Vec3{}, 1e-3) {
		t.Errorf("centre = %v, want origin", c.Center)
	}
	if c.Distance < 10 || c.Distance > 20 {
		t.Errorf("distance = %v, want framing a 10 unit sphere", c.Distance)
	}

	d := c.Distance
	e.Wheel(1)
	if c.Distance >= d {
		t.Error("wheel up should zoom in")
	}
}

func snapshotPositions(e *Editor) [][]math.Vec3 {
	var out [][]math.Vec3
	for _, p := range e.Parts() {
		pos := make([]math.Vec3, p.Mesh.VertexCount())
		for i := range pos {
			pos[i] = p.Mesh.Position(i)
		}
		out = append(out, pos)
	}
	return out
}

func samePositions(a, b [][]math.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
