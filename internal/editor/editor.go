// Package editor routes pointer input to the camera, sculpt session, paint
// brush and decal tracker according to the active mode.
package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/decal"
	"github.com/Faultbox/orchid-atelier/internal/engine/camera"
	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/internal/engine/picking"
	"github.com/Faultbox/orchid-atelier/internal/sculpt"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
)

// Editor errors.
var (
	ErrDuplicatePart = errors.New("part already loaded")
	ErrUnknownPart   = errors.New("part not loaded")
)

// Mode selects what a primary-button press does.
type Mode int

const (
	View Mode = iota
	Modeling
	Paint
	Decal
)

var modeNames = [...]string{"view", "modeling", "paint", "decal"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return View, fmt.Errorf("unknown mode %q", s)
}

// Part is one loaded mesh instance.
type Part struct {
	Name string
	Mesh *geometry.Mesh
}

// Options configures an Editor.
type Options struct {
	Decal  decal.Config
	Logger *zap.Logger
}

// Editor owns the interactive session for one avatar.
type Editor struct {
	camera  *camera.OrbitCamera
	state   *wardrobe.State
	session *sculpt.Session
	tracker *decal.Tracker
	log     *zap.Logger

	parts   []Part
	mode    Mode
	history []*wardrobe.State

	orbiting     bool
	orbitPrimary bool // button that started the orbit drag
	lastX, lastY float32
	decalPart    string
}

// New creates an editor in View mode.
func New(cam *camera.OrbitCamera, state *wardrobe.State, opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		camera: cam,
		state:  state,
		session: sculpt.NewSession(cam, cam,
			sculpt.WithLogger(log.Named("sculpt")),
			sculpt.WithBrush(state.Sculpt)),
		tracker: decal.NewTracker(decal.NewSolver(opts.Decal), log.Named("decal")),
		log:     log,
	}
}

// Camera returns the view camera.
func (e *Editor) Camera() *camera.OrbitCamera { return e.camera }

// State returns the wardrobe state edited by paint operations.
func (e *Editor) State() *wardrobe.State { return e.state }

// Session returns the sculpt session.
func (e *Editor) Session() *sculpt.Session { return e.session }

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// SetMode switches modes. Leaving Modeling ends any active stroke.
func (e *Editor) SetMode(m Mode) {
	if m == e.mode {
		return
	}
	if e.mode == Modeling {
		e.session.Cancel()
	}
	e.orbiting = false
	e.log.Debug("mode changed", zap.Stringer("from", e.mode), zap.Stringer("to", m))
	e.mode = m
}

// AddPart loads a mesh instance under name and registers its material.
func (e *Editor) AddPart(name string, mesh *geometry.Mesh, category wardrobe.PartCategory) error {
	if _, ok := e.Part(name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePart, name)
	}
	mesh.Name = name
	e.parts = append(e.parts, Part{Name: name, Mesh: mesh})
	e.state.AddPart(name, category)
	return nil
}

// Part returns a loaded mesh by name.
func (e *Editor) Part(name string) (*geometry.Mesh, bool) {
	for _, p := range e.parts {
		if p.Name == name {
			return p.Mesh, true
		}
	}
	return nil, false
}

// Parts returns the loaded parts in load order.
func (e *Editor) Parts() []Part {
	return e.parts
}

// Visible reports whether a part is shown.
func (e *Editor) Visible(name string) bool {
	p, ok := e.state.Part(name)
	return !ok || p.Visible
}

// Pick returns the closest visible part under a pixel.
func (e *Editor) Pick(x, y float32) (Part, picking.Hit, bool) {
	ray := e.camera.PointerRay(x, y)

	var (
		best    Part
		bestHit picking.Hit
		found   bool
	)
	for _, p := range e.parts {
		if !e.Visible(p.Name) {
			continue
		}
		hit, ok := picking.IntersectMesh(p.Mesh, ray)
		if ok && (!found || hit.Distance < bestHit.Distance) {
			best, bestHit, found = p, hit, true
		}
	}
	return best, bestHit, found
}

// PointerDown handles a button press. Secondary buttons always orbit; the
// primary button acts by mode and orbits when it misses the avatar.
func (e *Editor) PointerDown(x, y float32, primary bool) {
	e.lastX, e.lastY = x, y
	if !primary || e.mode == View {
		e.startOrbit(primary)
		return
	}

	part, hit, ok := e.Pick(x, y)
	if !ok {
		e.startOrbit(primary)
		return
	}

	switch e.mode {
	case Modeling:
		if err := e.session.SetBrush(e.state.Sculpt); err != nil {
			e.log.Warn("invalid sculpt brush", zap.Error(err))
			return
		}
		e.session.PointerDown(part.Mesh, hit.Point, true)
	case Paint:
		if e.edit(func() bool { return e.state.Paint(part.Name) }) {
			e.log.Debug("part painted", zap.String("part", part.Name), zap.String("color", e.state.Brush))
		}
	case Decal:
		e.tracker.Click(part.Mesh, hit)
		e.decalPart = part.Name
	}
}

// PointerMove handles pointer motion.
func (e *Editor) PointerMove(x, y float32) {
	switch {
	case e.session.State() == sculpt.Dragging:
		e.session.PointerMove(x, y)
	case e.orbiting:
		e.camera.HandleDrag(x-e.lastX, y-e.lastY)
	}
	e.lastX, e.lastY = x, y
}

func (e *Editor) startOrbit(primary bool) {
	if e.orbiting {
		return
	}
	e.orbiting = true
	e.orbitPrimary = primary
}

// PointerUp handles a button release. Only the primary button ends a
// stroke, and an orbit drag ends with the button that started it.
func (e *Editor) PointerUp(primary bool) {
	if primary {
		e.session.PointerUp()
	}
	if e.orbiting && e.orbitPrimary == primary {
		e.orbiting = false
	}
}

// Active reports whether a stroke or orbit drag is in progress.
func (e *Editor) Active() bool {
	return e.orbiting || e.session.State() == sculpt.Dragging
}

// Cancel ends any stroke or drag after pointer capture is lost.
func (e *Editor) Cancel() {
	e.session.Cancel()
	e.orbiting = false
}

// Wheel zooms the camera.
func (e *Editor) Wheel(delta float32) {
	e.camera.HandleZoom(delta)
}

// Escape drops the paint brush, or ends an active stroke.
func (e *Editor) Escape() {
	if e.state.HasBrush() {
		e.state.ClearBrush()
		return
	}
	e.Cancel()
}

// ToggleSymmetry flips mirrored sculpting for subsequent strokes.
func (e *Editor) ToggleSymmetry() bool {
	e.state.Sculpt.Symmetry = !e.state.Sculpt.Symmetry
	return e.state.Sculpt.Symmetry
}

// AutoDecal places the decal on a part's torso without a click.
func (e *Editor) AutoDecal(name string) (bool, error) {
	mesh, ok := e.Part(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPart, name)
	}
	if !e.tracker.AutoPlace(mesh) {
		return false, nil
	}
	e.decalPart = name
	return true, nil
}

// Decal returns the current placement and the part it sits on.
func (e *Editor) Decal() (string, decal.Placement, bool) {
	p, ok := e.tracker.Current()
	return e.decalPart, p, ok
}

// Dirty reports whether any part's geometry changed since ClearDirty.
func (e *Editor) Dirty() bool {
	for _, p := range e.parts {
		if p.Mesh.Dirty() {
			return true
		}
	}
	return false
}

// ClearDirty acknowledges a redraw.
func (e *Editor) ClearDirty() {
	for _, p := range e.parts {
		p.Mesh.ClearDirty()
	}
}

// FitCamera frames every visible part.
func (e *Editor) FitCamera() {
	b := geometry.EmptyBounds()
	for _, p := range e.parts {
		if !e.Visible(p.Name) {
			continue
		}
		wb := p.Mesh.WorldBounds()
		b.Extend(wb.Min)
		b.Extend(wb.Max)
	}
	if b.IsEmpty() {
		return
	}
	e.camera.FitToBounds(b.Min, b.Max)
}
