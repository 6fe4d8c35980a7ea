package sculpt

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/internal/engine/picking"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// State is the drag lifecycle of a Session.
type State int

const (
	Idle State = iota
	Dragging
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// View turns pointer positions into world rays.
type View interface {
	PointerRay(x, y float32) picking.Ray
	ViewDirection() math.Vec3
}

// OrbitLock is the camera control a stroke suspends while dragging.
type OrbitLock interface {
	SetOrbitEnabled(enabled bool)
}

// Stroke is the live state between pointer-down and pointer-up. Influence
// sets are frozen when the stroke starts.
type Stroke struct {
	Mesh             geometry.Accessor
	Brush            BrushConfig
	Influences       []Influence
	MirrorInfluences []Influence
	Plane            picking.Plane
	LastPoint        math.Vec3 // World space

	Moves   int // pointer moves that displaced vertices
	Skipped int // pointer moves that missed the drag plane
}

// Session converts pointer input into vertex displacement.
type Session struct {
	brush BrushConfig
	view  View
	orbit OrbitLock
	log   *zap.Logger

	state  State
	stroke *Stroke
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithBrush sets the initial brush.
func WithBrush(b BrushConfig) Option {
	return func(s *Session) {
		s.brush = b
	}
}

// NewSession creates an idle session. orbit may be nil.
func NewSession(view View, orbit OrbitLock, opts ...Option) *Session {
	s := &Session{
		brush: DefaultBrush(),
		view:  view,
		orbit: orbit,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Stroke returns the active stroke, or nil when idle.
func (s *Session) Stroke() *Stroke {
	return s.stroke
}

// Brush returns the brush used by the next stroke.
func (s *Session) Brush() BrushConfig {
	return s.brush
}

// SetBrush validates and stores the brush for subsequent strokes. An active
// stroke keeps the brush it started with.
func (s *Session) SetBrush(b BrushConfig) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.brush = b
	return nil
}

// PointerDown starts a stroke on mesh at a world-space surface point.
// Nothing happens outside modeling mode or while a stroke is active.
// A stroke with no influenced vertices still starts.
func (s *Session) PointerDown(mesh geometry.Accessor, hitWorld math.Vec3, modeling bool) bool {
	if !modeling || s.state == Dragging || mesh == nil {
		return false
	}

	hitLocal := geometry.ToLocal(mesh, hitWorld)
	primary, mirror := ComputeInfluences(mesh, hitLocal, s.brush.LocalRadius(mesh), s.brush.Symmetry)

	s.stroke = &Stroke{
		Mesh:             mesh,
		Brush:            s.brush,
		Influences:       primary,
		MirrorInfluences: mirror,
		Plane:            picking.NewPlane(s.view.ViewDirection(), hitWorld),
		LastPoint:        hitWorld,
	}
	s.state = Dragging
	if s.orbit != nil {
		s.orbit.SetOrbitEnabled(false)
	}

	s.log.Debug("stroke started",
		zap.Int("influences", len(primary)),
		zap.Int("mirror", len(mirror)),
		zap.Float32("radius", s.brush.Radius))
	return true
}

// PointerMove drags the influenced vertices by the pointer's motion on the
// camera-facing drag plane. Moves that miss the plane are ignored.
func (s *Session) PointerMove(x, y float32) {
	if s.state != Dragging {
		return
	}
	st := s.stroke

	point, ok := s.view.PointerRay(x, y).IntersectPlane(st.Plane)
	if !ok {
		st.Skipped++
		return
	}

	// Transform both endpoints, not the difference: the inverse world
	// matrix carries a translation.
	inv := st.Mesh.InverseWorldMatrix()
	localDelta := inv.TransformPoint(point).Sub(inv.TransformPoint(st.LastPoint))

	intensity := st.Brush.Intensity
	for _, inf := range st.Influences {
		p := st.Mesh.Position(inf.Index)
		st.Mesh.SetPosition(inf.Index, p.Add(localDelta.Scale(inf.Weight*intensity)))
	}
	mirrored := localDelta.MirrorX()
	for _, inf := range st.MirrorInfluences {
		p := st.Mesh.Position(inf.Index)
		st.Mesh.SetPosition(inf.Index, p.Add(mirrored.Scale(inf.Weight*intensity)))
	}

	if len(st.Influences) > 0 || len(st.MirrorInfluences) > 0 {
		st.Mesh.MarkDirty()
	}
	st.LastPoint = point
	st.Moves++
}

// PointerUp ends the stroke, restores camera orbiting and recomputes normals
// once. Calling it while idle does nothing.
func (s *Session) PointerUp() {
	if s.state != Dragging {
		return
	}
	st := s.stroke

	if s.orbit != nil {
		s.orbit.SetOrbitEnabled(true)
	}
	st.Mesh.RecomputeNormals()
	st.Mesh.MarkDirty()

	s.log.Debug("stroke ended",
		zap.Int("moves", st.Moves),
		zap.Int("skipped", st.Skipped))

	s.stroke = nil
	s.state = Idle
}

// Cancel ends the stroke when pointer capture is lost. Displacement already
// applied is kept.
func (s *Session) Cancel() {
	s.PointerUp()
}
