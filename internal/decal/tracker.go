package decal

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
	"github.com/Faultbox/orchid-atelier/internal/engine/picking"
)

// Tracker holds the current decal placement. Failed placements keep the
// previous value.
type Tracker struct {
	solver *Solver
	log    *zap.Logger

	current Placement
	placed  bool
}

// NewTracker creates a tracker with no placement. log may be nil.
func NewTracker(solver *Solver, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{solver: solver, log: log}
}

// Current returns the placement and whether one exists.
func (t *Tracker) Current() (Placement, bool) {
	return t.current, t.placed
}

// Click places the decal at a picked surface point.
func (t *Tracker) Click(mesh geometry.Accessor, hit picking.Hit) {
	t.set(t.solver.Place(mesh, hit.Point, hit.Face, hit.Face >= 0), "click")
}

// ClickRay picks mesh with a world ray and places the decal at the hit.
// A miss leaves the placement unchanged.
func (t *Tracker) ClickRay(mesh geometry.Accessor, ray picking.Ray) bool {
	hit, ok := picking.IntersectMesh(mesh, ray)
	if !ok {
		t.log.Debug("decal click missed")
		return false
	}
	t.Click(mesh, hit)
	return true
}

// AutoPlace runs default torso placement. A miss leaves the placement
// unchanged.
func (t *Tracker) AutoPlace(mesh geometry.Accessor) bool {
	p, ok := t.solver.PlaceDefault(mesh)
	if !ok {
		t.log.Debug("decal auto placement found no surface")
		return false
	}
	t.set(p, "auto")
	return true
}

// Clear removes the placement.
func (t *Tracker) Clear() {
	t.current = Placement{}
	t.placed = false
}

func (t *Tracker) set(p Placement, source string) {
	t.current = p
	t.placed = true
	t.log.Debug("decal placed",
		zap.String("source", source),
		zap.Int("face", p.Face),
		zap.Bool("fallback_normal", !p.HasFace))
}
