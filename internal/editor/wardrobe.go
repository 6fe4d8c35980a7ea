package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/pattern"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
)

// MaxHistory is the number of wardrobe edits Undo can revert.
const MaxHistory = 32

// edit runs fn and records the prior wardrobe state when fn reports a
// change.
func (e *Editor) edit(fn func() bool) bool {
	snap, err := e.state.Snapshot()
	if err != nil {
		e.log.Warn("wardrobe snapshot failed", zap.Error(err))
		snap = nil
	}
	if !fn() {
		return false
	}
	if snap != nil {
		e.history = append(e.history, snap)
		if len(e.history) > MaxHistory {
			e.history = e.history[len(e.history)-MaxHistory:]
		}
	}
	return true
}

// CanUndo reports whether a wardrobe edit can be reverted.
func (e *Editor) CanUndo() bool {
	return len(e.history) > 0
}

// Undo reverts the last wardrobe edit. The brush selection and sculpt
// settings are not part of the history.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	brush, sculptCfg := e.state.Brush, e.state.Sculpt
	*e.state = *last
	e.state.Brush, e.state.Sculpt = brush, sculptCfg

	e.log.Debug("wardrobe edit undone", zap.Int("remaining", len(e.history)))
	return true
}

// CyclePattern assigns the catalog pattern after the part's current one,
// wrapping to the first.
func (e *Editor) CyclePattern(name string) (pattern.Entry, error) {
	p, ok := e.state.Part(name)
	if !ok {
		return pattern.Entry{}, fmt.Errorf("%w: %s", ErrUnknownPart, name)
	}
	catalog := e.state.Patterns
	if len(catalog) == 0 {
		return pattern.Entry{}, fmt.Errorf("%w: catalog is empty", wardrobe.ErrUnknownPattern)
	}
	next := catalog[0]
	for i, entry := range catalog {
		if entry.ID == p.Pattern {
			next = catalog[(i+1)%len(catalog)]
			break
		}
	}

	var err error
	e.edit(func() bool {
		err = e.state.SetPattern(name, next.ID)
		return err == nil
	})
	if err != nil {
		return pattern.Entry{}, err
	}
	e.log.Debug("pattern assigned", zap.String("part", name), zap.String("pattern", next.ID))
	return next, nil
}

// SetColors sets a part's base and accent colours.
func (e *Editor) SetColors(name, base, accent string) error {
	var err error
	e.edit(func() bool {
		err = e.state.SetColors(name, base, accent)
		return err == nil
	})
	return err
}

// ToggleVisible shows or hides a part and returns its new visibility.
func (e *Editor) ToggleVisible(name string) (bool, error) {
	p, ok := e.state.Part(name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPart, name)
	}
	visible := !p.Visible
	var err error
	e.edit(func() bool {
		err = e.state.SetVisible(name, visible)
		return err == nil
	})
	return visible, err
}

// ToggleCategory hides every part of a category when all are shown, and
// shows them all otherwise. It returns the new visibility and the number of
// parts changed.
func (e *Editor) ToggleCategory(c wardrobe.PartCategory) (bool, int) {
	visible := false
	for _, name := range e.state.PartNames() {
		if p, _ := e.state.Part(name); p.Category == c && !p.Visible {
			visible = true
			break
		}
	}
	n := 0
	e.edit(func() bool {
		n = e.state.SetCategoryVisible(c, visible)
		return n > 0
	})
	return visible, n
}
