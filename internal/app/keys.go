package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/editor"
	"github.com/Faultbox/orchid-atelier/internal/engine/input"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
)

var modeKeys = map[sdl.Scancode]editor.Mode{
	sdl.SCANCODE_1: editor.View,
	sdl.SCANCODE_2: editor.Modeling,
	sdl.SCANCODE_3: editor.Paint,
	sdl.SCANCODE_4: editor.Decal,
}

func (a *App) handleKey(ev input.Event) {
	if m, ok := modeKeys[ev.Key]; ok {
		a.editor.SetMode(m)
		return
	}

	switch ev.Key {
	case sdl.SCANCODE_ESCAPE:
		a.editor.Escape()
		a.brushIndex = -1
	case sdl.SCANCODE_S:
		on := a.editor.ToggleSymmetry()
		a.log.Info("symmetry", zap.Bool("enabled", on))
	case sdl.SCANCODE_C:
		a.nextBrush()
	case sdl.SCANCODE_D:
		a.autoDecal()
	case sdl.SCANCODE_F:
		a.editor.FitCamera()
	case sdl.SCANCODE_B:
		a.style.ShowBounds = !a.style.ShowBounds
	case sdl.SCANCODE_TAB:
		a.nextPart()
	case sdl.SCANCODE_P:
		a.cyclePattern()
	case sdl.SCANCODE_H:
		a.toggleSelected()
	case sdl.SCANCODE_G:
		visible, n := a.editor.ToggleCategory(wardrobe.Clothing)
		a.log.Info("clothing visibility", zap.Bool("visible", visible), zap.Int("parts", n))
	case sdl.SCANCODE_Z:
		if !a.editor.Undo() {
			a.log.Info("nothing to undo")
		}
	case sdl.SCANCODE_F12:
		a.screenshot()
	}
}

// selectedPart is the part Tab last selected.
func (a *App) selectedPart() (string, bool) {
	parts := a.editor.Parts()
	if len(parts) == 0 {
		return "", false
	}
	return parts[a.selected%len(parts)].Name, true
}

func (a *App) nextPart() {
	if n := len(a.editor.Parts()); n > 0 {
		a.selected = (a.selected + 1) % n
	}
	if name, ok := a.selectedPart(); ok {
		a.log.Info("part selected", zap.String("part", name))
	}
}

func (a *App) cyclePattern() {
	name, ok := a.selectedPart()
	if !ok {
		return
	}
	entry, err := a.editor.CyclePattern(name)
	if err != nil {
		a.log.Warn("pattern change failed", zap.Error(err))
		return
	}
	a.log.Info("pattern assigned",
		zap.String("part", name),
		zap.String("pattern", entry.Name),
		zap.Stringer("kind", entry.Kind))
}

func (a *App) toggleSelected() {
	name, ok := a.selectedPart()
	if !ok {
		return
	}
	visible, err := a.editor.ToggleVisible(name)
	if err != nil {
		a.log.Warn("visibility change failed", zap.Error(err))
		return
	}
	a.log.Info("part visibility", zap.String("part", name), zap.Bool("visible", visible))
}

// nextBrush cycles the paint brush through the palette.
func (a *App) nextBrush() {
	a.brushIndex = (a.brushIndex + 1) % len(wardrobe.Palette)
	if err := a.editor.State().SelectBrush(wardrobe.Palette[a.brushIndex]); err != nil {
		a.log.Warn("invalid palette colour", zap.Error(err))
	}
}

func (a *App) autoDecal() {
	name, ok := a.decalTarget()
	if !ok {
		return
	}
	placed, err := a.editor.AutoDecal(name)
	switch {
	case err != nil:
		a.log.Warn("auto decal failed", zap.Error(err))
	case !placed:
		a.log.Info("no torso surface found for decal", zap.String("part", name))
	}
}

func (a *App) screenshot() {
	pixels, w, h, err := a.window.ReadPixels()
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}
