// Package app implements the atelier window loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/avatar"
	"github.com/Faultbox/orchid-atelier/internal/config"
	"github.com/Faultbox/orchid-atelier/internal/editor"
	"github.com/Faultbox/orchid-atelier/internal/engine/camera"
	"github.com/Faultbox/orchid-atelier/internal/engine/debug"
	"github.com/Faultbox/orchid-atelier/internal/engine/input"
	"github.com/Faultbox/orchid-atelier/internal/engine/renderer"
	"github.com/Faultbox/orchid-atelier/internal/engine/window"
	"github.com/Faultbox/orchid-atelier/internal/logger"
	"github.com/Faultbox/orchid-atelier/internal/pattern"
	"github.com/Faultbox/orchid-atelier/internal/wardrobe"
)

const title = "Orchid Atelier"

// App is the running editor with its window.
type App struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	editor *editor.Editor
	store  *wardrobe.Store
	shots  *debug.ScreenshotCapture
	style  editor.LayerStyle

	brushIndex int
	selected   int
	titleShown string
}

// New loads the avatar and wardrobe and opens the window.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		style:      editor.DefaultLayerStyle(),
		shots:      debug.NewScreenshotCapture(cfg.Editor.ScreenshotDir, "atelier"),
		brushIndex: -1,
	}

	dir := cfg.Assets.WardrobeDir
	if dir == "" {
		dir = config.ConfigDir()
	}
	a.store = wardrobe.NewStore(dir)
	state, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading wardrobe: %w", err)
	}
	if !a.store.Exists() {
		state.Sculpt = cfg.Sculpt
	}

	a.checkPatterns(state, cfg.Assets.PatternSize)

	classifier := avatar.DefaultClassifier()
	if cfg.Assets.Parts != "" {
		if classifier, err = wardrobe.LoadClassifier(cfg.Assets.Parts); err != nil {
			return nil, err
		}
	}
	parts, err := avatar.Load(cfg.Assets.Model, state.Dress)
	if err != nil {
		return nil, fmt.Errorf("loading avatar: %w", err)
	}

	cam := camera.NewOrbitCamera(cfg.Window.Width, cfg.Window.Height)
	cfg.Camera.Apply(cam)

	a.editor = editor.New(cam, state, editor.Options{
		Decal:  cfg.Decal,
		Logger: logger.Log,
	})
	if err := avatar.Install(a.editor, parts, classifier); err != nil {
		return nil, err
	}
	mode, err := editor.ParseMode(cfg.Editor.Mode)
	if err != nil {
		return nil, err
	}
	a.editor.SetMode(mode)
	if cfg.Camera.FitOnLoad {
		a.editor.FitCamera()
	}
	a.log.Info("avatar loaded",
		zap.Int("parts", len(parts)),
		zap.String("model", cfg.Assets.Model),
		zap.Stringer("mode", mode))

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	cam.Resize(a.window.GetSize())

	a.renderer = renderer.New(renderer.DefaultConfig(), cam)
	a.input = input.New()

	return a, nil
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		a.render()
		a.updateTitle()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := a.renderer.Stats()
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("segments", stats.Segments),
				zap.Int("culled", stats.Culled))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close saves the wardrobe and releases the window.
func (a *App) Close() {
	a.log.Info("closing atelier")

	a.editor.Cancel()
	if err := a.store.Save(a.editor.State()); err != nil {
		a.log.Error("failed to save wardrobe", zap.String("path", a.store.Path()), zap.Error(err))
	} else {
		a.log.Info("wardrobe saved", zap.String("path", a.store.Path()))
	}

	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		a.editor.Camera().Resize(ev.Width, ev.Height)
	case input.EventFocusLost:
		a.editor.Cancel()
		a.window.CapturePointer(false)
	case input.EventKeyDown:
		a.handleKey(ev)
	case input.EventPointerDown:
		a.window.CapturePointer(true)
		a.editor.PointerDown(ev.X, ev.Y, ev.Button == input.ButtonLeft)
	case input.EventPointerMove:
		a.editor.PointerMove(ev.X, ev.Y)
	case input.EventPointerUp:
		a.editor.PointerUp(ev.Button == input.ButtonLeft)
		if !a.editor.Active() {
			a.window.CapturePointer(false)
		}
	case input.EventWheel:
		a.editor.Wheel(ev.Wheel)
	}
}

// render draws the current frame.
func (a *App) render() {
	a.renderer.Begin()
	for _, layer := range a.editor.Layers(a.style) {
		a.renderer.DrawLayer(layer)
	}
	segs := a.renderer.End()
	a.editor.ClearDirty()

	a.window.Clear(a.renderer.Background())
	a.window.DrawSegments(segs)
	a.window.Present()
}

func (a *App) updateTitle() {
	t := fmt.Sprintf("%s - %s", title, a.editor.Mode())
	if a.editor.State().Sculpt.Symmetry {
		t += " [symmetry]"
	}
	if brush := a.editor.State().Brush; brush != "" {
		t += " brush " + brush
	}
	if name, ok := a.selectedPart(); ok {
		if p, ok := a.editor.State().Part(name); ok {
			t += fmt.Sprintf(" | %s (%s)", name, p.Pattern)
		}
	}
	if t != a.titleShown {
		a.window.SetTitle(t)
		a.titleShown = t
	}
}

// checkPatterns warns about uploaded patterns whose image can no longer be
// read.
func (a *App) checkPatterns(state *wardrobe.State, size int) {
	for _, e := range state.Patterns {
		if e.Kind != pattern.Image {
			continue
		}
		if _, err := pattern.LoadFile(e.Source, size); err != nil {
			a.log.Warn("uploaded pattern unreadable", zap.String("pattern", e.ID), zap.Error(err))
		}
	}
}

// decalTarget is the first skin part, or the first part when none is skin.
func (a *App) decalTarget() (string, bool) {
	parts := a.editor.Parts()
	if len(parts) == 0 {
		return "", false
	}
	for _, p := range parts {
		if ps, ok := a.editor.State().Part(p.Name); ok && ps.Category == wardrobe.Skin {
			return p.Name, true
		}
	}
	return parts[0].Name, true
}
