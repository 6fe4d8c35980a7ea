// Package window handles the SDL2 window and its 2D renderer.
package window

import (
	"fmt"
	"image/color"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/engine/renderer"
	"github.com/Faultbox/orchid-atelier/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and renderer.
type Window struct {
	config      Config
	sdlWindow   *sdl.Window
	sdlRenderer *sdl.Renderer
}

// New creates a window with an accelerated renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.sdlRenderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rendererFlags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.sdlRenderer != nil {
		w.sdlRenderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Clear fills the back buffer.
func (w *Window) Clear(c color.RGBA) {
	w.sdlRenderer.SetDrawColor(c.R, c.G, c.B, c.A)
	w.sdlRenderer.Clear()
}

// DrawSegments draws projected lines, switching colour only when it changes.
func (w *Window) DrawSegments(segs []renderer.Segment) {
	var current color.RGBA
	for i, s := range segs {
		if i == 0 || s.Color != current {
			current = s.Color
			w.sdlRenderer.SetDrawColor(current.R, current.G, current.B, current.A)
		}
		w.sdlRenderer.DrawLine(int32(s.X1), int32(s.Y1), int32(s.X2), int32(s.Y2))
	}
}

// Present shows the back buffer.
func (w *Window) Present() {
	w.sdlRenderer.Present()
}

// ReadPixels returns the back buffer as top-down RGBA rows.
func (w *Window) ReadPixels() ([]byte, int, int, error) {
	width, height, err := w.sdlRenderer.GetOutputSize()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("SDL_GetRendererOutputSize failed: %w", err)
	}
	pitch := int(width) * 4
	pixels := make([]byte, pitch*int(height))
	if len(pixels) == 0 {
		return nil, 0, 0, fmt.Errorf("empty render target")
	}
	// ABGR8888 is R,G,B,A byte order on little-endian machines.
	if err := w.sdlRenderer.ReadPixels(nil, uint32(sdl.PIXELFORMAT_ABGR8888), unsafe.Pointer(&pixels[0]), pitch); err != nil {
		return nil, 0, 0, fmt.Errorf("SDL_RenderReadPixels failed: %w", err)
	}
	return pixels, int(width), int(height), nil
}

// CapturePointer keeps pointer events flowing while a button is held
// outside the window.
func (w *Window) CapturePointer(enabled bool) {
	if err := sdl.CaptureMouse(enabled); err != nil {
		logger.Debug("pointer capture unavailable", zap.Error(err))
	}
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
