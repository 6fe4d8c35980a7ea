// Package config handles atelier configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/internal/decal"
	"github.com/Faultbox/orchid-atelier/internal/editor"
	"github.com/Faultbox/orchid-atelier/internal/engine/camera"
	"github.com/Faultbox/orchid-atelier/internal/sculpt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all atelier settings.
type Config struct {
	Window  WindowConfig       `yaml:"window"`
	Camera  CameraConfig       `yaml:"camera"`
	Sculpt  sculpt.BrushConfig `yaml:"sculpt"`
	Decal   decal.Config       `yaml:"decal"`
	Assets  AssetsConfig       `yaml:"assets"`
	Editor  EditorConfig       `yaml:"editor"`
	Logging LoggingConfig      `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds orbit camera settings. Angles are in degrees.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	PitchLimit      float32 `yaml:"pitch_limit"`
	FOV             float32 `yaml:"fov"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	FitOnLoad       bool    `yaml:"fit_on_load"`
}

// AssetsConfig holds avatar asset paths.
type AssetsConfig struct {
	Model       string `yaml:"model"`        // OBJ file; empty uses the built-in mannequin
	Parts       string `yaml:"parts"`        // part classification table
	WardrobeDir string `yaml:"wardrobe_dir"` // empty uses ConfigDir
	PatternSize int    `yaml:"pattern_size"`
}

// EditorConfig holds interaction settings.
type EditorConfig struct {
	Mode          string `yaml:"mode"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Distance:        40,
			MinDistance:     10,
			MaxDistance:     100,
			PitchLimit:      70,
			FOV:             45,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			FitOnLoad:       true,
		},
		Sculpt: sculpt.DefaultBrush(),
		Decal:  decal.DefaultConfig(),
		Assets: AssetsConfig{
			PatternSize: 512,
		},
		Editor: EditorConfig{
			Mode:          "view",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	cam := c.Camera
	if !(cam.FOV > 0 && cam.FOV < 180) {
		return fmt.Errorf("%w: camera fov %v", ErrInvalid, cam.FOV)
	}
	if !(cam.MinDistance > 0) || cam.MinDistance > cam.MaxDistance {
		return fmt.Errorf("%w: camera distance range [%v, %v]", ErrInvalid, cam.MinDistance, cam.MaxDistance)
	}
	if cam.PitchLimit < 0 || cam.PitchLimit >= 90 {
		return fmt.Errorf("%w: camera pitch limit %v", ErrInvalid, cam.PitchLimit)
	}
	if err := c.Sculpt.Validate(); err != nil {
		return fmt.Errorf("%w: sculpt: %v", ErrInvalid, err)
	}
	if err := c.Decal.Validate(); err != nil {
		return fmt.Errorf("%w: decal: %v", ErrInvalid, err)
	}
	if c.Assets.PatternSize <= 0 {
		return fmt.Errorf("%w: pattern size %d", ErrInvalid, c.Assets.PatternSize)
	}
	if _, err := editor.ParseMode(c.Editor.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}

// Apply copies the camera settings onto cam.
func (cc CameraConfig) Apply(cam *camera.OrbitCamera) {
	toRad := float32(math32.Pi / 180)
	cam.Distance = cc.Distance
	cam.MinDistance = cc.MinDistance
	cam.MaxDistance = cc.MaxDistance
	cam.MinPitch = -cc.PitchLimit * toRad
	cam.MaxPitch = cc.PitchLimit * toRad
	cam.FovY = cc.FOV * toRad
	cam.DragSensitivity = cc.DragSensitivity
	cam.ZoomSensitivity = cc.ZoomSensitivity
}
