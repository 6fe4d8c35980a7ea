package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/internal/engine/camera"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Camera defaults
	if cfg.Camera.Distance != 40 {
		t.Errorf("expected camera distance 40, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.MinDistance != 10 || cfg.Camera.MaxDistance != 100 {
		t.Errorf("expected distance range [10, 100], got [%f, %f]", cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}

	// Sculpt and decal defaults
	if cfg.Sculpt.Radius != 0.1 || cfg.Sculpt.Intensity != 1 || !cfg.Sculpt.Symmetry {
		t.Errorf("unexpected sculpt defaults: %+v", cfg.Sculpt)
	}
	if cfg.Decal.ProbeDirections != 8 {
		t.Errorf("expected 8 probe directions, got %d", cfg.Decal.ProbeDirections)
	}

	// Editor defaults
	if cfg.Editor.Mode != "view" {
		t.Errorf("expected mode 'view', got %s", cfg.Editor.Mode)
	}
	if cfg.Assets.PatternSize != 512 {
		t.Errorf("expected pattern size 512, got %d", cfg.Assets.PatternSize)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  distance: 25
  fov: 60

sculpt:
  radius: 0.3
  intensity: 0.5
  symmetry: false

decal:
  chest_height: 0.65

assets:
  model: avatar.obj
  parts: parts.yaml

editor:
  mode: modeling

logging:
  level: debug
  log_file: atelier.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Camera.Distance != 25 || cfg.Camera.FOV != 60 {
		t.Errorf("unexpected camera: %+v", cfg.Camera)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Camera.MaxDistance != 100 {
		t.Errorf("expected max distance default 100, got %f", cfg.Camera.MaxDistance)
	}
	if cfg.Sculpt.Radius != 0.3 || cfg.Sculpt.Intensity != 0.5 || cfg.Sculpt.Symmetry {
		t.Errorf("unexpected sculpt: %+v", cfg.Sculpt)
	}
	if cfg.Decal.ChestHeight != 0.65 {
		t.Errorf("expected chest height 0.65, got %f", cfg.Decal.ChestHeight)
	}
	if cfg.Decal.SizeFraction != 0.15 {
		t.Errorf("expected size fraction default 0.15, got %f", cfg.Decal.SizeFraction)
	}
	if cfg.Assets.Model != "avatar.obj" || cfg.Assets.Parts != "parts.yaml" {
		t.Errorf("unexpected assets: %+v", cfg.Assets)
	}
	if cfg.Editor.Mode != "modeling" {
		t.Errorf("expected mode 'modeling', got %s", cfg.Editor.Mode)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "atelier.log" {
		t.Errorf("expected log file 'atelier.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero fov", func(c *Config) { c.Camera.FOV = 0 }},
		{"straight fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"inverted distance", func(c *Config) { c.Camera.MinDistance = 200 }},
		{"zero min distance", func(c *Config) { c.Camera.MinDistance = 0 }},
		{"vertical pitch", func(c *Config) { c.Camera.PitchLimit = 90 }},
		{"zero brush radius", func(c *Config) { c.Sculpt.Radius = 0 }},
		{"negative intensity", func(c *Config) { c.Sculpt.Intensity = -1 }},
		{"no probes", func(c *Config) { c.Decal.ProbeDirections = 0 }},
		{"zero pattern size", func(c *Config) { c.Assets.PatternSize = 0 }},
		{"unknown mode", func(c *Config) { c.Editor.Mode = "sculpting" }},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestCameraApply(t *testing.T) {
	cc := Default().Camera
	cc.Distance = 30
	cc.PitchLimit = 45
	cc.FOV = 90

	cam := camera.NewOrbitCamera(800, 600)
	cc.Apply(cam)

	if cam.Distance != 30 {
		t.Errorf("expected distance 30, got %f", cam.Distance)
	}
	if abs(cam.MaxPitch-math32.Pi/4) > 1e-6 || abs(cam.MinPitch+math32.Pi/4) > 1e-6 {
		t.Errorf("expected pitch limits ±π/4, got [%f, %f]", cam.MinPitch, cam.MaxPitch)
	}
	if abs(cam.FovY-math32.Pi/2) > 1e-6 {
		t.Errorf("expected fov π/2, got %f", cam.FovY)
	}
	if cam.ViewportWidth != 800 {
		t.Errorf("viewport should be untouched, got %f", cam.ViewportWidth)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("sculpt:\n  raduis: 0.4\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for a misspelt key")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Errorf("empty file should keep defaults, got %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected default width, got %d", cfg.Window.Width)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("editor:\n  mode: paint\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Editor.Mode != "paint" {
		t.Errorf("expected mode 'paint' from env config, got %s", cfg.Editor.Mode)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Sculpt.Radius = 0.25
	cfg.Editor.Mode = "paint"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Sculpt.Radius != 0.25 {
		t.Errorf("expected radius 0.25, got %f", loaded.Sculpt.Radius)
	}
	if loaded.Editor.Mode != "paint" {
		t.Errorf("expected mode 'paint', got %s", loaded.Editor.Mode)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "asset flags",
			setup: func() {
				*flagModel = "body.obj"
				*flagParts = "parts.yaml"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Model != "body.obj" {
					t.Errorf("expected model body.obj, got %s", cfg.Assets.Model)
				}
				if cfg.Assets.Parts != "parts.yaml" {
					t.Errorf("expected parts parts.yaml, got %s", cfg.Assets.Parts)
				}
			},
			teardown: func() {
				*flagModel = ""
				*flagParts = ""
			},
		},
		{
			name:  "mode flag",
			setup: func() { *flagMode = "decal" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Editor.Mode != "decal" {
					t.Errorf("expected mode 'decal', got %s", cfg.Editor.Mode)
				}
			},
			teardown: func() { *flagMode = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("editor:\n  mode: sculpting\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
