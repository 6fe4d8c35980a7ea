// Package decal places projected texture patches on mesh surfaces.
package decal

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid decal config")

// Config holds the placement constants. Offsets are local-space distances
// along the surface normal.
type Config struct {
	// SmallOffset is used for meter-scale meshes.
	SmallOffset float32 `yaml:"small_offset"`
	// LargeOffset is used for centimeter-scale meshes.
	LargeOffset float32 `yaml:"large_offset"`
	// UnitThreshold is the local bounding-box height above which a mesh is
	// treated as centimeter scale.
	UnitThreshold float32 `yaml:"unit_threshold"`

	// SizeFraction sets decal width and height as a fraction of mesh height.
	SizeFraction float32 `yaml:"size_fraction"`
	// DepthFraction sets the projection depth as a fraction of mesh height.
	DepthFraction float32 `yaml:"depth_fraction"`

	// ChestHeight is the fraction of bounding-box height probed by
	// default placement.
	ChestHeight     float32 `yaml:"chest_height"`
	ProbeDirections int     `yaml:"probe_directions"`
}

// DefaultConfig returns placement constants tuned for human-sized avatars.
func DefaultConfig() Config {
	return Config{
		SmallOffset:     0.001,
		LargeOffset:     0.1,
		UnitThreshold:   10,
		SizeFraction:    0.15,
		DepthFraction:   0.15,
		ChestHeight:     0.72,
		ProbeDirections: 8,
	}
}

// Validate checks that every constant is usable.
func (c Config) Validate() error {
	switch {
	case c.SmallOffset < 0 || c.LargeOffset < 0:
		return fmt.Errorf("%w: offsets must be non-negative", ErrInvalidConfig)
	case !(c.UnitThreshold > 0):
		return fmt.Errorf("%w: unit threshold %v", ErrInvalidConfig, c.UnitThreshold)
	case !(c.SizeFraction > 0) || !(c.DepthFraction > 0):
		return fmt.Errorf("%w: size fractions must be positive", ErrInvalidConfig)
	case c.ChestHeight < 0 || c.ChestHeight > 1:
		return fmt.Errorf("%w: chest height %v outside [0, 1]", ErrInvalidConfig, c.ChestHeight)
	case c.ProbeDirections < 1:
		return fmt.Errorf("%w: need at least one probe direction", ErrInvalidConfig)
	}
	return nil
}

// offsetFor picks the surface offset for a mesh of the given local height.
func (c Config) offsetFor(height float32) float32 {
	if height > c.UnitThreshold {
		return c.LargeOffset
	}
	return c.SmallOffset
}
