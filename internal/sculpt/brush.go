// Package sculpt implements radius-weighted vertex sculpting with optional
// mirror symmetry across the mesh's local X axis.
package sculpt

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orchid-atelier/internal/engine/geometry"
)

// Brush configuration errors.
var (
	ErrInvalidRadius    = errors.New("brush radius must be positive")
	ErrInvalidIntensity = errors.New("brush intensity must be finite and non-negative")
)

// BrushConfig controls one stroke. Falloff is fixed quadratic and the
// symmetry plane is fixed to local X = 0.
type BrushConfig struct {
	Radius    float32 `yaml:"radius"`
	Intensity float32 `yaml:"intensity"`
	Symmetry  bool    `yaml:"symmetry"`
	// WorldSpace treats Radius as a world-space length, converted to local
	// space with the mesh's largest world scale.
	WorldSpace bool `yaml:"world_space"`
}

// DefaultBrush returns a brush that follows the pointer fully.
func DefaultBrush() BrushConfig {
	return BrushConfig{
		Radius:    0.1,
		Intensity: 1.0,
		Symmetry:  true,
	}
}

// Validate rejects configurations the solver treats as contract violations.
func (b BrushConfig) Validate() error {
	if !(b.Radius > 0) || math32.IsInf(b.Radius, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, b.Radius)
	}
	if !(b.Intensity >= 0) || math32.IsInf(b.Intensity, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidIntensity, b.Intensity)
	}
	return nil
}

// LocalRadius returns the radius expressed in the mesh's local units.
func (b BrushConfig) LocalRadius(mesh geometry.Accessor) float32 {
	if !b.WorldSpace {
		return b.Radius
	}
	scale := mesh.WorldMatrix().MaxScale()
	if scale == 0 {
		return b.Radius
	}
	return b.Radius / scale
}

// Falloff returns the quadratic weight (1 - d/radius)^2 for d < radius and 0
// otherwise.
func Falloff(d, radius float32) float32 {
	if d >= radius {
		return 0
	}
	k := 1 - d/radius
	return k * k
}
