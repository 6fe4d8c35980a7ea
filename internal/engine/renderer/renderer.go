// Package renderer projects world-space line layers into screen segments.
package renderer

import (
	"image/color"

	"github.com/Faultbox/orchid-atelier/internal/engine/debug"
	"github.com/Faultbox/orchid-atelier/pkg/math"
)

// Projector maps world points to pixels.
type Projector interface {
	Project(p math.Vec3) (x, y float32, ok bool)
}

// Config holds renderer configuration.
type Config struct {
	Background color.RGBA
}

// DefaultConfig returns a dark blue-gray background.
func DefaultConfig() Config {
	return Config{Background: color.RGBA{R: 26, G: 26, B: 38, A: 255}}
}

// Layer is a set of world-space lines drawn in one colour.
type Layer struct {
	Name  string
	Lines []debug.Line
	Color color.RGBA
}

// Segment is a projected line in pixel coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float32
	Color          color.RGBA
}

// Stats counts the work done for one frame.
type Stats struct {
	Layers   int
	Drawn    int
	Culled   int // lines with an endpoint behind the camera
	Segments int
}

// Renderer collects the segments for one frame between Begin and End.
type Renderer struct {
	config Config
	proj   Projector

	segments []Segment
	stats    Stats
	inFrame  bool
}

// New creates a renderer projecting through proj.
func New(cfg Config, proj Projector) *Renderer {
	return &Renderer{config: cfg, proj: proj}
}

// Background returns the clear colour.
func (r *Renderer) Background() color.RGBA {
	return r.config.Background
}

// Begin starts a frame, discarding the previous one.
func (r *Renderer) Begin() {
	r.segments = r.segments[:0]
	r.stats = Stats{}
	r.inFrame = true
}

// DrawLayer projects a layer. Lines with either endpoint behind the camera
// are dropped. Calls outside Begin/End are ignored.
func (r *Renderer) DrawLayer(l Layer) {
	if !r.inFrame {
		return
	}
	r.stats.Layers++
	for _, line := range l.Lines {
		x1, y1, ok1 := r.proj.Project(line[0])
		x2, y2, ok2 := r.proj.Project(line[1])
		if !ok1 || !ok2 {
			r.stats.Culled++
			continue
		}
		r.segments = append(r.segments, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: l.Color})
		r.stats.Drawn++
	}
}

// End finishes the frame and returns its segments in draw order. The slice
// is reused by the next Begin.
func (r *Renderer) End() []Segment {
	r.inFrame = false
	r.stats.Segments = len(r.segments)
	return r.segments
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}
