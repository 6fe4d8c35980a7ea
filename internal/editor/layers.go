package editor

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/orchid-atelier/internal/engine/debug"
	"github.com/Faultbox/orchid-atelier/internal/engine/renderer"
	"github.com/Faultbox/orchid-atelier/internal/pattern"
)

// LayerStyle sets the overlay colours used by Layers.
type LayerStyle struct {
	Decal      color.RGBA
	Bounds     color.RGBA
	ShowBounds bool
}

// DefaultLayerStyle returns a yellow decal outline and grey bounds.
func DefaultLayerStyle() LayerStyle {
	return LayerStyle{
		Decal:  color.RGBA{R: 255, G: 220, B: 0, A: 255},
		Bounds: color.RGBA{R: 128, G: 128, B: 128, A: 255},
	}
}

// Layers returns the wireframe of every visible part tinted with its
// material colour, followed by the decal outline.
func (e *Editor) Layers(style LayerStyle) []renderer.Layer {
	layers := make([]renderer.Layer, 0, len(e.parts)+1)
	for _, p := range e.parts {
		if !e.Visible(p.Name) {
			continue
		}
		layers = append(layers, renderer.Layer{
			Name:  p.Name,
			Lines: debug.MeshWireframe(p.Mesh),
			Color: e.partColor(p.Name),
		})
		if style.ShowBounds {
			layers = append(layers, renderer.Layer{
				Name:  p.Name + ".bounds",
				Lines: debug.BoundsWireframe(p.Mesh.Bounds(), p.Mesh.WorldMatrix(), debug.DefaultBBoxPadding),
				Color: style.Bounds,
			})
		}
	}

	name, placement, ok := e.Decal()
	if ok && e.Visible(name) {
		if mesh, found := e.Part(name); found {
			layers = append(layers, renderer.Layer{
				Name:  "decal",
				Lines: debug.QuadOutline(placement.Corners(), mesh.WorldMatrix()),
				Color: style.Decal,
			})
		}
	}
	return layers
}

func (e *Editor) partColor(name string) color.RGBA {
	p, ok := e.state.Part(name)
	if !ok {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	c, err := pattern.ParseHex(p.DisplayColor())
	if err != nil {
		e.log.Debug("unparseable part color", zap.String("part", name), zap.Error(err))
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}
