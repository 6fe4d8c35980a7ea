package pattern

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// Layout constants in pixels, for a 512 px texture.
const (
	stripeWidth  = 40
	stripePeriod = 80

	plaidLine   = 20
	plaidStart  = 20
	plaidPeriod = 80

	dotRadius = 15
	dotStart  = 25
	dotPeriod = 60
)

// Render draws a procedural pattern of size x size pixels: base fills the
// texture and accent draws the motif.
func Render(kind Kind, base, accent color.Color, size int) (*image.RGBA, error) {
	if size <= 0 {
		size = DefaultSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(base), image.Point{}, draw.Src)

	z := vector.NewRasterizer(size, size)
	s := float32(size)
	switch kind {
	case Solid:
		return dst, nil
	case Stripes:
		for x := 0; x < size; x += stripePeriod {
			rect(z, float32(x), 0, float32(x+stripeWidth), s)
		}
	case Plaid:
		half := float32(plaidLine) / 2
		for i := plaidStart; i < size; i += plaidPeriod {
			c := float32(i)
			rect(z, c-half, 0, c+half, s)
			rect(z, 0, c-half, s, c+half)
		}
	case Dots:
		for x := dotStart; x < size; x += dotPeriod {
			for y := dotStart; y < size; y += dotPeriod {
				disc(z, float32(x), float32(y), dotRadius)
			}
		}
	case Image:
		return nil, fmt.Errorf("%w: %s", ErrNotProcedural, kind)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}

	z.Draw(dst, dst.Bounds(), image.NewUniform(accent), image.Point{})
	return dst, nil
}

func rect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

// kappa places cubic control points for a quarter-circle approximation.
const kappa = 0.5522847

func disc(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
