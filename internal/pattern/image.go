package pattern

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes an uploaded pattern (PNG, JPEG, GIF, BMP or WebP) and
// resamples it to a size x size texture.
func LoadImage(r io.Reader, size int) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding pattern image: %w", err)
	}
	if size <= 0 {
		size = DefaultSize
	}
	return transform.Resize(img, size, size, transform.Linear), nil
}

// LoadFile reads a pattern image from disk.
func LoadFile(path string, size int) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pattern %s: %w", path, err)
	}
	if size <= 0 {
		size = DefaultSize
	}
	return transform.Resize(img, size, size, transform.Linear), nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return imgio.PNGEncoder()(w, img)
}

// SaveFile writes img as a PNG file.
func SaveFile(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("saving pattern %s: %w", path, err)
	}
	return nil
}
