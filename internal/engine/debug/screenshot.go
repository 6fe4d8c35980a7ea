package debug

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"
)

// ScreenshotCapture writes viewport captures as timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// CaptureFromPixels saves top-down RGBA pixel rows of width*height*4 bytes.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves an image. Captures taken within the same second
// get a numeric suffix instead of overwriting each other.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.uniqueFilename()
	if err := imgio.Save(filename, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// GenerateFilename returns the timestamped path for a capture taken now.
func (sc *ScreenshotCapture) GenerateFilename() string {
	return sc.path(sc.now().Format("2006-01-02_15-04-05"))
}

func (sc *ScreenshotCapture) uniqueFilename() string {
	stamp := sc.now().Format("2006-01-02_15-04-05")
	name := sc.path(stamp)
	for n := 2; fileExists(name); n++ {
		name = sc.path(fmt.Sprintf("%s_%d", stamp, n))
	}
	return name
}

func (sc *ScreenshotCapture) path(stem string) string {
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, stem)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
