// Package imageinfo reads page image dimensions without decoding pixel data.
package imageinfo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Size is an image's pixel extent.
type Size struct {
	Width  int
	Height int
}

// Contains reports whether (x, y) lies inside the image, edges included.
func (s Size) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= float64(s.Width) && y <= float64(s.Height)
}

// Probe returns the dimensions and registered format name of the image at path.
func Probe(path string) (Size, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, "", fmt.Errorf("decode image header %s: %w", path, err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, format, nil
}
