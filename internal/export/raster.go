package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

const (
	// DefaultScale is the device pixel ratio used for captures.
	DefaultScale = 2.0
	// DefaultViewportWidth is the CSS width the document is laid out at.
	DefaultViewportWidth = 1280
)

// RasterOptions controls a capture.
type RasterOptions struct {
	Scale         float64
	Background    color.Color
	ViewportWidth int
}

func (o RasterOptions) withDefaults() RasterOptions {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	return o
}

// Rasterizer renders a serialized document and captures every element
// matching selector, in document order. An element with no height yields
// an image with empty bounds rather than an error.
type Rasterizer interface {
	Capture(ctx context.Context, document, selector string, opts RasterOptions) ([]image.Image, error)
}

// ParseHexColor parses "#rrggbb" (or "rrggbb").
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func isEmpty(img image.Image) bool {
	if img == nil {
		return true
	}
	b := img.Bounds()
	return b.Dx() <= 0 || b.Dy() <= 0
}
