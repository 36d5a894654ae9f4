package service

import (
	"fmt"
	"strings"

	"github.com/h2non/bimg"
)

// RasterOptions controls optional post-processing of a downloaded logo.
// The zero value means "keep the original bytes".
type RasterOptions struct {
	// Width in pixels of the output PNG; the height follows the aspect ratio.
	Width int
	// Background is a hex color ("#ffffff" or "ffffff") flattened under
	// transparent pixels.
	Background string
}

// Enabled reports whether any conversion was requested.
func (o RasterOptions) Enabled() bool {
	return o.Width > 0 || o.Background != ""
}

// ImageProcessor converts logos (SVG, PNG, JPEG, WebP) to PNG.
// It uses bimg (Go bindings for libvips), which needs libvips installed.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Process applies opts to imageData and returns the PNG bytes together with
// the new extension. When opts is the zero value the input is returned as is
// with ext unchanged.
func (p *ImageProcessor) Process(imageData []byte, ext string, opts RasterOptions) ([]byte, string, error) {
	if !opts.Enabled() {
		return imageData, ext, nil
	}

	options := bimg.Options{
		Type:           bimg.PNG,
		Interpretation: bimg.InterpretationSRGB,
	}
	if opts.Width > 0 {
		options.Width = opts.Width
		options.Enlarge = true
	}
	if opts.Background != "" {
		r, g, b, err := parseHexColor(opts.Background)
		if err != nil {
			return nil, "", err
		}
		options.Background = bimg.Color{R: r, G: g, B: b}
	}

	out, err := bimg.NewImage(imageData).Process(options)
	if err != nil {
		return nil, "", fmt.Errorf("converting to png: %w", err)
	}
	return out, "png", nil
}

// Rasterize renders an image as a PNG of the given width.
func (p *ImageProcessor) Rasterize(imageData []byte, width int) ([]byte, error) {
	out, _, err := p.Process(imageData, "", RasterOptions{Width: width})
	return out, err
}

// ApplyBackground flattens the alpha channel of an image onto a solid
// background color and returns a PNG.
func ApplyBackground(imageData []byte, hexColor string) ([]byte, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return nil, err
	}

	img := bimg.NewImage(imageData)
	return img.Process(bimg.Options{
		Background:     bimg.Color{R: r, G: g, B: b},
		Type:           bimg.PNG,
		Interpretation: bimg.InterpretationSRGB,
	})
}

// ValidateHexColor reports whether s is a usable background color.
func ValidateHexColor(s string) error {
	_, _, _, err := parseHexColor(s)
	return err
}

// parseHexColor converts a hex color string (with or without #) to RGB values.
func parseHexColor(hex string) (uint8, uint8, uint8, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %q (expected 6 characters)", hex)
	}

	var r, g, b uint8
	_, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parsing hex color %q: %w", hex, err)
	}

	return r, g, b, nil
}
