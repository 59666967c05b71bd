// Package raster renders SVG icons to PNG.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Size bounds in pixels.
const (
	MinSize = 16
	MaxSize = 512
)

// ErrNoViewBox is returned for documents without a usable viewBox.
var ErrNoViewBox = errors.New("raster: svg has no viewBox")

// Options controls rendering.
type Options struct {
	Size       int
	Background color.Color // nil means transparent
}

// ClampSize forces px into [MinSize, MaxSize].
func ClampSize(px int) int {
	switch {
	case px < MinSize:
		return MinSize
	case px > MaxSize:
		return MaxSize
	}
	return px
}

// PNG renders svg as a square PNG of opts.Size pixels.
func PNG(svg string, opts Options) ([]byte, error) {
	img, err := Render(svg, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Render rasterizes svg onto a square RGBA canvas.
func Render(svg string, opts Options) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("raster: parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrNoViewBox
	}

	px := ClampSize(opts.Size)
	icon.SetTarget(0, 0, float64(px), float64(px))

	layer := image.NewRGBA(image.Rect(0, 0, px, px))
	scanner := rasterx.NewScannerGV(px, px, layer, layer.Bounds())
	icon.Draw(rasterx.NewDasher(px, px, scanner), 1)

	canvas := image.NewRGBA(layer.Bounds())
	if opts.Background != nil {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	draw.Draw(canvas, canvas.Bounds(), layer, image.Point{}, draw.Over)
	return canvas, nil
}
