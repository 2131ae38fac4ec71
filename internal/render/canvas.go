package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Canvas is a square RGBA surface in device pixels. Drawing methods take
// logical coordinates and scale them by the device pixel ratio.
type Canvas struct {
	img   *image.RGBA
	scale float64

	ras  vector.Rasterizer
	mask []uint8
	path path
}

// NewCanvas creates a canvas px device pixels on a side.
func NewCanvas(px int, scale float64) *Canvas {
	c := &Canvas{}
	c.Resize(px, scale)
	return c
}

// canvasOn wraps an existing image, for drawing cached layers.
func canvasOn(img *image.RGBA, scale float64) *Canvas {
	return &Canvas{img: img, scale: scale}
}

// Resize reallocates the backing image when the pixel size changes.
func (c *Canvas) Resize(px int, scale float64) {
	if px < 0 {
		px = 0
	}
	if scale <= 0 {
		scale = 1
	}
	c.scale = scale
	if c.img != nil && c.img.Rect.Dx() == px {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, px, px))
}

// Image returns the backing image. It is overwritten by the next frame.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the side length in device pixels.
func (c *Canvas) Size() int { return c.img.Rect.Dx() }

// Scale returns the device pixel ratio.
func (c *Canvas) Scale() float64 { return c.scale }

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// Set writes a single device pixel. Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.img.Set(x, y, col)
}

// At reads a single device pixel. Out-of-bounds reads return transparent black.
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Copy replaces the canvas content with layer.
func (c *Canvas) Copy(layer *image.RGBA) {
	draw.Draw(c.img, c.img.Rect, layer, image.Point{}, draw.Src)
}

// Composite draws layer over the canvas.
func (c *Canvas) Composite(layer *image.RGBA) {
	draw.Draw(c.img, c.img.Rect, layer, image.Point{}, draw.Over)
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG saves the canvas to path.
func (c *Canvas) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// scratch returns a reusable w*h alpha mask. Its content is undefined.
func (c *Canvas) scratch(w, h int) *image.Alpha {
	if n := w * h; cap(c.mask) < n {
		c.mask = make([]uint8, n)
	}
	return &image.Alpha{Pix: c.mask[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
}
