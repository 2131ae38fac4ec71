package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph metrics of basicfont.Face7x13, in logical pixels.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
	glyphAscent = 11
)

// Align is the horizontal anchor of a text run.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

var face font.Face = basicfont.Face7x13

// TextWidth returns the advance of s in logical pixels.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(face, s).Ceil())
}

// Text draws s with its vertical middle at y, anchored horizontally at x.
// Characters outside ASCII render as the face's fallback glyph.
func (c *Canvas) Text(x, y float64, s string, col color.NRGBA, align Align) {
	c.text(x, y, s, col, align, false)
}

// TextBold draws s twice with a one-pixel offset.
func (c *Canvas) TextBold(x, y float64, s string, col color.NRGBA, align Align) {
	c.text(x, y, s, col, align, true)
}

func (c *Canvas) text(x, y float64, s string, col color.NRGBA, align Align, bold bool) {
	if s == "" || col.A == 0 {
		return
	}
	w := TextWidth(s)
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	mw := int(w)
	if bold {
		mw++
	}

	// Rasterize at the face's native size, then scale the coverage mask to
	// device pixels.
	glyphs := image.NewAlpha(image.Rect(0, 0, mw, GlyphHeight))
	d := &font.Drawer{Dst: glyphs, Src: image.Opaque, Face: face, Dot: fixed.P(0, glyphAscent)}
	d.DrawString(s)
	if bold {
		d.Dot = fixed.P(1, glyphAscent)
		d.DrawString(s)
	}

	mask := glyphs
	if c.scale != 1 {
		sw := int(math.Ceil(float64(mw) * c.scale))
		sh := int(math.Ceil(GlyphHeight * c.scale))
		mask = image.NewAlpha(image.Rect(0, 0, sw, sh))
		draw.ApproxBiLinear.Scale(mask, mask.Rect, glyphs, glyphs.Rect, draw.Src, nil)
	}

	left := int(math.Round(x * c.scale))
	top := int(math.Round((y - GlyphHeight/2.0) * c.scale))
	dst := mask.Rect.Add(image.Pt(left, top))
	draw.DrawMask(c.img, dst, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// TruncateText shortens s with a trailing "..." until it fits maxWidth.
func TruncateText(s string, maxWidth float64) string {
	if TextWidth(s) <= maxWidth {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "..."; TextWidth(t) <= maxWidth {
			return t
		}
	}
	return ""
}
