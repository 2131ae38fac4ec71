package render

import (
	"image/color"
	"math"
)

// UI palette indices.
const (
	ColorBackground = 0
	ColorAccent     = 1
	ColorHover      = 2
	ColorGold       = 3
	ColorText       = 4
	ColorPanel      = 5
	ColorLabelBG    = 6
	ColorWarning    = 7
	ColorSpaceInner = 8
	ColorSpaceMid   = 9
	ColorMilkyWay   = 10
	ColorParticle   = 11
)

// Palette holds the viewer's fixed colours, all opaque. Use Fade for alpha.
var Palette = [12]color.NRGBA{
	{10, 15, 20, 255},    // 0: background #0a0f14
	{93, 173, 226, 255},  // 1: accent #5dade2
	{133, 193, 233, 255}, // 2: hover #85c1e9
	{255, 215, 0, 255},   // 3: gold #FFD700
	{255, 255, 255, 255}, // 4: text
	{26, 44, 61, 255},    // 5: panel
	{0, 0, 0, 255},       // 6: label background
	{243, 156, 18, 255},  // 7: warning
	{22, 38, 58, 255},    // 8: gradient centre
	{14, 24, 36, 255},    // 9: gradient middle
	{190, 205, 255, 255}, // 10: milky way
	{220, 230, 255, 255}, // 11: particles
}

// Fade returns c with its alpha scaled by a, clamped to [0,1].
func Fade(c color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	c.A = uint8(math.Round(float64(c.A) * a))
	return c
}

// WithAlpha returns c with alpha set to a byte value, the way CSS "#rrggbbaa"
// suffixes work.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// nrgba converts an opaque RGBA to NRGBA.
func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t)) }
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
