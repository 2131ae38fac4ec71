package render

import (
	"image"
	"math"
	"math/rand/v2"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/spacehole-rogue/zenith_sky/internal/sky"
)

// rotateThreshold is how far the milky way may drift, in radians, before the
// rotated copy is redrawn.
const rotateThreshold = 0.002

// Layers caches the static background gradient and the milky-way band for
// one frame geometry. Both are rebuilt when the frame generation or pixel size
// changes.
type Layers struct {
	seed       uint64
	generation uint64
	px         int
	builds     int

	background *image.RGBA
	milkyWay   *image.RGBA

	rotated      *image.RGBA
	rotatedAngle float64
	rotatedValid bool
}

// NewLayers creates an empty cache. seed fixes the milky-way texture.
func NewLayers(seed uint64) *Layers {
	return &Layers{seed: seed}
}

// Ensure rebuilds the layers if f differs from the cached geometry and reports
// whether it did.
func (l *Layers) Ensure(f sky.Frame) bool {
	px := f.PixelSize()
	if l.background != nil && l.generation == f.Generation && l.px == px {
		return false
	}
	l.generation = f.Generation
	l.px = px
	l.builds++

	rect := image.Rect(0, 0, px, px)
	l.background = image.NewRGBA(rect)
	l.milkyWay = image.NewRGBA(rect)
	l.rotated = image.NewRGBA(rect)
	l.rotatedValid = false

	center := float64(px) / 2
	bg := &radialGradient{cx: center, cy: center, r: float64(px) * 0.75, stops: []Stop{
		{At: 0, Color: Palette[ColorSpaceInner]},
		{At: 0.55, Color: Palette[ColorSpaceMid]},
		{At: 1, Color: Palette[ColorBackground]},
	}}
	draw.Draw(l.background, rect, bg, image.Point{}, draw.Src)

	l.paintMilkyWay(f)
	return true
}

// Builds returns how many times the layers were generated.
func (l *Layers) Builds() int { return l.builds }

// Generation returns the frame generation the layers were built for.
func (l *Layers) Generation() uint64 { return l.generation }

// Background returns the cached gradient.
func (l *Layers) Background() *image.RGBA { return l.background }

// MilkyWay returns the band rotated by angle radians about the frame centre.
func (l *Layers) MilkyWay(angle float64) *image.RGBA {
	if l.milkyWay == nil {
		return nil
	}
	if l.rotatedValid && math.Abs(angle-l.rotatedAngle) < rotateThreshold {
		return l.rotated
	}
	draw.Draw(l.rotated, l.rotated.Rect, image.Transparent, image.Point{}, draw.Src)
	c := float64(l.px) / 2
	sin, cos := math.Sincos(angle)
	m := f64.Aff3{
		cos, -sin, c - cos*c + sin*c,
		sin, cos, c - sin*c - cos*c,
	}
	draw.ApproxBiLinear.Transform(l.rotated, m, l.milkyWay, l.milkyWay.Rect, draw.Over, nil)
	l.rotatedAngle = angle
	l.rotatedValid = true
	return l.rotated
}

// paintMilkyWay draws a diagonal band of haze and faint dust into the
// unrotated layer. The same seed gives the same band at any size.
func (l *Layers) paintMilkyWay(f sky.Frame) {
	rng := rand.New(rand.NewPCG(l.seed, l.seed>>16|1))
	c := canvasOn(l.milkyWay, f.DPR)
	size := f.Size
	center := size / 2
	ux, uy := math.Cos(-0.6), math.Sin(-0.6)
	nx, ny := -uy, ux
	base := Palette[ColorMilkyWay]

	for i := range 24 {
		t := (float64(i)/23 - 0.5) * size * 1.5
		off := (rng.Float64() - 0.5) * size * 0.04
		x, y := center+ux*t+nx*off, center+uy*t+ny*off
		c.Glow(x, y, size*(0.12+rng.Float64()*0.08),
			Stop{At: 0, Color: WithAlpha(base, 0x16)},
			Stop{At: 1, Color: WithAlpha(base, 0)})
	}
	for range 700 {
		t := (rng.Float64() - 0.5) * size * 1.5
		off := rng.NormFloat64() * size * 0.06
		x, y := center+ux*t+nx*off, center+uy*t+ny*off
		c.FillCircle(x, y, 0.3+rng.Float64()*0.8, Fade(base, 0.08+rng.Float64()*0.27))
	}
}
