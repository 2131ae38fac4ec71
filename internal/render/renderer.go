// Package render rasterizes sky scenes onto a software RGBA canvas.
package render

import (
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/sky"
)

// Overlay geometry, in logical pixels.
const (
	cardinalOffset   = 20
	labelGap         = 8
	tooltipPadding   = 15
	tooltipLine      = 18
	tooltipMaxWidth  = 250
	tooltipMargin    = 20
	tooltipRadius    = 8
	zenithRingRadius = 40
	crossSize        = 8
	milkyWayDrift    = 0.5
)

var cardinals = [4]string{"N", "E", "S", "W"}

// Renderer draws each scene into its canvas, back to front. It implements
// sky.Renderer.
type Renderer struct {
	canvas *Canvas
	layers *Layers
	log    *zap.Logger
	frames uint64
}

// NewRenderer creates a renderer. seed fixes the milky-way texture.
func NewRenderer(log *zap.Logger, seed uint64) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		canvas: NewCanvas(0, 1),
		layers: NewLayers(seed),
		log:    log,
	}
}

// Canvas returns the surface the last frame was drawn to.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Layers returns the static layer cache.
func (r *Renderer) Layers() *Layers { return r.layers }

// Frames returns how many scenes were drawn.
func (r *Renderer) Frames() uint64 { return r.frames }

// Render draws s.
func (r *Renderer) Render(s sky.Scene) {
	f := s.Frame
	px := f.PixelSize()
	if px <= 0 {
		return
	}
	r.frames++
	r.canvas.Resize(px, f.DPR)
	if r.layers.Ensure(f) {
		r.log.Debug("static layers rebuilt",
			zap.Int("px", px),
			zap.Uint64("generation", f.Generation))
	}

	r.canvas.Copy(r.layers.Background())
	r.drawParticles(s)
	r.canvas.Composite(r.layers.MilkyWay(-s.View.Rotation * milkyWayDrift))
	r.drawGrid(s)
	r.drawHorizon(s)
	r.drawObjects(s)
	r.drawZenith(s)
	r.drawShootingStars(s)
	r.drawTooltip(s)
	r.drawZoomPanel(s)
	r.drawInstructions(s)
	r.drawNotices(s)
}

func (r *Renderer) drawParticles(s sky.Scene) {
	c := r.canvas
	size := s.Frame.Size
	if size <= 0 {
		return
	}
	col := Palette[ColorParticle]
	for _, p := range s.Particles {
		x := wrap(p.X*size+s.View.PanX*p.Depth, size)
		y := wrap(p.Y*size+s.View.PanY*p.Depth, size)
		c.FillCircle(x, y, p.Size, Fade(col, p.Alpha(s.Time)))
	}
}

func (r *Renderer) drawGrid(s sky.Scene) {
	c := r.canvas
	cx, cy := sky.Project(0, 0, s.View, s.Frame)
	radius := s.Frame.Radius * s.View.Zoom
	grid := WithAlpha(Palette[ColorAccent], 0x1a)

	for i := 1; i <= 2; i++ {
		c.DashedCircle(cx, cy, radius*float64(i)/3, 1, 2, 4, grid)
	}
	for i := range 8 {
		a := float64(i)*math.Pi/4 - s.View.Rotation
		c.DashedLine(cx, cy, cx+math.Cos(a)*radius, cy+math.Sin(a)*radius, 1, 2, 4, grid)
	}
}

func (r *Renderer) drawHorizon(s sky.Scene) {
	c := r.canvas
	cx, cy := sky.Project(0, 0, s.View, s.Frame)
	radius := s.Frame.Radius * s.View.Zoom
	accent := Palette[ColorAccent]

	c.StrokeCircle(cx, cy, radius, 2, accent)
	for i, dir := range cardinals {
		a := float64(i)*math.Pi/2 - math.Pi/2 - s.View.Rotation
		c.Text(cx+math.Cos(a)*(radius+cardinalOffset), cy+math.Sin(a)*(radius+cardinalOffset), dir, accent, AlignCenter)
	}
}

func (r *Renderer) drawObjects(s sky.Scene) {
	c := r.canvas
	limit := s.Frame.Size
	for _, id := range s.Sky.DrawOrder() {
		obj := s.Sky.Object(id)
		zenith := s.Sky.IsZenith(id)
		hovered := id == s.View.Hovered
		selected := id == s.View.Selected

		x, y := sky.Project(obj.X, obj.Y, s.View, s.Frame)
		size := sky.ObjectSize(obj, s.View)
		if hovered {
			size *= 1 + 0.15*math.Sin(s.Time*0.005)
		}
		vis := visualFor(obj, zenith)
		glowR := size * vis.glow
		if x+glowR < 0 || y+glowR < 0 || x-glowR > limit || y-glowR > limit {
			continue
		}

		core := nrgba(obj.Color)
		halo := core
		if hovered {
			halo = Palette[ColorHover]
		}
		c.Glow(x, y, glowR, glowStops(halo, obj.BrightnessFactor)...)
		if vis.spikes {
			c.Spikes(x, y, size*1.6, math.Max(1, size*0.08), Fade(core, 0.7))
		}
		c.FillCircle(x, y, size/2, core)
		if vis.dot > 0 {
			c.FillCircle(x, y, math.Max(0.75, size*vis.dot), Palette[ColorText])
		}
		if selected {
			c.StrokeCircle(x, y, size/2+4, 1.5, Palette[ColorGold])
		}

		if hovered || selected || obj.Magnitude < 1.0 || obj.Priority > 1000 || zenith {
			r.label(obj.Name, x, y+size/2+labelGap, vis.label)
		}
	}
}

// label draws text centred under a point on a translucent black plate.
func (r *Renderer) label(text string, x, top float64, col color.NRGBA) {
	c := r.canvas
	w := TextWidth(text)
	c.FillRect(x-w/2-4, top-2, w+8, 16, Fade(Palette[ColorLabelBG], 0.7))
	c.Text(x, top+6, text, col, AlignCenter)
}

func (r *Renderer) drawZenith(s sky.Scene) {
	c := r.canvas
	gold, accent := Palette[ColorGold], Palette[ColorAccent]
	cx, cy := sky.Project(0, 0, s.View, s.Frame)
	zoom := s.View.Zoom

	for _, id := range s.Sky.DrawOrder() {
		if !s.Sky.IsZenith(id) {
			continue
		}
		obj := s.Sky.Object(id)
		x, y := sky.Project(obj.X, obj.Y, s.View, s.Frame)
		pulse := 1 + 0.15*math.Sin(s.Time*0.004)
		ring := zenithRingRadius * zoom * pulse

		c.Glow(x, y, ring*1.5,
			Stop{At: 0, Color: WithAlpha(gold, 0x60)},
			Stop{At: 0.5, Color: WithAlpha(accent, 0x40)},
			Stop{At: 1, Color: WithAlpha(accent, 0)})
		c.DashedCircle(x, y, ring, 3, 8, 4, gold)
		c.DashedLine(cx, cy, x, y, 2, 10, 5, WithAlpha(accent, 0x80))

		c.TextBold(x, y-ring-10-GlyphHeight/2.0, "* YOUR STAR *", gold, AlignCenter)
		c.Text(x, y-ring-30-GlyphHeight/2.0, obj.Name, Palette[ColorText], AlignCenter)
	}

	cross := crossSize * zoom
	faint := WithAlpha(accent, 0x60)
	c.Line(cx-cross, cy, cx+cross, cy, 1, faint)
	c.Line(cx, cy-cross, cx, cy+cross, 1, faint)
	c.Text(cx, cy+cross+5+GlyphHeight/2.0, "Astronomical Zenith", WithAlpha(accent, 0x80), AlignCenter)
}

func (r *Renderer) drawShootingStars(s sky.Scene) {
	c := r.canvas
	white := Palette[ColorText]
	for _, st := range s.ShootingStars {
		n := len(st.Trail)
		for i := range n {
			next := st.Head
			if i+1 < n {
				next = st.Trail[i+1]
			}
			t := float64(i+1) / float64(n)
			c.Line(st.Trail[i].X, st.Trail[i].Y, next.X, next.Y, 0.5+1.5*t, Fade(white, st.Alpha*t*0.8))
		}
		c.FillCircle(st.Head.X, st.Head.Y, 1.5, Fade(white, st.Alpha))
	}
}

func (r *Renderer) drawTooltip(s sky.Scene) {
	obj := s.Sky.Object(s.View.Hovered)
	if obj == nil {
		return
	}
	c := r.canvas
	lines := obj.Describe()
	inner := float64(tooltipMaxWidth - 2*tooltipPadding)
	textW := 0.0
	for i, line := range lines {
		lines[i] = TruncateText(line, inner)
		textW = math.Max(textW, TextWidth(lines[i]))
	}
	w := math.Min(textW+2*tooltipPadding, tooltipMaxWidth)
	h := float64(len(lines)*tooltipLine + 2*tooltipPadding)
	x := s.Frame.Size - w - tooltipMargin
	y := float64(tooltipMargin)

	c.FillRoundRect(x, y, w, h, tooltipRadius, Fade(Palette[ColorPanel], 0.95))
	c.StrokeRoundRect(x, y, w, h, tooltipRadius, 1, Palette[ColorAccent])
	for i, line := range lines {
		ly := y + tooltipPadding + float64(i*tooltipLine) + GlyphHeight/2.0
		if i == 0 {
			c.TextBold(x+tooltipPadding, ly, line, Palette[ColorAccent], AlignLeft)
			continue
		}
		c.Text(x+tooltipPadding, ly, line, Palette[ColorText], AlignLeft)
	}
}

func (r *Renderer) drawZoomPanel(s sky.Scene) {
	c := r.canvas
	p := sky.ZoomPanelLayout(s.Frame)
	c.FillRoundRect(p.Panel.X, p.Panel.Y, p.Panel.W, p.Panel.H, 5, Fade(Palette[ColorPanel], 0.8))
	c.StrokeRoundRect(p.Panel.X, p.Panel.Y, p.Panel.W, p.Panel.H, 5, 1, Palette[ColorAccent])
	c.TextBold(p.Plus.X+p.Plus.W/2, p.Plus.Y+p.Plus.H/2, "+", Palette[ColorText], AlignCenter)
	c.TextBold(p.Minus.X+p.Minus.W/2, p.Minus.Y+p.Minus.H/2, "-", Palette[ColorText], AlignCenter)
	c.Text(p.ReadoutX, p.ReadoutY, fmt.Sprintf("%.0f%%", s.View.Zoom*100), Palette[ColorAccent], AlignCenter)
}

func (r *Renderer) drawInstructions(s sky.Scene) {
	if s.InstructionAlpha <= 0 || len(s.Instructions) == 0 {
		return
	}
	c := r.canvas
	n := len(s.Instructions)
	for i, line := range s.Instructions {
		y := s.Frame.Size - 24 - float64(n-1-i)*16
		w := TextWidth(line)
		c.FillRect(s.Frame.Center-w/2-6, y-8, w+12, 16, Fade(Palette[ColorLabelBG], 0.5*s.InstructionAlpha))
		c.Text(s.Frame.Center, y, line, Fade(Palette[ColorText], 0.85*s.InstructionAlpha), AlignCenter)
	}
}

func (r *Renderer) drawNotices(s sky.Scene) {
	c := r.canvas
	for i, n := range s.Notices {
		c.Text(tooltipMargin, tooltipMargin+GlyphHeight/2.0+float64(i*16), n.Text, Fade(noticeColor(n.Kind), n.Alpha), AlignLeft)
	}
}

func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}
