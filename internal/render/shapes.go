package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

type verb uint8

const (
	verbMove verb = iota
	verbLine
	verbQuad
	verbCube
	verbClose
)

type pathOp struct {
	verb verb
	pts  [6]float64
}

// path is a list of drawing commands in logical coordinates plus their bounds.
type path struct {
	ops                    []pathOp
	minX, minY, maxX, maxY float64
}

func (p *path) reset() {
	p.ops = p.ops[:0]
	p.minX, p.minY = math.Inf(1), math.Inf(1)
	p.maxX, p.maxY = math.Inf(-1), math.Inf(-1)
}

func (p *path) grow(x, y float64) {
	p.minX = math.Min(p.minX, x)
	p.minY = math.Min(p.minY, y)
	p.maxX = math.Max(p.maxX, x)
	p.maxY = math.Max(p.maxY, y)
}

func (p *path) moveTo(x, y float64) {
	p.grow(x, y)
	p.ops = append(p.ops, pathOp{verb: verbMove, pts: [6]float64{x, y}})
}

func (p *path) lineTo(x, y float64) {
	p.grow(x, y)
	p.ops = append(p.ops, pathOp{verb: verbLine, pts: [6]float64{x, y}})
}

func (p *path) quadTo(cx, cy, x, y float64) {
	p.grow(cx, cy)
	p.grow(x, y)
	p.ops = append(p.ops, pathOp{verb: verbQuad, pts: [6]float64{cx, cy, x, y}})
}

func (p *path) cubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.grow(c1x, c1y)
	p.grow(c2x, c2y)
	p.grow(x, y)
	p.ops = append(p.ops, pathOp{verb: verbCube, pts: [6]float64{c1x, c1y, c2x, c2y, x, y}})
}

func (p *path) close() {
	p.ops = append(p.ops, pathOp{verb: verbClose})
}

// circle adds a closed circle. Reversed circles cut holes in filled ones.
func (p *path) circle(cx, cy, r float64, reverse bool) {
	k := r * kappa
	s := 1.0
	if reverse {
		s = -1
	}
	p.moveTo(cx+r, cy)
	p.cubeTo(cx+r, cy+s*k, cx+k, cy+s*r, cx, cy+s*r)
	p.cubeTo(cx-k, cy+s*r, cx-r, cy+s*k, cx-r, cy)
	p.cubeTo(cx-r, cy-s*k, cx-k, cy-s*r, cx, cy-s*r)
	p.cubeTo(cx+k, cy-s*r, cx+r, cy-s*k, cx+r, cy)
	p.close()
}

// polygon adds a closed polygon from flat x,y pairs.
func (p *path) polygon(xy ...float64) {
	if len(xy) < 6 {
		return
	}
	p.moveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.lineTo(xy[i], xy[i+1])
	}
	p.close()
}

// roundRect adds a rectangle with quadratic corners. Reversed outlines cut
// holes.
func (p *path) roundRect(x, y, w, h, r float64, reverse bool) {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if !reverse {
		p.moveTo(x+r, y)
		p.lineTo(x+w-r, y)
		p.quadTo(x+w, y, x+w, y+r)
		p.lineTo(x+w, y+h-r)
		p.quadTo(x+w, y+h, x+w-r, y+h)
		p.lineTo(x+r, y+h)
		p.quadTo(x, y+h, x, y+h-r)
		p.lineTo(x, y+r)
		p.quadTo(x, y, x+r, y)
		p.close()
		return
	}
	p.moveTo(x+r, y)
	p.quadTo(x, y, x, y+r)
	p.lineTo(x, y+h-r)
	p.quadTo(x, y+h, x+r, y+h)
	p.lineTo(x+w-r, y+h)
	p.quadTo(x+w, y+h, x+w, y+h-r)
	p.lineTo(x+w, y+r)
	p.quadTo(x+w, y, x+w-r, y)
	p.close()
}

// segment adds a line from (x0,y0) to (x1,y1) of the given width as a quad.
func (p *path) segment(x0, y0, x1, y1, width float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	p.polygon(x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
}

// arc adds a band of the given width along the circle of radius r between
// angles a0 and a1.
func (p *path) arc(cx, cy, r, width, a0, a1 float64) {
	steps := int(math.Ceil(math.Abs(a1-a0) * r / 3))
	steps = max(steps, 2)
	ro, ri := r+width/2, math.Max(0, r-width/2)
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		x, y := cx+ro*math.Cos(a), cy+ro*math.Sin(a)
		if i == 0 {
			p.moveTo(x, y)
		} else {
			p.lineTo(x, y)
		}
	}
	for i := steps; i >= 0; i-- {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		p.lineTo(cx+ri*math.Cos(a), cy+ri*math.Sin(a))
	}
	p.close()
}

// fill rasterizes the canvas's current path with src. Only the clipped bounding
// box of the path is touched.
func (c *Canvas) fill(src image.Image) {
	p := &c.path
	if len(p.ops) == 0 {
		return
	}
	s := c.scale
	bounds := image.Rect(
		int(math.Floor(p.minX*s))-1, int(math.Floor(p.minY*s))-1,
		int(math.Ceil(p.maxX*s))+1, int(math.Ceil(p.maxY*s))+1,
	).Intersect(c.img.Rect)
	if bounds.Empty() {
		return
	}

	w, h := bounds.Dx(), bounds.Dy()
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	pt := func(i int, op *pathOp) (float32, float32) {
		return float32(op.pts[i]*s - ox), float32(op.pts[i+1]*s - oy)
	}

	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Src
	for i := range p.ops {
		op := &p.ops[i]
		switch op.verb {
		case verbMove:
			c.ras.MoveTo(pt(0, op))
		case verbLine:
			c.ras.LineTo(pt(0, op))
		case verbQuad:
			bx, by := pt(0, op)
			cx, cy := pt(2, op)
			c.ras.QuadTo(bx, by, cx, cy)
		case verbCube:
			bx, by := pt(0, op)
			cx, cy := pt(2, op)
			dx, dy := pt(4, op)
			c.ras.CubeTo(bx, by, cx, cy, dx, dy)
		case verbClose:
			c.ras.ClosePath()
		}
	}

	mask := c.scratch(w, h)
	c.ras.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	draw.DrawMask(c.img, bounds, src, bounds.Min, mask, image.Point{}, draw.Over)
}

func (c *Canvas) begin() *path {
	c.path.reset()
	return &c.path
}

// FillCircle draws a solid disc.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if r <= 0 || col.A == 0 {
		return
	}
	c.begin().circle(cx, cy, r, false)
	c.fill(image.NewUniform(col))
}

// StrokeCircle draws a ring of the given line width centred on radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.NRGBA) {
	if r <= 0 || width <= 0 || col.A == 0 {
		return
	}
	p := c.begin()
	p.circle(cx, cy, r+width/2, false)
	if inner := r - width/2; inner > 0 {
		p.circle(cx, cy, inner, true)
	}
	c.fill(image.NewUniform(col))
}

// DashedCircle strokes a circle with a repeating dash pattern measured along the
// circumference, like a canvas line dash.
func (c *Canvas) DashedCircle(cx, cy, r, width, dash, gap float64, col color.NRGBA) {
	if r <= 0 || dash <= 0 || col.A == 0 {
		return
	}
	circumference := 2 * math.Pi * r
	p := c.begin()
	for d := 0.0; d < circumference; d += dash + gap {
		end := math.Min(d+dash, circumference)
		p.arc(cx, cy, r, width, d/r, end/r)
	}
	c.fill(image.NewUniform(col))
}

// Line draws a straight segment.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	c.begin().segment(x0, y0, x1, y1, width)
	c.fill(image.NewUniform(col))
}

// DashedLine draws a segment with a repeating dash pattern.
func (c *Canvas) DashedLine(x0, y0, x1, y1, width, dash, gap float64, col color.NRGBA) {
	l := math.Hypot(x1-x0, y1-y0)
	if l == 0 || dash <= 0 || col.A == 0 {
		return
	}
	ux, uy := (x1-x0)/l, (y1-y0)/l
	p := c.begin()
	for d := 0.0; d < l; d += dash + gap {
		end := math.Min(d+dash, l)
		p.segment(x0+ux*d, y0+uy*d, x0+ux*end, y0+uy*end, width)
	}
	c.fill(image.NewUniform(col))
}

// FillRect draws an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if w <= 0 || h <= 0 || col.A == 0 {
		return
	}
	c.begin().polygon(x, y, x+w, y, x+w, y+h, x, y+h)
	c.fill(image.NewUniform(col))
}

// FillRoundRect draws a rectangle with rounded corners.
func (c *Canvas) FillRoundRect(x, y, w, h, r float64, col color.NRGBA) {
	if w <= 0 || h <= 0 || col.A == 0 {
		return
	}
	c.begin().roundRect(x, y, w, h, r, false)
	c.fill(image.NewUniform(col))
}

// StrokeRoundRect outlines a rounded rectangle with the line centred on its edge.
func (c *Canvas) StrokeRoundRect(x, y, w, h, r, width float64, col color.NRGBA) {
	if w <= 0 || h <= 0 || width <= 0 || col.A == 0 {
		return
	}
	hw := width / 2
	p := c.begin()
	p.roundRect(x-hw, y-hw, w+width, h+width, r+hw, false)
	if w > width && h > width {
		p.roundRect(x+hw, y+hw, w-width, h-width, math.Max(0, r-hw), true)
	}
	c.fill(image.NewUniform(col))
}

// FillPolygon fills a closed polygon given as flat x,y pairs.
func (c *Canvas) FillPolygon(col color.NRGBA, xy ...float64) {
	if col.A == 0 {
		return
	}
	c.begin().polygon(xy...)
	c.fill(image.NewUniform(col))
}

// Spikes draws four-point diffraction spikes: thin diamonds reaching length
// from the centre along both axes.
func (c *Canvas) Spikes(cx, cy, length, width float64, col color.NRGBA) {
	if length <= 0 || col.A == 0 {
		return
	}
	hw := width / 2
	p := c.begin()
	p.polygon(cx-length, cy, cx, cy-hw, cx+length, cy, cx, cy+hw)
	p.polygon(cx, cy-length, cx+hw, cy, cx, cy+length, cx-hw, cy)
	c.fill(image.NewUniform(col))
}

// Stop is one colour stop of a radial gradient, at a fraction of the radius.
type Stop struct {
	At    float64
	Color color.NRGBA
}

// Glow fills a disc of radius r with a radial gradient through stops.
func (c *Canvas) Glow(cx, cy, r float64, stops ...Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	c.begin().circle(cx, cy, r, false)
	c.fill(&radialGradient{cx: cx * c.scale, cy: cy * c.scale, r: r * c.scale, stops: stops})
}

// radialGradient is an unbounded image whose colour depends on the distance
// from a centre, in device pixels.
type radialGradient struct {
	cx, cy, r float64
	stops     []Stop
}

var infinite = image.Rect(-1<<24, -1<<24, 1<<24, 1<<24)

func (g *radialGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *radialGradient) Bounds() image.Rectangle { return infinite }

func (g *radialGradient) At(x, y int) color.Color {
	t := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy) / g.r
	return gradientAt(g.stops, t)
}

// gradientAt interpolates stops at t. Stops must be sorted by At.
func gradientAt(stops []Stop, t float64) color.NRGBA {
	if t <= stops[0].At {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].At {
			a, b := stops[i-1], stops[i]
			span := b.At - a.At
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.At)/span)
		}
	}
	return stops[len(stops)-1].Color
}
