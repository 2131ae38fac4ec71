package sky

import "math"

// Input is the event sink a Gestures tracker feeds. *Viewer implements it.
type Input interface {
	OnPointerMove(x, y float64)
	OnPointerDown(x, y float64)
	OnPointerUp()
	OnPointerLeave()
	OnPinch(ratio float64)
	OnClick(x, y float64) bool
	OnTap(x, y float64) bool
}

// TouchPoint is one active touch in frame coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

type mousePointer struct {
	inside bool
	down   bool
	lastX  float64
	lastY  float64
	seen   bool
}

type touchPointer struct {
	x, y float64
}

type pinchState struct {
	active   bool
	prevDist float64
}

// Gestures turns polled pointer samples into viewer events: press, release,
// click, hover, leave, single-finger drag, tap and two-finger pinch. Hosts
// that poll input once per frame feed it here; hosts with native events can
// call the Input methods directly.
type Gestures struct {
	target  Input
	mouse   mousePointer
	touches map[int]touchPointer
	primary int // touch ID driving the drag, -1 when none
	pinch   pinchState
	pinched bool // a pinch happened during the current touch sequence
}

// NewGestures creates a tracker that forwards to target.
func NewGestures(target Input) *Gestures {
	return &Gestures{
		target:  target,
		touches: make(map[int]touchPointer),
		primary: -1,
	}
}

// Mouse feeds one mouse sample. inside reports whether the cursor is over the
// drawing area.
func (g *Gestures) Mouse(x, y float64, pressed, inside bool) {
	m := &g.mouse
	if !inside {
		if m.inside {
			m.inside = false
			m.down = false
			g.target.OnPointerLeave()
		}
		return
	}
	m.inside = true

	if !m.seen || x != m.lastX || y != m.lastY {
		m.seen = true
		m.lastX, m.lastY = x, y
		g.target.OnPointerMove(x, y)
	}

	switch {
	case pressed && !m.down:
		m.down = true
		g.target.OnPointerDown(x, y)
	case !pressed && m.down:
		m.down = false
		g.target.OnPointerUp()
		g.target.OnClick(x, y)
	}
}

// Touches feeds the complete set of touches active this frame.
func (g *Gestures) Touches(points []TouchPoint) {
	// Releases first, so a finger lifted mid-pinch ends the pinch.
	for id, tp := range g.touches {
		if containsTouch(points, id) {
			continue
		}
		delete(g.touches, id)
		if id == g.primary {
			g.primary = -1
			g.target.OnPointerUp()
			if !g.pinched {
				g.target.OnTap(tp.x, tp.y)
			}
		}
	}

	for _, p := range points {
		prev, known := g.touches[p.ID]
		g.touches[p.ID] = touchPointer{x: p.X, y: p.Y}
		switch {
		case !known && len(points) == 1 && g.primary < 0:
			g.primary = p.ID
			g.pinched = false
			g.target.OnPointerDown(p.X, p.Y)
		case known && p.ID == g.primary && !g.pinch.active && (prev.x != p.X || prev.y != p.Y):
			g.target.OnPointerMove(p.X, p.Y)
		}
	}

	g.detectPinch(points)
	if len(g.touches) == 0 {
		g.pinched = false
	}
}

func (g *Gestures) detectPinch(points []TouchPoint) {
	if len(points) != 2 {
		g.pinch.active = false
		return
	}
	dist := math.Hypot(points[1].X-points[0].X, points[1].Y-points[0].Y)
	if !g.pinch.active {
		g.pinch = pinchState{active: true, prevDist: dist}
		g.pinched = true
		if g.primary >= 0 {
			// The first finger stops dragging once the second lands.
			g.primary = -1
			g.target.OnPointerUp()
		}
		return
	}
	if g.pinch.prevDist > 0 && dist > 0 && dist != g.pinch.prevDist {
		g.target.OnPinch(dist / g.pinch.prevDist)
	}
	g.pinch.prevDist = dist
}

func containsTouch(points []TouchPoint, id int) bool {
	for _, p := range points {
		if p.ID == id {
			return true
		}
	}
	return false
}

var (
	_ Input = (*Viewer)(nil)
	_ Input = (*Controller)(nil)
)
