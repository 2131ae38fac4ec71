package sky

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// Instruction overlay timing, in milliseconds from the first tick.
const (
	InstructionsVisible = 5000
	InstructionsFade    = 1000
)

// Instructions are the usage hints shown when the viewer starts.
var Instructions = []string{
	"Drag to pan, scroll or pinch to zoom",
	"Click a star for details  (+/- zoom, 0 resets)",
}

// Cursor is the pointer affordance the host should show.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer        // over a selectable object or control
	CursorMove           // dragging the view
)

// Selection is the outbound notification emitted when an object is picked.
type Selection struct {
	ID     uuid.UUID
	Object world.CelestialObject
	At     time.Time
}

// SelectionListener receives selections. It runs on the tick goroutine.
type SelectionListener func(Selection)

// Scene is the read-only snapshot handed to a Renderer each frame.
type Scene struct {
	Sky              *world.Sky
	View             ViewState
	Frame            Frame
	Time             float64 // milliseconds
	Particles        []Particle
	ShootingStars    []ShootingStar
	Notices          []Notice
	Instructions     []string
	InstructionAlpha float64
}

// Renderer draws a scene. Implementations must only read it.
type Renderer interface {
	Render(Scene)
}

type dragState struct {
	active           bool
	moved            bool
	originX, originY float64
	baseX, baseY     float64
}

// Controller owns the view state and turns input events into state changes.
// All methods must be called from a single goroutine.
type Controller struct {
	sky      *world.Sky
	view     config.ViewConfig
	log      *zap.Logger
	state    ViewState
	frame    Frame
	pending  *Box
	effects  *Effects
	notices  *Notices
	renderer Renderer
	listener SelectionListener
	cursor   func(Cursor)
	clock    func() time.Time

	drag          dragState
	suppressClick bool
	lastCursor    Cursor

	started   bool
	startedAt float64
	now       float64
	frames    uint64

	particleBuf []Particle
	starBuf     []ShootingStar
}

// NewController builds a controller for sky inside box.
func NewController(s *world.Sky, box Box, o Options) *Controller {
	if s == nil {
		s = world.EmptySky()
	}
	o = o.withDefaults()
	return &Controller{
		sky:      s,
		view:     o.View,
		log:      o.Logger,
		state:    NewViewState(),
		frame:    NewFrame(box, o.View, 1),
		effects:  NewEffects(o.Effects),
		notices:  NewNotices(6),
		renderer: o.Renderer,
		listener: o.Listener,
		cursor:   o.cursor,
		clock:    o.Clock,
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState { return c.state }

// Frame returns the current drawing frame.
func (c *Controller) Frame() Frame { return c.frame }

// Sky returns the immutable scene data.
func (c *Controller) Sky() *world.Sky { return c.sky }

// Effects returns the transient effect system.
func (c *Controller) Effects() *Effects { return c.effects }

// Notices returns the overlay notice log.
func (c *Controller) Notices() *Notices { return c.notices }

// Frames returns the number of ticks processed.
func (c *Controller) Frames() uint64 { return c.frames }

// OnPointerMove pans while dragging, otherwise updates the hovered object.
func (c *Controller) OnPointerMove(x, y float64) {
	if c.drag.active {
		dx, dy := x-c.drag.originX, y-c.drag.originY
		if !c.drag.moved && math.Hypot(dx, dy) < c.view.DragDeadZone {
			return
		}
		c.drag.moved = true
		c.state.Hovered = world.NoObject
		c.PanTo(c.drag.baseX+dx, c.drag.baseY+dy)
		c.setCursor(CursorMove)
		return
	}

	c.state.Hovered = HitTest(c.sky, c.state, c.frame, x, y, c.view.HitMargin)
	if c.state.Hovered != world.NoObject || c.overZoomControl(x, y) {
		c.setCursor(CursorPointer)
	} else {
		c.setCursor(CursorDefault)
	}
}

// OnPointerDown starts a potential drag at (x, y).
func (c *Controller) OnPointerDown(x, y float64) {
	c.drag = dragState{
		active:  true,
		originX: x,
		originY: y,
		baseX:   c.state.TargetPanX,
		baseY:   c.state.TargetPanY,
	}
	c.suppressClick = false
}

// OnPointerUp ends a drag. A drag that moved past the dead zone swallows the
// click that follows it.
func (c *Controller) OnPointerUp() {
	if c.drag.active && c.drag.moved {
		c.suppressClick = true
	}
	c.drag = dragState{}
	if c.lastCursor == CursorMove {
		c.setCursor(CursorDefault)
	}
}

// OnPointerLeave clears hover and any drag in progress.
func (c *Controller) OnPointerLeave() {
	c.drag = dragState{}
	c.state.Hovered = world.NoObject
	c.setCursor(CursorDefault)
}

// OnWheel zooms in for negative deltaY and out for positive deltaY.
func (c *Controller) OnWheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.ZoomBy(1 + c.view.ZoomStep)
	case deltaY > 0:
		c.ZoomBy(1 - c.view.ZoomStep)
	}
}

// OnPinch scales the zoom by the ratio of successive two-finger distances.
func (c *Controller) OnPinch(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return
	}
	c.ZoomBy(ratio)
}

// ZoomBy multiplies the target zoom by factor, clamped to the configured range.
func (c *Controller) ZoomBy(factor float64) {
	c.state.TargetZoom = clamp(c.state.TargetZoom*factor, c.view.MinZoom, c.view.MaxZoom)
}

// PanTo sets the target pan, clamped to the pan limit of the current frame.
func (c *Controller) PanTo(x, y float64) {
	limit := PanLimit(c.frame)
	c.state.TargetPanX = clamp(x, -limit, limit)
	c.state.TargetPanY = clamp(y, -limit, limit)
}

// OnKey handles the zoom shortcuts: + or = zoom in, - zooms out, 0 resets.
func (c *Controller) OnKey(key rune) {
	switch key {
	case '+', '=':
		c.ZoomBy(1 + c.view.ZoomStep)
	case '-', '_':
		c.ZoomBy(1 - c.view.ZoomStep)
	case '0':
		c.state.TargetZoom = clamp(1, c.view.MinZoom, c.view.MaxZoom)
		c.state.TargetPanX, c.state.TargetPanY = 0, 0
	}
}

// OnClick selects the object under (x, y), or operates the zoom control. It
// reports whether an object was selected. A click that ends a drag is ignored.
func (c *Controller) OnClick(x, y float64) bool {
	if c.suppressClick {
		c.suppressClick = false
		return false
	}
	panel := ZoomPanelLayout(c.frame)
	switch {
	case panel.Plus.Contains(x, y):
		c.ZoomBy(1 + c.view.ZoomStep)
		return false
	case panel.Minus.Contains(x, y):
		c.ZoomBy(1 - c.view.ZoomStep)
		return false
	}

	id := HitTest(c.sky, c.state, c.frame, x, y, c.view.HitMargin)
	if id == world.NoObject {
		return false
	}
	c.state.Selected = id
	obj := *c.sky.Object(id)
	c.notices.Add("Selected "+obj.Name, NoticeSelection, c.now)
	sel := Selection{ID: uuid.New(), Object: obj, At: c.clock()}
	c.log.Info("object selected",
		zap.String("name", obj.Name),
		zap.Stringer("selection", sel.ID))
	if c.listener != nil {
		c.listener(sel)
	}
	return true
}

// OnTap is OnClick for touch input.
func (c *Controller) OnTap(x, y float64) bool {
	return c.OnClick(x, y)
}

// Resize records a new container box. It is applied at the next tick.
func (c *Controller) Resize(box Box) {
	c.pending = &box
}

// Notify queues an overlay notice.
func (c *Controller) Notify(text string, kind NoticeKind) {
	c.notices.Add(text, kind, c.now)
}

// Tick advances one frame at timestamp now (milliseconds) and renders it.
func (c *Controller) Tick(now float64) {
	if !c.started {
		c.started = true
		c.startedAt = now
	}
	c.now = now
	c.frames++

	if c.pending != nil {
		c.applyResize(*c.pending)
		c.pending = nil
	}

	c.state.Rotation += c.view.RotationSpeed
	c.state.Zoom = ease(c.state.Zoom, c.state.TargetZoom, c.view.Easing)
	c.state.PanX = ease(c.state.PanX, c.state.TargetPanX, c.view.Easing)
	c.state.PanY = ease(c.state.PanY, c.state.TargetPanY, c.view.Easing)

	c.effects.Update(c.frame)
	c.notices.Prune(now)

	if c.renderer != nil {
		c.renderer.Render(c.Scene())
	}
}

// Scene snapshots everything a renderer needs for the current frame.
func (c *Controller) Scene() Scene {
	c.particleBuf = c.effects.Particles(c.particleBuf[:0])
	c.starBuf = c.effects.ShootingStars(c.starBuf[:0])
	return Scene{
		Sky:              c.sky,
		View:             c.state,
		Frame:            c.frame,
		Time:             c.now,
		Particles:        c.particleBuf,
		ShootingStars:    c.starBuf,
		Notices:          c.notices.Visible(c.now),
		Instructions:     Instructions,
		InstructionAlpha: c.instructionAlpha(),
	}
}

// Teardown releases the effect system.
func (c *Controller) Teardown() {
	c.effects.Teardown()
	c.listener = nil
}

func (c *Controller) applyResize(box Box) {
	c.frame = NewFrame(box, c.view, c.frame.Generation+1)
	limit := PanLimit(c.frame)
	c.state.PanX = clamp(c.state.PanX, -limit, limit)
	c.state.PanY = clamp(c.state.PanY, -limit, limit)
	c.state.TargetPanX = clamp(c.state.TargetPanX, -limit, limit)
	c.state.TargetPanY = clamp(c.state.TargetPanY, -limit, limit)
	c.log.Debug("resized",
		zap.Float64("size", c.frame.Size),
		zap.Float64("radius", c.frame.Radius),
		zap.Float64("dpr", c.frame.DPR))
}

func (c *Controller) instructionAlpha() float64 {
	if !c.started {
		return 1
	}
	age := c.now - c.startedAt
	fadeStart := float64(InstructionsVisible - InstructionsFade)
	switch {
	case age <= fadeStart:
		return 1
	case age >= InstructionsVisible:
		return 0
	default:
		return 1 - (age-fadeStart)/InstructionsFade
	}
}

func (c *Controller) overZoomControl(x, y float64) bool {
	panel := ZoomPanelLayout(c.frame)
	return panel.Plus.Contains(x, y) || panel.Minus.Contains(x, y)
}

func (c *Controller) setCursor(cur Cursor) {
	if cur == c.lastCursor {
		return
	}
	c.lastCursor = cur
	if c.cursor != nil {
		c.cursor(cur)
	}
}

// ease moves current a fraction of the way to target, snapping when close.
func ease(current, target, factor float64) float64 {
	next := current + (target-current)*factor
	if math.Abs(target-next) < 1e-4 {
		return target
	}
	return next
}
