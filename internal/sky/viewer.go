package sky

import (
	"time"

	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// Surface is the host drawing area the viewer is mounted on.
type Surface interface {
	Box() Box
	SetCursor(Cursor)
}

// ResizeNotifier is implemented by surfaces that push size changes. The returned
// func detaches the callback.
type ResizeNotifier interface {
	OnResize(func(Box)) (detach func())
}

// Options configures a viewer or controller.
type Options struct {
	View     config.ViewConfig
	Effects  config.EffectsConfig
	Logger   *zap.Logger
	Renderer Renderer
	Listener SelectionListener
	Clock    func() time.Time

	cursor func(Cursor)
}

func (o Options) withDefaults() Options {
	if o.View.MaxZoom == 0 {
		o.View = config.Default().View
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// WithRenderer sets the per-frame renderer.
func WithRenderer(r Renderer) Option {
	return func(o *Options) { o.Renderer = r }
}

// WithSelectionListener registers the selection callback.
func WithSelectionListener(fn SelectionListener) Option {
	return func(o *Options) { o.Listener = fn }
}

// WithConfig applies the view and effects sections of cfg.
func WithConfig(cfg config.Config) Option {
	return func(o *Options) {
		o.View = cfg.View
		o.Effects = cfg.Effects
	}
}

// WithClock overrides the wall clock used to stamp selections.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Clock = now }
}

// Viewer is the widget: a controller bound to a surface and driven by a Loop.
type Viewer struct {
	surface Surface
	ctrl    *Controller
	loop    *Loop
	log     *zap.Logger
	detach  func()
	torn    bool
}

// NewViewer mounts a viewer on surface for payload. A nil surface leaves the
// viewer inert; a nil payload gives an empty scene.
func NewViewer(surface Surface, payload *world.Payload, opts ...Option) *Viewer {
	cfg := config.Default()
	o := Options{View: cfg.View, Effects: cfg.Effects}
	for _, opt := range opts {
		opt(&o)
	}
	o = o.withDefaults()

	v := &Viewer{surface: surface, log: o.Logger}
	if surface == nil {
		v.log.Warn("no drawing surface, viewer is inert")
		return v
	}
	o.cursor = surface.SetCursor

	s := world.Normalize(payload, o.Logger)
	v.ctrl = NewController(s, surface.Box(), o)
	v.loop = NewLoop(v.ctrl.Tick)
	if rn, ok := surface.(ResizeNotifier); ok {
		v.detach = rn.OnResize(v.ctrl.Resize)
	}
	v.loop.Start()
	v.log.Info("viewer started",
		zap.Int("objects", s.Len()),
		zap.String("zenith", s.ZenithName))
	return v
}

// Active reports whether the viewer is mounted and not torn down.
func (v *Viewer) Active() bool {
	return v != nil && v.ctrl != nil && !v.torn
}

// Controller exposes the controller, or nil when inert.
func (v *Viewer) Controller() *Controller {
	if v == nil {
		return nil
	}
	return v.ctrl
}

// Loop exposes the scheduler, or nil when inert.
func (v *Viewer) Loop() *Loop {
	if v == nil {
		return nil
	}
	return v.loop
}

// Tick steps the loop at timestamp now (milliseconds).
func (v *Viewer) Tick(now float64) bool {
	if !v.Active() {
		return false
	}
	return v.loop.Step(now)
}

// Resize forwards a new container box. The input methods below likewise do
// nothing once the viewer is inert or torn down.
func (v *Viewer) Resize(box Box) {
	if v.Active() {
		v.ctrl.Resize(box)
	}
}

// OnPointerMove forwards a pointer move to the controller.
func (v *Viewer) OnPointerMove(x, y float64) {
	if v.Active() {
		v.ctrl.OnPointerMove(x, y)
	}
}

// OnPointerDown forwards a press.
func (v *Viewer) OnPointerDown(x, y float64) {
	if v.Active() {
		v.ctrl.OnPointerDown(x, y)
	}
}

// OnPointerUp forwards a release.
func (v *Viewer) OnPointerUp() {
	if v.Active() {
		v.ctrl.OnPointerUp()
	}
}

// OnPointerLeave forwards the pointer leaving the surface.
func (v *Viewer) OnPointerLeave() {
	if v.Active() {
		v.ctrl.OnPointerLeave()
	}
}

// OnWheel forwards a wheel step; negative deltaY zooms in.
func (v *Viewer) OnWheel(deltaY float64) {
	if v.Active() {
		v.ctrl.OnWheel(deltaY)
	}
}

// OnPinch forwards the ratio of successive two-finger distances.
func (v *Viewer) OnPinch(ratio float64) {
	if v.Active() {
		v.ctrl.OnPinch(ratio)
	}
}

// OnKey forwards a typed character.
func (v *Viewer) OnKey(key rune) {
	if v.Active() {
		v.ctrl.OnKey(key)
	}
}

// OnClick forwards a click and reports whether it selected an object.
func (v *Viewer) OnClick(x, y float64) bool {
	return v.Active() && v.ctrl.OnClick(x, y)
}

// OnTap is OnClick for touch input.
func (v *Viewer) OnTap(x, y float64) bool {
	return v.Active() && v.ctrl.OnTap(x, y)
}

// Notify shows a transient overlay notice.
func (v *Viewer) Notify(text string, kind NoticeKind) {
	if v.Active() {
		v.ctrl.Notify(text, kind)
	}
}

// Teardown stops the loop, detaches listeners and releases the effects.
// Calling it again does nothing.
func (v *Viewer) Teardown() {
	if v == nil || v.torn {
		return
	}
	v.torn = true
	if v.ctrl == nil {
		return
	}
	v.loop.Stop()
	if v.detach != nil {
		v.detach()
		v.detach = nil
	}
	v.ctrl.Teardown()
	v.log.Info("viewer torn down", zap.Uint64("frames", v.loop.Frames()))
}
