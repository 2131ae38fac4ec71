package sky

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

type recordingRenderer struct {
	scenes []Scene
}

func (r *recordingRenderer) Render(s Scene) {
	r.scenes = append(r.scenes, s)
}

func testOptions() Options {
	cfg := config.Default()
	cfg.Effects.Seed = 42
	return Options{View: cfg.View, Effects: cfg.Effects, Logger: zap.NewNop()}
}

func newTestController(t *testing.T, p *world.Payload) *Controller {
	t.Helper()
	c := NewController(world.Normalize(p, zap.NewNop()), testBox, testOptions())
	t.Cleanup(c.Teardown)
	return c
}

func siriusPayload() *world.Payload {
	return &world.Payload{Objects: []world.ObjectRecord{{
		Name:      "Sirius",
		X:         world.Float(0.2),
		Y:         world.Float(0.3),
		Size:      world.Float(5),
		Magnitude: world.Float(-1.4),
		Color:     "#ffffff",
	}}}
}

func TestController_SiriusSelection(t *testing.T) {
	var got []Selection
	at := time.Date(2024, 3, 20, 22, 0, 0, 0, time.UTC)
	opts := testOptions()
	opts.Listener = func(s Selection) { got = append(got, s) }
	opts.Clock = func() time.Time { return at }
	c := NewController(world.Normalize(siriusPayload(), zap.NewNop()), testBox, opts)
	defer c.Teardown()

	x, y := Project(0.2, 0.3, c.State(), c.Frame())
	require.True(t, c.OnClick(x, y))

	require.Len(t, got, 1)
	sel := got[0]
	assert.Equal(t, "Sirius", sel.Object.Name)
	assert.Equal(t, -1.4, sel.Object.Magnitude)
	assert.Equal(t, 5.0, sel.Object.Size)
	assert.Equal(t, "#ffffff", sel.Object.HexColor)
	assert.Equal(t, at, sel.At)
	assert.NotEqual(t, [16]byte{}, [16]byte(sel.ID))
	assert.Equal(t, sel.Object.ID, c.State().Selected)
	assert.Equal(t, 1, c.Notices().Len())
}

func TestController_ClickMissSelectsNothing(t *testing.T) {
	var calls int
	opts := testOptions()
	opts.Listener = func(Selection) { calls++ }
	c := NewController(world.Normalize(siriusPayload(), zap.NewNop()), testBox, opts)
	defer c.Teardown()

	assert.False(t, c.OnClick(c.Frame().Center, c.Frame().Center))
	assert.Zero(t, calls)
	assert.Equal(t, world.NoObject, c.State().Selected)
}

func TestController_DragSuppressesClick(t *testing.T) {
	var calls int
	opts := testOptions()
	opts.Listener = func(Selection) { calls++ }
	c := NewController(world.Normalize(siriusPayload(), zap.NewNop()), testBox, opts)
	defer c.Teardown()

	x, y := Project(0.2, 0.3, c.State(), c.Frame())
	c.OnPointerDown(x-40, y)
	c.OnPointerMove(x, y)
	c.OnPointerUp()
	assert.False(t, c.OnClick(x, y), "click ending a drag")
	assert.Zero(t, calls)

	c.OnPointerDown(x, y)
	c.OnPointerMove(x+1, y) // inside the dead zone
	c.OnPointerUp()
	assert.True(t, c.OnClick(x, y))
	assert.Equal(t, 1, calls)
}

func TestController_PanClamped(t *testing.T) {
	c := newTestController(t, siriusPayload())
	limit := PanLimit(c.Frame())

	c.OnPointerDown(300, 300)
	for _, d := range []float64{50, 500, 5000, 5e6} {
		c.OnPointerMove(300+d, 300-d)
		assert.LessOrEqual(t, math.Abs(c.State().TargetPanX), limit)
		assert.LessOrEqual(t, math.Abs(c.State().TargetPanY), limit)
	}
	assert.Equal(t, limit, c.State().TargetPanX)
	assert.Equal(t, -limit, c.State().TargetPanY)

	for i := range 200 {
		c.Tick(float64(i) * 16)
		assert.LessOrEqual(t, math.Abs(c.State().PanX), limit)
		assert.LessOrEqual(t, math.Abs(c.State().PanY), limit)
	}
	assert.InDelta(t, limit, c.State().PanX, 1e-3)
}

func TestController_PanToKeepsClicks(t *testing.T) {
	c := newTestController(t, siriusPayload())
	limit := PanLimit(c.Frame())

	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside the dead zone", 3, -2, 3, -2},
		{"ordinary pan", 50, 20, 50, 20},
		{"clamped", 1e4, -1e4, limit, -limit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.PanTo(tt.x, tt.y)
			assert.Equal(t, tt.wantX, c.State().TargetPanX)
			assert.Equal(t, tt.wantY, c.State().TargetPanY)
		})
	}

	c.PanTo(50, 0)
	for i := range 120 {
		c.Tick(float64(i) * 16)
	}
	require.InDelta(t, 50, c.State().PanX, 1e-3)
	x, y := Project(0.2, 0.3, c.State(), c.Frame())
	assert.True(t, c.OnClick(x, y))
	assert.Equal(t, c.Sky().FindByName("Sirius").ID, c.State().Selected)
}

func TestController_ZoomReciprocal(t *testing.T) {
	c := newTestController(t, nil)

	for _, f := range []float64{1.1, 1.37, 0.8, 2} {
		before := c.State().TargetZoom
		c.ZoomBy(f)
		c.ZoomBy(1 / f)
		assert.InDelta(t, before, c.State().TargetZoom, 1e-12, "factor %v", f)
	}
}

func TestController_ZoomClamped(t *testing.T) {
	c := newTestController(t, nil)
	view := config.Default().View

	for range 100 {
		c.OnWheel(-120)
		assert.LessOrEqual(t, c.State().TargetZoom, view.MaxZoom)
	}
	assert.Equal(t, view.MaxZoom, c.State().TargetZoom)

	for range 100 {
		c.OnWheel(120)
		assert.GreaterOrEqual(t, c.State().TargetZoom, view.MinZoom)
	}
	assert.Equal(t, view.MinZoom, c.State().TargetZoom)

	for range 50 {
		c.OnPinch(3)
	}
	assert.Equal(t, view.MaxZoom, c.State().TargetZoom)
}

func TestController_WheelSteps(t *testing.T) {
	c := newTestController(t, nil)
	c.OnWheel(-1)
	assert.InDelta(t, 1.1, c.State().TargetZoom, 1e-12)
	c.OnWheel(0)
	assert.InDelta(t, 1.1, c.State().TargetZoom, 1e-12)
	c.OnWheel(1)
	assert.InDelta(t, 0.99, c.State().TargetZoom, 1e-12)
}

func TestController_PinchIgnoresBadRatios(t *testing.T) {
	c := newTestController(t, nil)
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c.OnPinch(r)
	}
	assert.Equal(t, 1.0, c.State().TargetZoom)
	c.OnPinch(1.5)
	assert.InDelta(t, 1.5, c.State().TargetZoom, 1e-12)
}

func TestController_Keys(t *testing.T) {
	c := newTestController(t, nil)
	c.OnKey('+')
	c.OnKey('=')
	assert.InDelta(t, 1.21, c.State().TargetZoom, 1e-12)
	c.OnKey('-')
	assert.InDelta(t, 1.089, c.State().TargetZoom, 1e-12)
	c.OnKey('x')
	assert.InDelta(t, 1.089, c.State().TargetZoom, 1e-12)

	c.OnPointerDown(300, 300)
	c.OnPointerMove(360, 330)
	c.OnPointerUp()
	c.OnKey('0')
	assert.Equal(t, 1.0, c.State().TargetZoom)
	assert.Zero(t, c.State().TargetPanX)
	assert.Zero(t, c.State().TargetPanY)
}

func TestController_ZoomPanelClick(t *testing.T) {
	c := newTestController(t, nil)
	p := ZoomPanelLayout(c.Frame())

	assert.False(t, c.OnClick(p.Plus.X+p.Plus.W/2, p.Plus.Y+p.Plus.H/2))
	assert.InDelta(t, 1.1, c.State().TargetZoom, 1e-12)
	c.OnClick(p.Minus.X+p.Minus.W/2, p.Minus.Y+p.Minus.H/2)
	assert.InDelta(t, 0.99, c.State().TargetZoom, 1e-12)
}

func TestController_HoverAndCursor(t *testing.T) {
	var cursors []Cursor
	opts := testOptions()
	opts.cursor = func(cur Cursor) { cursors = append(cursors, cur) }
	c := NewController(world.Normalize(siriusPayload(), zap.NewNop()), testBox, opts)
	defer c.Teardown()

	x, y := Project(0.2, 0.3, c.State(), c.Frame())
	c.OnPointerMove(x, y)
	assert.Equal(t, world.ObjectID(0), c.State().Hovered)
	c.OnPointerMove(x+2, y+1)
	c.OnPointerMove(1, 1)
	assert.Equal(t, world.NoObject, c.State().Hovered)

	c.OnPointerMove(x, y)
	c.OnPointerLeave()
	assert.Equal(t, world.NoObject, c.State().Hovered)

	assert.Equal(t, []Cursor{CursorPointer, CursorDefault, CursorPointer, CursorDefault}, cursors)
}

func TestController_TickEasesAndRenders(t *testing.T) {
	rec := &recordingRenderer{}
	opts := testOptions()
	opts.Renderer = rec
	c := NewController(world.EmptySky(), testBox, opts)
	defer c.Teardown()

	c.ZoomBy(2)
	c.Tick(0)
	assert.InDelta(t, 1.1, c.State().Zoom, 1e-12)
	assert.InDelta(t, opts.View.RotationSpeed, c.State().Rotation, 1e-12)
	for i := 1; i < 300; i++ {
		c.Tick(float64(i) * 16)
	}
	assert.Equal(t, 2.0, c.State().Zoom)
	assert.InDelta(t, 300*opts.View.RotationSpeed, c.State().Rotation, 1e-9)

	require.Len(t, rec.scenes, 300)
	last := rec.scenes[len(rec.scenes)-1]
	assert.Equal(t, c.State(), last.View)
	assert.Len(t, last.Particles, opts.Effects.Particles)
	assert.Equal(t, uint64(300), c.Frames())
}

func TestController_ResizeAppliedOnTick(t *testing.T) {
	c := newTestController(t, nil)
	before := c.Frame()
	c.OnPointerDown(300, 300)
	c.OnPointerMove(600, 600)
	c.OnPointerUp()

	c.Resize(Box{Width: 300, Height: 400, DevicePixelRatio: 2})
	assert.Equal(t, before, c.Frame(), "resize waits for the next tick")

	c.Tick(0)
	after := c.Frame()
	assert.Equal(t, before.Generation+1, after.Generation)
	assert.InDelta(t, before.Radius*300/600, after.Radius, 1e-9)
	assert.Equal(t, 150.0, after.Center)
	assert.Equal(t, 2.0, after.DPR)
	assert.LessOrEqual(t, c.State().TargetPanX, PanLimit(after))
}

func TestController_InstructionFade(t *testing.T) {
	c := newTestController(t, nil)
	assert.Equal(t, 1.0, c.Scene().InstructionAlpha)

	tests := []struct {
		now  float64
		want float64
	}{
		{1000, 1},
		{4000, 1},
		{5500, 0.5},
		{6000, 0},
		{9000, 0},
	}
	for _, tt := range tests {
		c.Tick(tt.now)
		assert.InDelta(t, tt.want, c.Scene().InstructionAlpha, 1e-9, "at %v", tt.now)
	}
}

func TestController_EmptyData(t *testing.T) {
	rec := &recordingRenderer{}
	opts := testOptions()
	opts.Renderer = rec

	assert.NotPanics(t, func() {
		c := NewController(world.Normalize(&world.Payload{Objects: []world.ObjectRecord{}}, zap.NewNop()), testBox, opts)
		c.OnPointerMove(300, 300)
		c.OnClick(300, 300)
		c.OnWheel(-1)
		c.Tick(0)
		c.Tick(16)
		c.Teardown()

		nilSky := NewController(nil, testBox, opts)
		nilSky.Tick(0)
		nilSky.Teardown()
	})
	require.Len(t, rec.scenes, 3)
	assert.Zero(t, rec.scenes[0].Sky.Len())
}
