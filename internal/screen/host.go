package screen

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
	"github.com/spacehole-rogue/zenith_sky/internal/render"
	"github.com/spacehole-rogue/zenith_sky/internal/sky"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// Options configures a Host.
type Options struct {
	Config   config.Config
	Payload  *world.Payload
	Reloads  <-chan world.Reload // optional; new payloads replace the viewer
	Logger   *zap.Logger
	Listener sky.SelectionListener
}

// Host is the Ebitengine game that owns the window, the renderer and the
// current viewer. All viewer calls happen on the update goroutine.
type Host struct {
	opts     Options
	log      *zap.Logger
	surface  *Surface
	renderer *render.Renderer
	viewer   *sky.Viewer
	input    *input
	start    time.Time
	payload  *world.Payload

	screen    *ebiten.Image
	presented uint64
}

// NewHost creates a host. The viewer is mounted on the first update, once the
// window size is known.
func NewHost(o Options) *Host {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	w := o.Config.Window
	return &Host{
		opts:     o,
		log:      o.Logger,
		surface:  NewSurface(float64(w.Width), float64(w.Height)),
		renderer: render.NewRenderer(o.Logger.Named("render"), o.Config.Effects.Seed),
		payload:  o.Payload,
	}
}

// Run opens the window and blocks until it is closed.
func Run(o Options) error {
	w := o.Config.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	h := NewHost(o)
	defer h.Close()
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Viewer returns the mounted viewer, or nil before the first update.
func (h *Host) Viewer() *sky.Viewer { return h.viewer }

func (h *Host) mount(p *world.Payload) {
	h.viewer = sky.NewViewer(h.surface, p,
		sky.WithConfig(h.opts.Config),
		sky.WithLogger(h.log.Named("viewer")),
		sky.WithRenderer(h.renderer),
		sky.WithSelectionListener(h.opts.Listener))
	h.input = newInput(h.viewer)
}

// Update polls input, applies payload reloads and advances the viewer one tick.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if h.viewer == nil {
		h.start = time.Now()
		h.mount(h.payload)
	}
	h.drainReloads()

	h.input.poll(h.viewer, h.origin())
	h.viewer.Tick(float64(time.Since(h.start).Microseconds()) / 1000)
	return nil
}

func (h *Host) drainReloads() {
	if h.opts.Reloads == nil {
		return
	}
	for {
		select {
		case r, ok := <-h.opts.Reloads:
			if !ok {
				h.opts.Reloads = nil
				return
			}
			h.reload(r)
		default:
			return
		}
	}
}

// reload replaces the viewer with one built from the new payload. A payload
// that failed to parse leaves the current viewer in place.
func (h *Host) reload(r world.Reload) {
	name := filepath.Base(r.Path)
	if r.Err != nil {
		h.log.Warn("payload reload failed", zap.String("path", r.Path), zap.Error(r.Err))
		h.viewer.Notify("Reload of "+name+" failed", sky.NoticeWarning)
		return
	}
	h.viewer.Teardown()
	h.payload = r.Payload
	h.mount(r.Payload)
	h.viewer.Notify("Reloaded "+name, sky.NoticeInfo)
	h.log.Info("payload reloaded", zap.String("path", r.Path))
}

// origin places the square frame in the centre of the window.
func (h *Host) origin() frameOrigin {
	b := h.surface.Box()
	f := h.viewer.Controller().Frame()
	return frameOrigin{
		x:     (b.Width - f.Size) / 2,
		y:     (b.Height - f.Size) / 2,
		size:  f.Size,
		scale: b.DevicePixelRatio,
	}
}

// Draw presents the last rendered canvas.
func (h *Host) Draw(dst *ebiten.Image) {
	dst.Fill(render.Palette[render.ColorBackground])
	c := h.renderer.Canvas()
	px := c.Size()
	if h.viewer == nil || px == 0 {
		return
	}
	if h.screen == nil || h.screen.Bounds().Dx() != px {
		if h.screen != nil {
			h.screen.Deallocate()
		}
		h.screen = ebiten.NewImage(px, px)
		h.presented = 0
	}
	if n := h.renderer.Frames(); n != h.presented {
		h.screen.WritePixels(c.Image().Pix)
		h.presented = n
	}

	o := h.origin()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(o.x*o.scale, o.y*o.scale)
	dst.DrawImage(h.screen, op)
}

// Layout is unused; LayoutF takes precedence.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("screen: Layout should not be called")
}

// LayoutF sizes the screen in device pixels and forwards the logical size to
// the viewer.
func (h *Host) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	h.surface.setBox(sky.Box{Width: outsideWidth, Height: outsideHeight, DevicePixelRatio: scale})
	return outsideWidth * scale, outsideHeight * scale
}

// Close tears down the viewer.
func (h *Host) Close() {
	h.viewer.Teardown()
	if h.screen != nil {
		h.screen.Deallocate()
		h.screen = nil
	}
}
