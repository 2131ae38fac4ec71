// Package sky is the interactive core of the viewer: view state, projection,
// hit testing, input handling and the per-frame tick.
package sky

import (
	"math"

	"github.com/spacehole-rogue/zenith_sky/internal/config"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// MinVisibleSize is the smallest diameter an object is ever drawn at, in logical pixels.
const MinVisibleSize = 3.0

// Box is the host container: its logical size and device pixel ratio.
type Box struct {
	Width, Height    float64
	DevicePixelRatio float64
}

// Frame is the square drawing area derived from a Box.
type Frame struct {
	Size   float64 // logical side length
	Center float64 // Size / 2
	Radius float64 // horizon radius in logical pixels
	DPR    float64

	// Generation increments every time the frame is re-derived, so cached
	// layers can tell they are stale.
	Generation uint64
}

// NewFrame fits a square drawing area into box.
func NewFrame(box Box, view config.ViewConfig, generation uint64) Frame {
	size := math.Min(box.Width, box.Height)
	if view.MaxSize > 0 {
		size = math.Min(size, view.MaxSize)
	}
	if size < 0 || math.IsNaN(size) {
		size = 0
	}
	dpr := box.DevicePixelRatio
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	return Frame{
		Size:       size,
		Center:     size / 2,
		Radius:     size * view.RadiusFraction,
		DPR:        dpr,
		Generation: generation,
	}
}

// PixelSize is the backing surface side length in device pixels.
func (f Frame) PixelSize() int {
	return int(math.Round(f.Size * f.DPR))
}

// ViewState is the mutable camera and interaction state owned by the controller.
// Current values ease toward their targets once per tick.
type ViewState struct {
	Zoom, TargetZoom       float64
	PanX, PanY             float64
	TargetPanX, TargetPanY float64
	Rotation               float64 // radians
	Hovered, Selected      world.ObjectID
}

// NewViewState returns the neutral view: zoom 1, no pan, nothing hovered.
func NewViewState() ViewState {
	return ViewState{
		Zoom:       1,
		TargetZoom: 1,
		Hovered:    world.NoObject,
		Selected:   world.NoObject,
	}
}

// Project maps world coordinates to logical screen coordinates: rotate about the
// origin, scale by radius*zoom, flip y, then translate by center+pan.
func Project(wx, wy float64, vs ViewState, f Frame) (sx, sy float64) {
	sin, cos := math.Sincos(vs.Rotation)
	rx := wx*cos - wy*sin
	ry := wx*sin + wy*cos
	scale := f.Radius * vs.Zoom
	return f.Center + vs.PanX + rx*scale, f.Center + vs.PanY - ry*scale
}

// ObjectSize is the rendered diameter of obj in logical pixels. The hit tester
// and the renderer both use it.
func ObjectSize(obj *world.CelestialObject, vs ViewState) float64 {
	size := math.Max(4, 12-obj.Magnitude) * 2 * vs.Zoom * (1 + obj.BrightnessFactor*0.3)
	switch obj.ID {
	case vs.Selected:
		size *= 2
	case vs.Hovered:
		size *= 1.5
	}
	if size < MinVisibleSize || math.IsNaN(size) {
		size = MinVisibleSize
	}
	return size
}

// PanLimit is the maximum absolute pan on either axis.
func PanLimit(f Frame) float64 {
	return f.Radius * 0.5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// ZoomPanel is the on-canvas zoom control layout, anchored bottom-left.
type ZoomPanel struct {
	Panel    Rect
	Plus     Rect
	Minus    Rect
	ReadoutX float64
	ReadoutY float64
}

// ZoomPanelLayout positions the zoom control for a frame.
func ZoomPanelLayout(f Frame) ZoomPanel {
	const (
		control = 30.0
		margin  = 20.0
	)
	x := margin
	y := f.Size - margin - control*2 - 10
	return ZoomPanel{
		Panel:    Rect{X: x - 5, Y: y - 5, W: control + 10, H: control*2 + 20},
		Plus:     Rect{X: x, Y: y, W: control, H: control},
		Minus:    Rect{X: x, Y: y + control + 10, W: control, H: control},
		ReadoutX: x + control/2,
		ReadoutY: y + control*2 + 25,
	}
}
