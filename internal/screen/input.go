package screen

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/spacehole-rogue/zenith_sky/internal/sky"
)

// input polls Ebitengine once per frame and feeds the viewer. Positions are
// converted from screen pixels to logical frame coordinates.
type input struct {
	gestures *sky.Gestures
	touchIDs []ebiten.TouchID
	touches  []sky.TouchPoint
	chars    []rune
}

func newInput(target sky.Input) *input {
	return &input{gestures: sky.NewGestures(target)}
}

// frameOrigin is where the drawing frame's top-left sits in the window, in
// logical pixels.
type frameOrigin struct {
	x, y  float64
	size  float64
	scale float64
}

func (o frameOrigin) toFrame(sx, sy int) (float64, float64) {
	return float64(sx)/o.scale - o.x, float64(sy)/o.scale - o.y
}

func (o frameOrigin) contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x < o.size && y < o.size
}

func (in *input) poll(v *sky.Viewer, o frameOrigin) {
	mx, my := ebiten.CursorPosition()
	x, y := o.toFrame(mx, my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.gestures.Mouse(x, y, pressed, ebiten.IsFocused() && o.contains(x, y))

	if _, dy := ebiten.Wheel(); dy != 0 && o.contains(x, y) {
		// Ebitengine reports wheel-up as positive; the viewer follows DOM sign.
		v.OnWheel(-dy)
	}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	in.touches = in.touches[:0]
	for _, id := range in.touchIDs {
		tx, ty := o.toFrame(ebiten.TouchPosition(id))
		in.touches = append(in.touches, sky.TouchPoint{ID: int(id), X: tx, Y: ty})
	}
	in.gestures.Touches(in.touches)

	in.chars = ebiten.AppendInputChars(in.chars[:0])
	for _, r := range in.chars {
		v.OnKey(r)
	}
}
