// Package screen hosts a sky viewer in an Ebitengine window.
package screen

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/spacehole-rogue/zenith_sky/internal/sky"
)

// Surface is the window as the viewer sees it. It implements sky.Surface and
// sky.ResizeNotifier; the box is updated from Layout.
type Surface struct {
	box       sky.Box
	listeners map[int]func(sky.Box)
	nextID    int
	cursor    sky.Cursor
}

// NewSurface creates a surface with an initial logical size.
func NewSurface(width, height float64) *Surface {
	return &Surface{
		box:       sky.Box{Width: width, Height: height, DevicePixelRatio: 1},
		listeners: make(map[int]func(sky.Box)),
	}
}

// Box returns the current logical window size and scale factor.
func (s *Surface) Box() sky.Box { return s.box }

// SetCursor switches the system cursor shape.
func (s *Surface) SetCursor(c sky.Cursor) {
	s.cursor = c
	ebiten.SetCursorShape(cursorShape(c))
}

// OnResize registers fn for size changes.
func (s *Surface) OnResize(fn func(sky.Box)) (detach func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// setBox records a new size and notifies listeners when it changed.
func (s *Surface) setBox(b sky.Box) {
	if b == s.box {
		return
	}
	s.box = b
	for _, fn := range s.listeners {
		fn(b)
	}
}

func cursorShape(c sky.Cursor) ebiten.CursorShapeType {
	switch c {
	case sky.CursorPointer:
		return ebiten.CursorShapePointer
	case sky.CursorMove:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}
