package sky

import (
	"math"

	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// HitTest returns the topmost object whose footprint, grown by margin, contains
// the logical screen point (x, y), or world.NoObject.
func HitTest(s *world.Sky, vs ViewState, f Frame, x, y, margin float64) world.ObjectID {
	order := s.DrawOrder()
	// Brightest objects paint last, so walk back to front in reverse.
	for i := len(order) - 1; i >= 0; i-- {
		obj := s.Object(order[i])
		sx, sy := Project(obj.X, obj.Y, vs, f)
		r := ObjectSize(obj, vs)/2 + margin
		if math.Hypot(x-sx, y-sy) <= r {
			return obj.ID
		}
	}
	return world.NoObject
}
