package world

import (
	"fmt"
	"image/color"
	"sort"
)

// ObjectType is the kind of celestial body an object represents.
type ObjectType uint8

const (
	TypeStar   ObjectType = iota // fixed star
	TypeSun                      // the Sun
	TypePlanet                   // solar-system planet
	TypeMoon                     // the Moon
)

// ObjectID identifies an object by its index in Sky.Objects.
type ObjectID int

// NoObject is the zero value for "nothing hovered / selected".
const NoObject ObjectID = -1

// CelestialObject is a normalized, render-ready object record.
// Every field is filled in; missing input values have been replaced by defaults.
type CelestialObject struct {
	ID               ObjectID
	Name             string
	Type             ObjectType
	X, Y             float64 // world coordinates, unit disk = visible sky
	Size             float64 // base visual size hint from the payload
	Magnitude        float64 // lower = brighter
	Color            color.RGBA
	HexColor         string
	ColorName        string
	SpectralType     string
	BrightnessFactor float64
	Priority         float64
	DistanceToZenith float64
	Temperature      float64 // kelvin, 0 when unknown
}

// ZenithSet is the canonical set of objects that get zenith rendering.
type ZenithSet map[ObjectID]struct{}

// Has reports whether id is a zenith object.
func (z ZenithSet) Has(id ObjectID) bool {
	_, ok := z[id]
	return ok
}

// Sky is an immutable scene: normalized objects, resolved zenith set and draw order.
// A nil *Sky behaves like an empty scene.
type Sky struct {
	Objects    []CelestialObject
	Zenith     ZenithSet
	ZenithName string

	order []ObjectID
}

// NewSky builds a scene from already-normalized objects.
func NewSky(objects []CelestialObject, zenith ZenithSet, zenithName string) *Sky {
	if zenith == nil {
		zenith = ZenithSet{}
	}
	s := &Sky{Objects: objects, Zenith: zenith, ZenithName: zenithName}
	for i := range s.Objects {
		s.Objects[i].ID = ObjectID(i)
	}
	s.order = drawOrder(s.Objects)
	return s
}

// EmptySky returns a scene with no objects.
func EmptySky() *Sky {
	return NewSky(nil, nil, "")
}

// Len returns the number of objects in the scene.
func (s *Sky) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Objects)
}

// Object returns the object with the given id, or nil if out of range.
func (s *Sky) Object(id ObjectID) *CelestialObject {
	if s == nil || id < 0 || int(id) >= len(s.Objects) {
		return nil
	}
	return &s.Objects[id]
}

// DrawOrder returns object ids back to front: dimmest magnitude first, so brighter
// objects paint last. Callers must not modify the returned slice.
func (s *Sky) DrawOrder() []ObjectID {
	if s == nil {
		return nil
	}
	return s.order
}

// IsZenith reports whether id receives zenith rendering.
func (s *Sky) IsZenith(id ObjectID) bool {
	if s == nil {
		return false
	}
	return s.Zenith.Has(id)
}

// FindByName returns the first object with exactly the given name.
func (s *Sky) FindByName(name string) *CelestialObject {
	if s == nil {
		return nil
	}
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}

func drawOrder(objects []CelestialObject) []ObjectID {
	order := make([]ObjectID, len(objects))
	for i := range objects {
		order[i] = ObjectID(i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return objects[order[a]].Magnitude > objects[order[b]].Magnitude
	})
	return order
}

// ParseObjectType maps a payload type string to an ObjectType.
func ParseObjectType(s string) (ObjectType, bool) {
	switch s {
	case "star", "STAR", "Star":
		return TypeStar, true
	case "sun", "SUN", "Sun":
		return TypeSun, true
	case "planet", "PLANET", "Planet":
		return TypePlanet, true
	case "moon", "MOON", "Moon":
		return TypeMoon, true
	default:
		return TypeStar, false
	}
}

// String returns the payload spelling of the type.
func (t ObjectType) String() string {
	switch t {
	case TypeStar:
		return "star"
	case TypeSun:
		return "sun"
	case TypePlanet:
		return "planet"
	case TypeMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Label returns the human-readable type name used in tooltips.
func (t ObjectType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return "Celestial Object"
}

var typeLabels = map[ObjectType]string{
	TypeStar:   "Star",
	TypeSun:    "Sun",
	TypePlanet: "Planet",
	TypeMoon:   "Moon",
}

// Describe returns the tooltip lines for an object.
func (o *CelestialObject) Describe() []string {
	colorName := o.ColorName
	if colorName == "" {
		colorName = "Unknown"
	}
	lines := []string{
		o.Name,
		"Type: " + o.Type.Label(),
		"Color: " + colorName,
		fmt.Sprintf("Magnitude: %.1f", o.Magnitude),
		fmt.Sprintf("Zenith distance: %.1f deg", o.DistanceToZenith),
	}
	if o.Temperature > 0 {
		lines = append(lines, fmt.Sprintf("Temperature: %s K", groupThousands(int64(o.Temperature))))
	}
	return lines
}

// groupThousands formats n with comma separators (5500 -> "5,500").
func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
