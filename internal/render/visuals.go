package render

import (
	"image/color"

	"github.com/spacehole-rogue/zenith_sky/internal/sky"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

// objectVisual describes how one kind of body is drawn.
type objectVisual struct {
	glow   float64 // glow radius as a multiple of the core diameter
	dot    float64 // white centre dot radius as a fraction of the core diameter
	spikes bool
	label  color.NRGBA
}

func visualFor(obj *world.CelestialObject, zenith bool) objectVisual {
	v := typeVisuals(obj.Type)
	if zenith || obj.Magnitude < 1.5 {
		v.spikes = true
	}
	return v
}

func typeVisuals(t world.ObjectType) objectVisual {
	switch t {
	case world.TypeSun:
		return objectVisual{glow: 3, dot: 0.2, label: Palette[ColorGold]}
	case world.TypePlanet:
		return objectVisual{glow: 2, dot: 0.12, label: Palette[ColorHover]}
	case world.TypeMoon:
		return objectVisual{glow: 2, label: Palette[ColorText]} // flat disc, no highlight
	default:
		return objectVisual{glow: 2, dot: 0.15, label: Palette[ColorText]}
	}
}

// glowStops returns the halo gradient for an object: strong at the core,
// fading to fully transparent at the rim. Bright objects get a denser halo.
func glowStops(c color.NRGBA, brightness float64) []Stop {
	inner, mid := uint8(0x60), uint8(0x25)
	if brightness > 0.7 {
		inner, mid = 0x80, 0x40
	}
	return []Stop{
		{At: 0, Color: WithAlpha(c, inner)},
		{At: 0.5, Color: WithAlpha(c, mid)},
		{At: 1, Color: WithAlpha(c, 0)},
	}
}

func noticeColor(kind sky.NoticeKind) color.NRGBA {
	switch kind {
	case sky.NoticeSelection:
		return Palette[ColorGold]
	case sky.NoticeWarning:
		return Palette[ColorWarning]
	default:
		return Palette[ColorAccent]
	}
}
