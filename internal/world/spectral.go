package world

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SpectralClass describes the colour and temperature of a spectral type.
type SpectralClass struct {
	Letter      string
	Hex         string
	Temperature float64
	Name        string
}

// NeutralHex is the fallback colour for records without usable colour data.
const NeutralHex = "#e0e0e0"

// SpectralClasses maps the leading letter of a spectral type to its class.
var SpectralClasses = map[string]SpectralClass{
	"O": {"O", "#9bb0ff", 30000, "Hot Blue"},
	"B": {"B", "#aabfff", 20000, "Blue-White"},
	"A": {"A", "#cad7ff", 8500, "White"},
	"F": {"F", "#f8f7ff", 6500, "Yellow-White"},
	"G": {"G", "#fff4ea", 5500, "Solar Yellow"},
	"K": {"K", "#ffd2a1", 4000, "Orange"},
	"M": {"M", "#ffad51", 3000, "Red"},
}

// LookupSpectral returns the class for a spectral type such as "A1V" or "k".
func LookupSpectral(spectralType string) (SpectralClass, bool) {
	s := strings.TrimSpace(spectralType)
	if s == "" {
		return SpectralClass{}, false
	}
	c, ok := SpectralClasses[strings.ToUpper(s[:1])]
	return c, ok
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque RGBA colour.
func ParseHex(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// resolveColor picks the explicit colour, then the spectral colour, then neutral.
func resolveColor(hex, spectralType string) (color.RGBA, string, SpectralClass, bool) {
	if c, ok := ParseHex(hex); ok {
		sc, _ := LookupSpectral(spectralType)
		return c, strings.ToLower(strings.TrimSpace(hex)), sc, true
	}
	if sc, ok := LookupSpectral(spectralType); ok {
		c, _ := ParseHex(sc.Hex)
		return c, sc.Hex, sc, true
	}
	c, _ := ParseHex(NeutralHex)
	return c, NeutralHex, SpectralClass{}, false
}
