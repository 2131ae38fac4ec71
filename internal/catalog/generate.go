package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

const (
	// DefaultCount is the number of stars kept around the zenith.
	DefaultCount = 25
	// ZenithPriority ranks the zenith star above anything the formula can produce.
	ZenithPriority = 2000
	// VisibleRadius is the maximum angular distance from the zenith, in degrees.
	VisibleRadius = 90.0
	// FieldHalfWidth is the offset in degrees that maps to the edge of the unit disk.
	FieldHalfWidth = 60.0

	defaultZenithMag      = 5.0
	defaultZenithSpectral = "G2V"
)

// Options selects the sky to generate.
type Options struct {
	ZenithRA   float64 // degrees
	ZenithDec  float64 // degrees
	ZenithStar string  // optional; nearest catalogue star when empty
	Count      int     // stars to keep, DefaultCount when zero
}

// StarColor is the display colour derived from magnitude and spectral class.
type StarColor struct {
	Hex              string
	Name             string
	Temperature      float64
	BrightnessFactor float64
}

// Generate builds a payload of the highest-priority stars around the zenith.
func (c Catalog) Generate(opts Options) (*world.Payload, error) {
	if opts.ZenithDec < -90 || opts.ZenithDec > 90 {
		return nil, fmt.Errorf("zenith declination %g out of range", opts.ZenithDec)
	}
	if opts.Count < 0 {
		return nil, errors.New("count must not be negative")
	}
	count := opts.Count
	if count == 0 {
		count = DefaultCount
	}
	ra0 := normalizeRA(opts.ZenithRA)
	dec0 := opts.ZenithDec

	type candidate struct {
		star     Star
		distance float64
		priority float64
	}
	var visible []candidate
	for _, s := range c.Stars {
		d := AngularDistance(ra0, dec0, s.RAdeg, s.DecDeg)
		if d > VisibleRadius {
			continue
		}
		visible = append(visible, candidate{star: s, distance: d, priority: Priority(d, s.Mag)})
	}
	slices.SortStableFunc(visible, func(a, b candidate) int {
		return cmp.Compare(b.priority, a.priority)
	})
	if len(visible) > count {
		visible = visible[:count]
	}

	zenithName := opts.ZenithStar
	if zenithName == "" {
		if nearest, ok := c.Nearest(ra0, dec0); ok {
			zenithName = nearest.Name
		}
	}

	records := make([]world.ObjectRecord, 0, len(visible)+1)
	present := false
	for _, cand := range visible {
		if cand.star.Name == zenithName {
			present = true
		}
		records = append(records, record(cand.star, cand.distance, cand.priority, ra0, dec0))
	}

	if zenithName != "" && !present {
		zs, ok := c.Find(zenithName)
		if !ok {
			zs = Star{Name: zenithName, Mag: defaultZenithMag, Spectral: defaultZenithSpectral}
		}
		// The zenith star sits at the zenith by definition.
		zs.RAdeg, zs.DecDeg = ra0, dec0
		records = slices.Insert(records, 0, record(zs, 0, ZenithPriority, ra0, dec0))
	}

	p := &world.Payload{Objects: records}
	if zenithName != "" {
		p.Zenith = &world.ZenithReference{Name: zenithName}
	}
	return p, nil
}

// Nearest returns the catalogue star closest to the given position.
func (c Catalog) Nearest(ra, dec float64) (Star, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, s := range c.Stars {
		if d := AngularDistance(ra, dec, s.RAdeg, s.DecDeg); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Star{}, false
	}
	return c.Stars[best], true
}

func record(s Star, distance, priority, ra0, dec0 float64) world.ObjectRecord {
	col := ColorFor(s.Mag, s.Spectral)
	x, y := Project(s.RAdeg, s.DecDeg, ra0, dec0)
	return world.ObjectRecord{
		Name:             s.Name,
		Type:             world.TypeStar.String(),
		X:                world.Float(x),
		Y:                world.Float(y),
		Size:             world.Float(VisualSize(s.Mag) * (1 + col.BrightnessFactor*0.5)),
		Magnitude:        world.Float(s.Mag),
		Color:            col.Hex,
		ColorName:        col.Name,
		SpectralType:     s.Spectral,
		BrightnessFactor: world.Float(col.BrightnessFactor),
		Priority:         world.Float(priority),
		DistanceToZenith: world.Float(distance),
		Temperature:      world.Float(col.Temperature),
		RA:               world.Float(s.RAdeg),
		Dec:              world.Float(s.DecDeg),
	}
}

// Priority ranks a star by closeness to the zenith, then by brightness.
func Priority(distance, mag float64) float64 {
	return (VisibleRadius-distance)*10 + (6-mag)*5
}

// BrightnessFactor maps magnitude to [0.3, 1]; brighter stars score higher.
func BrightnessFactor(mag float64) float64 {
	return clamp((6-mag)/6, 0.3, 1)
}

// AngularDistance is the great-circle separation of two positions, all in degrees.
func AngularDistance(ra1, dec1, ra2, dec2 float64) float64 {
	r1, d1 := radians(ra1), radians(dec1)
	r2, d2 := radians(ra2), radians(dec2)
	cosDist := math.Sin(d1)*math.Sin(d2) + math.Cos(d1)*math.Cos(d2)*math.Cos(r1-r2)
	return degrees(math.Acos(clamp(cosDist, -1, 1)))
}

// Project maps a position to illustrative view coordinates around the zenith.
// FieldHalfWidth degrees reach the edge; results are clamped to [-1, 1].
func Project(ra, dec, ra0, dec0 float64) (x, y float64) {
	dRA := math.Remainder(ra-ra0, 360)
	x = dRA * math.Cos(radians(dec0)) / FieldHalfWidth
	y = (dec - dec0) / FieldHalfWidth
	return clamp(x, -1, 1), clamp(y, -1, 1)
}

// VisualSize is the base size hint for a star of the given magnitude.
func VisualSize(mag float64) float64 {
	return clamp(18*math.Pow(10, -mag/2.5), 6, 30)
}

// ColorFor derives a saturated display colour from the spectral class, pushing hue
// toward a temperature band and saturation and value up with brightness.
func ColorFor(mag float64, spectral string) StarColor {
	class, ok := world.LookupSpectral(spectral)
	if !ok {
		class = world.SpectralClasses["G"]
	}
	bf := BrightnessFactor(mag)

	base, err := colorful.Hex(class.Hex)
	if err != nil {
		base = colorful.Color{R: 1, G: 1, B: 1}
	}
	_, s, v := base.Hsv()
	s = math.Min(1, s+bf*0.4)
	v = math.Min(1, v+bf*0.3)

	temp := class.Temperature
	var hue float64
	var name string
	switch {
	case temp > 10000:
		hue, s, name = 241.2, math.Min(1, s+0.3), "Intense Stellar Blue"
	case temp > 7000:
		hue, s, name = 216, math.Min(1, s+0.2), "Bright Blue-White"
	case temp > 6000:
		hue, s, name = 54, math.Min(1, s+0.1), "Radiant Solar Yellow"
	case temp >= 4000:
		hue, s, name = 28.8, math.Min(1, s+0.2), "Cosmic Orange"
	default:
		hue, s, name = 0, math.Min(1, s+0.3), "Deep Red"
	}
	switch {
	case mag < 1:
		name += " (Superbright)"
	case mag < 2:
		name += " (Very Bright)"
	case mag < 3:
		name += " (Bright)"
	}

	return StarColor{
		Hex:              colorful.Hsv(hue, s, v).Clamped().Hex(),
		Name:             name,
		Temperature:      temp,
		BrightnessFactor: bf,
	}
}

func normalizeRA(ra float64) float64 {
	ra = math.Mod(ra, 360)
	if ra < 0 {
		ra += 360
	}
	return ra
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }
