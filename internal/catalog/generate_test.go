package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacehole-rogue/zenith_sky/internal/world"
)

func TestDefault_KnownStars(t *testing.T) {
	cat := Default()
	require.GreaterOrEqual(t, len(cat.Stars), 50)

	seen := map[string]bool{}
	for _, s := range cat.Stars {
		assert.False(t, seen[s.Name], "duplicate star %s", s.Name)
		seen[s.Name] = true
		assert.GreaterOrEqual(t, s.RAdeg, 0.0, s.Name)
		assert.Less(t, s.RAdeg, 360.0, s.Name)
		assert.LessOrEqual(t, math.Abs(s.DecDeg), 90.0, s.Name)
		_, ok := world.LookupSpectral(s.Spectral)
		assert.True(t, ok, "%s has unknown spectral type %q", s.Name, s.Spectral)
	}

	sirius, ok := cat.Find("Sirius")
	require.True(t, ok)
	assert.Equal(t, -1.46, sirius.Mag)
}

func TestPriorityAndBrightness(t *testing.T) {
	assert.InDelta(t, 900+29.85, Priority(0, 0.03), 1e-9)
	assert.InDelta(t, 0+0, Priority(90, 6), 1e-9)

	tests := []struct {
		mag, want float64
	}{
		{-1.46, 1},
		{0, 1},
		{3, 0.5},
		{5, 0.3},
		{7, 0.3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, BrightnessFactor(tt.mag), 1e-9, "mag %v", tt.mag)
	}
}

func TestAngularDistance(t *testing.T) {
	assert.InDelta(t, 0, AngularDistance(10, 20, 10, 20), 1e-6)
	assert.InDelta(t, 90, AngularDistance(0, 0, 0, 90), 1e-9)
	assert.InDelta(t, 180, AngularDistance(0, 0, 180, 0), 1e-9)
	assert.InDelta(t, 2, AngularDistance(359, 0, 1, 0), 1e-9)
}

func TestProject(t *testing.T) {
	x, y := Project(100, 10, 100, 10)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = Project(130, 0, 100, 0)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.Equal(t, 0.0, y)

	x, _ = Project(359, 0, 1, 0)
	assert.InDelta(t, -2.0/60, x, 1e-9, "right ascension wraps")

	x, y = Project(300, 80, 100, -10)
	assert.Equal(t, 1.0, math.Abs(x))
	assert.Equal(t, 1.0, y)
}

func TestVisualSize(t *testing.T) {
	assert.Equal(t, 30.0, VisualSize(-1.46))
	assert.InDelta(t, 18, VisualSize(0), 1e-9)
	assert.Equal(t, 6.0, VisualSize(4))
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		name     string
		mag      float64
		spectral string
		wantName string
		wantTemp float64
	}{
		{"hot superbright", 0.97, "B1III", "Intense Stellar Blue (Superbright)", 20000},
		{"white very bright", 1.25, "A2Ia", "Bright Blue-White (Very Bright)", 8500},
		{"yellow bright", 2.23, "F8Ib", "Radiant Solar Yellow (Bright)", 6500},
		{"orange", 2.0, "K2III", "Cosmic Orange (Bright)", 4000},
		{"red dim", 3.5, "M2II", "Deep Red", 3000},
		{"unknown falls back to G", 4, "", "Cosmic Orange", 5500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ColorFor(tt.mag, tt.spectral)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantTemp, c.Temperature)
			_, ok := world.ParseHex(c.Hex)
			assert.True(t, ok, "hex %q", c.Hex)
		})
	}

	red, ok := world.ParseHex(ColorFor(3.5, "M").Hex)
	require.True(t, ok)
	assert.Greater(t, red.R, red.G)
	assert.Greater(t, red.R, red.B)
}

func TestGenerate_AroundVega(t *testing.T) {
	p, err := Default().Generate(Options{ZenithRA: 279.235, ZenithDec: 38.784})
	require.NoError(t, err)
	require.NotNil(t, p.Zenith)
	assert.Equal(t, "Vega", p.Zenith.Name)
	require.Len(t, p.Objects, DefaultCount)

	first := p.Objects[0]
	assert.Equal(t, "Vega", first.Name)
	assert.InDelta(t, 0, *first.DistanceToZenith, 1e-5)
	assert.InDelta(t, 0, *first.X, 1e-6)
	assert.InDelta(t, 0, *first.Y, 1e-6)

	for i, rec := range p.Objects {
		assert.LessOrEqual(t, *rec.DistanceToZenith, VisibleRadius, rec.Name)
		assert.LessOrEqual(t, math.Abs(*rec.X), 1.0, rec.Name)
		assert.LessOrEqual(t, math.Abs(*rec.Y), 1.0, rec.Name)
		if i > 0 {
			assert.GreaterOrEqual(t, *p.Objects[i-1].Priority, *rec.Priority, "sorted by priority")
		}
	}

	sky := world.Normalize(p, nil)
	assert.True(t, sky.IsZenith(0))
}

func TestGenerate_InsertsMissingZenithStar(t *testing.T) {
	cat := Catalog{Stars: []Star{
		{"Near", 10, 0, 1, "A0V", ""},
		{"Far", 60, 0, 1, "A0V", ""},
		{"Other", 200, 0, 1, "A0V", ""},
	}}

	p, err := cat.Generate(Options{ZenithRA: 10, ZenithDec: 0, ZenithStar: "Far", Count: 1})
	require.NoError(t, err)
	require.Len(t, p.Objects, 2)

	zen := p.Objects[0]
	assert.Equal(t, "Far", zen.Name)
	assert.Equal(t, float64(ZenithPriority), *zen.Priority)
	assert.Equal(t, 0.0, *zen.X)
	assert.Equal(t, "Near", p.Objects[1].Name)

	p, err = cat.Generate(Options{ZenithRA: 10, ZenithDec: 0, ZenithStar: "Mystery", Count: 3})
	require.NoError(t, err)
	require.Len(t, p.Objects, 3, "Other is beyond the horizon")
	assert.Equal(t, "Mystery", p.Objects[0].Name)
	assert.Equal(t, 5.0, *p.Objects[0].Magnitude)
	assert.Equal(t, "G2V", p.Objects[0].SpectralType)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Default().Generate(Options{ZenithDec: 91})
	assert.Error(t, err)
	_, err = Default().Generate(Options{Count: -1})
	assert.Error(t, err)

	p, err := Catalog{}.Generate(Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Objects)
	assert.Nil(t, p.Zenith)
}
