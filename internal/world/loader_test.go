package world

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siriusJSON = `{
  "objects": [
    {"name": "Sirius", "type": "star", "x": 0.2, "y": 0.3, "size": 5, "magnitude": -1.4, "color": "#ffffff"},
    {"name": "Vega", "type": "star", "x": -0.4, "y": 0.1, "magnitude": 0.03, "spectral_type": "A0V", "priority": 900}
  ],
  "zenith": {"name": "Vega"}
}`

func TestDecodePayload_JSON(t *testing.T) {
	p, err := DecodePayload([]byte(siriusJSON), FormatJSON)
	require.NoError(t, err)
	require.Len(t, p.Objects, 2)
	require.NotNil(t, p.Zenith)

	assert.Equal(t, "Vega", p.Zenith.Name)
	assert.Equal(t, "Sirius", p.Objects[0].Name)
	require.NotNil(t, p.Objects[0].Magnitude)
	assert.InDelta(t, -1.4, *p.Objects[0].Magnitude, 1e-9)
	assert.Nil(t, p.Objects[1].Size, "absent size stays nil")
}

func TestDecodePayload_YAMLAndTOMLMatchJSON(t *testing.T) {
	yamlDoc := `
objects:
  - name: Sirius
    type: star
    x: 0.2
    y: 0.3
    size: 5
    magnitude: -1.4
    color: "#ffffff"
  - name: Vega
    type: star
    x: -0.4
    y: 0.1
    magnitude: 0.03
    spectral_type: A0V
    priority: 900
zenith:
  name: Vega
`
	tomlDoc := `
[zenith]
name = "Vega"

[[objects]]
name = "Sirius"
type = "star"
x = 0.2
y = 0.3
size = 5.0
magnitude = -1.4
color = "#ffffff"

[[objects]]
name = "Vega"
type = "star"
x = -0.4
y = 0.1
magnitude = 0.03
spectral_type = "A0V"
priority = 900.0
`
	want, err := DecodePayload([]byte(siriusJSON), FormatJSON)
	require.NoError(t, err)

	for _, tc := range []struct {
		format Format
		doc    string
	}{
		{FormatYAML, yamlDoc},
		{FormatTOML, tomlDoc},
	} {
		t.Run(string(tc.format), func(t *testing.T) {
			got, err := DecodePayload([]byte(tc.doc), tc.format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("payload mismatch (-json +%s):\n%s", tc.format, diff)
			}
		})
	}
}

func TestDecodePayload_EmptyAndMalformed(t *testing.T) {
	p, err := DecodePayload(nil, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, p.Objects)

	_, err = DecodePayload([]byte(`{"objects": [`), FormatJSON)
	require.Error(t, err)

	_, err = DecodePayload([]byte(`{}`), Format("xml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"sky.json", FormatJSON, true},
		{"sky.YAML", FormatYAML, true},
		{"dir/sky.yml", FormatYAML, true},
		{"sky.toml", FormatTOML, true},
		{"sky.xml", "", false},
		{"sky", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.ok {
			require.NoError(t, err, tt.path)
			assert.Equal(t, tt.want, got, tt.path)
		} else {
			assert.ErrorIs(t, err, ErrUnsupportedFormat, tt.path)
		}
	}
}

func TestLoadPayloadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sky.json")
	require.NoError(t, os.WriteFile(path, []byte(siriusJSON), 0o644))

	p, err := LoadPayloadFile(path)
	require.NoError(t, err)
	assert.Len(t, p.Objects, 2)

	_, err = LoadPayloadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestEncodePayload_RoundTripsThroughEachFormat(t *testing.T) {
	src, err := DecodePayload([]byte(siriusJSON), FormatJSON)
	require.NoError(t, err)

	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		data, err := EncodePayload(src, f)
		require.NoError(t, err, f)
		back, err := DecodePayload(data, f)
		require.NoError(t, err, f)
		assert.Equal(t, src.Objects[0].Name, back.Objects[0].Name, f)
		assert.Equal(t, src.Zenith, back.Zenith, f)
	}
}

func TestNormalize_NilPayloadIsEmptyScene(t *testing.T) {
	sky := Normalize(nil, nil)
	require.NotNil(t, sky)
	assert.Equal(t, 0, sky.Len())
	assert.Empty(t, sky.DrawOrder())
}

func TestNormalize_RepairsMalformedRecords(t *testing.T) {
	p := &Payload{Objects: []ObjectRecord{
		{Name: "Bare"},
		{Name: "Weird", Type: "comet", X: Float(0.5), Y: Float(-0.5), Magnitude: Float(2), Color: "not-a-color", SpectralType: "K5"},
		{Name: "Good", X: Float(0.1), Y: Float(0.1), Magnitude: Float(1), Color: "#abc"},
	}}

	sky := Normalize(p, nil)
	require.Equal(t, 3, sky.Len())

	bare := sky.Object(0)
	assert.Equal(t, TypeStar, bare.Type)
	assert.Equal(t, DefaultMagnitude, bare.Magnitude)
	assert.Equal(t, NeutralHex, bare.HexColor)
	assert.Equal(t, 0.0, bare.X)

	weird := sky.Object(1)
	assert.Equal(t, TypeStar, weird.Type, "unknown type falls back to star")
	assert.Equal(t, SpectralClasses["K"].Hex, weird.HexColor, "bad hex falls back to spectral colour")
	assert.Equal(t, "Orange", weird.ColorName)
	assert.Equal(t, 4000.0, weird.Temperature)

	good := sky.Object(2)
	assert.Equal(t, color.RGBA{0xaa, 0xbb, 0xcc, 0xff}, good.Color)
	assert.Equal(t, ObjectID(2), good.ID)
}

func TestSky_DrawOrderDimmestFirst(t *testing.T) {
	p := &Payload{Objects: []ObjectRecord{
		{Name: "Bright", Magnitude: Float(-1)},
		{Name: "Dim", Magnitude: Float(4)},
		{Name: "Mid", Magnitude: Float(1.5)},
		{Name: "Mid2", Magnitude: Float(1.5)},
	}}
	sky := Normalize(p, nil)

	var names []string
	for _, id := range sky.DrawOrder() {
		names = append(names, sky.Object(id).Name)
	}
	assert.Equal(t, []string{"Dim", "Mid", "Mid2", "Bright"}, names)
}

func TestSky_NilSafe(t *testing.T) {
	var s *Sky
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Object(0))
	assert.False(t, s.IsZenith(0))
	assert.Nil(t, s.FindByName("x"))
}

func TestDescribe(t *testing.T) {
	obj := CelestialObject{
		Name:             "Vega",
		Type:             TypeStar,
		Magnitude:        0.03,
		ColorName:        "White",
		DistanceToZenith: 12.34,
		Temperature:      9602,
	}
	assert.Equal(t, []string{
		"Vega",
		"Type: Star",
		"Color: White",
		"Magnitude: 0.0",
		"Zenith distance: 12.3 deg",
		"Temperature: 9,602 K",
	}, obj.Describe())

	moon := CelestialObject{Name: "Moon", Type: TypeMoon}
	lines := moon.Describe()
	assert.Len(t, lines, 5, "no temperature line when unknown")
	assert.Equal(t, "Color: Unknown", lines[2])
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, true},
		{"#FF0000", color.RGBA{255, 0, 0, 255}, true},
		{"00ff00", color.RGBA{0, 255, 0, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"", color.RGBA{}, false},
		{"#12", color.RGBA{}, false},
		{"blue", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseHex(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestLookupSpectral(t *testing.T) {
	c, ok := LookupSpectral("m1.5Iab")
	require.True(t, ok)
	assert.Equal(t, "M", c.Letter)

	_, ok = LookupSpectral("X")
	assert.False(t, ok)
	_, ok = LookupSpectral("  ")
	assert.False(t, ok)
}
