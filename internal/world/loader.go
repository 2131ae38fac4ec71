package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Format is a payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for payload files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported payload format")

// Defaults applied to malformed records.
const (
	DefaultMagnitude = 3.0
	DefaultSize      = 6.0
)

// Payload is the serializable object-data blob handed to a viewer.
type Payload struct {
	Objects []ObjectRecord   `json:"objects" yaml:"objects" toml:"objects"`
	Zenith  *ZenithReference `json:"zenith,omitempty" yaml:"zenith,omitempty" toml:"zenith,omitempty"`
}

// ZenithReference names the object that should receive zenith rendering.
type ZenithReference struct {
	Name string `json:"name" yaml:"name" toml:"name"`
}

// ObjectRecord is one object as it appears on the wire. Optional numeric fields are
// pointers so that "absent" can be told apart from zero.
type ObjectRecord struct {
	Name             string   `json:"name" yaml:"name" toml:"name"`
	Type             string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	X                *float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y                *float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Size             *float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Magnitude        *float64 `json:"magnitude,omitempty" yaml:"magnitude,omitempty" toml:"magnitude,omitempty"`
	Color            string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	ColorName        string   `json:"color_name,omitempty" yaml:"color_name,omitempty" toml:"color_name,omitempty"`
	SpectralType     string   `json:"spectral_type,omitempty" yaml:"spectral_type,omitempty" toml:"spectral_type,omitempty"`
	BrightnessFactor *float64 `json:"brightness_factor,omitempty" yaml:"brightness_factor,omitempty" toml:"brightness_factor,omitempty"`
	Priority         *float64 `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	DistanceToZenith *float64 `json:"distance_to_zenith,omitempty" yaml:"distance_to_zenith,omitempty" toml:"distance_to_zenith,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty"`
	RA               *float64 `json:"ra,omitempty" yaml:"ra,omitempty" toml:"ra,omitempty"`
	Dec              *float64 `json:"dec,omitempty" yaml:"dec,omitempty" toml:"dec,omitempty"`
	IsZenith         bool     `json:"is_zenith,omitempty" yaml:"is_zenith,omitempty" toml:"is_zenith,omitempty"`
}

// Float returns a pointer to v, for building records in code.
func Float(v float64) *float64 { return &v }

// FormatFromPath picks the payload format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecodePayload parses a payload in the given format. Empty input yields an empty payload.
func DecodePayload(data []byte, format Format) (*Payload, error) {
	var p Payload
	if len(strings.TrimSpace(string(data))) == 0 {
		return &p, nil
	}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &p)
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	case FormatTOML:
		err = toml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s payload: %w", format, err)
	}
	return &p, nil
}

// LoadPayloadFile reads and parses a payload file.
func LoadPayloadFile(path string) (*Payload, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return DecodePayload(data, format)
}

// EncodePayload serializes a payload in the given format.
func EncodePayload(p *Payload, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatYAML:
		return yaml.Marshal(p)
	case FormatTOML:
		return toml.Marshal(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Normalize turns a payload into an immutable scene. A nil payload gives an empty
// scene. Malformed records are repaired with defaults and reported to log; one bad
// record never drops the rest.
func Normalize(p *Payload, log *zap.Logger) *Sky {
	if log == nil {
		log = zap.NewNop()
	}
	if p == nil {
		return EmptySky()
	}

	objects := make([]CelestialObject, 0, len(p.Objects))
	var flagged []ObjectID
	for i, rec := range p.Objects {
		if rec.IsZenith {
			flagged = append(flagged, ObjectID(i))
		}
		obj, problems := normalizeRecord(rec)
		for _, problem := range problems {
			log.Warn("repaired object record",
				zap.Int("index", i),
				zap.String("name", obj.Name),
				zap.String("problem", problem))
		}
		objects = append(objects, obj)
	}

	zenith, how := ResolveZenith(objects, flagged, p.Zenith)
	name := ""
	if p.Zenith != nil {
		name = p.Zenith.Name
	}
	log.Debug("resolved zenith",
		zap.String("reference", name),
		zap.Stringer("resolution", how),
		zap.Int("objects", len(zenith)))

	return NewSky(objects, zenith, name)
}

func normalizeRecord(rec ObjectRecord) (CelestialObject, []string) {
	var problems []string
	obj := CelestialObject{
		Name:         strings.TrimSpace(rec.Name),
		SpectralType: strings.TrimSpace(rec.SpectralType),
		ColorName:    rec.ColorName,
	}
	if obj.Name == "" {
		obj.Name = "Unnamed"
		problems = append(problems, "missing name")
	}

	if rec.Type == "" {
		obj.Type = TypeStar
	} else if t, ok := ParseObjectType(rec.Type); ok {
		obj.Type = t
	} else {
		obj.Type = TypeStar
		problems = append(problems, "unknown type "+rec.Type)
	}

	var ok bool
	if obj.X, ok = finite(rec.X, 0); !ok {
		problems = append(problems, "missing x")
	}
	if obj.Y, ok = finite(rec.Y, 0); !ok {
		problems = append(problems, "missing y")
	}
	if obj.Magnitude, ok = finite(rec.Magnitude, DefaultMagnitude); !ok {
		problems = append(problems, "missing magnitude")
	}
	obj.Size, _ = finite(rec.Size, DefaultSize)
	obj.BrightnessFactor, _ = finite(rec.BrightnessFactor, 0)
	obj.Priority, _ = finite(rec.Priority, 0)
	obj.DistanceToZenith, _ = finite(rec.DistanceToZenith, 0)
	obj.Temperature, _ = finite(rec.Temperature, 0)

	c, hex, spectral, known := resolveColor(rec.Color, rec.SpectralType)
	obj.Color, obj.HexColor = c, hex
	if !known {
		problems = append(problems, "no usable color or spectral type")
	}
	if obj.ColorName == "" && spectral.Name != "" {
		obj.ColorName = spectral.Name
	}
	if obj.Temperature == 0 && spectral.Temperature > 0 {
		obj.Temperature = spectral.Temperature
	}
	return obj, problems
}

// finite returns *v when present and finite, otherwise def and false.
func finite(v *float64, def float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return def, false
	}
	return *v, true
}
