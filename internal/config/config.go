package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (ZENITHSKY_VIEW_MAX_ZOOM etc).
const EnvPrefix = "ZENITHSKY"

// DefaultFile is the config file name searched for in the working and home directories.
const DefaultFile = ".zenithsky.toml"

// WindowConfig sizes the interactive window.
type WindowConfig struct {
	Title  string `mapstructure:"title" toml:"title"`
	Width  int    `mapstructure:"width" toml:"width"`
	Height int    `mapstructure:"height" toml:"height"`
}

// ViewConfig holds the viewer geometry and interaction constants.
type ViewConfig struct {
	MaxSize        float64 `mapstructure:"max_size" toml:"max_size"`
	RadiusFraction float64 `mapstructure:"radius_fraction" toml:"radius_fraction"`
	MinZoom        float64 `mapstructure:"min_zoom" toml:"min_zoom"`
	MaxZoom        float64 `mapstructure:"max_zoom" toml:"max_zoom"`
	ZoomStep       float64 `mapstructure:"zoom_step" toml:"zoom_step"` // fraction per wheel notch or key press
	Easing         float64 `mapstructure:"easing" toml:"easing"`
	RotationSpeed  float64 `mapstructure:"rotation_speed" toml:"rotation_speed"`
	HitMargin      float64 `mapstructure:"hit_margin" toml:"hit_margin"`
	DragDeadZone   float64 `mapstructure:"drag_dead_zone" toml:"drag_dead_zone"`
}

// EffectsConfig tunes the particle field and shooting stars.
type EffectsConfig struct {
	Particles          int     `mapstructure:"particles" toml:"particles"`
	ShootingStarChance float64 `mapstructure:"shooting_star_chance" toml:"shooting_star_chance"`
	MaxShootingStars   int     `mapstructure:"max_shooting_stars" toml:"max_shooting_stars"`
	Seed               uint64  `mapstructure:"seed" toml:"seed"`
}

// DataConfig points at the payload to display.
type DataConfig struct {
	Path  string `mapstructure:"path" toml:"path"`
	Watch bool   `mapstructure:"watch" toml:"watch"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

// Config holds all runtime configuration for zenithsky.
// Values are populated from .zenithsky.toml, ZENITHSKY_* env vars, and CLI flags.
type Config struct {
	Window  WindowConfig  `mapstructure:"window" toml:"window"`
	View    ViewConfig    `mapstructure:"view" toml:"view"`
	Effects EffectsConfig `mapstructure:"effects" toml:"effects"`
	Data    DataConfig    `mapstructure:"data" toml:"data"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Zenith Sky", Width: 800, Height: 700},
		View: ViewConfig{
			MaxSize:        600,
			RadiusFraction: 0.45,
			MinZoom:        0.5,
			MaxZoom:        5.0,
			ZoomStep:       0.1,
			Easing:         0.1,
			RotationSpeed:  0.0002,
			HitMargin:      10,
			DragDeadZone:   4,
		},
		Effects: EffectsConfig{
			Particles:          150,
			ShootingStarChance: 0.002,
			MaxShootingStars:   3,
			Seed:               0,
		},
		Data: DataConfig{Watch: true},
		Log:  LogConfig{Level: "info", Format: "json"},
	}
}

// SetDefaults registers every default with viper.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("view.max_size", d.View.MaxSize)
	v.SetDefault("view.radius_fraction", d.View.RadiusFraction)
	v.SetDefault("view.min_zoom", d.View.MinZoom)
	v.SetDefault("view.max_zoom", d.View.MaxZoom)
	v.SetDefault("view.zoom_step", d.View.ZoomStep)
	v.SetDefault("view.easing", d.View.Easing)
	v.SetDefault("view.rotation_speed", d.View.RotationSpeed)
	v.SetDefault("view.hit_margin", d.View.HitMargin)
	v.SetDefault("view.drag_dead_zone", d.View.DragDeadZone)
	v.SetDefault("effects.particles", d.Effects.Particles)
	v.SetDefault("effects.shooting_star_chance", d.Effects.ShootingStarChance)
	v.SetDefault("effects.max_shooting_stars", d.Effects.MaxShootingStars)
	v.SetDefault("effects.seed", d.Effects.Seed)
	v.SetDefault("data.path", d.Data.Path)
	v.SetDefault("data.watch", d.Data.Watch)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configuration from the global viper instance, applying built-in
// defaults for any values not set by config file, environment, or flags.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load against an explicit viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot work with.
func (c Config) Validate() error {
	switch {
	case c.View.MinZoom <= 0:
		return fmt.Errorf("view.min_zoom must be positive, got %g", c.View.MinZoom)
	case c.View.MaxZoom < c.View.MinZoom:
		return fmt.Errorf("view.max_zoom %g is below view.min_zoom %g", c.View.MaxZoom, c.View.MinZoom)
	case c.View.ZoomStep <= 0 || c.View.ZoomStep >= 1:
		return fmt.Errorf("view.zoom_step must be in (0, 1), got %g", c.View.ZoomStep)
	case c.View.Easing <= 0 || c.View.Easing > 1:
		return fmt.Errorf("view.easing must be in (0, 1], got %g", c.View.Easing)
	case c.View.RadiusFraction <= 0 || c.View.RadiusFraction > 0.5:
		return fmt.Errorf("view.radius_fraction must be in (0, 0.5], got %g", c.View.RadiusFraction)
	case c.View.MaxSize <= 0:
		return fmt.Errorf("view.max_size must be positive, got %g", c.View.MaxSize)
	case c.Effects.Particles < 0 || c.Effects.MaxShootingStars < 0:
		return fmt.Errorf("effects counts must not be negative")
	case c.Effects.ShootingStarChance < 0 || c.Effects.ShootingStarChance > 1:
		return fmt.Errorf("effects.shooting_star_chance must be in [0, 1], got %g", c.Effects.ShootingStarChance)
	}
	return nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteFile writes cfg as TOML to path. An existing file is only replaced when
// overwrite is set.
func WriteFile(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Init points v at cfgFile, or searches for .zenithsky.toml in the working and home
// directories, and enables ZENITHSKY_* environment overrides. A missing config file
// is not an error; a malformed one is.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".zenithsky")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
