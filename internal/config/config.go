// Package config loads the weatherfx settings: embedded defaults, an optional
// YAML file on top, then command-line flags.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"weatherfx/internal/core"
	"weatherfx/internal/weather/engine"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every setting of the weatherfx binaries.
type Config struct {
	Screen        ScreenConfig    `yaml:"screen"`
	Weather       WeatherConfig   `yaml:"weather"`
	Wind          WindConfig      `yaml:"wind"`
	Fog           FogConfig       `yaml:"fog"`
	Lightning     LightningConfig `yaml:"lightning"`
	Precipitation map[string]int  `yaml:"precipitation" validate:"dive,keys,effect,endkeys,gte=0,lte=1000"`
	Audio         AudioConfig     `yaml:"audio"`
	Assets        AssetsConfig    `yaml:"assets"`
	Log           LogConfig       `yaml:"log"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig sizes the drawing surface.
type ScreenConfig struct {
	Width  int `yaml:"width" validate:"gte=16,lte=8192"`
	Height int `yaml:"height" validate:"gte=16,lte=8192"`
	TPS    int `yaml:"tps" validate:"gte=1,lte=1000"`
}

// WeatherConfig picks the effects.
type WeatherConfig struct {
	Effects []string `yaml:"effects" validate:"dive,effect"`
	Pixel   bool     `yaml:"pixel"`
	Seed    int64    `yaml:"seed"`
}

// WindConfig sets the peak base wind; the sign is the direction.
type WindConfig struct {
	Speed     float64 `yaml:"speed" validate:"gte=-1000,lte=1000"`
	Frequency float64 `yaml:"frequency" validate:"gte=0,lte=1000"`
}

// FogConfig tints the fog.
type FogConfig struct {
	Density float64 `yaml:"density" validate:"gte=0,lte=1"`
	Color   string  `yaml:"color" validate:"hexcolor"`
	Inertia float64 `yaml:"inertia" validate:"gte=0"`
}

// LightningConfig sets the mean pause between bursts.
type LightningConfig struct {
	FrequencyMS float64 `yaml:"frequency_ms" validate:"gt=0"`
}

// AudioConfig controls the mixer.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Volume   float64 `yaml:"volume" validate:"gte=0,lte=1"`
	Channels int     `yaml:"channels" validate:"gte=1,lte=256"`
}

// AssetsConfig points at a directory of images and sounds. Empty means
// procedural assets only.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
	// File sends every log line to a file instead of stderr.
	File string `yaml:"file"`
}

// TelemetryConfig controls frame statistics.
type TelemetryConfig struct {
	Window      int `yaml:"window" validate:"gte=1"`
	ReportEvery int `yaml:"report_every" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("effect", func(fl validator.FieldLevel) bool {
		_, ok := core.ParseEffectKind(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(fmt.Sprintf("config: register effect validation: %v", err))
	}
	return v
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load merges the YAML file at path over the embedded defaults and validates
// the result. An empty path uses the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges, effect names and colours.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FogColor parses the fog colour.
func (c *Config) FogColor() (color.NRGBA, error) {
	col, err := colorful.Hex(c.Fog.Color)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("fog colour %q: %w", c.Fog.Color, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// EngineConfig converts the settings to an engine configuration.
func (c *Config) EngineConfig() (engine.Config, error) {
	fogColor, err := c.FogColor()
	if err != nil {
		return engine.Config{}, err
	}
	kinds := make([]core.EffectKind, 0, len(c.Weather.Effects))
	for _, name := range c.Weather.Effects {
		k, ok := core.ParseEffectKind(name)
		if !ok {
			return engine.Config{}, fmt.Errorf("effect %q: %w", name, core.ErrInvalidArgument)
		}
		kinds = append(kinds, k)
	}
	var drops map[core.EffectKind]int
	for name, n := range c.Precipitation {
		k, ok := core.ParseEffectKind(name)
		if !ok {
			return engine.Config{}, fmt.Errorf("precipitation %q: %w", name, core.ErrInvalidArgument)
		}
		if drops == nil {
			drops = make(map[core.EffectKind]int)
		}
		drops[k] = n
	}
	volume := c.Audio.Volume
	if !c.Audio.Enabled {
		volume = 0
	}
	return engine.Config{
		Effects:            kinds,
		WindSpeed:          c.Wind.Speed,
		WindFrequency:      c.Wind.Frequency,
		Pixel:              c.Weather.Pixel,
		FogDensity:         c.Fog.Density,
		FogColor:           fogColor,
		FogInertia:         c.Fog.Inertia,
		LightningFrequency: c.Lightning.FrequencyMS,
		Volume:             volume,
		Seed:               c.Weather.Seed,
		Drops:              drops,
		StatsEvery:         c.Telemetry.ReportEvery,
		StatsWindow:        c.Telemetry.Window,
	}, nil
}
