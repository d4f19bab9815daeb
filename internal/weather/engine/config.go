package engine

import (
	"fmt"
	"image/color"
	"math"

	"weatherfx/internal/core"
	"weatherfx/internal/weather/fog"
	"weatherfx/internal/weather/lightning"
	"weatherfx/internal/weather/wind"
)

// Config selects the effects and their tunables for an Engine.
type Config struct {
	Effects []core.EffectKind

	// WindSpeed is the peak base wind; the sign is the direction and zero
	// disables wind and its sound entirely.
	WindSpeed     float64
	WindFrequency float64

	// Pixel draws flakes as squares and picks the pixel fog texture.
	Pixel bool

	FogDensity float64
	FogColor   color.NRGBA
	FogInertia float64

	// LightningFrequency is the mean pause between bursts in milliseconds.
	LightningFrequency float64

	Volume float64
	Seed   int64

	// Drops overrides the pool size of precipitation species.
	Drops map[core.EffectKind]int

	// StatsEvery logs frame statistics every n ticks; zero disables it.
	StatsEvery  int
	StatsWindow int
}

// DefaultConfig returns every effect enabled with the stock tunables.
func DefaultConfig() Config {
	fp := fog.DefaultParams()
	return Config{
		Effects:            append([]core.EffectKind(nil), core.Order...),
		WindSpeed:          4,
		WindFrequency:      wind.DefaultParams(0).BaseFrequency,
		FogDensity:         fp.Density,
		FogColor:           fp.Color,
		FogInertia:         fp.Inertia,
		LightningFrequency: lightning.DefaultFrequency,
		Volume:             1,
		Seed:               1,
	}
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	if math.IsNaN(c.Volume) || c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %v: %w", c.Volume, core.ErrInvalidArgument)
	}
	if math.IsNaN(c.WindSpeed) || math.IsInf(c.WindSpeed, 0) {
		return fmt.Errorf("wind speed %v: %w", c.WindSpeed, core.ErrInvalidArgument)
	}
	if !(c.LightningFrequency > 0) {
		return fmt.Errorf("lightning frequency %v: %w", c.LightningFrequency, core.ErrInvalidArgument)
	}
	for _, k := range c.Effects {
		if _, ok := factories[k]; !ok {
			return fmt.Errorf("effect %d: %w", k, core.ErrInvalidArgument)
		}
	}
	for k, n := range c.Drops {
		if n < 0 {
			return fmt.Errorf("%v drop count %d: %w", k, n, core.ErrInvalidArgument)
		}
	}
	return nil
}

func (c Config) windParams() wind.Params {
	p := wind.DefaultParams(c.WindSpeed)
	p.BaseFrequency = c.WindFrequency
	return p
}

func (c Config) fogParams() fog.Params {
	return fog.Params{Density: c.FogDensity, Color: c.FogColor, Inertia: c.FogInertia}
}
