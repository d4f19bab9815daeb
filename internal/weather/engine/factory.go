package engine

import (
	"fmt"

	"weatherfx/internal/assets"
	"weatherfx/internal/core"
	"weatherfx/internal/weather/fog"
	"weatherfx/internal/weather/lightning"
	"weatherfx/internal/weather/precip"
	rng "weatherfx/pkg/core"
)

// factory builds one effect and returns the ambient clips it wants looped.
type factory func(e *Engine, r *rng.RNG) (core.Effect, []core.Clip)

var factories = map[core.EffectKind]factory{
	core.Lightning: newLightning,
	core.Fog:       newFog,
	core.Snow:      precipFactory(core.Snow, ""),
	core.Rain:      precipFactory(core.Rain, "rain"),
	core.AcidRain:  precipFactory(core.AcidRain, "rain"),
	core.Hail:      precipFactory(core.Hail, "hail"),
}

var clipCounts = map[string]int{
	"rain":    4,
	"hail":    3,
	"wind":    3,
	"thunder": 5,
}

func precipFactory(kind core.EffectKind, sound string) factory {
	return func(e *Engine, r *rng.RNG) (core.Effect, []core.Clip) {
		sp, _ := precip.Defaults(kind)
		f := precip.New(sp, e.surface, r, e.cfg.Pixel)
		if n, ok := e.cfg.Drops[kind]; ok {
			f.SetTarget(n)
		}
		return f, e.loadClips(sound)
	}
}

func newLightning(e *Engine, r *rng.RNG) (core.Effect, []core.Clip) {
	thunder := e.loadClips("thunder")
	return lightning.New(e.surface, e.clock, r, e.sound, thunder, nil, e.cfg.LightningFrequency), nil
}

func newFog(e *Engine, r *rng.RNG) (core.Effect, []core.Clip) {
	name := assets.FogRegular
	if e.cfg.Pixel {
		name = assets.FogPixel
	}
	noise, err := e.assets.LoadImage(name)
	if err != nil {
		e.log.Warnw("fog texture unavailable, using flat haze", "name", name, "err", err)
		noise = nil
	}
	return fog.New(e.surface, e.clock, r, noise, e.cfg.Pixel, e.cfg.fogParams()), nil
}

// loadClips loads family/1..n, skipping clips that fail to load.
func (e *Engine) loadClips(family string) []core.Clip {
	n := clipCounts[family]
	clips := make([]core.Clip, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("%s/%d", family, i)
		clip, err := e.assets.LoadClip(name)
		if err != nil {
			e.log.Warnw("clip unavailable", "name", name, "err", err)
			continue
		}
		clips = append(clips, clip)
	}
	return clips
}
