package app

import (
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"weatherfx/internal/assets"
	"weatherfx/internal/audio"
	"weatherfx/internal/config"
	"weatherfx/internal/core"
	"weatherfx/internal/weather/engine"
)

// Runtime bundles what every binary builds from a Config before choosing a
// surface.
type Runtime struct {
	Config *config.Config
	Log    *zap.SugaredLogger
	Assets core.AssetProvider
	Mixer  *audio.Mixer
}

// NewRuntime builds the logger, asset chain and mixer described by cfg.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	log, err := cfg.Log.Logger()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &Runtime{
		Config: cfg,
		Log:    log,
		Assets: NewAssets(cfg.Assets.Dir, cfg.Weather.Seed, log),
		Mixer:  audio.NewMixer(cfg.Audio.Channels, log),
	}, nil
}

// NewAssets returns the procedural generator, behind a directory when one is
// configured.
func NewAssets(dir string, seed int64, log *zap.SugaredLogger) core.AssetProvider {
	procedural := assets.NewProcedural(seed)
	if dir == "" {
		return procedural
	}
	return assets.NewFallback(log, assets.NewDir(os.DirFS(dir)), procedural)
}

// Engine builds a weather engine drawing onto surface.
func (r *Runtime) Engine(surface core.Surface, clock core.Clock) (*engine.Engine, error) {
	ecfg, err := r.Config.EngineConfig()
	if err != nil {
		return nil, err
	}
	var mixer core.SoundMixer = r.Mixer
	if !r.Config.Audio.Enabled {
		mixer = audio.Silent{}
	}
	return engine.New(ecfg, surface, mixer, r.Assets, clock, engine.WithLogger(r.Log))
}

// Background loads the backdrop for the configured drawing style. A missing
// backdrop is logged and drawn as black.
func (r *Runtime) Background() image.Image {
	name := assets.BackgroundRegular
	if r.Config.Weather.Pixel {
		name = assets.BackgroundPixel
	}
	img, err := r.Assets.LoadImage(name)
	if err != nil {
		r.Log.Warnw("no background", "asset", name, "error", err)
		return nil
	}
	return img
}

// Close flushes the logger.
func (r *Runtime) Close() {
	_ = r.Log.Sync()
}
