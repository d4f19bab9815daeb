// Package engine runs the active weather effects against a surface: it
// advances the wind, updates every effect in a fixed order, presents the
// merged dirty regions and schedules ambient sound.
package engine

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"weatherfx/internal/assets"
	"weatherfx/internal/audio"
	"weatherfx/internal/core"
	"weatherfx/internal/telemetry"
	"weatherfx/internal/weather/fog"
	"weatherfx/internal/weather/lightning"
	"weatherfx/internal/weather/wind"
	rng "weatherfx/pkg/core"
)

const (
	cueInterval = 656 * time.Millisecond
	cueWrap     = 20
	// ambientGain is shared between all clips queued when the effect set was
	// built.
	ambientGain = 1.5

	windVoices    = 3
	windSoundFrom = 3.0
	windSoundGain = 0.0025
)

type cue struct {
	kind core.EffectKind
	clip core.Clip
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger routes engine logs to log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine owns the active effects, the wind model and the audio system.
type Engine struct {
	cfg     Config
	surface core.Surface
	size    core.Size
	assets  core.AssetProvider
	clock   core.Clock
	sound   *audio.System
	log     *zap.SugaredLogger
	rng     *rng.RNG

	wind       *wind.Model
	windSpeed  float64
	windVoices []core.Channel

	effects map[core.EffectKind]core.Effect
	ambient map[core.EffectKind][]core.Channel

	queue        []cue
	initialQueue int
	lastCue      int
	prevCue      int

	rects []image.Rectangle
	stats *telemetry.FrameStats
	ticks int
}

// New builds an engine and its initial effect set. A nil mixer runs silent, a
// nil asset provider falls back to procedural assets and a nil clock uses
// wall time.
func New(cfg Config, surface core.Surface, mixer core.SoundMixer, provider core.AssetProvider, clock core.Clock, opts ...Option) (*Engine, error) {
	if surface == nil {
		return nil, fmt.Errorf("engine needs a surface: %w", core.ErrInvalidArgument)
	}
	if cfg.LightningFrequency == 0 {
		cfg.LightningFrequency = lightning.DefaultFrequency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		provider = assets.NewProcedural(cfg.Seed)
	}
	if clock == nil {
		clock = core.NewSystemClock()
	}
	e := &Engine{
		cfg:     cfg,
		surface: surface,
		size:    surface.Size(),
		assets:  provider,
		clock:   clock,
		log:     zap.NewNop().Sugar(),
		rng:     rng.NewRNG(cfg.Seed),
		stats:   telemetry.NewFrameStats(cfg.StatsWindow),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sound = audio.NewSystem(mixer, cfg.Volume, e.log)
	e.build(cfg.Effects)
	return e, nil
}

// build replaces the effect set. Every effect gets a fresh random stream and
// the ambient queue starts over; wind settings carry across.
func (e *Engine) build(kinds []core.EffectKind) {
	e.sound.Close()
	e.windVoices = nil
	e.effects = make(map[core.EffectKind]core.Effect, len(kinds))
	e.ambient = make(map[core.EffectKind][]core.Channel)
	e.queue = nil
	e.lastCue, e.prevCue = 0, 0

	for _, k := range core.Order {
		if !slices.Contains(kinds, k) {
			continue
		}
		eff, clips := factories[k](e, e.rng.Split())
		e.effects[k] = eff
		for _, c := range clips {
			e.queue = append(e.queue, cue{kind: k, clip: c})
		}
	}
	e.initialQueue = len(e.queue)
	e.cfg.Effects = e.Active()
	e.startWind()
	e.log.Infow("weather effects built", "effects", e.cfg.Effects, "ambient", e.initialQueue)
}

func (e *Engine) startWind() {
	for _, ch := range e.windVoices {
		e.sound.Stop(ch)
	}
	e.windVoices = nil

	now := e.clock.Now()
	if e.wind == nil {
		e.wind = wind.New(e.cfg.windParams(), e.rng.Split(), now)
	} else {
		e.wind.Reset(e.cfg.windParams(), now)
	}
	if e.cfg.WindSpeed == 0 {
		return
	}
	for _, clip := range e.loadClips("wind") {
		if ch, ok := e.sound.PlayLooped(clip, 0); ok {
			e.windVoices = append(e.windVoices, ch)
		}
	}
	e.updateWindVoices()
}

// Update runs one tick and returns the regions presented.
func (e *Engine) Update() []image.Rectangle {
	started := time.Now()
	now := e.clock.Now()
	e.windSpeed = e.wind.Update(now)

	e.rects = e.rects[:0]
	for _, k := range core.Order {
		if eff, ok := e.effects[k]; ok {
			e.rects = append(e.rects, eff.Update(e.windSpeed)...)
		}
	}
	dirty := core.ClipRects(core.MergeRects(e.rects), e.size.Rect())
	e.surface.Present(dirty)

	e.scheduleAmbient(now)
	e.updateWindVoices()
	e.recordFrame(time.Since(started), dirty)
	return dirty
}

func (e *Engine) scheduleAmbient(now time.Duration) {
	if len(e.queue) == 0 {
		return
	}
	idx := (int(now/cueInterval) + 1) % cueWrap
	if idx < e.prevCue {
		// The cue counter wrapped; let the next round of cues through.
		e.lastCue = 0
	}
	e.prevCue = idx
	if idx <= e.lastCue {
		return
	}
	e.lastCue = idx

	next := e.queue[0]
	base := ambientGain / float64(e.initialQueue)
	ch, ok := e.sound.PlayLooped(next.clip, base)
	if !ok {
		e.log.Debugw("ambient cue skipped, no free channel", "clip", next.clip.Name())
		return
	}
	e.ambient[next.kind] = append(e.ambient[next.kind], ch)
	e.queue = e.queue[1:]
}

func (e *Engine) updateWindVoices() {
	level := math.Max(0, (math.Abs(e.wind.Base())-windSoundFrom)*windSoundGain)
	for _, ch := range e.windVoices {
		e.sound.SetBase(ch, level)
	}
}

func (e *Engine) recordFrame(d time.Duration, dirty []image.Rectangle) {
	total := e.size.W * e.size.H
	frac := 0.0
	if total > 0 {
		frac = float64(core.Area(dirty)) / float64(total)
	}
	e.stats.Add(telemetry.Sample{Duration: d, DirtyFraction: frac, Rects: len(dirty)})
	e.ticks++
	if e.cfg.StatsEvery > 0 && e.ticks%e.cfg.StatsEvery == 0 {
		s := e.stats.Summary()
		e.log.Infow("frame stats",
			"frames", s.Frames,
			"mean_ms", s.MeanMS,
			"p95_ms", s.P95MS,
			"max_ms", s.MaxMS,
			"dirty", s.MeanDirty,
		)
	}
}

// Toggle removes kind if it is running, otherwise rebuilds the effect set
// with kind added.
func (e *Engine) Toggle(kind core.EffectKind) {
	if _, ok := factories[kind]; !ok {
		e.log.Debugw("toggle ignored, unknown effect", "kind", int(kind))
		return
	}
	if _, ok := e.effects[kind]; ok {
		delete(e.effects, kind)
		for _, ch := range e.ambient[kind] {
			e.sound.Stop(ch)
		}
		delete(e.ambient, kind)
		e.queue = slices.DeleteFunc(e.queue, func(c cue) bool { return c.kind == kind })
		e.cfg.Effects = e.Active()
		e.log.Infow("weather effect removed", "effect", kind.String())
		return
	}
	e.build(append(e.Active(), kind))
}

// ToggleEffect toggles an effect by display name. Unknown names are ignored.
func (e *Engine) ToggleEffect(name string) {
	kind, ok := core.ParseEffectKind(name)
	if !ok {
		e.log.Debugw("toggle ignored, unknown effect", "name", name)
		return
	}
	e.Toggle(kind)
}

// SetWindSpeed restarts the wind with a new peak speed and base frequency.
// The other wind parameters are kept.
func (e *Engine) SetWindSpeed(baseMax, baseFreq float64) error {
	if math.IsNaN(baseMax) || math.IsInf(baseMax, 0) || math.IsNaN(baseFreq) || math.IsInf(baseFreq, 0) {
		return fmt.Errorf("wind %v/%v: %w", baseMax, baseFreq, core.ErrInvalidArgument)
	}
	e.cfg.WindSpeed = baseMax
	e.cfg.WindFrequency = baseFreq
	e.startWind()
	return nil
}

// SetFogDensity repaints the fog. A nil colour keeps the current one. The
// values are remembered for when fog is next enabled.
func (e *Engine) SetFogDensity(d float64, c *color.NRGBA) {
	e.cfg.FogDensity = d
	if c != nil {
		e.cfg.FogColor = *c
	}
	if f, ok := e.effects[core.Fog].(*fog.Band); ok {
		f.SetDensity(e.cfg.FogDensity, e.cfg.FogColor)
		e.cfg.FogDensity = f.Params().Density
	}
}

// SetLightningFrequency changes the mean pause between bursts in
// milliseconds.
func (e *Engine) SetLightningFrequency(ms float64) error {
	if !(ms > 0) || math.IsInf(ms, 0) {
		return fmt.Errorf("lightning frequency %v: %w", ms, core.ErrInvalidArgument)
	}
	e.cfg.LightningFrequency = ms
	if f, ok := e.effects[core.Lightning].(*lightning.Flasher); ok {
		return f.SetFrequency(ms)
	}
	return nil
}

// ChangeVolume sets the master volume. Every looping channel is rescaled to
// its initial volume times v; values outside [0, 1] change nothing.
func (e *Engine) ChangeVolume(v float64) error {
	if err := e.sound.SetMaster(v); err != nil {
		return err
	}
	e.cfg.Volume = v
	return nil
}

// Volume returns the master volume.
func (e *Engine) Volume() float64 { return e.sound.Master() }

// Active lists the running effects in update order.
func (e *Engine) Active() []core.EffectKind {
	out := make([]core.EffectKind, 0, len(e.effects))
	for _, k := range core.Order {
		if _, ok := e.effects[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Effect returns the running effect of the given kind.
func (e *Engine) Effect(kind core.EffectKind) (core.Effect, bool) {
	eff, ok := e.effects[kind]
	return eff, ok
}

// Wind returns the wind model.
func (e *Engine) Wind() *wind.Model { return e.wind }

// WindSpeed returns the wind computed on the last tick.
func (e *Engine) WindSpeed() float64 { return e.windSpeed }

// Size returns the surface size.
func (e *Engine) Size() core.Size { return e.size }

// Config returns the live configuration.
func (e *Engine) Config() Config { return e.cfg }

// Audio exposes the audio system.
func (e *Engine) Audio() *audio.System { return e.sound }

// PendingAmbient reports how many ambient clips still wait for a cue.
func (e *Engine) PendingAmbient() int { return len(e.queue) }

// Perf summarises recent frame costs.
func (e *Engine) Perf() telemetry.Summary { return e.stats.Summary() }

// Close stops every sound the engine started.
func (e *Engine) Close() {
	e.sound.Close()
	e.windVoices = nil
	e.ambient = make(map[core.EffectKind][]core.Channel)
}
