// Package lightning flashes the whole surface white in short bursts and
// follows each burst with thunder.
package lightning

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"weatherfx/internal/audio"
	"weatherfx/internal/core"
	rng "weatherfx/pkg/core"
)

// Mode is the flasher state.
type Mode int

const (
	Idle Mode = iota
	Flashing
)

func (m Mode) String() string {
	if m == Flashing {
		return "flashing"
	}
	return "idle"
}

const (
	// DefaultFrequency is the mean pause between bursts in milliseconds.
	DefaultFrequency = 8000.0
	// PeakAlpha is the brightest overlay opacity of a sub-flash.
	PeakAlpha = 70.0 / 255

	jitterLow  = 0.67
	jitterHigh = 1.33
	trailerLen = 6
)

// Flasher runs the idle/flashing state machine. Step durations are kept in
// milliseconds.
type Flasher struct {
	surface core.Surface
	size    core.Size
	clock   core.Clock
	rng     *rng.RNG
	sound   *audio.System
	thunder []core.Clip
	overlay image.Image

	frequency float64
	threshold float64
	mode      Mode
	step      int
	steps     []float64
	last      time.Duration
	sounded   bool
	alpha     float64
}

// New returns an idle flasher. overlay may be nil, in which case a white
// image covering the surface is painted.
func New(surface core.Surface, clock core.Clock, r *rng.RNG, sound *audio.System, thunder []core.Clip, overlay image.Image, frequency float64) *Flasher {
	size := surface.Size()
	if overlay == nil {
		overlay = whiteOverlay(size)
	}
	if !(frequency > 0) {
		frequency = DefaultFrequency
	}
	f := &Flasher{
		surface:   surface,
		size:      size,
		clock:     clock,
		rng:       r,
		sound:     sound,
		thunder:   thunder,
		overlay:   overlay,
		frequency: frequency,
		last:      clock.Now(),
	}
	f.drawThreshold()
	return f
}

func whiteOverlay(size core.Size) image.Image {
	img := image.NewNRGBA(size.Rect())
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// Kind implements core.Effect.
func (f *Flasher) Kind() core.EffectKind { return core.Lightning }

// Mode returns the current state.
func (f *Flasher) Mode() Mode { return f.mode }

// Step returns the index of the current step; 0 while idle.
func (f *Flasher) Step() int { return f.step }

// Steps returns the step durations of the current burst in milliseconds.
func (f *Flasher) Steps() []float64 { return f.steps }

// Threshold returns the idle time in milliseconds before the next burst.
func (f *Flasher) Threshold() float64 { return f.threshold }

// Frequency returns the mean pause between bursts in milliseconds.
func (f *Flasher) Frequency() float64 { return f.frequency }

// Alpha returns the overlay opacity drawn on the last tick.
func (f *Flasher) Alpha() float64 { return f.alpha }

// SetFrequency changes the mean pause between bursts. An idle flasher draws a
// new threshold at once.
func (f *Flasher) SetFrequency(ms float64) error {
	if !(ms > 0) || math.IsInf(ms, 0) {
		return fmt.Errorf("lightning frequency %v: %w", ms, core.ErrInvalidArgument)
	}
	f.frequency = ms
	if f.mode == Idle {
		f.drawThreshold()
	}
	return nil
}

func (f *Flasher) drawThreshold() {
	f.threshold = f.frequency * f.rng.Uniform(jitterLow, jitterHigh)
}

// Update advances the state machine. Lightning covers the whole surface, so
// the full rectangle is always reported.
func (f *Flasher) Update(float64) []image.Rectangle {
	now := f.clock.Now()
	f.alpha = 0
	switch f.mode {
	case Idle:
		if millis(now-f.last) > f.threshold {
			f.begin(now)
		}
	case Flashing:
		f.advance(now)
	}
	return []image.Rectangle{f.size.Rect()}
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func (f *Flasher) begin(now time.Duration) {
	flashes := f.rng.IntRange(1, 3)
	steps := make([]float64, 0, 2*flashes+trailerLen)
	var sum float64
	for i := 0; i < 2*flashes; i++ {
		d := float64(f.rng.IntRange(200, 300))
		steps = append(steps, d)
		sum += d
	}
	// The first trailer step may be negative; it then ends on the next tick.
	lead := float64(f.rng.IntRange(500, 1500)) - sum
	if flashes == 1 {
		steps = append(steps, lead, 1, 1, 1, 1, 1)
	} else {
		steps = append(steps, lead, 1, 500, 1, 500, 1)
	}
	f.steps = steps
	f.step = 0
	f.mode = Flashing
	f.last = now
	f.sounded = false
}

func (f *Flasher) advance(now time.Duration) {
	elapsed := millis(now - f.last)
	d := f.steps[f.step]
	if f.step < len(f.steps)-trailerLen {
		var a float64
		if f.step%2 == 0 {
			a = PeakAlpha * elapsed / d
		} else if elapsed > 0 {
			a = PeakAlpha * d / elapsed
		} else {
			a = PeakAlpha
		}
		f.alpha = math.Max(0, math.Min(1, a))
		f.surface.Blit(f.overlay, core.BlitOptions{Alpha: f.alpha})
	} else if f.step%2 == 1 && !f.sounded {
		f.sounded = true
		f.playThunder()
	}

	if elapsed >= d {
		f.step++
		f.last = now
		f.sounded = false
		if f.step >= len(f.steps) {
			f.mode = Idle
			f.step = 0
			f.steps = nil
			f.drawThreshold()
		}
	}
}

func (f *Flasher) playThunder() {
	if f.sound == nil || len(f.thunder) == 0 {
		return
	}
	clip := f.thunder[f.rng.IntN(len(f.thunder))]
	f.sound.PlayOnce(clip, 1)
}
