// Package wind produces the instantaneous wind speed signal every other effect
// reacts to: a slow base sinusoid with a stack of gust harmonics on top.
package wind

import (
	"math"
	"time"

	"weatherfx/pkg/core"
)

// Harmonics is the number of gust harmonics summed on top of the base wind.
const Harmonics = 10

// reseedBand is how close to zero the last gust harmonic must be before the
// gust amplitude is redrawn.
const reseedBand = 0.01

// Params configures a Model. Positive speeds blow to the right.
type Params struct {
	// BaseMaxSpeed is the peak base wind speed.
	BaseMaxSpeed float64
	// Amplitude in [0, 100] is how far the base wind swings below its peak;
	// 100 oscillates between -BaseMaxSpeed and +BaseMaxSpeed.
	Amplitude float64
	// BaseFrequency sets how fast the base wind oscillates, roughly 0–100.
	BaseFrequency float64
	// MaxGusts bounds the per-harmonic gust amplitude.
	MaxGusts float64
	// GustFrequency sets the fundamental gust frequency, roughly 0–100.
	GustFrequency float64
}

// DefaultParams returns the standard wind shape for the given peak speed.
func DefaultParams(baseMaxSpeed float64) Params {
	return Params{
		BaseMaxSpeed:  baseMaxSpeed,
		Amplitude:     55,
		BaseFrequency: 50,
		MaxGusts:      3,
		GustFrequency: 50,
	}
}

func (p Params) sanitized() Params {
	p.Amplitude = math.Max(0, math.Min(100, p.Amplitude))
	p.MaxGusts = math.Max(0, p.MaxGusts)
	if math.IsNaN(p.BaseMaxSpeed) || math.IsInf(p.BaseMaxSpeed, 0) {
		p.BaseMaxSpeed = 0
	}
	return p
}

// Bound returns the largest |speed| the model can produce with these params.
func (p Params) Bound() float64 {
	p = p.sanitized()
	return math.Abs(p.BaseMaxSpeed)*(1+p.Amplitude/100) + Harmonics*p.MaxGusts
}

// Model computes wind speed as a pure function of elapsed time and the current
// gust amplitude. Nothing is integrated across ticks.
type Model struct {
	p     Params
	rng   *core.RNG
	start time.Duration

	gust  float64
	base  float64
	speed float64
}

// New builds a model starting at now.
func New(p Params, rng *core.RNG, now time.Duration) *Model {
	m := &Model{rng: rng}
	m.Reset(p, now)
	return m
}

// Reset reinitialises the parameters, restarts the time origin at now and
// draws a fresh gust amplitude.
func (m *Model) Reset(p Params, now time.Duration) {
	m.p = p.sanitized()
	m.start = now
	m.gust = m.drawGust()
	m.Update(now)
}

// Params returns the active parameters.
func (m *Model) Params() Params { return m.p }

// Update recomputes the wind for time now and returns the signed speed.
func (m *Model) Update(now time.Duration) float64 {
	if m.p.BaseMaxSpeed == 0 {
		m.base, m.speed = 0, 0
		return 0
	}
	t := (now - m.start).Seconds()

	dif := m.p.BaseMaxSpeed * m.p.Amplitude / 100
	mean := m.p.BaseMaxSpeed - dif
	m.base = mean + dif*math.Sin(2*math.Pi*m.p.BaseFrequency/1000*t)

	gusts := 0.0
	harmonic := 0.0
	for i := 1; i <= Harmonics; i++ {
		harmonic = math.Sin(2 * math.Pi * float64(i) * m.p.GustFrequency / 500 * t)
		gusts += m.gust * harmonic
	}
	if math.Abs(harmonic) < reseedBand {
		m.gust = m.drawGust()
	}

	m.speed = m.base + gusts
	return m.speed
}

// Speed returns the value computed by the last Update.
func (m *Model) Speed() float64 { return m.speed }

// Base returns the base-wind component of the last Update, without gusts.
func (m *Model) Base() float64 { return m.base }

func (m *Model) drawGust() float64 {
	if m.p.MaxGusts == 0 {
		return 0
	}
	return m.rng.Uniform(m.p.MaxGusts/2, m.p.MaxGusts)
}
