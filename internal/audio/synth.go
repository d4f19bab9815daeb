package audio

import (
	"math"
	"time"

	rng "weatherfx/pkg/core"
)

// Synthesised stand-ins for the ambient recordings. They are used when no
// sound files are supplied so every effect still has something to play.

func noiseBuffer(d time.Duration) [][2]float64 {
	return make([][2]float64, SampleRate.N(d))
}

// SynthRain is a soft low-passed hiss.
func SynthRain(name string, seed int64) *Clip {
	r := rng.NewRNG(seed)
	buf := noiseBuffer(4 * time.Second)
	var lp float64
	for i := range buf {
		lp += 0.2 * (r.Uniform(-1, 1) - lp)
		v := 0.35 * lp
		buf[i] = [2]float64{v, v}
	}
	fadeEdges(buf, SampleRate.N(50*time.Millisecond))
	return FromSamples(name, buf)
}

// SynthHail is a bed of quiet noise with sharp decaying clicks.
func SynthHail(name string, seed int64) *Clip {
	r := rng.NewRNG(seed)
	buf := noiseBuffer(3 * time.Second)
	var click float64
	for i := range buf {
		if r.Float64() < 0.0008 {
			click = r.Uniform(0.4, 0.8)
		}
		click *= 0.995
		v := 0.05*r.Uniform(-1, 1) + click*r.Uniform(-1, 1)
		buf[i] = [2]float64{v, v}
	}
	fadeEdges(buf, SampleRate.N(50*time.Millisecond))
	return FromSamples(name, buf)
}

// SynthWind is brown noise with a slow swell.
func SynthWind(name string, seed int64) *Clip {
	r := rng.NewRNG(seed)
	buf := noiseBuffer(6 * time.Second)
	var brown float64
	swell := r.Uniform(0.15, 0.35)
	for i := range buf {
		brown = 0.98*brown + 0.02*r.Uniform(-1, 1)
		t := float64(i) / float64(SampleRate)
		amp := 0.6 + 0.4*math.Sin(2*math.Pi*swell*t)
		v := clampUnit(4 * brown * amp)
		buf[i] = [2]float64{v, v}
	}
	fadeEdges(buf, SampleRate.N(100*time.Millisecond))
	return FromSamples(name, buf)
}

// SynthThunder is a crack followed by a long decaying rumble.
func SynthThunder(name string, seed int64) *Clip {
	r := rng.NewRNG(seed)
	buf := noiseBuffer(time.Duration(r.IntRange(2500, 4000)) * time.Millisecond)
	var brown float64
	tau := float64(len(buf)) / 4
	for i := range buf {
		brown = 0.99*brown + 0.01*r.Uniform(-1, 1)
		env := math.Exp(-float64(i) / tau)
		crack := 0.0
		if i < SampleRate.N(80*time.Millisecond) {
			crack = 0.5 * r.Uniform(-1, 1)
		}
		v := clampUnit(8*brown*env + crack*env)
		buf[i] = [2]float64{v, v}
	}
	return FromSamples(name, buf)
}

func fadeEdges(buf [][2]float64, n int) {
	if n <= 0 || 2*n > len(buf) {
		return
	}
	for i := 0; i < n; i++ {
		g := float64(i) / float64(n)
		buf[i][0] *= g
		buf[i][1] *= g
		j := len(buf) - 1 - i
		buf[j][0] *= g
		buf[j][1] *= g
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
