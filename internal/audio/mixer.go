package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"go.uber.org/zap"

	"weatherfx/internal/core"
)

// DefaultChannels is the channel count used when none is configured.
const DefaultChannels = 24

type voice struct {
	reserved bool
	level    float64
	volume   *effects.Volume
}

// Mixer is a fixed bank of channels mixed into one beep.Streamer. The engine
// drives it from the game loop while the audio device pulls samples from its
// own goroutine, so every method takes the lock.
type Mixer struct {
	mu      sync.Mutex
	voices  []voice
	scratch [][2]float64
	log     *zap.SugaredLogger
}

// NewMixer returns a mixer with n channels.
func NewMixer(n int, log *zap.SugaredLogger) *Mixer {
	if n <= 0 {
		n = DefaultChannels
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Mixer{voices: make([]voice, n), log: log}
}

// Channels returns the channel count.
func (m *Mixer) Channels() int { return len(m.voices) }

// AllocateChannel reserves the lowest free channel.
func (m *Mixer) AllocateChannel() (core.Channel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.voices {
		if !m.voices[i].reserved {
			m.voices[i] = voice{reserved: true, level: 1}
			return core.Channel(i), true
		}
	}
	return 0, false
}

// Play starts clip on ch, replacing whatever was playing there.
func (m *Mixer) Play(ch core.Channel, clip core.Clip, loop bool) {
	c, ok := clip.(*Clip)
	if !ok || c == nil {
		m.log.Warnw("mixer cannot play clip", "clip", clip)
		return
	}
	if c.Len() == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.voice(ch)
	if v == nil {
		return
	}
	var s beep.Streamer = c.Streamer()
	if loop {
		s = beep.Loop(-1, c.Streamer())
	}
	v.reserved = true
	v.volume = &effects.Volume{Streamer: s, Base: 2}
	applyLevel(v.volume, v.level)
}

// SetVolume sets the linear level of ch, clamped to [0, 1].
func (m *Mixer) SetVolume(ch core.Channel, level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.voice(ch)
	if v == nil {
		return
	}
	if math.IsNaN(level) {
		level = 0
	}
	v.level = math.Max(0, math.Min(1, level))
	if v.volume != nil {
		applyLevel(v.volume, v.level)
	}
}

// Stop silences ch and frees it.
func (m *Mixer) Stop(ch core.Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v := m.voice(ch); v != nil {
		*v = voice{}
	}
}

// Level returns the linear level of ch and whether it is reserved.
func (m *Mixer) Level(ch core.Channel) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.voice(ch)
	if v == nil || !v.reserved {
		return 0, false
	}
	return v.level, true
}

// Playing reports whether ch currently has a clip.
func (m *Mixer) Playing(ch core.Channel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.voice(ch)
	return v != nil && v.volume != nil
}

// Stream mixes every playing channel into samples. Channels whose clip ran
// out are released.
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range samples {
		samples[i] = [2]float64{}
	}
	if cap(m.scratch) < len(samples) {
		m.scratch = make([][2]float64, len(samples))
	}
	tmp := m.scratch[:len(samples)]
	for i := range m.voices {
		v := &m.voices[i]
		if v.volume == nil {
			continue
		}
		n, ok := v.volume.Stream(tmp)
		for j := 0; j < n; j++ {
			samples[j][0] += tmp[j][0]
			samples[j][1] += tmp[j][1]
		}
		if !ok || n < len(tmp) {
			*v = voice{}
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (m *Mixer) Err() error { return nil }

func (m *Mixer) voice(ch core.Channel) *voice {
	if ch < 0 || int(ch) >= len(m.voices) {
		return nil
	}
	return &m.voices[ch]
}

// math.Log2(0) is -Inf, so zero is expressed with Silent.
func applyLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}

// Silent is a mixer without channels. Every allocation fails.
type Silent struct{}

// AllocateChannel always fails.
func (Silent) AllocateChannel() (core.Channel, bool) { return 0, false }

// Play does nothing.
func (Silent) Play(core.Channel, core.Clip, bool) {}

// SetVolume does nothing.
func (Silent) SetVolume(core.Channel, float64) {}

// Stop does nothing.
func (Silent) Stop(core.Channel) {}
