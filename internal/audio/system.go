package audio

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"weatherfx/internal/core"
)

// System plays clips through a SoundMixer and applies the master volume. It
// is created with the engine and handed to every effect that makes sound.
type System struct {
	mixer    core.SoundMixer
	registry *Registry
	master   float64
	log      *zap.SugaredLogger
}

// NewSystem wraps mixer. A nil mixer yields a silent system where every
// allocation fails.
func NewSystem(mixer core.SoundMixer, master float64, log *zap.SugaredLogger) *System {
	if mixer == nil {
		mixer = Silent{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if !validLevel(master) {
		master = 1
	}
	return &System{mixer: mixer, registry: NewRegistry(), master: master, log: log}
}

func validLevel(v float64) bool { return !math.IsNaN(v) && v >= 0 && v <= 1 }

// Master returns the master volume.
func (s *System) Master() float64 { return s.master }

// Registry exposes the looping channels and their initial volumes.
func (s *System) Registry() *Registry { return s.registry }

// PlayLooped starts clip on a free channel at base×master and records the
// channel. ok is false when no channel was free.
func (s *System) PlayLooped(clip core.Clip, base float64) (core.Channel, bool) {
	if clip == nil {
		return 0, false
	}
	ch, ok := s.mixer.AllocateChannel()
	if !ok {
		s.log.Debugw("no free channel", "clip", clip.Name())
		return 0, false
	}
	s.mixer.SetVolume(ch, base*s.master)
	s.mixer.Play(ch, clip, true)
	s.registry.Put(ch, base)
	return ch, true
}

// PlayOnce plays clip through to the end at base×master. One-shot channels
// are released by the mixer and are not tracked.
func (s *System) PlayOnce(clip core.Clip, base float64) bool {
	if clip == nil {
		return false
	}
	ch, ok := s.mixer.AllocateChannel()
	if !ok {
		s.log.Debugw("no free channel", "clip", clip.Name())
		return false
	}
	s.mixer.SetVolume(ch, base*s.master)
	s.mixer.Play(ch, clip, false)
	return true
}

// SetBase changes the initial volume of a tracked channel and applies it.
func (s *System) SetBase(ch core.Channel, base float64) {
	if _, ok := s.registry.Get(ch); !ok {
		return
	}
	s.registry.Put(ch, base)
	s.mixer.SetVolume(ch, base*s.master)
}

// SetMaster rescales every tracked channel to initial×v. Values outside
// [0, 1] are rejected without touching any channel.
func (s *System) SetMaster(v float64) error {
	if !validLevel(v) {
		return fmt.Errorf("master volume %v: %w", v, core.ErrInvalidArgument)
	}
	s.master = v
	for _, ch := range s.registry.Channels() {
		base, _ := s.registry.Get(ch)
		s.mixer.SetVolume(ch, base*v)
	}
	return nil
}

// Stop halts ch and forgets it.
func (s *System) Stop(ch core.Channel) {
	s.mixer.Stop(ch)
	s.registry.Remove(ch)
}

// Close stops every tracked channel.
func (s *System) Close() {
	for _, ch := range s.registry.Channels() {
		s.Stop(ch)
	}
}
