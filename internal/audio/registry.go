package audio

import (
	"sort"

	"weatherfx/internal/core"
)

// Registry maps each looping channel to the volume it was started with
// before the master level was applied.
type Registry struct {
	initial map[core.Channel]float64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{initial: make(map[core.Channel]float64)}
}

// Put records ch with its initial volume, replacing any previous entry.
func (r *Registry) Put(ch core.Channel, initial float64) { r.initial[ch] = initial }

// Get returns the initial volume of ch.
func (r *Registry) Get(ch core.Channel) (float64, bool) {
	v, ok := r.initial[ch]
	return v, ok
}

// Remove forgets ch.
func (r *Registry) Remove(ch core.Channel) { delete(r.initial, ch) }

// Len reports the number of tracked channels.
func (r *Registry) Len() int { return len(r.initial) }

// Channels lists the tracked channels in ascending order.
func (r *Registry) Channels() []core.Channel {
	out := make([]core.Channel, 0, len(r.initial))
	for ch := range r.initial {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
