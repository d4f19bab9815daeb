// Package telemetry keeps rolling statistics of engine frame cost.
package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the number of frames kept when none is configured.
const DefaultWindow = 240

// Sample is the cost of one engine tick.
type Sample struct {
	Duration time.Duration
	// DirtyFraction is the share of the surface reported changed.
	DirtyFraction float64
	Rects         int
}

// Summary condenses the samples currently in the window.
type Summary struct {
	Frames       int     `csv:"frames"`
	MeanMS       float64 `csv:"mean_ms"`
	StdDevMS     float64 `csv:"stddev_ms"`
	P95MS        float64 `csv:"p95_ms"`
	MaxMS        float64 `csv:"max_ms"`
	MeanDirty    float64 `csv:"mean_dirty"`
	MeanRects    float64 `csv:"mean_rects"`
	TotalSamples int     `csv:"total_samples"`
}

// FrameStats is a fixed-size ring of frame samples.
type FrameStats struct {
	ms    []float64
	dirty []float64
	rects []float64
	next  int
	full  bool
	total int
}

// NewFrameStats keeps the last window samples.
func NewFrameStats(window int) *FrameStats {
	if window <= 0 {
		window = DefaultWindow
	}
	return &FrameStats{
		ms:    make([]float64, window),
		dirty: make([]float64, window),
		rects: make([]float64, window),
	}
}

// Add records one tick.
func (f *FrameStats) Add(s Sample) {
	f.ms[f.next] = float64(s.Duration) / float64(time.Millisecond)
	f.dirty[f.next] = s.DirtyFraction
	f.rects[f.next] = float64(s.Rects)
	f.next++
	f.total++
	if f.next == len(f.ms) {
		f.next = 0
		f.full = true
	}
}

// Len returns the number of samples in the window.
func (f *FrameStats) Len() int {
	if f.full {
		return len(f.ms)
	}
	return f.next
}

// Reset empties the window.
func (f *FrameStats) Reset() {
	f.next, f.full, f.total = 0, false, 0
}

// Summary computes statistics over the window. An empty window yields zeros.
func (f *FrameStats) Summary() Summary {
	n := f.Len()
	out := Summary{Frames: n, TotalSamples: f.total}
	if n == 0 {
		return out
	}
	ms := append([]float64(nil), f.ms[:n]...)
	out.MeanMS, out.StdDevMS = stat.MeanStdDev(ms, nil)
	if n < 2 {
		out.StdDevMS = 0
	}
	out.MaxMS = floats.Max(ms)
	sort.Float64s(ms)
	out.P95MS = stat.Quantile(0.95, stat.Empirical, ms, nil)
	out.MeanDirty = stat.Mean(f.dirty[:n], nil)
	out.MeanRects = stat.Mean(f.rects[:n], nil)
	return out
}
