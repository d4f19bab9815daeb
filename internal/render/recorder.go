package render

import (
	"image"

	"weatherfx/internal/core"
)

// Blit is one recorded draw call.
type Blit struct {
	Image image.Image
	Op    core.BlitOptions
}

// Recorder is a headless Surface. It keeps the draw calls of the frame in
// progress and the dirty regions of the last presented frame.
type Recorder struct {
	size core.Size

	pending   []Blit
	lastBlits []Blit
	lastDirty []image.Rectangle
	frames    int
	dirtyArea int
}

// NewRecorder returns a Recorder for a surface of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{size: core.Size{W: w, H: h}}
}

// Size returns the surface dimensions.
func (r *Recorder) Size() core.Size { return r.size }

// Blit records a draw call.
func (r *Recorder) Blit(img image.Image, op core.BlitOptions) {
	r.pending = append(r.pending, Blit{Image: img, Op: op})
}

// Present closes the frame.
func (r *Recorder) Present(dirty []image.Rectangle) {
	r.lastBlits = append(r.lastBlits[:0], r.pending...)
	r.pending = r.pending[:0]
	r.lastDirty = append(r.lastDirty[:0], dirty...)
	r.frames++
	r.dirtyArea += core.Area(dirty)
}

// Pending returns the draw calls issued since the last Present.
func (r *Recorder) Pending() []Blit { return r.pending }

// LastBlits returns the draw calls of the last presented frame.
func (r *Recorder) LastBlits() []Blit { return r.lastBlits }

// LastDirty returns the regions reported with the last presented frame.
func (r *Recorder) LastDirty() []image.Rectangle { return r.lastDirty }

// Frames counts presented frames.
func (r *Recorder) Frames() int { return r.frames }

// DirtyFraction is the mean share of the surface reported dirty per frame.
func (r *Recorder) DirtyFraction() float64 {
	total := r.size.W * r.size.H * r.frames
	if total == 0 {
		return 0
	}
	return float64(r.dirtyArea) / float64(total)
}
