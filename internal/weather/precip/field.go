package precip

import (
	"image"

	"weatherfx/internal/core"
	rng "weatherfx/pkg/core"
)

// Field owns the drop pool of one precipitation species and draws it onto a
// surface every tick.
type Field struct {
	sp      Species
	surface core.Surface
	size    core.Size
	rng     *rng.RNG
	pixel   bool

	target int
	drops  []*Drop
	filled bool
	dirty  core.DirtySet
}

// New builds an empty field. Drops are created on the first Update.
func New(sp Species, surface core.Surface, r *rng.RNG, pixel bool) *Field {
	target := sp.Drops
	if target < 0 {
		target = 0
	}
	return &Field{
		sp:      sp,
		surface: surface,
		size:    surface.Size(),
		rng:     r,
		pixel:   pixel,
		target:  target,
	}
}

// Kind reports the species kind.
func (f *Field) Kind() core.EffectKind { return f.sp.Kind }

// Species returns the constants the field was built with.
func (f *Field) Species() Species { return f.sp }

// Drops exposes the live pool, oldest first.
func (f *Field) Drops() []*Drop { return f.drops }

// Target returns the configured pool size.
func (f *Field) Target() int { return f.target }

// SetTarget changes the pool size. The pool converges by one drop per tick.
func (f *Field) SetTarget(n int) {
	if n < 0 {
		n = 0
	}
	f.target = n
}

// Update moves every drop, draws it, and returns the merged regions covering
// each drop's previous and current position.
func (f *Field) Update(wind float64) []image.Rectangle {
	f.balance()

	eff := wind * f.sp.WindScale
	f.dirty.Reset()
	for _, d := range f.drops {
		prev := d.Bounds()
		d.step(f.sp, eff, f.size, f.rng)
		f.surface.Blit(d.sprite, core.BlitOptions{X: d.X, Y: d.Y, Angle: d.Tilt, Alpha: 1})
		f.dirty.Add(prev)
		f.dirty.Add(d.Bounds())
	}
	return append([]image.Rectangle(nil), f.dirty.Rects()...)
}

func (f *Field) balance() {
	if !f.filled {
		for len(f.drops) < f.target {
			f.spawn()
		}
		f.filled = true
		return
	}
	switch {
	case len(f.drops) < f.target:
		f.spawn()
	case len(f.drops) > f.target:
		f.drops[0] = nil
		f.drops = f.drops[1:]
	}
}

func (f *Field) spawn() {
	f.drops = append(f.drops, newDrop(f.sp, f.pixel, f.size, f.rng))
}
