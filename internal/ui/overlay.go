//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DebugSource feeds the overlay.
type DebugSource interface {
	WindSpeed() float64
	PendingAmbient() int
}

// Overlay draws the dirty regions of the last frame and a wind gauge. D
// toggles it.
type Overlay struct {
	src   DebugSource
	show  bool
	dirty []image.Rectangle
}

var (
	dirtyColor = color.RGBA{R: 255, G: 64, B: 64, A: 200}
	windColor  = color.RGBA{R: 120, G: 220, B: 255, A: 255}
)

// windFullScale is the wind speed drawn as a full-length arrow.
const windFullScale = 60.0

// NewOverlay returns a hidden overlay.
func NewOverlay(src DebugSource) *Overlay {
	return &Overlay{src: src}
}

// Visible reports whether the overlay is drawn.
func (o *Overlay) Visible() bool { return o.show }

// Update handles the toggle key and records the regions of the frame.
func (o *Overlay) Update(dirty []image.Rectangle) {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.show = !o.show
	}
	o.dirty = append(o.dirty[:0], dirty...)
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	for _, r := range o.dirty {
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, dirtyColor, false)
	}

	const cx, cy, length = 60.0, 60.0, 40.0
	w := o.src.WindSpeed()
	t := math.Max(-1, math.Min(1, w/windFullScale))
	tip := cx + t*length
	vector.StrokeLine(screen, cx, cy, float32(tip), cy, 2, windColor, true)
	if t != 0 {
		dir := math.Copysign(1, t)
		head := 6.0
		vector.StrokeLine(screen, float32(tip), cy, float32(tip-dir*head), float32(cy-head/2), 2, windColor, true)
		vector.StrokeLine(screen, float32(tip), cy, float32(tip-dir*head), float32(cy+head/2), 2, windColor, true)
	} else {
		vector.DrawFilledCircle(screen, cx, cy, 3, windColor, true)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("wind %.1f  regions %d  queued %d  tps %.0f",
		w, len(o.dirty), o.src.PendingAmbient(), ebiten.ActualTPS()), 10, 80)
}
