package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"weatherfx/internal/core"
)

const halfBlock = '▀'

// Terminal is a Surface that renders into a tcell screen using half-block
// cells, two backing pixels per cell. Only cells inside the dirty regions are
// rewritten on Present.
type Terminal struct {
	*Raster
	screen tcell.Screen
	cells  int
}

// NewTerminal fits a logical surface into the screen's current size.
func NewTerminal(screen tcell.Screen, logical core.Size) *Terminal {
	cols, rows := screen.Size()
	scale := math.Min(float64(cols)/float64(logical.W), float64(2*rows)/float64(logical.H))
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Terminal{
		Raster: NewRaster(logical, scale, true),
		screen: screen,
	}
}

// Present flushes the frame to the backing image and rewrites the cells
// covering the dirty regions.
func (t *Terminal) Present(dirty []image.Rectangle) {
	t.Raster.Present(dirty)
	cols, rows := t.screen.Size()
	t.cells = 0
	shown := t.Shown()
	for _, r := range t.LastDirty() {
		y0 := r.Min.Y / 2
		y1 := (r.Max.Y + 1) / 2
		for cy := y0; cy < y1 && cy < rows; cy++ {
			for cx := r.Min.X; cx < r.Max.X && cx < cols; cx++ {
				top := shown.RGBAAt(cx, 2*cy)
				bottom := shown.RGBAAt(cx, 2*cy+1)
				style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
				t.screen.SetContent(cx, cy, halfBlock, nil, style)
				t.cells++
			}
		}
	}
	t.screen.Show()
}

// Redraw rewrites every cell, used after a resize or a full sync.
func (t *Terminal) Redraw() {
	b := t.Bounds()
	t.Raster.dirty = append(t.Raster.dirty[:0], b)
	cols, rows := t.screen.Size()
	shown := t.Shown()
	for cy := 0; cy < rows && 2*cy < b.Max.Y; cy++ {
		for cx := 0; cx < cols && cx < b.Max.X; cx++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(shown.RGBAAt(cx, 2*cy))).
				Background(cellColor(shown.RGBAAt(cx, 2*cy+1)))
			t.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	t.screen.Sync()
}

// CellsWritten reports how many cells the last Present touched.
func (t *Terminal) CellsWritten() int { return t.cells }

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
