//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonText  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonDim   = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the weather view.
type HUD struct {
	controls *Controls
	width    int
	height   int
	offsetX  int
	title    string
	status   func() string

	panel *ebiten.Image
}

// NewHUD builds a panel of the given width. status, when set, is printed
// below the controls every frame.
func NewHUD(target Tunable, width, height int, status func() string) *HUD {
	return &HUD{
		controls: NewControls(target, width),
		width:    width,
		height:   height,
		title:    "Weather",
		status:   status,
	}
}

// Width returns the panel width.
func (h *HUD) Width() int { return h.width }

// Update refreshes values and handles clicks on the panel.
func (h *HUD) Update(offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.offsetX = offsetX
	h.controls.Refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < offsetX {
		return
	}
	h.controls.Click(mx-offsetX, my)
}

// Draw paints the panel at its offset.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.width <= 0 || h.height <= 0 {
		return
	}
	if h.panel == nil {
		h.panel = ebiten.NewImage(h.width, h.height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, labelColor)
	last := controlsTop
	for i := range h.controls.rows {
		row := &h.controls.rows[i]
		y := row.top + labelBaseline
		text.Draw(h.panel, row.control.Label, face, panelPadding, y, labelColor)
		valueColor := labelColor
		if !row.hasValue {
			valueColor = dimColor
		}
		w := text.BoundString(face, row.value).Dx()
		text.Draw(h.panel, row.value, face, row.minusRect.Min.X-buttonGap-w, y, valueColor)
		h.drawButton(row.minusRect, "-", h.controls.CanAdjust(i, -1))
		h.drawButton(row.plusRect, "+", h.controls.CanAdjust(i, 1))
		last = row.top + lineHeight
	}
	if h.status != nil {
		text.Draw(h.panel, h.status(), face, panelPadding, last+labelBaseline, dimColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(h.offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, buttonText
	if !enabled {
		bg, fg = buttonOff, buttonDim
	}
	vector.DrawFilledRect(h.panel, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)
	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
