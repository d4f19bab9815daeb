package precip

import (
	"image"
	"image/color"
	"math"

	"weatherfx/internal/core"
)

// Minimum and maximum drop scale relative to the species size.
const (
	minScale = 0.35
	maxScale = 1.0
)

// paintSprite draws a drop of the given scale: a tail whose alpha falls off
// quadratically from the centre column and grows linearly towards the head,
// plus the flake cap when the species has one.
func paintSprite(sp Species, scale float64, pixel bool) *core.Bitmap {
	w := int(scale * float64(sp.Width))
	h := int(scale * float64(sp.Height))
	bmp := core.NewBitmap(w, h)
	w, h = bmp.W, bmp.H

	half := w / 2
	if half == 0 {
		half = 1
	}
	across := make([]float64, w)
	for i := range across {
		v := 1 - math.Abs(float64(i-half)/float64(half))
		across[i] = v * v
	}
	along := float64(sp.Color.A) * scale / float64(h)

	for j := 0; j < h-w; j++ {
		for i := 0; i < w; i++ {
			a := along * float64(j) * across[i]
			if a <= 0 {
				continue
			}
			bmp.Set(i, j, color.NRGBA{R: sp.Color.R, G: sp.Color.G, B: sp.Color.B, A: uint8(math.Min(a, 255))})
		}
	}

	if sp.Flake {
		head := color.NRGBA{R: sp.Color.R, G: sp.Color.G, B: sp.Color.B, A: 255}
		if pixel {
			bmp.FillRect(image.Rect(w/4, h-w, w/4+w/2, h-w+w/2), head)
		} else {
			bmp.FillCircle(w/2, h-w, w/4, head)
		}
	}
	return bmp
}
