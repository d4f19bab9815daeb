package render

import (
	"image"
	"image/color"
	"image/draw"
)

// premultiplyNRGBA converts straight-alpha pixels in src into premultiplied
// RGBA bytes in buf, the layout GPU textures expect.
func premultiplyNRGBA(buf []byte, src []uint8) {
	for i := 0; i+3 < len(src) && i+3 < len(buf); i += 4 {
		a := uint32(src[i+3])
		buf[i+0] = uint8(uint32(src[i+0]) * a / 255)
		buf[i+1] = uint8(uint32(src[i+1]) * a / 255)
		buf[i+2] = uint8(uint32(src[i+2]) * a / 255)
		buf[i+3] = uint8(a)
	}
}

// toNRGBA returns img as an *image.NRGBA anchored at the origin, copying
// only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// averageRGBA returns the mean colour of r in img; an empty rectangle is
// transparent black.
func averageRGBA(img *image.RGBA, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Rect)
	if r.Empty() {
		return color.RGBA{}
	}
	var sr, sg, sb, sa, n uint32
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sr += uint32(img.Pix[i+0])
			sg += uint32(img.Pix[i+1])
			sb += uint32(img.Pix[i+2])
			sa += uint32(img.Pix[i+3])
			i += 4
			n++
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}
