package core

import (
	"image"
	"image/color"
)

// Bitmap stores non-premultiplied RGBA pixels in row-major order. Sprites are
// painted into a Bitmap and then handed to a Surface as an image.Image.
type Bitmap struct {
	W, H int
	data []uint8
}

// NewBitmap allocates a transparent bitmap with the given dimensions.
func NewBitmap(w, h int) *Bitmap {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Bitmap{W: w, H: h, data: make([]uint8, 4*w*h)}
}

// Pix exposes the backing slice so callers can read/write values directly.
func (b *Bitmap) Pix() []uint8 { return b.data }

// Index returns the slice offset of the pixel at (x, y).
func (b *Bitmap) Index(x, y int) int { return 4 * (y*b.W + x) }

// In reports whether (x, y) lies inside the bitmap.
func (b *Bitmap) In(x, y int) bool { return x >= 0 && y >= 0 && x < b.W && y < b.H }

// Set writes c at (x, y), ignoring out-of-range coordinates.
func (b *Bitmap) Set(x, y int, c color.NRGBA) {
	if !b.In(x, y) {
		return
	}
	i := b.Index(x, y)
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = c.A
}

// At returns the pixel at (x, y); out-of-range reads are transparent.
func (b *Bitmap) At(x, y int) color.NRGBA {
	if !b.In(x, y) {
		return color.NRGBA{}
	}
	i := b.Index(x, y)
	return color.NRGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

// FillRect paints the rectangle with c, clipped to the bitmap.
func (b *Bitmap) FillRect(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(image.Rect(0, 0, b.W, b.H))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Set(x, y, c)
		}
	}
}

// FillCircle paints a filled disc centred on (cx, cy).
func (b *Bitmap) FillCircle(cx, cy, radius int, c color.NRGBA) {
	if radius <= 0 {
		b.Set(cx, cy, c)
		return
	}
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				b.Set(cx+x, cy+y, c)
			}
		}
	}
}

// Clear makes every pixel transparent.
func (b *Bitmap) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Image wraps the pixels as an *image.NRGBA sharing the same storage.
func (b *Bitmap) Image() *image.NRGBA {
	return &image.NRGBA{Pix: b.data, Stride: 4 * b.W, Rect: image.Rect(0, 0, b.W, b.H)}
}
