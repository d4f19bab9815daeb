package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"weatherfx/internal/core"
)

// Raster is a software Surface. Effects draw in logical coordinates; the
// raster scales everything down to its backing resolution. Each Present
// copies the dirty regions of the frame to the shown image and starts the
// next frame from the background.
type Raster struct {
	logical core.Size
	scale   float64

	background *image.RGBA
	frame      *image.RGBA
	shown      *image.RGBA

	interp  xdraw.Interpolator
	dirty   []image.Rectangle
	presets int
}

// NewRaster returns a raster for a logical surface drawn at the given scale
// (backing pixels per logical pixel).
func NewRaster(logical core.Size, scale float64, pixel bool) *Raster {
	if !(scale > 0) {
		scale = 1
	}
	w := max(1, int(math.Ceil(float64(logical.W)*scale)))
	h := max(1, int(math.Ceil(float64(logical.H)*scale)))
	bounds := image.Rect(0, 0, w, h)
	r := &Raster{
		logical:    logical,
		scale:      scale,
		background: image.NewRGBA(bounds),
		frame:      image.NewRGBA(bounds),
		shown:      image.NewRGBA(bounds),
		interp:     xdraw.ApproxBiLinear,
	}
	if pixel {
		r.interp = xdraw.NearestNeighbor
	}
	r.SetBackground(nil)
	return r
}

// Size returns the logical size effects draw in.
func (r *Raster) Size() core.Size { return r.logical }

// Scale returns backing pixels per logical pixel.
func (r *Raster) Scale() float64 { return r.scale }

// Bounds returns the backing rectangle.
func (r *Raster) Bounds() image.Rectangle { return r.frame.Rect }

// SetBackground stretches img over the backing image; nil is opaque black.
func (r *Raster) SetBackground(img image.Image) {
	if img == nil {
		draw.Draw(r.background, r.background.Rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
	} else {
		src := toNRGBA(img)
		xdraw.ApproxBiLinear.Scale(r.background, r.background.Rect, src, src.Rect, xdraw.Src, nil)
	}
	copy(r.frame.Pix, r.background.Pix)
	copy(r.shown.Pix, r.background.Pix)
}

// Blit draws img with its top-left corner at (op.X, op.Y), rotated
// counterclockwise by op.Angle around its centre.
func (r *Raster) Blit(img image.Image, op core.BlitOptions) {
	if op.Alpha <= 0 {
		return
	}
	b := img.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	sin, cos := math.Sincos(op.Angle)
	k := r.scale
	// src → dst: shift to the sprite centre, rotate, move into place, scale.
	m := f64.Aff3{
		k * cos, k * sin, k * (op.X + cx - cos*cx - sin*cy - cos*float64(b.Min.X) - sin*float64(b.Min.Y)),
		-k * sin, k * cos, k * (op.Y + cy + sin*cx - cos*cy + sin*float64(b.Min.X) - cos*float64(b.Min.Y)),
	}
	var opts *xdraw.Options
	if op.Alpha < 1 {
		mask := image.NewUniform(color.Alpha{A: uint8(math.Round(op.Alpha * 255))})
		opts = &xdraw.Options{SrcMask: mask}
	}
	r.interp.Transform(r.frame, m, img, b, xdraw.Over, opts)
}

// Present publishes the dirty regions of the frame and resets the frame.
func (r *Raster) Present(dirty []image.Rectangle) {
	r.dirty = r.dirty[:0]
	for _, d := range dirty {
		br := r.toBacking(d)
		if br.Empty() {
			continue
		}
		draw.Draw(r.shown, br, r.frame, br.Min, draw.Src)
		r.dirty = append(r.dirty, br)
	}
	copy(r.frame.Pix, r.background.Pix)
	r.presets++
}

func (r *Raster) toBacking(d image.Rectangle) image.Rectangle {
	k := r.scale
	return image.Rect(
		int(math.Floor(float64(d.Min.X)*k)), int(math.Floor(float64(d.Min.Y)*k)),
		int(math.Ceil(float64(d.Max.X)*k)), int(math.Ceil(float64(d.Max.Y)*k)),
	).Intersect(r.frame.Rect)
}

// Shown returns the image as of the last Present.
func (r *Raster) Shown() *image.RGBA { return r.shown }

// LastDirty returns the backing regions updated by the last Present.
func (r *Raster) LastDirty() []image.Rectangle { return r.dirty }

// Frames counts presents.
func (r *Raster) Frames() int { return r.presets }
