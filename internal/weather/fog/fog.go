// Package fog drifts two tiled bands of noise across the surface, pushed by a
// smoothed copy of the wind.
package fog

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"weatherfx/internal/core"
	rng "weatherfx/pkg/core"
)

// Params configures a band.
type Params struct {
	Density float64
	Color   color.NRGBA
	// Inertia slows the band's response to wind changes.
	Inertia float64
}

// DefaultParams returns the stock purple haze.
func DefaultParams() Params {
	return Params{Density: 0.7, Color: color.NRGBA{R: 20, G: 0, B: 20, A: 255}, Inertia: 10}
}

const (
	bandScale = 1.5
	// minInertia replaces non-positive inertia so the smoothing never divides
	// by zero.
	minInertia = 0.1
	yPeriod    = 10000.0
	reseedBand = 0.01
)

// Band is the fog effect. The two copies of the texture sit exactly 1.5
// surface widths apart. The texture is that span rounded up to whole pixels,
// so on odd widths the copies overlap by half a pixel.
type Band struct {
	surface core.Surface
	size    core.Size
	clock   core.Clock
	rng     *rng.RNG
	pixel   bool
	noise   image.Image

	span          float64
	width, height int
	texture       *image.NRGBA

	params  Params
	speed   float64
	offset1 float64
	offset2 float64
	amp     float64
	y       float64
}

// New builds a band from a noise texture. A nil noise image yields an even
// grey haze.
func New(surface core.Surface, clock core.Clock, r *rng.RNG, noise image.Image, pixel bool, p Params) *Band {
	size := surface.Size()
	if noise == nil {
		noise = image.NewUniform(color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	}
	b := &Band{
		surface: surface,
		size:    size,
		clock:   clock,
		rng:     r,
		pixel:   pixel,
		noise:   noise,
		span:    bandScale * float64(size.W),
		width:   int(math.Ceil(bandScale * float64(size.W))),
		height:  2 * size.H,
		params:  sanitize(p),
	}
	b.offset1 = -b.span
	b.offset2 = b.partner(b.offset1)
	b.amp = r.Uniform(0, float64(size.H)/4)
	b.y = -float64(size.H) / 4
	b.rebuild()
	return b
}

func sanitize(p Params) Params {
	if math.IsNaN(p.Density) {
		p.Density = 0
	}
	p.Density = math.Max(0, math.Min(1, p.Density))
	if !(p.Inertia > 0) {
		p.Inertia = minInertia
	}
	return p
}

// Kind implements core.Effect.
func (b *Band) Kind() core.EffectKind { return core.Fog }

// Params returns the current configuration.
func (b *Band) Params() Params { return b.params }

// Offsets returns the x positions of the two band copies.
func (b *Band) Offsets() (float64, float64) { return b.offset1, b.offset2 }

// Y returns the vertical position of both copies.
func (b *Band) Y() float64 { return b.y }

// Speed returns the smoothed wind speed driving the band.
func (b *Band) Speed() float64 { return b.speed }

// Width returns the texture width in pixels.
func (b *Band) Width() int { return b.width }

// Span returns the distance between the two copies.
func (b *Band) Span() float64 { return b.span }

// Texture returns the tinted band image.
func (b *Band) Texture() *image.NRGBA { return b.texture }

// SetDensity changes density and colour and repaints the texture. Density is
// clamped to [0, 1].
func (b *Band) SetDensity(d float64, c color.NRGBA) {
	b.params.Density = d
	b.params.Color = c
	b.params = sanitize(b.params)
	b.rebuild()
}

// SetInertia changes how slowly the band follows the wind.
func (b *Band) SetInertia(v float64) {
	b.params.Inertia = v
	b.params = sanitize(b.params)
}

// Update drifts the band and draws both copies. Fog covers the whole surface,
// so the full rectangle is always reported.
func (b *Band) Update(wind float64) []image.Rectangle {
	b.speed += (wind - b.speed) / (10 * b.params.Inertia)
	b.offset1 += b.speed

	w := b.span
	if b.offset1 > w {
		b.offset1 = -w
	} else if b.offset1 < -w {
		b.offset1 = w
	}
	b.offset2 = b.partner(b.offset1)

	ms := float64(b.clock.Now()) / 1e6
	s := math.Sin(ms / yPeriod)
	if math.Abs(s) < reseedBand {
		b.amp = b.rng.Uniform(0, float64(b.size.H)/4)
	}
	b.y = -float64(b.size.H)/4 + b.amp*s

	b.surface.Blit(b.texture, core.BlitOptions{X: b.offset1, Y: b.y, Alpha: 1})
	b.surface.Blit(b.texture, core.BlitOptions{X: b.offset2, Y: b.y, Alpha: 1})
	return []image.Rectangle{b.size.Rect()}
}

func (b *Band) partner(o float64) float64 {
	if o <= 0 {
		return o + b.span
	}
	return o - b.span
}

func (b *Band) rebuild() {
	dst := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	var scaler xdraw.Scaler = xdraw.ApproxBiLinear
	if b.pixel {
		scaler = xdraw.NearestNeighbor
	}
	src := b.noise
	if _, ok := src.(*image.Uniform); ok {
		src = uniformTile(src)
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	tint(dst, b.params.Density, b.params.Color)
	b.texture = dst
}

func uniformTile(u image.Image) image.Image {
	tile := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	tile.Set(0, 0, u.At(0, 0))
	return tile
}

// tint pulls every pixel towards c by 100·density/255 and scales its alpha by
// density.
func tint(img *image.NRGBA, density float64, c color.NRGBA) {
	target, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	k := 100 * density / 255
	for i := 0; i+3 < len(img.Pix); i += 4 {
		src := colorful.Color{
			R: float64(img.Pix[i]) / 255,
			G: float64(img.Pix[i+1]) / 255,
			B: float64(img.Pix[i+2]) / 255,
		}
		r, g, bl := src.BlendRgb(target, k).Clamped().RGB255()
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = bl
		img.Pix[i+3] = uint8(math.Round(float64(img.Pix[i+3]) * density))
	}
}
