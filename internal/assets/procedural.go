package assets

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/aquilax/go-perlin"

	"weatherfx/internal/audio"
	"weatherfx/internal/core"
)

// Procedural paints and synthesises every asset the engine knows about.
// Output depends only on the seed and the name.
type Procedural struct {
	seed int64
}

// NewProcedural returns a generator seeded with seed.
func NewProcedural(seed int64) *Procedural { return &Procedural{seed: seed} }

// LoadImage renders fog textures from perlin noise and backgrounds as a night
// sky gradient.
func (p *Procedural) LoadImage(name string) (image.Image, error) {
	switch name {
	case FogRegular:
		return fogTexture(p.seedFor(name), 256, 0.02), nil
	case FogPixel:
		return fogTexture(p.seedFor(name), 64, 0.08), nil
	case BackgroundRegular, BackgroundPixel:
		return skyGradient(320, 180), nil
	}
	return nil, fmt.Errorf("image %q: %w", name, ErrNotFound)
}

// LoadClip synthesises rain, hail, wind and thunder clips.
func (p *Procedural) LoadClip(name string) (core.Clip, error) {
	family, index, _ := strings.Cut(name, "/")
	if _, err := strconv.Atoi(index); err != nil {
		return nil, fmt.Errorf("clip %q: %w", name, ErrNotFound)
	}
	seed := p.seedFor(name)
	switch family {
	case "rain":
		return audio.SynthRain(name, seed), nil
	case "hail":
		return audio.SynthHail(name, seed), nil
	case "wind":
		return audio.SynthWind(name, seed), nil
	case "thunder":
		return audio.SynthThunder(name, seed), nil
	}
	return nil, fmt.Errorf("clip %q: %w", name, ErrNotFound)
}

func (p *Procedural) seedFor(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.seed ^ int64(h.Sum64())
}

// fogTexture is tileable-looking cloud noise in white with the noise value as
// alpha.
func fogTexture(seed int64, size int, scale float64) *image.NRGBA {
	gen := perlin.NewPerlin(2, 2, 3, seed)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := gen.Noise2D(float64(x)*scale, float64(y)*scale)
			a := (v + 1) / 2
			a = max(0, min(1, a))
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a * 255)})
		}
	}
	return img
}

func skyGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		c := color.NRGBA{
			R: uint8(10 + 30*t),
			G: uint8(12 + 28*t),
			B: uint8(30 + 40*t),
			A: 255,
		}
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
