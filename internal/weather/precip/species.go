// Package precip simulates falling precipitation: a fixed pool of drops per
// field, each drifting with the wind, recycling off-screen and, for hail,
// bouncing off the ground.
package precip

import (
	"image/color"

	"weatherfx/internal/core"
)

// Species holds the per-kind constants a Field is built from. Motion is shared
// by every species; only these numbers differ.
type Species struct {
	Kind core.EffectKind

	// Width and Height are the sprite size of the largest drop.
	Width, Height int
	// Speed is the initial fall speed of the largest drop in px per tick.
	Speed float64
	// Accel is the per-tick fall acceleration of the largest drop, in hundredths.
	Accel float64
	Color color.NRGBA
	// Flake adds a round (or square, in pixel style) cap to the tail and halves
	// the drop weight.
	Flake bool
	// Drops is the pool size.
	Drops int

	// WindScale multiplies the wind before it reaches the drops.
	WindScale float64
	// WindExponent is k in the (1-weight)^k wind response.
	WindExponent float64
	// Bounce makes drops bounce off the ground a few times before recycling.
	Bounce bool
}

// Hail bounce tuning.
const (
	maxBounces   = 5
	bounceDamp   = 0.1
	bounceKick   = 5
	bounceOffset = 20
)

// Recycling margins.
const (
	leftMargin  = -51
	rightMargin = 15
)

var defaults = map[core.EffectKind]Species{
	core.Rain: {
		Kind: core.Rain, Width: 10, Height: 150, Speed: 15, Accel: 50,
		Color: color.NRGBA{R: 150, G: 200, B: 255, A: 155}, Drops: 30,
		WindScale: 1, WindExponent: 2,
	},
	core.AcidRain: {
		Kind: core.AcidRain, Width: 10, Height: 150, Speed: 15, Accel: 50,
		Color: color.NRGBA{R: 150, G: 255, B: 155, A: 155}, Drops: 30,
		WindScale: 1, WindExponent: 2,
	},
	core.Snow: {
		Kind: core.Snow, Width: 25, Height: 40, Speed: 2, Accel: 1,
		Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, Flake: true, Drops: 40,
		WindScale: 4, WindExponent: 5,
	},
	core.Hail: {
		Kind: core.Hail, Width: 25, Height: 50, Speed: 30, Accel: 20,
		Color: color.NRGBA{R: 220, G: 220, B: 220, A: 220}, Flake: true, Drops: 30,
		WindScale: 1, WindExponent: 2, Bounce: true,
	},
}

// Defaults returns the built-in species for a precipitation kind. ok is false
// for lightning and fog.
func Defaults(kind core.EffectKind) (Species, bool) {
	sp, ok := defaults[kind]
	return sp, ok
}

// IsPrecipitation reports whether kind is handled by this package.
func IsPrecipitation(kind core.EffectKind) bool {
	_, ok := defaults[kind]
	return ok
}
