package precip

import (
	"image"
	"math"

	"weatherfx/internal/core"
	rng "weatherfx/pkg/core"
)

// Drop is one precipitation particle. It belongs to exactly one Field and is
// recycled in place when it leaves the screen.
type Drop struct {
	X, Y   float64
	VX, VY float64

	// Weight in (0, 1) resists the wind; heavier drops drift less.
	Weight float64
	Accel  float64
	// Speed is the base fall speed; VY is reseeded from it on every respawn.
	Speed float64
	Tilt  float64

	Bounces int

	sprite *image.NRGBA
	w, h   int
}

func newDrop(sp Species, pixel bool, size core.Size, r *rng.RNG) *Drop {
	scale := r.Uniform(minScale, maxScale)
	bmp := paintSprite(sp, scale, pixel)
	d := &Drop{
		Weight: 0.9 * scale,
		Accel:  scale * sp.Accel / 100,
		Speed:  scale * sp.Speed,
		sprite: bmp.Image(),
		w:      bmp.W,
		h:      bmp.H,
	}
	if sp.Flake {
		d.Weight /= 2
	}
	d.X = r.Float64() * float64(size.W)
	d.Y = -float64(r.IntRange(-size.H, size.H))
	d.VY = d.reseedFall(r)
	return d
}

// Sprite returns the drop's procedurally painted image.
func (d *Drop) Sprite() *image.NRGBA { return d.sprite }

// SpriteSize returns the sprite width and height in pixels.
func (d *Drop) SpriteSize() (int, int) { return d.w, d.h }

// Bounds is the axis-aligned box covering the tilted sprite.
func (d *Drop) Bounds() image.Rectangle {
	w, h := float64(d.w), float64(d.h)
	c, s := math.Abs(math.Cos(d.Tilt)), math.Abs(math.Sin(d.Tilt))
	hw := (w*c + h*s) / 2
	hh := (w*s + h*c) / 2
	cx, cy := d.X+w/2, d.Y+h/2
	return image.Rect(
		int(math.Floor(cx-hw)), int(math.Floor(cy-hh)),
		int(math.Ceil(cx+hw)), int(math.Ceil(cy+hh)),
	)
}

func (d *Drop) reseedFall(r *rng.RNG) float64 {
	return d.Speed * r.Uniform(1, 1.5)
}

func (d *Drop) respawnTop(wind float64, size core.Size, r *rng.RNG) {
	d.VY = d.reseedFall(r)
	d.VX = d.VX/2 + wind/4
	d.X = r.Float64() * float64(size.W)
	d.Y = -float64(d.h)
}

func (d *Drop) respawnSide(left bool, size core.Size, r *rng.RNG) {
	d.VY = d.reseedFall(r)
	if left {
		d.X = -float64(d.w)
	} else {
		d.X = float64(size.W)
	}
	d.Y = r.Float64() * float64(size.H)
}

// step advances the drop one tick. wind is already scaled for the species.
func (d *Drop) step(sp Species, wind float64, size core.Size, r *rng.RNG) {
	d.Tilt = 0
	if wind != 0 {
		dx := (wind - d.VX) * math.Pow(1-d.Weight, sp.WindExponent)
		d.VX += dx / 1000
		// Damp large velocities so strong wind cannot make drops oscillate.
		if d.VX > 1 {
			d.VX -= math.Sqrt(d.VX) / 100
		} else if d.VX < -1 {
			d.VX += math.Sqrt(-d.VX) / 100
		}
		d.X += d.VX
		d.Tilt = math.Atan2(d.VX, d.VY)
	}

	if d.X < leftMargin {
		d.respawnSide(false, size, r)
	}
	if d.X > float64(size.W+rightMargin) {
		d.respawnSide(true, size, r)
	}

	d.Y += d.VY
	d.VY += d.Accel

	if d.Y > float64(size.H) {
		d.respawnTop(wind, size, r)
	}

	if !sp.Bounce {
		return
	}
	if d.Y >= float64(size.H)-bounceOffset*(1-d.Weight) {
		kick := float64(r.IntRange(-bounceKick, bounceKick))
		if d.Bounces < maxBounces {
			d.VY = -d.VY * bounceDamp
			d.VX += kick
			d.Bounces++
			return
		}
		d.respawnTop(wind, size, r)
		d.VX += kick
		d.Bounces = 0
	}
}
