//go:build ebiten

package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"weatherfx/internal/core"
)

type command struct {
	src image.Image
	op  core.BlitOptions
}

type cachedSprite struct {
	img  *ebiten.Image
	used int
}

// Canvas is the GPU Surface. Blits are buffered during Update and replayed
// onto the ebiten screen in Draw, so the last presented frame can be drawn
// any number of times.
type Canvas struct {
	size       core.Size
	background *ebiten.Image

	pending []command
	frame   []command
	dirty   []image.Rectangle
	frames  int

	sprites map[image.Image]*cachedSprite
	scratch []byte
}

// NewCanvas returns a canvas for the given logical size.
func NewCanvas(size core.Size) *Canvas {
	return &Canvas{
		size:    size,
		sprites: make(map[image.Image]*cachedSprite),
	}
}

// Size returns the logical size.
func (c *Canvas) Size() core.Size { return c.size }

// SetBackground uploads the image drawn under every frame.
func (c *Canvas) SetBackground(img image.Image) {
	if img == nil {
		c.background = nil
		return
	}
	c.background = ebiten.NewImageFromImage(img)
}

// Blit queues a draw call for the frame in progress.
func (c *Canvas) Blit(img image.Image, op core.BlitOptions) {
	if op.Alpha <= 0 {
		return
	}
	c.pending = append(c.pending, command{src: img, op: op})
}

// Present makes the queued draw calls the visible frame.
func (c *Canvas) Present(dirty []image.Rectangle) {
	c.frame, c.pending = c.pending, c.frame[:0]
	c.dirty = append(c.dirty[:0], dirty...)
	c.frames++
	for _, cmd := range c.frame {
		c.sprite(cmd.src).used = c.frames
	}
	for k, s := range c.sprites {
		if s.used < c.frames-1 {
			s.img.Deallocate()
			delete(c.sprites, k)
		}
	}
}

// LastDirty returns the regions reported with the visible frame.
func (c *Canvas) LastDirty() []image.Rectangle { return c.dirty }

// Draw renders the visible frame.
func (c *Canvas) Draw(screen *ebiten.Image) {
	if c.background != nil {
		op := &ebiten.DrawImageOptions{}
		bw, bh := c.background.Bounds().Dx(), c.background.Bounds().Dy()
		op.GeoM.Scale(float64(c.size.W)/float64(bw), float64(c.size.H)/float64(bh))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(c.background, op)
	}
	for _, cmd := range c.frame {
		s := c.sprite(cmd.src)
		b := s.img.Bounds()
		cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-cx, -cy)
		op.GeoM.Rotate(-cmd.op.Angle)
		op.GeoM.Translate(cmd.op.X+cx, cmd.op.Y+cy)
		op.ColorScale.ScaleAlpha(float32(cmd.op.Alpha))
		screen.DrawImage(s.img, op)
	}
}

func (c *Canvas) sprite(src image.Image) *cachedSprite {
	if s, ok := c.sprites[src]; ok {
		return s
	}
	n := toNRGBA(src)
	if cap(c.scratch) < len(n.Pix) {
		c.scratch = make([]byte, len(n.Pix))
	}
	buf := c.scratch[:len(n.Pix)]
	premultiplyNRGBA(buf, n.Pix)
	img := ebiten.NewImage(n.Rect.Dx(), n.Rect.Dy())
	img.WritePixels(buf)
	s := &cachedSprite{img: img, used: c.frames}
	c.sprites[src] = s
	return s
}
