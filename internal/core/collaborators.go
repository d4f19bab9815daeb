package core

import (
	"image"
	"time"
)

// BlitOptions positions a sprite on the surface. X and Y are the top-left
// corner of the unrotated sprite; Angle rotates counterclockwise around the
// sprite centre in radians; Alpha scales opacity in [0, 1].
type BlitOptions struct {
	X, Y  float64
	Angle float64
	Alpha float64
}

// Surface is the drawing target the engine composites onto.
type Surface interface {
	Size() Size
	Blit(img image.Image, op BlitOptions)
	// Present flushes the frame, updating only the reported regions.
	Present(dirty []image.Rectangle)
}

// Channel identifies a mixer channel.
type Channel int

// Clip is a decoded sound ready to be played on a channel.
type Clip interface {
	Name() string
}

// SoundMixer allocates channels and plays clips on them. Allocation never
// blocks; ok is false when every channel is busy.
type SoundMixer interface {
	AllocateChannel() (ch Channel, ok bool)
	Play(ch Channel, clip Clip, loop bool)
	SetVolume(ch Channel, level float64)
	Stop(ch Channel)
}

// AssetProvider loads pre-supplied images and sound clips by logical name.
type AssetProvider interface {
	LoadImage(name string) (image.Image, error)
	LoadClip(name string) (Clip, error)
}

// Clock reports monotonic time elapsed since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}
