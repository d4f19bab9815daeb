// Package assets resolves the logical image and sound names used by the
// weather engine to files on disk, with a procedural fallback for anything
// that is missing.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"strings"

	_ "golang.org/x/image/webp"

	"weatherfx/internal/audio"
	"weatherfx/internal/core"
)

// ErrNotFound is returned for names the provider cannot resolve.
var ErrNotFound = errors.New("asset not found")

// Logical names of the images the engine and the GUI ask for.
const (
	FogRegular        = "fog/regular"
	FogPixel          = "fog/pixel"
	BackgroundRegular = "background/regular"
	BackgroundPixel   = "background/pixel"
)

var imageFiles = map[string]string{
	FogRegular:        "NoiseReg.png",
	FogPixel:          "NoisePix.png",
	BackgroundRegular: "img.webp",
	BackgroundPixel:   "imgpix.webp",
}

// Sound folders on disk do not all match the clip family name.
var clipDirs = map[string]string{
	"thunder": "thunders",
}

var clipExts = []string{".mp3", ".wav"}

// Dir loads assets from a directory tree laid out as
//
//	NoiseReg.png NoisePix.png img.webp imgpix.webp
//	rain/1.mp3 hail/1.mp3 wind/1.mp3 thunders/1.mp3 ...
type Dir struct {
	fsys fs.FS
}

// NewDir reads assets from fsys.
func NewDir(fsys fs.FS) *Dir { return &Dir{fsys: fsys} }

// LoadImage decodes a png, jpeg or webp image.
func (d *Dir) LoadImage(name string) (image.Image, error) {
	file, ok := imageFiles[name]
	if !ok {
		return nil, fmt.Errorf("image %q: %w", name, ErrNotFound)
	}
	f, err := d.fsys.Open(file)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", name, err)
	}
	return img, nil
}

// LoadClip decodes "family/N" from family/N.mp3 or family/N.wav.
func (d *Dir) LoadClip(name string) (core.Clip, error) {
	family, index, ok := strings.Cut(name, "/")
	if !ok || index == "" {
		return nil, fmt.Errorf("clip %q: %w", name, ErrNotFound)
	}
	if dir, ok := clipDirs[family]; ok {
		family = dir
	}
	for _, ext := range clipExts {
		file := family + "/" + index + ext
		f, err := d.fsys.Open(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("clip %q: %w", name, err)
		}
		clip, err := audio.Decode(name, file, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		return clip, nil
	}
	return nil, fmt.Errorf("clip %q: %w", name, ErrNotFound)
}
