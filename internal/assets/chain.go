package assets

import (
	"image"

	"go.uber.org/zap"

	"weatherfx/internal/core"
)

// Fallback tries each provider in turn and logs every miss but the last.
type Fallback struct {
	providers []core.AssetProvider
	log       *zap.SugaredLogger
}

// NewFallback chains providers in priority order.
func NewFallback(log *zap.SugaredLogger, providers ...core.AssetProvider) *Fallback {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fallback{providers: providers, log: log}
}

// LoadImage returns the first image any provider can load.
func (f *Fallback) LoadImage(name string) (image.Image, error) {
	err := error(ErrNotFound)
	for i, p := range f.providers {
		var img image.Image
		img, err = p.LoadImage(name)
		if err == nil {
			return img, nil
		}
		if i < len(f.providers)-1 {
			f.log.Warnw("image unavailable, falling back", "name", name, "err", err)
		}
	}
	return nil, err
}

// LoadClip returns the first clip any provider can load.
func (f *Fallback) LoadClip(name string) (core.Clip, error) {
	err := error(ErrNotFound)
	for i, p := range f.providers {
		var clip core.Clip
		clip, err = p.LoadClip(name)
		if err == nil {
			return clip, nil
		}
		if i < len(f.providers)-1 {
			f.log.Warnw("clip unavailable, falling back", "name", name, "err", err)
		}
	}
	return nil, err
}
