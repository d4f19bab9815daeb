package core

import (
	"errors"
	"image"
	"strings"
)

// ErrInvalidArgument marks a rejected configuration value.
var ErrInvalidArgument = errors.New("invalid argument")

// Size describes the dimensions of the drawing surface.
type Size struct {
	W int
	H int
}

// Rect returns the full-surface rectangle.
func (s Size) Rect() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

// EffectKind enumerates the weather effects the engine can run.
type EffectKind uint8

const (
	Lightning EffectKind = iota
	Fog
	Snow
	Rain
	AcidRain
	Hail
)

// Order lists every effect kind back-to-front; effects update and composite in
// this order.
var Order = []EffectKind{Lightning, Fog, Snow, Rain, AcidRain, Hail}

var kindNames = [...]string{
	Lightning: "lightning",
	Fog:       "fog",
	Snow:      "snow",
	Rain:      "rain",
	AcidRain:  "acid rain",
	Hail:      "hail",
}

// String returns the display name of the kind.
func (k EffectKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseEffectKind maps a free-form effect name onto its kind. Spaces, dashes
// and underscores are interchangeable.
func ParseEffectKind(name string) (EffectKind, bool) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for i, n := range kindNames {
		if n == norm {
			return EffectKind(i), true
		}
	}
	return 0, false
}

// Effect is one active weather layer. Update advances it by one tick using the
// current wind speed, draws it onto the surface it was built with, and returns
// the regions it changed.
type Effect interface {
	Kind() EffectKind
	Update(wind float64) []image.Rectangle
}
