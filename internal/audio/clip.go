package audio

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the rate every clip is stored and mixed at.
const SampleRate = beep.SampleRate(44100)

// Format describes buffered clips: stereo, 16-bit.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// ErrUnsupportedClip is returned by Decode for unknown file extensions.
var ErrUnsupportedClip = errors.New("unsupported clip format")

// Clip is a fully decoded sound held in memory so it can be replayed and
// looped without touching the source again.
type Clip struct {
	name string
	buf  *beep.Buffer
}

// NewClip drains s into memory, resampling from rate to SampleRate.
func NewClip(name string, s beep.Streamer, rate beep.SampleRate) *Clip {
	if rate != SampleRate {
		s = beep.Resample(4, rate, SampleRate, s)
	}
	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return &Clip{name: name, buf: buf}
}

// Name returns the logical asset name.
func (c *Clip) Name() string { return c.name }

// Len returns the clip length in samples.
func (c *Clip) Len() int { return c.buf.Len() }

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration { return SampleRate.D(c.buf.Len()) }

// Streamer returns a fresh seekable reader over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker { return c.buf.Streamer(0, c.buf.Len()) }

// Decode reads a wav or mp3 file. The format is picked from the extension of
// file.
func Decode(name, file string, r io.Reader) (*Clip, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch strings.ToLower(path.Ext(file)) {
	case ".wav":
		s, format, err = wav.Decode(r)
	case ".mp3":
		rc, ok := r.(io.ReadCloser)
		if !ok {
			rc = io.NopCloser(r)
		}
		s, format, err = mp3.Decode(rc)
	default:
		return nil, fmt.Errorf("decode %s: %w", file, ErrUnsupportedClip)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	defer s.Close()

	clip := NewClip(name, s, format.SampleRate)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	return clip, nil
}

// FromSamples wraps already generated stereo samples as a clip.
func FromSamples(name string, samples [][2]float64) *Clip {
	pos := 0
	s := beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy(out, samples[pos:])
		pos += n
		return n, true
	})
	return NewClip(name, s, SampleRate)
}
