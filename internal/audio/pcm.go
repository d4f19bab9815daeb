package audio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCMReader turns a streamer into signed 16-bit little-endian stereo bytes,
// the layout audio device players expect.
type PCMReader struct {
	s   beep.Streamer
	buf [][2]float64
}

// NewPCMReader reads from s.
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{s: s}
}

const bytesPerFrame = 4

// Read fills p with whole frames.
func (r *PCMReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, ok := r.s.Stream(buf)
	if n == 0 && !ok {
		if err := r.s.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			v := math.Max(-1, math.Min(1, buf[i][c]))
			binary.LittleEndian.PutUint16(p[bytesPerFrame*i+2*c:], uint16(int16(v*math.MaxInt16)))
		}
	}
	return n * bytesPerFrame, nil
}
