package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/gopxl/beep"

	"weatherfx/internal/core"
)

type fakeMixer struct {
	free    int
	next    core.Channel
	levels  map[core.Channel]float64
	loops   map[core.Channel]bool
	stopped []core.Channel
}

func newFakeMixer(free int) *fakeMixer {
	return &fakeMixer{free: free, levels: map[core.Channel]float64{}, loops: map[core.Channel]bool{}}
}

func (m *fakeMixer) AllocateChannel() (core.Channel, bool) {
	if m.free == 0 {
		return 0, false
	}
	m.free--
	ch := m.next
	m.next++
	return ch, true
}

func (m *fakeMixer) Play(ch core.Channel, _ core.Clip, loop bool) { m.loops[ch] = loop }
func (m *fakeMixer) SetVolume(ch core.Channel, level float64)    { m.levels[ch] = level }
func (m *fakeMixer) Stop(ch core.Channel)                        { m.stopped = append(m.stopped, ch) }

type namedClip string

func (c namedClip) Name() string { return string(c) }

func TestSystemPlayLoopedRecordsInitialVolume(t *testing.T) {
	mixer := newFakeMixer(4)
	sys := NewSystem(mixer, 0.5, nil)
	ch, ok := sys.PlayLooped(namedClip("rain/1"), 0.3)
	if !ok {
		t.Fatal("expected a channel")
	}
	if !mixer.loops[ch] {
		t.Fatal("ambient clip should loop")
	}
	if got := mixer.levels[ch]; math.Abs(got-0.15) > 1e-12 {
		t.Fatalf("channel level %v, want 0.15", got)
	}
	if base, ok := sys.Registry().Get(ch); !ok || base != 0.3 {
		t.Fatalf("registry holds %v/%v, want 0.3", base, ok)
	}
}

func TestSystemSetMasterScalesEveryChannel(t *testing.T) {
	mixer := newFakeMixer(4)
	sys := NewSystem(mixer, 1, nil)
	a, _ := sys.PlayLooped(namedClip("a"), 0.2)
	b, _ := sys.PlayLooped(namedClip("b"), 0.6)

	if err := sys.SetMaster(0.5); err != nil {
		t.Fatalf("SetMaster: %v", err)
	}
	if mixer.levels[a] != 0.1 || mixer.levels[b] != 0.3 {
		t.Fatalf("levels %v, want 0.1 and 0.3", mixer.levels)
	}
	if err := sys.SetMaster(1); err != nil {
		t.Fatalf("SetMaster: %v", err)
	}
	if mixer.levels[a] != 0.2 || mixer.levels[b] != 0.6 {
		t.Fatalf("round trip levels %v, want initial values", mixer.levels)
	}
}

func TestSystemSetMasterRejectsOutOfRange(t *testing.T) {
	mixer := newFakeMixer(1)
	sys := NewSystem(mixer, 0.8, nil)
	ch, _ := sys.PlayLooped(namedClip("a"), 0.5)
	before := mixer.levels[ch]
	for _, v := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		err := sys.SetMaster(v)
		if !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("SetMaster(%v) = %v, want ErrInvalidArgument", v, err)
		}
	}
	if sys.Master() != 0.8 || mixer.levels[ch] != before {
		t.Fatal("rejected volume changed state")
	}
}

func TestSystemWithoutChannels(t *testing.T) {
	sys := NewSystem(nil, 1, nil)
	if _, ok := sys.PlayLooped(namedClip("a"), 1); ok {
		t.Fatal("silent system allocated a channel")
	}
	if sys.PlayOnce(namedClip("b"), 1) {
		t.Fatal("silent system played a clip")
	}
	if sys.Registry().Len() != 0 {
		t.Fatal("registry should stay empty")
	}
}

func TestSystemPlayOnceIsNotTracked(t *testing.T) {
	mixer := newFakeMixer(2)
	sys := NewSystem(mixer, 1, nil)
	if !sys.PlayOnce(namedClip("thunder/1"), 1) {
		t.Fatal("expected playback")
	}
	if mixer.loops[0] {
		t.Fatal("one-shot clip should not loop")
	}
	if sys.Registry().Len() != 0 {
		t.Fatal("one-shot channel should not be tracked")
	}
}

func TestSystemStopAndClose(t *testing.T) {
	mixer := newFakeMixer(3)
	sys := NewSystem(mixer, 1, nil)
	a, _ := sys.PlayLooped(namedClip("a"), 1)
	sys.PlayLooped(namedClip("b"), 1)
	sys.Stop(a)
	if _, ok := sys.Registry().Get(a); ok {
		t.Fatal("stopped channel still tracked")
	}
	sys.Close()
	if sys.Registry().Len() != 0 || len(mixer.stopped) != 2 {
		t.Fatalf("close left %d channels, stopped %v", sys.Registry().Len(), mixer.stopped)
	}
}

func constantClip(n int, v float64) *Clip {
	samples := make([][2]float64, n)
	for i := range samples {
		samples[i] = [2]float64{v, v}
	}
	return FromSamples("const", samples)
}

func TestMixerPlaysAndReleasesOneShot(t *testing.T) {
	m := NewMixer(2, nil)
	ch, ok := m.AllocateChannel()
	if !ok {
		t.Fatal("allocation failed")
	}
	m.SetVolume(ch, 0.5)
	m.Play(ch, constantClip(100, 0.5), false)

	out := make([][2]float64, 60)
	m.Stream(out)
	for i, s := range out {
		if math.Abs(s[0]-0.25) > 1e-3 {
			t.Fatalf("sample %d = %v, want 0.25", i, s[0])
		}
	}
	m.Stream(out)
	if math.Abs(out[39][0]-0.25) > 1e-3 || out[40][0] != 0 {
		t.Fatalf("clip tail wrong: %v %v", out[39], out[40])
	}
	if _, ok := m.Level(ch); ok {
		t.Fatal("finished channel should be released")
	}
}

func TestMixerLoopKeepsPlaying(t *testing.T) {
	m := NewMixer(1, nil)
	ch, _ := m.AllocateChannel()
	m.Play(ch, constantClip(30, 0.5), true)
	out := make([][2]float64, 250)
	m.Stream(out)
	for i, s := range out {
		if math.Abs(s[1]-0.5) > 1e-3 {
			t.Fatalf("looped sample %d = %v", i, s[1])
		}
	}
	if !m.Playing(ch) {
		t.Fatal("looping channel stopped")
	}
	m.SetVolume(ch, 0)
	m.Stream(out)
	if out[0][0] != 0 {
		t.Fatal("zero level should be silent")
	}
}

func TestMixerAllocationExhaustion(t *testing.T) {
	m := NewMixer(2, nil)
	m.AllocateChannel()
	m.AllocateChannel()
	if _, ok := m.AllocateChannel(); ok {
		t.Fatal("third channel allocated from a two-channel mixer")
	}
	m.Stop(0)
	if ch, ok := m.AllocateChannel(); !ok || ch != 0 {
		t.Fatalf("freed channel not reused: %v %v", ch, ok)
	}
}

func TestPCMReaderEncodesLittleEndian(t *testing.T) {
	left := 4
	s := beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}
		n := min(left, len(out))
		for i := 0; i < n; i++ {
			out[i] = [2]float64{0.5, -2}
		}
		left -= n
		return n, true
	})
	r := NewPCMReader(s)
	p := make([]byte, 64)
	n, err := r.Read(p)
	if err != nil || n != 16 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if got := int16(binary.LittleEndian.Uint16(p[0:])); got != 16383 {
		t.Fatalf("left sample %d, want 16383", got)
	}
	if got := int16(binary.LittleEndian.Uint16(p[2:])); got != -math.MaxInt16 {
		t.Fatalf("right sample %d, want clipped", got)
	}
	if _, err := r.Read(p); err != io.EOF {
		t.Fatalf("exhausted reader returned %v", err)
	}
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	_, err := Decode("rain/1", "rain1.ogg", strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedClip) {
		t.Fatalf("err = %v", err)
	}
}

func TestSynthClipsStayInRange(t *testing.T) {
	clips := []*Clip{
		SynthRain("rain", 1),
		SynthHail("hail", 2),
		SynthWind("wind", 3),
		SynthThunder("thunder", 4),
	}
	buf := make([][2]float64, 4096)
	for _, c := range clips {
		if c.Len() == 0 {
			t.Fatalf("%s is empty", c.Name())
		}
		s := c.Streamer()
		for {
			n, ok := s.Stream(buf)
			for i := 0; i < n; i++ {
				if math.Abs(buf[i][0]) > 1 {
					t.Fatalf("%s sample out of range: %v", c.Name(), buf[i][0])
				}
			}
			if !ok {
				break
			}
		}
	}
}
