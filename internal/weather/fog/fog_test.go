package fog

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"weatherfx/internal/core"
	"weatherfx/internal/render"
	rng "weatherfx/pkg/core"
)

func newTestBand(p Params) (*Band, *render.Recorder, *core.ManualClock) {
	return newSizedBand(40, 30, p)
}

func newSizedBand(w, h int, p Params) (*Band, *render.Recorder, *core.ManualClock) {
	surface := render.NewRecorder(w, h)
	clock := &core.ManualClock{}
	noise := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range noise.Pix {
		noise.Pix[i] = uint8(i * 4)
	}
	return New(surface, clock, rng.NewRNG(1), noise, false, p), surface, clock
}

func TestBandCopiesStayOneWidthApart(t *testing.T) {
	b, _, clock := newTestBand(Params{Density: 0.5, Inertia: 1})
	w := b.Span()
	if w != 60 || b.Width() != 60 {
		t.Fatalf("band span %v width %d, want 1.5×40", w, b.Width())
	}
	wrapped := 0
	for tick := 0; tick < 2000; tick++ {
		clock.Advance(16 * time.Millisecond)
		wind := 25.0
		if tick > 1000 {
			wind = -25
		}
		before, _ := b.Offsets()
		b.Update(wind)
		o1, o2 := b.Offsets()
		if math.Abs(math.Abs(o2-o1)-w) > 1e-9 {
			t.Fatalf("tick %d: offsets %v and %v not %v apart", tick, o1, o2, w)
		}
		if o1 < -w || o1 > w {
			t.Fatalf("tick %d: offset %v outside ±%v", tick, o1, w)
		}
		if math.Abs(o1-before) > w {
			wrapped++
		}
	}
	if wrapped == 0 {
		t.Fatal("band never wrapped")
	}
}

func TestSpeedFollowsWindWithInertia(t *testing.T) {
	b, _, _ := newTestBand(Params{Density: 1, Inertia: 10})
	b.Update(10)
	if got := b.Speed(); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("speed %v, want 0.1", got)
	}

	snappy, _, _ := newTestBand(Params{Density: 1, Inertia: 0})
	snappy.Update(10)
	if got := snappy.Speed(); math.Abs(got-10) > 1e-12 {
		t.Fatalf("zero inertia speed %v, want the wind itself", got)
	}
}

func TestCalmBandStaysPut(t *testing.T) {
	b, surface, _ := newTestBand(DefaultParams())
	o1, o2 := b.Offsets()
	rects := b.Update(0)
	if n1, n2 := b.Offsets(); n1 != o1 || n2 != o2 {
		t.Fatal("band moved without wind")
	}
	if len(rects) != 1 || rects[0] != surface.Size().Rect() {
		t.Fatalf("reported %v", rects)
	}
	if len(surface.Pending()) != 2 {
		t.Fatalf("%d blits, want both copies", len(surface.Pending()))
	}
}

func TestVerticalPhaseStaysInBand(t *testing.T) {
	b, _, clock := newTestBand(DefaultParams())
	for tick := 0; tick < 5000; tick++ {
		clock.Advance(50 * time.Millisecond)
		b.Update(3)
		if y := b.Y(); y < -15 || y > 0 {
			t.Fatalf("y = %v outside [-H/2, 0]", y)
		}
	}
}

func TestDensityTintsTexture(t *testing.T) {
	b, _, _ := newTestBand(DefaultParams())
	tex := b.Texture()
	if got := tex.Bounds().Size(); got != image.Pt(60, 60) {
		t.Fatalf("texture size %v", got)
	}

	b.SetDensity(0, color.NRGBA{R: 255})
	for i := 3; i < len(b.Texture().Pix); i += 4 {
		if b.Texture().Pix[i] != 0 {
			t.Fatal("zero density should be invisible")
		}
	}

	b.SetDensity(2, color.NRGBA{R: 255})
	if b.Params().Density != 1 {
		t.Fatalf("density %v not clamped", b.Params().Density)
	}
	c := b.Texture().NRGBAAt(0, 0)
	if c.A != 255 {
		t.Fatalf("full density alpha %d", c.A)
	}
	if c.R <= c.G {
		t.Fatalf("texture not pulled towards red: %v", c)
	}
}

func TestOddWidthKeepsExactSpan(t *testing.T) {
	b, surface, clock := newSizedBand(401, 30, Params{Density: 0.5, Inertia: 1})
	if b.Span() != 601.5 {
		t.Fatalf("span %v, want 601.5", b.Span())
	}
	if b.Width() != 602 {
		t.Fatalf("texture width %d, want 602", b.Width())
	}
	for tick := 0; tick < 3000; tick++ {
		clock.Advance(16 * time.Millisecond)
		b.Update(60)
		o1, o2 := b.Offsets()
		if math.Abs(math.Abs(o2-o1)-601.5) > 1e-9 {
			t.Fatalf("tick %d: copies %v apart, want 601.5", tick, math.Abs(o2-o1))
		}
		// Together the copies cover every column of the surface.
		lo, hi := math.Min(o1, o2), math.Max(o1, o2)+float64(b.Width())
		if lo > 0 || hi < 401 || math.Max(o1, o2) > math.Min(o1, o2)+float64(b.Width()) {
			t.Fatalf("tick %d: copies at %v and %v leave a gap", tick, o1, o2)
		}
		surface.Present(nil)
	}
}
