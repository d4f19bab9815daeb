package precip

import (
	"image"
	"math"
	"testing"

	"weatherfx/internal/core"
	"weatherfx/internal/render"
	rng "weatherfx/pkg/core"
)

const (
	testW = 400
	testH = 300
)

func newTestField(t *testing.T, kind core.EffectKind, seed int64) (*Field, *render.Recorder) {
	t.Helper()
	sp, ok := Defaults(kind)
	if !ok {
		t.Fatalf("no species for %v", kind)
	}
	surface := render.NewRecorder(testW, testH)
	return New(sp, surface, rng.NewRNG(seed), false), surface
}

func TestPoolSizeStaysAtTargetEveryUpdate(t *testing.T) {
	for _, kind := range []core.EffectKind{core.Rain, core.AcidRain, core.Snow, core.Hail} {
		f, _ := newTestField(t, kind, 1)
		want := f.Target()
		for tick := 0; tick < 500; tick++ {
			wind := 30 * math.Sin(float64(tick)/40)
			f.Update(wind)
			if got := len(f.Drops()); got != want {
				t.Fatalf("%v: tick %d has %d drops, want %d", kind, tick, got, want)
			}
		}
	}
}

func TestSetTargetConvergesOneDropPerTick(t *testing.T) {
	f, _ := newTestField(t, core.Rain, 2)
	f.Update(0)
	oldest := f.Drops()[0]
	f.SetTarget(27)
	for i := 1; i <= 3; i++ {
		f.Update(0)
		if got := len(f.Drops()); got != 30-i {
			t.Fatalf("after %d ticks pool is %d, want %d", i, got, 30-i)
		}
	}
	for _, d := range f.Drops() {
		if d == oldest {
			t.Fatal("oldest drop survived a cull")
		}
	}
	f.SetTarget(29)
	f.Update(0)
	f.Update(0)
	f.Update(0)
	if got := len(f.Drops()); got != 29 {
		t.Fatalf("pool grew to %d, want 29", got)
	}
}

func TestDropBelowScreenRespawnsOnTop(t *testing.T) {
	f, _ := newTestField(t, core.Rain, 3)
	f.Update(0)
	for trial := 0; trial < 200; trial++ {
		d := f.Drops()[trial%len(f.Drops())]
		d.Y = testH - 1
		d.VY = 40
		d.VX = 4
		f.Update(0)
		_, h := d.SpriteSize()
		if d.Y != -float64(h) {
			t.Fatalf("respawned y = %v, want %v", d.Y, -float64(h))
		}
		if d.X < 0 || d.X >= testW {
			t.Fatalf("respawned x = %v outside [0,%d)", d.X, testW)
		}
		if d.VX != 2 {
			t.Fatalf("respawned vx = %v, want half of 4 with no wind", d.VX)
		}
		if d.VY < d.Speed || d.VY > 1.5*d.Speed {
			t.Fatalf("respawned vy = %v outside [%v, %v]", d.VY, d.Speed, 1.5*d.Speed)
		}
	}
}

func TestTopRespawnCarriesWindMomentum(t *testing.T) {
	f, _ := newTestField(t, core.Rain, 4)
	f.Update(0)
	d := f.Drops()[0]
	d.X = testW / 2
	d.Y = testH - 1
	d.VY = 40
	d.VX = 0
	f.Update(8)
	// One relaxation step moves vx a little towards 8 before the respawn.
	relaxed := (8 - 0) * math.Pow(1-d.Weight, 2) / 1000
	want := relaxed/2 + 8.0/4
	if math.Abs(d.VX-want) > 1e-9 {
		t.Fatalf("vx after respawn = %v, want %v", d.VX, want)
	}
}

func TestHailBouncesFiveTimesThenRespawns(t *testing.T) {
	f, _ := newTestField(t, core.Hail, 5)
	f.Update(0)
	d := f.Drops()[0]
	floor := testH - bounceOffset*(1-d.Weight)
	d.X = 100
	d.Y = floor - 1
	d.VY = 2
	d.VX = 0
	d.Bounces = 0

	for contact := 1; contact <= maxBounces; contact++ {
		prior := d.VY + d.Accel
		f.Update(0)
		if d.Bounces != contact {
			t.Fatalf("contact %d: bounce count %d", contact, d.Bounces)
		}
		if want := -prior * bounceDamp; math.Abs(d.VY-want) > 1e-12 {
			t.Fatalf("contact %d: vy = %v, want %v", contact, d.VY, want)
		}
		if d.Y < floor {
			t.Fatalf("contact %d: stone left the floor (y=%v floor=%v)", contact, d.Y, floor)
		}
	}

	f.Update(0)
	_, h := d.SpriteSize()
	if d.Bounces != 0 {
		t.Fatalf("bounce count after sixth contact = %d, want 0", d.Bounces)
	}
	if d.Y != -float64(h) {
		t.Fatalf("stone not respawned on top: y = %v", d.Y)
	}
}

func TestRainWithoutWindNeverEscapesMargins(t *testing.T) {
	f, _ := newTestField(t, core.Rain, 6)
	for tick := 0; tick < 1000; tick++ {
		f.Update(0)
		for i, d := range f.Drops() {
			if d.X < leftMargin || d.X > testW+rightMargin {
				t.Fatalf("tick %d drop %d escaped: x = %v", tick, i, d.X)
			}
			if d.Tilt != 0 {
				t.Fatalf("tick %d drop %d tilted without wind", tick, i)
			}
		}
	}
}

func TestStrongWindRecyclesSideways(t *testing.T) {
	for _, wind := range []float64{-400, 400} {
		f, _ := newTestField(t, core.Snow, 7)
		crossed := false
		for tick := 0; tick < 3000; tick++ {
			f.Update(wind)
			for _, d := range f.Drops() {
				if math.IsNaN(d.X) || math.IsNaN(d.VX) {
					t.Fatalf("wind %v: NaN state at tick %d", wind, tick)
				}
				if d.X < leftMargin || d.X > testW+rightMargin {
					t.Fatalf("wind %v: drop escaped at x = %v", wind, d.X)
				}
				if (wind > 0 && d.X < 0) || (wind < 0 && d.X >= testW) {
					crossed = true
				}
			}
		}
		if !crossed {
			t.Fatalf("wind %v never pushed a flake across the screen edge", wind)
		}
	}
}

func TestDropWeights(t *testing.T) {
	rain, _ := newTestField(t, core.Rain, 8)
	snow, _ := newTestField(t, core.Snow, 8)
	rain.Update(0)
	snow.Update(0)
	for _, d := range rain.Drops() {
		if d.Weight < 0.9*minScale-1e-9 || d.Weight > 0.9 {
			t.Fatalf("rain weight %v out of range", d.Weight)
		}
	}
	for _, d := range snow.Drops() {
		if d.Weight > 0.45 {
			t.Fatalf("flake weight %v not halved", d.Weight)
		}
	}
}

func TestUpdateReportsDrawnRegions(t *testing.T) {
	f, surface := newTestField(t, core.Rain, 9)
	rects := f.Update(12)
	if got := len(surface.Pending()); got != f.Target() {
		t.Fatalf("%d blits, want one per drop", got)
	}
	for i, d := range f.Drops() {
		b := d.Bounds()
		covered := false
		for _, r := range rects {
			if b.In(r) {
				covered = true
				break
			}
		}
		if !covered {
			t.Fatalf("drop %d bounds %v not covered by %v", i, b, rects)
		}
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i] == rects[j] {
				t.Fatalf("duplicate dirty rect %v", rects[i])
			}
		}
	}
}

func TestSpriteShapes(t *testing.T) {
	rain, _ := Defaults(core.Rain)
	bmp := paintSprite(rain, 1, false)
	if bmp.W != 10 || bmp.H != 150 {
		t.Fatalf("rain sprite %dx%d, want 10x150", bmp.W, bmp.H)
	}
	mid := bmp.W / 2
	if bmp.At(mid, 10).A >= bmp.At(mid, 100).A {
		t.Fatal("tail alpha should grow along the drop")
	}
	if bmp.At(0, 100).A != 0 {
		t.Fatal("tail edge column should be transparent")
	}
	if bmp.At(mid, bmp.H-1).A != 0 {
		t.Fatal("rain has no cap below the tail")
	}

	hail, _ := Defaults(core.Hail)
	round := paintSprite(hail, 1, false)
	if round.At(round.W/2, round.H-round.W).A != 255 {
		t.Fatal("round cap missing")
	}
	square := paintSprite(hail, 1, true)
	corner := image.Pt(square.W/4, square.H-square.W+square.W/2-1)
	if square.At(corner.X, corner.Y).A != 255 {
		t.Fatal("square cap missing its corner")
	}
	if round.At(corner.X, corner.Y).A == 255 {
		t.Fatal("round cap should not fill the square corner")
	}
}
