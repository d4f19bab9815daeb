package core

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

func TestMergeRectsUnionsTransitiveOverlaps(t *testing.T) {
	in := []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(50, 50, 60, 60),
		image.Rect(20, 0, 30, 10),
		image.Rect(5, 5, 25, 8), // bridges the first and third
		{},
	}
	out := MergeRects(in)
	if len(out) != 2 {
		t.Fatalf("got %d rects, want 2: %v", len(out), out)
	}
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[i].Overlaps(out[j]) {
				t.Fatalf("rects %v and %v still overlap", out[i], out[j])
			}
		}
	}
	want := image.Rect(0, 0, 30, 10)
	if out[0] != want && out[1] != want {
		t.Fatalf("missing merged rect %v in %v", want, out)
	}
	if len(in) != 5 || in[3] != image.Rect(5, 5, 25, 8) {
		t.Fatal("MergeRects modified its input")
	}
}

func TestDirtySetFoldsIntoFirstOverlap(t *testing.T) {
	var d DirtySet
	d.Add(image.Rect(0, 0, 4, 4))
	d.Add(image.Rect(2, 2, 6, 6))
	d.Add(image.Rect(100, 100, 101, 101))
	d.Add(image.Rectangle{})
	rects := d.Rects()
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rects))
	}
	if rects[0] != image.Rect(0, 0, 6, 6) {
		t.Fatalf("first rect = %v", rects[0])
	}
	d.Reset()
	if len(d.Rects()) != 0 {
		t.Fatal("Reset did not empty the set")
	}
}

func TestClipRectsAndArea(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	rects := ClipRects([]image.Rectangle{image.Rect(-10, -10, 10, 10), image.Rect(200, 200, 210, 210)}, bounds)
	if len(rects) != 1 || rects[0] != image.Rect(0, 0, 10, 10) {
		t.Fatalf("ClipRects = %v", rects)
	}
	if got := Area(rects); got != 100 {
		t.Fatalf("Area = %d, want 100", got)
	}
}

func TestParseEffectKind(t *testing.T) {
	cases := map[string]EffectKind{
		"rain":       Rain,
		"acid rain":  AcidRain,
		"Acid-Rain":  AcidRain,
		"acid_rain":  AcidRain,
		" lightning": Lightning,
		"fog":        Fog,
		"snow":       Snow,
		"hail":       Hail,
	}
	for name, want := range cases {
		got, ok := ParseEffectKind(name)
		if !ok || got != want {
			t.Fatalf("ParseEffectKind(%q) = %v,%v want %v", name, got, ok, want)
		}
	}
	if _, ok := ParseEffectKind("tornado"); ok {
		t.Fatal("unknown effect name parsed")
	}
	if len(Order) != 6 || Order[0] != Lightning || Order[len(Order)-1] != Hail {
		t.Fatalf("unexpected compositing order %v", Order)
	}
}

func TestBitmapShapes(t *testing.T) {
	b := NewBitmap(10, 10)
	white := color.NRGBA{255, 255, 255, 255}
	b.FillCircle(5, 5, 2, white)
	if b.At(5, 5) != white || b.At(5, 7) != white {
		t.Fatal("circle centre/edge not painted")
	}
	if b.At(7, 7).A != 0 {
		t.Fatal("circle painted outside its radius")
	}
	b.FillRect(image.Rect(8, 8, 20, 20), white)
	if b.At(9, 9) != white {
		t.Fatal("clipped rect not painted")
	}
	b.Set(-1, 0, white)
	img := b.Image()
	if img.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if img.NRGBAAt(5, 5) != white {
		t.Fatal("image does not share bitmap storage")
	}
	b.Clear()
	if b.At(5, 5).A != 0 {
		t.Fatal("Clear left opaque pixels")
	}
}

func TestFixedStepWithManualClock(t *testing.T) {
	clock := &ManualClock{}
	fs := NewFixedStep(clock, 50)
	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	clock.Advance(20 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full step elapsed, should step")
	}
	clock.Advance(10 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a step elapsed, should not step")
	}
	if w := fs.Wait(); w != 10*time.Millisecond {
		t.Fatalf("Wait = %v, want 10ms", w)
	}
}

func TestSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{{Name: "Wind", Params: []Parameter{FloatParam("wind_speed", "Wind speed", 2.5)}}}}
	p, ok := s.Lookup("wind_speed")
	if !ok || p.Value != "2.5" || p.Type != ParamTypeFloat {
		t.Fatalf("Lookup = %+v,%v", p, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("Lookup found a missing key")
	}
}

func TestParameterControlNext(t *testing.T) {
	ms := ParameterControl{Type: ParamTypeInt, Step: 0.4, Min: 0, Max: 3, HasMin: true, HasMax: true}
	if got := ms.StepSize(); got != 1 {
		t.Fatalf("int step = %v, want 1", got)
	}
	if got := ms.Next(3, 1); got != 3 {
		t.Fatalf("Next above max = %v", got)
	}
	if got := ms.Next(0.5, -1); got != 0 {
		t.Fatalf("Next below min = %v", got)
	}
	free := ParameterControl{Type: ParamTypeFloat}
	if got := free.Next(1, -1); math.Abs(got-0.95) > 1e-12 {
		t.Fatalf("default float step gave %v", got)
	}
	if got := free.Next(1, 0); got != 1 {
		t.Fatalf("zero direction moved to %v", got)
	}
}
