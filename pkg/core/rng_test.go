package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 10000; i++ {
		if v := r.Uniform(0.35, 1.0); v < 0.35 || v >= 1.0 {
			t.Fatalf("Uniform out of range: %v", v)
		}
		if v := r.IntRange(-5, 5); v < -5 || v > 5 {
			t.Fatalf("IntRange out of range: %d", v)
		}
	}
	if got := r.Uniform(2, 2); got != 2 {
		t.Fatalf("degenerate Uniform = %v, want 2", got)
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
}

func TestRNGSplitIndependent(t *testing.T) {
	parent := NewRNG(11)
	child := parent.Split()
	again := NewRNG(11).Split()
	for i := 0; i < 20; i++ {
		if child.Float64() != again.Float64() {
			t.Fatalf("split streams from identical parents diverged at %d", i)
		}
	}
}
