package core

import "image"

// DirtySet accumulates changed regions, folding each new rectangle into the
// first existing one it overlaps.
type DirtySet struct {
	rects []image.Rectangle
}

// Add records r. Empty rectangles are ignored.
func (d *DirtySet) Add(r image.Rectangle) {
	if r.Empty() {
		return
	}
	for i := range d.rects {
		if d.rects[i].Overlaps(r) {
			d.rects[i] = d.rects[i].Union(r)
			return
		}
	}
	d.rects = append(d.rects, r)
}

// Rects returns the accumulated rectangles.
func (d *DirtySet) Rects() []image.Rectangle { return d.rects }

// Reset empties the set while keeping its storage.
func (d *DirtySet) Reset() { d.rects = d.rects[:0] }

// MergeRects unions intersecting rectangles until every pair in the result is
// disjoint. Empty inputs are dropped. The input slice is not modified.
func MergeRects(in []image.Rectangle) []image.Rectangle {
	out := make([]image.Rectangle, 0, len(in))
	for _, r := range in {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if !out[i].Overlaps(out[j]) {
					continue
				}
				out[i] = out[i].Union(out[j])
				out[j] = out[len(out)-1]
				out = out[:len(out)-1]
				merged = true
				j = i
			}
		}
	}
	return out
}

// ClipRects intersects every rectangle with bounds and drops the empty results.
func ClipRects(rects []image.Rectangle, bounds image.Rectangle) []image.Rectangle {
	out := rects[:0:0]
	for _, r := range rects {
		if c := r.Intersect(bounds); !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}

// Area sums the areas of the rectangles.
func Area(rects []image.Rectangle) int {
	total := 0
	for _, r := range rects {
		total += r.Dx() * r.Dy()
	}
	return total
}
