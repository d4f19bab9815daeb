package ui

import (
	"testing"

	"weatherfx/internal/core"
)

type fakeTunable struct {
	fog       float64
	lightning int
	rejects   bool
}

func (f *fakeTunable) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "all",
		Params: []core.Parameter{
			core.FloatParam("fog", "Fog", f.fog),
			core.IntParam("lightning", "Lightning", f.lightning),
		},
	}}}
}

func (f *fakeTunable) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "fog", Label: "Fog", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "lightning", Label: "Lightning", Type: core.ParamTypeInt, Step: 500, Min: 500, HasMin: true},
		{Key: "missing", Label: "Missing", Type: core.ParamTypeFloat, Step: 1},
	}
}

func (f *fakeTunable) SetFloatParameter(key string, v float64) bool {
	if f.rejects || key != "fog" {
		return false
	}
	f.fog = v
	return true
}

func (f *fakeTunable) SetIntParameter(key string, v int) bool {
	if f.rejects || key != "lightning" {
		return false
	}
	f.lightning = v
	return true
}

func TestControlsRefreshFormatsValues(t *testing.T) {
	c := NewControls(&fakeTunable{fog: 0.7, lightning: 8000}, 240)
	c.Refresh()
	if c.Len() != 3 {
		t.Fatalf("rows = %d", c.Len())
	}
	if got := c.Value(0); got != "0.70" {
		t.Fatalf("fog value %q", got)
	}
	if got := c.Value(1); got != "8000" {
		t.Fatalf("lightning value %q", got)
	}
	if got := c.Value(2); got != "--" {
		t.Fatalf("missing value %q", got)
	}
	if c.CanAdjust(2, 1) {
		t.Fatal("row without value should not be adjustable")
	}
}

func TestControlsClickAdjustsAndClamps(t *testing.T) {
	f := &fakeTunable{fog: 0.98, lightning: 1000}
	c := NewControls(f, 240)
	c.Refresh()

	plus := c.rows[0].plusRect.Min
	if !c.Click(plus.X, plus.Y) {
		t.Fatal("plus click ignored")
	}
	if f.fog != 1 {
		t.Fatalf("fog = %v, want clamped to 1", f.fog)
	}
	if c.CanAdjust(0, 1) {
		t.Fatal("fog at max should not move up")
	}
	if c.Click(plus.X, plus.Y) {
		t.Fatal("click at max reported a change")
	}

	minus := c.rows[1].minusRect.Min
	c.Click(minus.X, minus.Y)
	c.Click(minus.X, minus.Y)
	if f.lightning != 500 {
		t.Fatalf("lightning = %d, want clamped to 500", f.lightning)
	}
	if c.Value(1) != "500" {
		t.Fatalf("row value %q not updated", c.Value(1))
	}
}

func TestControlsRejectedSetKeepsValue(t *testing.T) {
	f := &fakeTunable{fog: 0.5, rejects: true}
	c := NewControls(f, 240)
	c.Refresh()
	p := c.rows[0].plusRect.Min
	if c.Click(p.X, p.Y) {
		t.Fatal("rejected set reported a change")
	}
	if c.Value(0) != "0.50" {
		t.Fatalf("value changed to %q", c.Value(0))
	}
	if c.Click(0, 0) {
		t.Fatal("click outside buttons changed something")
	}
}
