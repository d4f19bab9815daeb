package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"weatherfx/internal/app"
	"weatherfx/internal/config"
	"weatherfx/internal/core"
)

func newRuntime(t *testing.T) *app.Runtime {
	t.Helper()
	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = 160, 120
	cfg.Log.Level = "error"
	rt, err := app.NewRuntime(cfg)
	if err != nil {
		t.Fatalf("runtime: %v", err)
	}
	return rt
}

func TestSweepRunsEveryScenario(t *testing.T) {
	rt := newRuntime(t)
	base, err := rt.Config.EngineConfig()
	if err != nil {
		t.Fatalf("engine config: %v", err)
	}
	base.Volume = 0
	scenarios := []scenario{
		{effects: []core.EffectKind{core.Rain}, wind: 0},
		{effects: []core.EffectKind{core.Hail}, wind: 40, pixel: true},
		{effects: []core.EffectKind{core.Lightning, core.Fog}, wind: -40},
	}
	results := sweep(rt, base, scenarios, 30, 2)
	if len(results) != len(scenarios) {
		t.Fatalf("got %d results, want %d", len(results), len(scenarios))
	}
	for _, r := range results {
		if r.Err != "" {
			t.Fatalf("%s failed: %s", r.Effects, r.Err)
		}
		if r.Frames != 30 {
			t.Fatalf("%s recorded %d frames", r.Effects, r.Frames)
		}
		if r.DirtyFraction <= 0 || r.DirtyFraction > 1 {
			t.Fatalf("%s dirty fraction %v", r.Effects, r.DirtyFraction)
		}
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(results, &buf); err != nil {
		t.Fatalf("csv: %v", err)
	}
	header := strings.SplitN(buf.String(), "\n", 2)[0]
	for _, col := range []string{"effects", "dirty_fraction", "mean_ms", "p95_ms"} {
		if !strings.Contains(header, col) {
			t.Fatalf("header %q missing %s", header, col)
		}
	}
}

func TestBuildScenariosCoversEveryEffect(t *testing.T) {
	seen := map[core.EffectKind]bool{}
	for _, s := range buildScenarios() {
		for _, k := range s.effects {
			seen[k] = true
		}
	}
	for _, k := range core.Order {
		if !seen[k] {
			t.Fatalf("%v never swept", k)
		}
	}
}
