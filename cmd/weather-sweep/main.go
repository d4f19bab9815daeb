package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"weatherfx/internal/app"
	"weatherfx/internal/config"
	"weatherfx/internal/core"
	"weatherfx/internal/render"
	"weatherfx/internal/telemetry"
	"weatherfx/internal/weather/engine"
)

type scenario struct {
	effects []core.EffectKind
	wind    float64
	pixel   bool
}

func (s scenario) names() string {
	names := make([]string, len(s.effects))
	for i, k := range s.effects {
		names[i] = k.String()
	}
	return strings.Join(names, "+")
}

func (s scenario) String() string {
	return fmt.Sprintf("effects=%s wind=%.0f pixel=%t", s.names(), s.wind, s.pixel)
}

type result struct {
	Effects       string  `csv:"effects"`
	Wind          float64 `csv:"wind"`
	Pixel         bool    `csv:"pixel"`
	DirtyFraction float64 `csv:"dirty_fraction"`
	Err           string  `csv:"error"`
	telemetry.Summary
}

func main() {
	var (
		ticks   int
		workers int
		out     string
	)
	cfg, err := config.Parse("weather-sweep", os.Args[1:], func(fs *flag.FlagSet) {
		fs.IntVar(&ticks, "ticks", 600, "ticks to simulate per scenario")
		fs.IntVar(&workers, "workers", runtime.NumCPU(), "number of worker goroutines")
		fs.StringVar(&out, "out", "", "CSV output file, stdout when empty")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rt, err := app.NewRuntime(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rt.Close()

	base, err := cfg.EngineConfig()
	if err != nil {
		rt.Log.Fatalw("bad config", "error", err)
	}
	// Sweeps never play sound.
	base.Volume = 0
	base.StatsWindow = ticks

	scenarios := buildScenarios()
	rt.Log.Infow("sweeping", "scenarios", len(scenarios), "workers", workers, "ticks", ticks)

	start := time.Now()
	results := sweep(rt, base, scenarios, ticks, workers)
	sort.Slice(results, func(i, j int) bool { return results[i].MeanMS > results[j].MeanMS })
	rt.Log.Infow("sweep done", "elapsed", time.Since(start).Round(time.Millisecond))

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			rt.Log.Fatalw("creating output", "path", out, "error", err)
		}
		defer f.Close()
		w = f
	}
	if err := gocsv.Marshal(results, w); err != nil {
		rt.Log.Fatalw("writing results", "error", err)
	}
}

func buildScenarios() []scenario {
	sets := [][]core.EffectKind{
		{core.Rain},
		{core.AcidRain},
		{core.Snow},
		{core.Hail},
		{core.Lightning, core.Fog},
		core.Order,
	}
	var out []scenario
	for _, effects := range sets {
		for _, wind := range []float64{-40, 0, 4, 40} {
			for _, pixel := range []bool{false, true} {
				out = append(out, scenario{effects: effects, wind: wind, pixel: pixel})
			}
		}
	}
	return out
}

func sweep(rt *app.Runtime, base engine.Config, scenarios []scenario, ticks, workers int) []result {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan result)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(rt, base, s, ticks)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, s := range scenarios {
			jobs <- s
		}
		close(jobs)
	}()

	var all []result
	for res := range results {
		all = append(all, res)
	}
	return all
}

func runScenario(rt *app.Runtime, base engine.Config, s scenario, ticks int) result {
	cfg := base
	cfg.Effects = s.effects
	cfg.WindSpeed = s.wind
	cfg.Pixel = s.pixel

	res := result{Effects: s.names(), Wind: s.wind, Pixel: s.pixel}
	log := rt.Log.With(zap.Stringer("scenario", s))
	size := rt.Config.Screen
	surface := render.NewRecorder(size.Width, size.Height)
	clock := &core.ManualClock{}
	step := time.Second / time.Duration(size.TPS)

	// One provider per scenario; providers are not shared between workers.
	provider := app.NewAssets(rt.Config.Assets.Dir, cfg.Seed, log)
	eng, err := engine.New(cfg, surface, nil, provider, clock, engine.WithLogger(log))
	if err != nil {
		log.Errorw("scenario failed", "error", err)
		res.Err = err.Error()
		return res
	}
	defer eng.Close()
	for i := 0; i < ticks; i++ {
		clock.Advance(step)
		eng.Update()
	}
	res.DirtyFraction = surface.DirtyFraction()
	res.Summary = eng.Perf()
	log.Debugw("scenario done", "mean_ms", res.MeanMS, "dirty", res.DirtyFraction)
	return res
}
