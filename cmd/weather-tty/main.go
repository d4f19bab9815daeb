package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"weatherfx/internal/app"
	"weatherfx/internal/audio"
	"weatherfx/internal/config"
	"weatherfx/internal/core"
	"weatherfx/internal/render"
	"weatherfx/internal/weather/engine"
)

const (
	windStep   = 2.0
	volumeStep = 0.1
)

type session struct {
	screen tcell.Screen
	term   *render.Terminal
	engine *engine.Engine
	log    *zap.SugaredLogger
	sound  bool
}

func main() {
	cfg, err := config.Parse("weather-tty", os.Args[1:], nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// The terminal owns stderr while running; without -log-file only errors
	// get through.
	if cfg.Log.File == "" {
		cfg.Log.Level = "error"
	}

	rt, err := app.NewRuntime(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rt.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	s, err := newSession(rt, screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer s.close()
	s.run(cfg.Screen.TPS)
}

func newSession(rt *app.Runtime, screen tcell.Screen) (*session, error) {
	size := core.Size{W: rt.Config.Screen.Width, H: rt.Config.Screen.Height}
	term := render.NewTerminal(screen, size)
	term.SetBackground(rt.Background())

	eng, err := rt.Engine(term, core.NewSystemClock())
	if err != nil {
		return nil, err
	}
	s := &session{screen: screen, term: term, engine: eng, log: rt.Log}
	if rt.Config.Audio.Enabled {
		if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(time.Second/10)); err != nil {
			rt.Log.Warnw("audio output unavailable", "error", err)
		} else {
			speaker.Play(rt.Mixer)
			s.sound = true
		}
	}
	term.Redraw()
	return s, nil
}

func (s *session) run(tps int) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	step := core.NewFixedStep(core.NewSystemClock(), tps)
	timer := time.NewTimer(step.Wait())
	defer timer.Stop()
	for {
		select {
		case ev := <-events:
			if !s.handle(ev) {
				return
			}
		case <-timer.C:
			if step.ShouldStep() {
				s.engine.Update()
			}
			timer.Reset(step.Wait())
		}
	}
}

func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.term.Redraw()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			s.nudgeWind(-windStep)
		case tcell.KeyRight:
			s.nudgeWind(windStep)
		case tcell.KeyUp:
			s.nudgeVolume(volumeStep)
		case tcell.KeyDown:
			s.nudgeVolume(-volumeStep)
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' {
				return false
			}
			if i := int(r - '1'); i >= 0 && i < len(core.Order) {
				s.engine.Toggle(core.Order[i])
			}
		}
	}
	return true
}

func (s *session) nudgeWind(d float64) {
	cfg := s.engine.Config()
	if err := s.engine.SetWindSpeed(cfg.WindSpeed+d, cfg.WindFrequency); err != nil {
		s.log.Debugw("wind change rejected", "error", err)
	}
}

func (s *session) nudgeVolume(d float64) {
	v := s.engine.Volume() + d
	v = min(1, max(0, v))
	if err := s.engine.ChangeVolume(v); err != nil {
		s.log.Debugw("volume change rejected", "error", err)
	}
}

func (s *session) close() {
	s.engine.Close()
	if s.sound {
		speaker.Close()
	}
	s.screen.Fini()
	s.log.Infow("weather stopped", "perf", s.engine.Perf())
}
