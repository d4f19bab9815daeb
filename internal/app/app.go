//go:build ebiten

package app

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"weatherfx/internal/audio"
	"weatherfx/internal/core"
	"weatherfx/internal/render"
	"weatherfx/internal/ui"
	"weatherfx/internal/weather/engine"
)

// HUDWidth is the width of the control panel right of the weather view.
const HUDWidth = 240

var effectKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// Game adapts the weather engine to the ebiten.Game interface.
type Game struct {
	rt      *Runtime
	engine  *engine.Engine
	canvas  *render.Canvas
	hud     *ui.HUD
	overlay *ui.Overlay
	player  *eaudio.Player

	size   core.Size
	dirty  []image.Rectangle
	paused bool
}

// New builds the canvas, engine, panel and audio output for rt.
func New(rt *Runtime) (*Game, error) {
	size := core.Size{W: rt.Config.Screen.Width, H: rt.Config.Screen.Height}
	canvas := render.NewCanvas(size)
	canvas.SetBackground(rt.Background())

	eng, err := rt.Engine(canvas, core.NewSystemClock())
	if err != nil {
		return nil, err
	}
	g := &Game{
		rt:      rt,
		engine:  eng,
		canvas:  canvas,
		overlay: ui.NewOverlay(eng),
		size:    size,
	}
	g.hud = ui.NewHUD(eng, HUDWidth, size.H, g.status)

	if rt.Config.Audio.Enabled {
		ctx := eaudio.NewContext(int(audio.SampleRate))
		player, err := ctx.NewPlayer(audio.NewPCMReader(rt.Mixer))
		if err != nil {
			eng.Close()
			return nil, fmt.Errorf("opening audio output: %w", err)
		}
		player.Play()
		g.player = player
	}
	rt.Log.Infow("weather started", "effects", eng.Active(), "width", size.W, "height", size.H)
	return g, nil
}

func (g *Game) status() string {
	names := make([]string, 0, len(core.Order))
	for _, k := range g.engine.Active() {
		names = append(names, k.String())
	}
	state := ""
	if g.paused {
		state = " (paused)"
	}
	return strings.Join(names, ", ") + state
}

// Update handles keys and advances the engine one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	for i, key := range effectKeys {
		if i < len(core.Order) && inpututil.IsKeyJustPressed(key) {
			g.engine.Toggle(core.Order[i])
		}
	}
	g.hud.Update(g.size.W)
	if !g.paused {
		g.dirty = g.engine.Update()
	}
	g.overlay.Update(g.dirty)
	return nil
}

// Draw renders the last presented frame, the panel and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(screen)
	g.overlay.Draw(screen)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	return g.size.W + g.hud.Width(), g.size.H
}

// Close stops sound and releases the engine.
func (g *Game) Close() {
	if g.player != nil {
		_ = g.player.Close()
	}
	g.engine.Close()
	g.rt.Log.Infow("weather stopped", "perf", g.engine.Perf())
}
