//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"weatherfx/internal/app"
	"weatherfx/internal/config"
)

func main() {
	cfg, err := config.Parse("weather", os.Args[1:], nil)
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

	game, err := app.New(rt)
	if err != nil {
		rt.Log.Fatalw("starting weather", "error", err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("weatherfx")
	ebiten.SetTPS(cfg.Screen.TPS)
	ebiten.SetWindowSize(cfg.Screen.Width+app.HUDWidth, cfg.Screen.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		rt.Log.Errorw("weather stopped", "error", err)
	}
}
