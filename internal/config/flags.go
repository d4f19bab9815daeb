package config

import (
	"flag"
	"io"
	"strings"
)

// Bind attaches the most used settings to fs so they can override the file.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Screen.Width, "width", c.Screen.Width, "surface width in pixels")
	fs.IntVar(&c.Screen.Height, "height", c.Screen.Height, "surface height in pixels")
	fs.IntVar(&c.Screen.TPS, "tps", c.Screen.TPS, "ticks per second")
	fs.Func("effects", "comma separated effects (rain, acid rain, snow, hail, lightning, fog)", func(v string) error {
		c.Weather.Effects = splitList(v)
		return nil
	})
	fs.BoolVar(&c.Weather.Pixel, "pixel", c.Weather.Pixel, "pixel-art flakes and fog")
	fs.Int64Var(&c.Weather.Seed, "seed", c.Weather.Seed, "random seed")
	fs.Float64Var(&c.Wind.Speed, "wind", c.Wind.Speed, "peak wind speed, negative blows left")
	fs.Float64Var(&c.Wind.Frequency, "wind-freq", c.Wind.Frequency, "base wind frequency")
	fs.Float64Var(&c.Fog.Density, "fog-density", c.Fog.Density, "fog density in [0,1]")
	fs.StringVar(&c.Fog.Color, "fog-color", c.Fog.Color, "fog colour as #rrggbb")
	fs.Float64Var(&c.Lightning.FrequencyMS, "lightning", c.Lightning.FrequencyMS, "mean pause between lightning bursts in ms")
	fs.Float64Var(&c.Audio.Volume, "volume", c.Audio.Volume, "master volume in [0,1]")
	fs.BoolVar(&c.Audio.Enabled, "audio", c.Audio.Enabled, "play sound")
	fs.StringVar(&c.Assets.Dir, "assets", c.Assets.Dir, "asset directory")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "debug, info, warn or error")
	fs.BoolVar(&c.Log.JSON, "log-json", c.Log.JSON, "log as JSON")
	fs.StringVar(&c.Log.File, "log-file", c.Log.File, "write logs to this file instead of stderr")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Parse reads args the way the binaries do: -config names a YAML file
// loaded over the defaults, and every other flag given overrides it.
func Parse(name string, args []string, extra func(*flag.FlagSet)) (*Config, error) {
	var path string
	probe := flag.NewFlagSet(name, flag.ContinueOnError)
	probe.StringVar(&path, "config", "", "YAML config file")
	Default().Bind(probe)
	if extra != nil {
		extra(probe)
	}
	if err := probe.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("config", "", "")
	cfg.Bind(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
