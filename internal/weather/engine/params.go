package engine

import (
	"weatherfx/internal/core"
)

const (
	paramWindSpeed     = "wind_speed"
	paramWindFrequency = "wind_frequency"
	paramWindNow       = "wind_now"
	paramFogDensity    = "fog_density"
	paramLightning     = "lightning_ms"
	paramVolume        = "volume"
)

// Parameters reports the tunables and live state for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	effects := make([]core.Parameter, 0, len(core.Order))
	for _, k := range core.Order {
		_, on := e.effects[k]
		effects = append(effects, core.BoolParam("effect_"+k.String(), k.String(), on))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Wind",
			Params: []core.Parameter{
				core.FloatParam(paramWindSpeed, "Peak speed", e.cfg.WindSpeed),
				core.FloatParam(paramWindFrequency, "Frequency", e.cfg.WindFrequency),
				core.FloatParam(paramWindNow, "Now", e.windSpeed),
			},
		},
		{
			Name:   "Fog",
			Params: []core.Parameter{core.FloatParam(paramFogDensity, "Density", e.cfg.FogDensity)},
		},
		{
			Name:   "Lightning",
			Params: []core.Parameter{core.IntParam(paramLightning, "Pause ms", int(e.cfg.LightningFrequency))},
		},
		{
			Name:   "Audio",
			Params: []core.Parameter{core.FloatParam(paramVolume, "Volume", e.sound.Master())},
		},
		{Name: "Effects", Params: effects},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: paramWindSpeed, Label: "Wind", Type: core.ParamTypeFloat, Step: 1, Min: -100, Max: 100, HasMin: true, HasMax: true},
		{Key: paramWindFrequency, Label: "Wind freq", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: 100, HasMin: true, HasMax: true},
		{Key: paramFogDensity, Label: "Fog", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: paramLightning, Label: "Lightning ms", Type: core.ParamTypeInt, Step: 500, Min: 500, Max: 60000, HasMin: true, HasMax: true},
		{Key: paramVolume, Label: "Volume", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter applies a HUD adjustment.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	switch key {
	case paramWindSpeed:
		return e.SetWindSpeed(value, e.cfg.WindFrequency) == nil
	case paramWindFrequency:
		return e.SetWindSpeed(e.cfg.WindSpeed, value) == nil
	case paramFogDensity:
		e.SetFogDensity(value, nil)
		return true
	case paramVolume:
		return e.ChangeVolume(value) == nil
	}
	return false
}

// SetIntParameter applies a HUD adjustment.
func (e *Engine) SetIntParameter(key string, value int) bool {
	if key == paramLightning {
		return e.SetLightningFrequency(float64(value)) == nil
	}
	return false
}
