package core

import (
	"math"
	"strconv"
)

// ParamType is the value kind of a Parameter.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
	ParamTypeBool  ParamType = "bool"
)

// Parameter is one tunable or live value, formatted for display.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup is a titled set of parameters.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot is the engine state as shown in the side panel.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl is a parameter adjustable in fixed steps, optionally
// bounded.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// StepSize returns the increment of one press. Integer controls move by at
// least 1; a float control without a step moves by 0.05.
func (c ParameterControl) StepSize() float64 {
	if c.Type == ParamTypeInt {
		return math.Max(1, math.Round(c.Step))
	}
	if c.Step <= 0 {
		return 0.05
	}
	return c.Step
}

// Next returns cur moved one step in the direction of dir's sign, clamped to
// the bounds.
func (c ParameterControl) Next(cur float64, dir int) float64 {
	switch {
	case dir > 0:
		cur += c.StepSize()
	case dir < 0:
		cur -= c.StepSize()
	}
	if c.HasMin && cur < c.Min {
		cur = c.Min
	}
	if c.HasMax && cur > c.Max {
		cur = c.Max
	}
	return cur
}

// ParameterControlsProvider lists the adjustable parameters.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

func IntParam(key, label string, value int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(value)}
}

func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func BoolParam(key, label string, value bool) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeBool, Value: strconv.FormatBool(value)}
}
