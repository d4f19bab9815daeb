package ui

import (
	"image"
	"math"
	"strconv"

	"weatherfx/internal/core"
)

// Tunable is what the control panel drives: the weather engine in the GUI,
// a fake in tests.
type Tunable interface {
	Parameters() core.ParameterSnapshot
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
}

// Controls tracks the +/- rows of the side panel and applies clicks to a
// Tunable.
type Controls struct {
	target Tunable
	width  int
	rows   []controlRow
}

type controlRow struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

// NewControls lays out one row per control for a panel of the given width.
func NewControls(target Tunable, width int) *Controls {
	c := &Controls{target: target, width: width}
	for i, ctrl := range target.ParameterControls() {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
		c.rows = append(c.rows, controlRow{control: ctrl, value: "--", top: top, minusRect: minus, plusRect: plus})
	}
	return c
}

// Len returns the number of rows.
func (c *Controls) Len() int { return len(c.rows) }

// Value returns the formatted value of row i.
func (c *Controls) Value(i int) string { return c.rows[i].value }

// Refresh reloads every row from the target's parameters.
func (c *Controls) Refresh() {
	snap := c.target.Parameters()
	for i := range c.rows {
		row := &c.rows[i]
		row.hasValue = false
		row.value = "--"
		p, ok := snap.Lookup(row.control.Key)
		if !ok {
			continue
		}
		switch row.control.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(p.Value)
			if err != nil {
				continue
			}
			row.intValue, row.floatValue = v, float64(v)
			row.value = strconv.Itoa(v)
			row.hasValue = true
		case core.ParamTypeFloat:
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				continue
			}
			row.floatValue = v
			row.value = formatFloat(row.control, v)
			row.hasValue = true
		}
	}
}

// Click applies a press at panel coordinates (x, y). It reports whether a
// parameter changed.
func (c *Controls) Click(x, y int) bool {
	pt := image.Pt(x, y)
	for i := range c.rows {
		row := &c.rows[i]
		if !row.hasValue {
			continue
		}
		if pt.In(row.minusRect) {
			return c.adjust(row, -1)
		}
		if pt.In(row.plusRect) {
			return c.adjust(row, 1)
		}
	}
	return false
}

func (c *Controls) next(row *controlRow, dir int) (float64, bool) {
	cur := row.floatValue
	if row.control.Type == core.ParamTypeInt {
		cur = float64(row.intValue)
	}
	target := row.control.Next(cur, dir)
	return target, math.Abs(target-cur) >= 1e-9
}

// CanAdjust reports whether a press in direction dir would move row i.
func (c *Controls) CanAdjust(i, dir int) bool {
	row := &c.rows[i]
	if !row.hasValue {
		return false
	}
	_, moved := c.next(row, dir)
	return moved
}

func (c *Controls) adjust(row *controlRow, dir int) bool {
	target, moved := c.next(row, dir)
	if !moved {
		return false
	}
	switch row.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(target))
		if !c.target.SetIntParameter(row.control.Key, v) {
			return false
		}
		row.intValue, row.floatValue = v, float64(v)
		row.value = strconv.Itoa(v)
	case core.ParamTypeFloat:
		if !c.target.SetFloatParameter(row.control.Key, target) {
			return false
		}
		row.floatValue = target
		row.value = formatFloat(row.control, target)
	default:
		return false
	}
	return true
}

func formatFloat(ctrl core.ParameterControl, v float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
