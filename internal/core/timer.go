package core

import "time"

// SystemClock reports wall time elapsed since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock { return &SystemClock{start: time.Now()} }

// Now returns the time elapsed since construction.
func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }

// ManualClock only moves when told to. Tests and headless sweeps drive it.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now += d }

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Duration) { c.now = t }

// FixedStep helps run engine updates at a steady ticks-per-second rate.
type FixedStep struct {
	clock       Clock
	step        time.Duration
	accumulator time.Duration
	last        time.Duration
	started     bool
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(clock Clock, tps int) *FixedStep {
	if clock == nil {
		clock = NewSystemClock()
	}
	fs := &FixedStep{clock: clock}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the engine should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.clock.Now()
	if !f.started {
		f.last = now
		f.started = true
	}
	delta := now - f.last
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait reports how long until the next tick is due.
func (f *FixedStep) Wait() time.Duration {
	if f.accumulator >= f.step {
		return 0
	}
	return f.step - f.accumulator
}
