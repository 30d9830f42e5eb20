package renderer

import "time"

// FrameClock measures seconds since the render loop started. It is never
// reset by context loss, so animation time is continuous across window
// recreation.
type FrameClock struct {
	epoch      time.Time
	resolution time.Duration
	elapsed    time.Duration
}

// StartClock captures now as the epoch. A positive resolution truncates
// elapsed time to that step (time.Second samples whole seconds).
func StartClock(now time.Time, resolution time.Duration) *FrameClock {
	return &FrameClock{epoch: now, resolution: resolution}
}

// Elapsed advances the clock to now and returns seconds since the epoch.
// The result never decreases, even if now moves backwards.
func (c *FrameClock) Elapsed(now time.Time) float64 {
	d := now.Sub(c.epoch)
	if c.resolution > 0 {
		d = d.Truncate(c.resolution)
	}
	if d > c.elapsed {
		c.elapsed = d
	}
	return c.Seconds()
}

// Seconds returns the last sampled value.
func (c *FrameClock) Seconds() float64 {
	return c.elapsed.Seconds()
}
