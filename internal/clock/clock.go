// Package clock measures the elapsed time fed to the shader.
package clock

import "time"

// Clock reports seconds since it was started, excluding time spent paused.
// Elapsed never decreases.
type Clock struct {
	now func() time.Time

	start    time.Time
	paused   bool
	pausedAt time.Time
	idle     time.Duration
}

// New starts a clock on the wall clock.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource starts a clock reading time from now.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns the running time in seconds.
func (c *Clock) Elapsed() float64 {
	end := c.now()
	if c.paused {
		end = c.pausedAt
	}
	d := end.Sub(c.start) - c.idle
	if d < 0 {
		return 0
	}
	return d.Seconds()
}

func (c *Clock) Paused() bool { return c.paused }

// Toggle pauses a running clock or resumes a paused one.
func (c *Clock) Toggle() {
	if c.paused {
		c.idle += c.now().Sub(c.pausedAt)
		c.paused = false
		return
	}
	c.pausedAt = c.now()
	c.paused = true
}

// Reset restarts the clock from zero, keeping the pause state.
func (c *Clock) Reset() {
	c.start = c.now()
	c.pausedAt = c.start
	c.idle = 0
}
