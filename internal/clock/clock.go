// Package clock provides the wall-clock time source that frame drivers
// sample once per tick.
package clock

import "time"

// Clock reports per-call deltas and the running total, in seconds.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
	elapsed float64
}

func New() *Clock { return NewWithSource(time.Now) }

// NewWithSource uses now as the time source, which lets tests drive time by hand.
func NewWithSource(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Delta returns seconds since the previous call. The first call returns 0,
// and a wall clock that steps backwards yields 0 rather than a negative delta.
func (c *Clock) Delta() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	d := t.Sub(c.last).Seconds()
	c.last = t
	if d < 0 {
		d = 0
	}
	c.elapsed += d
	return d
}

// Elapsed is the sum of every delta returned so far.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Reset forgets the last sample; the next Delta bootstraps at 0 again.
func (c *Clock) Reset() {
	c.started = false
	c.elapsed = 0
}
