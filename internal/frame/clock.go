package frame

import "time"

// Clock measures time elapsed since it was started.
type Clock struct {
	start time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{start: start}
}

// Elapsed returns now minus the start time, never negative.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	d := now.Sub(c.start)
	if d < 0 {
		return 0
	}
	return d
}
