package page

import (
	"math"
	"strconv"
	"time"

	"github.com/iburimskiy/redthread/internal/vmath"
)

// Reveal fades an element in while sliding it up into place.
type Reveal struct {
	Delay    time.Duration
	Duration time.Duration
	Offset   float64

	at    time.Time
	armed bool
}

// Trigger starts the reveal at now+Delay. Later triggers are ignored.
func (r *Reveal) Trigger(now time.Time) {
	if r.armed {
		return
	}
	r.armed = true
	r.at = now.Add(r.Delay)
}

func (r *Reveal) Triggered() bool { return r.armed }

// Progress is the eased completion in [0,1].
func (r *Reveal) Progress(now time.Time) float64 {
	if !r.armed || now.Before(r.at) {
		return 0
	}
	if r.Duration <= 0 {
		return 1
	}
	return ease(vmath.Clamp01(float64(now.Sub(r.at)) / float64(r.Duration)))
}

// At returns the opacity and the remaining downward offset.
func (r *Reveal) At(now time.Time) (opacity, offset float64) {
	e := r.Progress(now)
	return e, r.Offset * (1 - e)
}

// ease is the cubic-bezier(0.25, 0.1, 0.25, 1) timing curve.
func ease(t float64) float64 {
	const x1, y1, x2, y2 = 0.25, 0.1, 0.25, 1.0
	bezier := func(s, p1, p2 float64) float64 {
		u := 1 - s
		return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
	}
	lo, hi := 0.0, 1.0
	s := t
	for i := 0; i < 32; i++ {
		x := bezier(s, x1, x2)
		if math.Abs(x-t) < 1e-7 {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return bezier(s, y1, y2)
}

// Counter counts from From to To in fixed ticks once started.
type Counter struct {
	From, To float64
	Duration time.Duration
	Tick     time.Duration
	Suffix   string

	start   time.Time
	running bool
}

func (c *Counter) Start(now time.Time) {
	if c.running {
		return
	}
	c.running = true
	c.start = now
}

func (c *Counter) Started() bool { return c.running }

// Value is the current count. Each whole tick adds
// (To-From) / (Duration/Tick); the last tick snaps to To.
func (c *Counter) Value(now time.Time) float64 {
	if !c.running || c.Tick <= 0 || c.Duration <= 0 {
		return c.From
	}
	elapsed := now.Sub(c.start)
	if elapsed < 0 {
		return c.From
	}
	ticks := float64(elapsed / c.Tick)
	step := (c.To - c.From) / (float64(c.Duration) / float64(c.Tick))
	v := c.From + ticks*step
	if v >= c.To-1e-9 {
		return c.To
	}
	return v
}

func (c *Counter) done(now time.Time) bool {
	return c.running && c.Value(now) == c.To
}

// Text renders the floored value with its suffix.
func (c *Counter) Text(now time.Time) string {
	return strconv.Itoa(int(math.Floor(c.Value(now)))) + c.Suffix
}
