package viewport

import "time"

// Debouncer coalesces bursts of size reports into the last one, released
// after quiet has passed with no new report. It does no timing of its own:
// the frame loop polls it, so everything stays on one goroutine.
type Debouncer struct {
	quiet   time.Duration
	pending bool
	last    Size
	at      time.Time
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Notify records a report and restarts the quiet window.
func (d *Debouncer) Notify(s Size, now time.Time) {
	d.pending = true
	d.last = s
	d.at = now
}

// Pending reports whether a report is waiting.
func (d *Debouncer) Pending() bool { return d.pending }

// Poll returns the last report if the quiet window has elapsed.
func (d *Debouncer) Poll(now time.Time) (Size, bool) {
	if !d.pending || now.Sub(d.at) < d.quiet {
		return Size{}, false
	}
	d.pending = false
	return d.last, true
}
