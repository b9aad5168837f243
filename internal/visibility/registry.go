// Package visibility fires one-shot callbacks when page elements scroll
// into view.
package visibility

import (
	"time"

	"github.com/iburimskiy/redthread/internal/vmath"
)

// Rect is a vertical band of the document, in document pixels.
type Rect struct {
	Top, Height float64
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Element is anything laid out in the document. Bounds may change between
// updates (for example after a resize).
type Element interface {
	Bounds() Rect
}

type Options struct {
	// Threshold is the visible fraction of the element that triggers the
	// callback. 0 triggers on any overlap.
	Threshold float64
	// BottomMargin shrinks the viewport from below, like a negative
	// bottom root margin.
	BottomMargin float64
}

type entry struct {
	el   Element
	opts Options
	fn   func(now time.Time)
}

// Registry holds (element, threshold, callback) registrations. Each
// callback fires at most once and is then dropped.
type Registry struct {
	entries []entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Observe registers fn to run the first time el is visible enough.
func (r *Registry) Observe(el Element, opts Options, fn func(now time.Time)) {
	r.entries = append(r.entries, entry{el: el, opts: opts, fn: fn})
}

// unobserve drops every pending registration for el.
func (r *Registry) unobserve(el Element) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.el != el {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

// Len reports pending registrations.
func (r *Registry) Len() int { return len(r.entries) }

// Update checks every pending element against the viewport
// [top, top+height) and fires the ones that crossed their threshold, in
// registration order. It returns how many fired.
func (r *Registry) Update(top, height float64, now time.Time) int {
	var fired []entry
	kept := r.entries[:0]
	for _, e := range r.entries {
		if Visible(e.el.Bounds(), top, height-e.opts.BottomMargin, e.opts.Threshold) {
			fired = append(fired, e)
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	// Callbacks may register new elements; they are checked next update.
	for _, e := range fired {
		e.fn(now)
	}
	return len(fired)
}

// Ratio is the fraction of el inside the viewport [top, top+height).
func Ratio(el Rect, top, height float64) float64 {
	if el.Height <= 0 || height <= 0 {
		return 0
	}
	lo := max(el.Top, top)
	hi := min(el.Bottom(), top+height)
	if hi <= lo {
		return 0
	}
	return vmath.Clamp01((hi - lo) / el.Height)
}

// Visible reports whether el intersects the viewport by at least
// threshold.
func Visible(el Rect, top, height, threshold float64) bool {
	r := Ratio(el, top, height)
	return r > 0 && r >= threshold
}
