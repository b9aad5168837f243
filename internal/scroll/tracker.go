// Package scroll tracks the vertical position in the virtual page and turns
// it into a normalized progress value.
package scroll

import (
	"github.com/iburimskiy/redthread/internal/vmath"
)

// Progress returns the fraction of the scrollable height traversed, in
// [0,1]. A document that cannot scroll reports 0.
func Progress(scrollY, scrollHeight, viewportHeight float64) float64 {
	p := scrollY / (scrollHeight - viewportHeight)
	if !vmath.Finite(p) {
		return 0
	}
	return vmath.Clamp01(p)
}

// Tracker owns the virtual document: its length, the viewport height and
// the current offset. Every mutation recomputes the progress; the last
// write wins.
type Tracker struct {
	pages          float64
	viewportHeight float64
	scrollY        float64
	progress       float64
}

// NewTracker creates a tracker for a document pages viewports long.
func NewTracker(pages, viewportHeight float64) *Tracker {
	t := &Tracker{pages: pages, viewportHeight: viewportHeight}
	t.update()
	return t
}

func (t *Tracker) ScrollHeight() float64 { return t.pages * t.viewportHeight }

func (t *Tracker) ViewportHeight() float64 { return t.viewportHeight }

func (t *Tracker) ScrollY() float64 { return t.scrollY }

// Progress returns the last computed progress.
func (t *Tracker) Progress() float64 { return t.progress }

func (t *Tracker) maxScroll() float64 {
	m := t.ScrollHeight() - t.viewportHeight
	if m < 0 || !vmath.Finite(m) {
		return 0
	}
	return m
}

// ScrollTo moves to y, bounded to the scrollable range.
func (t *Tracker) ScrollTo(y float64) {
	if !vmath.Finite(y) {
		return
	}
	t.scrollY = vmath.Clamp(y, 0, t.maxScroll())
	t.update()
}

func (t *Tracker) ScrollBy(dy float64) {
	t.ScrollTo(t.scrollY + dy)
}

// ScrollToProgress jumps to the offset at fraction p of the scrollable
// range.
func (t *Tracker) ScrollToProgress(p float64) {
	if !vmath.Finite(p) {
		return
	}
	t.ScrollTo(vmath.Clamp01(p) * t.maxScroll())
}

func (t *Tracker) Home() { t.ScrollTo(0) }

func (t *Tracker) End() { t.ScrollTo(t.maxScroll()) }

// AtEnd reports whether the bottom of the document is reached.
func (t *Tracker) AtEnd() bool { return t.scrollY >= t.maxScroll() }

// SetViewport changes the viewport height while keeping the traversed
// fraction, the way a reflowing page keeps its reading position.
func (t *Tracker) SetViewport(height float64) {
	if height <= 0 || !vmath.Finite(height) {
		return
	}
	frac := t.progress
	t.viewportHeight = height
	t.scrollY = frac * t.maxScroll()
	t.update()
}

func (t *Tracker) update() {
	t.progress = Progress(t.scrollY, t.ScrollHeight(), t.viewportHeight)
}
