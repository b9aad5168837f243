// Package viewport tracks the canvas size and device class and tells the
// rest of the scene when they change.
package viewport

import (
	"log"
	"time"

	"github.com/iburimskiy/redthread/internal/config"
)

type Class uint8

const (
	Desktop Class = iota
	Tablet
	Mobile
)

func (c Class) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// Classify maps a viewport width onto a device class. Breakpoints are
// inclusive.
func Classify(width int, bp config.Breakpoints) Class {
	switch {
	case width <= bp.Mobile:
		return Mobile
	case width <= bp.Tablet:
		return Tablet
	default:
		return Desktop
	}
}

// Size is the canvas size in pixels.
type Size struct {
	Width, Height int
}

// Listener is called after every applied resize.
type Listener func(s Size, mobile bool)

// Handler owns the canvas dimensions and the device class.
type Handler struct {
	bp        config.Breakpoints
	size      Size
	class     Class
	listeners []Listener
	debounce  *Debouncer
	logger    *log.Logger
	debug     bool
}

func NewHandler(bp config.Breakpoints, quiet time.Duration, logger *log.Logger, debug bool) *Handler {
	return &Handler{
		bp:       bp,
		debounce: NewDebouncer(quiet),
		logger:   logger,
		debug:    debug,
	}
}

// OnResize registers a listener for applied resizes.
func (h *Handler) OnResize(l Listener) {
	h.listeners = append(h.listeners, l)
}

func (h *Handler) Size() Size { return h.size }

func (h *Handler) Class() Class { return h.class }

func (h *Handler) Mobile() bool { return h.class == Mobile }

// Apply resizes immediately: recompute the canvas size, reclassify the
// device and notify listeners.
func (h *Handler) Apply(s Size) {
	h.size = s
	h.class = Classify(s.Width, h.bp)
	if h.debug && h.logger != nil {
		h.logger.Printf("viewport resized to %dx%d (%s)", s.Width, s.Height, h.class)
	}
	for _, l := range h.listeners {
		l(s, h.Mobile())
	}
}

// Notify records a raw size report from the host. Reports equal to the
// applied size are ignored; the rest are coalesced until Poll sees a quiet
// window.
func (h *Handler) Notify(s Size, now time.Time) {
	if s == h.size && !h.debounce.Pending() {
		return
	}
	h.debounce.Notify(s, now)
}

// Poll applies the last reported size once the quiet window has passed.
// It reports whether a resize was applied.
func (h *Handler) Poll(now time.Time) bool {
	s, ok := h.debounce.Poll(now)
	if !ok {
		return false
	}
	if s == h.size {
		return false
	}
	h.Apply(s)
	return true
}
