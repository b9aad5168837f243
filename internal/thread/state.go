// Package thread draws the red thread: intact near the top of the page,
// torn apart a little further down and healed once the reader reaches the
// specialty section.
package thread

import (
	"math"
	"time"

	"github.com/iburimskiy/redthread/internal/vmath"
)

type State uint8

const (
	Intact State = iota
	Broken
	Reconnected
)

func (s State) String() string {
	switch s {
	case Intact:
		return "intact"
	case Broken:
		return "broken"
	case Reconnected:
		return "reconnected"
	default:
		return "unknown"
	}
}

// Scroll progress thresholds.
const (
	BreakAt     = 0.05
	ReconnectAt = 0.20
	HealSpan    = 0.15
)

// StateFor maps scroll progress to a thread state. It keeps no memory of
// earlier frames.
func StateFor(progress float64) State {
	switch {
	case progress < BreakAt:
		return Intact
	case progress < ReconnectAt:
		return Broken
	default:
		return Reconnected
	}
}

// HealProgress is 0 at the reconnection threshold and reaches 1 HealSpan
// later.
func HealProgress(progress float64) float64 {
	h := (progress - ReconnectAt) / HealSpan
	// 0.35-0.20 is not exactly 0.15 in binary
	if h > 1-healSnap {
		return 1
	}
	return vmath.Clamp01(h)
}

const healSnap = 1e-9

// Phase converts elapsed time into the curve's time parameter.
func Phase(elapsed time.Duration, speed float64) float64 {
	return float64(elapsed.Milliseconds()) * speed * 0.001
}

// GapSize is the distance between the two torn ends, in [80,120].
func GapSize(phase float64) float64 {
	return 100 + 20*math.Sin(phase)
}
