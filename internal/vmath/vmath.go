// Package vmath holds the small scalar helpers shared by the renderers.
package vmath

import "math"

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp limits v to [lo,hi]. A NaN v takes lo, a NaN bound is ignored, and
// the result is never NaN.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
