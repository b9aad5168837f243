package vmath

import (
	"math"
	"testing"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"below", -0.5, 0},
		{"inside", 0.25, 0.25},
		{"above", 1.5, 1},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.in); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLerpAndFinite(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Expected 12.5, got %v", got)
	}
	if got := Clamp(5, 6, 9); got != 6 {
		t.Errorf("Expected 6, got %v", got)
	}
	nan := math.NaN()
	clamps := []struct {
		name      string
		v, lo, hi float64
		expected  float64
	}{
		{"nan value", nan, 2, 9, 2},
		{"nan upper bound", 50, 0, nan, 50},
		{"nan lower bound", -5, nan, 9, -5},
		{"nan everywhere", nan, nan, nan, 0},
		{"infinite upper bound", 50, 0, math.Inf(1), 50},
	}
	for _, tt := range clamps {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
	if Finite(math.NaN()) || Finite(math.Inf(-1)) || !Finite(0) {
		t.Error("Finite misclassified a value")
	}
}
