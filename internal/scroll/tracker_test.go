package scroll

import (
	"math"
	"testing"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		scrollY  float64
		height   float64
		viewport float64
		expected float64
	}{
		{"top", 0, 8000, 1000, 0},
		{"middle", 3500, 8000, 1000, 0.5},
		{"bottom", 7000, 8000, 1000, 1},
		{"overscroll clamps", 7200, 8000, 1000, 1},
		{"negative clamps", -50, 8000, 1000, 0},
		{"not scrollable", 0, 1000, 1000, 0},
		{"not scrollable with offset", 10, 1000, 1000, 0},
		{"viewport taller than page", 0, 500, 1000, 0},
		{"nan offset", math.NaN(), 8000, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.scrollY, tt.height, tt.viewport)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTrackerBoundsScroll(t *testing.T) {
	tr := NewTracker(8, 1000)

	tr.ScrollBy(-100)
	if tr.ScrollY() != 0 || tr.Progress() != 0 {
		t.Errorf("Expected clamped top, got y=%v p=%v", tr.ScrollY(), tr.Progress())
	}

	tr.ScrollBy(700)
	if tr.Progress() != 0.1 {
		t.Errorf("Expected progress 0.1, got %v", tr.Progress())
	}

	tr.End()
	if !tr.AtEnd() || tr.Progress() != 1 {
		t.Errorf("Expected end of document, got y=%v p=%v", tr.ScrollY(), tr.Progress())
	}
	tr.ScrollBy(500)
	if tr.ScrollY() != 7000 {
		t.Errorf("Expected scrollY capped at 7000, got %v", tr.ScrollY())
	}

	tr.Home()
	if tr.ScrollY() != 0 {
		t.Errorf("Expected home at 0, got %v", tr.ScrollY())
	}

	tr.ScrollTo(math.Inf(1))
	if tr.ScrollY() != 0 {
		t.Errorf("Expected non-finite target ignored, got %v", tr.ScrollY())
	}
}

func TestTrackerSetViewportKeepsProgress(t *testing.T) {
	tr := NewTracker(8, 1000)
	tr.ScrollTo(2100) // 0.3

	tr.SetViewport(500)
	if math.Abs(tr.Progress()-0.3) > 1e-12 {
		t.Errorf("Expected progress 0.3 after resize, got %v", tr.Progress())
	}
	if tr.ScrollHeight() != 4000 {
		t.Errorf("Expected scroll height 4000, got %v", tr.ScrollHeight())
	}
	if math.Abs(tr.ScrollY()-1050) > 1e-9 {
		t.Errorf("Expected scrollY 1050, got %v", tr.ScrollY())
	}

	tr.SetViewport(0)
	if tr.ViewportHeight() != 500 {
		t.Errorf("Expected zero height ignored, got %v", tr.ViewportHeight())
	}
}

func TestSinglePageNeverScrolls(t *testing.T) {
	tr := NewTracker(1, 800)
	tr.ScrollBy(300)
	if tr.ScrollY() != 0 || tr.Progress() != 0 {
		t.Errorf("Expected single page to stay at top, got y=%v p=%v", tr.ScrollY(), tr.Progress())
	}
}

func TestScrollToProgress(t *testing.T) {
	tr := NewTracker(5, 1000)
	tr.ScrollToProgress(0.25)
	if math.Abs(tr.ScrollY()-1000) > 1e-9 || math.Abs(tr.Progress()-0.25) > 1e-12 {
		t.Errorf("Expected y=1000 p=0.25, got y=%v p=%v", tr.ScrollY(), tr.Progress())
	}
	tr.ScrollToProgress(math.NaN())
	if math.Abs(tr.Progress()-0.25) > 1e-12 {
		t.Errorf("Expected NaN ignored, got %v", tr.Progress())
	}
	tr.ScrollToProgress(3)
	if !tr.AtEnd() {
		t.Error("Expected clamp to the end")
	}
}

func TestBarThumb(t *testing.T) {
	tr := NewTracker(8, 800)
	bar := Bar{X: 1000, Y: 0, W: 6, H: 800, MinThumb: 20}

	top, h := bar.Thumb(tr)
	if top != 0 || h != 100 {
		t.Fatalf("Expected thumb 0+100 at the top, got %v+%v", top, h)
	}
	tr.End()
	if top, _ := bar.Thumb(tr); top != 700 {
		t.Errorf("Expected thumb at the bottom, got %v", top)
	}

	long := NewTracker(400, 800)
	if _, h := bar.Thumb(long); h != 20 {
		t.Errorf("Expected minimum thumb, got %v", h)
	}
}

func TestBarProgressAt(t *testing.T) {
	tr := NewTracker(8, 800)
	bar := Bar{X: 1000, Y: 0, W: 6, H: 800}

	tests := []struct {
		y, expected float64
	}{
		{0, 0},
		{50, 0},
		{400, 0.5},
		{750, 1},
		{900, 1},
	}
	for _, tt := range tests {
		if got := bar.ProgressAt(tr, tt.y); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("ProgressAt(%v): expected %v, got %v", tt.y, tt.expected, got)
		}
	}
	if !bar.Contains(1003, 10) || bar.Contains(990, 10) {
		t.Error("Expected hit test on the track only")
	}
}

func TestNonFiniteDocumentStaysScrollable(t *testing.T) {
	for _, pages := range []float64{math.NaN(), math.Inf(1)} {
		tr := NewTracker(pages, 600)
		tr.ScrollBy(5000)
		if y := tr.ScrollY(); math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("pages=%v: expected finite scroll offset, got %v", pages, y)
		}
		if p := tr.Progress(); p < 0 || p > 1 || math.IsNaN(p) {
			t.Errorf("pages=%v: expected progress in [0,1], got %v", pages, p)
		}
		tr.ScrollTo(0)
		if tr.ScrollY() != 0 {
			t.Errorf("pages=%v: expected scroll back to the top, got %v", pages, tr.ScrollY())
		}
	}
}
