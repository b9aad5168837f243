package scroll

import "github.com/iburimskiy/redthread/internal/vmath"

// Bar maps the document onto a vertical scrollbar track, in host pixels.
type Bar struct {
	X, Y, W, H float64
	// MinThumb keeps the thumb grabbable on very long documents.
	MinThumb float64
}

func (b Bar) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Thumb returns the thumb's top and height for the tracker's position.
func (b Bar) Thumb(t *Tracker) (top, height float64) {
	height = b.H
	if sh := t.ScrollHeight(); sh > 0 {
		height = b.H * t.ViewportHeight() / sh
	}
	height = vmath.Clamp(height, min(b.MinThumb, b.H), b.H)
	return b.Y + (b.H-height)*t.Progress(), height
}

// ProgressAt is the progress that puts the thumb's centre at y.
func (b Bar) ProgressAt(t *Tracker, y float64) float64 {
	_, h := b.Thumb(t)
	span := b.H - h
	if span <= 0 {
		return 0
	}
	return vmath.Clamp01((y - b.Y - h/2) / span)
}
