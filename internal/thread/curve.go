package thread

import (
	"math"

	"github.com/iburimskiy/redthread/internal/surface"
)

// Vertical extents of each curve, measured from the canvas centre.
const (
	intactHalfHeight      = 200
	brokenHalfHeight      = 300
	reconnectedHalfHeight = 250

	brokenAmplitude = 0.7
	mobileScale     = 0.5

	// healWindow is the normalized distance from the midpoint inside which
	// the reconnected curve is flattened.
	healWindow = 0.2
)

// Shape holds what the curve builders need besides time.
type Shape struct {
	Center    surface.Point
	Segments  int
	Amplitude float64
	Mobile    bool
}

func (s Shape) amplitude() float64 {
	if s.Mobile {
		return s.Amplitude * mobileScale
	}
	return s.Amplitude
}

// IntactCurve samples Segments+1 points of the full sine thread.
func IntactCurve(s Shape, phase float64) []surface.Point {
	startY := s.Center.Y - intactHalfHeight
	endY := s.Center.Y + intactHalfHeight
	amp := s.amplitude()

	points := make([]surface.Point, 0, s.Segments+1)
	for i := 0; i <= s.Segments; i++ {
		t := float64(i) / float64(s.Segments)
		points = append(points, surface.Point{
			X: s.Center.X + math.Sin(t*math.Pi*4+phase)*amp,
			Y: startY + (endY-startY)*t,
		})
	}
	return points
}

// BrokenCurves returns the upper and lower halves of the torn thread. The
// upper half ends gap/2 above the centre, the lower half starts gap/2 below
// it with its wave inverted.
func BrokenCurves(s Shape, phase, gap float64) (upper, lower []surface.Point) {
	half := s.Segments / 2
	amp := s.amplitude() * brokenAmplitude

	startY := s.Center.Y - brokenHalfHeight
	breakY := s.Center.Y - gap/2
	resumeY := s.Center.Y + gap/2
	endY := s.Center.Y + brokenHalfHeight

	upper = make([]surface.Point, 0, half+1)
	lower = make([]surface.Point, 0, half+1)
	for i := 0; i <= half; i++ {
		t := float64(i) / float64(half)
		upper = append(upper, surface.Point{
			X: s.Center.X + math.Sin(t*math.Pi*2+phase)*amp,
			Y: startY + (breakY-startY)*t,
		})
		lower = append(lower, surface.Point{
			X: s.Center.X + math.Sin(t*math.Pi*2+phase+math.Pi)*amp,
			Y: resumeY + (endY-resumeY)*t,
		})
	}
	return upper, lower
}

// ReconnectedCurve is the full thread with its amplitude pressed down
// around the midpoint in proportion to heal.
func ReconnectedCurve(s Shape, phase, heal float64) []surface.Point {
	startY := s.Center.Y - reconnectedHalfHeight
	endY := s.Center.Y + reconnectedHalfHeight
	amp := s.amplitude()

	points := make([]surface.Point, 0, s.Segments+1)
	for i := 0; i <= s.Segments; i++ {
		t := float64(i) / float64(s.Segments)
		points = append(points, surface.Point{
			X: s.Center.X + math.Sin(t*math.Pi*4+phase)*amp*(1-healEffect(t, heal)*0.5),
			Y: startY + (endY-startY)*t,
		})
	}
	return points
}

// healEffect weights heal linearly by closeness to the midpoint.
func healEffect(t, heal float64) float64 {
	d := math.Abs(t - 0.5)
	if d >= healWindow {
		return 0
	}
	return (1 - d/healWindow) * heal
}

// SmoothPath joins points with quadratic curves through the midpoints of
// consecutive points, ending with a straight segment to the last point.
func SmoothPath(points []surface.Point) *surface.Path {
	p := &surface.Path{}
	if len(points) < 2 {
		return p
	}
	p.MoveTo(points[0])
	for i := 1; i < len(points)-1; i++ {
		p.QuadTo(points[i], points[i].Midpoint(points[i+1]))
	}
	p.LineTo(points[len(points)-1])
	return p
}
