package surface

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestPolyline(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	p := Polyline(pts)

	if p.Len() != 3 {
		t.Fatalf("Expected 3 commands, got %d", p.Len())
	}
	if p.Segments()[0].Kind != Move {
		t.Errorf("Expected path to start with a move")
	}
	if p.Quads() != 0 {
		t.Errorf("Expected no quads in a polyline, got %d", p.Quads())
	}
	start, _ := p.Start()
	end, _ := p.End()
	if start != pts[0] || end != pts[2] {
		t.Errorf("Expected %v..%v, got %v..%v", pts[0], pts[2], start, end)
	}
}

func TestEmptyPathEnds(t *testing.T) {
	var p Path
	if _, ok := p.Start(); ok {
		t.Error("Expected no start on empty path")
	}
	if _, ok := p.End(); ok {
		t.Error("Expected no end on empty path")
	}
	if pts := p.Flatten(4); len(pts) != 0 {
		t.Errorf("Expected empty flatten, got %d points", len(pts))
	}
}

func TestFlattenQuad(t *testing.T) {
	var p Path
	p.MoveTo(Point{0, 0})
	p.QuadTo(Point{5, 10}, Point{10, 0})

	pts := p.Flatten(2)
	if len(pts) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(pts))
	}
	// B(0.5) = 0.25*P0 + 0.5*C + 0.25*P1
	mid := pts[1]
	if math.Abs(mid.X-5) > 1e-9 || math.Abs(mid.Y-5) > 1e-9 {
		t.Errorf("Expected quad midpoint (5,5), got %v", mid)
	}
	if pts[2] != (Point{10, 0}) {
		t.Errorf("Expected flatten to end on the quad endpoint, got %v", pts[2])
	}
}

func TestMidpoint(t *testing.T) {
	got := Point{2, 4}.Midpoint(Point{4, 8})
	if got != (Point{3, 6}) {
		t.Errorf("Expected (3,6), got %v", got)
	}
}

func TestRecorderCapturesDrawingState(t *testing.T) {
	gold := colorful.Color{R: 1, G: 0.84}
	r := NewRecorder()

	r.Clear()
	r.SetGlow(10, gold)
	r.SetAlpha(0.4)
	r.FillCircle(Point{1, 2}, 3, gold)
	r.SetGlow(0, colorful.Color{})
	r.SetAlpha(1)
	r.StrokePath(Polyline([]Point{{0, 0}, {1, 1}}), Stroke{Width: 2})

	if len(r.Ops) != 3 {
		t.Fatalf("Expected 3 ops, got %d", len(r.Ops))
	}
	circle := r.Filter(OpCircle)[0]
	if circle.Alpha != 0.4 || circle.GlowBlur != 10 {
		t.Errorf("Expected circle under alpha 0.4 blur 10, got alpha %v blur %v", circle.Alpha, circle.GlowBlur)
	}
	stroke := r.Filter(OpStroke)[0]
	if stroke.Alpha != 1 || stroke.GlowBlur != 0 {
		t.Errorf("Expected stroke under reset state, got alpha %v blur %v", stroke.Alpha, stroke.GlowBlur)
	}

	r.reset()
	if len(r.Ops) != 0 {
		t.Errorf("Expected no ops after reset, got %d", len(r.Ops))
	}
}
