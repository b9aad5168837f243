// Package surface defines the 2D drawing primitives the renderers need and
// the backends that provide them.
package surface

import (
	"github.com/lucasb-eyer/go-colorful"
)

type Point struct {
	X, Y float64
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

type SegmentKind uint8

const (
	Move SegmentKind = iota
	Line
	Quad
)

// Segment is one path command. Ctrl is only meaningful for Quad.
type Segment struct {
	Kind SegmentKind
	Ctrl Point
	To   Point
}

// Path is a backend-neutral open path of lines and quadratic curves.
type Path struct {
	ops []Segment
}

func (p *Path) MoveTo(pt Point) {
	p.ops = append(p.ops, Segment{Kind: Move, To: pt})
}

func (p *Path) LineTo(pt Point) {
	p.ops = append(p.ops, Segment{Kind: Line, To: pt})
}

func (p *Path) QuadTo(ctrl, to Point) {
	p.ops = append(p.ops, Segment{Kind: Quad, Ctrl: ctrl, To: to})
}

// Segments returns the path commands in order. The slice must not be
// modified.
func (p *Path) Segments() []Segment { return p.ops }

// Len returns the number of path commands.
func (p *Path) Len() int { return len(p.ops) }

// Quads returns the number of quadratic segments.
func (p *Path) Quads() int {
	n := 0
	for _, op := range p.ops {
		if op.Kind == Quad {
			n++
		}
	}
	return n
}

// Start returns the first point of the path.
func (p *Path) Start() (Point, bool) {
	if len(p.ops) == 0 {
		return Point{}, false
	}
	return p.ops[0].To, true
}

// End returns the last point of the path.
func (p *Path) End() (Point, bool) {
	if len(p.ops) == 0 {
		return Point{}, false
	}
	return p.ops[len(p.ops)-1].To, true
}

// Flatten approximates the path by a polyline, splitting each quadratic
// segment into steps straight pieces.
func (p *Path) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	var out []Point
	var cur Point
	for _, op := range p.ops {
		switch op.Kind {
		case Move, Line:
			out = append(out, op.To)
		case Quad:
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				u := 1 - t
				out = append(out, Point{
					X: u*u*cur.X + 2*u*t*op.Ctrl.X + t*t*op.To.X,
					Y: u*u*cur.Y + 2*u*t*op.Ctrl.Y + t*t*op.To.Y,
				})
			}
		}
		cur = op.To
	}
	return out
}

// Polyline builds a path joining points with straight segments.
func Polyline(points []Point) *Path {
	p := &Path{}
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(pt)
			continue
		}
		p.LineTo(pt)
	}
	return p
}

// Stroke describes how a path is stroked. Caps and joins are always round.
type Stroke struct {
	Width float64
	Color colorful.Color
}

// Stop is one color stop of a radial gradient.
type Stop struct {
	Offset float64 // [0,1] from centre to rim
	Color  colorful.Color
	Alpha  float64
}

// Surface is a 2D drawable sized to the viewport. Glow and alpha are
// drawing state, like a canvas context: they apply to every subsequent
// stroke and fill until changed.
type Surface interface {
	// Clear wipes the whole surface to its background.
	Clear()
	StrokePath(p *Path, s Stroke)
	FillCircle(center Point, radius float64, c colorful.Color)
	FillRadialGradient(center Point, radius float64, stops []Stop)
	// SetGlow sets a blur radius and color drawn around subsequent shapes.
	// A blur of 0 disables the glow.
	SetGlow(blur float64, c colorful.Color)
	// SetAlpha sets the global opacity in [0,1].
	SetAlpha(a float64)
	Text(at Point, s string, c colorful.Color)
}
