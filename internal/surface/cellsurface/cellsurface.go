// Package cellsurface implements surface.Surface on a tcell screen. Pixel
// coordinates are mapped onto terminal cells of CellWidth x CellHeight.
package cellsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/redthread/internal/surface"
	"github.com/iburimskiy/redthread/internal/vmath"
)

const (
	CellWidth  = 8
	CellHeight = 16

	quadSteps = 6
	glowRune  = '░'
	dotRune   = '•'
	blobRune  = '●'
	fillRune  = '█'
)

type cell struct {
	ch     rune
	fg, bg colorful.Color
	inked  bool // covered by a stroke or fill, not just glow
}

type Surface struct {
	screen     tcell.Screen
	bg         colorful.Color
	cols, rows int
	cells      []cell

	alpha     float64
	glowBlur  float64
	glowColor colorful.Color
}

func New(screen tcell.Screen, background colorful.Color) *Surface {
	s := &Surface{screen: screen, bg: background, alpha: 1}
	s.resize()
	return s
}

// PixelSize reports the screen size in surface pixels.
func (s *Surface) PixelSize() (int, int) {
	cols, rows := s.screen.Size()
	return cols * CellWidth, rows * CellHeight
}

func (s *Surface) resize() {
	s.cols, s.rows = s.screen.Size()
	if n := s.cols * s.rows; cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]cell, n)
	}
}

// Clear picks up the current screen size and wipes every cell.
func (s *Surface) Clear() {
	s.resize()
	s.alpha = 1
	s.glowBlur = 0
	for i := range s.cells {
		s.cells[i] = cell{ch: ' ', fg: s.bg, bg: s.bg}
	}
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			s.flush(x, y)
		}
	}
}

func (s *Surface) at(cx, cy int) *cell {
	if cx < 0 || cy < 0 || cx >= s.cols || cy >= s.rows {
		return nil
	}
	return &s.cells[cy*s.cols+cx]
}

func (s *Surface) flush(cx, cy int) {
	c := s.at(cx, cy)
	if c == nil {
		return
	}
	st := tcell.StyleDefault.Foreground(toTcell(c.fg)).Background(toTcell(c.bg))
	s.screen.SetContent(cx, cy, c.ch, nil, st)
}

// ink draws ch into the cell under pixel pt.
func (s *Surface) ink(pt surface.Point, ch rune, col colorful.Color, a float64) {
	cx, cy := cellOf(pt)
	c := s.at(cx, cy)
	if c == nil || a <= 0 {
		return
	}
	c.ch = ch
	c.fg = c.bg.BlendRgb(col, vmath.Clamp01(a))
	c.inked = true
	s.flush(cx, cy)
}

// glow tints the cells around pixel pt that nothing has inked yet.
func (s *Surface) glow(pt surface.Point) {
	if s.glowBlur <= 0 {
		return
	}
	reach := int(math.Ceil(s.glowBlur / CellWidth))
	cx, cy := cellOf(pt)
	for dy := -1; dy <= 1; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			c := s.at(cx+dx, cy+dy)
			if c == nil || c.inked {
				continue
			}
			c.ch = glowRune
			c.fg = c.bg.BlendRgb(s.glowColor, vmath.Clamp01(0.5*s.alpha))
			s.flush(cx+dx, cy+dy)
		}
	}
}

func (s *Surface) StrokePath(p *surface.Path, st surface.Stroke) {
	pts := p.Flatten(quadSteps)
	if len(pts) < 2 {
		return
	}
	ch := dotRune
	if st.Width >= 4 {
		ch = blobRune
	}
	walk(pts, func(pt surface.Point) { s.glow(pt) })
	walk(pts, func(pt surface.Point) { s.ink(pt, ch, st.Color, s.alpha) })
}

// walk visits points along the polyline at half-cell spacing.
func walk(pts []surface.Point, fn func(surface.Point)) {
	const step = CellWidth / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		n := int(math.Ceil(math.Hypot(b.X-a.X, b.Y-a.Y) / step))
		if n < 1 {
			n = 1
		}
		for k := 0; k <= n; k++ {
			t := float64(k) / float64(n)
			fn(surface.Point{X: vmath.Lerp(a.X, b.X, t), Y: vmath.Lerp(a.Y, b.Y, t)})
		}
	}
}

func (s *Surface) FillCircle(center surface.Point, radius float64, col colorful.Color) {
	if radius <= 0 {
		return
	}
	s.glow(center)
	if radius < CellWidth/2 {
		ch := dotRune
		if radius >= 2 {
			ch = blobRune
		}
		s.ink(center, ch, col, s.alpha)
		return
	}
	s.eachCell(center, radius, func(c *cell, _ float64) {
		c.ch = fillRune
		c.fg = c.bg.BlendRgb(col, s.alpha)
		c.inked = true
	})
}

func (s *Surface) FillRadialGradient(center surface.Point, radius float64, stops []surface.Stop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	s.eachCell(center, radius, func(c *cell, t float64) {
		col, a := sample(stops, t)
		c.bg = c.bg.BlendRgb(col, vmath.Clamp01(a*s.alpha))
		if !c.inked {
			c.fg = c.bg
		}
	})
}

// eachCell calls fn for every cell whose centre lies within radius of
// center, passing the normalized distance.
func (s *Surface) eachCell(center surface.Point, radius float64, fn func(c *cell, t float64)) {
	x0, y0 := cellOf(surface.Point{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := cellOf(surface.Point{X: center.X + radius, Y: center.Y + radius})
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			c := s.at(cx, cy)
			if c == nil {
				continue
			}
			px := (float64(cx) + 0.5) * CellWidth
			py := (float64(cy) + 0.5) * CellHeight
			d := math.Hypot(px-center.X, py-center.Y)
			if d > radius {
				continue
			}
			fn(c, d/radius)
			s.flush(cx, cy)
		}
	}
}

// sample interpolates the stop list at t.
func sample(stops []surface.Stop, t float64) (colorful.Color, float64) {
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color, b.Alpha
			}
			k := (t - a.Offset) / span
			return a.Color.BlendRgb(b.Color, k), vmath.Lerp(a.Alpha, b.Alpha, k)
		}
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}

func (s *Surface) SetGlow(blur float64, c colorful.Color) {
	s.glowBlur = blur
	s.glowColor = c
}

func (s *Surface) SetAlpha(a float64) {
	s.alpha = vmath.Clamp01(a)
}

func (s *Surface) Text(at surface.Point, str string, col colorful.Color) {
	if s.alpha <= 0 {
		return
	}
	cx, cy := cellOf(at)
	for i, r := range []rune(str) {
		c := s.at(cx+i, cy)
		if c == nil {
			continue
		}
		c.ch = r
		c.fg = c.bg.BlendRgb(col, s.alpha)
		c.inked = true
		s.flush(cx+i, cy)
	}
}

func cellOf(pt surface.Point) (int, int) {
	return int(math.Floor(pt.X / CellWidth)), int(math.Floor(pt.Y / CellHeight))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var _ surface.Surface = (*Surface)(nil)
