// Package ebitensurface implements surface.Surface on an ebiten image.
package ebitensurface

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/redthread/internal/surface"
	"github.com/iburimskiy/redthread/internal/vmath"
)

const (
	glowPasses      = 3
	glowPassAlpha   = 0.12
	gradientSides   = 48
	debugGlyphWidth = 6
	debugLineHeight = 16
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws onto an ebiten image. The target is rebound every frame with
// Bind; before the first Bind every call is a no-op.
type Surface struct {
	target *ebiten.Image
	layer  *ebiten.Image
	bg     colorful.Color

	alpha     float64
	glowBlur  float64
	glowColor colorful.Color

	vs     []ebiten.Vertex
	is     []uint16
	labels map[string]*ebiten.Image
}

func New(background colorful.Color) *Surface {
	return &Surface{
		bg:     background,
		alpha:  1,
		labels: map[string]*ebiten.Image{},
	}
}

// Bind makes dst the drawing target and resets the drawing state.
func (e *Surface) Bind(dst *ebiten.Image) {
	e.target = dst
	e.alpha = 1
	e.glowBlur = 0
	if dst == nil {
		return
	}
	b := dst.Bounds()
	if e.layer == nil || e.layer.Bounds().Dx() != b.Dx() || e.layer.Bounds().Dy() != b.Dy() {
		if e.layer != nil {
			e.layer.Deallocate()
		}
		e.layer = ebiten.NewImage(b.Dx(), b.Dy())
	}
}

func (e *Surface) Clear() {
	if e.target == nil {
		return
	}
	e.target.Fill(toNRGBA(e.bg, 1))
}

func (e *Surface) StrokePath(p *surface.Path, s surface.Stroke) {
	if e.target == nil || p.Len() < 2 {
		return
	}
	vp := toVectorPath(p)

	if e.glowBlur > 0 {
		for i := glowPasses; i >= 1; i-- {
			w := s.Width + e.glowBlur*float64(i)/glowPasses
			e.strokeLayered(&vp, w, e.glowColor, e.alpha*glowPassAlpha)
		}
	}
	e.strokeLayered(&vp, s.Width, s.Color, e.alpha)
}

// strokeLayered renders the stroke opaque on the scratch layer and
// composites it once, so overlapping stroke triangles do not double up
// under translucency.
func (e *Surface) strokeLayered(vp *vector.Path, width float64, c colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	e.vs, e.is = vp.AppendVerticesAndIndicesForStroke(e.vs[:0], e.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	})
	if alpha >= 1 {
		e.drawSolid(e.target, c, 1)
		return
	}
	e.layer.Clear()
	e.drawSolid(e.layer, c, 1)
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(alpha))
	e.target.DrawImage(e.layer, op)
}

func (e *Surface) drawSolid(dst *ebiten.Image, c colorful.Color, alpha float64) {
	r, g, b, a := toNRGBA(c, alpha).RGBA()
	for i := range e.vs {
		e.vs[i].SrcX = 1
		e.vs[i].SrcY = 1
		e.vs[i].ColorR = float32(r) / 0xffff
		e.vs[i].ColorG = float32(g) / 0xffff
		e.vs[i].ColorB = float32(b) / 0xffff
		e.vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	dst.DrawTriangles(e.vs, e.is, whiteSubImage, op)
}

func (e *Surface) FillCircle(center surface.Point, radius float64, c colorful.Color) {
	if e.target == nil || radius <= 0 {
		return
	}
	cx, cy := float32(center.X), float32(center.Y)
	if e.glowBlur > 0 {
		for i := glowPasses; i >= 1; i-- {
			r := radius + e.glowBlur*float64(i)/(2*glowPasses)
			vector.DrawFilledCircle(e.target, cx, cy, float32(r), toNRGBA(e.glowColor, e.alpha*glowPassAlpha), true)
		}
	}
	vector.DrawFilledCircle(e.target, cx, cy, float32(radius), toNRGBA(c, e.alpha), true)
}

// FillRadialGradient draws concentric rings, one per stop, as a triangle
// mesh with per-vertex colors.
func (e *Surface) FillRadialGradient(center surface.Point, radius float64, stops []surface.Stop) {
	if e.target == nil || radius <= 0 || len(stops) == 0 {
		return
	}
	e.vs = e.vs[:0]
	e.is = e.is[:0]

	e.vs = append(e.vs, e.gradientVertex(center, stops[0]))
	prevRing := -1
	for _, st := range stops {
		if st.Offset <= 0 {
			continue
		}
		ring := len(e.vs)
		r := radius * vmath.Clamp01(st.Offset)
		for i := 0; i < gradientSides; i++ {
			a := 2 * math.Pi * float64(i) / gradientSides
			pt := surface.Point{X: center.X + math.Cos(a)*r, Y: center.Y + math.Sin(a)*r}
			e.vs = append(e.vs, e.gradientVertex(pt, st))
		}
		for i := 0; i < gradientSides; i++ {
			j := (i + 1) % gradientSides
			if prevRing < 0 {
				e.is = append(e.is, 0, uint16(ring+i), uint16(ring+j))
				continue
			}
			a0, a1 := uint16(prevRing+i), uint16(prevRing+j)
			b0, b1 := uint16(ring+i), uint16(ring+j)
			e.is = append(e.is, a0, b0, b1, a0, b1, a1)
		}
		prevRing = ring
	}
	if len(e.is) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	e.target.DrawTriangles(e.vs, e.is, whiteSubImage, op)
}

func (e *Surface) gradientVertex(pt surface.Point, st surface.Stop) ebiten.Vertex {
	a := vmath.Clamp01(st.Alpha * e.alpha)
	return ebiten.Vertex{
		DstX:   float32(pt.X),
		DstY:   float32(pt.Y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(st.Color.R * a),
		ColorG: float32(st.Color.G * a),
		ColorB: float32(st.Color.B * a),
		ColorA: float32(a),
	}
}

func (e *Surface) SetGlow(blur float64, c colorful.Color) {
	e.glowBlur = blur
	e.glowColor = c
}

func (e *Surface) SetAlpha(a float64) {
	e.alpha = vmath.Clamp01(a)
}

// Text draws with the ebitenutil debug font, tinted and faded by the
// current alpha.
func (e *Surface) Text(at surface.Point, s string, c colorful.Color) {
	if e.target == nil || s == "" || e.alpha <= 0 {
		return
	}
	img, ok := e.labels[s]
	if !ok {
		img = ebiten.NewImage(len(s)*debugGlyphWidth+2, debugLineHeight)
		ebitenutil.DebugPrint(img, s)
		e.labels[s] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(toNRGBA(c, 1))
	op.ColorScale.ScaleAlpha(float32(e.alpha))
	e.target.DrawImage(img, op)
}

func toVectorPath(p *surface.Path) vector.Path {
	var vp vector.Path
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case surface.Move:
			vp.MoveTo(float32(seg.To.X), float32(seg.To.Y))
		case surface.Line:
			vp.LineTo(float32(seg.To.X), float32(seg.To.Y))
		case surface.Quad:
			vp.QuadTo(float32(seg.Ctrl.X), float32(seg.Ctrl.Y), float32(seg.To.X), float32(seg.To.Y))
		}
	}
	return vp
}

var _ surface.Surface = (*Surface)(nil)

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(vmath.Clamp01(alpha) * 255))}
}
