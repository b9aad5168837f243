package thread

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/surface"
	"github.com/iburimskiy/redthread/internal/vmath"
)

const (
	glowBlur  = 15
	glowAlpha = 0.3
	glowWidth = 1

	tearSparks      = 5
	tearRadius      = 10
	tearPulse       = 5
	tearDotRadius   = 2
	tearCoreRadius  = 1
	tearCoreBlur    = 5
	tearOrbitRate   = 0.003 // rad per ms
	tearPulseRate   = 0.005 // rad per ms
	healWidthGain   = 2
	healGlowGain    = 2
	burstRadius     = 30
	burstOrbitDots  = 8
	burstOrbitScale = 0.7
	burstDotRadius  = 3
	burstDotBlur    = 10
	burstOrbitRate  = 0.005 // rad per ms
)

var burstOrange = colorful.Color{R: 1, G: 165.0 / 255, B: 0}

// Frame is everything the thread reads for one frame.
type Frame struct {
	Progress      float64
	Elapsed       time.Duration
	Width, Height float64
	Mobile        bool
}

// Geometry is the computed layout of one frame, shared by Draw and by
// whoever needs to inspect what was drawn.
type Geometry struct {
	State         State
	Heal          float64
	Phase         float64
	Gap           float64
	LineWidth     float64
	GlowIntensity float64
	Curves        [][]surface.Point
	TearAnchors   []surface.Point
	BurstCenter   surface.Point
	BurstRadius   float64
}

type Renderer struct {
	cfg config.Thread
}

func NewRenderer(cfg config.Thread) *Renderer {
	return &Renderer{cfg: cfg}
}

// Plan computes the frame geometry without drawing.
func (r *Renderer) Plan(f Frame) Geometry {
	shape := Shape{
		Center:    surface.Point{X: f.Width / 2, Y: f.Height / 2},
		Segments:  r.cfg.Segments,
		Amplitude: r.cfg.Amplitude,
		Mobile:    f.Mobile,
	}
	g := Geometry{
		State:         StateFor(f.Progress),
		Phase:         Phase(f.Elapsed, r.cfg.Speed),
		LineWidth:     r.cfg.Width,
		GlowIntensity: 1,
	}

	switch g.State {
	case Intact:
		g.Curves = [][]surface.Point{IntactCurve(shape, g.Phase)}
	case Broken:
		g.Gap = GapSize(g.Phase)
		upper, lower := BrokenCurves(shape, g.Phase, g.Gap)
		g.Curves = [][]surface.Point{upper, lower}
		g.TearAnchors = []surface.Point{upper[len(upper)-1], lower[0]}
	case Reconnected:
		g.Heal = HealProgress(f.Progress)
		g.LineWidth = r.cfg.Width + g.Heal*healWidthGain
		g.GlowIntensity = 1 + g.Heal*healGlowGain
		pts := ReconnectedCurve(shape, g.Phase, g.Heal)
		g.Curves = [][]surface.Point{pts}
		if g.Heal > 0 {
			g.BurstCenter = pts[len(pts)/2]
			g.BurstRadius = burstRadius * g.Heal
		}
	}
	return g
}

// Draw renders the thread for f and returns the geometry it drew. The
// caller clears the surface beforehand.
func (r *Renderer) Draw(dst surface.Surface, f Frame) Geometry {
	g := r.Plan(f)
	ms := float64(f.Elapsed.Milliseconds())

	for _, pts := range g.Curves {
		r.strokeThread(dst, pts, g.LineWidth)
	}
	switch g.State {
	case Intact, Reconnected:
		r.drawGlow(dst, g.Curves[0], g.GlowIntensity)
	case Broken:
		for _, anchor := range g.TearAnchors {
			r.drawTear(dst, anchor, ms)
		}
	}
	if g.BurstRadius > 0 {
		r.drawBurst(dst, g.BurstCenter, g.Heal, ms)
	}
	return g
}

func (r *Renderer) strokeThread(dst surface.Surface, pts []surface.Point, width float64) {
	if len(pts) < 2 {
		return
	}
	dst.SetGlow(0, colorful.Color{})
	dst.SetAlpha(1)
	dst.StrokePath(SmoothPath(pts), surface.Stroke{Width: width, Color: r.cfg.Color.Color})
}

func (r *Renderer) drawGlow(dst surface.Surface, pts []surface.Point, intensity float64) {
	if len(pts) < 2 {
		return
	}
	glow := r.cfg.GlowColor.Color
	dst.SetGlow(glowBlur*intensity, glow)
	dst.SetAlpha(vmath.Clamp01(glowAlpha * intensity))
	dst.StrokePath(surface.Polyline(pts), surface.Stroke{Width: glowWidth, Color: glow})
	dst.SetGlow(0, colorful.Color{})
	dst.SetAlpha(1)
}

// TearSparks returns the spark positions orbiting a torn end.
func TearSparks(anchor surface.Point, ms float64) []surface.Point {
	out := make([]surface.Point, 0, tearSparks)
	for i := 0; i < tearSparks; i++ {
		angle := 2*math.Pi*float64(i)/tearSparks + ms*tearOrbitRate
		radius := tearRadius + math.Sin(ms*tearPulseRate+float64(i))*tearPulse
		out = append(out, surface.Point{
			X: anchor.X + math.Cos(angle)*radius,
			Y: anchor.Y + math.Sin(angle)*radius,
		})
	}
	return out
}

func (r *Renderer) drawTear(dst surface.Surface, anchor surface.Point, ms float64) {
	for _, sp := range TearSparks(anchor, ms) {
		dst.SetGlow(0, colorful.Color{})
		dst.FillCircle(sp, tearDotRadius, r.cfg.Color.Color)

		dst.SetGlow(tearCoreBlur, r.cfg.GlowColor.Color)
		dst.FillCircle(sp, tearCoreRadius, r.cfg.GlowColor.Color)
	}
	dst.SetGlow(0, colorful.Color{})
}

// BurstOrbit returns the glow particles circling the healing point.
func BurstOrbit(center surface.Point, radius, ms float64) []surface.Point {
	out := make([]surface.Point, 0, burstOrbitDots)
	r := radius * burstOrbitScale
	for i := 0; i < burstOrbitDots; i++ {
		angle := 2*math.Pi*float64(i)/burstOrbitDots + ms*burstOrbitRate
		out = append(out, surface.Point{
			X: center.X + math.Cos(angle)*r,
			Y: center.Y + math.Sin(angle)*r,
		})
	}
	return out
}

func (r *Renderer) drawBurst(dst surface.Surface, center surface.Point, heal, ms float64) {
	gold := r.cfg.GlowColor.Color
	radius := burstRadius * heal

	dst.FillRadialGradient(center, radius, []surface.Stop{
		{Offset: 0, Color: gold, Alpha: 0.6 * heal},
		{Offset: 0.5, Color: burstOrange, Alpha: 0.3 * heal},
		{Offset: 1, Color: gold, Alpha: 0},
	})

	dst.SetGlow(burstDotBlur, gold)
	for _, pt := range BurstOrbit(center, radius, ms) {
		dst.FillCircle(pt, burstDotRadius, gold)
	}
	dst.SetGlow(0, colorful.Color{})
}
