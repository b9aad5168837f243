// Package page lays out the scrolling document around the thread and
// animates its sections as they come into view.
package page

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/surface"
	"github.com/iburimskiy/redthread/internal/visibility"
)

type Kind int

const (
	Hero Kind = iota
	Step
	Specialty
	Offering
	Testimonial
	Connector
	Case
	Stat
)

const (
	revealOffset        = 30
	revealDuration      = 600 * time.Millisecond
	testimonialDelay    = 100 * time.Millisecond
	testimonialDuration = 800 * time.Millisecond
	caseStagger         = 100 * time.Millisecond

	stepThreshold        = 0.1
	stepBottomMargin     = 100
	testimonialThreshold = 0.2
	caseThreshold        = 0.1
	statThreshold        = 0.5

	successRate     = 87
	counterDuration = 2 * time.Second
	counterTick     = 16 * time.Millisecond

	tiltDivisor = 30
	tiltLift    = 5

	connectorDot = 4
	labelInset   = 8

	steps        = 3
	offerings    = 3
	testimonials = 3
	cases        = 4
)

// Item is one laid-out block of the document, in document pixels.
type Item struct {
	Kind       Kind
	Label      string
	X, Y, W, H float64
	// Reveal is nil for blocks that are always shown.
	Reveal *Reveal
}

func (it *Item) Bounds() visibility.Rect {
	return visibility.Rect{Top: it.Y, Height: it.H}
}

func (it *Item) Contains(x, y float64) bool {
	return x >= it.X && x <= it.X+it.W && y >= it.Y && y <= it.Y+it.H
}

// Tilt is the hover transform of a case card, in degrees and pixels.
type Tilt struct {
	RotateX, RotateY, Lift float64
}

// TiltFor computes the tilt of it for a pointer at (x, y).
func TiltFor(it *Item, x, y float64) Tilt {
	lx, ly := x-it.X, y-it.Y
	return Tilt{
		RotateX: (ly - it.H/2) / tiltDivisor,
		RotateY: (it.W/2 - lx) / tiltDivisor,
		Lift:    tiltLift,
	}
}

// ConnectorScale is the pulse scale of a connector whose top sits at top
// pixels from the viewport top. ok is false when it is off screen.
func ConnectorScale(top, height, viewportHeight float64) (scale float64, ok bool) {
	if viewportHeight <= 0 || top >= viewportHeight || top+height <= 0 {
		return 0, false
	}
	return 0.8 + (1-top/viewportHeight)*0.4, true
}

// Page is the virtual document the thread is drawn over.
type Page struct {
	outline colorful.Color
	label   colorful.Color
	pages   float64

	reg     *visibility.Registry
	items   []*Item
	counter *Counter

	caseBatch int
	hovered   *Item
	tilt      Tilt
	mobile    bool
}

func New(cfg config.Config) *Page {
	p := &Page{
		outline: cfg.Thread.Color.Color,
		label:   cfg.Thread.GlowColor.Color,
		pages:   float64(cfg.Document.Pages),
		reg:     visibility.NewRegistry(),
		counter: &Counter{
			From:     0,
			To:       successRate,
			Duration: counterDuration,
			Tick:     counterTick,
			Suffix:   "%",
		},
	}
	p.build()
	return p
}

func (p *Page) add(kind Kind, label string, r *Reveal) *Item {
	it := &Item{Kind: kind, Label: label, Reveal: r}
	p.items = append(p.items, it)
	return it
}

func (p *Page) build() {
	p.add(Hero, "The red thread", nil)

	stepOpts := visibility.Options{Threshold: stepThreshold, BottomMargin: stepBottomMargin}
	for i := 0; i < steps; i++ {
		it := p.add(Step, fmt.Sprintf("Step %d", i+1), &Reveal{Duration: revealDuration, Offset: revealOffset})
		p.reg.Observe(it, stepOpts, it.Reveal.Trigger)
	}

	p.add(Specialty, "Specialty", nil)
	for i := 0; i < offerings; i++ {
		it := p.add(Offering, fmt.Sprintf("Offering %d", i+1), &Reveal{Duration: revealDuration, Offset: revealOffset})
		p.reg.Observe(it, stepOpts, it.Reveal.Trigger)
	}

	for i := 0; i < testimonials; i++ {
		it := p.add(Testimonial, fmt.Sprintf("Testimonial %d", i+1), &Reveal{
			Delay:    testimonialDelay,
			Duration: testimonialDuration,
			Offset:   revealOffset,
		})
		p.reg.Observe(it, visibility.Options{Threshold: testimonialThreshold}, it.Reveal.Trigger)
		if i < testimonials-1 {
			p.add(Connector, "", nil)
		}
	}

	for i := 0; i < cases; i++ {
		it := p.add(Case, fmt.Sprintf("Case %d", i+1), &Reveal{Duration: revealDuration, Offset: revealOffset})
		p.reg.Observe(it, visibility.Options{Threshold: caseThreshold}, func(now time.Time) {
			// Cards seen in the same update are staggered by their order
			// in that batch.
			it.Reveal.Delay = time.Duration(p.caseBatch) * caseStagger
			p.caseBatch++
			it.Reveal.Trigger(now)
		})
	}

	stat := p.add(Stat, "Success rate", &Reveal{Duration: revealDuration, Offset: revealOffset})
	p.reg.Observe(stat, stepOpts, stat.Reveal.Trigger)
	p.reg.Observe(stat, visibility.Options{Threshold: statThreshold}, p.counter.Start)
}

// Layout positions every block for a viewport of width x viewportHeight.
// The document is pages viewports tall; blocks keep their relative place
// when the viewport changes.
func (p *Page) Layout(width, viewportHeight float64, mobile bool) {
	p.mobile = mobile
	if mobile {
		p.Leave()
	}
	u := p.pages * viewportHeight / 8
	margin := width * 0.08
	cw := width - 2*margin
	gap := width * 0.03

	var step, off, test, conn, cs int
	for _, it := range p.items {
		switch it.Kind {
		case Hero:
			it.X, it.Y, it.W, it.H = margin, 0.2*u, cw, 0.6*u
		case Step:
			colW := (cw - 2*gap) / steps
			it.X, it.Y, it.W, it.H = margin+float64(step)*(colW+gap), 1.3*u, colW, 0.35*u
			step++
		case Specialty:
			it.X, it.Y, it.W, it.H = margin, 2.2*u, cw, 0.8*u
		case Offering:
			// cards inside the specialty block
			inner := cw - 2*gap
			colW := (inner - 2*gap) / offerings
			it.X, it.Y, it.W, it.H = margin+gap+float64(off)*(colW+gap), 2.45*u, colW, 0.45*u
			off++
		case Testimonial:
			it.X, it.Y, it.W, it.H = width*0.2, 3.3*u+float64(test)*0.5*u, width*0.6, 0.3*u
			test++
		case Connector:
			it.X, it.Y, it.W, it.H = width/2, 3.6*u+float64(conn)*0.5*u, 0, 0.2*u
			conn++
		case Case:
			colW := (cw - gap) / 2
			row, col := cs/2, cs%2
			it.X, it.Y, it.W, it.H = margin+float64(col)*(colW+gap), 4.9*u+float64(row)*0.45*u, colW, 0.4*u
			cs++
		case Stat:
			it.X, it.Y, it.W, it.H = width*0.3, 6.1*u, width*0.4, 0.3*u
		}
	}
}

func (p *Page) Items() []*Item { return p.items }

// Find returns the blocks of one kind in document order.
func (p *Page) Find(kind Kind) []*Item {
	var out []*Item
	for _, it := range p.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

func (p *Page) Counter() *Counter { return p.counter }

// Pending reports visibility registrations that have not fired yet.
func (p *Page) Pending() int { return p.reg.Len() }

// Update runs the visibility checks for the viewport at scrollY.
func (p *Page) Update(scrollY, viewportHeight float64, now time.Time) int {
	p.caseBatch = 0
	return p.reg.Update(scrollY, viewportHeight, now)
}

// Hover tilts the case card under the pointer, given in document pixels.
// Tilt is desktop only.
func (p *Page) Hover(x, y float64) {
	if p.mobile {
		return
	}
	for _, it := range p.items {
		if it.Kind == Case && it.Contains(x, y) {
			p.hovered = it
			p.tilt = TiltFor(it, x, y)
			return
		}
	}
	p.Leave()
}

// Leave resets the tilt.
func (p *Page) Leave() {
	p.hovered = nil
	p.tilt = Tilt{}
}

// Hovered returns the tilted card, if any.
func (p *Page) Hovered() (*Item, Tilt) { return p.hovered, p.tilt }

// Draw renders the blocks visible in the viewport at scrollY. Tilt is
// drawn as a flat shift of the card.
func (p *Page) Draw(dst surface.Surface, scrollY, viewportHeight float64, now time.Time) {
	dst.SetGlow(0, colorful.Color{})
	for _, it := range p.items {
		x, y := it.X, it.Y-scrollY
		if y+it.H < 0 || y > viewportHeight {
			continue
		}
		opacity := 1.0
		if it.Reveal != nil {
			var off float64
			opacity, off = it.Reveal.At(now)
			y += off
		}
		if opacity <= 0 {
			continue
		}
		if it == p.hovered {
			x += p.tilt.RotateY
			y += p.tilt.RotateX - p.tilt.Lift
		}
		dst.SetAlpha(opacity)

		switch it.Kind {
		case Connector:
			scale, ok := ConnectorScale(y, it.H, viewportHeight)
			if !ok {
				continue
			}
			dst.StrokePath(surface.Polyline([]surface.Point{{X: x, Y: y}, {X: x, Y: y + it.H}}),
				surface.Stroke{Width: 1, Color: p.outline})
			dst.FillCircle(surface.Point{X: x, Y: y + it.H/2}, connectorDot*scale, p.label)
		case Stat:
			p.box(dst, x, y, it)
			dst.Text(surface.Point{X: x + labelInset, Y: y + labelInset}, it.Label, p.label)
			dst.Text(surface.Point{X: x + it.W/2, Y: y + it.H/2}, p.counter.Text(now), p.label)
		default:
			p.box(dst, x, y, it)
			dst.Text(surface.Point{X: x + labelInset, Y: y + labelInset}, it.Label, p.label)
		}
	}
	dst.SetAlpha(1)
}

func (p *Page) box(dst surface.Surface, x, y float64, it *Item) {
	dst.StrokePath(surface.Polyline([]surface.Point{
		{X: x, Y: y},
		{X: x + it.W, Y: y},
		{X: x + it.W, Y: y + it.H},
		{X: x, Y: y + it.H},
		{X: x, Y: y},
	}), surface.Stroke{Width: 1, Color: p.outline})
}
