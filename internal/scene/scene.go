// Package scene holds the render context: everything one frame reads and
// writes, owned by the host loop and passed explicitly to each step.
package scene

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/frame"
	"github.com/iburimskiy/redthread/internal/page"
	"github.com/iburimskiy/redthread/internal/particle"
	"github.com/iburimskiy/redthread/internal/scroll"
	"github.com/iburimskiy/redthread/internal/surface"
	"github.com/iburimskiy/redthread/internal/thread"
	"github.com/iburimskiy/redthread/internal/viewport"
)

var ErrNoSurface = errors.New("scene: no render surface")

// TransitionFunc is called when the thread changes state between frames.
type TransitionFunc func(from, to thread.State)

// Context is the render context of one window or terminal.
type Context struct {
	cfg    config.Config
	dst    surface.Surface
	logger *log.Logger

	tracker *scroll.Tracker
	view    *viewport.Handler
	field   *particle.Field
	thread  *thread.Renderer
	page    *page.Page
	rng     *rand.Rand
	clock   *frame.Clock

	autoscroll  bool
	geom        thread.Geometry
	state       thread.State
	rendered    bool
	transitions []TransitionFunc
}

// New builds the context for a surface of the given size. It fails when
// dst is nil so the host never starts a loop without somewhere to draw.
func New(cfg config.Config, dst surface.Surface, size viewport.Size, start time.Time, logger *log.Logger) (*Context, error) {
	if dst == nil {
		return nil, ErrNoSurface
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}
	c := &Context{
		cfg:        cfg,
		dst:        dst,
		logger:     logger,
		tracker:    scroll.NewTracker(float64(cfg.Document.Pages), float64(size.Height)),
		view:       viewport.NewHandler(cfg.Breakpoints, cfg.Document.ResizeDebounce.Duration, logger, cfg.Debug),
		field:      particle.NewField(cfg.Particles),
		thread:     thread.NewRenderer(cfg.Thread),
		page:       page.New(cfg),
		rng:        rand.New(rand.NewSource(seed)),
		clock:      frame.NewClock(start),
		autoscroll: cfg.Autoscroll,
	}
	c.view.OnResize(c.resized)
	c.view.Apply(size)
	return c, nil
}

func (c *Context) resized(s viewport.Size, mobile bool) {
	w, h := float64(s.Width), float64(s.Height)
	c.tracker.SetViewport(h)
	c.field.Reset(w, h, c.rng)
	c.page.Layout(w, h, mobile)
}

// OnTransition registers fn for thread state changes.
func (c *Context) OnTransition(fn TransitionFunc) {
	c.transitions = append(c.transitions, fn)
}

// Render draws one frame: clear, thread, particles while reconnected, then
// the page. Pending resizes and autoscroll are applied first.
func (c *Context) Render(now time.Time) thread.Geometry {
	c.view.Poll(now)
	if c.autoscroll {
		c.tracker.ScrollBy(c.cfg.Document.AutoscrollSpeed)
		if c.tracker.AtEnd() {
			c.autoscroll = false
		}
	}

	size := c.view.Size()
	w, h := float64(size.Width), float64(size.Height)
	scrollY := c.tracker.ScrollY()
	c.page.Update(scrollY, h, now)

	c.dst.Clear()
	g := c.thread.Draw(c.dst, thread.Frame{
		Progress: c.tracker.Progress(),
		Elapsed:  c.clock.Elapsed(now),
		Width:    w,
		Height:   h,
		Mobile:   c.view.Mobile(),
	})
	if g.State == thread.Reconnected {
		c.field.Update(c.dst)
	}
	c.page.Draw(c.dst, scrollY, h, now)

	c.transition(g.State)
	c.geom = g
	return g
}

func (c *Context) transition(to thread.State) {
	from := c.state
	c.state = to
	if !c.rendered {
		c.rendered = true
		return
	}
	if from == to {
		return
	}
	if c.cfg.Debug && c.logger != nil {
		c.logger.Printf("thread %s -> %s at progress %.3f", from, to, c.tracker.Progress())
	}
	for _, fn := range c.transitions {
		fn(from, to)
	}
}

func (c *Context) ScrollBy(dy float64) { c.tracker.ScrollBy(dy) }

func (c *Context) ScrollTo(y float64) { c.tracker.ScrollTo(y) }

func (c *Context) ScrollToProgress(p float64) { c.tracker.ScrollToProgress(p) }

func (c *Context) Home() { c.tracker.Home() }

func (c *Context) End() { c.tracker.End() }

// Page scrolls one viewport up (dir < 0) or down.
func (c *Context) Page(dir int) {
	step := c.tracker.ViewportHeight() * 0.9
	if dir < 0 {
		step = -step
	}
	c.tracker.ScrollBy(step)
}

// Resize reports a new host size; it is applied after the quiet window.
func (c *Context) Resize(s viewport.Size, now time.Time) {
	c.view.Notify(s, now)
}

// Pointer moves the hover pointer, in viewport pixels.
func (c *Context) Pointer(x, y float64) {
	c.page.Hover(x, y+c.tracker.ScrollY())
}

func (c *Context) PointerLeave() { c.page.Leave() }

func (c *Context) SetAutoscroll(on bool) { c.autoscroll = on }

func (c *Context) Autoscroll() bool { return c.autoscroll }

func (c *Context) Tracker() *scroll.Tracker { return c.tracker }

func (c *Context) Viewport() *viewport.Handler { return c.view }

func (c *Context) Field() *particle.Field { return c.field }

func (c *Context) Document() *page.Page { return c.page }

// Geometry returns what the last frame drew.
func (c *Context) Geometry() thread.Geometry { return c.geom }
