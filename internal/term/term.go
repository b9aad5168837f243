// Package term hosts the scene in a terminal through tcell.
package term

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/redthread/internal/audio"
	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/frame"
	"github.com/iburimskiy/redthread/internal/scene"
	"github.com/iburimskiy/redthread/internal/scroll"
	"github.com/iburimskiy/redthread/internal/surface/cellsurface"
	"github.com/iburimskiy/redthread/internal/viewport"
)

const (
	tick        = 16 * time.Millisecond // ~60 FPS
	eventBuffer = 100

	helpText = "wheel/j/k scroll  PgUp/PgDn  Home/End  space auto  d debug  q quit"
)

// Host renders the scene into a tcell screen.
type Host struct {
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time
	start  time.Time

	screen tcell.Screen
	surf   *cellsurface.Surface
	scene  *scene.Context
	queue  *frame.Queue
	loop   *frame.Loop
	audio  *audio.Player

	debug bool
}

// New wraps an initialized screen. player may be nil.
func New(screen tcell.Screen, cfg config.Config, player *audio.Player, logger *log.Logger) (*Host, error) {
	h := &Host{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		screen: screen,
		surf:   cellsurface.New(screen, cfg.Document.Background.Color),
		queue:  frame.NewQueue(),
		audio:  player,
		debug:  cfg.Debug,
	}
	h.start = h.now()

	w, ht := h.surf.PixelSize()
	sc, err := scene.New(cfg, h.surf, viewport.Size{Width: w, Height: ht}, h.start, logger)
	if err != nil {
		return nil, err
	}
	h.scene = sc
	if player != nil {
		sc.OnTransition(player.OnTransition)
	}

	h.loop = frame.NewLoop(h.queue, func(now time.Time) { h.scene.Render(now) }, logger)
	if err := h.loop.Start(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	return h, nil
}

// Run drives the host until ctx is cancelled or the user quits. Events are
// read on their own goroutine and handed over a channel, so scene state is
// only touched here.
func Run(ctx context.Context, screen tcell.Screen, cfg config.Config, player *audio.Player, logger *log.Logger) error {
	h, err := New(screen, cfg, player, logger)
	if err != nil {
		return err
	}
	return h.Run(ctx)
}

func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.teardown()
			return nil
		case ev := <-events:
			if !h.Handle(ev, h.now()) {
				h.teardown()
				return nil
			}
		case <-ticker.C:
			h.Frame(h.now())
		}
	}
}

// Handle applies one terminal event. It returns false when the user asked
// to quit.
func (h *Host) Handle(ev tcell.Event, now time.Time) bool {
	step := h.cfg.Document.WheelStep
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.scene.Resize(viewport.Size{Width: cols * cellsurface.CellWidth, Height: rows * cellsurface.CellHeight}, now)
		h.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			h.scene.ScrollBy(step)
		case tcell.KeyUp:
			h.scene.ScrollBy(-step)
		case tcell.KeyPgDn:
			h.scene.Page(1)
		case tcell.KeyPgUp:
			h.scene.Page(-1)
		case tcell.KeyHome:
			h.scene.Home()
		case tcell.KeyEnd:
			h.scene.End()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'j':
				h.scene.ScrollBy(step)
			case 'k':
				h.scene.ScrollBy(-step)
			case ' ':
				h.scene.SetAutoscroll(!h.scene.Autoscroll())
			case 'd', 'D':
				h.debug = !h.debug
			}
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelUp != 0:
			h.scene.ScrollBy(-step)
		case btn&tcell.WheelDown != 0:
			h.scene.ScrollBy(step)
		case btn&tcell.Button1 != 0 && h.bar().Contains(float64(cx), float64(cy)):
			bar := h.bar()
			h.scene.ScrollToProgress(bar.ProgressAt(h.scene.Tracker(), float64(cy)+0.5))
		default:
			h.scene.Pointer(float64(cx*cellsurface.CellWidth), float64(cy*cellsurface.CellHeight))
		}
	}
	return true
}

// bar is the scrollbar in the last column, in cells.
func (h *Host) bar() scroll.Bar {
	cols, rows := h.screen.Size()
	return scroll.Bar{X: float64(cols - 1), Y: 0, W: 1, H: float64(rows), MinThumb: 1}
}

// Frame renders one host refresh and shows it.
func (h *Host) Frame(now time.Time) {
	if h.queue.Fire(now) == 0 {
		return
	}
	h.drawScrollbar()

	status := helpText
	if h.debug {
		status = h.scene.Snapshot().String()
	}
	h.drawString(0, 0, status)
	h.screen.Show()
}

func (h *Host) drawScrollbar() {
	bar := h.bar()
	top, height := bar.Thumb(h.scene.Tracker())
	col := int(bar.X)
	thumbFrom := int(math.Round(top))
	thumbTo := int(math.Round(top + height))

	r, g, b := h.cfg.Thread.Color.Clamped().RGB255()
	thumb := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	track := tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	for y := 0; y < int(bar.H); y++ {
		if y >= thumbFrom && y < max(thumbTo, thumbFrom+1) {
			h.screen.SetContent(col, y, '┃', nil, thumb)
			continue
		}
		h.screen.SetContent(col, y, '│', nil, track)
	}
}

// drawString writes a status line, one row per line of s.
func (h *Host) drawString(x, y int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	cx := x
	for _, r := range s {
		if r == '\n' {
			y++
			cx = x
			continue
		}
		h.screen.SetContent(cx, y, r, nil, style)
		cx++
	}
}

func (h *Host) teardown() {
	h.loop.Stop()
	if h.audio != nil {
		h.audio.Close()
	}
	if h.logger != nil && h.cfg.Debug {
		h.logger.Printf("terminal closed after %d frames (%d recovered)", h.loop.Frames(), h.loop.Panics())
	}
}

// Stopped reports whether teardown ran.
func (h *Host) Stopped() bool { return h.loop.Stopped() }
