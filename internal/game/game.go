// Package game hosts the scene in an ebiten window.
package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/redthread/internal/audio"
	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/frame"
	"github.com/iburimskiy/redthread/internal/scene"
	"github.com/iburimskiy/redthread/internal/scroll"
	"github.com/iburimskiy/redthread/internal/surface/ebitensurface"
	"github.com/iburimskiy/redthread/internal/viewport"
)

const (
	barWidth    = 6
	barMargin   = 8
	barMinThumb = 24

	arrowStepDivisor = 4
	seekThreshold    = 0.01

	helpText = "Wheel/arrows scroll  PgUp/PgDn  Home/End  Space autoscroll  D debug  Esc/Q quit"
)

type Game struct {
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time
	start  time.Time

	scene *scene.Context
	surf  *ebitensurface.Surface
	queue *frame.Queue
	loop  *frame.Loop
	audio *audio.Player

	width, height int

	// input edge detection
	prevKey map[ebiten.Key]bool

	// scrollbar state
	barHovered  bool
	barDragging bool

	debug bool
}

// New builds the window host and starts its frame loop. player may be nil.
func New(cfg config.Config, player *audio.Player, logger *log.Logger) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		surf:    ebitensurface.New(cfg.Document.Background.Color),
		queue:   frame.NewQueue(),
		audio:   player,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
		prevKey: map[ebiten.Key]bool{},
		debug:   cfg.Debug,
	}
	g.start = g.now()

	sc, err := scene.New(cfg, g.surf, viewport.Size{Width: g.width, Height: g.height}, g.start, logger)
	if err != nil {
		return nil, err
	}
	g.scene = sc
	if player != nil {
		sc.OnTransition(player.OnTransition)
	}

	g.loop = frame.NewLoop(g.queue, func(now time.Time) { g.scene.Render(now) }, logger)
	if err := g.loop.Start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.loop.Stopped() {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		g.teardown()
		return ebiten.Termination
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.teardown()
		return ebiten.Termination
	}

	step := g.cfg.Document.WheelStep
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scene.ScrollBy(-dy * step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.scene.ScrollBy(step / arrowStepDivisor)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.scene.ScrollBy(-step / arrowStepDivisor)
	}
	if justPressed(ebiten.KeyPageDown) {
		g.scene.Page(1)
	}
	if justPressed(ebiten.KeyPageUp) {
		g.scene.Page(-1)
	}
	if justPressed(ebiten.KeyHome) {
		g.scene.Home()
	}
	if justPressed(ebiten.KeyEnd) {
		g.scene.End()
	}
	if justPressed(ebiten.KeySpace) {
		g.scene.SetAutoscroll(!g.scene.Autoscroll())
	}
	if justPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	g.updatePointer()
	return nil
}

func (g *Game) bar() scroll.Bar {
	return scroll.Bar{
		X:        float64(g.width - barWidth - barMargin),
		Y:        barMargin,
		W:        barWidth,
		H:        float64(g.height - 2*barMargin),
		MinThumb: barMinThumb,
	}
}

func (g *Game) updatePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	bar := g.bar()
	tr := g.scene.Tracker()

	// Grow the hit area so the thin track is easy to grab.
	hit := bar
	hit.X -= barMargin
	hit.W += 2 * barMargin
	g.barHovered = hit.Contains(x, y)

	if g.barHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.barDragging = true
		g.scene.ScrollToProgress(bar.ProgressAt(tr, y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.barDragging = false
	}
	if g.barDragging {
		// Skip micro-seeks while dragging.
		if p := bar.ProgressAt(tr, y); p-tr.Progress() > seekThreshold || tr.Progress()-p > seekThreshold {
			g.scene.ScrollToProgress(p)
		}
		return
	}

	if mx < 0 || my < 0 || mx >= g.width || my >= g.height {
		g.scene.PointerLeave()
		return
	}
	g.scene.Pointer(x, y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surf.Bind(screen)
	g.queue.Fire(g.now())

	g.drawScrollbar(screen)

	status := helpText
	if g.debug {
		status = g.scene.Snapshot().String() + "\n" + formatDuration(g.now().Sub(g.start))
		if g.audio != nil && g.audio.Ready() {
			status += "  audio " + formatLevel(g.audio.Level())
		}
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawScrollbar(screen *ebiten.Image) {
	bar := g.bar()
	thread := g.cfg.Thread.Color.Color

	trackAlpha := 0.15
	if g.barHovered || g.barDragging {
		trackAlpha = 0.3
	}
	vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), nrgba(thread, trackAlpha), false)

	top, h := bar.Thumb(g.scene.Tracker())
	vector.DrawFilledRect(screen, float32(bar.X), float32(top), float32(bar.W), float32(h), nrgba(thread, 0.9), false)
}

// Layout reports every size change to the scene; the scene applies it after
// the resize quiet window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Resize(viewport.Size{Width: outsideWidth, Height: outsideHeight}, g.now())
	}
	return outsideWidth, outsideHeight
}

func (g *Game) teardown() {
	g.loop.Stop()
	if g.audio != nil {
		g.audio.Close()
	}
	if g.logger != nil && g.cfg.Debug {
		g.logger.Printf("window closed after %d frames (%d recovered)", g.loop.Frames(), g.loop.Panics())
	}
}

func formatLevel(v float64) string {
	const width = 10
	n := int(v * width * 4)
	if n > width {
		n = width
	}
	bar := make([]byte, width)
	for i := range bar {
		bar[i] = '.'
		if i < n {
			bar[i] = '|'
		}
	}
	return string(bar)
}
