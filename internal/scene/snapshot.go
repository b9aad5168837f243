package scene

import (
	"fmt"

	"github.com/iburimskiy/redthread/internal/thread"
	"github.com/iburimskiy/redthread/internal/viewport"
)

// Snapshot is a read-only summary of the context for the debug HUD.
type Snapshot struct {
	State      thread.State
	Progress   float64
	Heal       float64
	ScrollY    float64
	Size       viewport.Size
	Class      viewport.Class
	Mobile     bool
	Particles  int
	Autoscroll bool
}

func (c *Context) Snapshot() Snapshot {
	p := c.tracker.Progress()
	return Snapshot{
		State:      thread.StateFor(p),
		Progress:   p,
		Heal:       thread.HealProgress(p),
		ScrollY:    c.tracker.ScrollY(),
		Size:       c.view.Size(),
		Class:      c.view.Class(),
		Mobile:     c.view.Mobile(),
		Particles:  c.field.Len(),
		Autoscroll: c.autoscroll,
	}
}

func (s Snapshot) String() string {
	auto := ""
	if s.Autoscroll {
		auto = "  auto"
	}
	return fmt.Sprintf("%s  progress %.2f  heal %.2f%s\n%dx%d %s  particles %d",
		s.State, s.Progress, s.Heal, auto, s.Size.Width, s.Size.Height, s.Class, s.Particles)
}
