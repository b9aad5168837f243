package frame

import (
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	ErrNoFrame = errors.New("frame: no frame function")
	ErrStopped = errors.New("frame: loop already stopped")
)

// Scheduler is what the loop needs from the host.
type Scheduler interface {
	Request(cb Callback) Handle
	Cancel(h Handle)
}

// Loop re-requests itself after every frame until Stop is called.
type Loop struct {
	sched   Scheduler
	frame   Callback
	logger  *log.Logger
	handle  Handle
	running bool
	stopped bool
	frames  uint64
	panics  uint64
}

func NewLoop(sched Scheduler, frame Callback, logger *log.Logger) *Loop {
	return &Loop{sched: sched, frame: frame, logger: logger}
}

// Start requests the first frame.
func (l *Loop) Start() error {
	if l.frame == nil {
		return ErrNoFrame
	}
	if l.stopped {
		return ErrStopped
	}
	if l.running {
		return nil
	}
	l.running = true
	l.handle = l.sched.Request(l.tick)
	return nil
}

// Stop cancels the pending frame. After Stop returns no frame of this loop
// runs again, even if the host fires a callback it already held.
func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	l.running = false
	if l.handle != 0 {
		l.sched.Cancel(l.handle)
		l.handle = 0
	}
}

func (l *Loop) Stopped() bool { return l.stopped }

// Frames reports how many frames have run.
func (l *Loop) Frames() uint64 { return l.frames }

// Panics reports how many frames were recovered from a panic.
func (l *Loop) Panics() uint64 { return l.panics }

func (l *Loop) tick(now time.Time) {
	if l.stopped {
		return
	}
	l.handle = 0
	l.run(now)
	if l.stopped {
		return
	}
	l.handle = l.sched.Request(l.tick)
}

// run executes one frame. A panicking frame is logged and skipped so the
// loop keeps scheduling; the next frame is computed from fresh state.
func (l *Loop) run(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			l.panics++
			if l.logger != nil {
				l.logger.Printf("frame %d: %v", l.frames, fmt.Errorf("render panic: %v", r))
			}
		}
	}()
	l.frames++
	l.frame(now)
}
