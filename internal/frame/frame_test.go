package frame

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

var t0 = time.Unix(1_700_000_000, 0)

func TestQueueFiresOncePerRefresh(t *testing.T) {
	q := NewQueue()
	var got []int

	q.Request(func(time.Time) { got = append(got, 1) })
	h := q.Request(func(time.Time) { got = append(got, 2) })
	q.Request(func(time.Time) {
		got = append(got, 3)
		// requested during Fire: waits for the next refresh
		q.Request(func(time.Time) { got = append(got, 4) })
	})
	q.Cancel(h)

	if n := q.Fire(t0); n != 2 {
		t.Fatalf("Expected 2 callbacks, got %d", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Expected [1 3], got %v", got)
	}
	if q.Len() != 1 {
		t.Fatalf("Expected the nested request pending, got %d", q.Len())
	}
	q.Fire(t0)
	if len(got) != 3 || got[2] != 4 {
		t.Errorf("Expected nested callback on the next refresh, got %v", got)
	}
	if q.Fire(t0) != 0 {
		t.Error("Expected empty queue")
	}
}

func TestLoopReschedulesEveryFrame(t *testing.T) {
	q := NewQueue()
	var times []time.Time
	l := NewLoop(q, func(now time.Time) { times = append(times, now) }, nil)

	if err := l.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	for i := 0; i < 3; i++ {
		q.Fire(t0.Add(time.Duration(i) * 16 * time.Millisecond))
	}

	if len(times) != 3 || l.Frames() != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(times))
	}
	if q.Len() != 1 {
		t.Errorf("Expected exactly one pending frame, got %d", q.Len())
	}
}

func TestLoopStopCancelsPendingFrame(t *testing.T) {
	q := NewQueue()
	frames := 0
	l := NewLoop(q, func(time.Time) { frames++ }, nil)
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	q.Fire(t0)

	l.Stop()
	l.Stop()

	if q.Len() != 0 {
		t.Errorf("Expected pending frame cancelled, got %d", q.Len())
	}
	for i := 0; i < 3; i++ {
		q.Fire(t0)
	}
	if frames != 1 {
		t.Errorf("Expected no frames after Stop, got %d", frames)
	}
	if err := l.Start(); err != ErrStopped {
		t.Errorf("Expected ErrStopped on restart, got %v", err)
	}
}

// A scheduler that keeps callbacks even after Cancel, to check the loop
// does not rely on the host honouring cancellation.
type leakyScheduler struct {
	cbs []Callback
}

func (s *leakyScheduler) Request(cb Callback) Handle {
	s.cbs = append(s.cbs, cb)
	return Handle(len(s.cbs))
}

func (s *leakyScheduler) Cancel(Handle) {}

func TestLoopStopHoldsWithoutHostCancel(t *testing.T) {
	s := &leakyScheduler{}
	frames := 0
	l := NewLoop(s, func(time.Time) { frames++ }, nil)
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	l.Stop()

	for _, cb := range s.cbs {
		cb(t0)
	}
	if frames != 0 {
		t.Errorf("Expected no frame after Stop, got %d", frames)
	}
}

func TestLoopStopFromInsideFrame(t *testing.T) {
	q := NewQueue()
	var l *Loop
	l = NewLoop(q, func(time.Time) { l.Stop() }, nil)
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	q.Fire(t0)

	if q.Len() != 0 {
		t.Errorf("Expected no reschedule after stopping inside a frame, got %d pending", q.Len())
	}
}

func TestLoopRecoversPanickingFrame(t *testing.T) {
	var buf bytes.Buffer
	q := NewQueue()
	calls := 0
	l := NewLoop(q, func(time.Time) {
		calls++
		if calls == 1 {
			panic("bad geometry")
		}
	}, log.New(&buf, "", 0))

	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	q.Fire(t0)
	q.Fire(t0)

	if calls != 2 {
		t.Errorf("Expected loop to keep running after a panic, got %d calls", calls)
	}
	if l.Panics() != 1 {
		t.Errorf("Expected 1 recovered panic, got %d", l.Panics())
	}
	if !strings.Contains(buf.String(), "bad geometry") {
		t.Errorf("Expected panic logged, got %q", buf.String())
	}
}

func TestStartWithoutFrame(t *testing.T) {
	l := NewLoop(NewQueue(), nil, nil)
	if err := l.Start(); err != ErrNoFrame {
		t.Errorf("Expected ErrNoFrame, got %v", err)
	}
}

func TestClock(t *testing.T) {
	c := NewClock(t0)
	if got := c.Elapsed(t0.Add(1500 * time.Millisecond)); got != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s, got %v", got)
	}
	if got := c.Elapsed(t0.Add(-time.Second)); got != 0 {
		t.Errorf("Expected clamp to 0, got %v", got)
	}
}
