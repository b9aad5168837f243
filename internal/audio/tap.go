package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap passes a streamer through and keeps the most recent samples in
// a ring so the HUD can show how loud the cues are.
type levelTap struct {
	Source beep.Streamer

	mu   sync.RWMutex
	ring [][2]float64
	next int
	fill int
}

func newLevelTap(src beep.Streamer, size int) *levelTap {
	return &levelTap{Source: src, ring: make([][2]float64, size)}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n == 0 {
		return n, ok
	}
	t.mu.Lock()
	for _, s := range samples[:n] {
		t.ring[t.next] = s
		t.next = (t.next + 1) % len(t.ring)
	}
	t.fill = min(t.fill+n, len(t.ring))
	t.mu.Unlock()
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// Level is the RMS of the last n samples across both channels, 0 when
// nothing has played.
func (t *levelTap) Level(n int) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.fill)
	if n <= 0 {
		return 0
	}
	var sum float64
	idx := t.next
	for i := 0; i < n; i++ {
		idx--
		if idx < 0 {
			idx = len(t.ring) - 1
		}
		s := t.ring[idx]
		sum += s[0]*s[0] + s[1]*s[1]
	}
	return math.Sqrt(sum / float64(2*n))
}
