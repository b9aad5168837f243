// Package frame schedules the render loop: one callback per display
// refresh, never overlapping, cancellable as a single call.
package frame

import "time"

// Callback receives the time of the refresh it runs in.
type Callback func(now time.Time)

// Handle identifies a requested frame. The zero Handle is never issued.
type Handle uint64

// Queue is a requestAnimationFrame-style scheduler. The host calls Fire
// once per refresh; callbacks requested while Fire runs wait for the next
// refresh.
type Queue struct {
	next    Handle
	pending map[Handle]Callback
	order   []Handle
}

func NewQueue() *Queue {
	return &Queue{pending: map[Handle]Callback{}}
}

// Request schedules cb for the next refresh.
func (q *Queue) Request(cb Callback) Handle {
	q.next++
	h := q.next
	q.pending[h] = cb
	q.order = append(q.order, h)
	return h
}

// Cancel drops a pending callback. Cancelling a fired or unknown handle is
// a no-op.
func (q *Queue) Cancel(h Handle) {
	delete(q.pending, h)
}

// Len reports the number of pending callbacks.
func (q *Queue) Len() int { return len(q.pending) }

// Fire runs the callbacks that were pending when it was called, in request
// order, and reports how many ran.
func (q *Queue) Fire(now time.Time) int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, h := range batch {
		cb, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		cb(now)
		ran++
	}
	return ran
}
