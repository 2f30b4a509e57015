package game

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned once the input side of a DecisionQueue has closed
var ErrQueueClosed = errors.New("decision queue closed")

// DecisionQueue carries decisions from the input collaborator to the gameplay
// pipeline. Pushes and pops may happen from different goroutines.
type DecisionQueue struct {
	mu      sync.Mutex
	pending []Decision
	closed  bool
	notify  chan struct{}
}

// NewDecisionQueue creates an empty queue
func NewDecisionQueue() *DecisionQueue {
	return &DecisionQueue{
		notify: make(chan struct{}, 1),
	}
}

// Push enqueues a decision and wakes any waiter
func (q *DecisionQueue) Push(d Decision) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.pending = append(q.pending, d)
	q.mu.Unlock()

	q.signal()
	return nil
}

// TryPop removes the oldest decision without blocking
func (q *DecisionQueue) TryPop() (Decision, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return 0, false
	}
	d := q.pending[0]
	q.pending = q.pending[1:]
	return d, true
}

// Wait blocks until a decision is pending. It returns ErrQueueClosed when the
// queue is closed and drained, or the context error if ctx ends first.
func (q *DecisionQueue) Wait(ctx context.Context) error {
	for {
		q.mu.Lock()
		pending, closed := len(q.pending), q.closed
		q.mu.Unlock()

		if pending > 0 {
			return nil
		}
		if closed {
			return ErrQueueClosed
		}

		select {
		case <-q.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close marks the end of input. Decisions already queued can still be popped.
func (q *DecisionQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
}

// Len returns the number of pending decisions
func (q *DecisionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *DecisionQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
