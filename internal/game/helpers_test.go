package game

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func mockClock(t *testing.T) *quartz.Mock {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	return clock
}

// newTestRound creates a round with a quiet logger and a mock clock
func newTestRound(t *testing.T, opts ...RoundOption) (*Round, *DecisionQueue) {
	t.Helper()
	queue := NewDecisionQueue()
	base := []RoundOption{WithLogger(quietLogger()), WithClock(mockClock(t))}
	return NewRound(queue, append(base, opts...)...), queue
}

// recordingRenderer keeps every view it is given
type recordingRenderer struct {
	mu       sync.Mutex
	views    []RoundView
	outcomes []*Result
}

func (r *recordingRenderer) RenderRound(view RoundView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
}

func (r *recordingRenderer) RenderOutcome(result *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, result)
}

func (r *recordingRenderer) Views() []RoundView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RoundView(nil), r.views...)
}

// scriptedSource returns decisions from a script, then its final error
type scriptedSource struct {
	mu        sync.Mutex
	decisions []Decision
	err       error
	calls     int
}

func (s *scriptedSource) NextDecision(ctx context.Context) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.decisions) == 0 {
		if s.err == nil {
			return 0, io.EOF
		}
		return 0, s.err
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

// repeatSource always returns the same decision
type repeatSource struct{ decision Decision }

func (s repeatSource) NextDecision(ctx context.Context) (Decision, error) {
	return s.decision, nil
}

// blockingSource blocks until the context is cancelled
type blockingSource struct{ started chan struct{} }

func (s blockingSource) NextDecision(ctx context.Context) (Decision, error) {
	close(s.started)
	<-ctx.Done()
	return 0, ctx.Err()
}
