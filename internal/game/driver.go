package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
)

// DecisionSource is the input collaborator. NextDecision blocks until the
// player makes a valid choice; malformed input is retried by the source and
// never returned. io.EOF means no more input will arrive.
type DecisionSource interface {
	NextDecision(ctx context.Context) (Decision, error)
}

// Result summarises a finished round
type Result struct {
	RoundID string
	Seed    int64
	Outcome Outcome
	Ticks   int
	Final   RoundView
	History string
}

// Driver owns the decision queue and runs a round to completion: the
// simulation loop on one goroutine and input collection on another.
type Driver struct {
	round    *Round
	queue    *DecisionQueue
	source   DecisionSource
	renderer Renderer
	history  *RoundLog
	logger   *log.Logger
}

// NewDriver creates a driver and the round it will run
func NewDriver(source DecisionSource, renderer Renderer, logger *log.Logger, opts ...RoundOption) *Driver {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	queue := NewDecisionQueue()
	history := NewRoundLog()

	// Caller options come last so they can replace the bus
	base := []RoundOption{WithRenderer(renderer), WithLogger(logger)}
	round := NewRound(queue, append(base, opts...)...)
	round.EventBus().Subscribe(history)

	return &Driver{
		round:    round,
		queue:    queue,
		source:   source,
		renderer: renderer,
		history:  history,
		logger:   logger.WithPrefix("driver"),
	}
}

// Round returns the round being driven
func (d *Driver) Round() *Round { return d.round }

// Queue returns the decision queue shared with the input side
func (d *Driver) Queue() *DecisionQueue { return d.queue }

// History returns the in-memory round log
func (d *Driver) History() *RoundLog { return d.history }

// Run sets up the round and loops until the player holds, the deck runs out,
// input ends or ctx is cancelled. Deck exhaustion and ended input are normal
// outcomes, not errors.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if err := d.round.Setup(); err != nil {
		return nil, fmt.Errorf("set up round: %w", err)
	}

	prompts := make(chan struct{})
	collectorDone := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(collectorDone)
		return d.collect(gctx, prompts)
	})
	g.Go(func() error {
		defer close(prompts)
		return d.simulate(gctx, prompts, collectorDone)
	})

	err := g.Wait()
	d.round.Abandon()

	result := &Result{
		RoundID: d.round.ID(),
		Seed:    d.round.Seed(),
		Outcome: d.round.Outcome(),
		Ticks:   d.round.Ticks(),
		Final:   d.round.View(),
		History: d.history.Summary(),
	}
	d.renderer.RenderOutcome(result)

	return result, err
}

// simulate runs ticks, asking for one decision between ticks
func (d *Driver) simulate(ctx context.Context, prompts chan<- struct{}, collectorDone <-chan struct{}) error {
	for {
		if _, err := d.round.Tick(); err != nil {
			if errors.Is(err, deck.ErrDeckExhausted) {
				return nil
			}
			return fmt.Errorf("tick %d: %w", d.round.Ticks(), err)
		}
		if d.round.State() == StateFinished {
			return nil
		}

		select {
		case prompts <- struct{}{}:
		case <-collectorDone:
			d.round.Abandon()
			return nil
		case <-ctx.Done():
			d.round.Abandon()
			return nil
		}

		if err := d.queue.Wait(ctx); err != nil {
			d.logger.Info("Stopped waiting for decisions", "reason", err)
			d.round.Abandon()
			return nil
		}
	}
}

// collect reads one decision per prompt and queues it
func (d *Driver) collect(ctx context.Context, prompts <-chan struct{}) error {
	for {
		select {
		case _, ok := <-prompts:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return nil
		}

		decision, err := d.source.NextDecision(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				d.logger.Info("Input closed", "error", err)
				d.queue.Close()
				return nil
			}
			d.queue.Close()
			return fmt.Errorf("read decision: %w", err)
		}

		d.logger.Debug("Queued decision", "decision", decision)
		if err := d.queue.Push(decision); err != nil {
			return err
		}
	}
}
