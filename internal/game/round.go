package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
)

// State is the lifecycle state of a round
type State int

const (
	StateUninitialized State = iota
	StateSetup
	StateGameplay
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSetup:
		return "setup"
	case StateGameplay:
		return "gameplay"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome records why a round finished
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHold
	OutcomeDeckExhausted
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHold:
		return "player holds"
	case OutcomeDeckExhausted:
		return "deck exhausted"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "in progress"
	}
}

var (
	ErrAlreadySetUp  = errors.New("round already set up")
	ErrNotSetUp      = errors.New("round not set up")
	ErrRoundFinished = errors.New("round finished")
)

// DefaultSeed is used when no seed is configured
const DefaultSeed int64 = 42

// RoundOption configures a Round during creation
type RoundOption func(*roundConfig)

type roundConfig struct {
	seed       int64
	stack      []deck.Card
	dealerName string
	playerName string
	renderer   Renderer
	bus        EventBus
	clock      quartz.Clock
	logger     *log.Logger
	roundID    string
}

// WithSeed sets the shuffle seed
func WithSeed(seed int64) RoundOption {
	return func(c *roundConfig) { c.seed = seed }
}

// WithStack forces cards to the top of the deck after shuffling, first card
// dealt first
func WithStack(cards []deck.Card) RoundOption {
	return func(c *roundConfig) { c.stack = cards }
}

// WithNames sets the dealer and player names
func WithNames(dealer, player string) RoundOption {
	return func(c *roundConfig) {
		if dealer != "" {
			c.dealerName = dealer
		}
		if player != "" {
			c.playerName = player
		}
	}
}

// WithRenderer sets the output collaborator used by the render stage
func WithRenderer(r Renderer) RoundOption {
	return func(c *roundConfig) { c.renderer = r }
}

// WithEventBus publishes round events on bus
func WithEventBus(bus EventBus) RoundOption {
	return func(c *roundConfig) { c.bus = bus }
}

// WithClock sets the clock used for event timestamps and round IDs
func WithClock(clock quartz.Clock) RoundOption {
	return func(c *roundConfig) { c.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) { c.logger = logger }
}

// WithRoundID overrides the generated round ID
func WithRoundID(id string) RoundOption {
	return func(c *roundConfig) { c.roundID = id }
}

// Round is the simulation of a single blackjack round: the registry of card
// entities, the deck and hand containers, and the setup and gameplay
// pipelines that move cards between them.
//
// A Round is driven from a single goroutine. Only its DecisionQueue is shared
// with the input side.
type Round struct {
	id       string
	seed     int64
	stack    []deck.Card
	registry *deck.Registry
	deck     *deck.Deck
	players  []*Player
	queue    *DecisionQueue
	renderer Renderer
	bus      EventBus
	clock    quartz.Clock
	logger   *log.Logger

	setup    *Pipeline
	gameplay *Pipeline

	state        State
	outcome      Outcome
	tick         int
	lastDecision Decision
	view         RoundView
}

// NewRound creates a round reading decisions from queue
func NewRound(queue *DecisionQueue, opts ...RoundOption) *Round {
	if queue == nil {
		panic("decision queue is required for round creation")
	}

	cfg := &roundConfig{
		seed:       DefaultSeed,
		dealerName: "Dealer",
		playerName: "You",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = NopRenderer{}
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.roundID == "" {
		cfg.roundID = roundid.NewGenerator(cfg.clock, randutil.New(cfg.seed)).Generate()
	}

	r := &Round{
		id:       cfg.roundID,
		seed:     cfg.seed,
		stack:    cfg.stack,
		registry: deck.NewStandardRegistry(),
		deck:     deck.NewDeck(),
		players: []*Player{
			NewPlayer(DealerID, cfg.dealerName, Dealer),
			NewPlayer(HumanID, cfg.playerName, Human),
		},
		queue:    queue,
		renderer: cfg.renderer,
		bus:      cfg.bus,
		clock:    cfg.clock,
		logger:   cfg.logger.WithPrefix("round").With("round", cfg.roundID),
	}
	r.setup = SetupPipeline(r)
	r.gameplay = GameplayPipeline(r)
	return r
}

// Setup shuffles and deals the opening hands. It runs once per round.
func (r *Round) Setup() error {
	if r.state != StateUninitialized {
		return ErrAlreadySetUp
	}
	r.state = StateSetup
	r.publishStart()

	if err := r.setup.Run(r); err != nil {
		r.finish(OutcomeAbandoned)
		return err
	}
	r.mustConserveCards()

	r.state = StateGameplay
	r.logger.Info("Round set up", "seed", r.seed, "deck", r.deck.Len())
	return nil
}

// Tick runs the gameplay pipeline once and returns the rendered view. A
// Hold finishes the round. Running out of cards finishes the round and
// returns an error wrapping deck.ErrDeckExhausted.
func (r *Round) Tick() (RoundView, error) {
	switch r.state {
	case StateUninitialized, StateSetup:
		return RoundView{}, ErrNotSetUp
	case StateFinished:
		return r.view, ErrRoundFinished
	}

	err := r.gameplay.Run(r)
	r.mustConserveCards()
	if err != nil {
		if errors.Is(err, deck.ErrDeckExhausted) {
			r.logger.Warn("Deck exhausted", "tick", r.tick)
			r.renderFinal()
			r.finish(OutcomeDeckExhausted)
		}
		return r.view, err
	}

	r.tick++
	if r.Human().Holding {
		r.finish(OutcomeHold)
	}
	return r.view, nil
}

// renderFinal scores and renders the table when a tick stops before its
// render stage, so the last view matches the state the round ended in
func (r *Round) renderFinal() {
	_ = scoreHands(r)
	_ = renderHands(r)
}

// Abandon finishes a round that can no longer receive decisions
func (r *Round) Abandon() {
	if r.state != StateFinished {
		r.finish(OutcomeAbandoned)
	}
}

func (r *Round) finish(outcome Outcome) {
	r.state = StateFinished
	r.outcome = outcome
	r.logger.Info("Round finished", "outcome", outcome, "ticks", r.tick)
	r.bus.Publish(NewRoundEndEvent(r.id, outcome, r.tick, r.clock.Now("round_end")))
}

func (r *Round) publishStart() {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	r.bus.Publish(NewRoundStartEvent(r.id, r.seed, names, r.clock.Now("round_start")))
}

// dealTo draws the top card into a player's hand with the given face
func (r *Round) dealTo(p *Player, face deck.Face) error {
	id, err := r.deck.Draw()
	if err != nil {
		return fmt.Errorf("deal to %s: %w", p.Name, err)
	}
	r.registry.SetFace(id, face)
	p.Hand.Append(id)

	card := r.registry.Get(id)
	r.logger.Debug("Dealt card", "player", p.Name, "card", card, "face", face, "deck", r.deck.Len())
	r.bus.Publish(NewCardDealtEvent(p, card, r.deck.Len(), r.clock.Now("deal")))
	return nil
}

func (r *Round) buildView() RoundView {
	view := RoundView{
		RoundID:   r.id,
		Tick:      r.tick,
		DeckSize:  r.deck.Len(),
		Hands:     make([]HandView, len(r.players)),
		LastEvent: r.lastDecision,
	}
	for i, p := range r.players {
		cards := r.registry.Cards(p.Hand.IDs())
		hv := HandView{
			PlayerID:   p.ID,
			Name:       p.Name,
			Role:       p.Role,
			Cards:      make([]CardView, len(cards)),
			ScoreKnown: true,
			Holding:    p.Holding,
		}
		for j, c := range cards {
			if c.IsHidden() {
				hv.Cards[j] = CardView{Hidden: true}
				hv.ScoreKnown = false
				continue
			}
			hv.Cards[j] = CardView{Card: c}
		}
		if hv.ScoreKnown {
			hv.Score = p.Score
		}
		view.Hands[i] = hv
	}
	return view
}

// CheckConservation verifies that every card is in exactly one container
func (r *Round) CheckConservation() error {
	seen := make(map[deck.ID]string, r.registry.Len())
	place := func(id deck.ID, where string) error {
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("card %s is in both %s and %s", r.registry.Get(id), prev, where)
		}
		seen[id] = where
		return nil
	}

	for _, id := range r.deck.IDs() {
		if err := place(id, "deck"); err != nil {
			return err
		}
	}
	for _, p := range r.players {
		for _, id := range p.Hand.IDs() {
			if err := place(id, p.Name+"'s hand"); err != nil {
				return err
			}
		}
	}
	if r.state != StateUninitialized && len(seen) != r.registry.Len() {
		return fmt.Errorf("%d of %d cards accounted for", len(seen), r.registry.Len())
	}
	return nil
}

func (r *Round) mustConserveCards() {
	if err := r.CheckConservation(); err != nil {
		panic("card conservation violated: " + err.Error())
	}
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// Seed returns the shuffle seed
func (r *Round) Seed() int64 { return r.seed }

// State returns the lifecycle state
func (r *Round) State() State { return r.state }

// Outcome returns why the round finished, or OutcomeNone
func (r *Round) Outcome() Outcome { return r.outcome }

// Ticks returns the number of completed gameplay ticks
func (r *Round) Ticks() int { return r.tick }

// View returns the most recently rendered view
func (r *Round) View() RoundView { return r.view }

// Players returns the dealer and the human, in that order
func (r *Round) Players() []*Player { return r.players }

// Dealer returns the dealer seat
func (r *Round) Dealer() *Player { return r.players[DealerID] }

// Human returns the human seat
func (r *Round) Human() *Player { return r.players[HumanID] }

// Deck returns the undealt pile
func (r *Round) Deck() *deck.Deck { return r.deck }

// Registry returns the card registry
func (r *Round) Registry() *deck.Registry { return r.registry }

// EventBus returns the bus round events are published on
func (r *Round) EventBus() EventBus { return r.bus }
