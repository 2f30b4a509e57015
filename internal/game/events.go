package game

import (
	"sync"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a round event type with type safety
type EventType string

// EventType constants for round domain events
const (
	EventTypeRoundStart EventType = "round_start"
	EventTypeCardDealt  EventType = "card_dealt"
	EventTypeDecision   EventType = "decision"
	EventTypeRoundEnd   EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when setup begins
type RoundStartEvent struct {
	RoundID   string
	Seed      int64
	Players   []string
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, seed int64, players []string, at time.Time) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   roundID,
		Seed:      seed,
		Players:   players,
		timestamp: at,
	}
}

// CardDealtEvent is published whenever a card moves from the deck to a hand
type CardDealtEvent struct {
	PlayerID   int
	PlayerName string
	Card       CardView
	DeckLeft   int
	timestamp  time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a card dealt event. Face-down cards are published
// hidden.
func NewCardDealtEvent(player *Player, card deck.Card, deckLeft int, at time.Time) CardDealtEvent {
	view := CardView{Card: card}
	if card.IsHidden() {
		view = CardView{Hidden: true}
	}
	return CardDealtEvent{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Card:       view,
		DeckLeft:   deckLeft,
		timestamp:  at,
	}
}

// DecisionEvent is published when the gameplay pipeline applies a decision
type DecisionEvent struct {
	PlayerName string
	Decision   Decision
	Tick       int
	timestamp  time.Time
}

func (e DecisionEvent) EventType() EventType { return EventTypeDecision }
func (e DecisionEvent) Timestamp() time.Time { return e.timestamp }

// NewDecisionEvent creates a new decision event
func NewDecisionEvent(playerName string, decision Decision, tick int, at time.Time) DecisionEvent {
	return DecisionEvent{
		PlayerName: playerName,
		Decision:   decision,
		Tick:       tick,
		timestamp:  at,
	}
}

// RoundEndEvent is published when the round reaches Finished
type RoundEndEvent struct {
	RoundID   string
	Outcome   Outcome
	Ticks     int
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(roundID string, outcome Outcome, ticks int, at time.Time) RoundEndEvent {
	return RoundEndEvent{
		RoundID:   roundID,
		Outcome:   outcome,
		Ticks:     ticks,
		timestamp: at,
	}
}

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous on the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
