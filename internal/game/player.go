package game

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
)

// Role distinguishes the dealer from the human player
type Role int

const (
	Dealer Role = iota
	Human
)

func (r Role) String() string {
	if r == Dealer {
		return "dealer"
	}
	return "player"
}

// Fixed player IDs for the two seats of a round
const (
	DealerID = 0
	HumanID  = 1
)

// Player is a seat at the table. Score is written by the score stage every
// tick and is never set directly by callers.
type Player struct {
	ID      int
	Name    string
	Role    Role
	Hand    *deck.Hand
	Score   evaluator.Result
	Holding bool
}

// NewPlayer creates a player with an empty hand
func NewPlayer(id int, name string, role Role) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Role: role,
		Hand: deck.NewHand(),
	}
}

// IsDealer returns true for the dealer seat
func (p *Player) IsDealer() bool {
	return p.Role == Dealer
}
