package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
)

// CardView is a card as the table shows it. Hidden cards carry no suit or rank.
type CardView struct {
	Hidden bool
	Card   deck.Card
}

func (c CardView) String() string {
	if c.Hidden {
		return "??"
	}
	return c.Card.String()
}

// HandView is what the renderer is allowed to know about one player
type HandView struct {
	PlayerID   int
	Name       string
	Role       Role
	Cards      []CardView
	ScoreKnown bool
	Score      evaluator.Result
	Holding    bool
}

// ScoreString returns the score or "?" while a card is face down
func (h HandView) ScoreString() string {
	if !h.ScoreKnown {
		return "?"
	}
	return h.Score.String()
}

// CardsString joins the visible cards with spaces
func (h HandView) CardsString() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// RoundView is the rendered state of a round after one gameplay tick
type RoundView struct {
	RoundID   string
	Tick      int
	DeckSize  int
	Hands     []HandView
	LastEvent Decision // zero when no decision was applied this tick
}

// Hand returns the view of the player with the given ID
func (v RoundView) Hand(playerID int) (HandView, bool) {
	for _, h := range v.Hands {
		if h.PlayerID == playerID {
			return h, true
		}
	}
	return HandView{}, false
}

// Renderer is the output collaborator of the gameplay pipeline
type Renderer interface {
	RenderRound(view RoundView)
	RenderOutcome(result *Result)
}

// NopRenderer discards everything
type NopRenderer struct{}

func (NopRenderer) RenderRound(RoundView) {}
func (NopRenderer) RenderOutcome(*Result) {}
