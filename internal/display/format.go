package display

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// FormatCard renders a single card with suit colouring
func FormatCard(c game.CardView) string {
	switch {
	case c.Hidden:
		return HiddenCardStyle.Render("??")
	case c.Card.IsRed():
		return RedCardStyle.Render(c.Card.String())
	default:
		return BlackCardStyle.Render(c.Card.String())
	}
}

// FormatCards renders a hand as "[A♠ ??]"
func FormatCards(cards []game.CardView) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = FormatCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatHand renders one line per player: name, cards and score
func FormatHand(h game.HandView) string {
	line := fmt.Sprintf("%s %s  %s", NameStyle.Render(h.Name), FormatCards(h.Cards),
		ScoreStyle.Render("score "+h.ScoreString()))
	if h.Holding {
		line += " " + InfoStyle.Render("(holding)")
	}
	return line
}

// FormatRound renders the full table state for one tick
func FormatRound(view game.RoundView) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("── Turn %d · %d cards in deck ──", view.Tick+1, view.DeckSize)))
	b.WriteString("\n")
	for _, h := range view.Hands {
		b.WriteString(FormatHand(h))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatOutcome renders the end of round message
func FormatOutcome(result *game.Result) string {
	var b strings.Builder
	switch result.Outcome {
	case game.OutcomeHold:
		human, _ := result.Final.Hand(game.HumanID)
		b.WriteString(PromptStyle.Render(fmt.Sprintf("You hold on %s.", human.ScoreString())))
	case game.OutcomeDeckExhausted:
		b.WriteString(ErrorStyle.Render("The deck ran out of cards. Round over."))
	default:
		b.WriteString(InfoStyle.Render("Round abandoned."))
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %s · seed %d · %d turns", result.RoundID, result.Seed, result.Ticks)))
	b.WriteString("\n")
	return b.String()
}
