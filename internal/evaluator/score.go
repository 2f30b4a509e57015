package evaluator

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// Target is the best possible blackjack total
	Target = 21

	aceBonus = 10 // an ace counted as 11 instead of 1
)

// Result describes a scored blackjack hand
type Result struct {
	Total     int
	Soft      bool // an ace is counted as 11 in Total
	Bust      bool
	Blackjack bool // two-card 21
}

// String returns a short description such as "soft 17", "bust 25" or "blackjack"
func (r Result) String() string {
	switch {
	case r.Blackjack:
		return "blackjack"
	case r.Bust:
		return fmt.Sprintf("bust %d", r.Total)
	case r.Soft:
		return fmt.Sprintf("soft %d", r.Total)
	default:
		return fmt.Sprintf("%d", r.Total)
	}
}

// Score returns the best blackjack total for cards. Every assignment of 1 or
// 11 to each ace is considered; the highest total not over 21 wins, and when
// every assignment busts the lowest total (all aces as 1) is returned.
func Score(cards []deck.Card) int {
	hard, aces := hardTotal(cards)

	// Assignments with the same number of elevens share a total, so the
	// enumeration runs over that count.
	best := -1
	for elevens := 0; elevens <= aces; elevens++ {
		total := hard + elevens*aceBonus
		if total <= Target && total > best {
			best = total
		}
	}
	if best < 0 {
		return hard
	}
	return best
}

// Evaluate scores cards and classifies the result
func Evaluate(cards []deck.Card) Result {
	total := Score(cards)
	hard, _ := hardTotal(cards)
	return Result{
		Total:     total,
		Soft:      total > hard,
		Bust:      total > Target,
		Blackjack: len(cards) == 2 && total == Target,
	}
}

// hardTotal counts every ace as 1 and reports how many aces there are
func hardTotal(cards []deck.Card) (int, int) {
	hard, aces := 0, 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
		}
		hard += c.Rank.Pips()
	}
	return hard, aces
}
