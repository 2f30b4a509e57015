package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses a compact card list such as "AhKs" or "Td 10c 2s". Ranks
// are A, 2-9, T or 10, J, Q, K and suits are h, d, s, c, both case
// insensitive. Spaces and commas between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "").Replace(strings.ToLower(s))
	cards := make([]Card, 0, len(s)/2)

	for i := 0; i < len(s); {
		rankLen := 1
		if strings.HasPrefix(s[i:], "10") {
			rankLen = 2
		}
		if i+rankLen >= len(s) {
			return nil, fmt.Errorf("parse cards %q: incomplete card at offset %d", s, i)
		}

		rank, err := parseRank(s[i : i+rankLen])
		if err != nil {
			return nil, err
		}
		suit, err := parseSuit(s[i+rankLen])
		if err != nil {
			return nil, err
		}

		cards = append(cards, NewCard(suit, rank))
		i += rankLen + 1
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "a":
		return Ace, nil
	case "t", "10":
		return Ten, nil
	case "j":
		return Jack, nil
	case "q":
		return Queen, nil
	case "k":
		return King, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'h':
		return Hearts, nil
	case 'd':
		return Diamonds, nil
	case 's':
		return Spades, nil
	case 'c':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", c)
	}
}
