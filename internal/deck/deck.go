package deck

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/randutil"
)

// ErrDeckExhausted is returned when drawing from an empty deck
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is the undealt pile. The last element is the top of the deck.
type Deck struct {
	ids []ID
}

// NewDeck creates an empty deck
func NewDeck() *Deck {
	return &Deck{ids: make([]ID, 0, 52)}
}

// Load takes membership of the given cards in order, replacing any cards
// already in the deck
func (d *Deck) Load(ids []ID) {
	d.ids = append(d.ids[:0], ids...)
}

// Push places a card on top of the deck
func (d *Deck) Push(id ID) {
	d.ids = append(d.ids, id)
}

// Draw removes and returns the top card
func (d *Deck) Draw() (ID, error) {
	if d.IsEmpty() {
		return ID{}, ErrDeckExhausted
	}
	top := d.ids[len(d.ids)-1]
	d.ids = d.ids[:len(d.ids)-1]
	return top, nil
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (ID, bool) {
	if d.IsEmpty() {
		return ID{}, false
	}
	return d.ids[len(d.ids)-1], true
}

// Shuffle permutes the deck with Fisher-Yates driven by a PCG stream derived
// from seed. The same seed always yields the same order.
func (d *Deck) Shuffle(seed int64) {
	rng := randutil.New(seed)
	for i := len(d.ids) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.ids[i], d.ids[j] = d.ids[j], d.ids[i]
	}
}

// Stack moves the given cards to the top of the deck so that ids[0] is drawn
// first. Every card must already be in the deck.
func (d *Deck) Stack(ids []ID) error {
	for i := len(ids) - 1; i >= 0; i-- {
		pos := d.indexOf(ids[i])
		if pos < 0 {
			return fmt.Errorf("stack %s: card is not in the deck", ids[i])
		}
		d.ids = append(d.ids[:pos], d.ids[pos+1:]...)
		d.ids = append(d.ids, ids[i])
	}
	return nil
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.ids)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.ids) == 0
}

// IDs returns a copy of the deck from bottom to top
func (d *Deck) IDs() []ID {
	out := make([]ID, len(d.ids))
	copy(out, d.ids)
	return out
}

func (d *Deck) indexOf(id ID) int {
	for i, c := range d.ids {
		if c == id {
			return i
		}
	}
	return -1
}
