package deck

// Hand holds the cards dealt to one player in deal order. Cards are only ever
// appended during a round.
type Hand struct {
	ids []ID
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{ids: make([]ID, 0, 4)}
}

// Append adds a card to the end of the hand
func (h *Hand) Append(id ID) {
	h.ids = append(h.ids, id)
}

// IDs returns a copy of the cards in deal order
func (h *Hand) IDs() []ID {
	out := make([]ID, len(h.ids))
	copy(out, h.ids)
	return out
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.ids)
}

// contains reports whether the hand holds the card
func (h *Hand) contains(id ID) bool {
	for _, c := range h.ids {
		if c == id {
			return true
		}
	}
	return false
}
