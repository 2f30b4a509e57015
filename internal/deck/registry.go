package deck

import (
	"fmt"
	"sync/atomic"
)

// registryGenerations hands every registry its own generation so handles
// cannot be used across registries.
var registryGenerations atomic.Uint32

// ID is an opaque handle to a card held in a Registry
type ID struct {
	index      uint32
	generation uint32
}

// String returns a debug representation of the handle
func (id ID) String() string {
	return fmt.Sprintf("card#%d.%d", id.index, id.generation)
}

// IsZero reports whether the handle was never issued by a registry
func (id ID) IsZero() bool {
	return id.generation == 0
}

// Registry is an arena owning every card entity of a round. It stores the
// immutable suit and rank of each card along with its mutable face.
//
// Accessing a handle the registry did not issue is a programming error and
// panics.
type Registry struct {
	generation uint32
	cards      []Card
}

// NewRegistry creates a registry and allocates an entity for each card
func NewRegistry(cards []Card) *Registry {
	r := &Registry{
		generation: registryGenerations.Add(1),
		cards:      make([]Card, 0, len(cards)),
	}
	for _, c := range cards {
		r.Create(c)
	}
	return r
}

// NewStandardRegistry creates a registry holding the 52 generated cards
func NewStandardRegistry() *Registry {
	return NewRegistry(Generate())
}

// Create allocates a new card entity and returns its handle
func (r *Registry) Create(c Card) ID {
	r.cards = append(r.cards, c)
	return ID{index: uint32(len(r.cards) - 1), generation: r.generation}
}

// Len returns the number of entities in the registry
func (r *Registry) Len() int {
	return len(r.cards)
}

// IDs returns every handle in creation order
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.cards))
	for i := range r.cards {
		ids[i] = ID{index: uint32(i), generation: r.generation}
	}
	return ids
}

// Lookup returns the card for a handle and whether the handle is valid
func (r *Registry) Lookup(id ID) (Card, bool) {
	if !r.valid(id) {
		return Card{}, false
	}
	return r.cards[id.index], true
}

// Get returns the card for a handle, panicking on an invalid handle
func (r *Registry) Get(id ID) Card {
	card, ok := r.Lookup(id)
	if !ok {
		r.invalidAccess(id)
	}
	return card
}

// Cards resolves a slice of handles
func (r *Registry) Cards(ids []ID) []Card {
	cards := make([]Card, len(ids))
	for i, id := range ids {
		cards[i] = r.Get(id)
	}
	return cards
}

// SetFace changes the orientation of a card
func (r *Registry) SetFace(id ID, face Face) {
	r.mustBeValid(id)
	r.cards[id.index].Face = face
}

// Find returns the handle of the card with the given suit and rank
func (r *Registry) Find(suit Suit, rank Rank) (ID, bool) {
	for i, c := range r.cards {
		if c.Suit == suit && c.Rank == rank {
			return ID{index: uint32(i), generation: r.generation}, true
		}
	}
	return ID{}, false
}

func (r *Registry) valid(id ID) bool {
	return !id.IsZero() && id.generation == r.generation && int(id.index) < len(r.cards)
}

func (r *Registry) mustBeValid(id ID) {
	if !r.valid(id) {
		r.invalidAccess(id)
	}
}

func (r *Registry) invalidAccess(id ID) {
	panic(fmt.Sprintf("deck: invalid component access: %s is not a card of registry generation %d (%d cards)",
		id, r.generation, len(r.cards)))
}
