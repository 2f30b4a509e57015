package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func handCards(r *Round, p *Player) []deck.Card {
	return r.Registry().Cards(p.Hand.IDs())
}

func assertConserved(t *testing.T, r *Round) {
	t.Helper()
	require.NoError(t, r.CheckConservation())
	total := r.Deck().Len()
	for _, p := range r.Players() {
		total += p.Hand.Len()
	}
	assert.Equal(t, 52, total)
}

func TestRoundSetup(t *testing.T) {
	r, _ := newTestRound(t)
	assert.Equal(t, StateUninitialized, r.State())

	require.NoError(t, r.Setup())
	assert.Equal(t, StateGameplay, r.State())
	assert.Equal(t, 48, r.Deck().Len())
	assertConserved(t, r)

	dealer := handCards(r, r.Dealer())
	require.Len(t, dealer, 2)
	assert.Equal(t, deck.FaceUp, dealer[0].Face)
	assert.Equal(t, deck.FaceDown, dealer[1].Face, "hole card is face down")

	human := handCards(r, r.Human())
	require.Len(t, human, 2)
	for _, c := range human {
		assert.Equal(t, deck.FaceUp, c.Face)
	}

	t.Run("setup runs once", func(t *testing.T) {
		assert.ErrorIs(t, r.Setup(), ErrAlreadySetUp)
	})
}

func TestRoundTickBeforeSetup(t *testing.T) {
	r, _ := newTestRound(t)
	_, err := r.Tick()
	assert.ErrorIs(t, err, ErrNotSetUp)
}

func TestRoundDealOrder(t *testing.T) {
	r, _ := newTestRound(t, WithStack(deck.MustParseCards("AsKh9d5c")))
	require.NoError(t, r.Setup())

	dealer := handCards(r, r.Dealer())
	human := handCards(r, r.Human())

	assert.Equal(t, deck.NewCard(deck.Spades, deck.Ace), dealer[0])
	assert.Equal(t, deck.Card{Suit: deck.Diamonds, Rank: deck.Nine, Face: deck.FaceDown}, dealer[1])
	assert.Equal(t, deck.NewCard(deck.Hearts, deck.King), human[0])
	assert.Equal(t, deck.NewCard(deck.Clubs, deck.Five), human[1])
	assertConserved(t, r)
}

func TestRoundFirstTickShowsDeal(t *testing.T) {
	renderer := &recordingRenderer{}
	r, _ := newTestRound(t,
		WithRenderer(renderer),
		WithStack(deck.MustParseCards("AsKh9d5c")),
		WithNames("House", "Alice"))
	require.NoError(t, r.Setup())

	view, err := r.Tick()
	require.NoError(t, err)
	require.Len(t, renderer.Views(), 1)
	assert.Equal(t, view, renderer.Views()[0])
	assert.Equal(t, 0, view.Tick)
	assert.Equal(t, 48, view.DeckSize)
	assert.Equal(t, Decision(0), view.LastEvent)

	dealer, ok := view.Hand(DealerID)
	require.True(t, ok)
	assert.Equal(t, "House", dealer.Name)
	assert.Equal(t, "A♠ ??", dealer.CardsString())
	assert.False(t, dealer.ScoreKnown)
	assert.Equal(t, "?", dealer.ScoreString())

	human, ok := view.Hand(HumanID)
	require.True(t, ok)
	assert.Equal(t, "Alice", human.Name)
	assert.Equal(t, "K♥ 5♣", human.CardsString())
	assert.True(t, human.ScoreKnown)
	assert.Equal(t, 15, human.Score.Total)

	assert.Equal(t, 15, r.Human().Score.Total)
	assert.Equal(t, 20, r.Dealer().Score.Total, "score is computed even while hidden")
	assert.Equal(t, StateGameplay, r.State())
	assert.Equal(t, 1, r.Ticks())
}

func TestRoundHit(t *testing.T) {
	r, queue := newTestRound(t, WithStack(deck.MustParseCards("AsKh9d5c3h")))
	require.NoError(t, r.Setup())
	_, err := r.Tick()
	require.NoError(t, err)

	require.NoError(t, queue.Push(Hit))
	view, err := r.Tick()
	require.NoError(t, err)

	assert.Equal(t, 3, r.Human().Hand.Len())
	assert.Equal(t, 47, r.Deck().Len())
	assert.Equal(t, 2, r.Dealer().Hand.Len(), "dealer does not act")
	assert.Equal(t, 18, r.Human().Score.Total)
	assert.Equal(t, Hit, view.LastEvent)
	assert.Equal(t, 0, queue.Len())
	assertConserved(t, r)
}

func TestRoundTickWithoutDecision(t *testing.T) {
	r, _ := newTestRound(t)
	require.NoError(t, r.Setup())

	for range 3 {
		_, err := r.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, 2, r.Human().Hand.Len())
	assert.Equal(t, 48, r.Deck().Len())
}

func TestRoundHoldFinishes(t *testing.T) {
	r, queue := newTestRound(t)
	require.NoError(t, r.Setup())
	_, err := r.Tick()
	require.NoError(t, err)

	before := r.Human().Hand.IDs()
	require.NoError(t, queue.Push(Hold))
	view, err := r.Tick()
	require.NoError(t, err)

	assert.Equal(t, StateFinished, r.State())
	assert.Equal(t, OutcomeHold, r.Outcome())
	assert.Equal(t, before, r.Human().Hand.IDs())
	assert.Equal(t, 48, r.Deck().Len())

	human, _ := view.Hand(HumanID)
	assert.True(t, human.Holding)

	t.Run("no further ticks", func(t *testing.T) {
		_, err := r.Tick()
		assert.ErrorIs(t, err, ErrRoundFinished)
	})
}

func TestRoundOneDecisionPerTick(t *testing.T) {
	r, queue := newTestRound(t)
	require.NoError(t, r.Setup())

	require.NoError(t, queue.Push(Hit))
	require.NoError(t, queue.Push(Hit))
	_, err := r.Tick()
	require.NoError(t, err)

	assert.Equal(t, 3, r.Human().Hand.Len())
	assert.Equal(t, 1, queue.Len())
}

func TestRoundDeterministicSeed(t *testing.T) {
	deal := func(seed int64) ([]deck.Card, []deck.Card, []deck.ID) {
		r, _ := newTestRound(t, WithSeed(seed))
		require.NoError(t, r.Setup())
		return handCards(r, r.Dealer()), handCards(r, r.Human()), r.Deck().IDs()
	}

	d1, h1, _ := deal(7)
	d2, h2, _ := deal(7)
	assert.Equal(t, d1, d2)
	assert.Equal(t, h1, h2)

	d3, h3, _ := deal(8)
	assert.NotEqual(t, append(d1, h1...), append(d3, h3...))
}

func TestRoundDeckExhausted(t *testing.T) {
	r, queue := newTestRound(t)
	require.NoError(t, r.Setup())

	for r.Deck().Len() > 0 {
		require.NoError(t, queue.Push(Hit))
		_, err := r.Tick()
		require.NoError(t, err)
		assertConserved(t, r)
	}
	assert.Equal(t, 50, r.Human().Hand.Len())

	require.NoError(t, queue.Push(Hit))
	_, err := r.Tick()
	require.ErrorIs(t, err, deck.ErrDeckExhausted)

	assert.Equal(t, StateFinished, r.State())
	assert.Equal(t, OutcomeDeckExhausted, r.Outcome())
	assert.Equal(t, 50, r.Human().Hand.Len())
	assert.Equal(t, 2, r.Dealer().Hand.Len())
	assertConserved(t, r)
}

func TestRoundConservationViolationPanics(t *testing.T) {
	r, _ := newTestRound(t)
	require.NoError(t, r.Setup())

	top, ok := r.Deck().Peek()
	require.True(t, ok)
	r.Human().Hand.Append(top)

	assert.Error(t, r.CheckConservation())
	assert.Panics(t, func() { _, _ = r.Tick() })
}

func TestRoundAbandon(t *testing.T) {
	r, _ := newTestRound(t)
	require.NoError(t, r.Setup())

	r.Abandon()
	assert.Equal(t, OutcomeAbandoned, r.Outcome())

	r.Abandon()
	assert.Equal(t, OutcomeAbandoned, r.Outcome())
}

func TestRoundPipelines(t *testing.T) {
	r, _ := newTestRound(t)
	assert.Equal(t, []string{"load-deck", "shuffle", "stack", "deal"}, r.setup.StageNames())
	assert.Equal(t, []string{"apply-decisions", "score", "render"}, r.gameplay.StageNames())
}

func TestRoundIDDeterministicUnderMockClock(t *testing.T) {
	a, _ := newTestRound(t, WithSeed(3))
	b, _ := newTestRound(t, WithSeed(3))
	assert.Equal(t, a.ID(), b.ID())

	c, _ := newTestRound(t, WithRoundID("fixed"))
	assert.Equal(t, "fixed", c.ID())
}

func TestRoundViewUsesScoreStage(t *testing.T) {
	r, queue := newTestRound(t, WithStack(deck.MustParseCards("AsKh9d5c3h")))
	require.NoError(t, r.Setup())

	view, err := r.Tick()
	require.NoError(t, err)
	human, _ := view.Hand(HumanID)
	assert.Equal(t, r.Human().Score, human.Score)
	assert.Equal(t, 15, human.Score.Total)

	require.NoError(t, queue.Push(Hit))
	view, err = r.Tick()
	require.NoError(t, err)
	human, _ = view.Hand(HumanID)
	assert.Equal(t, r.Human().Score, human.Score)
	assert.Equal(t, 18, human.Score.Total)

	t.Run("render without score stage shows no total", func(t *testing.T) {
		r, _ := newTestRound(t, WithStack(deck.MustParseCards("AsKh9d5c")))
		r.gameplay = NewPipeline("gameplay", quietLogger(),
			NewStage("apply-decisions", applyDecisions),
			NewStage("render", renderHands),
		)
		require.NoError(t, r.Setup())

		view, err := r.Tick()
		require.NoError(t, err)
		human, _ := view.Hand(HumanID)
		assert.Equal(t, 0, human.Score.Total)
	})
}

func TestRoundDeckExhaustedRendersFinalTable(t *testing.T) {
	renderer := &recordingRenderer{}
	r, queue := newTestRound(t, WithRenderer(renderer))
	require.NoError(t, r.Setup())

	for {
		require.NoError(t, queue.Push(Hit))
		if _, err := r.Tick(); err != nil {
			require.ErrorIs(t, err, deck.ErrDeckExhausted)
			break
		}
	}

	views := renderer.Views()
	require.Len(t, views, r.Ticks()+1)

	last := views[len(views)-1]
	assert.Equal(t, r.Ticks(), last.Tick)
	assert.Equal(t, 0, last.DeckSize)
	assert.Equal(t, Hit, last.LastEvent)
	assert.Equal(t, last, r.View())

	human, _ := last.Hand(HumanID)
	assert.Len(t, human.Cards, 50)
	assert.Equal(t, r.Human().Score, human.Score)
}

func TestRoundRejectsDuplicateStackedCards(t *testing.T) {
	r, _ := newTestRound(t, WithStack(deck.MustParseCards("AsAs")))

	err := r.Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `setup stage "stack"`)
	assert.Contains(t, err.Error(), "A♠ stacked more than once")
	assert.Equal(t, StateFinished, r.State())
	assert.Equal(t, OutcomeAbandoned, r.Outcome())
}
