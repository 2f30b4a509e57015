package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/evaluator"
)

// SetupPipeline returns the stages run once before gameplay
func SetupPipeline(r *Round) *Pipeline {
	return NewPipeline("setup", r.logger,
		NewStage("load-deck", loadDeck),
		NewStage("shuffle", shuffleDeck),
		NewStage("stack", stackDeck),
		NewStage("deal", dealOpeningHands),
	)
}

// GameplayPipeline returns the stages run on every tick. Scoring must follow
// decisions and rendering must follow scoring.
func GameplayPipeline(r *Round) *Pipeline {
	return NewPipeline("gameplay", r.logger,
		NewStage("apply-decisions", applyDecisions),
		NewStage("score", scoreHands),
		NewStage("render", renderHands),
	)
}

func loadDeck(r *Round) error {
	ids := r.registry.IDs()
	for _, id := range ids {
		r.registry.SetFace(id, deck.FaceUp)
	}
	r.deck.Load(ids)
	return nil
}

func shuffleDeck(r *Round) error {
	r.deck.Shuffle(r.seed)
	r.logger.Debug("Shuffled deck", "seed", r.seed, "cards", r.deck.Len())
	return nil
}

func stackDeck(r *Round) error {
	if len(r.stack) == 0 {
		return nil
	}
	ids := make([]deck.ID, len(r.stack))
	seen := make(map[deck.ID]bool, len(r.stack))
	for i, c := range r.stack {
		id, ok := r.registry.Find(c.Suit, c.Rank)
		if !ok {
			return fmt.Errorf("no card %s in registry", c)
		}
		if seen[id] {
			return fmt.Errorf("card %s stacked more than once", c)
		}
		seen[id] = true
		ids[i] = id
	}
	r.logger.Warn("Stacking deck", "cards", len(ids))
	return r.deck.Stack(ids)
}

// dealOpeningHands deals dealer, player, dealer, player. The dealer's second
// card is the face-down hole card.
func dealOpeningHands(r *Round) error {
	for round := 0; round < 2; round++ {
		for _, p := range r.players {
			face := deck.FaceUp
			if p.IsDealer() && round == 1 {
				face = deck.FaceDown
			}
			if err := r.dealTo(p, face); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyDecisions pops at most one decision for the human player. The dealer
// does not act.
func applyDecisions(r *Round) error {
	r.lastDecision = 0
	for _, p := range r.players {
		if p.IsDealer() || p.Holding {
			continue
		}

		decision, ok := r.queue.TryPop()
		if !ok {
			continue
		}
		r.lastDecision = decision
		r.bus.Publish(NewDecisionEvent(p.Name, decision, r.tick, r.clock.Now("decision")))
		r.logger.Info("Applying decision", "player", p.Name, "decision", decision, "tick", r.tick)

		switch decision {
		case Hit:
			if err := r.dealTo(p, deck.FaceUp); err != nil {
				return err
			}
		case Hold:
			p.Holding = true
		}
	}
	return nil
}

func scoreHands(r *Round) error {
	for _, p := range r.players {
		p.Score = evaluator.Evaluate(r.registry.Cards(p.Hand.IDs()))
	}
	return nil
}

func renderHands(r *Round) error {
	view := r.buildView()
	r.view = view
	r.renderer.RenderRound(view)
	return nil
}
