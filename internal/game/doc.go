// Package game runs a single round of blackjack between a dealer and one
// human player.
//
// A Round owns the card registry, the deck and both hands. It runs a setup
// pipeline once (load, shuffle, optional stack, deal) and then a gameplay
// pipeline per tick (apply at most one decision, score, render). Decisions
// arrive through a DecisionQueue which is safe to fill from another
// goroutine.
//
// # Basic Usage
//
// The Driver wires a round to an input source and a renderer:
//
//	driver := game.NewDriver(source, renderer, logger, game.WithSeed(42))
//	result, err := driver.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Outcome)
//
// # Deterministic Testing
//
// Rounds with the same seed deal the same cards. WithStack puts chosen
// cards on top of the deck after the shuffle and WithClock injects a
// quartz mock for event timestamps and round IDs.
package game
