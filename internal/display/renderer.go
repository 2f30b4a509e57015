package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// TerminalRenderer prints each tick of a round as plain styled text
type TerminalRenderer struct {
	out         io.Writer
	logger      *log.Logger
	showHistory bool
}

// NewTerminalRenderer creates a renderer writing to out
func NewTerminalRenderer(out io.Writer, logger *log.Logger, showHistory bool) *TerminalRenderer {
	return &TerminalRenderer{
		out:         out,
		logger:      logger.WithPrefix("render"),
		showHistory: showHistory,
	}
}

// RenderRound implements game.Renderer
func (r *TerminalRenderer) RenderRound(view game.RoundView) {
	r.logger.Debug("Rendering round", "tick", view.Tick, "deck", view.DeckSize)
	if _, err := fmt.Fprintln(r.out, FormatRound(view)); err != nil {
		r.logger.Error("Failed to write round", "error", err)
	}
}

// RenderOutcome implements game.Renderer
func (r *TerminalRenderer) RenderOutcome(result *game.Result) {
	out := FormatOutcome(result)
	if r.showHistory {
		out += "\n" + result.History
	}
	if _, err := fmt.Fprint(r.out, out); err != nil {
		r.logger.Error("Failed to write outcome", "error", err)
	}
}
