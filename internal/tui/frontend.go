package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Frontend runs a Model in a tea.Program and exposes it to the game loop.
// Round updates are sent to the program as messages because the model is
// owned by the program's goroutine.
type Frontend struct {
	model   *Model
	program *tea.Program
}

// NewFrontend creates a full screen front end
func NewFrontend(logger *log.Logger, opts ...tea.ProgramOption) *Frontend {
	model := NewModel(logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &Frontend{
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// Run blocks until the program exits. Cancelling ctx quits the program.
func (f *Frontend) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, f.Quit)
	defer stop()

	_, err := f.program.Run()
	// Unblock any pending NextDecision once the screen is gone
	f.model.close()
	return err
}

// Quit asks the program to exit
func (f *Frontend) Quit() {
	f.program.Send(QuitMsg{})
}

// RenderRound implements game.Renderer
func (f *Frontend) RenderRound(view game.RoundView) {
	f.program.Send(RoundMsg{View: view})
}

// RenderOutcome implements game.Renderer
func (f *Frontend) RenderOutcome(result *game.Result) {
	f.program.Send(OutcomeMsg{Result: result})
}

// NextDecision implements game.DecisionSource
func (f *Frontend) NextDecision(ctx context.Context) (game.Decision, error) {
	return f.model.NextDecision(ctx)
}
