package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// Run plays one round
func (c *CLI) Run() error {
	clock := quartz.NewReal()

	cfg, err := c.resolveConfig(clock)
	if err != nil {
		return err
	}

	logger, logCloser, err := setupLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if err := logCloser.Close(); err != nil {
			log.Error("Failed to close debug file", "error", err)
		}
	}()

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	opts, err := roundOptions(cfg, clock)
	if err != nil {
		return err
	}

	logger.Info("Starting round", "seed", cfg.Round.Seed, "tui", cfg.UI.TUI, "stack", cfg.Round.Stack)

	if cfg.UI.TUI {
		return playTUI(ctx, logger, opts)
	}
	return playTerminal(ctx, cfg, logger, opts)
}

// resolveConfig loads the config file and applies command line overrides
func (c *CLI) resolveConfig(clock quartz.Clock) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.Seed != nil {
		cfg.Round.Seed = *c.Seed
	}
	if c.RandomSeed {
		cfg.Round.Seed = randutil.SeedFromTime(clock.Now("seed"))
	}
	if c.Player != nil {
		cfg.Round.Player = *c.Player
	}
	if c.Dealer != nil {
		cfg.Round.Dealer = *c.Dealer
	}
	if c.Stack != "" {
		cfg.Round.Stack = c.Stack
	}
	if c.LogFile != nil {
		cfg.UI.LogFile = *c.LogFile
	}
	if c.LogLevel != nil {
		cfg.UI.LogLevel = *c.LogLevel
	}
	if c.TUI {
		cfg.UI.TUI = true
	}
	if c.NoColor {
		cfg.UI.NoColor = true
	}
	if c.NoHistory {
		cfg.UI.ShowHistory = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func roundOptions(cfg *config.Config, clock quartz.Clock) ([]game.RoundOption, error) {
	opts := []game.RoundOption{
		game.WithSeed(cfg.Round.Seed),
		game.WithNames(cfg.Round.Dealer, cfg.Round.Player),
		game.WithClock(clock),
	}
	if cfg.Round.Stack != "" {
		cards, err := deck.ParseCards(cfg.Round.Stack)
		if err != nil {
			return nil, fmt.Errorf("invalid stack: %w", err)
		}
		opts = append(opts, game.WithStack(cards))
	}
	return opts, nil
}

func playTerminal(ctx context.Context, cfg *config.Config, logger *log.Logger, opts []game.RoundOption) error {
	fmt.Print(display.TitleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	input := display.NewLineInput(os.Stdin, os.Stdout, logger)
	defer func() {
		if err := input.Close(); err != nil {
			logger.Error("Failed to close input", "error", err)
		}
	}()

	renderer := display.NewTerminalRenderer(os.Stdout, logger, cfg.UI.ShowHistory)
	driver := game.NewDriver(input, renderer, logger, opts...)

	result, err := driver.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Round finished", "outcome", result.Outcome, "ticks", result.Ticks)
	return nil
}

func playTUI(ctx context.Context, logger *log.Logger, opts []game.RoundOption) error {
	frontend := tui.NewFrontend(logger)
	driver := game.NewDriver(frontend, frontend, logger, opts...)

	var result *game.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = driver.Run(gctx)
		return err
	})
	g.Go(func() error {
		return frontend.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// The alternate screen is gone, leave the outcome on the terminal
	printOutcome(os.Stdout, result)
	logger.Info("Round finished", "outcome", result.Outcome, "ticks", result.Ticks)
	return nil
}

func printOutcome(w io.Writer, result *game.Result) {
	if result == nil {
		return
	}
	fmt.Fprint(w, display.FormatOutcome(result))
}
