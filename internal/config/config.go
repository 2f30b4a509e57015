package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// DefaultFile is read when no --config flag is given
const DefaultFile = "blackjack.hcl"

const maxNameLength = 20

// Config is the resolved configuration of one run
type Config struct {
	Round RoundSettings
	UI    UISettings
}

// RoundSettings controls how the round is dealt
type RoundSettings struct {
	Seed   int64
	Dealer string
	Player string
	Stack  string
}

// UISettings controls presentation and logging
type UISettings struct {
	LogLevel    string
	LogFile     string
	TUI         bool
	NoColor     bool
	ShowHistory bool
}

// fileConfig mirrors the HCL file. Blocks and attributes are optional so a
// partial file only overrides what it names.
type fileConfig struct {
	Round *fileRound `hcl:"round,block"`
	UI    *fileUI    `hcl:"ui,block"`
}

type fileRound struct {
	Seed   *int64 `hcl:"seed,optional"`
	Dealer string `hcl:"dealer,optional"`
	Player string `hcl:"player,optional"`
	Stack  string `hcl:"stack,optional"`
}

type fileUI struct {
	LogLevel    string `hcl:"log_level,optional"`
	LogFile     string `hcl:"log_file,optional"`
	TUI         bool   `hcl:"tui,optional"`
	NoColor     bool   `hcl:"no_color,optional"`
	ShowHistory *bool  `hcl:"show_history,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Round: RoundSettings{
			Seed:   game.DefaultSeed,
			Dealer: "Dealer",
			Player: "You",
		},
		UI: UISettings{
			LogLevel:    "info",
			LogFile:     "blackjack.log",
			ShowHistory: true,
		},
	}
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return raw.resolve(), nil
}

// resolve applies defaults for everything the file left out
func (f *fileConfig) resolve() *Config {
	config := Default()

	if r := f.Round; r != nil {
		if r.Seed != nil {
			config.Round.Seed = *r.Seed
		}
		if r.Dealer != "" {
			config.Round.Dealer = r.Dealer
		}
		if r.Player != "" {
			config.Round.Player = r.Player
		}
		config.Round.Stack = r.Stack
	}

	if u := f.UI; u != nil {
		if u.LogLevel != "" {
			config.UI.LogLevel = u.LogLevel
		}
		if u.LogFile != "" {
			config.UI.LogFile = u.LogFile
		}
		if u.ShowHistory != nil {
			config.UI.ShowHistory = *u.ShowHistory
		}
		config.UI.TUI = u.TUI
		config.UI.NoColor = u.NoColor
	}

	return config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Round.Dealer == "" {
		return fmt.Errorf("dealer name is required")
	}
	if c.Round.Player == "" {
		return fmt.Errorf("player name is required")
	}
	if len(c.Round.Dealer) > maxNameLength || len(c.Round.Player) > maxNameLength {
		return fmt.Errorf("names must be at most %d characters", maxNameLength)
	}
	if c.Round.Dealer == c.Round.Player {
		return fmt.Errorf("dealer and player names must differ")
	}

	if c.Round.Stack != "" {
		cards, err := deck.ParseCards(c.Round.Stack)
		if err != nil {
			return fmt.Errorf("invalid stack: %w", err)
		}
		seen := make(map[deck.Card]bool, len(cards))
		for _, card := range cards {
			if seen[card] {
				return fmt.Errorf("invalid stack: %s appears more than once", card)
			}
			seen[card] = true
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	if c.UI.LogFile == "" {
		return fmt.Errorf("log file is required")
	}

	return nil
}
