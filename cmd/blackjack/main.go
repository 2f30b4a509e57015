package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Config     string           `short:"c" help:"HCL configuration file" default:"${config_file}" type:"path"`
	Seed       *int64           `short:"s" help:"Shuffle seed (replays a round exactly)" xor:"seed"`
	RandomSeed bool             `help:"Derive the shuffle seed from the clock" xor:"seed"`
	Player     *string          `short:"p" help:"Your display name"`
	Dealer     *string          `help:"Dealer display name"`
	TUI        bool             `help:"Use the full screen interface"`
	NoColor    bool             `help:"Disable colour output"`
	NoHistory  bool             `help:"Do not print the round history at the end"`
	Stack      string           `help:"Cards to put on top of the deck after shuffling, e.g. 'AsKh9d5c'"`
	LogFile    *string          `help:"Debug log file"`
	LogLevel   *string          `help:"Log level (debug, info, warn, error)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, cliOptions()...)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func cliOptions() []kong.Option {
	return []kong.Option{
		kong.Name("blackjack"),
		kong.Description("Play a round of blackjack against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	}
}
