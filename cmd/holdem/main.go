package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	NoColor  bool             `help:"Disable colour output" env:"NO_COLOR"`
	LogLevel string           `help:"Log level (debug, info, warn, error)" default:""`
	LogFile  string           `help:"Write logs to this file instead of stderr"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play against computer opponents"`
	Simulate SimulateCmd `cmd:"" help:"Run computer-only tables and compare profiles"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate a hand and estimate its equity"`
	History  HistoryCmd  `cmd:"" help:"Summarise a recorded hand history"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em against configurable computer opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
