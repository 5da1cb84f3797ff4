package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/display"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/table"
)

type PlayCmd struct {
	Config    string `short:"c" help:"Table configuration file (HCL)" default:"holdem.hcl" type:"path"`
	Opponents int    `short:"o" help:"Number of computer opponents when no config file exists (1-8)" default:"0"`
	Seed      *int64 `help:"Random seed for reproducible sessions"`
	Plain     bool   `help:"Line-oriented interface instead of the full-screen one"`
	History   string `help:"Write a PHH hand history to this file after every hand" type:"path"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if c.Opponents > 0 {
		cfg.Seats = cfg.Seats[:1]
		for i := range c.Opponents {
			cfg.Seats = append(cfg.Seats, config.SeatSettings{Name: fmt.Sprintf("AI Player %d", i+1), Stack: cfg.Table.StartingStack})
		}
	}
	if c.Seed != nil {
		cfg.Table.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Log.Level
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	logFile := cfg.Log.File
	if cli.LogFile != "" {
		logFile = cli.LogFile
	}
	// the full-screen interface owns the terminal, so logs go to a file
	var fallback io.Writer = os.Stderr
	if !c.Plain {
		fallback = io.Discard
	}
	logger, closeLog, err := newLogger(level, logFile, fallback, "holdem")
	if err != nil {
		return err
	}
	defer closeLog()

	tbl, err := table.New(cfg.TableConfig(), table.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("Starting session", "table", tbl.ID(), "seats", len(cfg.Seats))

	if c.History != "" {
		tbl.Subscribe(phh.NewRecorder(
			phh.WithTable(tbl.ID()),
			phh.WithFile(c.History),
			phh.WithLogger(logger),
		))
	}

	snap, err := tbl.StartHand()
	if err != nil {
		return err
	}

	if c.Plain {
		fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
		fmt.Println(display.HelpText)
		return display.RunPlain(tbl, snap, os.Stdin, os.Stdout, display.DefaultStyles())
	}

	model := display.NewTUIModel(tbl, snap, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	fmt.Println(display.FormatStats(tbl.Stats()))
	return nil
}
