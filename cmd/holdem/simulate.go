package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/table"
)

type SimulateCmd struct {
	Tables     int      `short:"t" help:"Number of independent tables" default:"8"`
	Hands      int      `short:"n" help:"Hands per table" default:"500"`
	Workers    int      `short:"w" help:"Tables played at once (0 for one per table)" default:"0"`
	Seed       int64    `help:"Base seed, table i uses seed+i" default:"1"`
	SmallBlind int      `help:"Small blind" default:"5"`
	BigBlind   int      `help:"Big blind" default:"10"`
	Stack      int      `help:"Starting stack" default:"1000"`
	Profiles   []string `short:"p" help:"Profiles to seat, one seat each (default: six built-ins)"`
	Skill      string   `help:"Skill level for every seat" default:"expert" enum:"rookie,amateur,intermediate,advanced,expert"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	profileStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (c *SimulateCmd) Run(cli *CLI) error {
	logger, closeLog, err := newLogger(cli.LogLevel, cli.LogFile, os.Stderr, "simulate")
	if err != nil {
		return err
	}
	defer closeLog()

	seats := simulator.DefaultSeats(c.Stack)
	if len(c.Profiles) > 0 {
		seats = nil
		for i, p := range c.Profiles {
			seats = append(seats, table.SeatConfig{Name: fmt.Sprintf("%s-%d", p, i+1), Stack: c.Stack, Profile: p})
		}
	}
	for i := range seats {
		seats[i].Skill = c.Skill
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, err := simulator.Run(ctx, simulator.Config{
		Tables:     c.Tables,
		Hands:      c.Hands,
		Workers:    c.Workers,
		Seed:       c.Seed,
		SmallBlind: c.SmallBlind,
		BigBlind:   c.BigBlind,
		Seats:      seats,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	printSummary(res, time.Since(start))
	return nil
}

func printSummary(res *simulator.Result, elapsed time.Duration) {
	fmt.Println(titleStyle.Render(" Simulation results "))
	fmt.Printf("Tables: %d  Hands: %d  Showdowns: %d  Uncontested: %d  Largest pot: %d  Busted tables: %d  (%s)\n\n",
		res.Tables, res.Hands, res.Showdowns, res.Uncontested, res.LargestPot, res.GameOvers, elapsed.Round(time.Millisecond))

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-18s %7s %9s %9s %17s %8s %8s",
		"profile", "hands", "bb/hand", "stddev", "95% CI", "won", "sd won")))
	for _, name := range res.ProfileNames() {
		s := res.Profiles[name]
		low, high := s.ConfidenceInterval95()
		mean := fmt.Sprintf("%+9.3f", s.Mean())
		if s.Mean() >= 0 {
			mean = winStyle.Render(mean)
		} else {
			mean = lossStyle.Render(mean)
		}
		sdShare := 0.0
		if wins := s.ShowdownWins + s.NonShowdownWins; wins > 0 {
			sdShare = float64(s.ShowdownWins) / float64(wins)
		}
		fmt.Printf("%s %7d %s %9.3f %17s %7.1f%% %7.1f%%\n",
			profileStyle.Render(fmt.Sprintf("%-18s", name)), s.Hands, mean, s.StdDev(),
			fmt.Sprintf("[%+.2f, %+.2f]", low, high), s.WinRate()*100, sdShare*100)
	}

	var streets []string
	totals := map[string]int{}
	for _, s := range res.Profiles {
		for street, n := range s.Streets {
			totals[street] += n
		}
	}
	for _, street := range []string{"preflop", "flop", "turn", "river"} {
		streets = append(streets, fmt.Sprintf("%s %d", street, totals[street]))
	}
	fmt.Println()
	fmt.Println("Seat-hands ending on: " + strings.Join(streets, ", "))
}
