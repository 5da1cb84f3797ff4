package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

type EvalCmd struct {
	Hole      string `arg:"" help:"Hole cards, e.g. 'AsKs'"`
	Board     string `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
	Versus    string `help:"Opponent hole cards to compare against on a complete board"`
	Opponents int    `short:"o" help:"Random opponents for equity" default:"1"`
	Samples   int    `short:"n" help:"Monte Carlo samples" default:"20000"`
	Seed      *int64 `help:"Random seed for reproducible results"`
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

func (c *EvalCmd) Run(cli *CLI) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("hole cards: need exactly 2, got %d", len(hole))
	}
	board, err := deck.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	show := func(label, value string) {
		fmt.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label)), valueStyle.Render(value))
	}
	show("Hole", deck.FormatCards(hole))
	if len(board) > 0 {
		show("Board", deck.FormatCards(board))
	}

	cards := append(append([]deck.Card{}, hole...), board...)
	var hand evaluator.Hand
	if len(cards) >= 5 {
		hand, err = evaluator.Evaluate(cards)
		if err != nil {
			return err
		}
		show("Hand", hand.Describe())
		show("Best five", deck.FormatCards(hand.Cards))
	} else {
		show("Percentile", fmt.Sprintf("%.1f%%", deck.StartingHandPercentile(hole)*100))
	}
	show("Strength", bot.HandStrength(hole, board).String())

	if c.Versus != "" {
		if err := c.compare(hand, board); err != nil {
			return err
		}
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	res, err := evaluator.EstimateEquity(context.Background(), evaluator.EquityRequest{
		Hole:      hole,
		Board:     board,
		Opponents: c.Opponents,
		Samples:   c.Samples,
		Seed:      seed,
	})
	if err != nil {
		return err
	}
	show("Equity", fmt.Sprintf("%.1f%% vs %d random (win %d, tie %d of %d)",
		res.Equity()*100, c.Opponents, res.Wins, res.Ties, res.Samples))
	return nil
}

func (c *EvalCmd) compare(hand evaluator.Hand, board []deck.Card) error {
	if len(board) != 5 {
		return fmt.Errorf("--versus needs a complete five card board")
	}
	other, err := deck.ParseCards(c.Versus)
	if err != nil {
		return fmt.Errorf("versus: %w", err)
	}
	if len(other) != 2 {
		return fmt.Errorf("versus: need exactly 2 cards, got %d", len(other))
	}
	otherHand, err := evaluator.Evaluate(append(other, board...))
	if err != nil {
		return err
	}
	_, why := hand.Explain(otherHand)
	fmt.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", "Versus")), valueStyle.Render(why))
	return nil
}
