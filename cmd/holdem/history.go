package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/phh"
)

type HistoryCmd struct {
	File    string `arg:"" help:"PHH session file written by play --history" type:"existingfile"`
	Actions bool   `short:"a" help:"Print every action, not just the summary"`
}

func (c *HistoryCmd) Run(cli *CLI) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	hands, err := phh.DecodeSession(f)
	if err != nil {
		return err
	}
	return writeHistory(os.Stdout, hands, c.Actions)
}

func writeHistory(w io.Writer, hands []phh.HandHistory, actions bool) error {
	for i, hand := range hands {
		board, err := hand.Board()
		if err != nil {
			return fmt.Errorf("hand %s: %w", hand.HandID, err)
		}

		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("Hand %d", i+1)), valueStyle.Render(hand.HandID))
		if len(board) > 0 {
			fmt.Fprintf(w, "  board  %s\n", deck.FormatCards(board))
		}
		fmt.Fprintf(w, "  pot    %d\n", hand.Pot())
		for p, name := range hand.Players {
			net := 0
			if p < len(hand.FinishingStacks) && p < len(hand.StartingStacks) {
				net = hand.FinishingStacks[p] - hand.StartingStacks[p]
			}
			fmt.Fprintf(w, "  p%-2d %-16s %+d\n", p+1, name, net)
		}
		if actions {
			fmt.Fprintf(w, "  %s\n", strings.Join(hand.Actions, "\n  "))
		}
		fmt.Fprintln(w)
	}
	return nil
}
