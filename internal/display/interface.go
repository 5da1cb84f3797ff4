package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/table"
)

// Game is the table surface the interface drives.
type Game interface {
	StartHand() (table.Snapshot, error)
	Act(req table.ActionRequest) (table.Snapshot, error)
	Stats() []table.SeatStats
}

// CommandKind is what a line of input asks for.
type CommandKind int

const (
	CmdAction CommandKind = iota
	CmdDeal
	CmdStats
	CmdHelp
	CmdQuit
)

// Command is parsed user input.
type Command struct {
	Kind   CommandKind
	Action game.Action
	Amount int // raise-to total
}

// HelpText lists the accepted commands.
const HelpText = "fold (f), check (k, ch), call (c), raise <to> (r), allin (a), deal (enter), stats, help, quit"

// ParseCommand turns a line such as "raise 60" into a Command.
func ParseCommand(input string) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return Command{Kind: CmdDeal}, nil
	}

	switch parts[0] {
	case "deal", "next", "n":
		return Command{Kind: CmdDeal}, nil
	case "stats", "s":
		return Command{Kind: CmdStats}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	case "ch":
		parts[0] = "check"
	}

	action, err := game.ParseAction(parts[0])
	if err != nil {
		return Command{}, fmt.Errorf("unknown command %q, type 'help' for available commands", parts[0])
	}
	cmd := Command{Kind: CmdAction, Action: action}

	if action == game.Raise {
		if len(parts) < 2 {
			return Command{}, fmt.Errorf("specify the total to raise to: 'raise <amount>'")
		}
		amount, err := strconv.Atoi(strings.TrimPrefix(parts[1], "$"))
		if err != nil || amount <= 0 {
			return Command{}, fmt.Errorf("invalid amount: %s", parts[1])
		}
		cmd.Amount = amount
	}
	return cmd, nil
}

// Execute applies cmd for the viewer's seat and returns the new snapshot
// along with a status line. Illegal actions come back as errors with the
// unchanged snapshot.
func Execute(g Game, snap table.Snapshot, cmd Command) (table.Snapshot, string, error) {
	switch cmd.Kind {
	case CmdDeal:
		if !snap.Complete && snap.HandNumber > 0 {
			return snap, "", fmt.Errorf("hand in progress, %s", actionHint(snap))
		}
		next, err := g.StartHand()
		return next, next.Message, err
	case CmdStats:
		return snap, FormatStats(g.Stats()), nil
	case CmdHelp:
		return snap, HelpText, nil
	case CmdQuit:
		return snap, "", nil
	}

	if snap.Viewer < 0 || snap.Actor != snap.Viewer {
		return snap, "", fmt.Errorf("not your turn")
	}
	next, err := g.Act(table.ActionRequest{Seat: snap.Viewer, Kind: cmd.Action, Amount: cmd.Amount})
	return next, next.Message, err
}

func actionHint(snap table.Snapshot) string {
	if len(snap.Valid) == 0 {
		return "waiting for other players"
	}
	return "choose one of: " + strings.Join(snap.Valid, ", ")
}

// FormatStats renders per-seat statistics as aligned lines.
func FormatStats(stats []table.SeatStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s %6s %5s %9s %5s", "player", "hands", "won", "chips", "sd")
	for _, s := range stats {
		fmt.Fprintf(&b, "\n%-14s %6d %5d %+9d %5d", s.Name, s.HandsPlayed, s.HandsWon, s.ChipsWon, s.Showdowns)
	}
	return b.String()
}
