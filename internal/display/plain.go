package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/lox/holdem-engine/internal/table"
)

// RunPlain plays a table over line-oriented input and output, for terminals
// without full-screen support and for scripted sessions.
func RunPlain(g Game, snap table.Snapshot, in io.Reader, out io.Writer, styles Styles) error {
	fmt.Fprintln(out, styles.Table(snap))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, styles.Error.Render(err.Error()))
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}

		next, status, err := Execute(g, snap, cmd)
		switch {
		case errors.Is(err, table.ErrGameOver):
			fmt.Fprintln(out, styles.Warning.Render("Game over."))
			fmt.Fprintln(out, FormatStats(g.Stats()))
			return nil
		case err != nil:
			fmt.Fprintln(out, styles.Error.Render(err.Error()))
			continue
		}

		if cmd.Kind == CmdStats || cmd.Kind == CmdHelp {
			fmt.Fprintln(out, status)
			continue
		}
		for _, line := range newLines(snap, next) {
			fmt.Fprintln(out, styles.Info.Render(line))
		}
		snap = next
		fmt.Fprintln(out, styles.Table(snap))
	}
}

// newLines returns the log lines in next that were not in prev.
func newLines(prev, next table.Snapshot) []string {
	if len(prev.Log) == 0 {
		return next.Log
	}
	last := prev.Log[len(prev.Log)-1]
	for i := len(next.Log) - 1; i >= 0; i-- {
		if next.Log[i] == last {
			return next.Log[i+1:]
		}
	}
	return next.Log
}
