package table

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// eventLog turns game events into readable lines and keeps the most recent ones.
type eventLog struct {
	names []string
	lines []string
	size  int
}

func newEventLog(names []string, size int) *eventLog {
	return &eventLog{names: names, size: size}
}

func (l *eventLog) OnEvent(e game.Event) {
	if line := l.format(e); line != "" {
		l.append(line)
	}
}

func (l *eventLog) append(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.size; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// tail returns a copy of the kept lines.
func (l *eventLog) tail() []string {
	return append([]string(nil), l.lines...)
}

// last returns the most recent line.
func (l *eventLog) last() string {
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

func (l *eventLog) name(seat int) string {
	if seat >= 0 && seat < len(l.names) {
		return l.names[seat]
	}
	return fmt.Sprintf("seat %d", seat)
}

func (l *eventLog) format(e game.Event) string {
	switch ev := e.(type) {
	case game.HandStartEvent:
		return fmt.Sprintf("*** NEW HAND *** %s has the button", l.name(ev.Button))
	case game.BlindsPostedEvent:
		return fmt.Sprintf("%s posts small blind %d, %s posts big blind %d",
			l.name(ev.SmallBlindSeat), ev.SmallBlindAmount, l.name(ev.BigBlindSeat), ev.BigBlindAmount)
	case game.PlayerActionEvent:
		return formatAction(ev)
	case game.StreetChangeEvent:
		return fmt.Sprintf("*** %s *** [%s] pot %d", strings.ToUpper(ev.Round.String()), deck.FormatCards(ev.Community), ev.Pot)
	case game.ShowdownEvent:
		parts := make([]string, 0, len(ev.Hands))
		for _, h := range ev.Hands {
			parts = append(parts, fmt.Sprintf("%s shows [%s] %s", l.name(h.Seat), deck.FormatCards(h.Hole), h.Description))
		}
		return strings.Join(parts, "; ")
	case game.PotAwardedEvent:
		return l.formatAward(ev.Award)
	case game.HandEndEvent:
		return ""
	default:
		return ""
	}
}

func formatAction(ev game.PlayerActionEvent) string {
	switch ev.Action {
	case game.Fold:
		return fmt.Sprintf("%s folds", ev.Name)
	case game.Check:
		return fmt.Sprintf("%s checks", ev.Name)
	case game.Call:
		return fmt.Sprintf("%s calls (pot now %d)", ev.Name, ev.PotAfter)
	case game.Raise:
		return fmt.Sprintf("%s raises to %d (pot now %d)", ev.Name, ev.Amount, ev.PotAfter)
	case game.AllIn:
		return fmt.Sprintf("%s is all-in for %d (pot now %d)", ev.Name, ev.Amount, ev.PotAfter)
	default:
		return fmt.Sprintf("%s %s", ev.Name, ev.Action)
	}
}

func (l *eventLog) formatAward(a game.Award) string {
	pot := "main pot"
	if a.Pot > 0 {
		pot = fmt.Sprintf("side pot %d", a.Pot)
	}
	if a.Returned {
		w := a.Winners[0]
		if len(a.Eligible) == 1 && a.Pot > 0 {
			return fmt.Sprintf("uncalled %d returned to %s", w.Amount, l.name(w.Seat))
		}
		return fmt.Sprintf("%s wins %d", l.name(w.Seat), w.Amount)
	}
	parts := make([]string, 0, len(a.Winners))
	for _, w := range a.Winners {
		parts = append(parts, fmt.Sprintf("%s wins %d from the %s with %s", l.name(w.Seat), w.Amount, pot, w.Hand))
	}
	return strings.Join(parts, "; ")
}
