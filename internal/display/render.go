package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/table"
)

// Styles holds the lipgloss styles used to draw a table.
type Styles struct {
	Header     lipgloss.Style
	Board      lipgloss.Style
	Seat       lipgloss.Style
	Actor      lipgloss.Style
	Folded     lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	HiddenCard lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Pane       lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Board:      lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Seat:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		Actor:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Folded:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		RedCard:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		HiddenCard: lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Info:       lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
	}
}

// Cards formats card codes with suit colours. Unparseable codes are shown as is.
func (s Styles) Cards(codes []string) string {
	if len(codes) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		c, err := deck.ParseCard(code)
		switch {
		case err != nil:
			parts = append(parts, code)
		case c.IsRed():
			parts = append(parts, s.RedCard.Render(c.String()))
		default:
			parts = append(parts, s.BlackCard.Render(c.String()))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Table renders the board, the seats and the viewer's options.
func (s Styles) Table(snap table.Snapshot) string {
	var b strings.Builder

	b.WriteString(s.Header.Render(fmt.Sprintf("Hand #%d  %s", snap.HandNumber, strings.ToUpper(snap.Round))))
	b.WriteString("\n")
	b.WriteString(s.Board.Render(fmt.Sprintf("Board %s  Pot %d", s.Cards(snap.Community), snap.Pot)))
	b.WriteString("\n\n")

	for _, seat := range snap.Seats {
		b.WriteString(s.seatLine(seat))
		b.WriteString("\n")
	}

	if snap.Viewer >= 0 && snap.Actor == snap.Viewer {
		b.WriteString("\n")
		b.WriteString(s.options(snap))
	}
	if snap.Message != "" {
		b.WriteString("\n")
		b.WriteString(s.Success.Render(snap.Message))
	}
	return b.String()
}

func (s Styles) seatLine(seat table.SeatView) string {
	marker := "  "
	if seat.Button {
		marker = "D "
	}
	hole := s.HiddenCard.Render("[?? ??]")
	if len(seat.Hole) > 0 {
		hole = s.Cards(seat.Hole)
	}

	line := fmt.Sprintf("%s%-14s %6d", marker, seat.Name, seat.Stack)
	if seat.Bet > 0 {
		line += fmt.Sprintf("  bet %d", seat.Bet)
	}

	style := s.Seat
	switch {
	case seat.Out:
		return s.Folded.Render(line + "  out")
	case seat.Folded:
		style = s.Folded
	case seat.ToAct:
		style = s.Actor
	}

	status := seat.LastAction
	if seat.AllIn {
		status = "all-in"
	}
	if seat.Hand != "" {
		status = seat.Hand
	}
	return style.Render(line) + "  " + hole + "  " + s.Info.Render(status)
}

func (s Styles) options(snap table.Snapshot) string {
	var opts []string
	for _, name := range snap.Valid {
		switch name {
		case "fold":
			opts = append(opts, s.Error.Render("[fold]"))
		case "check":
			opts = append(opts, s.Success.Render("[check]"))
		case "call":
			opts = append(opts, s.Success.Render(fmt.Sprintf("[call %d]", snap.CallAmount)))
		case "raise":
			opts = append(opts, s.Warning.Render(fmt.Sprintf("[raise %d-%d]", snap.MinRaiseTo, snap.MaxRaiseTo)))
		case "allin":
			opts = append(opts, s.Warning.Render("[allin]"))
		}
	}
	return s.Actor.Render("Your action: ") + strings.Join(opts, " ")
}
