// Package phh records hands in the Poker Hand History format, one TOML
// table per hand, and reads such files back.
package phh

import (
	"strings"
	"time"

	"github.com/lox/holdem-engine/internal/deck"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// HandHistory is a single hand in PHH form. Players are ordered from the
// small blind clockwise; p1 in Actions is Players[0].
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// Board returns the community cards dealt in the hand's actions.
func (h *HandHistory) Board() ([]deck.Card, error) {
	var board []deck.Card
	for _, a := range h.Actions {
		codes, ok := strings.CutPrefix(a, "d db ")
		if !ok {
			continue
		}
		cards, err := deck.ParseCards(codes)
		if err != nil {
			return nil, err
		}
		board = append(board, cards...)
	}
	return board, nil
}

// Pot returns the total committed by every player, including any
// uncalled chips that were returned.
func (h *HandHistory) Pot() int {
	if len(h.FinishingStacks) != len(h.StartingStacks) || len(h.Winnings) != len(h.StartingStacks) {
		return 0
	}
	pot := 0
	for i, start := range h.StartingStacks {
		pot += start - h.FinishingStacks[i] + h.Winnings[i]
	}
	return pot
}

func (h *HandHistory) setTime(t time.Time) {
	h.Timestamp = t
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	h.Time = utc.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = utc.Day()
	h.Month = int(utc.Month())
	h.Year = utc.Year()
}

// Cards formats cards in packed PHH notation, e.g. "AsTd".
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Code())
	}
	return b.String()
}
