package game

import (
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
)

// ActionOption is a legal action with its amount bounds. For Raise the
// bounds are raise-to totals; for Call and AllIn Min and Max are equal.
type ActionOption struct {
	Action Action
	Min    int
	Max    int
}

// ValidActions lists the legal actions for the seat to act.
func (h *HandState) ValidActions() []ActionOption {
	if h.err != nil || h.Round >= Showdown || h.Actor < 0 {
		return nil
	}
	s := h.Seats[h.Actor]
	toCall := h.HighestBet - s.Bet
	allInTo := s.Bet + s.Stack

	opts := []ActionOption{{Action: Fold}}
	if toCall <= 0 {
		opts = append(opts, ActionOption{Action: Check})
	} else if toCall < s.Stack {
		opts = append(opts, ActionOption{Action: Call, Min: h.HighestBet, Max: h.HighestBet})
	}

	mayRaise := h.mayRaise(h.Actor)
	if minTo := h.HighestBet + h.MinRaise; mayRaise && toCall < s.Stack && allInTo > minTo && h.opponentCanAct(h.Actor) {
		opts = append(opts, ActionOption{Action: Raise, Min: minTo, Max: allInTo})
	}
	if mayRaise || allInTo <= h.HighestBet {
		opts = append(opts, ActionOption{Action: AllIn, Min: allInTo, Max: allInTo})
	}
	return opts
}

// CanPerform reports whether action is among the valid actions.
func (h *HandState) CanPerform(action Action) bool {
	for _, o := range h.ValidActions() {
		if o.Action == action {
			return true
		}
	}
	return false
}

// View is what one seat is allowed to know about the hand.
type View struct {
	Seat       int
	Name       string
	Hole       []deck.Card
	Community  []deck.Card
	Round      Round
	Stack      int
	Bet        int
	ToCall     int // capped at the seat's stack
	Pot        int
	HighestBet int
	MinRaiseTo int
	MaxRaiseTo int
	BigBlind   int

	Opponents       int // other seats still in the hand
	ActiveOpponents int // other seats that can still bet
	Position        int // 1 is first left of the button, NumPlayers is the button
	NumPlayers      int

	Valid []ActionOption
}

// View returns the hand as seen from seatID. Valid is only populated when
// that seat is the one to act.
func (h *HandState) View(seatID int) View {
	s := h.Seats[seatID]
	v := View{
		Seat:       s.ID,
		Name:       s.Name,
		Hole:       append([]deck.Card(nil), s.Hole...),
		Community:  append([]deck.Card(nil), h.Community...),
		Round:      h.Round,
		Stack:      s.Stack,
		Bet:        s.Bet,
		ToCall:     min(max(0, h.HighestBet-s.Bet), s.Stack),
		Pot:        h.Pot(),
		HighestBet: h.HighestBet,
		MinRaiseTo: h.HighestBet + h.MinRaise,
		MaxRaiseTo: s.Bet + s.Stack,
		BigBlind:   h.BigBlind,
	}

	active := h.activeSeatIDs()
	v.NumPlayers = len(active)
	for i, id := range orderFromButton(active, h.Button, len(h.Seats)) {
		if id == seatID {
			v.Position = i + 1
		}
	}
	for _, o := range h.Seats {
		if o.ID == seatID {
			continue
		}
		if o.InHand() {
			v.Opponents++
		}
		if o.CanAct() {
			v.ActiveOpponents++
		}
	}
	if seatID == h.Actor {
		v.Valid = h.ValidActions()
	}
	return v
}

// orderFromButton sorts ids so the seat left of the button comes first and
// the button last.
func orderFromButton(ids []int, button, numSeats int) []int {
	out := slices.Clone(ids)
	slices.SortFunc(out, func(a, b int) int {
		return distanceFromButton(a, button, numSeats) - distanceFromButton(b, button, numSeats)
	})
	return out
}
