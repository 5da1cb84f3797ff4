package game

import "github.com/lox/holdem-engine/internal/deck"

// Seat is a player's chair at the table. Seats persist across hands; the
// per-hand fields are cleared by reset when a new hand starts.
type Seat struct {
	ID    int
	Name  string
	Stack int

	Hole       []deck.Card
	Bet        int // chips committed in the current round
	TotalBet   int // chips committed in the hand
	Folded     bool
	AllIn      bool
	Out        bool // no chips when the hand started
	LastAction string
}

// NewSeat creates a seat with a starting stack.
func NewSeat(id int, name string, stack int) *Seat {
	return &Seat{ID: id, Name: name, Stack: stack}
}

// InHand reports whether the seat still contests the pot.
func (s *Seat) InHand() bool {
	return !s.Out && !s.Folded
}

// CanAct reports whether the seat can still be asked for an action.
func (s *Seat) CanAct() bool {
	return s.InHand() && !s.AllIn
}

func (s *Seat) reset() {
	s.Hole = nil
	s.Bet = 0
	s.TotalBet = 0
	s.Folded = false
	s.AllIn = false
	s.LastAction = ""
	s.Out = s.Stack <= 0
}

// commit moves chips from the stack into the current round. It never
// commits more than the stack holds and returns the amount moved.
func (s *Seat) commit(amount int) int {
	amount = min(amount, s.Stack)
	s.Stack -= amount
	s.Bet += amount
	s.TotalBet += amount
	if s.Stack == 0 {
		s.AllIn = true
	}
	return amount
}
