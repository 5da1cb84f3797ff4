package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is the root of every rejected action.
	ErrIllegalAction = errors.New("illegal action")
	// ErrFault marks a broken invariant such as an exhausted deck or lost
	// chips. A faulted hand accepts no further actions.
	ErrFault = errors.New("game fault")
	// ErrNotEnoughPlayers is returned when fewer than two seats have chips.
	ErrNotEnoughPlayers = errors.New("need at least two seats with chips")
)

// ActionError explains why an action was rejected.
type ActionError struct {
	Seat   int
	Action Action
	Reason string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("seat %d cannot %s: %s", e.Seat, e.Action, e.Reason)
}

func (e *ActionError) Unwrap() error {
	return ErrIllegalAction
}

func illegal(seat int, action Action, format string, args ...any) error {
	return &ActionError{Seat: seat, Action: action, Reason: fmt.Sprintf(format, args...)}
}

func fault(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFault, fmt.Sprintf(format, args...))
}
