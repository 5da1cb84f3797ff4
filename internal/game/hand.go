package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// MaxSeats is the largest table the deck can serve with burns.
const MaxSeats = 9

// HandState represents the state of a poker hand
type HandState struct {
	ID         string
	Seats      []*Seat
	Button     int
	SmallBlind int
	BigBlind   int

	Round         Round
	Community     []deck.Card
	Actor         int // seat to act, -1 when nobody is pending
	HighestBet    int // highest round contribution
	MinRaise      int // minimum raise increment
	LastAggressor int

	SmallBlindSeat int
	BigBlindSeat   int

	Uncontested bool
	Awards      []Award
	Results     []Result

	acted     []bool
	chipTotal int
	settled   bool
	err       error

	deck   *deck.Deck
	bus    *EventBus
	logger *log.Logger
	clock  quartz.Clock
}

// NewHand starts a hand: it resets per-hand seat state, posts blinds, deals
// hole cards and positions the first actor. Seats must be indexed by ID.
// Seats without chips sit the hand out.
func NewHand(seats []*Seat, button int, smallBlind, bigBlind int, opts ...HandOption) (*HandState, error) {
	if len(seats) < 2 || len(seats) > MaxSeats {
		return nil, fmt.Errorf("table must have between 2 and %d seats, got %d", MaxSeats, len(seats))
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}
	if button < 0 || button >= len(seats) {
		return nil, fmt.Errorf("button %d out of range", button)
	}
	for i, s := range seats {
		if s.ID != i {
			return nil, fmt.Errorf("seat at index %d has id %d", i, s.ID)
		}
	}

	cfg := newHandConfig(opts)
	h := &HandState{
		ID:            cfg.handID,
		Seats:         seats,
		SmallBlind:    smallBlind,
		BigBlind:      bigBlind,
		Round:         PreFlop,
		Actor:         -1,
		MinRaise:      bigBlind,
		LastAggressor: -1,
		acted:         make([]bool, len(seats)),
		deck:          cfg.deck,
		bus:           cfg.bus,
		logger:        cfg.logger.WithPrefix("hand"),
		clock:         cfg.clock,
	}

	active := 0
	for _, s := range seats {
		s.reset()
		if !s.Out {
			active++
			h.chipTotal += s.Stack
		}
	}
	if active < 2 {
		return nil, ErrNotEnoughPlayers
	}

	h.Button = button
	if seats[button].Out {
		h.Button = h.nextActive(button)
	}

	h.postBlinds()
	if err := h.dealHoleCards(); err != nil {
		return nil, h.setFault(err)
	}

	h.bus.Publish(HandStartEvent{
		stamp:      h.now(),
		HandID:     h.ID,
		Button:     h.Button,
		Seats:      h.activeSeatIDs(),
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Players:    h.playerStarts(),
	})
	h.bus.Publish(BlindsPostedEvent{
		stamp:            h.now(),
		SmallBlindSeat:   h.SmallBlindSeat,
		SmallBlindAmount: seats[h.SmallBlindSeat].Bet,
		BigBlindSeat:     h.BigBlindSeat,
		BigBlindAmount:   seats[h.BigBlindSeat].Bet,
	})

	h.logger.Debug("hand started", "id", h.ID, "button", h.Button, "players", active)

	// action starts left of the big blind; heads-up that is the button
	h.Actor = h.BigBlindSeat
	if err := h.progress(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HandState) postBlinds() {
	if len(h.activeSeatIDs()) == 2 {
		// heads-up: the button posts the small blind
		h.SmallBlindSeat = h.Button
	} else {
		h.SmallBlindSeat = h.nextActive(h.Button)
	}
	h.BigBlindSeat = h.nextActive(h.SmallBlindSeat)

	sb, bb := h.Seats[h.SmallBlindSeat], h.Seats[h.BigBlindSeat]
	sb.commit(h.SmallBlind)
	sb.LastAction = fmt.Sprintf("small blind %d", sb.Bet)
	bb.commit(h.BigBlind)
	bb.LastAction = fmt.Sprintf("big blind %d", bb.Bet)

	h.HighestBet = h.BigBlind
}

func (h *HandState) dealHoleCards() error {
	order := make([]int, 0, len(h.Seats))
	for i := h.nextActive(h.Button); len(order) == 0 || i != order[0]; i = h.nextActive(i) {
		order = append(order, i)
	}
	for pass := 0; pass < 2; pass++ {
		for _, id := range order {
			card, err := h.deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			h.Seats[id].Hole = append(h.Seats[id].Hole, card)
		}
	}
	return nil
}

func (h *HandState) playerStarts() []PlayerStart {
	var players []PlayerStart
	for _, s := range h.Seats {
		if s.Out {
			continue
		}
		players = append(players, PlayerStart{
			Seat:  s.ID,
			Name:  s.Name,
			Stack: s.Stack + s.TotalBet,
			Hole:  append([]deck.Card(nil), s.Hole...),
		})
	}
	return players
}

// Err returns the fault that stopped the hand, if any.
func (h *HandState) Err() error {
	return h.err
}

// IsComplete reports whether the hand has been settled.
func (h *HandState) IsComplete() bool {
	return h.Round == HandComplete
}

// Pot returns the chips committed by all seats and not yet settled.
func (h *HandState) Pot() int {
	if h.settled {
		return 0
	}
	total := 0
	for _, s := range h.Seats {
		total += s.TotalBet
	}
	return total
}

// ChipTotal returns the chips in play when the hand started.
func (h *HandState) ChipTotal() int {
	return h.chipTotal
}

// CheckConservation verifies that stacks plus the pot still equal the chips
// in play at the start of the hand.
func (h *HandState) CheckConservation() error {
	total := h.Pot()
	for _, s := range h.Seats {
		if s.Stack < 0 {
			return fault("seat %d has negative stack %d", s.ID, s.Stack)
		}
		total += s.Stack
	}
	if total != h.chipTotal {
		return fault("chip total %d, expected %d", total, h.chipTotal)
	}
	return nil
}

// Apply performs an action for a seat. Raise amounts are raise-to totals for
// the round. An illegal action returns an *ActionError and changes nothing.
func (h *HandState) Apply(seatID int, action Action, amount int) error {
	if h.err != nil {
		return h.err
	}
	if h.Round >= Showdown {
		return illegal(seatID, action, "hand is complete")
	}
	if seatID != h.Actor {
		return illegal(seatID, action, "not your turn, seat %d to act", h.Actor)
	}

	s := h.Seats[seatID]
	toCall := h.HighestBet - s.Bet
	recorded := action

	switch action {
	case Fold:
		s.Folded = true
		s.LastAction = "fold"

	case Check:
		if toCall > 0 {
			return illegal(seatID, action, "facing a bet of %d", toCall)
		}
		s.LastAction = "check"

	case Call:
		switch {
		case toCall <= 0:
			recorded = Check
			s.LastAction = "check"
		case toCall >= s.Stack:
			recorded = AllIn
			h.goAllIn(s)
		default:
			s.commit(toCall)
			s.LastAction = fmt.Sprintf("call %d", toCall)
		}

	case Raise:
		maxTo := s.Bet + s.Stack
		minTo := h.HighestBet + h.MinRaise
		switch {
		case !h.mayRaise(seatID):
			return illegal(seatID, action, "betting was not reopened, call or fold")
		case !h.opponentCanAct(seatID):
			return illegal(seatID, action, "no opponent can call a raise")
		case amount > maxTo:
			return illegal(seatID, action, "raise to %d exceeds stack, maximum is %d", amount, maxTo)
		case amount == maxTo:
			recorded = AllIn
			h.goAllIn(s)
		case amount < minTo:
			return illegal(seatID, action, "raise to %d is below the minimum of %d", amount, minTo)
		default:
			h.MinRaise = amount - h.HighestBet
			h.HighestBet = amount
			h.LastAggressor = seatID
			s.commit(amount - s.Bet)
			h.reopen()
			s.LastAction = fmt.Sprintf("raise to %d", amount)
		}

	case AllIn:
		if !h.mayRaise(seatID) && s.Bet+s.Stack > h.HighestBet {
			return illegal(seatID, action, "betting was not reopened, all-in would raise")
		}
		h.goAllIn(s)

	default:
		return illegal(seatID, action, "unknown action")
	}

	h.acted[seatID] = true

	h.logger.Debug("action", "seat", seatID, "name", s.Name, "action", recorded, "bet", s.Bet, "pot", h.Pot())
	h.bus.Publish(PlayerActionEvent{
		stamp:    h.now(),
		Seat:     seatID,
		Name:     s.Name,
		Action:   recorded,
		Amount:   s.Bet,
		Round:    h.Round,
		PotAfter: h.Pot(),
	})

	if err := h.CheckConservation(); err != nil {
		return h.setFault(err)
	}
	return h.progress()
}

// goAllIn commits the seat's whole stack. A full raise reopens the betting;
// a short one only lifts the highest bet.
func (h *HandState) goAllIn(s *Seat) {
	total := s.Bet + s.Stack
	s.commit(s.Stack)
	s.LastAction = fmt.Sprintf("all-in %d", total)
	if total <= h.HighestBet {
		return
	}
	if raise := total - h.HighestBet; raise >= h.MinRaise {
		h.MinRaise = raise
		h.LastAggressor = s.ID
		h.reopen()
	}
	h.HighestBet = total
}

// mayRaise reports whether the seat's option is open. A seat that has
// acted this round only gets it back through a full raise; facing a short
// all-in it may call or fold.
func (h *HandState) mayRaise(seatID int) bool {
	return !h.acted[seatID]
}

// reopen clears the acted flags so everyone must respond to a full raise.
func (h *HandState) reopen() {
	clear(h.acted)
}

// progress moves the hand forward after an action: to the next actor, the
// next street, showdown, or an uncontested finish.
func (h *HandState) progress() error {
	for {
		if h.inHandCount() == 1 {
			return h.settle(true)
		}
		if !h.roundClosed() {
			h.Actor = h.nextToAct(h.Actor)
			return nil
		}
		if err := h.nextStreet(); err != nil {
			return h.setFault(err)
		}
		if h.Round == Showdown {
			return h.settle(false)
		}
		// post-flop action starts left of the button
		h.Actor = h.Button
	}
}

// roundClosed reports whether every seat that can still bet has acted and
// matched the highest bet. A lone seat that owes nothing has no decision.
func (h *HandState) roundClosed() bool {
	canAct := 0
	lone := -1
	pending := false
	for i, s := range h.Seats {
		if !s.CanAct() {
			continue
		}
		canAct++
		lone = i
		if !h.acted[i] || s.Bet < h.HighestBet {
			pending = true
		}
	}
	switch canAct {
	case 0:
		return true
	case 1:
		return h.Seats[lone].Bet >= h.HighestBet
	default:
		return !pending
	}
}

func (h *HandState) nextToAct(from int) int {
	n := len(h.Seats)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		s := h.Seats[i]
		if s.CanAct() && (!h.acted[i] || s.Bet < h.HighestBet) {
			return i
		}
	}
	return -1
}

func (h *HandState) nextStreet() error {
	for _, s := range h.Seats {
		s.Bet = 0
	}
	clear(h.acted)
	h.HighestBet = 0
	h.MinRaise = h.BigBlind
	h.LastAggressor = -1
	h.Round++

	if h.Round > River {
		return nil
	}

	if err := h.deck.Burn(); err != nil {
		return fmt.Errorf("burning before %s: %w", h.Round, err)
	}
	for len(h.Community) < h.Round.communityCount() {
		card, err := h.deck.Draw()
		if err != nil {
			return fmt.Errorf("dealing %s: %w", h.Round, err)
		}
		h.Community = append(h.Community, card)
	}

	h.logger.Debug("street", "round", h.Round, "board", deck.FormatCards(h.Community), "pot", h.Pot())
	h.bus.Publish(StreetChangeEvent{
		stamp:     h.now(),
		Round:     h.Round,
		Community: append([]deck.Card(nil), h.Community...),
		Pot:       h.Pot(),
	})
	return nil
}

// settle awards every pot tier and completes the hand.
func (h *HandState) settle(uncontested bool) error {
	h.Uncontested = uncontested
	h.Actor = -1

	hands := make(map[int]evaluator.Hand)
	if !uncontested {
		h.Round = Showdown
		var shown []ShownHand
		for _, s := range h.Seats {
			if !s.InHand() {
				continue
			}
			hand, err := evaluator.Evaluate(append(append([]deck.Card{}, s.Hole...), h.Community...))
			if err != nil {
				return h.setFault(fmt.Errorf("evaluating seat %d: %w", s.ID, err))
			}
			hands[s.ID] = hand
			shown = append(shown, ShownHand{Seat: s.ID, Hole: s.Hole, Description: hand.Describe()})
		}
		h.bus.Publish(ShowdownEvent{stamp: h.now(), Hands: shown})
	}

	pot := h.Pot()
	won := make(map[int]int)
	for i, p := range BuildPots(h.Seats) {
		award := awardPot(i, p, hands, h.Button, len(h.Seats))
		for _, w := range award.Winners {
			h.Seats[w.Seat].Stack += w.Amount
			won[w.Seat] += w.Amount
		}
		h.Awards = append(h.Awards, award)
		h.bus.Publish(PotAwardedEvent{stamp: h.now(), Award: award})
	}
	h.settled = true
	h.Round = HandComplete

	for _, s := range h.Seats {
		if s.Out {
			continue
		}
		r := Result{Seat: s.ID, Name: s.Name, Won: won[s.ID], Net: won[s.ID] - s.TotalBet}
		if hand, ok := hands[s.ID]; ok {
			r.Hand = hand.Describe()
		}
		h.Results = append(h.Results, r)
	}

	if err := h.CheckConservation(); err != nil {
		return h.setFault(err)
	}

	h.logger.Debug("hand complete", "id", h.ID, "pot", pot, "uncontested", uncontested)
	h.bus.Publish(HandEndEvent{
		stamp:       h.now(),
		HandID:      h.ID,
		Uncontested: uncontested,
		Board:       append([]deck.Card(nil), h.Community...),
		Results:     h.Results,
		Pot:         pot,
	})
	return nil
}

func (h *HandState) setFault(err error) error {
	if h.err == nil {
		if errors.Is(err, ErrFault) {
			h.err = fmt.Errorf("hand %s: %w", h.ID, err)
		} else {
			h.err = fmt.Errorf("%w: hand %s: %w", ErrFault, h.ID, err)
		}
		h.Actor = -1
		h.logger.Error("hand faulted", "err", err)
	}
	return h.err
}

func (h *HandState) now() stamp {
	return stamp{at: h.clock.Now()}
}

func (h *HandState) nextActive(from int) int {
	n := len(h.Seats)
	for step := 1; step <= n; step++ {
		if i := (from + step) % n; !h.Seats[i].Out {
			return i
		}
	}
	return from
}

func (h *HandState) activeSeatIDs() []int {
	var ids []int
	for _, s := range h.Seats {
		if !s.Out {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func (h *HandState) inHandCount() int {
	n := 0
	for _, s := range h.Seats {
		if s.InHand() {
			n++
		}
	}
	return n
}

func (h *HandState) opponentCanAct(seatID int) bool {
	for _, s := range h.Seats {
		if s.ID != seatID && s.CanAct() {
			return true
		}
	}
	return false
}
