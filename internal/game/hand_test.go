package game

import (
	"errors"
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadsUpAllInAndCall(t *testing.T) {
	t.Parallel()

	seats := newSeats(500, 500)
	d := riggedDeck(t, 0, []string{"As Ah", "7c 2d"}, "Kd 9s 4c 3h Jd")
	h, rec := newTestHand(t, seats, 0, WithDeck(d))

	// heads-up: the button posts the small blind and acts first
	assert.Equal(t, 0, h.SmallBlindSeat)
	assert.Equal(t, 1, h.BigBlindSeat)
	assert.Equal(t, 0, h.Actor)
	assert.Equal(t, 490, seats[0].Stack)
	assert.Equal(t, 480, seats[1].Stack)

	mustApply(t, h, 0, AllIn, 0)
	assert.True(t, seats[0].AllIn)
	assert.Equal(t, 1, h.Actor)

	mustApply(t, h, 1, Call, 0)

	assert.Equal(t, HandComplete, h.Round)
	assert.False(t, h.Uncontested)
	assert.Len(t, h.Community, 5)
	assert.Equal(t, 1000, seats[0].Stack)
	assert.Equal(t, 0, seats[1].Stack)
	assert.Equal(t, 0, h.Pot())
	assert.Equal(t, -1, h.Actor)

	// the board is still dealt street by street
	assert.Equal(t, 3, rec.count(EventTypeStreetChange))
	assert.Equal(t, 1, rec.count(EventTypeShowdown))
	assert.Equal(t, 1, rec.count(EventTypeHandEnd))

	var last PlayerActionEvent
	for _, e := range rec.events {
		if pa, ok := e.(PlayerActionEvent); ok {
			last = pa
		}
	}
	assert.Equal(t, AllIn, last.Action, "a call for the whole stack is recorded as all-in")
}

func TestHeadsUpSplitPot(t *testing.T) {
	t.Parallel()

	seats := newSeats(500, 500)
	d := riggedDeck(t, 0, []string{"2s 3h", "2c 3d"}, "As Kd Qc Jh Ts")
	h, _ := newTestHand(t, seats, 0, WithDeck(d))

	mustApply(t, h, 0, AllIn, 0)
	mustApply(t, h, 1, Call, 0)

	assert.Equal(t, 500, seats[0].Stack)
	assert.Equal(t, 500, seats[1].Stack)
	require.Len(t, h.Awards, 1)
	assert.Len(t, h.Awards[0].Winners, 2)
}

func TestBlindsAndFirstActor(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 1000, 1000)
	h, _ := newTestHand(t, seats, 2)

	assert.Equal(t, 3, h.SmallBlindSeat)
	assert.Equal(t, 0, h.BigBlindSeat)
	assert.Equal(t, 1, h.Actor)
	assert.Equal(t, 20, h.HighestBet)
	assert.Equal(t, 30, h.Pot())
	for _, s := range seats {
		assert.Len(t, s.Hole, 2)
	}
}

func TestSeatsWithoutChipsSitOut(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 0, 1000, 1000)
	h, _ := newTestHand(t, seats, 1)

	assert.True(t, seats[1].Out)
	assert.Empty(t, seats[1].Hole)
	assert.Equal(t, 2, h.Button, "button moves off an empty seat")
	assert.Equal(t, 3, h.SmallBlindSeat)
	assert.Equal(t, 0, h.BigBlindSeat)
	assert.Equal(t, 2, h.Actor)

	_, err := NewHand(newSeats(1000, 0), 0, 10, 20, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestBigBlindKeepsOption(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 1000)
	h, _ := newTestHand(t, seats, 0)
	require.Equal(t, 0, h.Actor)

	mustApply(t, h, 0, Call, 0)
	mustApply(t, h, 1, Call, 0)

	assert.Equal(t, PreFlop, h.Round, "limped pot waits for the big blind")
	assert.Equal(t, 2, h.Actor)
	assert.True(t, h.CanPerform(Check))
	assert.True(t, h.CanPerform(Raise))

	mustApply(t, h, 2, Check, 0)
	assert.Equal(t, Flop, h.Round)
	assert.Len(t, h.Community, 3)
	assert.Equal(t, 1, h.Actor, "post-flop action starts left of the button")
	assert.Equal(t, 60, h.Pot())
}

func TestRaiseReopensAction(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 1000)
	h, _ := newTestHand(t, seats, 0)

	err := h.Apply(0, Raise, 30)
	require.ErrorIs(t, err, ErrIllegalAction)

	mustApply(t, h, 0, Raise, 60)
	assert.Equal(t, 60, h.HighestBet)
	assert.Equal(t, 40, h.MinRaise)
	assert.Equal(t, 0, h.LastAggressor)

	err = h.Apply(1, Raise, 90)
	require.ErrorIs(t, err, ErrIllegalAction)

	mustApply(t, h, 1, Raise, 100)
	mustApply(t, h, 2, Call, 0)
	assert.Equal(t, PreFlop, h.Round)
	assert.Equal(t, 0, h.Actor, "original raiser must respond to the re-raise")

	mustApply(t, h, 0, Call, 0)
	assert.Equal(t, Flop, h.Round)
	assert.Equal(t, 300, h.Pot())
	assert.Equal(t, 0, h.HighestBet)
	assert.Equal(t, 20, h.MinRaise)
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 70)
	h, _ := newTestHand(t, seats, 0)

	mustApply(t, h, 0, Raise, 60)
	mustApply(t, h, 1, Call, 0)
	mustApply(t, h, 2, AllIn, 0)

	assert.Equal(t, 70, h.HighestBet)
	assert.Equal(t, 40, h.MinRaise, "a short all-in leaves the raise increment alone")
	assert.Equal(t, 0, h.LastAggressor)
	assert.Equal(t, 0, h.Actor)

	// seat 0 already acted and only faces the short increment
	assert.False(t, h.CanPerform(Raise))
	assert.False(t, h.CanPerform(AllIn))
	assert.True(t, h.CanPerform(Call))
	assert.True(t, h.CanPerform(Fold))
	require.ErrorIs(t, h.Apply(0, Raise, 110), ErrIllegalAction)
	require.ErrorIs(t, h.Apply(0, AllIn, 0), ErrIllegalAction)
	assert.Equal(t, 70, h.HighestBet)
	assert.Equal(t, 1000-60, seats[0].Stack)

	mustApply(t, h, 0, Call, 0)
	mustApply(t, h, 1, Call, 0)
	assert.Equal(t, Flop, h.Round)
	assert.Equal(t, 210, h.Pot())
}

func TestIllegalActionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()

	seats := newSeats(500, 500)
	h, _ := newTestHand(t, seats, 0)

	cases := []struct {
		seat   int
		action Action
		amount int
		reason string
	}{
		{1, Check, 0, "not your turn"},
		{0, Check, 0, "facing a bet"},
		{0, Raise, 600, "exceeds stack"},
		{0, Raise, 30, "below the minimum"},
	}
	for _, c := range cases {
		err := h.Apply(c.seat, c.action, c.amount)
		require.ErrorIs(t, err, ErrIllegalAction)
		var ae *ActionError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, c.seat, ae.Seat)
		assert.Contains(t, ae.Reason, c.reason)
	}

	assert.Equal(t, 490, seats[0].Stack)
	assert.Equal(t, 480, seats[1].Stack)
	assert.Equal(t, 0, h.Actor)
	assert.Equal(t, 20, h.HighestBet)
	assert.Equal(t, PreFlop, h.Round)

	mustApply(t, h, 0, Fold, 0)
	err := h.Apply(1, Check, 0)
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.Contains(t, err.Error(), "hand is complete")
}

func TestUncontestedHandSkipsRemainingRounds(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 1000)
	h, rec := newTestHand(t, seats, 0)

	mustApply(t, h, 0, Fold, 0)
	mustApply(t, h, 1, Fold, 0)

	assert.Equal(t, HandComplete, h.Round)
	assert.True(t, h.Uncontested)
	assert.Empty(t, h.Community)
	assert.Equal(t, 1000, seats[0].Stack)
	assert.Equal(t, 990, seats[1].Stack)
	assert.Equal(t, 1010, seats[2].Stack)
	assert.Zero(t, rec.count(EventTypeStreetChange))
	assert.Zero(t, rec.count(EventTypeShowdown))
	require.Len(t, h.Awards, 1)
	assert.True(t, h.Awards[0].Returned)
}

func TestUncalledBetIsReturned(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 300)
	d := riggedDeck(t, 0, []string{"As Ah", "Ks Kh"}, "2c 7d 9h Js 3s")
	h, _ := newTestHand(t, seats, 0, WithDeck(d))

	mustApply(t, h, 0, Raise, 1000)
	mustApply(t, h, 1, Call, 0)

	assert.Equal(t, HandComplete, h.Round)
	assert.Equal(t, 1300, seats[0].Stack)
	assert.Equal(t, 0, seats[1].Stack)
	require.Len(t, h.Awards, 2)
	assert.True(t, h.Awards[1].Returned)
	assert.Equal(t, 700, h.Awards[1].Amount)
}

func TestThreeWayAllInSidePots(t *testing.T) {
	t.Parallel()

	seats := newSeats(100, 300, 500)
	d := riggedDeck(t, 0, []string{"As Ah", "Ks Kh", "Qs Qh"}, "2c 7d 9h Js 3s")
	h, rec := newTestHand(t, seats, 0, WithDeck(d))

	mustApply(t, h, 0, AllIn, 0)
	mustApply(t, h, 1, AllIn, 0)
	mustApply(t, h, 2, Call, 0)

	require.Equal(t, HandComplete, h.Round)
	assert.Equal(t, 300, seats[0].Stack, "best hand takes the main pot")
	assert.Equal(t, 400, seats[1].Stack, "second best takes the side pot")
	assert.Equal(t, 200, seats[2].Stack)

	require.Len(t, h.Awards, 2)
	assert.Equal(t, 300, h.Awards[0].Amount)
	assert.Equal(t, 400, h.Awards[1].Amount)

	actions := map[int]int{}
	for _, e := range rec.events {
		if pa, ok := e.(PlayerActionEvent); ok {
			actions[pa.Seat]++
		}
	}
	assert.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, actions, "all-in seats never act again")
}

func TestFoldedSeatIsNeverEvaluated(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 1000)
	d := riggedDeck(t, 0, []string{"As Ks", "2c 3d", "4h 6c"}, "Qs Js Ts 8d 9c")
	h, rec := newTestHand(t, seats, 0, WithDeck(d))

	mustApply(t, h, 0, Fold, 0)
	mustApply(t, h, 1, Call, 0)
	mustApply(t, h, 2, Check, 0)
	for h.Round < Showdown {
		mustApply(t, h, h.Actor, Check, 0)
	}

	var showdown ShowdownEvent
	for _, e := range rec.events {
		if sd, ok := e.(ShowdownEvent); ok {
			showdown = sd
		}
	}
	require.Len(t, showdown.Hands, 2)
	for _, sh := range showdown.Hands {
		assert.NotEqual(t, 0, sh.Seat)
	}
	assert.Equal(t, 1000, seats[0].Stack)
	assert.Equal(t, 3000, seats[0].Stack+seats[1].Stack+seats[2].Stack)
	for _, r := range h.Results {
		if r.Seat == 0 {
			assert.Empty(t, r.Hand)
		}
	}
}

func TestDeckExhaustionFaultsTheHand(t *testing.T) {
	t.Parallel()

	seats := newSeats(500, 500)
	d := deck.NewOrderedDeck(deck.MustParseCards("As Ah Ks Kh"))
	h, _ := newTestHand(t, seats, 0, WithDeck(d))

	mustApply(t, h, 0, Call, 0)
	err := h.Apply(1, Check, 0)
	require.ErrorIs(t, err, ErrFault)
	require.ErrorIs(t, err, deck.ErrDeckExhausted)
	assert.ErrorIs(t, h.Err(), ErrFault)

	err = h.Apply(h.Actor, Check, 0)
	assert.ErrorIs(t, err, ErrFault)
	assert.Nil(t, h.ValidActions())
}

func TestValidActions(t *testing.T) {
	t.Parallel()

	seats := newSeats(500, 500)
	h, _ := newTestHand(t, seats, 0)

	assert.Equal(t, []ActionOption{
		{Action: Fold},
		{Action: Call, Min: 20, Max: 20},
		{Action: Raise, Min: 40, Max: 500},
		{Action: AllIn, Min: 500, Max: 500},
	}, h.ValidActions())

	mustApply(t, h, 0, Call, 0)
	assert.Equal(t, []ActionOption{
		{Action: Fold},
		{Action: Check},
		{Action: Raise, Min: 40, Max: 500},
		{Action: AllIn, Min: 500, Max: 500},
	}, h.ValidActions())

	v := h.View(1)
	assert.Equal(t, 0, v.ToCall)
	assert.Equal(t, 40, v.Pot)
	assert.Equal(t, 1, v.Opponents)
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, 2, v.NumPlayers)
	assert.NotEmpty(t, v.Valid)
	assert.Empty(t, h.View(0).Valid)
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Action{"fold": Fold, "K": Check, "call": Call, "bet": Raise, "all-in": AllIn} {
		got, err := ParseAction(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAction("dance")
	assert.Error(t, err)
}

func TestHandStartEventCarriesPlayers(t *testing.T) {
	t.Parallel()

	seats := newSeats(500, 300)
	d := riggedDeck(t, 0, []string{"As Ah", "Qc Qd"}, "Kd 9s 4c 3h Jd")
	_, rec := newTestHand(t, seats, 0, WithDeck(d))

	require.GreaterOrEqual(t, len(rec.events), 2)
	start, ok := rec.events[0].(HandStartEvent)
	require.True(t, ok, "first event is %T", rec.events[0])
	_, ok = rec.events[1].(BlindsPostedEvent)
	assert.True(t, ok)

	require.Len(t, start.Players, 2)
	assert.Equal(t, 500, start.Players[0].Stack, "stack before blinds")
	assert.Equal(t, 300, start.Players[1].Stack)
	assert.Equal(t, deck.MustParseCards("As Ah"), start.Players[0].Hole)
	assert.Equal(t, deck.MustParseCards("Qc Qd"), start.Players[1].Hole)
}

func TestFullRaiseAfterShortAllInReopensBetting(t *testing.T) {
	t.Parallel()

	seats := newSeats(1000, 1000, 70, 1000)
	h, _ := newTestHand(t, seats, 0)

	// seat 3 is first to act four-handed, seat 2 is the short big blind
	mustApply(t, h, 3, Raise, 60)
	mustApply(t, h, 0, Call, 0)
	mustApply(t, h, 1, Call, 0)
	mustApply(t, h, 2, AllIn, 0)

	assert.Equal(t, 3, h.Actor)
	assert.False(t, h.CanPerform(Raise))
	mustApply(t, h, 3, Call, 0)

	// seat 0 has acted too, so it may not raise over the short all-in
	assert.Equal(t, 0, h.Actor)
	assert.False(t, h.CanPerform(Raise))
	mustApply(t, h, 0, Call, 0)
	mustApply(t, h, 1, Call, 0)
	assert.Equal(t, Flop, h.Round)

	// a new street restores everyone's option
	require.NotEqual(t, -1, h.Actor)
	assert.True(t, h.CanPerform(Raise))
}
