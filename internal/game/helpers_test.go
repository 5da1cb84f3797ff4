package game

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newSeats(stacks ...int) []*Seat {
	seats := make([]*Seat, len(stacks))
	for i, s := range stacks {
		seats[i] = NewSeat(i, fmt.Sprintf("p%d", i), s)
	}
	return seats
}

// riggedDeck returns a deck that deals holes[i] to seat i and then the
// given board, with filler cards for burns. Every seat must be active.
func riggedDeck(t *testing.T, button int, holes []string, board string) *deck.Deck {
	t.Helper()

	used := map[deck.Card]bool{}
	parse := func(s string) []deck.Card {
		cards, err := deck.ParseCards(s)
		require.NoError(t, err)
		for _, c := range cards {
			require.False(t, used[c], "card %s used twice", c)
			used[c] = true
		}
		return cards
	}

	hole := make([][]deck.Card, len(holes))
	for i, h := range holes {
		hole[i] = parse(h)
		require.Len(t, hole[i], 2)
	}
	boardCards := parse(board)
	require.Len(t, boardCards, 5)

	var spare []deck.Card
	for _, suit := range deck.Suits {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			if c := deck.NewCard(rank, suit); !used[c] {
				spare = append(spare, c)
			}
		}
	}
	burn := func() deck.Card {
		c := spare[0]
		spare = spare[1:]
		return c
	}

	var order []deck.Card
	n := len(holes)
	for pass := 0; pass < 2; pass++ {
		for step := 1; step <= n; step++ {
			order = append(order, hole[(button+step)%n][pass])
		}
	}
	order = append(order, burn())
	order = append(order, boardCards[:3]...)
	order = append(order, burn(), boardCards[3], burn(), boardCards[4])
	order = append(order, spare...)
	return deck.NewOrderedDeck(order)
}

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

func newTestHand(t *testing.T, seats []*Seat, button int, opts ...HandOption) (*HandState, *recorder) {
	t.Helper()

	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)
	base := []HandOption{
		WithLogger(quietLogger()),
		WithEventBus(bus),
		WithClock(quartz.NewMock(t)),
		WithHandID("test-hand"),
	}
	h, err := NewHand(seats, button, 10, 20, append(base, opts...)...)
	require.NoError(t, err)
	return h, rec
}

func mustApply(t *testing.T, h *HandState, seat int, action Action, amount int) {
	t.Helper()
	require.NoError(t, h.Apply(seat, action, amount))
	require.NoError(t, h.CheckConservation())
}
