package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDefaultSeats(t *testing.T) {
	t.Parallel()

	seats := DefaultSeats(1000)
	require.Len(t, seats, 6)
	for _, s := range seats {
		assert.Equal(t, s.Name, s.Profile)
		assert.Equal(t, 1000, s.Stack)
		assert.False(t, s.Human)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	res, err := Run(context.Background(), Config{
		Tables:  4,
		Hands:   50,
		Workers: 2,
		Seed:    99,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Tables)
	assert.Positive(t, res.Hands)
	assert.LessOrEqual(t, res.Hands, 200)
	assert.Equal(t, res.Hands, res.Showdowns+res.Uncontested)
	assert.Positive(t, res.LargestPot)
	assert.Len(t, res.ProfileNames(), 6)

	// every chip won was lost by somebody
	net := 0.0
	seatHands := 0
	for _, name := range res.ProfileNames() {
		stats := res.Profiles[name]
		require.NoError(t, stats.Validate(), name)
		net += stats.AllBB
		seatHands += stats.Hands
		assert.LessOrEqual(t, stats.MaxPotChips, res.LargestPot)
	}
	assert.InDelta(t, 0, net, 1e-6)
	assert.GreaterOrEqual(t, seatHands, 2*res.Hands)
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()

	cfg := Config{Tables: 3, Hands: 30, Seed: 5, Logger: quietLogger()}
	first, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Hands, second.Hands)
	assert.Equal(t, first.LargestPot, second.LargestPot)
	for _, name := range first.ProfileNames() {
		assert.InDelta(t, first.Profiles[name].AllBB, second.Profiles[name].AllBB, 1e-9, name)
	}
}

func TestRunStopsWhenOneSeatRemains(t *testing.T) {
	t.Parallel()

	res, err := Run(context.Background(), Config{
		Hands:      5000,
		Seed:       3,
		SmallBlind: 50,
		BigBlind:   100,
		Seats: []table.SeatConfig{
			{Name: "a", Stack: 200, Profile: "maniac"},
			{Name: "b", Stack: 200, Profile: "maniac"},
		},
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.GameOvers)
	assert.Less(t, res.Hands, 5000)
}

func TestRunRejectsHumans(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Config{
		Seats: []table.SeatConfig{
			{Name: "you", Stack: 100, Human: true},
			{Name: "bot", Stack: 100},
		},
		Logger: quietLogger(),
	})
	assert.ErrorContains(t, err, "human")
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Tables: 2, Hands: 10, Logger: quietLogger()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPosition(t *testing.T) {
	t.Parallel()

	seats := []int{0, 2, 3, 5}
	// button at 3: order is 5, 0, 2, 3
	assert.Equal(t, 1, position(5, seats, 3, 6))
	assert.Equal(t, 2, position(0, seats, 3, 6))
	assert.Equal(t, 3, position(2, seats, 3, 6))
	assert.Equal(t, 4, position(3, seats, 3, 6))
}
