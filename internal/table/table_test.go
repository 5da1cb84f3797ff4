package table

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func seed(v int64) *int64 { return &v }

func headsUpConfig() Config {
	return Config{
		SmallBlind: 10,
		BigBlind:   20,
		Seed:       seed(42),
		Seats: []SeatConfig{
			{Name: "alice", Stack: 1000, Human: true},
			{Name: "bob", Stack: 1000, Profile: "balanced", Skill: "intermediate"},
		},
	}
}

func botConfig(n int, s int64) Config {
	profiles := []string{"tight-aggressive", "loose-passive", "maniac", "conservative", "balanced", "loose-aggressive"}
	cfg := Config{SmallBlind: 5, BigBlind: 10, Seed: seed(s)}
	for i := range n {
		cfg.Seats = append(cfg.Seats, SeatConfig{
			Name:    profiles[i%len(profiles)] + "-" + string(rune('a'+i)),
			Stack:   500,
			Profile: profiles[i%len(profiles)],
		})
	}
	return cfg
}

func newTestTable(t *testing.T, cfg Config) *Table {
	t.Helper()
	tbl, err := New(cfg, WithLogger(quietLogger()), WithClock(quartz.NewMock(t)), WithID("test-table"))
	require.NoError(t, err)
	return tbl
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"one seat", func(c *Config) { c.Seats = c.Seats[:1] }, "need between 2 and 9 seats"},
		{"zero small blind", func(c *Config) { c.SmallBlind = 0 }, "small blind must be positive"},
		{"big below small", func(c *Config) { c.BigBlind = 5 }, "big blind must be at least the small blind"},
		{"duplicate names", func(c *Config) { c.Seats[1].Name = "alice" }, "duplicate name"},
		{"empty stack", func(c *Config) { c.Seats[0].Stack = 0 }, "stack must be positive"},
		{"unknown profile", func(c *Config) { c.Seats[1].Profile = "shark" }, "shark"},
		{"unknown skill", func(c *Config) { c.Seats[1].Skill = "godlike" }, "godlike"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := headsUpConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := headsUpConfig()
	cfg.Seats = nil
	_, err := New(cfg, WithLogger(quietLogger()))
	assert.ErrorContains(t, err, "invalid table config")
}

func TestHumanFacesFirstDecision(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, headsUpConfig())
	snap, err := tbl.StartHand()
	require.NoError(t, err)

	// heads-up the button posts the small blind and opens the action
	assert.Equal(t, 1, snap.HandNumber)
	assert.NoError(t, handid.Validate(snap.HandID))
	assert.Equal(t, "preflop", snap.Round)
	assert.Equal(t, 0, snap.Actor)
	assert.Equal(t, 30, snap.Pot)
	assert.Equal(t, 10, snap.CallAmount)
	assert.False(t, snap.CanCheck)
	assert.Equal(t, 40, snap.MinRaiseTo)
	assert.Equal(t, 1000, snap.MaxRaiseTo)
	assert.Equal(t, []string{"fold", "call", "raise", "allin"}, snap.Valid)

	assert.True(t, snap.Seats[0].Button)
	assert.Len(t, snap.Seats[0].Hole, 2)
	assert.Empty(t, snap.Seats[1].Hole, "opponent cards are hidden")
	assert.Equal(t, "small blind 10", snap.Seats[0].LastAction)
	assert.Equal(t, "big blind 20", snap.Seats[1].LastAction)
}

func TestIllegalActionLeavesTableUnchanged(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, headsUpConfig())
	before, err := tbl.StartHand()
	require.NoError(t, err)

	after, err := tbl.Act(ActionRequest{Seat: 0, Kind: game.Check})
	require.ErrorIs(t, err, game.ErrIllegalAction)
	assert.Equal(t, before.Pot, after.Pot)
	assert.Equal(t, before.Actor, after.Actor)
	assert.Equal(t, before.Seats, after.Seats)

	_, err = tbl.Act(ActionRequest{Seat: 1, Kind: game.Call})
	require.ErrorIs(t, err, game.ErrIllegalAction, "out of turn")

	_, err = tbl.StartHand()
	assert.ErrorIs(t, err, ErrHandInProgress)
}

func TestHumanFoldEndsHandUncontested(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, headsUpConfig())
	_, err := tbl.StartHand()
	require.NoError(t, err)

	snap, err := tbl.Act(ActionRequest{Seat: 0, Kind: game.Fold})
	require.NoError(t, err)

	assert.True(t, snap.Complete)
	assert.Equal(t, "complete", snap.Round)
	assert.Equal(t, []WinnerView{{Seat: 1, Name: "bob", Amount: 30}}, snap.Winners)
	assert.Equal(t, "bob wins 30 uncontested", snap.Message)
	assert.Equal(t, 990, snap.Seats[0].Stack)
	assert.Equal(t, 1010, snap.Seats[1].Stack)
	assert.Empty(t, snap.Seats[1].Hole, "uncontested hands are not revealed")
	assert.Zero(t, snap.Pot)

	assert.Contains(t, snap.Log, "*** NEW HAND *** alice has the button")
	assert.Contains(t, snap.Log, "alice folds")
	assert.Contains(t, snap.Log, "bob wins 30")

	stats := tbl.Stats()
	assert.Equal(t, -10, stats[0].ChipsWon)
	assert.Equal(t, 10, stats[1].ChipsWon)
	assert.Equal(t, 1, stats[1].HandsWon)
	assert.Equal(t, 0, stats[1].Showdowns)
	assert.Equal(t, "balanced", stats[1].Profile)
	require.NoError(t, tbl.CheckConservation())

	// the button moves to bob for the next hand
	snap, err = tbl.StartHand()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.HandNumber)
	assert.True(t, snap.Seats[1].Button)
}

func TestGameOverWhenOneSeatHasChips(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, headsUpConfig())
	tbl.Seats()[1].Stack = 0

	snap, err := tbl.StartHand()
	require.ErrorIs(t, err, ErrGameOver)
	assert.True(t, snap.GameOver)
}

func TestSnapshotMarksBustedSeatOut(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, headsUpConfig())
	_, err := tbl.StartHand()
	require.NoError(t, err)

	// mid-hand, an empty stack is an all-in seat, not an eliminated one
	tbl.Seats()[1].Stack = 0
	assert.False(t, tbl.Snapshot(0).Seats[1].Out)
	tbl.Seats()[1].Stack = 980

	snap, err := tbl.Act(ActionRequest{Seat: 0, Kind: game.Fold})
	require.NoError(t, err)
	require.True(t, snap.Complete)
	assert.False(t, snap.Seats[0].Out)

	tbl.Seats()[0].Stack = 0
	snap = tbl.Snapshot(0)
	assert.True(t, snap.Seats[0].Out, "busted seat is out once the hand is complete")
	assert.False(t, snap.Seats[1].Out)
}

func TestBotTablePlaysManyHands(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 6, 9} {
		tbl := newTestTable(t, botConfig(n, int64(n)))
		for range 150 {
			err := tbl.PlayHand()
			if err != nil {
				require.ErrorIs(t, err, ErrGameOver)
				break
			}
			require.True(t, tbl.Hand().IsComplete())
			require.NoError(t, tbl.CheckConservation())
		}

		net := 0
		for _, st := range tbl.Stats() {
			net += st.ChipsWon
			assert.LessOrEqual(t, st.HandsWon, st.HandsPlayed)
			assert.LessOrEqual(t, st.Showdowns, st.HandsPlayed)
		}
		assert.Zero(t, net, "chips won and lost must balance for %d seats", n)
	}
}

func TestSameSeedSameSession(t *testing.T) {
	t.Parallel()

	play := func() []int {
		tbl := newTestTable(t, botConfig(4, 7))
		for range 40 {
			if err := tbl.PlayHand(); err != nil {
				break
			}
		}
		var stacks []int
		for _, s := range tbl.Seats() {
			stacks = append(stacks, s.Stack)
		}
		return stacks
	}
	assert.Equal(t, play(), play())
}

func TestPlayHandRefusesHumanTables(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, headsUpConfig())
	assert.Error(t, tbl.PlayHand())
}

func TestEventLogKeepsTail(t *testing.T) {
	t.Parallel()

	l := newEventLog([]string{"a", "b"}, 3)
	for _, line := range []string{"1", "2", "3", "4", "5"} {
		l.append(line)
	}
	assert.Equal(t, []string{"3", "4", "5"}, l.tail())
	assert.Equal(t, "5", l.last())
	assert.Equal(t, "seat 7", l.name(7))
}

func TestFormatAward(t *testing.T) {
	t.Parallel()

	l := newEventLog([]string{"ann", "ben", "cat"}, 10)
	assert.Equal(t, "uncalled 200 returned to ben", l.formatAward(game.Award{
		Pot: 1, Amount: 200, Returned: true, Eligible: []int{1},
		Winners: []game.Winner{{Seat: 1, Amount: 200}},
	}))
	assert.Equal(t, "ann wins 75 from the main pot with Pair of Aces; cat wins 75 from the main pot with Pair of Aces", l.formatAward(game.Award{
		Amount: 150, Eligible: []int{0, 2},
		Winners: []game.Winner{{Seat: 0, Amount: 75, Hand: "Pair of Aces"}, {Seat: 2, Amount: 75, Hand: "Pair of Aces"}},
	}))
}
