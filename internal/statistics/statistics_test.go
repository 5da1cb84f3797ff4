package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.WinRate())
	assert.Error(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for _, r := range []HandResult{
		{NetBB: 1.0, Position: 1, PotChips: 40, BigBlind: 10, Street: "preflop"},
		{NetBB: -2.0, Position: 2, WentToShowdown: true, PotChips: 80, BigBlind: 10, Street: "river"},
		{NetBB: 3.0, Position: 3, WentToShowdown: true, PotChips: 120, BigBlind: 10, Street: "river"},
		{NetBB: 0.0, Position: 1, PotChips: 20, BigBlind: 10, Street: "flop"},
		{NetBB: -1.0, Position: 9, PotChips: 60, BigBlind: 10, Street: "turn"},
	} {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 0.2, stats.Mean(), 1e-9)
	assert.InDelta(t, 0.0, stats.Median(), 1e-9)
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.NonShowdownWins)
	assert.InDelta(t, 0.4, stats.WinRate(), 1e-9)
	assert.InDelta(t, 1.0, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, 0.0, stats.NonShowdownBB, 1e-9)
	assert.True(t, stats.IsLedgerBalanced())

	assert.Equal(t, 2, stats.PositionResults[1].Hands)
	assert.Equal(t, 1, stats.PositionResults[9].Hands)
	assert.InDelta(t, 0.5, stats.PositionMean(1), 1e-9)
	assert.Zero(t, stats.PositionMean(0))
	assert.Zero(t, stats.PositionMean(10))

	assert.Equal(t, map[string]int{"preflop": 1, "flop": 1, "turn": 1, "river": 2}, stats.Streets)
}

func TestStatisticsPercentiles(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i), Position: 1})
	}

	for p, want := range map[float64]float64{0: 1, 0.25: 2, 0.5: 3, 0.75: 4, 1: 5, 0.125: 1.5} {
		assert.InDelta(t, want, stats.Percentile(p), 1e-9, "percentile %.3f", p)
	}

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)
	assert.Greater(t, high-low, 0.0)
}

func TestStatisticsVariance(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	for _, v := range []float64{1, 3, 5} {
		stats.Add(HandResult{NetBB: v, Position: 1})
	}
	assert.InDelta(t, 4.0, stats.Variance(), 1e-9)
	assert.InDelta(t, 2.0, stats.StdDev(), 1e-9)
}

func TestStatisticsPotSizeTracking(t *testing.T) {
	t.Parallel()

	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, Position: 1, PotChips: 200, BigBlind: 20})
	stats.Add(HandResult{NetBB: 5.0, Position: 1, PotChips: 2000, BigBlind: 20})
	stats.Add(HandResult{NetBB: -1.0, Position: 1, PotChips: 40, BigBlind: 20})

	assert.Equal(t, 2000, stats.MaxPotChips)
	assert.InDelta(t, 100.0, stats.MaxPotBB, 1e-9)
	assert.Equal(t, 1, stats.BigPots)
	assert.InDelta(t, 5.0, stats.BigPotsBB, 1e-9)
}

func TestStatisticsMerge(t *testing.T) {
	t.Parallel()

	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetBB: 2, Position: 1, WentToShowdown: true, PotChips: 100, BigBlind: 2, Street: "river"},
		{NetBB: -1, Position: 2, PotChips: 3, BigBlind: 2, Street: "preflop"},
		{NetBB: 4, Position: 3, PotChips: 300, BigBlind: 2, Street: "flop"},
		{NetBB: -3, Position: 2, WentToShowdown: true, PotChips: 12, BigBlind: 2, Street: "river"},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	require.NoError(t, a.Validate())
	assert.Equal(t, all.Hands, a.Hands)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-9)
	assert.Equal(t, all.PositionResults, a.PositionResults)
	assert.Equal(t, all.MaxPotChips, a.MaxPotChips)
	assert.Equal(t, all.BigPots, a.BigPots)
	assert.Equal(t, all.Streets, a.Streets)
	assert.InDelta(t, all.Median(), a.Median(), 1e-9)
}

func TestStatisticsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stats   Statistics
		wantErr string
	}{
		{
			name: "ledger mismatch",
			stats: func() Statistics {
				s := Statistics{Hands: 1, Values: []float64{1}, AllBB: 1, ShowdownBB: 0.5, NonShowdownBB: 0.6}
				s.PositionResults[1].Hands = 1
				return s
			}(),
			wantErr: "ledger mismatch",
		},
		{
			name:    "values mismatch",
			stats:   Statistics{Hands: 2, Values: []float64{1}, AllBB: 1, NonShowdownBB: 1},
			wantErr: "values array length",
		},
		{
			name: "too many wins",
			stats: func() Statistics {
				s := Statistics{Hands: 2, Values: []float64{1, 1}, AllBB: 2, ShowdownBB: 1, NonShowdownBB: 1, ShowdownWins: 2, NonShowdownWins: 2}
				s.PositionResults[1].Hands = 2
				return s
			}(),
			wantErr: "exceeds total hands",
		},
		{
			name: "position mismatch",
			stats: func() Statistics {
				s := Statistics{Hands: 2, Values: []float64{1, 1}, AllBB: 2, ShowdownBB: 1, NonShowdownBB: 1}
				s.PositionResults[1].Hands = 1
				return s
			}(),
			wantErr: "position hands total",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorContains(t, tt.stats.Validate(), tt.wantErr)
		})
	}
}
