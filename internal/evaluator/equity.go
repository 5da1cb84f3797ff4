package evaluator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// EquityResult summarises a Monte Carlo equity run.
type EquityResult struct {
	Wins    int
	Ties    int
	Samples int
}

// Equity is the share of pots won, with ties counted as half.
func (r EquityResult) Equity() float64 {
	if r.Samples == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Samples)
}

// EquityRequest describes the spot to simulate.
type EquityRequest struct {
	Hole      []deck.Card
	Board     []deck.Card
	Opponents int
	Samples   int
	Seed      int64
	Workers   int // zero means one per CPU, capped at 8
}

// EstimateEquity runs a Monte Carlo simulation of the hole cards against
// random opponent hands, dealing out the rest of the board. Workers get
// independent random streams derived from the seed, so results are
// reproducible for a given seed and worker count.
func EstimateEquity(ctx context.Context, req EquityRequest) (EquityResult, error) {
	if len(req.Hole) != 2 {
		return EquityResult{}, fmt.Errorf("equity: need 2 hole cards, got %d", len(req.Hole))
	}
	if len(req.Board) > 5 {
		return EquityResult{}, fmt.Errorf("equity: board has %d cards", len(req.Board))
	}
	if req.Opponents < 1 || req.Opponents > 8 {
		return EquityResult{}, errors.New("equity: opponents must be between 1 and 8")
	}
	if req.Samples <= 0 {
		return EquityResult{}, errors.New("equity: samples must be positive")
	}

	used := make(map[deck.Card]bool, 7)
	for _, c := range append(append([]deck.Card{}, req.Hole...), req.Board...) {
		if used[c] {
			return EquityResult{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		used[c] = true
	}
	var available []deck.Card
	for _, suit := range deck.Suits {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			if c := deck.NewCard(rank, suit); !used[c] {
				available = append(available, c)
			}
		}
	}

	workers := req.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, req.Samples)

	results := make([]EquityResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		samples := req.Samples / workers
		if w < req.Samples%workers {
			samples++
		}
		g.Go(func() error {
			r, err := runEquityWorker(ctx, req, available, samples, randutil.Derive(req.Seed, w))
			results[w] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	for _, r := range results {
		total.Wins += r.Wins
		total.Ties += r.Ties
		total.Samples += r.Samples
	}
	return total, nil
}

func runEquityWorker(ctx context.Context, req EquityRequest, available []deck.Card, samples int, rng *rand.Rand) (EquityResult, error) {
	var res EquityResult
	pool := make([]deck.Card, len(available))
	need := 2*req.Opponents + 5 - len(req.Board)

	hero := make([]deck.Card, 0, 7)
	villain := make([]deck.Card, 0, 7)
	board := make([]deck.Card, 5)
	copy(board, req.Board)

	for i := range samples {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		// partial Fisher-Yates over a fresh copy: the first need cards are the draw
		copy(pool, available)
		for j := 0; j < need; j++ {
			k := j + rng.IntN(len(pool)-j)
			pool[j], pool[k] = pool[k], pool[j]
		}
		copy(board[len(req.Board):], pool[2*req.Opponents:need])

		hero = append(append(hero[:0], req.Hole...), board...)
		heroKey := MustEvaluate(hero).Key()

		lost, tied := false, false
		for o := 0; o < req.Opponents && !lost; o++ {
			villain = append(append(villain[:0], pool[2*o:2*o+2]...), board...)
			switch k := MustEvaluate(villain).Key(); {
			case k > heroKey:
				lost = true
			case k == heroKey:
				tied = true
			}
		}

		switch {
		case lost:
		case tied:
			res.Ties++
		default:
			res.Wins++
		}
		res.Samples++
	}
	return res, nil
}
