// Package simulator plays batches of computer-only tables to compare
// profiles and to exercise the engine at volume.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/statistics"
	"github.com/lox/holdem-engine/internal/table"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Tables     int // independent sessions
	Hands      int // hands per session, fewer if one seat takes every chip
	Workers    int // sessions played at once, 0 means one per table
	Seed       int64
	SmallBlind int
	BigBlind   int
	Seats      []table.SeatConfig // all computer seats, default one per profile
	Logger     *log.Logger
}

// Result aggregates every session.
type Result struct {
	Tables      int
	Hands       int
	Showdowns   int
	Uncontested int
	LargestPot  int
	GameOvers   int // sessions that ended early with one seat left
	Profiles    map[string]*statistics.Statistics
}

// ProfileNames returns the profiles in the result, sorted.
func (r *Result) ProfileNames() []string {
	names := make([]string, 0, len(r.Profiles))
	for name := range r.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultSeats seats one computer player per built-in profile, up to six.
func DefaultSeats(stack int) []table.SeatConfig {
	var seats []table.SeatConfig
	for _, name := range bot.ProfileNames() {
		if len(seats) == 6 {
			break
		}
		seats = append(seats, table.SeatConfig{Name: name, Stack: stack, Profile: name, Skill: "expert"})
	}
	return seats
}

func (c *Config) applyDefaults() {
	if c.Tables <= 0 {
		c.Tables = 1
	}
	if c.Hands <= 0 {
		c.Hands = 100
	}
	if c.Workers <= 0 || c.Workers > c.Tables {
		c.Workers = c.Tables
	}
	if c.SmallBlind <= 0 {
		c.SmallBlind = 5
	}
	if c.BigBlind <= 0 {
		c.BigBlind = c.SmallBlind * 2
	}
	if len(c.Seats) == 0 {
		c.Seats = DefaultSeats(c.BigBlind * 100)
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// Run plays cfg.Tables sessions concurrently and aggregates the results.
// Every session checks chip conservation after each hand.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	cfg.applyDefaults()
	for _, s := range cfg.Seats {
		if s.Human {
			return nil, fmt.Errorf("seat %q: simulations cannot include human seats", s.Name)
		}
	}

	results := make([]*Result, cfg.Tables)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range cfg.Tables {
		g.Go(func() error {
			r, err := playSession(ctx, cfg, cfg.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &Result{Profiles: map[string]*statistics.Statistics{}}
	for _, r := range results {
		total.merge(r)
	}
	for name, stats := range total.Profiles {
		if stats.Hands == 0 {
			continue
		}
		if err := stats.Validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}
	cfg.Logger.Info("simulation complete", "tables", total.Tables, "hands", total.Hands, "showdowns", total.Showdowns)
	return total, nil
}

func (r *Result) merge(other *Result) {
	r.Tables += other.Tables
	r.Hands += other.Hands
	r.Showdowns += other.Showdowns
	r.Uncontested += other.Uncontested
	r.GameOvers += other.GameOvers
	r.LargestPot = max(r.LargestPot, other.LargestPot)
	for name, stats := range other.Profiles {
		if _, ok := r.Profiles[name]; !ok {
			r.Profiles[name] = &statistics.Statistics{}
		}
		r.Profiles[name].Merge(stats)
	}
}

// potWatcher records the contested pot of each hand.
type potWatcher struct {
	mu  sync.Mutex
	pot int
}

func (w *potWatcher) OnEvent(e game.Event) {
	if end, ok := e.(game.HandEndEvent); ok {
		w.mu.Lock()
		w.pot = end.Pot
		w.mu.Unlock()
	}
}

func (w *potWatcher) last() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pot
}

func playSession(ctx context.Context, cfg Config, seed int64) (*Result, error) {
	tc := table.Config{
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Seats:      cfg.Seats,
		Seed:       &seed,
		LogSize:    1,
	}
	tbl, err := table.New(tc, table.WithLogger(cfg.Logger.With("seed", seed)))
	if err != nil {
		return nil, err
	}
	watcher := &potWatcher{}
	tbl.Subscribe(watcher)

	profiles := make([]string, len(cfg.Seats))
	for i, s := range cfg.Seats {
		profiles[i] = s.Profile
		if profiles[i] == "" {
			profiles[i] = bot.DefaultProfile
		}
	}

	r := &Result{Tables: 1, Profiles: map[string]*statistics.Statistics{}}
	for range cfg.Hands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := tbl.PlayHand(); err != nil {
			if errors.Is(err, table.ErrGameOver) {
				r.GameOvers++
				break
			}
			return nil, err
		}
		if err := tbl.CheckConservation(); err != nil {
			return nil, err
		}
		r.record(tbl.Hand(), profiles, watcher.last(), seed)
	}
	return r, nil
}

// record adds one completed hand to the session result.
func (r *Result) record(h *game.HandState, profiles []string, pot int, seed int64) {
	r.Hands++
	if h.Uncontested {
		r.Uncontested++
	} else {
		r.Showdowns++
	}
	r.LargestPot = max(r.LargestPot, pot)

	street := streetName(len(h.Community))
	seats := make([]int, 0, len(h.Results))
	for _, res := range h.Results {
		seats = append(seats, res.Seat)
	}
	for _, res := range h.Results {
		seat := h.Seats[res.Seat]
		stats, ok := r.Profiles[profiles[res.Seat]]
		if !ok {
			stats = &statistics.Statistics{}
			r.Profiles[profiles[res.Seat]] = stats
		}
		stats.Add(statistics.HandResult{
			NetBB:          float64(res.Net) / float64(h.BigBlind),
			Seed:           seed,
			Position:       position(res.Seat, seats, h.Button, len(h.Seats)),
			WentToShowdown: !h.Uncontested && seat.InHand(),
			PotChips:       pot,
			BigBlind:       h.BigBlind,
			Street:         street,
		})
	}
}

// position numbers seat among the dealt seats, 1 being first left of the
// button and len(seats) the button.
func position(seat int, seats []int, button, numSeats int) int {
	dist := func(id int) int {
		d := (id - button + numSeats) % numSeats
		if d == 0 {
			return numSeats
		}
		return d
	}
	pos := 1
	for _, id := range seats {
		if dist(id) < dist(seat) {
			pos++
		}
	}
	return pos
}

func streetName(communityCards int) string {
	switch communityCards {
	case 0:
		return game.PreFlop.String()
	case 3:
		return game.Flop.String()
	case 4:
		return game.Turn.String()
	default:
		return game.River.String()
	}
}
