package table

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/randutil"
)

// handIDStream is the Derive stream for hand IDs, clear of seat streams.
const handIDStream = 1 << 16

var (
	// ErrGameOver is returned by StartHand when fewer than two seats have chips.
	ErrGameOver = errors.New("game over: fewer than two seats have chips")
	// ErrHandInProgress is returned by StartHand while a hand is still running.
	ErrHandInProgress = errors.New("hand in progress")
)

// ActionRequest is an action submitted for a human seat.
type ActionRequest struct {
	Seat   int         `json:"seat"`
	Kind   game.Action `json:"kind"`
	Amount int         `json:"amount,omitempty"` // raise-to total
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// WithClock sets the clock used for event timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithID sets the table identifier.
func WithID(id string) Option {
	return func(t *Table) { t.id = id }
}

// Table is one session: fixed seats playing hand after hand.
type Table struct {
	id     string
	cfg    Config
	seats  []*game.Seat
	humans map[int]bool
	bots   map[int]*bot.Engine
	viewer int // first human seat, -1 when every seat is a bot

	button     int
	handNumber int
	hand       *game.HandState
	finished   bool
	message    string

	deckRNG   *rand.Rand
	handIDs   *handid.Generator
	bus       *game.EventBus
	log       *eventLog
	stats     []SeatStats
	chipTotal int

	clock  quartz.Clock
	logger *log.Logger
}

// New creates a table from cfg. No hand is dealt until StartHand.
func New(cfg Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}
	if cfg.LogSize == 0 {
		cfg.LogSize = defaultLogSize
	}

	t := &Table{
		cfg:    cfg,
		humans: map[int]bool{},
		bots:   map[int]*bot.Engine{},
		viewer: -1,
		button: -1,
		bus:    game.NewEventBus(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.id == "" {
		t.id = uuid.NewString()
	}
	if t.logger == nil {
		t.logger = log.Default()
	}
	t.logger = t.logger.WithPrefix("table")
	if t.clock == nil {
		t.clock = quartz.NewReal()
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	t.deckRNG = randutil.Derive(seed, 0)
	t.handIDs = handid.New(t.clock, randutil.Derive(seed, handIDStream))

	names := make([]string, len(cfg.Seats))
	for i, sc := range cfg.Seats {
		names[i] = sc.Name
		t.seats = append(t.seats, game.NewSeat(i, sc.Name, sc.Stack))
		t.chipTotal += sc.Stack
		st := SeatStats{Seat: i, Name: sc.Name}

		if sc.Human {
			t.humans[i] = true
			if t.viewer < 0 {
				t.viewer = i
			}
		} else {
			profile, _ := bot.LookupProfile(profileOrDefault(sc.Profile))
			skill, _ := bot.ParseSkillLevel(skillOrDefault(sc.Skill))
			t.bots[i] = bot.New(profile, skill, randutil.Derive(seed, i+1), t.logger.With("seat", sc.Name))
			st.Profile = profile.Name
		}
		t.stats = append(t.stats, st)
	}

	t.log = newEventLog(names, cfg.LogSize)
	t.bus.Subscribe(t.log)

	t.logger.Debug("table created", "id", t.id, "seats", len(t.seats), "seed", seed)
	return t, nil
}

// ID returns the table identifier.
func (t *Table) ID() string { return t.id }

// HandNumber returns the number of hands started so far.
func (t *Table) HandNumber() int { return t.handNumber }

// Subscribe registers s for every game event at the table.
func (t *Table) Subscribe(s game.Subscriber) { t.bus.Subscribe(s) }

// Hand returns the current or last hand, or nil before the first one.
func (t *Table) Hand() *game.HandState { return t.hand }

// Seats returns the table's seats.
func (t *Table) Seats() []*game.Seat { return t.seats }

// SeatsWithChips counts seats that can still play.
func (t *Table) SeatsWithChips() int {
	n := 0
	for _, s := range t.seats {
		if s.Stack > 0 {
			n++
		}
	}
	return n
}

// Stats returns a copy of the per-seat statistics.
func (t *Table) Stats() []SeatStats {
	return append([]SeatStats(nil), t.stats...)
}

// CheckConservation verifies that the table still holds every chip it started with.
func (t *Table) CheckConservation() error {
	if t.hand != nil {
		if err := t.hand.CheckConservation(); err != nil {
			return err
		}
	}
	total := 0
	for _, s := range t.seats {
		total += s.Stack
	}
	if t.hand != nil {
		total += t.hand.Pot()
	}
	if total != t.chipTotal {
		return fmt.Errorf("%w: table holds %d chips, started with %d", game.ErrFault, total, t.chipTotal)
	}
	return nil
}

// StartHand rotates the button, deals a new hand and lets computer seats
// act until a human must decide or the hand completes.
func (t *Table) StartHand() (Snapshot, error) {
	if t.hand != nil {
		if err := t.hand.Err(); err != nil {
			return t.Snapshot(t.viewer), err
		}
		if !t.hand.IsComplete() {
			return t.Snapshot(t.viewer), ErrHandInProgress
		}
	}
	if t.SeatsWithChips() < 2 {
		return t.Snapshot(t.viewer), ErrGameOver
	}

	t.button = t.nextButton()
	t.handNumber++
	t.finished = false
	t.message = ""

	hand, err := game.NewHand(t.seats, t.button, t.cfg.SmallBlind, t.cfg.BigBlind,
		game.WithRNG(t.deckRNG),
		game.WithEventBus(t.bus),
		game.WithLogger(t.logger),
		game.WithClock(t.clock),
		game.WithHandID(t.handIDs.Generate()),
	)
	if err != nil {
		t.message = err.Error()
		return t.Snapshot(t.viewer), fmt.Errorf("starting hand %d: %w", t.handNumber, err)
	}
	t.hand = hand

	for _, s := range t.seats {
		if !s.Out {
			t.stats[s.ID].HandsPlayed++
		}
	}

	t.logger.Debug("hand started", "number", t.handNumber, "button", t.button)
	if err := t.advance(); err != nil {
		return t.Snapshot(t.viewer), err
	}
	return t.Snapshot(t.viewer), nil
}

// Act applies a human seat's action, then lets computer seats respond.
// A rejected action leaves the table unchanged and returns an error
// wrapping game.ErrIllegalAction.
func (t *Table) Act(req ActionRequest) (Snapshot, error) {
	if t.hand == nil {
		return t.Snapshot(t.viewer), &game.ActionError{Seat: req.Seat, Action: req.Kind, Reason: "no hand in progress"}
	}
	if err := t.hand.Apply(req.Seat, req.Kind, req.Amount); err != nil {
		return t.Snapshot(t.viewer), err
	}
	if err := t.advance(); err != nil {
		return t.Snapshot(t.viewer), err
	}
	return t.Snapshot(t.viewer), nil
}

// PlayHand starts a hand and plays it to completion. It is meant for tables
// with no human seats.
func (t *Table) PlayHand() error {
	if len(t.humans) > 0 {
		return errors.New("table has human seats")
	}
	_, err := t.StartHand()
	return err
}

// advance runs computer seats until a human is to act or the hand is over.
func (t *Table) advance() error {
	h := t.hand
	for !h.IsComplete() {
		if err := h.Err(); err != nil {
			t.message = err.Error()
			return err
		}
		engine, ok := t.bots[h.Actor]
		if !ok {
			t.message = fmt.Sprintf("%s to act", t.seats[h.Actor].Name)
			return nil
		}

		d := engine.Decide(h.View(h.Actor))
		if err := h.Apply(h.Actor, d.Action, d.Amount); err != nil {
			if !errors.Is(err, game.ErrIllegalAction) {
				t.message = err.Error()
				return err
			}
			// a bot decision should always be legal; fall back rather than stall
			t.logger.Error("bot chose an illegal action", "seat", h.Actor, "decision", d.Action, "amount", d.Amount, "err", err)
			fallback := game.Fold
			if h.CanPerform(game.Check) {
				fallback = game.Check
			}
			if err := h.Apply(h.Actor, fallback, 0); err != nil {
				return err
			}
		}
	}

	if err := t.CheckConservation(); err != nil {
		t.message = err.Error()
		return err
	}
	if !t.finished {
		t.finishHand()
	}
	return nil
}

// finishHand records statistics and the result message for a completed hand.
func (t *Table) finishHand() {
	t.finished = true
	h := t.hand

	for _, r := range h.Results {
		st := &t.stats[r.Seat]
		st.ChipsWon += r.Net
		if r.Net > 0 {
			st.HandsWon++
		}
		if !h.Uncontested && t.seats[r.Seat].InHand() {
			st.Showdowns++
		}
	}

	t.message = t.resultMessage()
	t.logger.Info("hand complete", "number", t.handNumber, "result", t.message)

	for _, s := range t.seats {
		if s.Stack == 0 && !s.Out {
			t.logger.Info("seat eliminated", "seat", s.Name)
		}
	}
}

// resultMessage summarises the main pot, explaining the showdown when
// more than one hand was compared.
func (t *Table) resultMessage() string {
	h := t.hand
	if len(h.Awards) == 0 {
		return "hand complete"
	}
	main := h.Awards[0]
	winner := main.Winners[0]
	if main.Returned {
		return fmt.Sprintf("%s wins %d uncontested", t.seats[winner.Seat].Name, main.Amount)
	}
	if len(main.Winners) > 1 {
		return fmt.Sprintf("split pot, %d ways with %s", len(main.Winners), winner.Hand)
	}

	best := t.handOf(winner.Seat)
	var runnerUp *evaluator.Hand
	for _, id := range main.Eligible {
		if id == winner.Seat {
			continue
		}
		other := t.handOf(id)
		if runnerUp == nil || other.Compare(*runnerUp) > 0 {
			runnerUp = &other
		}
	}
	msg := fmt.Sprintf("%s wins %d with %s", t.seats[winner.Seat].Name, winner.Amount, winner.Hand)
	if runnerUp != nil {
		_, why := best.Explain(*runnerUp)
		msg += ": " + why
	}
	return msg
}

func (t *Table) handOf(seat int) evaluator.Hand {
	cards := append(append([]deck.Card{}, t.seats[seat].Hole...), t.hand.Community...)
	return evaluator.MustEvaluate(cards)
}

// nextButton returns the next seat with chips after the current button.
func (t *Table) nextButton() int {
	n := len(t.seats)
	for step := 1; step <= n; step++ {
		i := (t.button + step + n) % n
		if t.seats[i].Stack > 0 {
			return i
		}
	}
	return 0
}
