package bot

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
)

// Decision is an action chosen for a seat along with a short explanation.
type Decision struct {
	Action    game.Action
	Amount    int // raise-to total for Raise, ignored otherwise
	Reasoning string
}

// Engine decides for one computer-controlled seat.
type Engine struct {
	profile Profile
	skill   SkillLevel
	rng     *rand.Rand
	logger  *log.Logger
}

// New creates an engine. The rng should be private to the seat so a seeded
// table replays the same decisions.
func New(profile Profile, skill SkillLevel, rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{
		profile: profile,
		skill:   skill,
		rng:     rng,
		logger:  logger.WithPrefix("bot"),
	}
}

// Profile returns the engine's profile.
func (e *Engine) Profile() Profile {
	return e.profile
}

// thinking accumulates the reasons behind a decision.
type thinking struct {
	thoughts []string
}

func (t *thinking) add(format string, args ...any) {
	t.thoughts = append(t.thoughts, fmt.Sprintf(format, args...))
}

func (t *thinking) String() string {
	if len(t.thoughts) == 0 {
		return "no clear reasoning"
	}
	return strings.Join(t.thoughts, "; ")
}

// legal indexes the valid actions of a view.
type legal map[game.Action]game.ActionOption

func (l legal) has(a game.Action) bool {
	_, ok := l[a]
	return ok
}

// Decide picks an action for the seat described by v. The result is always
// one of v.Valid, with any raise amount inside its bounds.
func (e *Engine) Decide(v game.View) Decision {
	if len(v.Valid) == 0 {
		return Decision{Action: game.Fold, Reasoning: "not our turn"}
	}
	opts := make(legal, len(v.Valid))
	for _, o := range v.Valid {
		opts[o.Action] = o
	}

	t := &thinking{}
	strength := HandStrength(v.Hole, v.Community)
	t.add("strength %s", strength)

	shift := (e.rng.Float64()*2 - 1) * e.skill.Jitter()
	p := e.profile.shifted(shift)

	free := opts.has(game.Check)
	potOdds := 0.0
	if !free {
		potOdds = float64(v.ToCall) / float64(v.Pot+v.ToCall)
		t.add("need %d to win %d, pot odds %.2f", v.ToCall, v.Pot, potOdds)
	}

	var d Decision
	s := strength.Value
	switch {
	case s >= p.AllIn && opts.has(game.AllIn) && v.Stack <= v.Pot:
		t.add("very strong and stack %d is no bigger than the pot", v.Stack)
		d = Decision{Action: game.AllIn}

	case s >= p.Raise:
		t.add("strong enough to raise")
		d = e.aggressive(v, opts, p, t)

	case s >= p.Call:
		t.add("good enough to continue")
		d = e.passive(opts)

	case s >= p.Fold:
		if free || s >= potOdds {
			t.add("marginal, price is right")
			d = e.passive(opts)
		} else {
			t.add("marginal and the price is too high")
			d = Decision{Action: game.Fold}
		}

	default:
		if free && opts.has(game.Raise) && e.rng.Float64() < p.Bluff {
			t.add("weak, but checked to us so bluffing")
			o := opts[game.Raise]
			d = Decision{Action: game.Raise, Amount: o.Min}
		} else if free {
			t.add("weak, checking")
			d = Decision{Action: game.Check}
		} else {
			t.add("weak, folding")
			d = Decision{Action: game.Fold}
		}
	}

	if d.Action == game.Raise {
		t.add("raise to %d", d.Amount)
	}
	d.Reasoning = t.String()

	e.logger.Debug("decision",
		"seat", v.Seat,
		"profile", e.profile.Name,
		"round", v.Round,
		"strength", strength.Value,
		"action", d.Action,
		"amount", d.Amount,
		"reasoning", d.Reasoning)
	return d
}

// passive checks when free and otherwise calls, going all-in when the call
// takes the whole stack.
func (e *Engine) passive(opts legal) Decision {
	switch {
	case opts.has(game.Check):
		return Decision{Action: game.Check}
	case opts.has(game.Call):
		return Decision{Action: game.Call}
	default:
		return Decision{Action: game.AllIn}
	}
}

// aggressive raises by a pot-sized amount scaled by aggression. When a raise
// is not available it falls back to the strongest passive action.
func (e *Engine) aggressive(v game.View, opts legal, p Profile, t *thinking) Decision {
	o, ok := opts[game.Raise]
	if !ok {
		if !opts.has(game.Call) && !opts.has(game.Check) {
			return Decision{Action: game.AllIn}
		}
		if opts.has(game.AllIn) && v.ActiveOpponents > 0 && v.Stack+v.Bet <= v.MinRaiseTo {
			t.add("short stack, moving in")
			return Decision{Action: game.AllIn}
		}
		return e.passive(opts)
	}

	target := v.HighestBet + int(float64(v.Pot+v.ToCall)*(0.5+p.Aggression))
	return Decision{Action: game.Raise, Amount: min(o.Max, max(o.Min, target))}
}
