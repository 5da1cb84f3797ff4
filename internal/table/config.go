package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// SeatConfig describes one chair at the table.
type SeatConfig struct {
	Name    string
	Stack   int
	Human   bool
	Profile string // bot profile, ignored for humans
	Skill   string // bot skill level, ignored for humans
}

// Config describes a table session.
type Config struct {
	SmallBlind int
	BigBlind   int
	Seats      []SeatConfig
	Seed       *int64 // nil shuffles from the clock
	LogSize    int    // event log lines kept for snapshots
}

const defaultLogSize = 50

// Validate checks the configuration
func (c Config) Validate() error {
	var errs []error
	if len(c.Seats) < 2 || len(c.Seats) > game.MaxSeats {
		errs = append(errs, fmt.Errorf("need between 2 and %d seats, got %d", game.MaxSeats, len(c.Seats)))
	}
	if c.SmallBlind <= 0 {
		errs = append(errs, errors.New("small blind must be positive"))
	}
	if c.BigBlind < c.SmallBlind {
		errs = append(errs, errors.New("big blind must be at least the small blind"))
	}
	if c.LogSize < 0 {
		errs = append(errs, errors.New("log size cannot be negative"))
	}

	names := map[string]bool{}
	for i, s := range c.Seats {
		name := strings.TrimSpace(s.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("seat %d: name is required", i))
		case names[name]:
			errs = append(errs, fmt.Errorf("seat %d: duplicate name %q", i, name))
		}
		names[name] = true

		if s.Stack <= 0 {
			errs = append(errs, fmt.Errorf("seat %d: stack must be positive", i))
		}
		if s.Human {
			continue
		}
		if _, err := bot.LookupProfile(profileOrDefault(s.Profile)); err != nil {
			errs = append(errs, fmt.Errorf("seat %d: %w", i, err))
		}
		if _, err := bot.ParseSkillLevel(skillOrDefault(s.Skill)); err != nil {
			errs = append(errs, fmt.Errorf("seat %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func profileOrDefault(p string) string {
	if p == "" {
		return bot.DefaultProfile
	}
	return p
}

func skillOrDefault(s string) string {
	if s == "" {
		return bot.Intermediate.String()
	}
	return s
}
