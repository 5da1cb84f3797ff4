package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
)

// HandOption configures a HandState during creation.
type HandOption func(*handConfig)

type handConfig struct {
	handID string
	deck   *deck.Deck
	rng    *rand.Rand
	bus    *EventBus
	logger *log.Logger
	clock  quartz.Clock
}

// WithDeck deals from the given deck instead of a freshly shuffled one.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) { c.deck = d }
}

// WithRNG shuffles the hand's deck with rng.
func WithRNG(rng *rand.Rand) HandOption {
	return func(c *handConfig) { c.rng = rng }
}

// WithEventBus publishes hand events on bus.
func WithEventBus(bus *EventBus) HandOption {
	return func(c *handConfig) { c.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) { c.logger = logger }
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) HandOption {
	return func(c *handConfig) { c.clock = clock }
}

// WithHandID overrides the generated hand identifier.
func WithHandID(id string) HandOption {
	return func(c *handConfig) { c.handID = id }
}

func newHandConfig(opts []HandOption) *handConfig {
	cfg := &handConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.handID == "" {
		cfg.handID = uuid.NewString()
	}
	if cfg.deck == nil {
		if cfg.rng == nil {
			cfg.rng = randutil.FromSeed(nil)
		}
		cfg.deck = deck.NewShuffledDeck(cfg.rng)
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	return cfg
}
