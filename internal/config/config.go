// Package config loads table settings from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
	"github.com/lox/holdem-engine/internal/table"
)

// EnvPrefix prefixes every environment override, e.g. HOLDEM_SEED.
const EnvPrefix = "holdem"

// Config represents a complete table configuration file
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	Seats []SeatSettings `hcl:"seat,block"`
	Log   *LogSettings   `hcl:"log,block"`
}

// TableSettings holds the stakes and session options.
type TableSettings struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	Seed          *int64 `hcl:"seed,optional"`
	LogSize       int    `hcl:"log_size,optional"`
}

// SeatSettings defines one player. Stack falls back to the table's starting stack.
type SeatSettings struct {
	Name    string `hcl:"name,label"`
	Stack   int    `hcl:"stack,optional"`
	Human   bool   `hcl:"human,optional"`
	Profile string `hcl:"profile,optional"`
	Skill   string `hcl:"skill,optional"`
}

// LogSettings controls the application logger.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Env holds the overrides read from the environment.
type Env struct {
	SmallBlind    int    `envconfig:"small_blind"`
	BigBlind      int    `envconfig:"big_blind"`
	StartingStack int    `envconfig:"starting_stack"`
	Seed          *int64 `envconfig:"seed"`
	LogLevel      string `envconfig:"log_level"`
	LogFile       string `envconfig:"log_file"`
}

const (
	defaultSmallBlind    = 5
	defaultBigBlind      = 10
	defaultStartingStack = 1000
	defaultLogLevel      = "info"
	defaultOpponents     = 3
)

// Default returns a human seat against three computer opponents.
func Default() *Config {
	c := &Config{
		Seats: []SeatSettings{{Name: "You", Human: true}},
	}
	for i := range defaultOpponents {
		c.Seats = append(c.Seats, SeatSettings{Name: fmt.Sprintf("AI Player %d", i+1)})
	}
	c.applyDefaults()
	return c
}

// Load reads filename, falling back to Default when the file does not exist.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(config.Seats) == 0 {
		config.Seats = Default().Seats
	}
	config.applyDefaults()
	return &config, nil
}

// ApplyEnv overlays HOLDEM_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.SmallBlind > 0 {
		c.Table.SmallBlind = env.SmallBlind
	}
	if env.BigBlind > 0 {
		c.Table.BigBlind = env.BigBlind
	}
	if env.StartingStack > 0 {
		// only seats that were using the old default move with it
		for i := range c.Seats {
			if c.Seats[i].Stack == c.Table.StartingStack {
				c.Seats[i].Stack = env.StartingStack
			}
		}
		c.Table.StartingStack = env.StartingStack
	}
	if env.Seed != nil {
		c.Table.Seed = env.Seed
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		c.Log.File = env.LogFile
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = defaultSmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = c.Table.SmallBlind * 2
	}
	if c.Table.StartingStack == 0 {
		c.Table.StartingStack = defaultStartingStack
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	for i := range c.Seats {
		if c.Seats[i].Stack == 0 {
			c.Seats[i].Stack = c.Table.StartingStack
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	humans := 0
	for _, s := range c.Seats {
		if s.Human {
			humans++
		}
	}
	if humans > 1 {
		errs = append(errs, fmt.Errorf("at most one human seat is supported, got %d", humans))
	}
	if err := c.TableConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TableConfig converts the file into a table configuration.
func (c *Config) TableConfig() table.Config {
	tc := table.Config{
		SmallBlind: c.Table.SmallBlind,
		BigBlind:   c.Table.BigBlind,
		Seed:       c.Table.Seed,
		LogSize:    c.Table.LogSize,
	}
	for _, s := range c.Seats {
		tc.Seats = append(tc.Seats, table.SeatConfig{
			Name:    strings.TrimSpace(s.Name),
			Stack:   s.Stack,
			Human:   s.Human,
			Profile: s.Profile,
			Skill:   s.Skill,
		})
	}
	return tc
}

// LogLevel returns the configured level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
