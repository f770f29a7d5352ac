package command

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// envOverrides are read after the config file so one binary can host a
// different match without editing it.
type envOverrides struct {
	LogLevel string `env:"TIANXIA_LOG_LEVEL"`
	Scenario string `env:"TIANXIA_SCENARIO"`
	Table    string `env:"TIANXIA_TABLE"`
	Seed     uint64 `env:"TIANXIA_SEED"`
}

// applyEnv overlays any TIANXIA_* variables onto c and re-checks the
// sections they touch.
func (c *Config) applyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(o.LogLevel)); err != nil {
			return fmt.Errorf("TIANXIA_LOG_LEVEL: %w", err)
		}
		c.LogLevel = lvl
	}
	if o.Scenario != "" {
		c.Table.Scenario = o.Scenario
	}
	if o.Table != "" {
		c.Table.Name = o.Table
	}
	if o.Seed != 0 {
		c.Table.Seed = o.Seed
	}

	return c.Table.validate()
}
