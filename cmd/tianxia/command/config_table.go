package command

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/scenario"
	"github.com/pixil98/go-tianxia/internal/table"
)

type TableConfig struct {
	Scenario string `json:"scenario"`
	// Name scopes the table's message subjects. It defaults to the
	// scenario id.
	Name string `json:"name,omitempty"`
	// Seed fixes shuffles. Zero seeds from the clock.
	Seed uint64 `json:"seed,omitempty"`
}

func (c *TableConfig) validate() error {
	el := errors.NewErrorList()

	if c.Scenario == "" {
		el.Add(fmt.Errorf("table: scenario is required"))
	}
	if strings.ContainsAny(c.name(), " \t.*>") {
		el.Add(fmt.Errorf("table: name %q may not contain spaces, dots or wildcards", c.name()))
	}

	return el.Err()
}

func (c *TableConfig) name() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Scenario
}

func (c *TableConfig) seed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// BuildTable sets up the configured scenario and starts its first turn.
func (c *TableConfig) BuildTable(dict *scenario.Dictionary, pub table.Publisher) (*table.Table, error) {
	seed := c.seed()
	rng := rand.New(rand.NewPCG(seed, seed))

	s, err := dict.Build(c.Scenario, rng)
	if err != nil {
		return nil, fmt.Errorf("building scenario: %w", err)
	}

	return table.New(s, dict.Catalog(), pub, game.WithRand(rng)), nil
}
