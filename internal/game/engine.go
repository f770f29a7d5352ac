package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

// Outcome is the result of running part of an effect tree.
type Outcome int

const (
	Completed Outcome = iota
	Suspended
)

func (o Outcome) String() string {
	if o == Suspended {
		return "suspended"
	}
	return "completed"
}

// Engine runs the rules against one State. It is not safe for concurrent
// use; callers serialize player input.
type Engine struct {
	state    *State
	catalog  Catalog
	rng      *rand.Rand
	snapshot *State

	// splice is where the next suspended remainder is queued.
	splice int
}

type EngineOpt func(*Engine)

// WithRand sets the random source used for shuffles.
func WithRand(r *rand.Rand) EngineOpt {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithCatalog sets the card catalog used by addCardToHand.
func WithCatalog(c Catalog) EngineOpt {
	return func(e *Engine) {
		e.catalog = c
	}
}

func NewEngine(s *State, opts ...EngineOpt) *Engine {
	e := &Engine{
		state:   s,
		catalog: MapCatalog{},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.state.Diplomacy == nil {
		e.state.RecomputeDiplomacy()
	}

	return e
}

// State returns the live state. Renderers may read it between calls.
func (e *Engine) State() *State {
	return e.state
}

// Phase reports which of idle or awaiting-input the engine is in.
func (e *Engine) Phase() string {
	if e.state.Prompt != nil {
		return "awaiting " + string(e.state.Prompt.Kind())
	}
	return "idle"
}

func (e *Engine) logf(format string, args ...any) {
	e.state.Log = append(e.state.Log, fmt.Sprintf(format, args...))
}

func (e *Engine) playerName(id string) string {
	if p := e.state.Player(id); p != nil && p.Name != "" {
		return p.Name
	}
	return id
}

func (e *Engine) publish(p Prompt) {
	e.state.Prompt = p
	slog.Debug("resolution suspended", "prompt", p.Kind(), "player", p.Owner())
}
