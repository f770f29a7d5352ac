package table

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/text"
)

// Seat describes one player position at the table.
type Seat struct {
	ID      string
	Name    string
	Faction game.Faction
	Taken   bool
}

// Table runs one match. Every command from every session goes through Exec,
// which serializes access to the engine.
type Table struct {
	mu      sync.Mutex
	engine  *game.Engine
	catalog game.Catalog
	pub     Publisher

	seated  map[string]bool
	logSent int
	// prompted is the prompt last sent to its owner. A prompt is a fresh
	// value each time the engine opens one, so identity tells a repeat from
	// a new decision with the same text.
	prompted game.Prompt
}

// New starts the first turn of s and returns a table around it.
func New(s *game.State, catalog game.Catalog, pub Publisher, opts ...game.EngineOpt) *Table {
	opts = append([]game.EngineOpt{game.WithCatalog(catalog)}, opts...)
	e := game.NewEngine(s, opts...)
	e.StartTurn()

	return &Table{
		engine:  e,
		catalog: catalog,
		pub:     pub,
		seated:  map[string]bool{},
		logSent: len(s.Log),
	}
}

// Seats lists the players of the match in seating order.
func (t *Table) Seats() []Seat {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.engine.State()
	order := s.Seating.Order
	if len(order) == 0 {
		for _, p := range s.Players {
			order = append(order, p.ID)
		}
	}

	seats := make([]Seat, 0, len(order))
	for _, id := range order {
		p := s.Player(id)
		if p == nil {
			continue
		}
		seats = append(seats, Seat{ID: p.ID, Name: p.Name, Faction: p.Faction, Taken: t.seated[p.ID]})
	}
	return seats
}

// Sit claims seat for a session.
func (t *Table) Sit(ctx context.Context, seat string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.engine.State().Player(seat)
	if p == nil {
		return NewUserError(fmt.Sprintf("There is no seat %q.", seat))
	}
	if t.seated[seat] {
		return NewUserError(fmt.Sprintf("%s's seat is already taken.", p.Name))
	}
	t.seated[seat] = true

	slog.InfoContext(ctx, "seat taken", "seat", seat)
	t.publish(t.everyone(), []string{seat}, fmt.Sprintf("%s sits down at the table.", p.Name))
	return nil
}

// Leave frees seat.
func (t *Table) Leave(ctx context.Context, seat string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.seated[seat] {
		return
	}
	delete(t.seated, seat)

	slog.InfoContext(ctx, "seat released", "seat", seat)
	if p := t.engine.State().Player(seat); p != nil {
		t.publish(t.everyone(), nil, fmt.Sprintf("%s leaves the table.", p.Name))
	}
}

// Exec runs one line of input for seat. Output is published to the seat;
// state changes are announced to everyone seated.
func (t *Table) Exec(ctx context.Context, seat string, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	name := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := commands[name]
	if !ok {
		return NewUserError(fmt.Sprintf("Unknown command %q. Type \"help\" for a list.", name))
	}
	if cmd.quit {
		return ErrQuit
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.engine.State().Player(seat) == nil {
		return fmt.Errorf("seat %q is not part of this match", seat)
	}

	err := cmd.run(t, seat, args)
	t.flush()
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "command executed", "seat", seat, "command", name, "phase", t.engine.Phase())
	return nil
}

// PlayerName returns the display name of the player in seat id.
func (t *Table) PlayerName(id string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name(id)
}

// Phase reports the engine phase.
func (t *Table) Phase() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Phase()
}

// flush announces new log lines to every seat and re-prompts the owner of
// a decision that changed.
func (t *Table) flush() {
	s := t.engine.State()
	if t.logSent > len(s.Log) {
		t.logSent = len(s.Log)
	}
	if lines := s.Log[t.logSent:]; len(lines) > 0 {
		t.publish(t.everyone(), nil, strings.Join(lines, "\n"))
		t.logSent = len(s.Log)
	}

	if s.Prompt == t.prompted {
		return
	}
	t.prompted = s.Prompt
	if s.Prompt == nil {
		return
	}
	prompt, err := text.Prompt(s)
	if err != nil {
		slog.Warn("rendering prompt", "error", err)
		return
	}
	t.tell(s.Prompt.Owner(), strings.TrimSuffix(prompt, "\n"))
}

func (t *Table) tell(seat string, msg string) {
	t.publish([]string{seat}, nil, msg)
}

func (t *Table) publish(seats []string, exclude []string, msg string) {
	if t.pub == nil || len(seats) == 0 {
		return
	}
	if err := t.pub.Publish(seats, exclude, []byte(msg)); err != nil {
		slog.Warn("publishing to seats", "seats", seats, "error", err)
	}
}

func (t *Table) everyone() []string {
	seats := make([]string, 0, len(t.seated))
	for id := range t.seated {
		seats = append(seats, id)
	}
	slices.Sort(seats)
	return seats
}

func (t *Table) name(id string) string {
	if p := t.engine.State().Player(id); p != nil && p.Name != "" {
		return p.Name
	}
	return id
}
