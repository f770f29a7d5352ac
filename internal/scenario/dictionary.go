package scenario

import (
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/storage"
)

// Dictionary joins the asset stores a match is built from.
type Dictionary struct {
	Cards     storage.Storer[*game.CardDef]
	Boards    storage.Storer[*game.Board]
	Scenarios storage.Storer[*Scenario]
}

// Load opens a file store per asset directory and resolves the result.
func Load(cardsPath, boardsPath, scenariosPath string) (*Dictionary, error) {
	cards, err := storage.NewFileStore[*game.CardDef](cardsPath)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}
	boards, err := storage.NewFileStore[*game.Board](boardsPath)
	if err != nil {
		return nil, fmt.Errorf("loading boards: %w", err)
	}
	scenarios, err := storage.NewFileStore[*Scenario](scenariosPath)
	if err != nil {
		return nil, fmt.Errorf("loading scenarios: %w", err)
	}

	d := &Dictionary{Cards: cards, Boards: boards, Scenarios: scenarios}
	if err := d.Resolve(); err != nil {
		return nil, err
	}
	return d, nil
}

// Resolve binds every scenario to its board and checks that each card and
// node it names exists.
func (d *Dictionary) Resolve() error {
	el := errors.NewErrorList()

	for _, id := range d.Scenarios.Keys() {
		if err := d.resolveScenario(d.Scenarios.Get(id)); err != nil {
			el.Add(fmt.Errorf("scenario %s: %w", id, err))
		}
	}

	if err := el.Err(); err != nil {
		return err
	}
	slog.Info("scenarios resolved", "count", len(d.Scenarios.Keys()))
	return nil
}

func (d *Dictionary) resolveScenario(s *Scenario) error {
	el := errors.NewErrorList()

	if err := s.Board.Resolve(d.Boards); err != nil {
		return err
	}
	board := s.Board.Value()

	for _, ref := range s.cardRefs() {
		if d.Cards.Get(ref) == nil {
			el.Add(fmt.Errorf("unknown card %q", ref))
		}
	}
	for _, n := range s.nodeRefs() {
		if !board.HasNode(n) {
			el.Add(fmt.Errorf("unknown node %q on board %s", n, s.Board.Key()))
		}
	}

	return el.Err()
}

// Build deals a fresh match for scenario id. rng shuffles the deck when
// the scenario asks for it.
func (d *Dictionary) Build(id string, rng *rand.Rand) (*game.State, error) {
	sc := d.Scenarios.Get(id)
	if sc == nil {
		return nil, fmt.Errorf("scenario %q not found", id)
	}
	board := sc.Board.Value()
	if board == nil {
		if err := sc.Board.Resolve(d.Boards); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", id, err)
		}
		board = sc.Board.Value()
	}

	s := &game.State{
		Board:      board,
		PieceTypes: make(map[string]*game.PieceType, len(sc.PieceTypes)),
		Pieces:     map[game.PieceID]*game.Piece{},
		Characters: make(map[string]*game.Character, len(sc.Characters)),
		Capitals:   maps.Clone(sc.Capitals),
	}
	for tid, pt := range sc.PieceTypes {
		cp := *pt
		s.PieceTypes[tid] = &cp
	}

	for _, ps := range sc.Players {
		p := &game.Player{
			ID:      ps.ID,
			Name:    ps.Name,
			Faction: ps.Faction,
			Coins:   ps.Coins,
		}
		if p.Name == "" {
			p.Name = ps.ID
		}
		var err error
		if p.Hand, err = d.deal(ps.Hand); err != nil {
			return nil, fmt.Errorf("scenario %s: player %s hand: %w", id, ps.ID, err)
		}
		if p.Tucked, err = d.deal(ps.Tucked); err != nil {
			return nil, fmt.Errorf("scenario %s: player %s tucked: %w", id, ps.ID, err)
		}
		s.Players = append(s.Players, p)
		s.Seating.Order = append(s.Seating.Order, p.ID)
	}

	for _, cid := range slices.Sorted(maps.Keys(sc.Characters)) {
		cs := sc.Characters[cid]
		loc := game.OffBoard()
		if cs.Node != "" {
			loc = game.AtNode(cs.Node)
		}
		s.Characters[cid] = &game.Character{
			Name:     cs.Name,
			PlayerID: cs.Player,
			Faction:  cs.Faction,
			Location: loc,
		}
	}

	for _, ps := range sc.Pieces {
		for range ps.count() {
			s.Pieces[game.NewPieceID()] = &game.Piece{
				Faction:  ps.Faction,
				TypeID:   ps.Type,
				Location: game.AtNode(ps.Node),
			}
		}
	}

	var deck []string
	for _, e := range sc.Deck {
		for range e.copies() {
			deck = append(deck, e.Card)
		}
	}
	pile, err := d.deal(deck)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: deck: %w", id, err)
	}
	if sc.Shuffle && rng != nil {
		pile = game.Shuffle(pile, rng)
	}
	s.DrawPile = pile

	s.CurrentPlayerID = sc.FirstPlayer
	s.RecomputeDiplomacy()

	slog.Info("scenario built", "scenario", id, "players", len(s.Players), "pieces", len(s.Pieces), "deck", len(s.DrawPile))
	return s, nil
}

// deal creates a fresh card instance for every id.
func (d *Dictionary) deal(ids []string) ([]game.Card, error) {
	var out []game.Card
	for _, cid := range ids {
		def := d.Cards.Get(cid)
		if def == nil {
			return nil, fmt.Errorf("unknown card %q", cid)
		}
		out = append(out, game.NewCard(cid, def))
	}
	return out, nil
}

// CardCatalog serves card definitions to the engine from a store.
type CardCatalog struct {
	store storage.Storer[*game.CardDef]
}

func NewCardCatalog(st storage.Storer[*game.CardDef]) *CardCatalog {
	return &CardCatalog{store: st}
}

func (c *CardCatalog) Card(id string) *game.CardDef {
	return c.store.Get(id)
}

// Catalog returns the card store as a game.Catalog.
func (d *Dictionary) Catalog() *CardCatalog {
	return NewCardCatalog(d.Cards)
}
