package scenario

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/storage"
)

// Scenario is the opening setup of a match.
type Scenario struct {
	Name        string                       `json:"name"`
	Board       storage.Ref[*game.Board]     `json:"board"`
	PieceTypes  map[string]*game.PieceType   `json:"piece_types"`
	Players     []PlayerSetup                `json:"players"`
	Characters  map[string]CharacterSetup    `json:"characters,omitempty"`
	Pieces      []PieceSetup                 `json:"pieces,omitempty"`
	Capitals    map[game.Faction]game.NodeID `json:"capitals,omitempty"`
	Deck        []DeckEntry                  `json:"deck"`
	Shuffle     bool                         `json:"shuffle,omitempty"`
	FirstPlayer string                       `json:"first_player,omitempty"`
}

type PlayerSetup struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Faction game.Faction `json:"faction,omitempty"`
	Coins   int          `json:"coins,omitempty"`
	Hand    []string     `json:"hand,omitempty"`
	Tucked  []string     `json:"tucked,omitempty"`
}

type CharacterSetup struct {
	Name    string       `json:"name"`
	Player  string       `json:"player"`
	Faction game.Faction `json:"faction,omitempty"`
	Node    game.NodeID  `json:"node,omitempty"`
}

type PieceSetup struct {
	Faction game.Faction `json:"faction"`
	Type    string       `json:"type"`
	Node    game.NodeID  `json:"node"`
	Count   int          `json:"count,omitempty"`
}

func (p PieceSetup) count() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}

type DeckEntry struct {
	Card   string `json:"card"`
	Copies int    `json:"copies,omitempty"`
}

func (d DeckEntry) copies() int {
	if d.Copies <= 0 {
		return 1
	}
	return d.Copies
}

// Validate checks the scenario on its own. References into other assets
// are checked by Dictionary.Resolve.
func (s *Scenario) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	el.Add(s.Board.Validate())

	if len(s.Players) == 0 {
		el.Add(fmt.Errorf("at least one player is required"))
	}
	var ids []string
	for i, p := range s.Players {
		if p.ID == "" {
			el.Add(fmt.Errorf("player %d: id is required", i))
			continue
		}
		if slices.Contains(ids, p.ID) {
			el.Add(fmt.Errorf("player %q is listed twice", p.ID))
		}
		ids = append(ids, p.ID)
	}
	if s.FirstPlayer != "" && !slices.Contains(ids, s.FirstPlayer) {
		el.Add(fmt.Errorf("first player %q is not seated", s.FirstPlayer))
	}

	for id, c := range s.Characters {
		if c.Name == "" {
			el.Add(fmt.Errorf("character %q: name is required", id))
		}
		if !slices.Contains(ids, c.Player) {
			el.Add(fmt.Errorf("character %q: unknown player %q", id, c.Player))
		}
	}

	for tid, pt := range s.PieceTypes {
		if pt == nil {
			el.Add(fmt.Errorf("piece type %q is empty", tid))
		}
	}
	for i, p := range s.Pieces {
		if _, ok := s.PieceTypes[p.Type]; !ok {
			el.Add(fmt.Errorf("piece %d: unknown type %q", i, p.Type))
		}
	}

	for i, d := range s.Deck {
		if d.Card == "" {
			el.Add(fmt.Errorf("deck entry %d: card is required", i))
		}
	}

	return el.Err()
}

// cardRefs lists every card id the scenario deals, deck first.
func (s *Scenario) cardRefs() []string {
	var refs []string
	for _, d := range s.Deck {
		refs = append(refs, d.Card)
	}
	for _, p := range s.Players {
		refs = append(refs, p.Hand...)
		refs = append(refs, p.Tucked...)
	}
	return refs
}

// nodeRefs lists every board node the scenario places something on.
func (s *Scenario) nodeRefs() []game.NodeID {
	var refs []game.NodeID
	for _, p := range s.Pieces {
		refs = append(refs, p.Node)
	}
	for _, c := range s.Characters {
		if c.Node != "" {
			refs = append(refs, c.Node)
		}
	}
	for _, n := range s.Capitals {
		refs = append(refs, n)
	}
	return refs
}
