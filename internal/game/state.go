package game

import (
	"slices"

	"github.com/google/uuid"
)

type Faction string

type PieceID string

// NewPieceID returns a fresh piece id.
func NewPieceID() PieceID {
	return PieceID(uuid.New().String())
}

// LocationKind discriminates Location.
type LocationKind int

const (
	LocOff LocationKind = iota // eliminated or not yet placed
	LocNode
	LocEdge
)

// Location places a piece or character on the board.
type Location struct {
	Kind LocationKind `json:"kind"`
	Node NodeID       `json:"node,omitempty"`
	Edge EdgeID       `json:"edge,omitempty"`
}

func AtNode(n NodeID) Location { return Location{Kind: LocNode, Node: n} }
func AtEdge(e EdgeID) Location { return Location{Kind: LocEdge, Edge: e} }
func OffBoard() Location       { return Location{Kind: LocOff} }

// IsAt reports whether the location is on node n.
func (l Location) IsAt(n NodeID) bool {
	return l.Kind == LocNode && l.Node == n
}

// PieceType is a unit archetype.
type PieceType struct {
	Shape string `json:"shape"`
	Width int    `json:"width"`
	Naval bool   `json:"naval,omitempty"`
}

// Piece is a unit on (or off) the board. A piece with no faction cannot be
// targeted.
type Piece struct {
	Faction  Faction  `json:"faction,omitempty"`
	TypeID   string   `json:"type"`
	Location Location `json:"location"`
}

// Character is a player-controlled standee. Faction is only a fallback;
// see State.CharacterFaction.
type Character struct {
	Name     string   `json:"name"`
	PlayerID string   `json:"player"`
	Faction  Faction  `json:"faction,omitempty"`
	Location Location `json:"location"`
}

type Player struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Faction Faction `json:"faction,omitempty"`
	Hand    []Card  `json:"hand"`
	// Tucked is ordered; the last card is topmost.
	Tucked []Card `json:"tucked"`
	Coins  int    `json:"coins"`
}

type Seating struct {
	Order []string `json:"order"`
}

// Pending is the suspended remainder of an effect tree.
type Pending struct {
	PlayerID string   `json:"player"`
	Card     Card     `json:"card"`
	Queue    []Effect `json:"queue"`
}

// State is the whole match. One engine owns it and mutates it in place.
type State struct {
	Board      *Board                 `json:"map"`
	PieceTypes map[string]*PieceType  `json:"piece_types"`
	Pieces     map[PieceID]*Piece     `json:"pieces"`
	Characters map[string]*Character  `json:"characters"`
	Players    []*Player              `json:"players"`
	Capitals   map[Faction]NodeID     `json:"capitals,omitempty"`
	DrawPile   []Card                 `json:"draw_pile"`
	Discard    []Card                 `json:"discard_pile"`
	Diplomacy  Diplomacy              `json:"diplomacy"`

	Prompt   Prompt   `json:"-"`
	Pending  *Pending `json:"pending,omitempty"`
	InFlight *Card    `json:"in_flight,omitempty"`

	CurrentPlayerID string  `json:"current_player"`
	ViewPlayerID    string  `json:"view_player"`
	Seating         Seating `json:"seating"`

	HasPlayedThisTurn bool `json:"has_played"`
	HasActedThisTurn  bool `json:"has_acted"`

	Ended  bool   `json:"ended"`
	Winner string `json:"winner,omitempty"`

	Log []string `json:"log"`
}

// Player returns the player with id, or nil.
func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the turn owner, or nil.
func (s *State) CurrentPlayer() *Player {
	return s.Player(s.CurrentPlayerID)
}

// seatOrder returns the seating order, falling back to roster order.
func (s *State) seatOrder() []string {
	if len(s.Seating.Order) > 0 {
		return s.Seating.Order
	}
	ids := make([]string, len(s.Players))
	for i, p := range s.Players {
		ids[i] = p.ID
	}
	return ids
}

// Opponents returns every other player in seating order starting after id.
func (s *State) Opponents(id string) []*Player {
	order := s.seatOrder()
	start := slices.Index(order, id)
	var out []*Player
	for i := 1; i <= len(order); i++ {
		pid := order[(start+i+len(order))%len(order)]
		if pid == id {
			continue
		}
		if p := s.Player(pid); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// PieceIDs returns all piece ids in sorted order.
func (s *State) PieceIDs() []PieceID {
	ids := make([]PieceID, 0, len(s.Pieces))
	for id := range s.Pieces {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// PiecesAt returns the pieces on node n, ordered by id.
func (s *State) PiecesAt(n NodeID) []*Piece {
	var out []*Piece
	for _, id := range s.PieceIDs() {
		if p := s.Pieces[id]; p.Location.IsAt(n) {
			out = append(out, p)
		}
	}
	return out
}

// PieceIDsAt returns the ids of pieces on node n, sorted.
func (s *State) PieceIDsAt(n NodeID) []PieceID {
	var out []PieceID
	for _, id := range s.PieceIDs() {
		if s.Pieces[id].Location.IsAt(n) {
			out = append(out, id)
		}
	}
	return out
}

// CharacterIDs returns all character ids in sorted order.
func (s *State) CharacterIDs() []string {
	ids := make([]string, 0, len(s.Characters))
	for id := range s.Characters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// MoveModeOf returns how piece p travels between nodes.
func (s *State) MoveModeOf(p *Piece) MoveMode {
	if pt, ok := s.PieceTypes[p.TypeID]; ok && pt != nil && pt.Naval {
		return MoveWater
	}
	if p.TypeID == "ship" {
		return MoveWater
	}
	return MoveLand
}

// Factions returns every faction known from players, pieces and characters,
// sorted.
func (s *State) Factions() []Faction {
	var out []Faction
	add := func(f Faction) {
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	for _, p := range s.Players {
		add(p.Faction)
	}
	for _, id := range s.PieceIDs() {
		add(s.Pieces[id].Faction)
	}
	for _, id := range s.CharacterIDs() {
		add(s.Characters[id].Faction)
	}
	slices.Sort(out)
	return out
}

func (s *State) findTucked(uid string) *Player {
	for _, p := range s.Players {
		for _, c := range p.Tucked {
			if c.UID == uid {
				return p
			}
		}
	}
	return nil
}
