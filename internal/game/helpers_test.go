package game

import (
	"math/rand/v2"
	"strings"
	"testing"
)

// newTestBoard builds a-b-c joined by land with d off c by river only.
func newTestBoard() *Board {
	return &Board{
		Nodes: map[NodeID]*Node{
			"a": {Label: "Anyang"},
			"b": {Label: "Bianliang"},
			"c": {Label: "Chengdu"},
			"d": {Label: "Dengzhou"},
		},
		Edges: map[EdgeID]*Edge{
			"ab": {A: "a", B: "b", Kinds: []EdgeKind{EdgeRoad}},
			"bc": {A: "b", B: "c", Kinds: []EdgeKind{EdgePath}},
			"cd": {A: "c", B: "d", Kinds: []EdgeKind{EdgeRiver}},
		},
	}
}

func newTestState() *State {
	s := &State{
		Board: newTestBoard(),
		PieceTypes: map[string]*PieceType{
			"foot": {Shape: "square", Width: 1},
			"ship": {Shape: "hull", Width: 2, Naval: true},
		},
		Pieces: map[PieceID]*Piece{},
		Characters: map[string]*Character{
			"yue": {Name: "Yue Fei", PlayerID: "p1", Location: AtNode("b")},
			"wu":  {Name: "Wuzhu", PlayerID: "p2", Location: AtNode("c")},
		},
		Players: []*Player{
			{ID: "p1", Name: "Alice", Faction: "song"},
			{ID: "p2", Name: "Bob", Faction: "jin"},
		},
		Seating: Seating{Order: []string{"p1", "p2"}},
	}
	s.RecomputeDiplomacy()
	return s
}

func newTestEngine(s *State, opts ...EngineOpt) *Engine {
	opts = append([]EngineOpt{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return NewEngine(s, opts...)
}

func testCard(id string, icons ...string) Card {
	return Card{UID: "uid-" + id, ID: id, Name: id, Icons: icons}
}

func effectCard(id string, eff Effect) Card {
	c := testCard(id)
	c.Effect = &eff
	return c
}

func addPiece(s *State, id PieceID, f Faction, typeID string, n NodeID) {
	s.Pieces[id] = &Piece{Faction: f, TypeID: typeID, Location: AtNode(n)}
}

// controlYue makes p1 control Yue Fei through a tucked token card.
func controlYue(s *State) {
	p := s.Player("p1")
	p.Tucked = append(p.Tucked, testCard("yue-token", "yue-fei"))
}

func piecesOf(s *State, f Faction) []*Piece {
	var out []*Piece
	for _, id := range s.PieceIDs() {
		if s.Pieces[id].Faction == f {
			out = append(out, s.Pieces[id])
		}
	}
	return out
}

func lastLog(s *State) string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1]
}

func assertLogContains(t *testing.T, s *State, sub string) {
	t.Helper()
	for _, l := range s.Log {
		if strings.Contains(l, sub) {
			return
		}
	}
	t.Errorf("expected log line containing %q, got %v", sub, s.Log)
}
