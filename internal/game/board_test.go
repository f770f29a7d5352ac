package game

import (
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestBoard_Neighbors(t *testing.T) {
	tests := map[string]struct {
		node NodeID
		mode MoveMode
		exp  []NodeID
	}{
		"any mode uses every edge": {
			node: "c",
			mode: MoveAny,
			exp:  []NodeID{"b", "d"},
		},
		"land skips rivers": {
			node: "c",
			mode: MoveLand,
			exp:  []NodeID{"b"},
		},
		"water only follows rivers": {
			node: "c",
			mode: MoveWater,
			exp:  []NodeID{"d"},
		},
		"no water edges from a": {
			node: "a",
			mode: MoveWater,
			exp:  nil,
		},
		"unknown node": {
			node: "z",
			mode: MoveAny,
			exp:  nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := newTestBoard().Neighbors(tt.node, tt.mode)
			if !slices.Equal(got, tt.exp) {
				t.Errorf("neighbors = %v, expected %v", got, tt.exp)
			}
		})
	}
}

func TestBoard_MixedEdge(t *testing.T) {
	b := newTestBoard()
	b.Edges["ad"] = &Edge{A: "a", B: "d", Kinds: []EdgeKind{EdgeRoad, EdgeCoast}}

	testutil.AssertEqual(t, "land", b.Adjacent("a", "d", MoveLand), true)
	testutil.AssertEqual(t, "water", b.Adjacent("d", "a", MoveWater), true)
}

func TestBoard_Validate(t *testing.T) {
	tests := map[string]struct {
		board  *Board
		expErr string
	}{
		"valid": {
			board: newTestBoard(),
		},
		"no nodes": {
			board:  &Board{},
			expErr: "nodes are required",
		},
		"unknown endpoint": {
			board: &Board{
				Nodes: map[NodeID]*Node{"a": {}},
				Edges: map[EdgeID]*Edge{"ax": {A: "a", B: "x", Kinds: []EdgeKind{EdgeRoad}}},
			},
			expErr: `unknown endpoint "x"`,
		},
		"empty kinds": {
			board: &Board{
				Nodes: map[NodeID]*Node{"a": {}, "b": {}},
				Edges: map[EdgeID]*Edge{"ab": {A: "a", B: "b"}},
			},
			expErr: "at least one kind",
		},
		"bad kind": {
			board: &Board{
				Nodes: map[NodeID]*Node{"a": {}, "b": {}},
				Edges: map[EdgeID]*Edge{"ab": {A: "a", B: "b", Kinds: []EdgeKind{"tunnel"}}},
			},
			expErr: `unknown kind "tunnel"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.board.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestBoard_Label(t *testing.T) {
	b := newTestBoard()
	testutil.AssertEqual(t, "known", b.Label("a"), "Anyang")
	testutil.AssertEqual(t, "unknown", b.Label("zz"), "zz")
}
