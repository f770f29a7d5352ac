package game

import (
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestEngine_RecruitOptions(t *testing.T) {
	tests := map[string]struct {
		setup func(s *State)
		verb  Verb
		exp   []NodeID
	}{
		"listed nodes": {
			verb: Verb{Kind: VerbRecruit, PieceType: "foot", Nodes: []NodeID{"c", "a", "c", "zz"}},
			exp:  []NodeID{"c", "a"},
		},
		"anywhere minus excluded": {
			verb: Verb{Kind: VerbRecruit, PieceType: "foot", Where: WhereAny, Exclude: []NodeID{"b"}},
			exp:  []NodeID{"a", "c", "d"},
		},
		"controlled": {
			setup: func(s *State) {
				addPiece(s, "p-1", "song", "foot", "a")
			},
			verb: Verb{Kind: VerbRecruit, PieceType: "foot", Where: WhereControlled},
			exp:  []NodeID{"a", "b"},
		},
		"controlled by another faction": {
			setup: func(s *State) {
				addPiece(s, "p-1", "jin", "ship", "c")
			},
			verb: Verb{Kind: VerbRecruit, PieceType: "foot", Faction: "song", Where: WhereControlled, ControlledBy: "jin"},
			exp:  []NodeID{"c", "d"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState()
			if tt.setup != nil {
				tt.setup(s)
			}
			e := newTestEngine(s)

			out := e.execVerb("p1", &tt.verb)

			testutil.AssertEqual(t, "outcome", out, Suspended)
			pr, ok := s.Prompt.(*SelectNodePrompt)
			if !ok {
				t.Fatalf("expected select node prompt, got %T", s.Prompt)
			}
			if !slices.Equal(pr.Options, tt.exp) {
				t.Errorf("options = %v, expected %v", pr.Options, tt.exp)
			}
			testutil.AssertEqual(t, "purpose", pr.Purpose, NodeRecruit)
		})
	}
}

func TestEngine_RecruitNowhere(t *testing.T) {
	s := newTestState()
	e := newTestEngine(s)

	out := e.execVerb("p1", &Verb{Kind: VerbRecruit, PieceType: "foot", Nodes: []NodeID{"zz"}})

	testutil.AssertEqual(t, "outcome", out, Completed)
	testutil.AssertEqual(t, "no prompt", s.Prompt == nil, true)
}

func TestEngine_RecruitPlacements(t *testing.T) {
	tests := map[string]struct {
		unique     bool
		expOptions [][]NodeID
	}{
		"unique": {
			unique:     true,
			expOptions: [][]NodeID{{"a", "b", "c", "d"}, {"b", "c", "d"}, {"c", "d"}},
		},
		"repeatable": {
			expOptions: [][]NodeID{{"a", "b", "c", "d"}, {"a", "b", "c", "d"}, {"a", "b", "c", "d"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState()
			e := newTestEngine(s)

			e.execVerb("p1", &Verb{Kind: VerbRecruit, PieceType: "foot", Where: WhereAny, Count: 3, Unique: tt.unique})

			picks := []NodeID{"a", "b", "c"}
			for i, exp := range tt.expOptions {
				pr, ok := s.Prompt.(*SelectNodePrompt)
				if !ok {
					t.Fatalf("placement %d: no prompt", i)
				}
				if !slices.Equal(pr.Options, exp) {
					t.Errorf("placement %d options = %v, expected %v", i, pr.Options, exp)
				}
				testutil.AssertEqual(t, "remaining", pr.Remaining, 3-i)
				e.InputSelectNode(picks[i])
			}

			testutil.AssertEqual(t, "exhausted", s.Prompt == nil, true)
			testutil.AssertEqual(t, "pieces", len(piecesOf(s, "song")), 3)
		})
	}
}

func TestEngine_RecruitRunsOutOfNodes(t *testing.T) {
	s := newTestState()
	e := newTestEngine(s)

	e.execVerb("p1", &Verb{Kind: VerbRecruit, PieceType: "foot", Nodes: []NodeID{"a"}, Count: 3, Unique: true})
	e.InputSelectNode("a")

	testutil.AssertEqual(t, "no prompt", s.Prompt == nil, true)
	testutil.AssertEqual(t, "pieces", len(piecesOf(s, "song")), 1)
	assertLogContains(t, s, "nowhere left to recruit")
}

func TestEngine_SelectNodeRejectsUnoffered(t *testing.T) {
	s := newTestState()
	e := newTestEngine(s)

	e.execVerb("p1", &Verb{Kind: VerbRecruit, PieceType: "foot", Nodes: []NodeID{"a"}})
	e.InputSelectNode("b")
	e.InputSelectPiece("p-1")
	e.InputChoose(0)

	testutil.AssertEqual(t, "still waiting", s.Prompt != nil, true)
	testutil.AssertEqual(t, "pieces", len(s.Pieces), 0)
}

func TestEngine_PlaceCharacter(t *testing.T) {
	tests := map[string]struct {
		verb Verb
		exp  []NodeID
	}{
		"adjacent": {
			verb: Verb{Kind: VerbPlaceCharacter, Where: WhereAdjacent},
			exp:  []NodeID{"b", "a", "c"},
		},
		"listed": {
			verb: Verb{Kind: VerbPlaceCharacter, Nodes: []NodeID{"d"}},
			exp:  []NodeID{"d"},
		},
		"named character": {
			verb: Verb{Kind: VerbPlaceCharacter, Character: "wu", Where: WhereAny},
			exp:  []NodeID{"a", "b", "c", "d"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState()
			controlYue(s)
			e := newTestEngine(s)

			e.execVerb("p1", &tt.verb)

			pr, ok := s.Prompt.(*SelectNodePrompt)
			if !ok {
				t.Fatalf("expected select node prompt, got %T", s.Prompt)
			}
			if !slices.Equal(pr.Options, tt.exp) {
				t.Errorf("options = %v, expected %v", pr.Options, tt.exp)
			}

			e.InputSelectNode(tt.exp[len(tt.exp)-1])
			ch := s.Characters[pr.CharacterID]
			testutil.AssertEqual(t, "placed", ch.Location, AtNode(tt.exp[len(tt.exp)-1]))
		})
	}
}

func TestEngine_PlaceCharacterWithoutControl(t *testing.T) {
	s := newTestState()
	e := newTestEngine(s)

	e.execVerb("p1", &Verb{Kind: VerbPlaceCharacter, Where: WhereAny})

	testutil.AssertEqual(t, "no prompt", s.Prompt == nil, true)
	testutil.AssertEqual(t, "log", lastLog(s), "Alice controls no character to place.")
}

func TestEngine_Move(t *testing.T) {
	tests := map[string]struct {
		typeID  string
		from    NodeID
		to      NodeID
		expOpts []NodeID
	}{
		"foot by land": {
			typeID: "foot", from: "b", to: "c",
			expOpts: []NodeID{"a", "c"},
		},
		"ship by water": {
			typeID: "ship", from: "d", to: "c",
			expOpts: []NodeID{"c"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState()
			addPiece(s, "p-1", "song", tt.typeID, tt.from)
			addPiece(s, "p-2", "jin", "foot", "a")
			e := newTestEngine(s)

			e.execVerb("p1", &Verb{Kind: VerbMove})

			pick, ok := s.Prompt.(*SelectPiecePrompt)
			if !ok {
				t.Fatalf("expected select piece prompt, got %T", s.Prompt)
			}
			if !slices.Equal(pick.Options, []PieceID{"p-1"}) {
				t.Errorf("options = %v", pick.Options)
			}

			e.InputSelectPiece("p-1")
			dest, ok := s.Prompt.(*SelectAdjacentNodePrompt)
			if !ok {
				t.Fatalf("expected adjacent node prompt, got %T", s.Prompt)
			}
			if !slices.Equal(dest.Options, tt.expOpts) {
				t.Errorf("destinations = %v, expected %v", dest.Options, tt.expOpts)
			}

			e.InputSelectAdjacentNode(tt.to)
			testutil.AssertEqual(t, "moved", s.Pieces["p-1"].Location, AtNode(tt.to))
			testutil.AssertEqual(t, "done", s.Prompt == nil, true)
		})
	}
}

func TestEngine_Destroy(t *testing.T) {
	s := newTestState()
	addPiece(s, "p-1", "jin", "foot", "a")
	addPiece(s, "p-2", "", "foot", "a")
	addPiece(s, "p-3", "song", "ship", "d")
	s.Pieces["p-4"] = &Piece{Faction: "jin", TypeID: "foot", Location: OffBoard()}
	e := newTestEngine(s)

	e.execVerb("p1", &Verb{Kind: VerbDestroy})

	pr := s.Prompt.(*SelectPiecePrompt)
	if !slices.Equal(pr.Options, []PieceID{"p-1", "p-3"}) {
		t.Errorf("options = %v", pr.Options)
	}

	e.InputSelectPiece("p-3")
	_, ok := s.Pieces["p-3"]
	testutil.AssertEqual(t, "destroyed", ok, false)
}

func TestEngine_DestroyNearby(t *testing.T) {
	tests := map[string]struct {
		atWar       bool
		late        bool
		factionless bool
		expOpts     []PieceID
	}{
		"enemy at war": {
			atWar:   true,
			expOpts: []PieceID{"p-2"},
		},
		"neutral is safe": {
			expOpts: nil,
		},
		"unknown faction is hostile": {
			late:    true,
			expOpts: []PieceID{"p-5"},
		},
		"factionless actor has no enemies": {
			factionless: true,
			expOpts:     nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState()
			controlYue(s)
			if tt.factionless {
				s.Player("p1").Faction = ""
			}
			if tt.atWar {
				s.Player("p1").Tucked = append(s.Player("p1").Tucked, testCard("decl", "war:song:jin"))
			}
			addPiece(s, "p-1", "song", "foot", "b")
			addPiece(s, "p-2", "jin", "foot", "a")
			addPiece(s, "p-3", "jin", "foot", "d")
			addPiece(s, "p-4", "liao", "foot", "c")
			s.RecomputeDiplomacy()
			if tt.late {
				addPiece(s, "p-5", "xia", "foot", "c")
			}
			e := newTestEngine(s)

			e.execVerb("p1", &Verb{Kind: VerbDestroyNearby})

			if tt.expOpts == nil {
				testutil.AssertEqual(t, "no prompt", s.Prompt == nil, true)
				testutil.AssertEqual(t, "log", lastLog(s), "No enemy is near Yue Fei.")
				return
			}
			pr := s.Prompt.(*SelectPiecePrompt)
			if !slices.Equal(pr.Options, tt.expOpts) {
				t.Errorf("options = %v, expected %v", pr.Options, tt.expOpts)
			}
		})
	}
}

func TestEngine_RetreatAtCharacter(t *testing.T) {
	tests := map[string]struct {
		setup   func(s *State)
		expFoot *Location
		expShip bool
		expYue  Location
	}{
		"to a safe neighbor": {
			setup: func(s *State) {
				addPiece(s, "p-9", "jin", "foot", "a")
			},
			expFoot: &Location{Kind: LocNode, Node: "c"},
			expYue:  AtNode("c"),
		},
		"to the capital": {
			setup: func(s *State) {
				addPiece(s, "p-8", "jin", "foot", "a")
				addPiece(s, "p-9", "jin", "foot", "c")
				s.Capitals = map[Faction]NodeID{"song": "d"}
			},
			expYue: AtNode("d"),
		},
		"anywhere safe": {
			setup: func(s *State) {
				addPiece(s, "p-8", "jin", "foot", "a")
				addPiece(s, "p-9", "jin", "foot", "c")
			},
			expYue: AtNode("d"),
		},
		"off the board": {
			setup: func(s *State) {
				addPiece(s, "p-7", "jin", "foot", "a")
				addPiece(s, "p-8", "jin", "foot", "c")
				addPiece(s, "p-9", "jin", "foot", "d")
				s.Capitals = map[Faction]NodeID{"song": "d"}
			},
			expYue: OffBoard(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState()
			controlYue(s)
			addPiece(s, "p-1", "song", "foot", "b")
			addPiece(s, "p-2", "song", "ship", "b")
			tt.setup(s)
			e := newTestEngine(s)

			e.execVerb("p1", &Verb{Kind: VerbRetreatAtCharacter, Faction: "song"})

			foot, ok := s.Pieces["p-1"]
			if tt.expFoot == nil {
				testutil.AssertEqual(t, "foot destroyed", ok, false)
			} else {
				testutil.AssertEqual(t, "foot", foot.Location, *tt.expFoot)
			}
			_, ok = s.Pieces["p-2"]
			testutil.AssertEqual(t, "ship survives", ok, tt.expShip)
			testutil.AssertEqual(t, "yue", s.Characters["yue"].Location, tt.expYue)

			for _, id := range s.PieceIDs() {
				p := s.Pieces[id]
				if p.Faction == "song" && p.Location.Kind == LocNode && !s.safeFor("song", p.Location.Node) {
					t.Errorf("piece %s retreated into %s", id, p.Location.Node)
				}
			}
		})
	}
}

func TestEngine_ConvertAtCharacter(t *testing.T) {
	s := newTestState()
	controlYue(s)
	addPiece(s, "p-1", "jin", "foot", "b")
	addPiece(s, "p-2", "jin", "foot", "b")
	addPiece(s, "p-3", "jin", "foot", "a")
	e := newTestEngine(s)

	e.execVerb("p1", &Verb{Kind: VerbConvertAtCharacter, Faction: "jin"})

	testutil.AssertEqual(t, "first", s.Pieces["p-1"].Faction, Faction("song"))
	testutil.AssertEqual(t, "second", s.Pieces["p-2"].Faction, Faction("jin"))
	testutil.AssertEqual(t, "elsewhere", s.Pieces["p-3"].Faction, Faction("jin"))
}

func TestEngine_RemoveAt(t *testing.T) {
	s := newTestState()
	addPiece(s, "p-1", "song", "foot", "b")
	addPiece(s, "p-2", "jin", "foot", "b")
	e := newTestEngine(s)

	e.execVerb("p1", &Verb{Kind: VerbRemoveAt, Node: "b", Faction: "jin"})

	_, ok := s.Pieces["p-2"]
	testutil.AssertEqual(t, "removed", ok, false)
	testutil.AssertEqual(t, "kept", len(s.Pieces), 1)

	e.execVerb("p1", &Verb{Kind: VerbRemoveAt, Node: "d"})
	testutil.AssertEqual(t, "nothing", lastLog(s), "Nothing to remove at Dengzhou.")
}
