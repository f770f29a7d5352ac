package table

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/pixil98/go-tianxia/internal/game"
)

type fakeBroker struct {
	mu   sync.Mutex
	sent map[string][]string
	subs map[string][]func([]byte)
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{sent: map[string][]string{}, subs: map[string][]func([]byte){}}
}

func (b *fakeBroker) Publish(seats []string, exclude []string, data []byte) error {
	b.mu.Lock()
	var handlers []func([]byte)
	for _, seat := range seats {
		if slices.Contains(exclude, seat) {
			continue
		}
		b.sent[seat] = append(b.sent[seat], string(data))
		handlers = append(handlers, b.subs[seat]...)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (b *fakeBroker) Subscribe(seat string, handler func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[seat] = append(b.subs[seat], handler)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, seat)
	}, nil
}

func (b *fakeBroker) last(seat string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.sent[seat]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func (b *fakeBroker) all(seat string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.sent[seat], "\n")
}

func gainCard(uid string) game.Card {
	eff := game.Do(game.Verb{Kind: game.VerbGainCoin, Amount: 2})
	return game.Card{UID: uid, ID: "tiger-seal", Name: "Tiger Seal", Effect: &eff}
}

func recruitCard(uid string) game.Card {
	eff := game.Do(game.Verb{Kind: game.VerbRecruit, PieceType: "foot", Count: 1, Where: game.WhereList,
		Nodes: []game.NodeID{"kaifeng", "yancheng"}})
	return game.Card{UID: uid, ID: "levy", Name: "Levy", Effect: &eff}
}

func chooseCard(uid string) game.Card {
	eff := game.Any(
		game.Do(game.Verb{Kind: game.VerbGainCoin, Amount: 1}),
		game.Do(game.Verb{Kind: game.VerbGainCoin, Amount: 3}),
	)
	return game.Card{UID: uid, ID: "tribute", Name: "Tribute", Effect: &eff}
}

func newTestState() *game.State {
	return &game.State{
		Board: &game.Board{
			Nodes: map[game.NodeID]*game.Node{
				"kaifeng":  {Label: "Kaifeng"},
				"yancheng": {Label: "Yancheng"},
			},
			Edges: map[game.EdgeID]*game.Edge{
				"k-y": {A: "kaifeng", B: "yancheng", Kinds: []game.EdgeKind{game.EdgeRoad}},
			},
		},
		PieceTypes: map[string]*game.PieceType{"foot": {Shape: "square", Width: 1}},
		Pieces:     map[game.PieceID]*game.Piece{},
		Characters: map[string]*game.Character{},
		Players: []*game.Player{
			{ID: "p1", Name: "Alice", Faction: "song",
				Hand: []game.Card{gainCard("c-1"), recruitCard("c-2"), chooseCard("c-3")}},
			{ID: "p2", Name: "Bob", Faction: "jin", Hand: []game.Card{gainCard("c-4")}},
		},
		Seating: game.Seating{Order: []string{"p1", "p2"}},
	}
}

// newTestTable seats both players.
func newTestTable(t *testing.T) (*Table, *fakeBroker) {
	t.Helper()
	b := newFakeBroker()
	tbl := New(newTestState(), game.MapCatalog{}, b)
	for _, seat := range []string{"p1", "p2"} {
		if err := tbl.Sit(t.Context(), seat); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return tbl, b
}
