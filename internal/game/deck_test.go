package game

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestDraw(t *testing.T) {
	tests := map[string]struct {
		pile     []Card
		n        int
		expDrawn []string
		expRest  []string
	}{
		"takes from the top": {
			pile:     []Card{testCard("x"), testCard("y"), testCard("z")},
			n:        2,
			expDrawn: []string{"x", "y"},
			expRest:  []string{"z"},
		},
		"short pile": {
			pile:     []Card{testCard("x")},
			n:        3,
			expDrawn: []string{"x"},
			expRest:  []string{},
		},
		"negative count": {
			pile:     []Card{testCard("x")},
			n:        -1,
			expDrawn: []string{},
			expRest:  []string{"x"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			drawn, rest := Draw(tt.pile, tt.n)
			if !slices.Equal(ids(drawn), tt.expDrawn) {
				t.Errorf("drawn = %v, expected %v", ids(drawn), tt.expDrawn)
			}
			if !slices.Equal(ids(rest), tt.expRest) {
				t.Errorf("rest = %v, expected %v", ids(rest), tt.expRest)
			}
		})
	}
}

func TestPushAndMerge(t *testing.T) {
	pile := []Card{testCard("m")}

	top := PushTop(pile, testCard("t1"), testCard("t2"))
	testutil.AssertEqual(t, "top", slices.Equal(ids(top), []string{"t1", "t2", "m"}), true)

	bottom := PushBottom(pile, testCard("b"))
	testutil.AssertEqual(t, "bottom", slices.Equal(ids(bottom), []string{"m", "b"}), true)

	merged := Merge(top, bottom)
	testutil.AssertEqual(t, "merged", slices.Equal(ids(merged), []string{"t1", "t2", "m", "m", "b"}), true)

	testutil.AssertEqual(t, "input untouched", len(pile), 1)
}

func TestShuffle(t *testing.T) {
	pile := []Card{testCard("a"), testCard("b"), testCard("c"), testCard("d"), testCard("e")}
	rng := rand.New(rand.NewPCG(7, 7))

	out := Shuffle(pile, rng)

	got := ids(out)
	slices.Sort(got)
	testutil.AssertEqual(t, "same cards", slices.Equal(got, []string{"a", "b", "c", "d", "e"}), true)
	testutil.AssertEqual(t, "input untouched", slices.Equal(ids(pile), []string{"a", "b", "c", "d", "e"}), true)
}
