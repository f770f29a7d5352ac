package game

import "math/rand/v2"

// Deck helpers treat index 0 as the top of the pile. None of them modify
// their input slices.

// Shuffle returns a shuffled copy of cards.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Draw splits the top n cards off pile. It returns fewer if the pile is short.
func Draw(pile []Card, n int) (drawn, rest []Card) {
	if n < 0 {
		n = 0
	}
	if n > len(pile) {
		n = len(pile)
	}
	drawn = make([]Card, n)
	copy(drawn, pile[:n])
	rest = make([]Card, len(pile)-n)
	copy(rest, pile[n:])
	return drawn, rest
}

// PushTop returns pile with cards placed on top, in order.
func PushTop(pile []Card, cards ...Card) []Card {
	out := make([]Card, 0, len(pile)+len(cards))
	out = append(out, cards...)
	return append(out, pile...)
}

// PushBottom returns pile with cards placed underneath, in order.
func PushBottom(pile []Card, cards ...Card) []Card {
	out := make([]Card, 0, len(pile)+len(cards))
	out = append(out, pile...)
	return append(out, cards...)
}

// Merge stacks piles on top of each other, first pile on top.
func Merge(piles ...[]Card) []Card {
	var n int
	for _, p := range piles {
		n += len(p)
	}
	out := make([]Card, 0, n)
	for _, p := range piles {
		out = append(out, p...)
	}
	return out
}
