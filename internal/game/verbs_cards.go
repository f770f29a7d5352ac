package game

import (
	"fmt"
	"slices"
	"strings"
)

// drawCards takes up to n cards off the draw pile, reshuffling the discard
// pile into it whenever it runs dry.
func (e *Engine) drawCards(n int) []Card {
	s := e.state
	var drawn []Card
	for range n {
		if len(s.DrawPile) == 0 {
			if len(s.Discard) == 0 {
				break
			}
			s.DrawPile = Shuffle(s.Discard, e.rng)
			s.Discard = nil
			e.logf("The discard pile is reshuffled into the draw pile.")
		}
		var top []Card
		top, s.DrawPile = Draw(s.DrawPile, 1)
		drawn = append(drawn, top...)
	}
	return drawn
}

func (e *Engine) verbDraw(playerID string, v *Verb) {
	target := e.targetPlayer(playerID, v)
	if target == nil {
		e.logf("No one to draw for.")
		return
	}
	drawn := e.drawCards(v.count())
	target.Hand = append(target.Hand, drawn...)
	e.logf("%s draws %d card(s).", target.Name, len(drawn))
}

func (e *Engine) verbDrawUpTo(playerID string, v *Verb) {
	target := e.targetPlayer(playerID, v)
	if target == nil {
		e.logf("No one to draw for.")
		return
	}
	need := v.Count - len(target.Hand)
	if need <= 0 {
		e.logf("%s already holds %d card(s).", target.Name, len(target.Hand))
		return
	}
	drawn := e.drawCards(need)
	target.Hand = append(target.Hand, drawn...)
	e.logf("%s draws up to %d, taking %d card(s).", target.Name, v.Count, len(drawn))
}

func (e *Engine) verbTuck(playerID string, v *Verb) {
	s := e.state
	if s.InFlight == nil {
		e.logf("There is no card in play to tuck.")
		return
	}
	target := e.targetPlayer(playerID, v)
	if target == nil {
		e.logf("No one to tuck %s for.", s.InFlight.Name)
		return
	}
	if holder := s.findTucked(s.InFlight.UID); holder != nil {
		e.logf("%s is already tucked by %s.", s.InFlight.Name, holder.Name)
		return
	}
	target.Tucked = append(target.Tucked, s.InFlight.clone())
	s.RecomputeDiplomacy()
	e.logf("%s tucks %s.", target.Name, s.InFlight.Name)
}

func (e *Engine) verbGainCoin(playerID string, v *Verb) {
	target := e.targetPlayer(playerID, v)
	if target == nil {
		e.logf("No one to pay.")
		return
	}
	target.Coins += v.Amount
	e.logf("%s gains %d coin(s).", target.Name, v.Amount)
}

func (e *Engine) verbRetrieveFromDiscard(playerID string, v *Verb) {
	s := e.state

	if v.Player == "" && v.Target == TargetOpponent {
		opps := s.Opponents(playerID)
		if len(opps) > 1 {
			choices := make([]Effect, len(opps))
			for i, o := range opps {
				pick := *v
				pick.Target = ""
				pick.Player = o.ID
				choices[i] = Do(pick)
				choices[i].Label = fmt.Sprintf("retrieve %q for %s", v.Match, o.Name)
			}
			e.publish(&ChoosePrompt{
				PlayerID: playerID,
				Message:  "Choose an opponent",
				Choices:  choices,
			})
			return
		}
	}

	target := e.targetPlayer(playerID, v)
	if target == nil {
		e.logf("No one to retrieve %q for.", v.Match)
		return
	}

	needle := strings.ToLower(v.Match)
	idx := slices.IndexFunc(s.Discard, func(c Card) bool {
		return strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.ID), needle)
	})
	if idx < 0 {
		e.logf("No card matching %q in the discard pile.", v.Match)
		return
	}

	card := s.Discard[idx]
	s.Discard = slices.Delete(slices.Clone(s.Discard), idx, idx+1)
	target.Tucked = append(target.Tucked, card)
	s.RecomputeDiplomacy()
	e.logf("%s retrieves %s from the discard pile and tucks it.", target.Name, card.Name)
}

func (e *Engine) verbTrashTuckedCard(playerID string, v *Verb) {
	s := e.state
	owners := []*Player{s.Player(playerID)}
	for _, p := range s.Players {
		if p.ID != playerID {
			owners = append(owners, p)
		}
	}
	for _, p := range owners {
		idx := slices.IndexFunc(p.Tucked, func(c Card) bool { return c.Matches(v.Card) })
		if idx < 0 {
			continue
		}
		card := p.Tucked[idx]
		p.Tucked = slices.Delete(p.Tucked, idx, idx+1)
		s.Discard = PushBottom(s.Discard, card)
		s.RecomputeDiplomacy()
		e.logf("%s's tucked %s is trashed.", p.Name, card.Name)
		return
	}
	e.logf("No tucked card %q to trash.", v.Card)
}

func (e *Engine) verbAddCardToHand(playerID string, v *Verb) {
	target := e.targetPlayer(playerID, v)
	if target == nil {
		e.logf("No one to give %q to.", v.Card)
		return
	}
	var def *CardDef
	if e.catalog != nil {
		def = e.catalog.Card(v.Card)
	}
	if def == nil {
		e.logf("Card %q is not in the catalog.", v.Card)
		return
	}
	target.Hand = append(target.Hand, NewCard(v.Card, def))
	e.logf("%s adds %s to their hand.", target.Name, def.Name)
}

func (e *Engine) verbEndGame(playerID string, v *Verb) {
	s := e.state
	s.Ended = true
	if v.Winner == TargetSelf {
		s.Winner = playerID
		e.logf("The game ends. %s wins!", e.playerName(playerID))
		return
	}
	e.logf("The game ends.")
}
