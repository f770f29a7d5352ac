package game

import (
	"maps"
	"slices"
)

// Clone returns a structurally independent copy of s. The board and the
// effect trees inside cards are immutable and shared.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := &State{
		Board:             s.Board,
		Capitals:          maps.Clone(s.Capitals),
		DrawPile:          cloneCards(s.DrawPile),
		Discard:           cloneCards(s.Discard),
		Diplomacy:         s.Diplomacy.clone(),
		CurrentPlayerID:   s.CurrentPlayerID,
		ViewPlayerID:      s.ViewPlayerID,
		Seating:           Seating{Order: slices.Clone(s.Seating.Order)},
		HasPlayedThisTurn: s.HasPlayedThisTurn,
		HasActedThisTurn:  s.HasActedThisTurn,
		Ended:             s.Ended,
		Winner:            s.Winner,
		Log:               slices.Clone(s.Log),
	}

	if s.PieceTypes != nil {
		c.PieceTypes = make(map[string]*PieceType, len(s.PieceTypes))
		for id, pt := range s.PieceTypes {
			if pt == nil {
				c.PieceTypes[id] = nil
				continue
			}
			cp := *pt
			c.PieceTypes[id] = &cp
		}
	}
	if s.Pieces != nil {
		c.Pieces = make(map[PieceID]*Piece, len(s.Pieces))
		for id, p := range s.Pieces {
			cp := *p
			c.Pieces[id] = &cp
		}
	}
	if s.Characters != nil {
		c.Characters = make(map[string]*Character, len(s.Characters))
		for id, ch := range s.Characters {
			cp := *ch
			c.Characters[id] = &cp
		}
	}
	if s.Players != nil {
		c.Players = make([]*Player, len(s.Players))
		for i, p := range s.Players {
			cp := *p
			cp.Hand = cloneCards(p.Hand)
			cp.Tucked = cloneCards(p.Tucked)
			c.Players[i] = &cp
		}
	}
	if s.Prompt != nil {
		c.Prompt = s.Prompt.clonePrompt()
	}
	if s.Pending != nil {
		c.Pending = &Pending{
			PlayerID: s.Pending.PlayerID,
			Card:     s.Pending.Card.clone(),
			Queue:    slices.Clone(s.Pending.Queue),
		}
	}
	if s.InFlight != nil {
		card := s.InFlight.clone()
		c.InFlight = &card
	}
	return c
}

// restore replaces the contents of s with those of src.
func (s *State) restore(src *State) {
	*s = *src
}
