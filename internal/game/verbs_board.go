package game

import (
	"fmt"
	"slices"
)

func (e *Engine) verbRecruit(playerID string, v *Verb) {
	s := e.state
	faction := v.Faction
	if faction == "" {
		faction = s.ActingFaction(playerID)
	}
	if faction == "" {
		e.logf("%s has no faction to recruit for.", e.playerName(playerID))
		return
	}

	var nodes []NodeID
	switch v.Where {
	case WhereAny:
		nodes = s.Board.NodeIDs()
	case WhereControlled:
		by := v.ControlledBy
		if by == "" {
			by = faction
		}
		nodes = s.ControlledBy(by)
	default:
		for _, n := range v.Nodes {
			if s.Board.HasNode(n) && !slices.Contains(nodes, n) {
				nodes = append(nodes, n)
			}
		}
	}
	nodes = slices.DeleteFunc(nodes, func(n NodeID) bool {
		return slices.Contains(v.Exclude, n)
	})
	if len(nodes) == 0 {
		e.logf("There is nowhere to recruit %s.", v.PieceType)
		return
	}

	e.publish(&SelectNodePrompt{
		PlayerID:  playerID,
		Purpose:   NodeRecruit,
		Options:   nodes,
		Message:   recruitMessage(faction, v.PieceType, v.count()),
		Faction:   faction,
		PieceType: v.PieceType,
		Remaining: v.count(),
		Unique:    v.Unique,
	})
}

func recruitMessage(f Faction, pieceType string, remaining int) string {
	return fmt.Sprintf("Place a %s %s (%d left)", f, pieceType, remaining)
}

func (e *Engine) verbPlaceCharacter(playerID string, v *Verb) {
	s := e.state
	chID := v.Character
	if chID == "" {
		chID = s.ControlledCharacterID(playerID)
	}
	ch, ok := s.Characters[chID]
	if !ok {
		e.logf("%s controls no character to place.", e.playerName(playerID))
		return
	}

	var nodes []NodeID
	switch v.Where {
	case WhereAdjacent:
		if ch.Location.Kind == LocNode {
			nodes = append([]NodeID{ch.Location.Node}, s.Board.Neighbors(ch.Location.Node, MoveAny)...)
		} else {
			nodes = s.Board.NodeIDs()
		}
	case WhereAny:
		nodes = s.Board.NodeIDs()
	default:
		for _, n := range v.Nodes {
			if s.Board.HasNode(n) {
				nodes = append(nodes, n)
			}
		}
	}
	if len(nodes) == 0 {
		e.logf("There is nowhere to place %s.", ch.Name)
		return
	}

	e.publish(&SelectNodePrompt{
		PlayerID:    playerID,
		Purpose:     NodePlaceCharacter,
		Options:     nodes,
		Message:     fmt.Sprintf("Place %s", ch.Name),
		CharacterID: chID,
	})
}

func (e *Engine) verbMove(playerID string, v *Verb) {
	s := e.state
	faction := v.Faction
	if faction == "" {
		faction = s.ActingFaction(playerID)
	}
	var options []PieceID
	for _, id := range s.PieceIDs() {
		p := s.Pieces[id]
		if p.Faction == "" || p.Faction != faction || p.Location.Kind != LocNode || !v.allowsType(p.TypeID) {
			continue
		}
		if len(s.Board.Neighbors(p.Location.Node, s.MoveModeOf(p))) == 0 {
			continue
		}
		options = append(options, id)
	}
	if len(options) == 0 {
		e.logf("%s has no piece that can move.", faction)
		return
	}
	e.publish(&SelectPiecePrompt{
		PlayerID: playerID,
		Purpose:  PieceMove,
		Options:  options,
		Message:  "Choose a piece to move",
	})
}

func (e *Engine) verbDestroy(playerID string, v *Verb) {
	s := e.state
	var options []PieceID
	for _, id := range s.PieceIDs() {
		p := s.Pieces[id]
		if p.Faction == "" || p.Location.Kind == LocOff || !v.allowsType(p.TypeID) {
			continue
		}
		options = append(options, id)
	}
	if len(options) == 0 {
		e.logf("There is nothing to destroy.")
		return
	}
	e.publish(&SelectPiecePrompt{
		PlayerID: playerID,
		Purpose:  PieceDestroy,
		Options:  options,
		Message:  "Choose a piece to destroy",
	})
}

func (e *Engine) verbDestroyNearby(playerID string, v *Verb) {
	s := e.state
	ch := s.ControlledCharacter(playerID)
	if ch == nil || ch.Location.Kind != LocNode {
		e.logf("%s has no character on the board.", e.playerName(playerID))
		return
	}
	acting := s.ActingFaction(playerID)
	area := append([]NodeID{ch.Location.Node}, s.Board.Neighbors(ch.Location.Node, MoveAny)...)

	var options []PieceID
	for _, id := range s.PieceIDs() {
		p := s.Pieces[id]
		if p.Location.Kind != LocNode || !slices.Contains(area, p.Location.Node) {
			continue
		}
		if !v.allowsType(p.TypeID) || !s.IsEnemy(acting, p.Faction) {
			continue
		}
		options = append(options, id)
	}
	if len(options) == 0 {
		e.logf("No enemy is near %s.", ch.Name)
		return
	}
	e.publish(&SelectPiecePrompt{
		PlayerID: playerID,
		Purpose:  PieceDestroy,
		Options:  options,
		Message:  fmt.Sprintf("Choose an enemy near %s to destroy", ch.Name),
	})
}

// safeFor reports whether n holds no piece of a faction other than f.
func (s *State) safeFor(f Faction, n NodeID) bool {
	for _, p := range s.PiecesAt(n) {
		if p.Faction != "" && p.Faction != f {
			return false
		}
	}
	return true
}

func (e *Engine) characterNode(playerID string, v *Verb) (*Character, bool) {
	s := e.state
	var ch *Character
	if v.Character != "" {
		ch = s.Characters[v.Character]
	} else {
		ch = s.ControlledCharacter(playerID)
	}
	if ch == nil || ch.Location.Kind != LocNode {
		e.logf("%s has no character on the board.", e.playerName(playerID))
		return nil, false
	}
	return ch, true
}

func (e *Engine) verbRetreatAtCharacter(playerID string, v *Verb) {
	s := e.state
	ch, ok := e.characterNode(playerID, v)
	if !ok {
		return
	}
	at := ch.Location.Node
	f := v.Faction

	for _, id := range s.PieceIDsAt(at) {
		p := s.Pieces[id]
		if p.Faction != f {
			continue
		}
		dest, found := NodeID(""), false
		for _, nb := range s.Board.Neighbors(at, s.MoveModeOf(p)) {
			if s.safeFor(f, nb) {
				dest, found = nb, true
				break
			}
		}
		if !found {
			delete(s.Pieces, id)
			e.logf("A %s %s has nowhere to retreat and is destroyed.", f, p.TypeID)
			continue
		}
		p.Location = AtNode(dest)
		e.logf("A %s %s retreats from %s to %s.", f, p.TypeID, s.Board.Label(at), s.Board.Label(dest))
	}

	for _, id := range s.CharacterIDs() {
		c := s.Characters[id]
		if !c.Location.IsAt(at) {
			continue
		}
		if cf, ok := s.CharacterFaction(id); !ok || cf != f {
			continue
		}
		c.Location = e.retreatCharacterTo(f, at)
		if c.Location.Kind == LocOff {
			e.logf("%s has nowhere to retreat and leaves the board.", c.Name)
		} else {
			e.logf("%s retreats to %s.", c.Name, s.Board.Label(c.Location.Node))
		}
	}
}

// retreatCharacterTo picks a safe landing for a character: a land
// neighbor, then the faction capital, then anywhere, then off the board.
func (e *Engine) retreatCharacterTo(f Faction, from NodeID) Location {
	s := e.state
	for _, nb := range s.Board.Neighbors(from, MoveLand) {
		if s.safeFor(f, nb) {
			return AtNode(nb)
		}
	}
	if capital, ok := s.Capitals[f]; ok && s.Board.HasNode(capital) && s.safeFor(f, capital) {
		return AtNode(capital)
	}
	for _, n := range s.Board.NodeIDs() {
		if n != from && s.safeFor(f, n) {
			return AtNode(n)
		}
	}
	return OffBoard()
}

func (e *Engine) verbConvertAtCharacter(playerID string, v *Verb) {
	s := e.state
	ch, ok := e.characterNode(playerID, v)
	if !ok {
		return
	}
	to := v.To
	if to == "" {
		to = s.ActingFaction(playerID)
	}
	if to == "" || to == v.Faction {
		e.logf("No faction to convert %s pieces to.", v.Faction)
		return
	}

	limit := v.count()
	converted := 0
	for _, p := range s.PiecesAt(ch.Location.Node) {
		if converted >= limit {
			break
		}
		if p.Faction != v.Faction || !v.allowsType(p.TypeID) {
			continue
		}
		p.Faction = to
		converted++
	}
	e.logf("%d %s piece(s) at %s join %s.", converted, v.Faction, s.Board.Label(ch.Location.Node), to)
}

func (e *Engine) verbRemoveAt(playerID string, v *Verb) {
	s := e.state
	for _, id := range s.PieceIDsAt(v.Node) {
		p := s.Pieces[id]
		if p.Faction == "" || !v.allowsType(p.TypeID) {
			continue
		}
		if v.Faction != "" && p.Faction != v.Faction {
			continue
		}
		delete(s.Pieces, id)
		e.logf("A %s %s is removed from %s.", p.Faction, p.TypeID, s.Board.Label(v.Node))
		return
	}
	e.logf("Nothing to remove at %s.", s.Board.Label(v.Node))
}
