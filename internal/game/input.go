package game

import (
	"fmt"
	"log/slog"
	"slices"
)

// Each resume entry point is a no-op unless the live prompt is of its kind
// and the answer is one of the offered options.

// InputSelectPiece answers a selectPiece prompt.
func (e *Engine) InputSelectPiece(id PieceID) {
	s := e.state
	pr, ok := s.Prompt.(*SelectPiecePrompt)
	if !ok || !slices.Contains(pr.Options, id) {
		return
	}
	piece, ok := s.Pieces[id]
	if !ok {
		return
	}
	s.Prompt = nil

	switch pr.Purpose {
	case PieceDestroy:
		delete(s.Pieces, id)
		e.logf("%s destroys a %s %s.", e.playerName(pr.PlayerID), piece.Faction, piece.TypeID)

	case PieceMove:
		from := piece.Location.Node
		options := s.Board.Neighbors(from, s.MoveModeOf(piece))
		if len(options) == 0 {
			e.logf("The %s %s cannot move from %s.", piece.Faction, piece.TypeID, s.Board.Label(from))
			break
		}
		e.publish(&SelectAdjacentNodePrompt{
			PlayerID: pr.PlayerID,
			PieceID:  id,
			From:     from,
			Options:  options,
			Message:  fmt.Sprintf("Move the %s %s from %s to", piece.Faction, piece.TypeID, s.Board.Label(from)),
		})
		return
	}

	e.resume()
}

// InputSelectAdjacentNode answers a selectAdjacentNode prompt.
func (e *Engine) InputSelectAdjacentNode(n NodeID) {
	s := e.state
	pr, ok := s.Prompt.(*SelectAdjacentNodePrompt)
	if !ok || !slices.Contains(pr.Options, n) {
		return
	}
	s.Prompt = nil

	if piece, ok := s.Pieces[pr.PieceID]; ok {
		piece.Location = AtNode(n)
		e.logf("A %s %s moves from %s to %s.", piece.Faction, piece.TypeID, s.Board.Label(pr.From), s.Board.Label(n))
	}

	e.resume()
}

// InputSelectNode answers a selectNode prompt. A recruit with placements
// left re-opens the prompt instead of resuming.
func (e *Engine) InputSelectNode(n NodeID) {
	s := e.state
	pr, ok := s.Prompt.(*SelectNodePrompt)
	if !ok || !slices.Contains(pr.Options, n) {
		return
	}
	s.Prompt = nil

	switch pr.Purpose {
	case NodeRecruit:
		if s.Pieces == nil {
			s.Pieces = map[PieceID]*Piece{}
		}
		s.Pieces[NewPieceID()] = &Piece{Faction: pr.Faction, TypeID: pr.PieceType, Location: AtNode(n)}
		e.logf("A %s %s is recruited at %s.", pr.Faction, pr.PieceType, s.Board.Label(n))

		remaining := pr.Remaining - 1
		if remaining <= 0 {
			break
		}
		options := slices.Clone(pr.Options)
		if pr.Unique {
			options = slices.DeleteFunc(options, func(o NodeID) bool { return o == n })
		}
		if len(options) == 0 {
			e.logf("There is nowhere left to recruit.")
			break
		}
		next := pr.clonePrompt().(*SelectNodePrompt)
		next.Options = options
		next.Remaining = remaining
		next.Used = append(next.Used, n)
		next.Message = recruitMessage(pr.Faction, pr.PieceType, remaining)
		e.publish(next)
		return

	case NodePlaceCharacter:
		if ch, ok := s.Characters[pr.CharacterID]; ok {
			ch.Location = AtNode(n)
			e.logf("%s is placed at %s.", ch.Name, s.Board.Label(n))
		}
	}

	e.resume()
}

// InputChoose answers a choose prompt by running the picked effect. An
// out-of-range index just continues with whatever was pending.
func (e *Engine) InputChoose(index int) {
	s := e.state
	pr, ok := s.Prompt.(*ChoosePrompt)
	if !ok {
		return
	}
	s.Prompt = nil

	if index >= 0 && index < len(pr.Choices) {
		choice := pr.Choices[index]
		if e.run(pr.PlayerID, &choice) == Suspended {
			e.suspend(pr.PlayerID, nil)
			return
		}
	}

	e.resume()
}

func (e *Engine) resume() {
	slog.Debug("resolution resumed", "player", e.actingPlayerID())
	e.drain()
}
