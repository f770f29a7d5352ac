package game

import (
	"log/slog"
	"slices"
)

// StartTurn clears any leftover resolution, settles the turn owner, resets
// the turn gates and retains a deep copy of the state for undo.
func (e *Engine) StartTurn() {
	s := e.state
	s.Prompt = nil
	s.Pending = nil
	s.InFlight = nil

	if s.CurrentPlayerID == "" {
		if order := s.seatOrder(); len(order) > 0 {
			s.CurrentPlayerID = order[0]
		}
	}

	s.ViewPlayerID = s.CurrentPlayerID
	s.HasPlayedThisTurn = false
	s.HasActedThisTurn = false

	e.snapshot = s.Clone()
}

// EndTurn passes the turn to the next seat and starts it. It refuses while
// a prompt is outstanding.
func (e *Engine) EndTurn() {
	s := e.state
	if s.Prompt != nil {
		e.logf("Finish resolving %s before ending the turn.", e.inFlightName())
		return
	}

	order := s.seatOrder()
	if len(order) == 0 {
		return
	}
	prev := s.CurrentPlayerID
	idx := slices.Index(order, prev)
	s.CurrentPlayerID = order[(idx+1)%len(order)]
	e.logf("%s ends their turn. It is now %s's turn.", e.playerName(prev), e.playerName(s.CurrentPlayerID))

	e.StartTurn()
}

// TurnStartSnapshot returns a fresh copy of the state as it was when the
// current turn started, or nil.
func (e *Engine) TurnStartSnapshot() *State {
	return e.snapshot.Clone()
}

// CanUndo reports whether there is anything to roll back this turn.
func (e *Engine) CanUndo() bool {
	s := e.state
	return e.snapshot != nil && (s.HasActedThisTurn || s.InFlight != nil || s.Prompt != nil)
}

// Undo rolls the whole turn back to its start.
func (e *Engine) Undo() bool {
	snap := e.TurnStartSnapshot()
	if snap == nil {
		return false
	}
	s := e.state
	s.restore(snap)
	s.Prompt = nil
	s.HasPlayedThisTurn = false
	s.HasActedThisTurn = false
	return true
}

func (e *Engine) inFlightName() string {
	if e.state.InFlight != nil {
		return e.state.InFlight.Name
	}
	return "the current card"
}

// PlayCard plays ref (an instance or definition id) from the current
// player's hand. The card leaves the hand before any effect runs.
func (e *Engine) PlayCard(ref string) {
	s := e.state
	if s.Ended {
		e.logf("The game is over.")
		return
	}
	if s.HasPlayedThisTurn {
		e.logf("A card has already been played this turn.")
		return
	}
	if s.Prompt != nil || s.InFlight != nil {
		e.logf("Finish resolving %s first.", e.inFlightName())
		return
	}
	p := s.CurrentPlayer()
	if p == nil {
		e.logf("No one is taking a turn.")
		return
	}

	idx := slices.IndexFunc(p.Hand, func(c Card) bool { return c.UID == ref })
	if idx < 0 {
		idx = slices.IndexFunc(p.Hand, func(c Card) bool { return c.Matches(ref) })
	}
	if idx < 0 {
		e.logf("%s has no card %q in hand.", p.Name, ref)
		return
	}
	card := p.Hand[idx]

	if card.Condition != nil && !s.Evaluate(card.Condition, p.ID, card.UID) {
		e.logf("%s cannot play %s: requires %s.", p.Name, card.Name, DescribeCondition(card.Condition))
		return
	}

	p.Hand = slices.Delete(p.Hand, idx, idx+1)
	s.InFlight = &card
	e.logf("%s plays %s.", p.Name, card.Name)

	switch {
	case card.Effect != nil:
		e.run(p.ID, card.Effect)
	default:
		e.splice = 0
		for i := range card.Verbs {
			if e.execVerb(p.ID, &card.Verbs[i]) == Suspended {
				rest := make([]Effect, 0, len(card.Verbs)-i-1)
				for _, v := range card.Verbs[i+1:] {
					rest = append(rest, Do(v))
				}
				e.suspend(p.ID, rest)
				break
			}
		}
	}

	if s.Prompt != nil {
		e.suspend(p.ID, nil)
		slog.Debug("card awaiting input", "card", card.ID, "player", p.ID)
		return
	}
	e.drain()
}
