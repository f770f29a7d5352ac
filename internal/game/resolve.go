package game

import "slices"

// run executes eff as a fresh top-level step.
func (e *Engine) run(playerID string, eff *Effect) Outcome {
	e.splice = 0
	return e.exec(playerID, eff)
}

// exec walks eff for playerID. It stops at the first prompt, queueing the
// untried siblings of every enclosing all-node as the pending continuation.
func (e *Engine) exec(playerID string, eff *Effect) Outcome {
	if eff == nil {
		return e.outcome()
	}

	switch eff.Kind {
	case EffectVerb:
		if eff.Verb == nil {
			e.logf("Effect has no verb; skipped.")
			break
		}
		e.execVerb(playerID, eff.Verb)

	case EffectAll:
		for i := range eff.Effects {
			if e.exec(playerID, &eff.Effects[i]) == Suspended {
				e.suspend(playerID, eff.Effects[i+1:])
				return Suspended
			}
		}

	case EffectAny:
		if len(eff.Effects) == 0 {
			break
		}
		e.publish(&ChoosePrompt{
			PlayerID: playerID,
			Message:  "Choose one",
			Choices:  slices.Clone(eff.Effects),
		})

	case EffectIf:
		if e.state.Evaluate(eff.If, playerID, e.cardUID()) {
			return e.exec(playerID, eff.Then)
		}
		if eff.Else != nil {
			return e.exec(playerID, eff.Else)
		}

	default:
		e.logf("Unknown effect %q skipped.", eff.Kind)
	}

	return e.outcome()
}

func (e *Engine) outcome() Outcome {
	if e.state.Prompt != nil {
		return Suspended
	}
	return Completed
}

// suspend queues rest ahead of whatever was already pending but behind the
// remainders queued by deeper nodes during the same run.
func (e *Engine) suspend(playerID string, rest []Effect) {
	s := e.state
	if s.Pending == nil {
		s.Pending = &Pending{PlayerID: playerID}
		if s.InFlight != nil {
			s.Pending.Card = s.InFlight.clone()
		}
	}
	if len(rest) == 0 {
		return
	}
	at := min(e.splice, len(s.Pending.Queue))
	s.Pending.Queue = slices.Insert(slices.Clone(s.Pending.Queue), at, rest...)
	e.splice = at + len(rest)
}

// drain runs queued effects until one opens a prompt or the queue empties,
// in which case the card is finalized.
func (e *Engine) drain() {
	s := e.state
	for {
		if s.Prompt != nil {
			return
		}
		if s.Pending == nil || len(s.Pending.Queue) == 0 {
			e.finish()
			return
		}
		next := s.Pending.Queue[0]
		s.Pending.Queue = s.Pending.Queue[1:]
		e.run(s.Pending.PlayerID, &next)
	}
}

func (e *Engine) actingPlayerID() string {
	if e.state.Pending != nil {
		return e.state.Pending.PlayerID
	}
	return e.state.CurrentPlayerID
}

func (e *Engine) cardUID() string {
	if e.state.InFlight != nil {
		return e.state.InFlight.UID
	}
	if e.state.Pending != nil {
		return e.state.Pending.Card.UID
	}
	return ""
}

// finish finalizes the in-flight card: kept cards return to hand, cards
// that tucked themselves stay tucked and the rest go under the discard.
func (e *Engine) finish() {
	s := e.state
	playerID := e.actingPlayerID()
	var card *Card
	switch {
	case s.InFlight != nil:
		card = s.InFlight
	case s.Pending != nil:
		card = &s.Pending.Card
	}
	s.Pending = nil
	if card == nil || card.UID == "" {
		s.InFlight = nil
		return
	}

	holder := s.findTucked(card.UID)
	switch {
	case card.KeepOnPlay:
		// A kept card that tucked itself leaves the tucked pile on its way
		// back to hand.
		if holder != nil {
			holder.Tucked = slices.DeleteFunc(holder.Tucked, func(c Card) bool { return c.UID == card.UID })
			s.RecomputeDiplomacy()
		}
		if p := s.Player(playerID); p != nil {
			p.Hand = append(p.Hand, *card)
		} else {
			s.Discard = PushBottom(s.Discard, *card)
		}
	case holder != nil:
	default:
		s.Discard = PushBottom(s.Discard, *card)
	}

	s.InFlight = nil
	s.HasPlayedThisTurn = true
	s.HasActedThisTurn = true
}
