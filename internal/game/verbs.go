package game

// execVerb dispatches one verb for playerID.
func (e *Engine) execVerb(playerID string, v *Verb) Outcome {
	if e.state.Player(playerID) == nil {
		e.logf("No player %q to resolve %s.", playerID, v.Kind)
		return e.outcome()
	}

	switch v.Kind {
	case VerbDraw:
		e.verbDraw(playerID, v)
	case VerbDrawUpTo:
		e.verbDrawUpTo(playerID, v)
	case VerbTuck:
		e.verbTuck(playerID, v)
	case VerbGainCoin:
		e.verbGainCoin(playerID, v)
	case VerbRetrieveFromDiscard:
		e.verbRetrieveFromDiscard(playerID, v)
	case VerbTrashTuckedCard:
		e.verbTrashTuckedCard(playerID, v)
	case VerbAddCardToHand:
		e.verbAddCardToHand(playerID, v)
	case VerbEndGame:
		e.verbEndGame(playerID, v)
	case VerbRecruit:
		e.verbRecruit(playerID, v)
	case VerbPlaceCharacter:
		e.verbPlaceCharacter(playerID, v)
	case VerbMove:
		e.verbMove(playerID, v)
	case VerbDestroy:
		e.verbDestroy(playerID, v)
	case VerbDestroyNearby:
		e.verbDestroyNearby(playerID, v)
	case VerbRetreatAtCharacter:
		e.verbRetreatAtCharacter(playerID, v)
	case VerbConvertAtCharacter:
		e.verbConvertAtCharacter(playerID, v)
	case VerbRemoveAt:
		e.verbRemoveAt(playerID, v)
	case VerbRaid, VerbAssault:
		// Combat resolution is not defined for these yet.
		e.logf("%s is not implemented; skipped.", v.Kind)
	default:
		e.logf("Unknown verb %q skipped.", v.Kind)
	}

	return e.outcome()
}

// targetPlayer resolves who a verb acts on.
func (e *Engine) targetPlayer(playerID string, v *Verb) *Player {
	if v.Player != "" {
		return e.state.Player(v.Player)
	}
	if v.Target == TargetOpponent {
		if opps := e.state.Opponents(playerID); len(opps) > 0 {
			return opps[0]
		}
		return nil
	}
	return e.state.Player(playerID)
}
