package game

import "strings"

// FactionIconPrefix marks tucked icons that grant a faction, e.g. "faction:song".
const FactionIconPrefix = "faction:"

// Slugify lower-cases s, collapses every run of characters outside [a-z0-9]
// into a single "-" and trims leading and trailing separators.
func Slugify(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}
	return b.String()
}

// ControlledCharacterID returns the id of the character playerID controls,
// found by matching tucked icons against slugified character names. The
// topmost tucked card wins.
func (s *State) ControlledCharacterID(playerID string) string {
	p := s.Player(playerID)
	if p == nil {
		return ""
	}
	ids := s.CharacterIDs()
	for i := len(p.Tucked) - 1; i >= 0; i-- {
		for _, icon := range p.Tucked[i].Icons {
			for _, id := range ids {
				if icon == Slugify(s.Characters[id].Name) {
					return id
				}
			}
		}
	}
	return ""
}

// ControlledCharacter returns the character playerID controls, or nil.
func (s *State) ControlledCharacter(playerID string) *Character {
	if id := s.ControlledCharacterID(playerID); id != "" {
		return s.Characters[id]
	}
	return nil
}

// CharacterFaction derives a character's faction at read time from the
// topmost faction icon tucked by its controlling player. It falls back to
// the player's faction and then to the character's own.
func (s *State) CharacterFaction(characterID string) (Faction, bool) {
	ch, ok := s.Characters[characterID]
	if !ok {
		return "", false
	}
	if p := s.Player(ch.PlayerID); p != nil {
		known := s.Factions()
		for i := len(p.Tucked) - 1; i >= 0; i-- {
			for _, icon := range p.Tucked[i].Icons {
				if f, ok := strings.CutPrefix(icon, FactionIconPrefix); ok && f != "" {
					return Faction(f), true
				}
				for _, f := range known {
					if icon == string(f) {
						return f, true
					}
				}
			}
		}
		if p.Faction != "" {
			return p.Faction, true
		}
	}
	if ch.Faction != "" {
		return ch.Faction, true
	}
	return "", false
}

// ActingFaction is the faction playerID acts for: its controlled
// character's faction when it has one, else the player's own.
func (s *State) ActingFaction(playerID string) Faction {
	if id := s.ControlledCharacterID(playerID); id != "" {
		if f, ok := s.CharacterFaction(id); ok {
			return f
		}
	}
	if p := s.Player(playerID); p != nil {
		return p.Faction
	}
	return ""
}
