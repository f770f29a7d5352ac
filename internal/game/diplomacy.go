package game

import (
	"slices"
	"strings"
)

// Posture is the relation between two factions.
type Posture string

const (
	Neutral Posture = "neutral"
	Allied  Posture = "allied"
	Enemy   Posture = "enemy"
)

// Diplomacy maps faction to faction to posture. It is kept symmetric.
type Diplomacy map[Faction]map[Faction]Posture

// Get returns the posture between a and b and whether an entry exists.
func (d Diplomacy) Get(a, b Faction) (Posture, bool) {
	row, ok := d[a]
	if !ok {
		return "", false
	}
	p, ok := row[b]
	return p, ok
}

// Set records p for both a→b and b→a.
func (d Diplomacy) Set(a, b Faction, p Posture) {
	if a == b {
		return
	}
	if d[a] == nil {
		d[a] = map[Faction]Posture{}
	}
	if d[b] == nil {
		d[b] = map[Faction]Posture{}
	}
	d[a][b] = p
	d[b][a] = p
}

func (d Diplomacy) clone() Diplomacy {
	if d == nil {
		return nil
	}
	out := make(Diplomacy, len(d))
	for a, row := range d {
		r := make(map[Faction]Posture, len(row))
		for b, p := range row {
			r[b] = p
		}
		out[a] = r
	}
	return out
}

// ParseWarIcon reads "war:<a>:<b>" or "war-<a>-<b>".
func ParseWarIcon(icon string) (Faction, Faction, bool) {
	var rest string
	var sep string
	switch {
	case strings.HasPrefix(icon, "war:"):
		rest, sep = icon[len("war:"):], ":"
	case strings.HasPrefix(icon, "war-"):
		rest, sep = icon[len("war-"):], "-"
	default:
		return "", "", false
	}
	a, b, ok := strings.Cut(rest, sep)
	if !ok || a == "" || b == "" || a == b || strings.Contains(b, sep) {
		return "", "", false
	}
	return Faction(a), Faction(b), true
}

// RecomputeDiplomacy rebuilds s.Diplomacy from scratch: every known faction
// pair starts neutral and every tucked war icon marks its pair as enemies.
func (s *State) RecomputeDiplomacy() {
	type war struct{ a, b Faction }
	var wars []war
	factions := s.Factions()
	for _, p := range s.Players {
		for _, c := range p.Tucked {
			for _, icon := range c.Icons {
				a, b, ok := ParseWarIcon(icon)
				if !ok {
					continue
				}
				wars = append(wars, war{a, b})
				for _, f := range []Faction{a, b} {
					if !slices.Contains(factions, f) {
						factions = append(factions, f)
					}
				}
			}
		}
	}

	d := Diplomacy{}
	for _, a := range factions {
		d[a] = map[Faction]Posture{}
	}
	for i, a := range factions {
		for _, b := range factions[i+1:] {
			d.Set(a, b, Neutral)
		}
	}
	for _, w := range wars {
		d.Set(w.a, w.b, Enemy)
	}
	s.Diplomacy = d
}

// IsEnemy reports whether a piece of faction target is a valid hostile
// target for acting. Own pieces never are. Without a diplomacy entry any
// different faction counts as an enemy. A factionless actor has no
// enemies.
func (s *State) IsEnemy(acting, target Faction) bool {
	if acting == "" || target == "" || acting == target {
		return false
	}
	p, ok := s.Diplomacy.Get(acting, target)
	if !ok {
		return true
	}
	return p == Enemy
}
