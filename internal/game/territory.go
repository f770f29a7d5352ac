package game

import "slices"

// Control returns, for every node on the board, the factions that control
// it. A node holding pieces is controlled by every faction present. An
// empty node is controlled by the single faction with a piece one
// movement-mode edge away; with zero or several contenders it has none.
// Nothing is cached.
func (s *State) Control() map[NodeID][]Faction {
	present := map[NodeID][]Faction{}
	reach := map[NodeID][]Faction{}

	for _, id := range s.PieceIDs() {
		p := s.Pieces[id]
		if p.Faction == "" || p.Location.Kind != LocNode {
			continue
		}
		n := p.Location.Node
		if !slices.Contains(present[n], p.Faction) {
			present[n] = append(present[n], p.Faction)
		}
		for _, nb := range s.Board.Neighbors(n, s.MoveModeOf(p)) {
			if !slices.Contains(reach[nb], p.Faction) {
				reach[nb] = append(reach[nb], p.Faction)
			}
		}
	}

	out := make(map[NodeID][]Faction, len(s.Board.Nodes))
	for _, n := range s.Board.NodeIDs() {
		if fs := present[n]; len(fs) > 0 {
			slices.Sort(fs)
			out[n] = fs
			continue
		}
		if fs := reach[n]; len(fs) == 1 {
			out[n] = fs
		} else {
			out[n] = nil
		}
	}
	return out
}

// ControlledBy returns the sorted nodes faction f controls.
func (s *State) ControlledBy(f Faction) []NodeID {
	var out []NodeID
	for n, fs := range s.Control() {
		if slices.Contains(fs, f) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
