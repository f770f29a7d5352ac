package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

type NodeID string
type EdgeID string

// EdgeKind labels how an edge can be traversed.
type EdgeKind string

const (
	EdgeRoad  EdgeKind = "road"
	EdgePath  EdgeKind = "path"
	EdgeRiver EdgeKind = "river"
	EdgeCanal EdgeKind = "canal"
	EdgeCoast EdgeKind = "coast"
	EdgeLake  EdgeKind = "lake"
)

// IsLand reports whether the kind can be walked.
func (k EdgeKind) IsLand() bool {
	return k == EdgeRoad || k == EdgePath
}

// IsWater reports whether the kind can be sailed.
func (k EdgeKind) IsWater() bool {
	switch k {
	case EdgeRiver, EdgeCanal, EdgeCoast, EdgeLake:
		return true
	}
	return false
}

// MoveMode filters adjacency queries by edge kind.
type MoveMode int

const (
	MoveAny MoveMode = iota
	MoveLand
	MoveWater
)

func (m MoveMode) String() string {
	switch m {
	case MoveLand:
		return "land"
	case MoveWater:
		return "water"
	default:
		return "any"
	}
}

// Node is a settlement on the board.
type Node struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge connects two nodes. Kinds is never empty.
type Edge struct {
	A     NodeID     `json:"a"`
	B     NodeID     `json:"b"`
	Kinds []EdgeKind `json:"kinds"`
}

// Allows reports whether the edge can be used under the given mode.
func (e *Edge) Allows(mode MoveMode) bool {
	for _, k := range e.Kinds {
		switch mode {
		case MoveAny:
			return true
		case MoveLand:
			if k.IsLand() {
				return true
			}
		case MoveWater:
			if k.IsWater() {
				return true
			}
		}
	}
	return false
}

// Other returns the endpoint opposite n, or "" if n is not an endpoint.
func (e *Edge) Other(n NodeID) NodeID {
	switch n {
	case e.A:
		return e.B
	case e.B:
		return e.A
	}
	return ""
}

// Board is the static map graph. It is read-only once a match starts, so
// state snapshots share it.
type Board struct {
	Nodes map[NodeID]*Node `json:"nodes"`
	Edges map[EdgeID]*Edge `json:"edges"`
}

// Validate satisfies storage.ValidatingSpec.
func (b *Board) Validate() error {
	el := errors.NewErrorList()

	if len(b.Nodes) == 0 {
		el.Add(fmt.Errorf("nodes are required"))
	}

	for id, e := range b.Edges {
		if e == nil {
			el.Add(fmt.Errorf("edge %q: definition is empty", id))
			continue
		}
		if _, ok := b.Nodes[e.A]; !ok {
			el.Add(fmt.Errorf("edge %q: unknown endpoint %q", id, e.A))
		}
		if _, ok := b.Nodes[e.B]; !ok {
			el.Add(fmt.Errorf("edge %q: unknown endpoint %q", id, e.B))
		}
		if e.A == e.B {
			el.Add(fmt.Errorf("edge %q: endpoints must differ", id))
		}
		if len(e.Kinds) == 0 {
			el.Add(fmt.Errorf("edge %q: at least one kind is required", id))
		}
		for _, k := range e.Kinds {
			if !k.IsLand() && !k.IsWater() {
				el.Add(fmt.Errorf("edge %q: unknown kind %q", id, k))
			}
		}
	}

	return el.Err()
}

// HasNode reports whether id names a node on the board.
func (b *Board) HasNode(id NodeID) bool {
	if b == nil {
		return false
	}
	_, ok := b.Nodes[id]
	return ok
}

// NodeIDs returns every node id in sorted order.
func (b *Board) NodeIDs() []NodeID {
	if b == nil {
		return nil
	}
	ids := make([]NodeID, 0, len(b.Nodes))
	for id := range b.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Neighbors returns the sorted, de-duplicated set of nodes one edge away
// from n that can be reached under mode.
func (b *Board) Neighbors(n NodeID, mode MoveMode) []NodeID {
	if b == nil {
		return nil
	}
	var out []NodeID
	for _, e := range b.Edges {
		other := e.Other(n)
		if other == "" || !e.Allows(mode) {
			continue
		}
		if !slices.Contains(out, other) {
			out = append(out, other)
		}
	}
	slices.Sort(out)
	return out
}

// Adjacent reports whether a and b share an edge usable under mode.
func (b *Board) Adjacent(a, c NodeID, mode MoveMode) bool {
	return slices.Contains(b.Neighbors(a, mode), c)
}

// Label returns the display label for n, falling back to its id.
func (b *Board) Label(n NodeID) string {
	if b != nil {
		if node, ok := b.Nodes[n]; ok && node.Label != "" {
			return node.Label
		}
	}
	return string(n)
}
