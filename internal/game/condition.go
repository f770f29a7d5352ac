package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
)

type ConditionKind string

const (
	CondHasTuckedIcon      ConditionKind = "hasTuckedIcon"
	CondNoMarkedCardInHand ConditionKind = "noMarkedCardInHand"
	CondCoinsAtLeast       ConditionKind = "coinsAtLeast"
	CondCharacterAt        ConditionKind = "characterAt"
	CondCharacterWithPiece ConditionKind = "characterWithPiece"
	CondAll                ConditionKind = "all"
	CondAny                ConditionKind = "any"
	CondNot                ConditionKind = "not"
)

// Who values for hasTuckedIcon.
const (
	WhoSelf  = "self"
	WhoOther = "other"
)

// Condition is a predicate over state, evaluated for an acting player.
type Condition struct {
	Kind       ConditionKind `json:"kind"`
	Who        string        `json:"who,omitempty"`
	Icon       string        `json:"icon,omitempty"`
	AtLeast    int           `json:"at_least,omitempty"`
	Marker     string        `json:"marker,omitempty"`
	Nodes      []NodeID      `json:"nodes,omitempty"`
	PieceType  string        `json:"piece_type,omitempty"`
	Faction    Faction       `json:"faction,omitempty"`
	Conditions []Condition   `json:"conditions,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (c *Condition) Validate() error {
	el := errors.NewErrorList()

	switch c.Kind {
	case CondHasTuckedIcon:
		if c.Icon == "" {
			el.Add(fmt.Errorf("hasTuckedIcon: icon is required"))
		}
		if c.Who != "" && c.Who != WhoSelf && c.Who != WhoOther {
			el.Add(fmt.Errorf("hasTuckedIcon: unknown who %q", c.Who))
		}
	case CondNoMarkedCardInHand:
		if c.Marker == "" {
			el.Add(fmt.Errorf("noMarkedCardInHand: marker is required"))
		}
	case CondCoinsAtLeast:
	case CondCharacterAt:
		if len(c.Nodes) == 0 {
			el.Add(fmt.Errorf("characterAt: nodes are required"))
		}
	case CondCharacterWithPiece:
		if c.PieceType == "" && c.Faction == "" {
			el.Add(fmt.Errorf("characterWithPiece: piece_type or faction is required"))
		}
	case CondAll, CondAny:
		for i := range c.Conditions {
			if err := c.Conditions[i].Validate(); err != nil {
				el.Add(fmt.Errorf("%s[%d]: %w", c.Kind, i, err))
			}
		}
	case CondNot:
		if len(c.Conditions) != 1 {
			el.Add(fmt.Errorf("not: exactly one condition is required"))
		} else {
			el.Add(c.Conditions[0].Validate())
		}
	case "":
		el.Add(fmt.Errorf("condition kind is required"))
	default:
		el.Add(fmt.Errorf("unknown condition kind %q", c.Kind))
	}

	return el.Err()
}

func (c *Condition) atLeast() int {
	if c.AtLeast <= 0 {
		return 1
	}
	return c.AtLeast
}

// Evaluate reports whether c holds for playerID. cardUID names the card
// being evaluated so it never counts against itself. Evaluate does not
// modify s.
func (s *State) Evaluate(c *Condition, playerID, cardUID string) bool {
	if c == nil {
		return true
	}
	p := s.Player(playerID)
	if p == nil {
		return false
	}

	switch c.Kind {
	case CondHasTuckedIcon:
		var n int
		if c.Who == WhoOther {
			for _, o := range s.Players {
				if o.ID != p.ID {
					n += countIcon(o.Tucked, c.Icon)
				}
			}
		} else {
			n = countIcon(p.Tucked, c.Icon)
		}
		return n >= c.atLeast()

	case CondNoMarkedCardInHand:
		for _, card := range p.Hand {
			if cardUID != "" && card.UID == cardUID {
				continue
			}
			if strings.Contains(card.Name, c.Marker) {
				return false
			}
		}
		return true

	case CondCoinsAtLeast:
		return p.Coins >= c.AtLeast

	case CondCharacterAt:
		ch := s.ControlledCharacter(p.ID)
		if ch == nil || ch.Location.Kind != LocNode {
			return false
		}
		return slices.Contains(c.Nodes, ch.Location.Node)

	case CondCharacterWithPiece:
		ch := s.ControlledCharacter(p.ID)
		if ch == nil || ch.Location.Kind != LocNode {
			return false
		}
		for _, piece := range s.PiecesAt(ch.Location.Node) {
			if c.PieceType != "" && piece.TypeID != c.PieceType {
				continue
			}
			if c.Faction != "" && piece.Faction != c.Faction {
				continue
			}
			return true
		}
		return false

	case CondAll:
		for i := range c.Conditions {
			if !s.Evaluate(&c.Conditions[i], playerID, cardUID) {
				return false
			}
		}
		return true

	case CondAny:
		for i := range c.Conditions {
			if s.Evaluate(&c.Conditions[i], playerID, cardUID) {
				return true
			}
		}
		return false

	case CondNot:
		if len(c.Conditions) == 0 {
			return true
		}
		return !s.Evaluate(&c.Conditions[0], playerID, cardUID)
	}
	return false
}

func countIcon(cards []Card, icon string) int {
	var n int
	for _, c := range cards {
		for _, i := range c.Icons {
			if i == icon {
				n++
			}
		}
	}
	return n
}

// DescribeCondition renders a short human label for c.
func DescribeCondition(c *Condition) string {
	if c == nil {
		return "always"
	}
	switch c.Kind {
	case CondHasTuckedIcon:
		who := "you have"
		if c.Who == WhoOther {
			who = "another player has"
		}
		return fmt.Sprintf("%s %d tucked %s", who, c.atLeast(), c.Icon)
	case CondNoMarkedCardInHand:
		return fmt.Sprintf("no %q card in hand", c.Marker)
	case CondCoinsAtLeast:
		return fmt.Sprintf("at least %d coins", c.AtLeast)
	case CondCharacterAt:
		return fmt.Sprintf("your character is at %s", joinNodes(c.Nodes))
	case CondCharacterWithPiece:
		return fmt.Sprintf("your character is with %s %s", c.Faction, c.PieceType)
	case CondAll, CondAny:
		parts := make([]string, len(c.Conditions))
		for i := range c.Conditions {
			parts[i] = DescribeCondition(&c.Conditions[i])
		}
		sep := " and "
		if c.Kind == CondAny {
			sep = " or "
		}
		return strings.Join(parts, sep)
	case CondNot:
		if len(c.Conditions) == 1 {
			return "not " + DescribeCondition(&c.Conditions[0])
		}
	}
	return string(c.Kind)
}

func joinNodes(nodes []NodeID) string {
	s := make([]string, len(nodes))
	for i, n := range nodes {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}
