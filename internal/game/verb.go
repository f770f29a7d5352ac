package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// VerbKind names a primitive card action.
type VerbKind string

const (
	VerbDraw                VerbKind = "draw"
	VerbDrawUpTo            VerbKind = "drawUpTo"
	VerbTuck                VerbKind = "tuck"
	VerbGainCoin            VerbKind = "gainCoin"
	VerbRetrieveFromDiscard VerbKind = "retrieveFromDiscard"
	VerbRecruit             VerbKind = "recruit"
	VerbPlaceCharacter      VerbKind = "placeCharacter"
	VerbMove                VerbKind = "move"
	VerbDestroy             VerbKind = "destroy"
	VerbDestroyNearby       VerbKind = "destroyNearby"
	VerbRetreatAtCharacter  VerbKind = "retreatAtCharacter"
	VerbConvertAtCharacter  VerbKind = "convertAtCharacter"
	VerbRemoveAt            VerbKind = "removeAt"
	VerbTrashTuckedCard     VerbKind = "trashTuckedCard"
	VerbAddCardToHand       VerbKind = "addCardToHand"
	VerbEndGame             VerbKind = "endGame"
	VerbRaid                VerbKind = "raid"
	VerbAssault             VerbKind = "assault"
)

// Verb targets.
const (
	TargetSelf     = "self"
	TargetOpponent = "opponent"
)

// Node set selectors for recruit and placeCharacter.
const (
	WhereList       = "list"
	WhereAny        = "any"
	WhereControlled = "controlled"
	WhereAdjacent   = "adjacent"
)

// Verb is a leaf instruction. Which fields matter depends on Kind.
type Verb struct {
	Kind VerbKind `json:"kind"`

	// Target is "self" (default) or "opponent". Player overrides it with an
	// explicit player id.
	Target string `json:"target,omitempty"`
	Player string `json:"player,omitempty"`

	Count  int `json:"count,omitempty"`
	Amount int `json:"amount,omitempty"`

	Faction    Faction  `json:"faction,omitempty"`
	To         Faction  `json:"to,omitempty"`
	PieceType  string   `json:"piece_type,omitempty"`
	PieceTypes []string `json:"piece_types,omitempty"`

	Node         NodeID   `json:"node,omitempty"`
	Nodes        []NodeID `json:"nodes,omitempty"`
	Where        string   `json:"where,omitempty"`
	ControlledBy Faction  `json:"controlled_by,omitempty"`
	Exclude      []NodeID `json:"exclude,omitempty"`
	Unique       bool     `json:"unique,omitempty"`

	Character string `json:"character,omitempty"`
	Match     string `json:"match,omitempty"`
	Card      string `json:"card,omitempty"`
	Winner    string `json:"winner,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (v *Verb) Validate() error {
	el := errors.NewErrorList()

	switch v.Target {
	case "", TargetSelf, TargetOpponent:
	default:
		el.Add(fmt.Errorf("%s: unknown target %q", v.Kind, v.Target))
	}
	if v.Count < 0 || v.Amount < 0 {
		el.Add(fmt.Errorf("%s: count and amount must not be negative", v.Kind))
	}

	switch v.Kind {
	case VerbDraw, VerbTuck, VerbDestroy, VerbDestroyNearby, VerbMove, VerbRaid, VerbAssault:
	case VerbDrawUpTo:
		if v.Count == 0 {
			el.Add(fmt.Errorf("drawUpTo: count is required"))
		}
	case VerbGainCoin:
		if v.Amount == 0 {
			el.Add(fmt.Errorf("gainCoin: amount is required"))
		}
	case VerbRetrieveFromDiscard:
		if v.Match == "" {
			el.Add(fmt.Errorf("retrieveFromDiscard: match is required"))
		}
	case VerbRecruit:
		if v.PieceType == "" {
			el.Add(fmt.Errorf("recruit: piece_type is required"))
		}
		switch v.Where {
		case "", WhereList:
			if len(v.Nodes) == 0 {
				el.Add(fmt.Errorf("recruit: nodes are required for a list"))
			}
		case WhereAny, WhereControlled:
		default:
			el.Add(fmt.Errorf("recruit: unknown where %q", v.Where))
		}
	case VerbPlaceCharacter:
		switch v.Where {
		case "", WhereList:
			if len(v.Nodes) == 0 {
				el.Add(fmt.Errorf("placeCharacter: nodes are required for a list"))
			}
		case WhereAdjacent, WhereAny:
		default:
			el.Add(fmt.Errorf("placeCharacter: unknown where %q", v.Where))
		}
	case VerbRetreatAtCharacter:
		if v.Faction == "" {
			el.Add(fmt.Errorf("retreatAtCharacter: faction is required"))
		}
	case VerbConvertAtCharacter:
		if v.Faction == "" {
			el.Add(fmt.Errorf("convertAtCharacter: faction is required"))
		}
	case VerbRemoveAt:
		if v.Node == "" {
			el.Add(fmt.Errorf("removeAt: node is required"))
		}
	case VerbTrashTuckedCard, VerbAddCardToHand:
		if v.Card == "" {
			el.Add(fmt.Errorf("%s: card is required", v.Kind))
		}
	case VerbEndGame:
		if v.Winner != "" && v.Winner != TargetSelf {
			el.Add(fmt.Errorf("endGame: unknown winner %q", v.Winner))
		}
	case "":
		el.Add(fmt.Errorf("verb kind is required"))
	default:
		el.Add(fmt.Errorf("unknown verb kind %q", v.Kind))
	}

	return el.Err()
}

func (v *Verb) count() int {
	if v.Count <= 0 {
		return 1
	}
	return v.Count
}

func (v *Verb) allowsType(typeID string) bool {
	if v.PieceType != "" && v.PieceType != typeID {
		return false
	}
	if len(v.PieceTypes) == 0 {
		return true
	}
	for _, t := range v.PieceTypes {
		if t == typeID {
			return true
		}
	}
	return false
}

// DescribeVerb renders a short human label for v.
func DescribeVerb(v *Verb) string {
	if v == nil {
		return "nothing"
	}
	who := ""
	switch {
	case v.Player != "":
		who = " (" + v.Player + ")"
	case v.Target == TargetOpponent:
		who = " (opponent)"
	}
	switch v.Kind {
	case VerbDraw:
		return fmt.Sprintf("draw %d%s", v.count(), who)
	case VerbDrawUpTo:
		return fmt.Sprintf("draw up to %d%s", v.Count, who)
	case VerbTuck:
		return "tuck this card" + who
	case VerbGainCoin:
		return fmt.Sprintf("gain %d coin%s", v.Amount, who)
	case VerbRetrieveFromDiscard:
		return fmt.Sprintf("retrieve %q from discard%s", v.Match, who)
	case VerbRecruit:
		return fmt.Sprintf("recruit %d %s", v.count(), v.PieceType)
	case VerbPlaceCharacter:
		return "place character"
	case VerbMove:
		return "move a piece"
	case VerbDestroy:
		return "destroy a piece"
	case VerbDestroyNearby:
		return "destroy a nearby enemy"
	case VerbRetreatAtCharacter:
		return fmt.Sprintf("%s retreats", v.Faction)
	case VerbConvertAtCharacter:
		return fmt.Sprintf("convert %d %s", v.count(), v.Faction)
	case VerbRemoveAt:
		return fmt.Sprintf("remove a piece at %s", v.Node)
	case VerbTrashTuckedCard:
		return fmt.Sprintf("trash tucked %s", v.Card)
	case VerbAddCardToHand:
		return fmt.Sprintf("add %s to hand", v.Card)
	case VerbEndGame:
		if v.Winner == TargetSelf {
			return "win the game"
		}
		return "end the game"
	}
	return strings.TrimSpace(string(v.Kind) + who)
}
