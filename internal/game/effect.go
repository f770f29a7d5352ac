package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// EffectKind discriminates the nodes of an effect tree.
type EffectKind string

const (
	EffectVerb EffectKind = "verb" // leaf
	EffectAll  EffectKind = "all"  // run children in order
	EffectAny  EffectKind = "any"  // player picks one child
	EffectIf   EffectKind = "if"   // branch on a condition
)

// Effect is one node of a card's effect tree.
type Effect struct {
	Kind    EffectKind `json:"kind"`
	Label   string     `json:"label,omitempty"`
	Verb    *Verb      `json:"verb,omitempty"`
	Effects []Effect   `json:"effects,omitempty"`
	If      *Condition `json:"if,omitempty"`
	Then    *Effect    `json:"then,omitempty"`
	Else    *Effect    `json:"else,omitempty"`
}

// Do wraps a verb as a leaf effect.
func Do(v Verb) Effect {
	return Effect{Kind: EffectVerb, Verb: &v}
}

// All runs effects in order.
func All(effects ...Effect) Effect {
	return Effect{Kind: EffectAll, Effects: effects}
}

// Any lets the player pick one of effects.
func Any(effects ...Effect) Effect {
	return Effect{Kind: EffectAny, Effects: effects}
}

// If runs then when cond holds, otherwise els (which may be nil).
func If(cond Condition, then Effect, els *Effect) Effect {
	return Effect{Kind: EffectIf, If: &cond, Then: &then, Else: els}
}

// Validate checks the whole tree below e.
func (e *Effect) Validate() error {
	el := errors.NewErrorList()

	switch e.Kind {
	case EffectVerb:
		if e.Verb == nil {
			el.Add(fmt.Errorf("verb effect requires a verb"))
		} else {
			el.Add(e.Verb.Validate())
		}
	case EffectAll, EffectAny:
		if len(e.Effects) == 0 {
			el.Add(fmt.Errorf("%s effect requires at least one child", e.Kind))
		}
		for i := range e.Effects {
			if err := e.Effects[i].Validate(); err != nil {
				el.Add(fmt.Errorf("%s[%d]: %w", e.Kind, i, err))
			}
		}
	case EffectIf:
		if e.If == nil {
			el.Add(fmt.Errorf("if effect requires a condition"))
		} else {
			el.Add(e.If.Validate())
		}
		if e.Then == nil {
			el.Add(fmt.Errorf("if effect requires a then branch"))
		} else {
			el.Add(e.Then.Validate())
		}
		if e.Else != nil {
			el.Add(e.Else.Validate())
		}
	case "":
		el.Add(fmt.Errorf("effect kind is required"))
	default:
		el.Add(fmt.Errorf("unknown effect kind %q", e.Kind))
	}

	return el.Err()
}

// DescribeEffect renders a short human label for e, used for choose options.
func DescribeEffect(e *Effect) string {
	if e == nil {
		return "nothing"
	}
	if e.Label != "" {
		return e.Label
	}
	switch e.Kind {
	case EffectVerb:
		return DescribeVerb(e.Verb)
	case EffectAll:
		parts := make([]string, len(e.Effects))
		for i := range e.Effects {
			parts[i] = DescribeEffect(&e.Effects[i])
		}
		return strings.Join(parts, ", then ")
	case EffectAny:
		parts := make([]string, len(e.Effects))
		for i := range e.Effects {
			parts[i] = DescribeEffect(&e.Effects[i])
		}
		return "one of: " + strings.Join(parts, " / ")
	case EffectIf:
		s := fmt.Sprintf("if %s: %s", DescribeCondition(e.If), DescribeEffect(e.Then))
		if e.Else != nil {
			s += fmt.Sprintf(", else %s", DescribeEffect(e.Else))
		}
		return s
	}
	return string(e.Kind)
}
