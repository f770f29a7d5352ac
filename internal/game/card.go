package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tianxia/internal/storage"
)

// CardDef is a card as it appears in the catalog.
type CardDef struct {
	Name       string     `json:"name"`
	Icons      []string   `json:"icons,omitempty"`
	Verbs      []Verb     `json:"verbs,omitempty"`
	Effect     *Effect    `json:"effect,omitempty"`
	Condition  *Condition `json:"condition,omitempty"`
	KeepOnPlay bool       `json:"keep_on_play,omitempty"`

	// Extensions carries renderer data (art, flavor text) the engine ignores.
	Extensions storage.ExtensionState `json:"extensions,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (d *CardDef) Validate() error {
	el := errors.NewErrorList()

	if d.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	for i, icon := range d.Icons {
		if strings.TrimSpace(icon) == "" {
			el.Add(fmt.Errorf("icon %d is blank", i))
		}
	}
	if d.Effect != nil {
		el.Add(d.Effect.Validate())
	}
	for i := range d.Verbs {
		if err := d.Verbs[i].Validate(); err != nil {
			el.Add(fmt.Errorf("verb %d: %w", i, err))
		}
	}
	if d.Condition != nil {
		el.Add(d.Condition.Validate())
	}

	return el.Err()
}

// Card is one physical copy of a definition. UID tells copies apart.
// Effect, Verbs and Condition are shared with the definition and never
// mutated by the engine.
type Card struct {
	UID        string     `json:"uid"`
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Icons      []string   `json:"icons,omitempty"`
	Verbs      []Verb     `json:"verbs,omitempty"`
	Effect     *Effect    `json:"effect,omitempty"`
	Condition  *Condition `json:"condition,omitempty"`
	KeepOnPlay bool       `json:"keep_on_play,omitempty"`
}

// NewCard creates a fresh copy of def with its own instance id.
func NewCard(id string, def *CardDef) Card {
	return Card{
		UID:        uuid.New().String(),
		ID:         id,
		Name:       def.Name,
		Icons:      slices.Clone(def.Icons),
		Verbs:      def.Verbs,
		Effect:     def.Effect,
		Condition:  def.Condition,
		KeepOnPlay: def.KeepOnPlay,
	}
}

// Matches reports whether ref names this card by instance or definition id.
func (c *Card) Matches(ref string) bool {
	return ref != "" && (c.UID == ref || c.ID == ref)
}

// HasIcon reports whether the card carries icon.
func (c *Card) HasIcon(icon string) bool {
	return slices.Contains(c.Icons, icon)
}

func (c Card) clone() Card {
	c.Icons = slices.Clone(c.Icons)
	return c
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

// Catalog looks up card definitions by id.
type Catalog interface {
	Card(id string) *CardDef
}

// MapCatalog is a Catalog over an in-memory map.
type MapCatalog map[string]*CardDef

func (m MapCatalog) Card(id string) *CardDef {
	return m[id]
}
