package game

import "slices"

// PromptKind names the resume entry point a prompt expects.
type PromptKind string

const (
	PromptSelectPiece        PromptKind = "selectPiece"
	PromptSelectAdjacentNode PromptKind = "selectAdjacentNode"
	PromptSelectNode         PromptKind = "selectNode"
	PromptChoose             PromptKind = "choose"
)

// Prompt is the single outstanding player decision. The variants are
// SelectPiecePrompt, SelectAdjacentNodePrompt, SelectNodePrompt and
// ChoosePrompt; no other type implements it.
type Prompt interface {
	Kind() PromptKind
	Owner() string
	Text() string

	clonePrompt() Prompt
}

// PiecePurpose says what happens to the selected piece.
type PiecePurpose string

const (
	PieceDestroy PiecePurpose = "destroy"
	PieceMove    PiecePurpose = "move"
)

type SelectPiecePrompt struct {
	PlayerID string
	Purpose  PiecePurpose
	Options  []PieceID
	Message  string
}

func (p *SelectPiecePrompt) Kind() PromptKind { return PromptSelectPiece }
func (p *SelectPiecePrompt) Owner() string    { return p.PlayerID }
func (p *SelectPiecePrompt) Text() string     { return p.Message }
func (p *SelectPiecePrompt) clonePrompt() Prompt {
	c := *p
	c.Options = slices.Clone(p.Options)
	return &c
}

// SelectAdjacentNodePrompt asks where a selected piece goes.
type SelectAdjacentNodePrompt struct {
	PlayerID string
	PieceID  PieceID
	From     NodeID
	Options  []NodeID
	Message  string
}

func (p *SelectAdjacentNodePrompt) Kind() PromptKind { return PromptSelectAdjacentNode }
func (p *SelectAdjacentNodePrompt) Owner() string    { return p.PlayerID }
func (p *SelectAdjacentNodePrompt) Text() string     { return p.Message }
func (p *SelectAdjacentNodePrompt) clonePrompt() Prompt {
	c := *p
	c.Options = slices.Clone(p.Options)
	return &c
}

// NodePurpose says what happens at the selected node.
type NodePurpose string

const (
	NodeRecruit        NodePurpose = "recruit"
	NodePlaceCharacter NodePurpose = "placeCharacter"
)

type SelectNodePrompt struct {
	PlayerID string
	Purpose  NodePurpose
	Options  []NodeID
	Message  string

	// Recruit placement.
	Faction   Faction
	PieceType string
	Remaining int
	Unique    bool
	Used      []NodeID

	// Character placement.
	CharacterID string
}

func (p *SelectNodePrompt) Kind() PromptKind { return PromptSelectNode }
func (p *SelectNodePrompt) Owner() string    { return p.PlayerID }
func (p *SelectNodePrompt) Text() string     { return p.Message }
func (p *SelectNodePrompt) clonePrompt() Prompt {
	c := *p
	c.Options = slices.Clone(p.Options)
	c.Used = slices.Clone(p.Used)
	return &c
}

// ChoosePrompt offers effects; nothing runs until one is picked.
type ChoosePrompt struct {
	PlayerID string
	Message  string
	Choices  []Effect
}

func (p *ChoosePrompt) Kind() PromptKind { return PromptChoose }
func (p *ChoosePrompt) Owner() string    { return p.PlayerID }
func (p *ChoosePrompt) Text() string     { return p.Message }
func (p *ChoosePrompt) clonePrompt() Prompt {
	c := *p
	c.Choices = slices.Clone(p.Choices)
	return &c
}

// Labels describes each choice for display.
func (p *ChoosePrompt) Labels() []string {
	out := make([]string, len(p.Choices))
	for i := range p.Choices {
		out[i] = DescribeEffect(&p.Choices[i])
	}
	return out
}
