package text

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pixil98/go-tianxia/internal/game"
)

var (
	handTmpl = mustParse("hand", `
{{- if not .Cards }}{{ .Name }} holds no cards.{{ else }}{{ .Name }} holds {{ len .Cards }} card(s):
{{- range $i, $c := .Cards }}
  {{ add1 $i }}. {{ $c.Name }}{{ if $c.Icons }} [{{ join ", " $c.Icons }}]{{ end }}{{ if $c.Keep }} (kept on play){{ end }}
{{- if $c.Flavor }}
{{ indent2 $c.Flavor }}{{ end }}
{{- end }}{{ end }}
Coins: {{ number .Coins }}
`)

	boardTmpl = mustParse("board", `
{{- range .Nodes }}
{{ .Label }} [{{ .ID }}]{{ if .Control }} held by {{ join ", " .Control }}{{ end }}
{{- range .Pieces }}
    {{ .Count }} {{ .Faction }} {{ .Type }}{{ end }}
{{- range .Characters }}
    * {{ . }}{{ end }}
{{- if .Land }}
    by land: {{ join ", " .Land }}{{ end }}
{{- if .Water }}
    by water: {{ join ", " .Water }}{{ end }}
{{- end }}
`)

	tuckedTmpl = mustParse("tucked", `
{{- range .Players }}
{{ .Name }} ({{ .Faction }}){{ if .Character }} leads {{ .Character }}{{ end }}
{{- if .Cards }}{{ range .Cards }}
    {{ . }}{{ end }}{{ else }}
    nothing tucked{{ end }}
{{- end }}
`)

	promptTmpl = mustParse("prompt", `{{ .Owner }}: {{ .Message }}
{{- range $i, $o := .Options }}
  {{ add1 $i }}) {{ $o }}{{ end }}
Answer with "{{ .Command }} <number>".
`)

	controlTmpl = mustParse("control", `
{{- if not .Rows }}No faction controls anything.{{ end }}
{{- range .Rows }}
{{ .Faction }}: {{ join ", " .Nodes }}{{ end }}
`)

	diplomacyTmpl = mustParse("diplomacy", `
{{- if not .Pairs }}No factions are known.{{ end }}
{{- range .Pairs }}
{{ .A }} and {{ .B }}: {{ .Posture }}{{ end }}
`)

	statusTmpl = mustParse("status", `
{{- if .Ended }}The game is over.{{ if .Winner }} {{ .Winner }} wins.{{ end }}
{{- else }}It is {{ .Current }}'s turn ({{ .Phase }}).{{ if .Played }} A card has been played.{{ end }}{{ end }}
`)
)

type cardView struct {
	Name   string
	Icons  []string
	Keep   bool
	Flavor string
}

// Hand lists p's cards. Flavor text comes from the catalog definition when
// cat is set.
func Hand(p *game.Player, cat game.Catalog) (string, error) {
	data := struct {
		Name  string
		Coins int
		Cards []cardView
	}{Name: p.Name, Coins: p.Coins}

	for _, c := range p.Hand {
		v := cardView{Name: c.Name, Icons: c.Icons, Keep: c.KeepOnPlay}
		if cat != nil {
			if def := cat.Card(c.ID); def != nil {
				v.Flavor = def.Extensions.String("flavor")
			}
		}
		data.Cards = append(data.Cards, v)
	}

	return execute(handTmpl, data)
}

type pieceCount struct {
	Faction string
	Type    string
	Count   int
}

type nodeView struct {
	ID         game.NodeID
	Label      string
	Control    []string
	Pieces     []pieceCount
	Characters []string
	Land       []string
	Water      []string
}

// Board describes every node: who holds it, what stands on it and where
// it leads.
func Board(s *game.State) (string, error) {
	control := s.Control()
	var nodes []nodeView

	for _, n := range s.Board.NodeIDs() {
		v := nodeView{ID: n, Label: s.Board.Label(n)}
		for _, f := range control[n] {
			v.Control = append(v.Control, Title(string(f)))
		}

		for _, p := range s.PiecesAt(n) {
			f := Title(orNone(string(p.Faction)))
			idx := slices.IndexFunc(v.Pieces, func(pc pieceCount) bool {
				return pc.Faction == f && pc.Type == p.TypeID
			})
			if idx < 0 {
				v.Pieces = append(v.Pieces, pieceCount{Faction: f, Type: p.TypeID, Count: 1})
				continue
			}
			v.Pieces[idx].Count++
		}

		for _, id := range s.CharacterIDs() {
			if ch := s.Characters[id]; ch.Location.IsAt(n) {
				v.Characters = append(v.Characters, characterLabel(s, id))
			}
		}

		v.Land = labels(s, s.Board.Neighbors(n, game.MoveLand))
		v.Water = labels(s, s.Board.Neighbors(n, game.MoveWater))
		nodes = append(nodes, v)
	}

	return execute(boardTmpl, struct{ Nodes []nodeView }{nodes})
}

// Tucked lists every player's tucked cards, topmost first.
func Tucked(s *game.State) (string, error) {
	type row struct {
		Name      string
		Faction   string
		Character string
		Cards     []string
	}
	var rows []row
	for _, p := range s.Players {
		r := row{Name: p.Name, Faction: Title(orNone(string(s.ActingFaction(p.ID))))}
		if id := s.ControlledCharacterID(p.ID); id != "" {
			r.Character = characterLabel(s, id)
		}
		for i := len(p.Tucked) - 1; i >= 0; i-- {
			c := p.Tucked[i]
			if len(c.Icons) > 0 {
				r.Cards = append(r.Cards, fmt.Sprintf("%s [%s]", c.Name, strings.Join(c.Icons, ", ")))
			} else {
				r.Cards = append(r.Cards, c.Name)
			}
		}
		rows = append(rows, r)
	}
	return execute(tuckedTmpl, struct{ Players any }{rows})
}

// PromptCommand is the table command that answers a prompt of kind k.
func PromptCommand(k game.PromptKind) string {
	switch k {
	case game.PromptSelectPiece:
		return "piece"
	case game.PromptSelectAdjacentNode:
		return "adjacent"
	case game.PromptSelectNode:
		return "node"
	case game.PromptChoose:
		return "choose"
	}
	return string(k)
}

// OptionLabels describes each option of pr in order.
func OptionLabels(s *game.State, pr game.Prompt) []string {
	switch p := pr.(type) {
	case *game.SelectPiecePrompt:
		out := make([]string, len(p.Options))
		for i, id := range p.Options {
			out[i] = pieceLabel(s, id)
		}
		return out
	case *game.SelectAdjacentNodePrompt:
		return labels(s, p.Options)
	case *game.SelectNodePrompt:
		return labels(s, p.Options)
	case *game.ChoosePrompt:
		return p.Labels()
	}
	return nil
}

// Prompt renders the outstanding decision, or "" when there is none.
func Prompt(s *game.State) (string, error) {
	if s.Prompt == nil {
		return "", nil
	}
	owner := s.Prompt.Owner()
	if p := s.Player(owner); p != nil {
		owner = p.Name
	}
	return execute(promptTmpl, struct {
		Owner   string
		Message string
		Options []string
		Command string
	}{
		Owner:   owner,
		Message: s.Prompt.Text(),
		Options: OptionLabels(s, s.Prompt),
		Command: PromptCommand(s.Prompt.Kind()),
	})
}

// Control lists the nodes each faction controls.
func Control(s *game.State) (string, error) {
	type row struct {
		Faction string
		Nodes   []string
	}
	var rows []row
	for _, f := range s.Factions() {
		if nodes := s.ControlledBy(f); len(nodes) > 0 {
			rows = append(rows, row{Faction: Title(string(f)), Nodes: labels(s, nodes)})
		}
	}
	return execute(controlTmpl, struct{ Rows any }{rows})
}

// Diplomacy lists the posture of every faction pair once.
func Diplomacy(s *game.State) (string, error) {
	type pair struct{ A, B, Posture string }
	var pairs []pair
	factions := slices.Sorted(maps.Keys(s.Diplomacy))
	for i, a := range factions {
		for _, b := range factions[i+1:] {
			p, ok := s.Diplomacy.Get(a, b)
			if !ok {
				continue
			}
			pairs = append(pairs, pair{A: Title(string(a)), B: Title(string(b)), Posture: string(p)})
		}
	}
	return execute(diplomacyTmpl, struct{ Pairs any }{pairs})
}

// Status is a one-line summary of whose turn it is.
func Status(s *game.State, phase string) (string, error) {
	data := struct {
		Ended   bool
		Winner  string
		Current string
		Phase   string
		Played  bool
	}{
		Ended:  s.Ended,
		Phase:  phase,
		Played: s.HasPlayedThisTurn,
	}
	if p := s.Player(s.Winner); p != nil {
		data.Winner = p.Name
	}
	if p := s.CurrentPlayer(); p != nil {
		data.Current = p.Name
	}
	return execute(statusTmpl, data)
}

func characterLabel(s *game.State, id string) string {
	ch := s.Characters[id]
	if f, ok := s.CharacterFaction(id); ok {
		return fmt.Sprintf("%s (%s)", ch.Name, Title(string(f)))
	}
	return ch.Name
}

func pieceLabel(s *game.State, id game.PieceID) string {
	p, ok := s.Pieces[id]
	if !ok {
		return string(id)
	}
	where := "off the board"
	if p.Location.Kind == game.LocNode {
		where = "at " + s.Board.Label(p.Location.Node)
	}
	return fmt.Sprintf("%s %s %s", Title(orNone(string(p.Faction))), p.TypeID, where)
}

func labels(s *game.State, nodes []game.NodeID) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = s.Board.Label(n)
	}
	return out
}

func orNone(s string) string {
	if s == "" {
		return "unaligned"
	}
	return s
}
