package table

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/text"
)

const defaultLogLines = 10

type command struct {
	usage string
	help  string
	run   func(t *Table, seat string, args []string) error
	quit  bool
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"hand":      {usage: "hand", help: "show your hand and coins", run: cmdHand},
		"board":     {usage: "board", help: "describe every node on the board", run: view(text.Board)},
		"tucked":    {usage: "tucked", help: "list every player's tucked cards", run: view(text.Tucked)},
		"control":   {usage: "control", help: "list the nodes each faction controls", run: view(text.Control)},
		"diplomacy": {usage: "diplomacy", help: "show the posture between factions", run: view(text.Diplomacy)},
		"status":    {usage: "status", help: "show whose turn it is", run: cmdStatus},
		"log":       {usage: "log [n]", help: "repeat the last n log lines", run: cmdLog},
		"play":      {usage: "play <n|card>", help: "play a card from your hand", run: cmdPlay},
		"piece":     {usage: "piece <n|id>", help: "answer a piece selection", run: answer(game.PromptSelectPiece)},
		"adjacent":  {usage: "adjacent <n|node>", help: "answer where a piece moves", run: answer(game.PromptSelectAdjacentNode)},
		"node":      {usage: "node <n|node>", help: "answer a node selection", run: answer(game.PromptSelectNode)},
		"choose":    {usage: "choose <n>", help: "pick one of the offered effects", run: answer(game.PromptChoose)},
		"end":       {usage: "end", help: "end your turn", run: cmdEnd},
		"undo":      {usage: "undo", help: "roll your turn back to its start", run: cmdUndo},
		"help":      {usage: "help", help: "list commands", run: cmdHelp},
		"quit":      {usage: "quit", help: "leave the table", quit: true},
	}
}

func view(render func(*game.State) (string, error)) func(*Table, string, []string) error {
	return func(t *Table, seat string, _ []string) error {
		out, err := render(t.engine.State())
		if err != nil {
			return err
		}
		t.tell(seat, strings.Trim(out, "\n"))
		return nil
	}
}

func cmdHand(t *Table, seat string, _ []string) error {
	out, err := text.Hand(t.engine.State().Player(seat), t.catalog)
	if err != nil {
		return err
	}
	t.tell(seat, strings.TrimSuffix(out, "\n"))
	return nil
}

func cmdStatus(t *Table, seat string, _ []string) error {
	s := t.engine.State()
	out, err := text.Status(s, t.engine.Phase())
	if err != nil {
		return err
	}
	prompt, err := text.Prompt(s)
	if err != nil {
		return err
	}
	t.tell(seat, strings.TrimSuffix(out+prompt, "\n"))
	return nil
}

func cmdLog(t *Table, seat string, args []string) error {
	n := defaultLogLines
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return NewUserError("Usage: log [n] where n is a positive number.")
		}
		n = v
	}

	s := t.engine.State()
	if len(s.Log) == 0 {
		t.tell(seat, "Nothing has happened yet.")
		return nil
	}
	t.tell(seat, strings.Join(s.Log[max(0, len(s.Log)-n):], "\n"))
	return nil
}

func cmdPlay(t *Table, seat string, args []string) error {
	if err := t.requireTurn(seat); err != nil {
		return err
	}
	if len(args) == 0 {
		return NewUserError("Play which card? Use \"play <n>\" with a number from your hand.")
	}

	ref := strings.Join(args, " ")
	if n, err := strconv.Atoi(ref); err == nil {
		hand := t.engine.State().Player(seat).Hand
		if n < 1 || n > len(hand) {
			return NewUserError(fmt.Sprintf("Pick a card from 1 to %d.", len(hand)))
		}
		ref = hand[n-1].UID
	}

	t.engine.PlayCard(ref)
	return nil
}

func cmdEnd(t *Table, seat string, _ []string) error {
	if err := t.requireTurn(seat); err != nil {
		return err
	}
	t.engine.EndTurn()
	return nil
}

func cmdUndo(t *Table, seat string, _ []string) error {
	if err := t.requireTurn(seat); err != nil {
		return err
	}
	if !t.engine.CanUndo() || !t.engine.Undo() {
		return NewUserError("There is nothing to undo this turn.")
	}
	t.publish(t.everyone(), nil, fmt.Sprintf("%s takes back their turn.", t.name(seat)))
	return nil
}

func cmdHelp(t *Table, seat string, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := []string{"Available commands:"}
	for _, name := range names {
		c := commands[name]
		lines = append(lines, fmt.Sprintf("  %-18s %s", c.usage, c.help))
	}
	t.tell(seat, strings.Join(lines, "\n"))
	return nil
}

// answer resolves the outstanding prompt of kind k. A numeric argument picks
// an option by its position; anything else is passed to the engine as an id.
func answer(k game.PromptKind) func(*Table, string, []string) error {
	return func(t *Table, seat string, args []string) error {
		s := t.engine.State()
		if s.Prompt == nil {
			return NewUserError("Nothing is waiting for an answer.")
		}
		if owner := s.Prompt.Owner(); owner != seat {
			return NewUserError(fmt.Sprintf("%s must answer the current prompt.", t.name(owner)))
		}
		if s.Prompt.Kind() != k {
			return NewUserError(fmt.Sprintf("The current prompt expects \"%s <n>\".", text.PromptCommand(s.Prompt.Kind())))
		}
		if len(args) == 0 {
			return NewUserError(fmt.Sprintf("Usage: %s", commands[text.PromptCommand(k)].usage))
		}

		options := text.OptionLabels(s, s.Prompt)
		idx, err := strconv.Atoi(args[0])
		if err == nil && (idx < 1 || idx > len(options)) {
			return NewUserError(fmt.Sprintf("Pick a number from 1 to %d.", len(options)))
		}
		if err != nil && k == game.PromptChoose {
			return NewUserError("Choose by number.")
		}

		before := s.Prompt
		switch p := s.Prompt.(type) {
		case *game.SelectPiecePrompt:
			id := game.PieceID(args[0])
			if err == nil {
				id = p.Options[idx-1]
			}
			t.engine.InputSelectPiece(id)
		case *game.SelectAdjacentNodePrompt:
			t.engine.InputSelectAdjacentNode(pickNode(p.Options, args[0], idx, err))
		case *game.SelectNodePrompt:
			t.engine.InputSelectNode(pickNode(p.Options, args[0], idx, err))
		case *game.ChoosePrompt:
			t.engine.InputChoose(idx - 1)
		}
		if s.Prompt == before {
			return NewUserError(fmt.Sprintf("%q is not one of the options.", args[0]))
		}
		return nil
	}
}

func pickNode(options []game.NodeID, arg string, idx int, parseErr error) game.NodeID {
	if parseErr == nil {
		return options[idx-1]
	}
	return game.NodeID(arg)
}

func (t *Table) requireTurn(seat string) error {
	s := t.engine.State()
	if s.CurrentPlayerID != seat {
		return NewUserError(fmt.Sprintf("It is %s's turn.", t.name(s.CurrentPlayerID)))
	}
	return nil
}
