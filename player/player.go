package player

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"connectn/game"
)

// ErrQuit is returned by NextMove when the human leaves the game.
var ErrQuit = errors.New("player quit")

// LineReader reads one line of input per call. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Human is an agent whose moves are typed in as zero-based column numbers.
type Human struct {
	name string
	tile game.Tile
	in   LineReader
	out  io.Writer
}

func NewHuman(name string, tile game.Tile, in LineReader, out io.Writer) *Human {
	if tile == game.Empty {
		panic("human cannot play the empty tile")
	}
	return &Human{name: name, tile: tile, in: in, out: out}
}

func (h *Human) Name() string {
	return h.name
}

func (h *Human) Tile() game.Tile {
	return h.tile
}

// NextMove prompts until a column with room is entered. Entering q, EOF or
// an interrupt returns ErrQuit.
func (h *Human) NextMove(board game.Board) (game.Move, error) {
	h.in.SetPrompt(fmt.Sprintf("What will be your move %s (%s)? ", h.name, h.tile))
	for {
		line, err := h.in.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return game.Move{}, ErrQuit
		}
		if err != nil {
			return game.Move{}, fmt.Errorf("failed to read move: %w", err)
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			return game.Move{}, ErrQuit
		}

		col, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(h.out, "%q is not a column, enter 0 to %d or q to quit\n", line, board.Shape().Cols-1)
			continue
		}
		pos, ok := game.DropPosition(&board, col)
		if !ok {
			fmt.Fprintf(h.out, "column %d is full or off the board\n", col)
			continue
		}
		return game.Move{Pos: pos, Tile: h.tile}, nil
	}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewTerminal opens a readline prompt on the terminal for human agents.
func NewTerminal() (*readline.Instance, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		EOFPrompt:       "quit",
		InterruptPrompt: "^C",

		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return l, nil
}
