package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"connectn/game"
	"connectn/player"
	"connectn/searcher"
	"connectn/searcher/agent"
)

var standard = game.Shape{Rows: 6, Cols: 7}

// Alternating drops, Positive first, that fill a 6x7 board without four in a row.
var drawColumns = []int{
	0, 2, 0, 3, 0, 0, 0, 0, 1, 1, 1, 1, 2, 1, 1, 2, 4, 2, 4, 2, 2,
	3, 3, 4, 3, 4, 3, 3, 4, 4, 6, 5, 5, 5, 6, 6, 5, 6, 5, 6, 6, 5,
}

// scriptedAgent plays its moves in order. A negative column yields a
// floating move at the top of column 0.
type scriptedAgent struct {
	name  string
	tile  game.Tile
	cols  []int
	err   error
	calls int
}

func (a *scriptedAgent) Name() string    { return a.name }
func (a *scriptedAgent) Tile() game.Tile { return a.tile }

func (a *scriptedAgent) NextMove(board game.Board) (game.Move, error) {
	a.calls++
	if len(a.cols) == 0 {
		if a.err != nil {
			return game.Move{}, a.err
		}
		return game.Move{}, errors.New("script exhausted")
	}
	col := a.cols[0]
	a.cols = a.cols[1:]
	if col < 0 {
		return game.Move{Pos: game.Position{Col: 0, Row: 0}, Tile: a.tile}, nil
	}
	p, _ := game.DropPosition(&board, col)
	return game.Move{Pos: p, Tile: a.tile}, nil
}

type reportingAgent struct {
	scriptedAgent
}

func (a *reportingAgent) LastMetrics() searcher.SearchMetrics {
	return searcher.SearchMetrics{Iterations: 10, Playouts: 9, Nodes: 3}
}

func split(cols []int) (positive, negative []int) {
	for i, col := range cols {
		if i%2 == 0 {
			positive = append(positive, col)
		} else {
			negative = append(negative, col)
		}
	}
	return positive, negative
}

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("vertical win", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: []int{3, 3, 3, 3}}
		negative := &scriptedAgent{name: "n", tile: game.Negative, cols: []int{4, 4, 4}}

		result, moves, err := NewLocalEngine(positive, negative, standard, quiet()).Run()
		require.NoError(t, err)
		require.Equal(t, game.Positive, result.Winner())
		require.Equal(t, "p won", result.String())
		require.Equal(t, 7, result.Game.TotalMoves)
		require.Len(t, moves, 7)
		for i, m := range moves {
			require.Equal(t, i+1, m.Step, "Steps should count placed pieces")
		}
		require.Equal(t, game.Move{Pos: game.Position{Col: 3, Row: 2}, Tile: game.Positive}, moves[6].Move)
		require.Equal(t, 7, result.Board.Pieces())
	})

	t.Run("draw on a full board", func(t *testing.T) {
		p, n := split(drawColumns)
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: p}
		negative := &scriptedAgent{name: "n", tile: game.Negative, cols: n}

		result, moves, err := NewLocalEngine(positive, negative, standard, quiet()).Run()
		require.NoError(t, err)
		require.True(t, result.Eval.Terminal)
		require.Equal(t, game.Empty, result.Winner())
		require.Equal(t, "draw", result.String())
		require.Len(t, moves, standard.Cells())
		require.True(t, result.Board.IsFull())
	})

	t.Run("rejected moves are retried by the same agent", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: []int{-1, 3, 3, 3, 3}}
		negative := &scriptedAgent{name: "n", tile: game.Negative, cols: []int{-1, -1, 4, 4, 4}}

		result, moves, err := NewLocalEngine(positive, negative, standard, quiet()).Run()
		require.NoError(t, err)
		require.Equal(t, game.Positive, result.Winner())
		require.Equal(t, 3, result.Game.Rejected)
		require.Len(t, moves, 7, "Rejected moves should not be recorded")
		require.Equal(t, 5, positive.calls)
		require.Equal(t, 5, negative.calls)
	})

	t.Run("moves for the wrong tile are rejected", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: []int{0, 0, 0, 0}}
		impostor := &scriptedAgent{name: "n", tile: game.Positive, cols: []int{1, 1, 1}}
		negative := &wrongTile{impostor}

		result, moves, err := NewLocalEngine(positive, negative, standard, quiet(), WithMaxTurns(10)).Run()
		require.Error(t, err, "Impostor should run out of moves")
		require.False(t, result.Eval.Terminal)
		require.Equal(t, 3, result.Game.Rejected)
		require.Len(t, moves, 1)
	})

	t.Run("agent error ends the game", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: []int{3}}
		negative := &scriptedAgent{name: "n", tile: game.Negative, err: player.ErrQuit}

		result, moves, err := NewLocalEngine(positive, negative, standard, quiet()).Run()
		require.ErrorIs(t, err, player.ErrQuit)
		require.Contains(t, err.Error(), "agent n failed to move")
		require.False(t, result.Eval.Terminal)
		require.Len(t, moves, 1)
	})

	t.Run("turn limit", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: []int{-1, -1, -1, -1}}
		negative := &scriptedAgent{name: "n", tile: game.Negative}

		result, moves, err := NewLocalEngine(positive, negative, standard, quiet(), WithMaxTurns(3)).Run()
		require.NoError(t, err)
		require.False(t, result.Eval.Terminal)
		require.Equal(t, "no result", result.String())
		require.Equal(t, 3, result.Game.Rejected)
		require.Empty(t, moves)
		require.Equal(t, 3, positive.calls)
	})

	t.Run("records search metrics", func(t *testing.T) {
		positive := &reportingAgent{scriptedAgent{name: "p", tile: game.Positive, cols: []int{3, 3, 3, 3}}}
		negative := &scriptedAgent{name: "n", tile: game.Negative, cols: []int{4, 4, 4}}

		_, moves, err := NewLocalEngine(positive, negative, standard, quiet()).Run()
		require.NoError(t, err)
		require.Equal(t, int64(10), moves[0].Iterations)
		require.Equal(t, int64(3), moves[0].Nodes)
		require.Equal(t, int64(0), moves[1].Iterations, "Non-searching agents report nothing")
	})

	t.Run("renders the board", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive, cols: []int{3, 3, 3, 3}}
		negative := &scriptedAgent{name: "n", tile: game.Negative, cols: []int{4, 4, 4}}

		var out bytes.Buffer
		_, _, err := NewLocalEngine(positive, negative, standard, quiet(), WithOutput(&out)).Run()
		require.NoError(t, err)
		rule := "+" + strings.Repeat("-", 27) + "+\n"
		require.Equal(t, 8*7, strings.Count(out.String(), rule), "Should render the empty board and every placement")
		require.True(t, strings.HasSuffix(out.String(), "p won\n"))
	})

	t.Run("minimax proves the small board", func(t *testing.T) {
		shape := game.Shape{Rows: 4, Cols: 4}
		positive := agent.NewMinimaxAgent("max", searcher.NewMinimax(game.Positive, shape.Cells()))
		negative := agent.NewMinimaxAgent("min", searcher.NewMinimax(game.Negative, shape.Cells()))

		e := NewLocalEngine(positive, negative, shape, quiet(), WithBoardOptions(game.WithWinLength(3)))
		result, _, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, game.Positive, result.Winner(), "First player should convert the forced win")
	})

	t.Run("panics on swapped agents", func(t *testing.T) {
		positive := &scriptedAgent{name: "p", tile: game.Positive}
		negative := &scriptedAgent{name: "n", tile: game.Negative}
		require.Panics(t, func() {
			NewLocalEngine(negative, positive, standard)
		})
	})
}

// wrongTile claims to play Negative but places Positive pieces.
type wrongTile struct {
	*scriptedAgent
}

func (w *wrongTile) Tile() game.Tile { return game.Negative }
