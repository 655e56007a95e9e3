package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var standard = Shape{Rows: 6, Cols: 7}

// randomBoard plays up to plies random alternating moves, stopping early at a
// terminal position.
func randomBoard(r *rand.Rand, shape Shape, plies int) Board {
	b := NewBoard(shape)
	turn := Positive
	for i := 0; i < plies; i++ {
		positions := ValidPositions(&b)
		if len(positions) == 0 {
			break
		}
		b.Place(Move{Pos: positions[r.Intn(len(positions))], Tile: turn})
		if Evaluate(&b).Terminal {
			break
		}
		turn = turn.Enemy()
	}
	return b
}

func TestBoardPlace(t *testing.T) {
	t.Run("placing on the bottom row", func(t *testing.T) {
		b := NewBoard(standard)
		require.True(t, b.Place(Move{Pos: Position{Col: 3, Row: 5}, Tile: Positive}))

		got, ok := b.TileAt(Position{Col: 3, Row: 5})
		require.True(t, ok)
		require.Equal(t, Positive, got)
	})

	t.Run("stacking on an occupied cell", func(t *testing.T) {
		b := NewBoard(standard)
		require.True(t, b.Place(Move{Pos: Position{Col: 0, Row: 5}, Tile: Negative}))
		require.True(t, b.Place(Move{Pos: Position{Col: 0, Row: 4}, Tile: Positive}))
		require.Equal(t, 2, b.Pieces())
	})

	t.Run("rejecting invalid moves", func(t *testing.T) {
		b := NewBoard(standard)
		require.True(t, b.Place(Move{Pos: Position{Col: 2, Row: 5}, Tile: Positive}))
		before := b

		invalid := map[string]Move{
			"floating":       {Pos: Position{Col: 4, Row: 3}, Tile: Positive},
			"occupied":       {Pos: Position{Col: 2, Row: 5}, Tile: Negative},
			"column too big": {Pos: Position{Col: 7, Row: 5}, Tile: Positive},
			"negative row":   {Pos: Position{Col: 2, Row: -1}, Tile: Positive},
			"empty tile":     {Pos: Position{Col: 2, Row: 4}, Tile: Empty},
		}
		for name, m := range invalid {
			require.False(t, b.Place(m), "Place should reject move: %s", name)
			require.Equal(t, before, b, "Board should not change after rejected move: %s", name)
		}
	})
}

func TestBoardRemove(t *testing.T) {
	t.Run("undoing placements restores the board", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			b := randomBoard(r, standard, r.Intn(standard.Cells()))
			for _, p := range ValidPositions(&b) {
				for _, tile := range []Tile{Positive, Negative} {
					before := b
					m := Move{Pos: p, Tile: tile}
					require.True(t, b.Place(m))
					require.True(t, b.Remove(m))
					require.Equal(t, before, b, "Board should be restored after undoing %s", m)
				}
			}
		}
	})

	t.Run("removing out of bounds", func(t *testing.T) {
		b := NewBoard(standard)
		require.False(t, b.Remove(Move{Pos: Position{Col: -1, Row: 0}, Tile: Positive}))
		require.False(t, b.Remove(Move{Pos: Position{Col: 0, Row: 6}, Tile: Negative}))
	})

	t.Run("removing regardless of content", func(t *testing.T) {
		b := NewBoard(standard)
		require.True(t, b.Remove(Move{Pos: Position{Col: 0, Row: 0}, Tile: Positive}))
		require.Equal(t, NewBoard(standard), b)
	})
}

func TestTileAt(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		b := randomBoard(r, standard, r.Intn(standard.Cells()))
		require.True(t, b.consistent(), "Piece sets should never overlap")

		counts := map[Tile]int{}
		for row := -1; row <= standard.Rows; row++ {
			for col := -1; col <= standard.Cols; col++ {
				p := Position{Col: col, Row: row}
				tile, ok := b.TileAt(p)
				require.Equal(t, standard.Contains(p), ok, "Bounds check for %s", p)
				if ok {
					counts[tile]++
				}
			}
		}
		require.Equal(t, b.positive.count(), counts[Positive])
		require.Equal(t, b.negative.count(), counts[Negative])
		require.Equal(t, standard.Cells()-b.Pieces(), counts[Empty])
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(Shape{Rows: 4, Cols: 4}, WithWinLength(3))
	require.Equal(t, 3, b.WinLength())
	require.Equal(t, Shape{Rows: 4, Cols: 4}, b.Shape())
	standardBoard := NewBoard(standard)
	require.Equal(t, DefaultWinLength, standardBoard.WinLength())

	require.Panics(t, func() { NewBoard(Shape{Rows: 0, Cols: 7}) })
	require.Panics(t, func() { NewBoard(Shape{Rows: 16, Cols: 17}) })
	require.Panics(t, func() { NewBoard(standard, WithWinLength(1)) })
	require.Panics(t, func() { NewBoard(standard, WithWinLength(MaxWinLength+1)) })
}

func TestBoardString(t *testing.T) {
	b := NewBoard(Shape{Rows: 2, Cols: 3})
	b.Place(Move{Pos: Position{Col: 0, Row: 1}, Tile: Positive})
	b.Place(Move{Pos: Position{Col: 0, Row: 0}, Tile: Negative})

	want := "+---------------+\n" +
		"| O | . | . | \n" +
		"+-----------+\n" +
		"| X | . | . | \n" +
		"+---------------+\n"
	require.Equal(t, want, b.String())
}
