package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestValidPositions(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		b := NewBoard(Shape{Rows: 3, Cols: 4})
		require.Equal(t, []Position{{0, 2}, {1, 2}, {2, 2}, {3, 2}}, ValidPositions(&b))
	})

	t.Run("full column is skipped", func(t *testing.T) {
		b := NewBoard(Shape{Rows: 2, Cols: 3})
		drop(t, &b, 1, Positive)
		drop(t, &b, 1, Negative)
		drop(t, &b, 2, Positive)
		require.Equal(t, []Position{{0, 1}, {2, 0}}, ValidPositions(&b))
	})

	t.Run("one entry per non-full column", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		for i := 0; i < 200; i++ {
			b := randomBoard(r, standard, r.Intn(standard.Cells()))
			positions := ValidPositions(&b)

			byCol := map[int]Position{}
			for i, p := range positions {
				if i > 0 {
					require.Greater(t, p.Col, positions[i-1].Col, "Positions should be ordered by column")
				}
				byCol[p.Col] = p
			}
			for col := 0; col < standard.Cols; col++ {
				top, _ := b.TileAt(Position{Col: col, Row: 0})
				p, ok := byCol[col]
				require.Equal(t, top == Empty, ok, "Column %d is omitted iff its top is occupied", col)
				if ok {
					probe := b
					require.True(t, probe.Place(Move{Pos: p, Tile: Positive}), "Generated position %s should be placeable", p)
				}
			}
		}
	})
}

func TestDropPosition(t *testing.T) {
	b := NewBoard(standard)
	_, ok := DropPosition(&b, -1)
	require.False(t, ok)
	_, ok = DropPosition(&b, standard.Cols)
	require.False(t, ok)

	for row := standard.Rows - 1; row >= 0; row-- {
		p := drop(t, &b, 4, Negative)
		require.Equal(t, Position{Col: 4, Row: row}, p)
	}
	_, ok = DropPosition(&b, 4)
	require.False(t, ok, "A full column has no drop position")
}

func TestAppendValidPositions(t *testing.T) {
	b := NewBoard(standard)
	buf := make([]Position, 0, standard.Cols)
	buf = AppendValidPositions(buf[:0], &b)
	require.Len(t, buf, standard.Cols)
	require.Equal(t, ValidPositions(&b), buf)
}
