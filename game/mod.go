// Package game holds the Connect-N board, its evaluator and the move generator
// shared by every search engine and agent.
package game

const (
	DefaultWinLength = 4
	MinWinLength     = 2
	// Keeps 10^(N-1) * MaxCells * 4 inside an int64 score.
	MaxWinLength = 16
)

// Shape fixes the grid dimensions for a match.
type Shape struct {
	Rows int
	Cols int
}

func (s Shape) Cells() int {
	return s.Rows * s.Cols
}

func (s Shape) Contains(p Position) bool {
	return p.Col >= 0 && p.Col < s.Cols && p.Row >= 0 && p.Row < s.Rows
}

func (s Shape) index(p Position) int {
	return p.Row*s.Cols + p.Col
}

// Tile is the content of a cell. The signed encoding is used directly in
// scores and outcomes.
type Tile int8

const (
	Negative Tile = -1
	Empty    Tile = 0
	Positive Tile = 1
)

// Enemy returns the opposing tile, or Empty for Empty.
func (t Tile) Enemy() Tile {
	switch t {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return Empty
	}
}

func (t Tile) Sign() int64 {
	return int64(t)
}

func (t Tile) String() string {
	switch t {
	case Positive:
		return "X"
	case Negative:
		return "O"
	case Empty:
		return "."
	default:
		panic("invalid tile")
	}
}
