package game

import "fmt"

// Position is a (column, row) cell coordinate. Row 0 is the top of the grid.
type Position struct {
	Col int
	Row int
}

func (p Position) add(d Position, k int) Position {
	return Position{Col: p.Col + d.Col*k, Row: p.Row + d.Row*k}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Move places Tile at Pos.
type Move struct {
	Pos  Position
	Tile Tile
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%s", m.Tile, m.Pos)
}
