package game

// ValidPositions returns the landing cell of every non-full column, ordered
// by increasing column. Both search engines branch in this order.
func ValidPositions(b *Board) []Position {
	return AppendValidPositions(make([]Position, 0, b.shape.Cols), b)
}

// AppendValidPositions appends the valid positions of b to dst.
func AppendValidPositions(dst []Position, b *Board) []Position {
	for col := 0; col < b.shape.Cols; col++ {
		if p, ok := DropPosition(b, col); ok {
			dst = append(dst, p)
		}
	}
	return dst
}

// DropPosition returns the cell a piece dropped into col lands on, or false
// if col is full or outside the grid.
func DropPosition(b *Board, col int) (Position, bool) {
	if col < 0 || col >= b.shape.Cols {
		return Position{}, false
	}
	if t, _ := b.TileAt(Position{Col: col, Row: 0}); t != Empty {
		return Position{}, false
	}
	for row := 1; row < b.shape.Rows; row++ {
		if t, _ := b.TileAt(Position{Col: col, Row: row}); t != Empty {
			return Position{Col: col, Row: row - 1}, true
		}
	}
	return Position{Col: col, Row: b.shape.Rows - 1}, true
}
