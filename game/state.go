package game

import (
	"fmt"
	"strings"
)

// Board is a gravity-drop grid holding two disjoint bit-packed piece sets.
// Boards are values: copying one gives an independent board.
type Board struct {
	shape    Shape
	n        int
	positive bitset
	negative bitset
}

type BoardOption func(b *Board)

// WithWinLength overrides the number of pieces in a row needed to win.
func WithWinLength(n int) BoardOption {
	return func(b *Board) {
		b.n = n
	}
}

// NewBoard returns an empty board of the given shape.
func NewBoard(shape Shape, options ...BoardOption) Board {
	if shape.Rows <= 0 || shape.Cols <= 0 {
		panic(fmt.Sprintf("invalid board shape %dx%d", shape.Rows, shape.Cols))
	}
	if shape.Cells() > MaxCells {
		panic(fmt.Sprintf("board shape %dx%d exceeds %d cells", shape.Rows, shape.Cols, MaxCells))
	}
	b := Board{shape: shape, n: DefaultWinLength}
	for _, option := range options {
		option(&b)
	}
	if b.n < MinWinLength || b.n > MaxWinLength {
		panic(fmt.Sprintf("win length %d outside [%d, %d]", b.n, MinWinLength, MaxWinLength))
	}
	return b
}

func (b *Board) Shape() Shape {
	return b.shape
}

// WinLength is the number of pieces in a row needed to win.
func (b *Board) WinLength() int {
	return b.n
}

// TileAt returns the content of p, or false if p lies outside the grid.
func (b *Board) TileAt(p Position) (Tile, bool) {
	if !b.shape.Contains(p) {
		return Empty, false
	}
	i := b.shape.index(p)
	switch {
	case b.positive.has(i):
		return Positive, true
	case b.negative.has(i):
		return Negative, true
	default:
		return Empty, true
	}
}

// Place drops m onto the board. It reports false, leaving the board
// unchanged, when the move is out of bounds, onto an occupied cell, floating
// above an empty cell, or places the Empty tile.
func (b *Board) Place(m Move) bool {
	if !b.shape.Contains(m.Pos) {
		return false
	}
	i := b.shape.index(m.Pos)
	if b.positive.has(i) || b.negative.has(i) {
		return false
	}
	if below := m.Pos.add(down, 1); below.Row < b.shape.Rows {
		if t, _ := b.TileAt(below); t == Empty {
			return false
		}
	}

	switch m.Tile {
	case Positive:
		b.positive.set(i)
	case Negative:
		b.negative.set(i)
	default:
		return false
	}
	return true
}

// Remove clears m.Tile at m.Pos regardless of the cell's content. It is the
// undo of Place for hypothetical moves.
func (b *Board) Remove(m Move) bool {
	if !b.shape.Contains(m.Pos) {
		return false
	}
	i := b.shape.index(m.Pos)
	switch m.Tile {
	case Positive:
		b.positive.clear(i)
	case Negative:
		b.negative.clear(i)
	default:
		return false
	}
	return true
}

// IsFull reports whether every column is full, i.e. the top row is occupied.
func (b *Board) IsFull() bool {
	for col := 0; col < b.shape.Cols; col++ {
		if t, _ := b.TileAt(Position{Col: col, Row: 0}); t == Empty {
			return false
		}
	}
	return true
}

// Pieces returns the number of placed pieces.
func (b *Board) Pieces() int {
	return b.positive.count() + b.negative.count()
}

// consistent reports whether the two piece sets are disjoint.
func (b *Board) consistent() bool {
	return !b.positive.intersects(&b.negative)
}

func (b Board) String() string {
	cols := b.shape.Cols
	full := "+" + strings.Repeat("-", (cols+2)*3) + "+"
	inner := "+---" + strings.Repeat("-", (cols-1)*4) + "+"

	var sb strings.Builder
	sb.WriteString(full)
	sb.WriteString("\n")
	for row := 0; row < b.shape.Rows; row++ {
		sb.WriteString("| ")
		for col := 0; col < cols; col++ {
			t, _ := b.TileAt(Position{Col: col, Row: row})
			sb.WriteString(t.String())
			sb.WriteString(" | ")
		}
		sb.WriteString("\n")
		if row != b.shape.Rows-1 {
			sb.WriteString(inner)
		} else {
			sb.WriteString(full)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
