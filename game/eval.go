package game

import "math"

var (
	down = Position{Col: 0, Row: 1}
	// One direction per axis: horizontal, vertical and both diagonals.
	axes = [4]Position{{Col: 1, Row: 0}, down, {Col: 1, Row: -1}, {Col: 1, Row: 1}}
)

// Evaluation is the result of evaluating a board. Outcome is only meaningful
// when Terminal is set: +1 or -1 for the winning tile, 0 for a draw. Score is
// the heuristic value of a live position, or the extreme int64 value of the
// winner for a won one.
type Evaluation struct {
	Terminal bool
	Outcome  int64
	Score    int64
}

// Winner returns the winning tile, or Empty for draws and live positions.
func (e Evaluation) Winner() Tile {
	if !e.Terminal {
		return Empty
	}
	return Tile(e.Outcome)
}

func win(t Tile) Evaluation {
	if t == Positive {
		return Evaluation{Terminal: true, Outcome: 1, Score: math.MaxInt64}
	}
	return Evaluation{Terminal: true, Outcome: -1, Score: math.MinInt64}
}

var draw = Evaluation{Terminal: true, Outcome: 0, Score: 0}

// Evaluate scans every occupied cell for a win, then for a draw, and
// otherwise scores the position heuristically: every cell adds 10^run for
// each axis, signed by its tile, where run is the length of the same-tile run
// through the cell.
func Evaluate(b *Board) Evaluation {
	var score int64
	for row := 0; row < b.shape.Rows; row++ {
		for col := 0; col < b.shape.Cols; col++ {
			p := Position{Col: col, Row: row}
			t, _ := b.TileAt(p)
			if t == Empty {
				continue
			}
			for _, d := range axes {
				run := 1 + b.count(p, d, t)
				if run >= b.n {
					return win(t)
				}
				run += b.count(p, Position{Col: -d.Col, Row: -d.Row}, t)
				if run >= b.n {
					return win(t)
				}
				score += pow10(run) * t.Sign()
			}
		}
	}

	if b.IsFull() {
		return draw
	}
	return Evaluation{Score: score}
}

// EvaluateAfter evaluates b incrementally after a piece was placed at last,
// given prev, the evaluation of the board before that placement. Only runs
// through last are inspected. The result equals Evaluate(b) whenever prev
// is exact.
func EvaluateAfter(b *Board, prev Evaluation, last Position) Evaluation {
	t, ok := b.TileAt(last)
	if prev.Terminal || !ok || t == Empty {
		return Evaluate(b)
	}

	delta := int64(0)
	for _, d := range axes {
		forward := b.count(last, d, t)
		backward := b.count(last, Position{Col: -d.Col, Row: -d.Row}, t)
		run := 1 + forward + backward
		if run >= b.n {
			return win(t)
		}
		// The runs on either side merge through last. Every cell of a run
		// contributes 10^run, so a run of length k is worth k*10^k.
		delta += runWeight(run) - runWeight(forward) - runWeight(backward)
	}

	if b.IsFull() {
		return draw
	}
	return Evaluation{Score: prev.Score + delta*t.Sign()}
}

// count returns how many consecutive t tiles follow p in direction d, capped
// below the win length.
func (b *Board) count(p Position, d Position, t Tile) int {
	n := 0
	for i := 1; i < b.n; i++ {
		cur, ok := b.TileAt(p.add(d, i))
		if !ok || cur != t {
			break
		}
		n++
	}
	return n
}

func runWeight(k int) int64 {
	return int64(k) * pow10(k)
}

func pow10(k int) int64 {
	v := int64(1)
	for i := 0; i < k; i++ {
		v *= 10
	}
	return v
}
