package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"connectn/game"
)

type MinimaxOption func(m *Minimax)

// WithMinimaxMetrics counts visited nodes and times each search.
func WithMinimaxMetrics() MinimaxOption {
	return func(m *Minimax) {
		m.metrics = NewMetricsCollector()
	}
}

// Minimax is a depth-bounded alpha-beta search. Scores are absolute: Positive
// maximises and Negative minimises, so the searching tile is always the
// maximiser in its own frame.
type Minimax struct {
	tile    game.Tile
	depth   int
	metrics MetricsCollector
}

func NewMinimax(tile game.Tile, depth int, options ...MinimaxOption) *Minimax {
	if tile == game.Empty {
		panic("cannot search for the empty tile")
	}
	if depth < 1 {
		panic("Must specify a search depth of at least 1")
	}
	m := &Minimax{
		tile:    tile,
		depth:   depth,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Tile() game.Tile {
	return m.tile
}

func (m *Minimax) Depth() int {
	return m.depth
}

// Search returns the best move for the searcher's tile and its score. The
// search runs on a private copy of board.
func (m *Minimax) Search(board game.Board) (game.Move, int64, SearchMetrics) {
	eval := game.Evaluate(&board)
	if eval.Terminal {
		panic("cannot search a terminal position")
	}

	m.metrics.Start()
	score, move := m.alphabeta(&board, math.MinInt64, math.MaxInt64, m.depth, false, eval)
	metrics := m.metrics.Complete()

	log.Debug().
		Int("depth", m.depth).
		Str("move", move.String()).
		Int64("score", score).
		Int64("nodes", metrics.Nodes).
		Msg("minimax-search-complete")
	return move, score, metrics
}

// alphabeta searches b to the given depth. isEnemy is set on plies where the
// opponent of the searcher moves. eval is the evaluation of b. Every move is
// placed and removed again before the next sibling is explored.
func (m *Minimax) alphabeta(b *game.Board, α, β int64, depth int, isEnemy bool, eval game.Evaluation) (int64, game.Move) {
	m.metrics.AddNode()
	if depth == 0 || eval.Terminal {
		return eval.Score, game.Move{}
	}

	turn := m.tile
	if isEnemy {
		turn = turn.Enemy()
	}
	maximising := turn == game.Positive

	positions := game.ValidPositions(b)
	if len(positions) == 0 {
		panic("non-terminal node has no legal moves")
	}

	best := game.Move{Pos: positions[0], Tile: turn}
	bestScore := int64(math.MaxInt64)
	if maximising {
		bestScore = math.MinInt64
	}

	for _, p := range positions {
		move := game.Move{Pos: p, Tile: turn}
		if !b.Place(move) {
			panic(fmt.Sprintf("generated move %s was rejected", move))
		}
		score, _ := m.alphabeta(b, α, β, depth-1, !isEnemy, game.EvaluateAfter(b, eval, p))
		b.Remove(move)

		if maximising {
			if score > bestScore {
				bestScore, best = score, move
			}
			α = max(α, bestScore)
		} else {
			if score < bestScore {
				bestScore, best = score, move
			}
			β = min(β, bestScore)
		}
		if β <= α {
			break
		}
	}
	return bestScore, best
}
