package engine

import (
	"connectn/experiments/metrics"
	"connectn/game"
)

type Engine interface {
	// Run plays a game till there's a winner, a draw or the turn limit is reached
	Run() (Result, []metrics.MoveMetric, error)
}

type Result struct {
	Board game.Board
	Eval  game.Evaluation // Not terminal when the turn limit ended the game
	Game  metrics.GameMetric
}

func (r Result) Winner() game.Tile {
	return r.Eval.Winner()
}

func (r Result) String() string {
	switch {
	case !r.Eval.Terminal:
		return "no result"
	case r.Winner() == game.Positive:
		return r.Game.Positive + " won"
	case r.Winner() == game.Negative:
		return r.Game.Negative + " won"
	default:
		return "draw"
	}
}
