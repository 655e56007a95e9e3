package agent

import (
	"github.com/rs/zerolog/log"

	"connectn/game"
	"connectn/searcher"
)

type minimaxAgent struct {
	name    string
	minimax *searcher.Minimax
	tile    game.Tile
	last    searcher.SearchMetrics
}

// NewMinimaxAgent returns an agent playing the minimax searcher's tile.
func NewMinimaxAgent(name string, minimax *searcher.Minimax) Agent {
	return &minimaxAgent{name: name, minimax: minimax, tile: minimax.Tile()}
}

func (a *minimaxAgent) Name() string    { return a.name }
func (a *minimaxAgent) Tile() game.Tile { return a.tile }

func (a *minimaxAgent) NextMove(board game.Board) (game.Move, error) {
	move, score, metrics := a.minimax.Search(board)
	a.last = metrics
	log.Debug().Str("agent", a.name).Str("move", move.String()).Int64("score", score).Msg("minimax-move")
	return move, nil
}

func (a *minimaxAgent) LastMetrics() searcher.SearchMetrics {
	return a.last
}

type evaluationAgent struct {
	name string
	tile game.Tile
	mcts *searcher.MCTS
	last searcher.SearchMetrics
}

// NewEvaluationAgent returns an MCTS agent that always plays the most
// visited move.
func NewEvaluationAgent(name string, tile game.Tile, mcts *searcher.MCTS) Agent {
	return &evaluationAgent{name: name, tile: tile, mcts: mcts}
}

func (a *evaluationAgent) Name() string    { return a.name }
func (a *evaluationAgent) Tile() game.Tile { return a.tile }

func (a *evaluationAgent) NextMove(board game.Board) (game.Move, error) {
	policy, metrics := a.mcts.Simulate(board, a.tile)
	a.last = metrics
	return findMax(policy), nil
}

func (a *evaluationAgent) LastMetrics() searcher.SearchMetrics {
	return a.last
}

func findMax(policy searcher.Policy) game.Move {
	move := policy.Best()
	log.Debug().
		Str("move", move.String()).
		Int("visits", policy.TotalVisits()).
		Msg("mcts-move")
	return move
}
