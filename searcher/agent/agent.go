package agent

import (
	"fmt"
	"io"

	"connectn/config"
	"connectn/game"
	"connectn/player"
	"connectn/searcher"
)

type Agent interface {
	Name() string
	Tile() game.Tile
	// NextMove returns the agent's move on board. A move the board rejects
	// counts as no move made.
	NextMove(board game.Board) (game.Move, error)
}

// Reporter is implemented by agents that search. LastMetrics describes the
// search behind the most recent move.
type Reporter interface {
	LastMetrics() searcher.SearchMetrics
}

// FromConfig builds the agent cfg describes, playing tile. in and out are
// only used by human agents and may be nil otherwise.
func FromConfig(cfg config.AgentConfig, tile game.Tile, in player.LineReader, out io.Writer) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("%s (%s)", cfg.Kind, tile)
	}

	switch cfg.Kind {
	case config.KindHuman:
		if in == nil || out == nil {
			return nil, fmt.Errorf("human agent %s needs a terminal", name)
		}
		return player.NewHuman(name, tile, in, out), nil
	case config.KindMinimax:
		return NewMinimaxAgent(name, searcher.NewMinimax(tile, cfg.Depth, searcher.WithMinimaxMetrics())), nil
	case config.KindMCTS:
		options := []searcher.Option{
			searcher.WithIterations(cfg.Iterations),
			searcher.WithExploration(cfg.Exploration),
			searcher.WithMetrics(),
		}
		if cfg.Seed != 0 {
			options = append(options, searcher.WithSeed(cfg.Seed))
		}
		mcts := searcher.NewMCTS(options...)
		if cfg.Temperature > 0 {
			return NewTrainingAgent(name, tile, mcts, cfg.Temperature, cfg.Seed), nil
		}
		return NewEvaluationAgent(name, tile, mcts), nil
	case config.KindRandom:
		return NewRandomAgent(name, tile, cfg.Seed), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownAgentKind, cfg.Kind)
}
