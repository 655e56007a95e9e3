package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/meta"
	"connectn/searcher/agent"
)

type Option func(e *LocalEngine)

// WithOutput renders the board to w after every placement.
func WithOutput(w io.Writer) Option {
	return func(e *LocalEngine) {
		e.out = w
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *LocalEngine) {
		e.logger = l
	}
}

func WithBoardOptions(options ...game.BoardOption) Option {
	return func(e *LocalEngine) {
		e.boardOptions = append(e.boardOptions, options...)
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// LocalEngine drives one game between two in-process agents. It owns the
// only board of the game; agents receive copies.
type LocalEngine struct {
	positive     agent.Agent
	negative     agent.Agent
	shape        game.Shape
	boardOptions []game.BoardOption
	maxTurns     int
	out          io.Writer
	logger       zerolog.Logger
	collector    metrics.Collector
}

func NewLocalEngine(positive, negative agent.Agent, shape game.Shape, options ...Option) *LocalEngine {
	if positive.Tile() != game.Positive || negative.Tile() != game.Negative {
		panic("agents must play positive and negative respectively")
	}
	e := &LocalEngine{
		positive:  positive,
		negative:  negative,
		shape:     shape,
		maxTurns:  meta.MAX_TURNS,
		logger:    log.Logger,
		collector: metrics.NewCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) agent(t game.Tile) agent.Agent {
	if t == game.Positive {
		return e.positive
	}
	return e.negative
}

// Run executes the game loop until the game ends or the turn limit is hit.
// Positive moves first. A rejected move is no move made and the same agent
// moves again; every attempt uses up a turn. An agent error ends the game.
func (e *LocalEngine) Run() (Result, []metrics.MoveMetric, error) {
	board := game.NewBoard(e.shape, e.boardOptions...)
	eval := game.Evaluate(&board)
	e.collector.Start(e.positive.Name(), e.negative.Name())

	e.logger.Info().Msgf("%s is starting", e.positive.Name())
	e.render(&board)

	turn := game.Positive
	for turns := 0; !eval.Terminal && turns < e.maxTurns; turns++ {
		a := e.agent(turn)

		start := time.Now()
		move, err := a.NextMove(board)
		elapsed := time.Since(start)
		if err != nil {
			gameMetric, moveMetrics := e.collector.Complete(eval)
			return Result{Board: board, Eval: eval, Game: gameMetric}, moveMetrics,
				fmt.Errorf("agent %s failed to move: %w", a.Name(), err)
		}

		if move.Tile != turn || !board.Place(move) {
			e.logger.Warn().Str("agent", a.Name()).Str("move", move.String()).Msg("move-rejected")
			e.collector.AddRejected()
			continue
		}
		eval = game.EvaluateAfter(&board, eval, move.Pos)

		mm := metrics.MoveMetric{
			Step:     board.Pieces(),
			Tile:     turn,
			Agent:    a.Name(),
			Move:     move,
			Duration: elapsed,
		}
		if r, ok := a.(agent.Reporter); ok {
			sm := r.LastMetrics()
			mm.Iterations, mm.Playouts, mm.Nodes = sm.Iterations, sm.Playouts, sm.Nodes
		}
		e.collector.AddMove(mm)

		e.logger.Debug().
			Str("agent", a.Name()).
			Str("move", move.String()).
			Int64("score", eval.Score).
			Dur("elapsed", elapsed).
			Msg("move-played")
		e.render(&board)
		turn = turn.Enemy()
	}

	gameMetric, moveMetrics := e.collector.Complete(eval)
	result := Result{Board: board, Eval: eval, Game: gameMetric}
	if eval.Terminal {
		e.logger.Info().Msgf("game ended after %d moves: %s", gameMetric.TotalMoves, result)
	} else {
		e.logger.Info().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	}
	if e.out != nil {
		fmt.Fprintln(e.out, result)
	}
	return result, moveMetrics, nil
}

func (e *LocalEngine) render(b *game.Board) {
	if e.out == nil {
		return
	}
	fmt.Fprint(e.out, b.String())
}
