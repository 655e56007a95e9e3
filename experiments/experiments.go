package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"connectn/engine"
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/searcher/agent"
)

type Results struct {
	Dir     string
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary []metrics.AgentSummary
}

type scheduledGame struct {
	id       int
	positive metrics.AgentConfig
	negative metrics.AgentConfig
}

// Run plays setup.Games games for each matchup, swapping colours every game,
// with up to setup.Workers games at a time. Results are written under dir
// unless dir is empty.
func Run(ctx context.Context, setup metrics.Setup, dir string) (Results, error) {
	games, err := schedule(setup)
	if err != nil {
		return Results{}, err
	}
	shape := game.Shape{Rows: setup.Rows, Cols: setup.Cols}

	log.Info().Msgf("starting %s experiment with %d games...", setup.Name, len(games))

	gameRecords := make([]metrics.GameRecord, len(games))
	moveMetrics := make([][]metrics.MoveMetric, len(games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(setup.Workers, 1))
	for i, gm := range games {
		i, gm := i, gm
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gameMetric, moves, err := runGame(shape, gm)
			if err != nil {
				return fmt.Errorf("game %d: %w", gm.id, err)
			}
			gameRecords[i] = metrics.GameRecord{
				ID:         gm.id,
				Positive:   gm.positive.ID,
				Negative:   gm.negative.ID,
				GameMetric: gameMetric,
			}
			moveMetrics[i] = moves
			log.Info().Msgf("completed game %d of %d with winner: %s", gm.id, len(games), gameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	moveRecords := []metrics.MoveRecord{}
	for i, moves := range moveMetrics {
		for _, mm := range moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: gameRecords[i].ID, MoveMetric: mm})
		}
	}

	results := Results{
		Games:   gameRecords,
		Moves:   moveRecords,
		Summary: metrics.Summarize(setup.Agents, gameRecords, moveRecords),
	}
	for _, s := range results.Summary {
		log.Info().
			Int("id", s.ID).
			Str("name", s.Name).
			Int("games", s.Games).
			Int("wins", s.Wins).
			Int("draws", s.Draws).
			Float64("winRate", s.WinRate).
			Dur("meanMoveTime", s.MeanMoveTime).
			Msg("agent-summary")
	}
	log.Info().Msgf("completed %s experiment", setup.Name)

	if dir == "" {
		return results, nil
	}
	results.Dir, err = write(dir, setup, results)
	return results, err
}

// schedule lists every game of setup with its colours assigned.
func schedule(setup metrics.Setup) ([]scheduledGame, error) {
	configs := make(map[int]metrics.AgentConfig, len(setup.Agents))
	for _, c := range setup.Agents {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("agent config %d: %w", c.ID, err)
		}
		configs[c.ID] = c
	}

	var games []scheduledGame
	for mi, matchup := range setup.MatchUps {
		first, ok1 := configs[matchup[0]]
		second, ok2 := configs[matchup[1]]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("matchup %d refers to unknown agent configs %v", mi+1, matchup)
		}
		for i := 0; i < setup.Games; i++ {
			gm := scheduledGame{id: len(games) + 1, positive: first, negative: second}
			if i%2 == 1 {
				gm.positive, gm.negative = second, first
			}
			games = append(games, gm)
		}
	}
	return games, nil
}

// runGame executes a single game between fresh agents built from the game's
// configs. Configured seeds are offset by the game ID so that games differ
// but stay reproducible.
func runGame(shape game.Shape, gm scheduledGame) (metrics.GameMetric, []metrics.MoveMetric, error) {
	positive, err := agent.FromConfig(seeded(gm.positive, gm.id).AgentConfig, game.Positive, nil, nil)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	negative, err := agent.FromConfig(seeded(gm.negative, gm.id).AgentConfig, game.Negative, nil, nil)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocalEngine(positive, negative, shape)
	result, moves, err := e.Run()
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return result.Game, moves, nil
}

func seeded(c metrics.AgentConfig, id int) metrics.AgentConfig {
	if c.Seed != 0 {
		c.Seed += uint64(id)
	}
	return c
}

func write(dir string, setup metrics.Setup, results Results) (string, error) {
	writer, err := metrics.NewWriter(dir, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteSetup(setup); err != nil {
		return "", fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteAgentConfigs(setup.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
