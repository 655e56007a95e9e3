package metrics

import (
	"math"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"connectn/game"
)

type AgentSummary struct {
	ID           int
	Name         string
	Games        int
	Wins         int
	Draws        int
	Losses       int
	WinRate      float64 // Draws count as half a win
	MeanMoveTime time.Duration
	StdMoveTime  time.Duration
	MeanGameLen  float64
}

// Summarize aggregates the records of an experiment per agent config, in the
// order of agents. An agent playing against its own config is only counted as
// Positive.
func Summarize(agents []AgentConfig, games []GameRecord, moves []MoveRecord) []AgentSummary {
	byID := lo.KeyBy(games, func(g GameRecord) int { return g.ID })

	return lo.Map(agents, func(a AgentConfig, _ int) AgentSummary {
		s := AgentSummary{ID: a.ID, Name: a.Name}

		var lengths []float64
		for _, g := range games {
			tile := game.Empty
			switch a.ID {
			case g.Positive:
				tile = game.Positive
			case g.Negative:
				tile = game.Negative
			}
			if tile == game.Empty {
				continue
			}
			s.Games++
			lengths = append(lengths, float64(g.TotalMoves))
			switch g.Winner {
			case tile:
				s.Wins++
			case game.Empty:
				s.Draws++
			default:
				s.Losses++
			}
		}
		if s.Games == 0 {
			return s
		}
		s.WinRate = (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(s.Games)
		s.MeanGameLen = stat.Mean(lengths, nil)

		own := lo.Filter(moves, func(m MoveRecord, _ int) bool {
			g, ok := byID[m.Game]
			if !ok {
				return false
			}
			if m.Tile == game.Positive {
				return g.Positive == a.ID
			}
			return g.Negative == a.ID
		})
		if len(own) > 0 {
			durations := lo.Map(own, func(m MoveRecord, _ int) float64 { return float64(m.Duration) })
			mean, std := stat.MeanStdDev(durations, nil)
			s.MeanMoveTime = time.Duration(mean)
			if !math.IsNaN(std) {
				s.StdMoveTime = time.Duration(std)
			}
		}
		return s
	})
}
