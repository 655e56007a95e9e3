package experiments

import (
	"errors"
	"fmt"
	"strconv"

	"connectn/config"
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/meta"
)

const (
	DepthLadder     = "depth-ladder"
	IterationLadder = "iteration-ladder"
)

var ErrHumanAgent = errors.New("experiments cannot include human agents")

type Params struct {
	Shape   game.Shape
	Games   int // Per matchup
	Workers int
}

func (p Params) setup(name string, agents []metrics.AgentConfig, matchUps [][2]int) metrics.Setup {
	return metrics.Setup{
		Name:     name,
		Rows:     p.Shape.Rows,
		Cols:     p.Shape.Cols,
		Games:    p.Games,
		Workers:  p.Workers,
		Agents:   agents,
		MatchUps: matchUps,
	}
}

// Matchup pits two configured agents against each other.
func Matchup(name string, p Params, first, second config.AgentConfig) metrics.Setup {
	agents := []metrics.AgentConfig{{ID: 1, AgentConfig: first}, {ID: 2, AgentConfig: second}}
	return p.setup(name, agents, [][2]int{{1, 2}})
}

// Preset returns the named built-in experiment.
func Preset(name string, p Params) (metrics.Setup, bool) {
	switch name {
	case DepthLadder:
		// Each matchup pairs the random baseline with a deeper minimax agent
		baseline := metrics.AgentConfig{ID: 0, AgentConfig: config.AgentConfig{Kind: config.KindRandom, Name: "random", Seed: 1}}
		agents := []metrics.AgentConfig{baseline}
		matchUps := [][2]int{}
		for depth := 1; depth <= 5; depth++ {
			agents = append(agents, metrics.AgentConfig{ID: depth, AgentConfig: config.AgentConfig{
				Kind: config.KindMinimax, Name: "minimax-" + strconv.Itoa(depth), Depth: depth,
			}})
			matchUps = append(matchUps, [2]int{baseline.ID, depth})
		}
		return p.setup(name, agents, matchUps), true
	case IterationLadder:
		// Each matchup pairs a fixed minimax baseline with an MCTS agent of growing budget
		baseline := metrics.AgentConfig{ID: 0, AgentConfig: config.AgentConfig{Kind: config.KindMinimax, Name: "minimax-4", Depth: 4}}
		agents := []metrics.AgentConfig{baseline}
		matchUps := [][2]int{}
		for i, iterations := range []int{1000, 5000, 25000, meta.ITERATIONS} {
			agents = append(agents, metrics.AgentConfig{ID: i + 1, AgentConfig: config.AgentConfig{
				Kind: config.KindMCTS, Name: "mcts-" + strconv.Itoa(iterations), Iterations: iterations,
				Exploration: meta.EXPLORATION, Seed: uint64(i + 1),
			}})
			matchUps = append(matchUps, [2]int{baseline.ID, i + 1})
		}
		return p.setup(name, agents, matchUps), true
	}
	return metrics.Setup{}, false
}

// Resolve returns the preset called name, or otherwise a matchup between
// first and second. Only matchups use the given agents, so only they are
// checked for humans.
func Resolve(name string, p Params, first, second config.AgentConfig) (metrics.Setup, error) {
	if setup, ok := Preset(name, p); ok {
		return setup, nil
	}
	for _, a := range []config.AgentConfig{first, second} {
		if a.Kind == config.KindHuman {
			return metrics.Setup{}, fmt.Errorf("%w: %s", ErrHumanAgent, a.Name)
		}
	}
	return Matchup(name, p, first, second), nil
}
