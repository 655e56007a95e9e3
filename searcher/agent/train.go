package agent

import (
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"connectn/game"
	"connectn/searcher"
)

type trainingAgent struct {
	name        string
	tile        game.Tile
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
	last        searcher.SearchMetrics
}

// NewTrainingAgent returns an MCTS agent that samples its move from the root
// visit counts raised to 1/temperature, for varied self-play games. A zero
// seed draws a fresh one.
func NewTrainingAgent(name string, tile game.Tile, mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &trainingAgent{
		name:        name,
		tile:        tile,
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) Name() string    { return a.name }
func (a *trainingAgent) Tile() game.Tile { return a.tile }

func (a *trainingAgent) NextMove(board game.Board) (game.Move, error) {
	policy, metrics := a.mcts.Simulate(board, a.tile)
	a.last = metrics
	return sample(policy, adjustTemperature(policy, a.temperature), a.rng.Float64()), nil
}

func (a *trainingAgent) LastMetrics() searcher.SearchMetrics {
	return a.last
}

// adjustTemperature returns the move probabilities of policy at the given
// temperature. Lower temperatures sharpen the distribution.
func adjustTemperature(policy searcher.Policy, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(policy))
	for i, v := range policy {
		prob := math.Pow(float64(v.Visits), exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 {
		for i := range adjusted {
			adjusted[i] = 1.0 / float64(len(adjusted))
		}
		return adjusted
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

// sample picks the move whose cumulative probability first exceeds sampled,
// a number in [0, 1).
func sample(policy searcher.Policy, probs []float64, sampled float64) game.Move {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return policy[i].Move
		}
	}
	return policy[len(policy)-1].Move // Fallback in case of rounding errors
}
