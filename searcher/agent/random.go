package agent

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"connectn/game"
)

type randomAgent struct {
	name string
	tile game.Tile
	rng  *rand.Rand
	buf  []game.Position
}

// NewRandomAgent returns an agent playing uniformly random legal moves. A zero
// seed draws a fresh one.
func NewRandomAgent(name string, tile game.Tile, seed uint64) Agent {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &randomAgent{name: name, tile: tile, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) Name() string    { return a.name }
func (a *randomAgent) Tile() game.Tile { return a.tile }

func (a *randomAgent) NextMove(board game.Board) (game.Move, error) {
	a.buf = game.AppendValidPositions(a.buf[:0], &board)
	if len(a.buf) == 0 {
		return game.Move{}, errors.New("no legal moves")
	}
	return game.Move{Pos: a.buf[a.rng.Intn(len(a.buf))], Tile: a.tile}, nil
}
