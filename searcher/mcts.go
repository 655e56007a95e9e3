package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"connectn/game"
	"connectn/meta"
)

type Option func(m *MCTS)

// Visit holds the statistics of one root move after a search.
type Visit struct {
	Move   game.Move
	Visits int
	Wins   int64
}

// Policy lists the root moves in generator order.
type Policy []Visit

// Best returns the most visited move. Ties go to the first move.
func (p Policy) Best() game.Move {
	if len(p) == 0 {
		panic("policy has no moves")
	}
	best := p[0]
	for _, v := range p[1:] {
		if v.Visits > best.Visits {
			best = v
		}
	}
	return best.Move
}

func (p Policy) TotalVisits() int {
	return lo.SumBy(p, func(v Visit) int { return v.Visits })
}

// MCTS is a sequential Monte Carlo tree search using UCT selection and
// uniformly random playouts.
type MCTS struct {
	iterations  int
	exploration float64
	rng         *rand.Rand
	metrics     MetricsCollector
	buf         []game.Position
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithExploration sets the UCT exploration constant c.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 && !math.IsInf(c, 0) && !math.IsNaN(c) {
			m.exploration = c
		}
	}
}

// WithSeed makes playouts reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithSource(src rand.Source) Option {
	return func(m *MCTS) {
		if src != nil {
			m.rng = rand.New(src)
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: meta.EXPLORATION,
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 {
		panic("Must specify search iterations")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return m
}

// Search returns the most visited move for tile after a full search.
func (m *MCTS) Search(board game.Board, tile game.Tile) game.Move {
	policy, _ := m.Simulate(board, tile)
	return policy.Best()
}

// Simulate builds a fresh tree rooted at board with tile to move, runs the
// configured number of iterations and returns the root move statistics.
func (m *MCTS) Simulate(board game.Board, tile game.Tile) (Policy, SearchMetrics) {
	if tile == game.Empty {
		panic("cannot search for the empty tile")
	}
	t := newTree(board, tile)
	if t.root().isTerminal() {
		panic("cannot search a terminal position")
	}

	m.metrics.Start()
	for i := 0; i < m.iterations; i++ {
		leaf := m.traverse(t)
		outcome := m.playout(&t.nodes[leaf])
		t.backpropagate(leaf, outcome*tile.Sign())
		m.metrics.AddIteration()
	}
	metrics := m.metrics.Complete()

	root := t.root()
	policy := lo.Map(root.children, func(ci int, k int) Visit {
		child := &t.nodes[ci]
		return Visit{
			Move:   game.Move{Pos: root.positions[k], Tile: root.turn},
			Visits: child.visits,
			Wins:   child.wins,
		}
	})

	log.Debug().
		Int("iterations", m.iterations).
		Int("nodes", len(t.nodes)).
		Int("rootVisits", root.visits).
		Int64("rootWins", root.wins).
		Msg("mcts-search-complete")
	return policy, metrics
}

// traverse selects down fully expanded nodes and expands the first node that
// still has an unexplored move. It returns the node to simulate from.
func (m *MCTS) traverse(t *tree) int {
	i := 0
	for !t.nodes[i].isTerminal() {
		if !t.nodes[i].isFullyExpanded() {
			return t.expand(i)
		}
		i = t.bestChild(i, m.exploration)
	}
	return i
}

// playout plays uniformly random moves from n on a scratch board until the
// game ends and returns the outcome. Terminal nodes return their own outcome.
func (m *MCTS) playout(n *node) int64 {
	if n.isTerminal() {
		return n.eval.Outcome
	}

	board := n.board
	eval := n.eval
	turn := n.turn
	for !eval.Terminal {
		m.buf = game.AppendValidPositions(m.buf[:0], &board)
		if len(m.buf) == 0 {
			panic("non-terminal playout position has no legal moves")
		}
		move := game.Move{Pos: m.buf[m.rng.Intn(len(m.buf))], Tile: turn}
		if !board.Place(move) {
			panic(fmt.Sprintf("playout move %s was rejected", move))
		}
		eval = game.EvaluateAfter(&board, eval, move.Pos)
		turn = turn.Enemy()
	}
	m.metrics.AddPlayout()
	return eval.Outcome
}
