package metrics

import (
	"time"

	"connectn/config"
	"connectn/game"
)

type AgentConfig struct {
	ID                 int `yaml:"id"`
	config.AgentConfig `yaml:",inline"`
}

type MoveMetric struct {
	Step       int // Placed pieces including this move
	Tile       game.Tile
	Agent      string
	Move       game.Move
	Duration   time.Duration // Wall time of the agent's decision
	Iterations int64
	Playouts   int64
	Nodes      int64
}

type GameMetric struct {
	Positive   string // Agent name
	Negative   string // Agent name
	Winner     game.Tile
	Terminal   bool // False when the turn limit ended the game
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Rejected   int
}

// Collector gathers the metrics of a single game.
type Collector interface {
	Start(positive, negative string)
	AddMove(m MoveMetric)
	AddRejected()
	Complete(eval game.Evaluation) (GameMetric, []MoveMetric)
}

type collector struct {
	game  GameMetric
	moves []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(positive, negative string) {
	c.game = GameMetric{Positive: positive, Negative: negative, StartTime: time.Now()}
	c.moves = nil
}

func (c *collector) AddMove(m MoveMetric) {
	c.moves = append(c.moves, m)
}

func (c *collector) AddRejected() {
	c.game.Rejected++
}

func (c *collector) Complete(eval game.Evaluation) (GameMetric, []MoveMetric) {
	c.game.EndTime = time.Now()
	c.game.Duration = c.game.EndTime.Sub(c.game.StartTime)
	c.game.Terminal = eval.Terminal
	c.game.Winner = eval.Winner()
	c.game.TotalMoves = len(c.moves)
	return c.game, c.moves
}
