package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Iterations int64 // MCTS iterations
	Playouts   int64 // MCTS random playouts, excluding iterations ending on a known terminal node
	Nodes      int64 // Minimax nodes visited
}

type MetricsCollector interface {
	Start()
	AddIteration()
	AddPlayout()
	AddNode()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime  time.Time
	iterations atomic.Int64
	playouts   atomic.Int64
	nodes      atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.iterations.Store(0)
	m.playouts.Store(0)
	m.nodes.Store(0)
}

func (m *metricsCollector) AddIteration() {
	m.iterations.Add(1)
}

func (m *metricsCollector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Iterations: m.iterations.Load(),
		Playouts:   m.playouts.Load(),
		Nodes:      m.nodes.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddIteration()           {}
func (m *noMetricsCollector) AddPlayout()             {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
