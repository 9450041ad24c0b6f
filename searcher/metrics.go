package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime  time.Time
	Duration   time.Duration
	Goroutines int
	Depth      int
	Candidates int64
	Nodes      int64
}

type MetricsCollector interface {
	Start(goroutines, depth int)
	AddCandidate()
	AddNode()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime  time.Time
	goroutines int
	depth      int
	candidates atomic.Int64
	nodes      atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.candidates.Store(0)
	m.nodes.Store(0)
}

func (m *metricsCollector) AddCandidate() {
	m.candidates.Add(1)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Candidates: m.candidates.Load(),
		Nodes:      m.nodes.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int, int)          {}
func (m *noMetricsCollector) AddCandidate()           {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
