package metrics

import (
	"sync/atomic"
	"time"
	"uttt/game"
)

// AgentConfig describes one agent taking part in an experiment.
type AgentConfig struct {
	ID         int    `yaml:"id"`
	Type       string `yaml:"type"`       // RandomAgent or MiniMaxAgent
	Evaluation string `yaml:"evaluation"` // Evaluator name, MiniMaxAgent only
	Depth      int    `yaml:"depth"`      // Search depth, MiniMaxAgent only
	Seed       string `yaml:"seed"`       // RandomAgent only
}

type SearchMetric struct {
	Depth       int
	Evaluation  string
	Duration    time.Duration
	Nodes       int // States visited, root excluded
	Evaluations int // Evaluator calls at the depth cutoff
	Cutoffs     int // Alpha-beta prunings
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Cell
	Hash   game.StateHash // Hash of the state after the move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // Cat for a tie
	Utility        float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int, evaluation string)
	AddNode()
	AddEvaluation()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	depth       int
	evaluation  string
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(depth int, evaluation string) {
	m.startTime = time.Now()
	m.depth = depth
	m.evaluation = evaluation
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Evaluation:  m.evaluation,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, evaluation string) {}
func (m *dummyCollector) AddNode()                           {}
func (m *dummyCollector) AddEvaluation()                     {}
func (m *dummyCollector) AddCutoff()                         {}
func (m *dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
