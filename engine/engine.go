package engine

import "uttt/experiments/metrics"

type Engine interface {
	// Run plays a game till it is over or the move limit is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
