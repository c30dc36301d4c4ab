package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"
)

type miniMaxAgent struct {
	minimax *searcher.MiniMax
}

// NewMiniMaxAgent returns an agent playing the move found by minimax.
func NewMiniMaxAgent(minimax *searcher.MiniMax) Agent {
	return miniMaxAgent{minimax: minimax}
}

func (a miniMaxAgent) FindMove(state *game.State) (game.Cell, metrics.SearchMetric, error) {
	return a.minimax.FindMove(state)
}
