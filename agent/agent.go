package agent

import (
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"

	"github.com/pkg/errors"
)

var ErrUnknownAgent = errors.New("unknown agent type")

const (
	RandomAgentType  = "RandomAgent"
	MiniMaxAgentType = "MiniMaxAgent"
)

type Agent interface {
	// FindMove returns a move for the player to move and performance metrics (if collected) from the search
	FindMove(state *game.State) (game.Cell, metrics.SearchMetric, error)
}

// New builds the agent described by config.
func New(config metrics.AgentConfig) (Agent, error) {
	switch config.Type {
	case RandomAgentType:
		return NewRandomAgent(config.Seed), nil
	case MiniMaxAgentType:
		evaluate, err := game.LookupEvaluator(config.Evaluation)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d", config.ID)
		}
		if config.Depth < 0 {
			return nil, errors.Errorf("agent %d: negative search depth %d", config.ID, config.Depth)
		}
		return NewMiniMaxAgent(searcher.NewMiniMax(
			config.Depth,
			searcher.WithEvaluationFn(config.Evaluation, evaluate),
			searcher.WithMetrics(),
		)), nil
	default:
		return nil, errors.Wrapf(ErrUnknownAgent, "%q", config.Type)
	}
}
