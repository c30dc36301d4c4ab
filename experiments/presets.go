package experiments

import (
	"fmt"
	"uttt/agent"
	"uttt/experiments/metrics"
	"uttt/meta"
)

// Presets builds the named built-in experiments for the given number of
// games per match up.
var Presets = map[string]func(games int) Setup{
	"depth":      DepthSetup,
	"evaluation": EvaluationSetup,
}

// DepthSetup pairs minimax agents of increasing depth against a random
// baseline, once as X and once as O.
func DepthSetup(games int) Setup {
	baseline := metrics.AgentConfig{ID: 0, Type: agent.RandomAgentType, Seed: meta.DEFAULT_SEED}
	configs := []metrics.AgentConfig{baseline}
	matchUps := []MatchUp{}
	for depth := 1; depth <= meta.DEFAULT_DEPTH; depth++ {
		config := metrics.AgentConfig{
			ID:         depth,
			Type:       agent.MiniMaxAgentType,
			Evaluation: meta.DEFAULT_EVALUATION,
			Depth:      depth,
		}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{X: config.ID, O: baseline.ID}, MatchUp{X: baseline.ID, O: config.ID})
	}

	return Setup{Name: "depth", Games: games, Agents: configs, MatchUps: matchUps}
}

// EvaluationSetup pairs each evaluator against count_wins at a fixed depth.
func EvaluationSetup(games int) Setup {
	const depth = 2
	baseline := metrics.AgentConfig{ID: 0, Type: agent.MiniMaxAgentType, Evaluation: meta.DEFAULT_EVALUATION, Depth: depth}
	configs := []metrics.AgentConfig{baseline}
	matchUps := []MatchUp{}
	evaluations := []string{
		"cell_weight_evaluation",
		"near_wins",
		"nested_near_wins",
		"shallow_simple_evaluation",
		"deep_simple_evaluation",
	}
	for i, evaluation := range evaluations {
		config := metrics.AgentConfig{ID: i + 1, Type: agent.MiniMaxAgentType, Evaluation: evaluation, Depth: depth}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{X: config.ID, O: baseline.ID}, MatchUp{X: baseline.ID, O: config.ID})
	}

	return Setup{Name: fmt.Sprintf("evaluation_depth_%d", depth), Games: games, Agents: configs, MatchUps: matchUps}
}
