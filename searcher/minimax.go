package searcher

import (
	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/pkg/errors"
)

type Option func(m *MiniMax)

// MiniMax is a depth-bounded alpha-beta searcher. Its metrics collector is
// reset on every search, so a MiniMax must not be shared between goroutines.
type MiniMax struct {
	depth      int
	evaluation string
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

// WithEvaluationFn sets the evaluator used at the depth cutoff. The name is
// only reported in metrics.
func WithEvaluationFn(name string, evaluate game.Evaluate) Option {
	return func(m *MiniMax) {
		if evaluate != nil {
			m.evaluation = name
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MiniMax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMiniMax(depth int, options ...Option) *MiniMax {
	if depth < 0 {
		panic("search depth cannot be negative")
	}
	m := &MiniMax{ // Default values
		depth:      depth,
		evaluation: "count_wins",
		evaluate:   game.CountWins,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MiniMax) Depth() int {
	return m.depth
}

// FindMove searches state and returns the chosen move with the search metrics.
func (m *MiniMax) FindMove(state *game.State) (game.Cell, metrics.SearchMetric, error) {
	m.metrics.Start(m.depth, m.evaluation)
	s := search{evaluate: m.evaluate, metrics: m.metrics}
	move, err := s.chooseAction(state, m.depth)
	return move, m.metrics.Complete(), err
}

var noMetrics = metrics.NewDummyCollector()

type search struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (s search) chooseAction(state *game.State, depth int) (game.Cell, error) {
	mover := state.ToMove()
	if mover != game.X && mover != game.O {
		return game.Cell{}, errors.Wrapf(ErrInvalidMover, "%s to move", mover)
	}

	actions := state.Actions()
	if len(actions) == 0 {
		return game.Cell{}, ErrNoActions
	}

	var best game.Cell
	found := false
	alpha, beta := negInf, posInf

	if mover == game.X {
		maxValue := negInf
		for _, action := range actions {
			value, err := s.minValue(state.Play(action), depth-1, alpha, beta)
			if err != nil {
				return game.Cell{}, err
			}
			if !found || value > maxValue {
				best, maxValue, found = action, value, true
			}
			alpha = max(alpha, maxValue)
		}
		return best, nil
	}

	minValue := posInf
	for _, action := range actions {
		value, err := s.maxValue(state.Play(action), depth-1, alpha, beta)
		if err != nil {
			return game.Cell{}, err
		}
		if !found || value < minValue {
			best, minValue, found = action, value, true
		}
		beta = min(beta, minValue)
	}
	return best, nil
}

// maxValue is the value of state for X to move. It returns early once the
// value exceeds beta, since O will never let the game reach state.
func (s search) maxValue(state *game.State, depth int, alpha, beta float64) (float64, error) {
	if value, done, err := s.leaf(state, depth); done {
		return value, err
	}

	v := negInf
	for _, action := range state.Actions() {
		value, err := s.minValue(state.Play(action), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = max(v, value)
		if v > beta {
			s.metrics.AddCutoff()
			return v, nil
		}
		alpha = max(alpha, v)
	}
	return v, nil
}

// minValue mirrors maxValue for O to move.
func (s search) minValue(state *game.State, depth int, alpha, beta float64) (float64, error) {
	if value, done, err := s.leaf(state, depth); done {
		return value, err
	}

	v := posInf
	for _, action := range state.Actions() {
		value, err := s.maxValue(state.Play(action), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = min(v, value)
		if v < alpha {
			s.metrics.AddCutoff()
			return v, nil
		}
		beta = min(beta, v)
	}
	return v, nil
}

// leaf scores terminal states exactly and cut-off states with the evaluator.
func (s search) leaf(state *game.State, depth int) (float64, bool, error) {
	s.metrics.AddNode()

	if state.IsTerminal() {
		value, err := state.Utility()
		return value, true, err
	}

	if depth <= 0 {
		s.metrics.AddEvaluation()
		value, err := s.evaluate(state)
		if err != nil {
			return 0, true, errors.Wrap(err, "evaluating cut-off state")
		}
		return value, true, nil
	}

	return 0, false, nil
}
