package searcher

import (
	"math"
	"uttt/game"

	"github.com/pkg/errors"
)

var (
	ErrInvalidMover = errors.New("invalid board: neither player X nor player O is to move")
	ErrNoActions    = errors.New("no legal actions to search")
)

// ChooseAction returns the action minimax with alpha-beta pruning picks for
// the player to move, searching depth plies and scoring cut-off positions
// with evaluate. Ties go to the earliest action in state.Actions().
func ChooseAction(state *game.State, depth int, evaluate game.Evaluate) (game.Cell, error) {
	s := search{evaluate: evaluate, metrics: noMetrics}
	return s.chooseAction(state, depth)
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)
