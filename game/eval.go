package game

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrEvaluationOverflow = errors.New("evaluation reached the utility of a won game")
	ErrUnknownEvaluator   = errors.New("unknown evaluation function")
)

// subBoardNearWinWeight keeps nine sub-boards full of near-wins (6 each)
// worth less than a single near-win on the meta-board.
const subBoardNearWinWeight = 0.16

var evaluators = map[string]Evaluate{
	"count_wins":                CountWins,
	"cell_weight_evaluation":    CellWeight,
	"near_wins":                 NearWins,
	"nested_near_wins":          NestedNearWins,
	"shallow_simple_evaluation": ShallowSimple,
	"deep_simple_evaluation":    DeepSimple,
	"zero":                      Zero,
}

// LookupEvaluator returns the evaluation function registered under name.
func LookupEvaluator(name string) (Evaluate, error) {
	evaluate, ok := evaluators[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEvaluator, "%q", name)
	}
	return evaluate, nil
}

// CountWins sums the closed sub-boards: +1 per X win, -1 per O win, 0 per tie.
func CountWins(s *State) (float64, error) {
	score := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			score += s.scores[r][c].Value()
		}
	}
	return score, nil
}

// CellWeight weights each closed sub-board by the number of meta-board
// lines it belongs to: 4 for the center, 3 for corners and 2 for edges.
func CellWeight(s *State) (float64, error) {
	score := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			value := s.scores[r][c].Value()
			switch {
			case r == 1 && c == 1:
				score += 4 * value
			case r == 1 || c == 1:
				score += 2 * value
			default:
				score += 3 * value
			}
		}
	}
	return score, nil
}

// NearWins counts meta-board lines holding two marks of one player and no
// mark of the other, +16 for X and -16 for O.
func NearWins(s *State) (float64, error) {
	return 16 * float64(streaks(s.scores.at, Cell{}, 2)), nil
}

// NestedNearWins adds the near-wins of every sub-board to NearWins.
func NestedNearWins(s *State) (float64, error) {
	score, _ := NearWins(s)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			origin := Cell{Row: r * 3, Column: c * 3}
			score += float64(streaks(s.board.at, origin, 2)) * subBoardNearWinWeight
		}
	}
	return score, nil
}

// ShallowSimple scores meta-board near-wins ten times as much as lines
// holding a single mark.
func ShallowSimple(s *State) (float64, error) {
	return 10*float64(streaks(s.scores.at, Cell{}, 2)) + float64(streaks(s.scores.at, Cell{}, 1)), nil
}

// DeepSimple adds the streaks of every sub-board to ShallowSimple. It fails
// once its magnitude reaches Win, since its weights assume it never outranks
// a decided game.
func DeepSimple(s *State) (float64, error) {
	score, _ := ShallowSimple(s)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			origin := Cell{Row: r * 3, Column: c * 3}
			score += float64(streaks(s.board.at, origin, 2)) * subBoardNearWinWeight
			score += float64(streaks(s.board.at, origin, 1)) * subBoardNearWinWeight
		}
	}

	return bounded(score)
}

func bounded(score float64) (float64, error) {
	if math.Abs(score) >= Win {
		return 0, errors.Wrapf(ErrEvaluationOverflow, "score %.2f", score)
	}
	return score, nil
}

func Zero(s *State) (float64, error) {
	return 0, nil
}

// streaks counts the lines of the 3x3 region at origin whose marks sum to
// size (+1 each) or -size (-1 each). A line containing a Cat counts for nobody.
func streaks(g grid, origin Cell, size int) int {
	streak := func(row, column, dRow, dColumn int) int {
		sum := 0
		for i := 0; i < 3; i++ {
			switch mark := g(row+i*dRow, column+i*dColumn); mark {
			case Empty:
				continue
			case Cat:
				return 0
			default:
				sum += int(mark.Value())
			}
		}
		switch sum {
		case size:
			return 1
		case -size:
			return -1
		default:
			return 0
		}
	}

	value := 0
	for i := 0; i < 3; i++ {
		value += streak(origin.Row+i, origin.Column, 0, 1)
		value += streak(origin.Row, origin.Column+i, 1, 0)
	}
	value += streak(origin.Row, origin.Column, 1, 1)
	value += streak(origin.Row+2, origin.Column, -1, 1)
	return value
}
