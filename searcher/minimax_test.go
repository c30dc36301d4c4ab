package searcher

import (
	"math"
	"math/rand/v2"
	"testing"
	"uttt/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// minimax is plain minimax without pruning, counting visited states.
func minimax(state *game.State, depth int, evaluate game.Evaluate, nodes *int) float64 {
	*nodes++
	if state.IsTerminal() {
		utility, _ := state.Utility()
		return utility
	}
	if depth <= 0 {
		value, _ := evaluate(state)
		return value
	}

	maximizing := state.ToMove() == game.X
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, action := range state.Actions() {
		value := minimax(state.Play(action), depth-1, evaluate, nodes)
		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best
}

func minimaxAction(state *game.State, depth int, evaluate game.Evaluate) (game.Cell, int) {
	nodes := 0
	maximizing := state.ToMove() == game.X
	var best game.Cell
	var bestValue float64
	for i, action := range state.Actions() {
		value := minimax(state.Play(action), depth-1, evaluate, &nodes)
		if i == 0 || (maximizing && value > bestValue) || (!maximizing && value < bestValue) {
			best, bestValue = action, value
		}
	}
	return best, nodes
}

// scatterEvaluation spreads positions over many distinct scores so that ties
// between actions are rare.
func scatterEvaluation(s *game.State) (float64, error) {
	board := s.Board()
	h := 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			h = (h*31 + int(board[r][c])*(r*9+c+7)) % 10007
		}
	}
	return float64(h%2001)/20 - 50, nil
}

// randomPosition plays up to moves random legal moves from the initial state.
func randomPosition(r *rand.Rand, moves int) *game.State {
	s := game.NewGame()
	for i := 0; i < moves && !s.IsTerminal(); i++ {
		actions := s.Actions()
		s = s.Play(actions[r.IntN(len(actions))])
	}
	return s
}

// nearMetaWin has player owning sub-boards (0,0) and (0,1) and two marks on
// the bottom row of (0,2), with player forced into (0,2).
func nearMetaWin(player game.Player) *game.State {
	opponent := player.Opponent()
	var board game.Board
	for c := 0; c < 6; c++ {
		board[0][c] = player
	}
	board[2][6], board[2][7] = player, player
	board[1][0], board[1][3], board[0][6] = opponent, opponent, opponent
	board[3][5] = opponent
	scores := game.Scores{{player, player, game.Empty}}
	previous := game.Cell{Row: 3, Column: 5}
	return game.NewState(board, scores, player, &previous)
}

func TestChooseAction(t *testing.T) {
	t.Run("X takes the winning move", func(t *testing.T) {
		s := nearMetaWin(game.X)
		require.NotEqual(t, game.Cell{Row: 2, Column: 8}, s.Actions()[0], "Winning move should not win a tie")

		for depth := 1; depth <= 3; depth++ {
			action, err := ChooseAction(s, depth, game.Zero)
			require.NoError(t, err)
			require.Equal(t, game.Cell{Row: 2, Column: 8}, action, "depth %d", depth)
		}
	})

	t.Run("O takes the winning move", func(t *testing.T) {
		s := nearMetaWin(game.O)

		for depth := 1; depth <= 3; depth++ {
			action, err := ChooseAction(s, depth, game.CountWins)
			require.NoError(t, err)
			require.Equal(t, game.Cell{Row: 2, Column: 8}, action, "depth %d", depth)
		}
	})

	t.Run("ties go to the first action", func(t *testing.T) {
		s := game.NewGame().Play(game.Cell{Row: 4, Column: 4})

		action, err := ChooseAction(s, 2, game.Zero)
		require.NoError(t, err)
		require.Equal(t, s.Actions()[0], action)
	})

	t.Run("invalid mover is rejected", func(t *testing.T) {
		previous := game.Cell{Row: 4, Column: 4}
		for _, mover := range []game.Player{game.Cat, game.Empty} {
			s := game.NewState(game.Board{}, game.Scores{}, mover, &previous)

			_, err := ChooseAction(s, 2, game.Zero)
			require.ErrorIs(t, err, ErrInvalidMover)
		}
	})

	t.Run("state without actions is rejected", func(t *testing.T) {
		scores := game.Scores{{game.X, game.O, game.X}, {game.X, game.O, game.O}, {game.O, game.X, game.X}}
		previous := game.Cell{Row: 8, Column: 8}
		s := game.NewState(game.Board{}, scores, game.O, &previous)
		require.Empty(t, s.Actions())

		_, err := ChooseAction(s, 2, game.Zero)
		require.Equal(t, ErrNoActions, errors.Cause(err))
	})

	t.Run("evaluator errors abort the search", func(t *testing.T) {
		failure := errors.New("broken evaluator")
		failing := func(*game.State) (float64, error) { return 0, failure }

		_, err := ChooseAction(game.NewGame(), 2, failing)
		require.ErrorIs(t, err, failure)
	})

	t.Run("evaluator never sees terminal states", func(t *testing.T) {
		s := nearMetaWin(game.X)
		evaluate := func(state *game.State) (float64, error) {
			require.False(t, state.IsTerminal(), "Evaluator called on a terminal state")
			return game.NestedNearWins(state)
		}

		_, err := ChooseAction(s, 3, evaluate)
		require.NoError(t, err)
	})
}

func TestDepthZero(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 40; i++ {
		s := randomPosition(r, r.IntN(40))
		if s.IsTerminal() {
			continue
		}

		// Expected: best evaluator score over the children, exact utility for terminal children.
		maximizing := s.ToMove() == game.X
		var expected game.Cell
		var expectedValue float64
		for j, action := range s.Actions() {
			child := s.Play(action)
			value, err := scatterEvaluation(child)
			require.NoError(t, err)
			if child.IsTerminal() {
				value, err = child.Utility()
				require.NoError(t, err)
			}
			if j == 0 || (maximizing && value > expectedValue) || (!maximizing && value < expectedValue) {
				expected, expectedValue = action, value
			}
		}

		action, err := ChooseAction(s, 0, scatterEvaluation)
		require.NoError(t, err)
		require.Equal(t, expected, action, "Depth 0 should pick the best evaluated child in\n%v", s)

		same, err := ChooseAction(s, 1, scatterEvaluation)
		require.NoError(t, err)
		require.Equal(t, action, same, "Depth 1 should match depth 0")
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	r := rand.New(rand.NewPCG(17, 23))
	evaluators := map[string]game.Evaluate{
		"scatter":          scatterEvaluation,
		"nested_near_wins": game.NestedNearWins,
		"deep_simple":      game.DeepSimple,
	}

	maxDepth := 3
	if testing.Short() {
		maxDepth = 2
	}

	cutoffs := 0
	for i := 0; i < 12; i++ {
		s := randomPosition(r, 10+r.IntN(40))
		if s.IsTerminal() {
			continue
		}
		for name, evaluate := range evaluators {
			for depth := 1; depth <= maxDepth; depth++ {
				if depth == 3 && len(s.Actions()) > 9 {
					continue
				}
				expected, minimaxNodes := minimaxAction(s, depth, evaluate)

				m := NewMiniMax(depth, WithEvaluationFn(name, evaluate), WithMetrics())
				action, metric, err := m.FindMove(s)
				require.NoError(t, err)
				require.Equal(t, expected, action, "%s at depth %d in\n%v", name, depth, s)
				require.LessOrEqual(t, metric.Nodes, minimaxNodes, "Pruning should never visit more states")
				cutoffs += metric.Cutoffs
			}
		}
	}
	require.Greater(t, cutoffs, 0, "Some searches should prune")
}

func TestMiniMax(t *testing.T) {
	t.Run("defaults to count_wins", func(t *testing.T) {
		m := NewMiniMax(2, WithMetrics())

		_, metric, err := m.FindMove(game.NewGame())
		require.NoError(t, err)
		require.Equal(t, "count_wins", metric.Evaluation)
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("collects search metrics", func(t *testing.T) {
		s := game.NewGame().Play(game.Cell{Row: 4, Column: 4})
		m := NewMiniMax(2, WithEvaluationFn("scatter", scatterEvaluation), WithMetrics())

		_, metric, err := m.FindMove(s)
		require.NoError(t, err)
		// Eight replies for O, then at most nine replies for X each.
		require.Greater(t, metric.Nodes, 8)
		require.LessOrEqual(t, metric.Nodes, 8+8*9)
		require.Greater(t, metric.Evaluations, 0)
	})

	t.Run("metrics are off by default", func(t *testing.T) {
		m := NewMiniMax(1)

		_, metric, err := m.FindMove(game.NewGame())
		require.NoError(t, err)
		require.Zero(t, metric.Nodes)
	})

	t.Run("negative depth panics", func(t *testing.T) {
		require.Panics(t, func() { NewMiniMax(-1) })
	})

	t.Run("nil evaluator keeps the default", func(t *testing.T) {
		m := NewMiniMax(1, WithEvaluationFn("nothing", nil))
		require.Equal(t, "count_wins", m.evaluation)
	})
}
