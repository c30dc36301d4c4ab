package agent

import (
	"testing"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/searcher"

	"github.com/stretchr/testify/require"
)

func playout(t *testing.T, x, o Agent) []game.Cell {
	t.Helper()
	var moves []game.Cell
	s := game.NewGame()
	for !s.IsTerminal() {
		player := x
		if s.ToMove() == game.O {
			player = o
		}
		move, _, err := player.FindMove(s)
		require.NoError(t, err)
		require.Contains(t, s.Actions(), move)
		moves = append(moves, move)
		s = s.Play(move)
	}
	return moves
}

func TestRandomAgent(t *testing.T) {
	t.Run("same seed plays the same game", func(t *testing.T) {
		first := playout(t, NewRandomAgent("x"), NewRandomAgent("o"))
		second := playout(t, NewRandomAgent("x"), NewRandomAgent("o"))
		require.Equal(t, first, second)
	})

	t.Run("different seeds play different games", func(t *testing.T) {
		first := playout(t, NewRandomAgent("a"), NewRandomAgent("b"))
		second := playout(t, NewRandomAgent("c"), NewRandomAgent("d"))
		require.NotEqual(t, first, second)
	})

	t.Run("no metrics are reported", func(t *testing.T) {
		_, metric, err := NewRandomAgent("").FindMove(game.NewGame())
		require.NoError(t, err)
		require.Equal(t, metrics.SearchMetric{}, metric)
	})

	t.Run("state without moves is an error", func(t *testing.T) {
		scores := game.Scores{{game.X, game.O, game.X}, {game.X, game.O, game.O}, {game.O, game.X, game.X}}
		previous := game.Cell{Row: 8, Column: 8}
		s := game.NewState(game.Board{}, scores, game.O, &previous)

		_, _, err := NewRandomAgent("").FindMove(s)
		require.Error(t, err)
	})
}

func TestMiniMaxAgent(t *testing.T) {
	s := game.NewGame().Play(game.Cell{Row: 4, Column: 4})
	m := searcher.NewMiniMax(2, searcher.WithEvaluationFn("deep_simple", game.DeepSimple), searcher.WithMetrics())

	move, metric, err := NewMiniMaxAgent(m).FindMove(s)
	require.NoError(t, err)

	expected, err := searcher.ChooseAction(s, 2, game.DeepSimple)
	require.NoError(t, err)
	require.Equal(t, expected, move)
	require.Equal(t, "deep_simple", metric.Evaluation)
	require.Positive(t, metric.Nodes)
}

func TestNew(t *testing.T) {
	t.Run("random agent", func(t *testing.T) {
		a, err := New(metrics.AgentConfig{Type: RandomAgentType, Seed: "seed"})
		require.NoError(t, err)
		require.IsType(t, &randomAgent{}, a)
	})

	t.Run("minimax agent", func(t *testing.T) {
		a, err := New(metrics.AgentConfig{Type: MiniMaxAgentType, Evaluation: "near_wins", Depth: 1})
		require.NoError(t, err)
		require.IsType(t, miniMaxAgent{}, a)

		_, metric, err := a.FindMove(game.NewGame())
		require.NoError(t, err)
		require.Equal(t, "near_wins", metric.Evaluation)
		require.Equal(t, 1, metric.Depth)
	})

	t.Run("unknown agent type", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Type: "HumanAgent"})
		require.ErrorIs(t, err, ErrUnknownAgent)
	})

	t.Run("unknown evaluator", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Type: MiniMaxAgentType, Evaluation: "nonsense", Depth: 2})
		require.ErrorIs(t, err, game.ErrUnknownEvaluator)
	})

	t.Run("negative depth", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Type: MiniMaxAgentType, Evaluation: "zero", Depth: -1})
		require.Error(t, err)
	})
}
