package engine

import (
	"time"
	"uttt/agent"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/gamemaster"
	"uttt/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrTooManyMoves = errors.New("game exceeded the move limit")

type Option func(l *Local)

// WithMaxMoves overrides the move limit of meta.MAX_TURNS.
func WithMaxMoves(moves int) Option {
	return func(l *Local) {
		l.maxMoves = moves
	}
}

// Local plays a game between two in-process agents, refereed by a
// gamemaster engine.
type Local struct {
	agents   map[game.Player]agent.Agent
	referee  gamemaster.Engine
	maxMoves int
	final    *game.State
}

func NewLocal(x, o agent.Agent, options ...Option) *Local {
	if x == nil || o == nil {
		panic("need an agent for both players")
	}
	l := &Local{
		agents:   map[game.Player]agent.Agent{game.X: x, game.O: o},
		referee:  gamemaster.NewLocalEngine(),
		maxMoves: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Run executes the entire game loop until the game is over.
func (l *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	state, getUpdate := l.referee.Init()
	defer func() { l.final = state }()
	gameMetric := metrics.GameMetric{
		StartingPlayer: state.ToMove(),
		StartTime:      time.Now(),
	}

	log.Info().Msgf("player %s is starting", state.ToMove())

	var moveMetrics []metrics.MoveMetric
	for step := 1; !state.IsTerminal(); step++ {
		if step > l.maxMoves {
			return gameMetric, moveMetrics, errors.Wrapf(ErrTooManyMoves, "stopped after %d moves", l.maxMoves)
		}

		player := state.ToMove()
		move, searchMetric, err := l.agents[player].FindMove(state)
		if err != nil {
			return gameMetric, moveMetrics, errors.Wrapf(err, "player %s failed to find a move", player)
		}

		err = l.referee.Play(move)
		if err != nil {
			log.Warn().Err(err).Msgf("player %s move %s rejected", player, move)
			return gameMetric, moveMetrics, errors.Wrapf(err, "step %d", step)
		}

		_, next, ok := getUpdate()
		if !ok {
			return gameMetric, moveMetrics, errors.Errorf("no update after step %d", step)
		}
		state = next

		moveMetric := metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			Hash:         state.Hash(),
			SearchMetric: searchMetric,
		}
		moveMetrics = append(moveMetrics, moveMetric)

		log.Debug().
			Int("step", step).
			Str("player", player.String()).
			Str("move", move.String()).
			Int("nodes", searchMetric.Nodes).
			Int("cutoffs", searchMetric.Cutoffs).
			Dur("duration", searchMetric.Duration).
			Msg("move played")
	}

	utility, err := state.Utility()
	if err != nil {
		return gameMetric, moveMetrics, err
	}
	gameMetric.Winner = state.Winner()
	gameMetric.Utility = utility
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game over after %d moves, winner %s", gameMetric.TotalMoves, gameMetric.Winner)

	return gameMetric, moveMetrics, nil
}

// Final returns the last state reached by the most recent Run.
func (l *Local) Final() *game.State {
	return l.final
}
