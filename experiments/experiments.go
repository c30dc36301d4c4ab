package experiments

import (
	"uttt/agent"
	"uttt/engine"
	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Tally counts the outcomes of a match up.
type Tally struct {
	XWins int
	OWins int
	Ties  int
}

func (t *Tally) add(winner game.Player) {
	switch winner {
	case game.X:
		t.XWins++
	case game.O:
		t.OWins++
	default:
		t.Ties++
	}
}

type Result struct {
	MatchUp
	Tally
}

// GameOverFn is called with the final state of every game played.
type GameOverFn func(matchUp MatchUp, final *game.State, gameMetric metrics.GameMetric)

type Option func(r *runner)

// WithRecords stores agent configs, game records and move records as CSV
// files below dir.
func WithRecords(dir string) Option {
	return func(r *runner) {
		r.recordsDir = dir
	}
}

func WithGameOver(fn GameOverFn) Option {
	return func(r *runner) {
		r.gameOver = fn
	}
}

// WithEngineOptions configures the engine of every game.
func WithEngineOptions(options ...engine.Option) Option {
	return func(r *runner) {
		r.engineOpts = append(r.engineOpts, options...)
	}
}

type runner struct {
	recordsDir string
	gameOver   GameOverFn
	engineOpts []engine.Option
}

// Run plays setup.Games games for each match up and returns the tallies in
// match up order. Agents are built once per match up, so random agents keep
// drawing from the same source across its games.
func Run(setup Setup, options ...Option) ([]Result, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	r := &runner{gameOver: func(MatchUp, *game.State, metrics.GameMetric) {}}
	for _, option := range options {
		option(r)
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	results := make([]Result, 0, len(setup.MatchUps))

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchUp := range setup.MatchUps {
		configX := setup.agentConfig(matchUp.X)
		configO := setup.agentConfig(matchUp.O)

		log.Info().Msgf("starting matchup %d of %d between x=%+v and o=%+v...", mi+1, len(setup.MatchUps), configX, configO)

		x, err := agent.New(configX)
		if err != nil {
			return nil, err
		}
		o, err := agent.New(configO)
		if err != nil {
			return nil, err
		}

		result := Result{MatchUp: matchUp}
		for i := 0; i < setup.Games; i++ {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(setup.MatchUps), i+1, setup.Games)

			e := engine.NewLocal(x, o, r.engineOpts...)
			gameMetric, moveMetrics, err := e.Run()
			if err != nil {
				return nil, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			result.add(gameMetric.Winner)
			r.gameOver(matchUp, e.Final(), gameMetric)

			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				AgentX:     configX.ID,
				AgentO:     configO.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(setup.MatchUps), i+1, gameMetric.Winner)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d: %+v", mi+1, len(setup.MatchUps), result.Tally)
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	if r.recordsDir != "" {
		if err := storeRecords(r.recordsDir, setup, gameRecords, moveRecords); err != nil {
			return results, err
		}
	}
	return results, nil
}

func storeRecords(dir string, setup Setup, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(dir, setup.Name)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}

	err = writer.WriteAgentConfigs(setup.Agents)
	if err != nil {
		return errors.Wrap(err, "failed to store agent configs")
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return errors.Wrap(err, "failed to write game records")
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// Total sums the tallies of all results.
func Total(results []Result) Tally {
	var total Tally
	for _, result := range results {
		total.XWins += result.XWins
		total.OWins += result.OWins
		total.Ties += result.Ties
	}
	return total
}
