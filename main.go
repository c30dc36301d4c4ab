package main

import (
	"flag"
	"fmt"
	"os"
	"uttt/experiments"
	"uttt/experiments/metrics"
	"uttt/game"
	"uttt/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	numGames := flag.Int("n", meta.DEFAULT_GAMES, "number of games to run")
	xType := flag.String("x", meta.DEFAULT_AGENT, "the agent type for the X player")
	oType := flag.String("o", meta.DEFAULT_AGENT, "the agent type for the O player")
	xSeed := flag.String("xs", meta.DEFAULT_SEED, "the seed for the X player")
	oSeed := flag.String("os", meta.DEFAULT_SEED, "the seed for the O player")
	xEvaluation := flag.String("xe", meta.DEFAULT_EVALUATION, "the evaluation function for the X agent")
	oEvaluation := flag.String("oe", meta.DEFAULT_EVALUATION, "the evaluation function for the O agent")
	xDepth := flag.Int("xd", meta.DEFAULT_DEPTH, "the search depth for the X agent")
	oDepth := flag.Int("od", meta.DEFAULT_DEPTH, "the search depth for the O agent")
	configPath := flag.String("config", "", "YAML experiment setup, overrides the agent flags")
	preset := flag.String("experiment", "", "built-in experiment to run (depth, evaluation)")
	records := flag.String("records", "", "directory to store CSV records in")
	verbose := flag.Bool("v", false, "log search progress")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var setup experiments.Setup
	switch {
	case *configPath != "":
		var err error
		setup, err = experiments.LoadSetup(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load experiment setup")
		}
	case *preset != "":
		build, ok := experiments.Presets[*preset]
		if !ok {
			log.Fatal().Msgf("unknown experiment %q", *preset)
		}
		setup = build(*numGames)
	default:
		setup = experiments.Setup{
			Name:  "games",
			Games: *numGames,
			Agents: []metrics.AgentConfig{
				{ID: 1, Type: *xType, Seed: *xSeed, Evaluation: *xEvaluation, Depth: *xDepth},
				{ID: 2, Type: *oType, Seed: *oSeed, Evaluation: *oEvaluation, Depth: *oDepth},
			},
			MatchUps: []experiments.MatchUp{{X: 1, O: 2}},
		}
	}

	options := []experiments.Option{experiments.WithGameOver(printGame)}
	if *records != "" {
		options = append(options, experiments.WithRecords(*records))
	}

	results, err := experiments.Run(setup, options...)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	total := experiments.Total(results)
	fmt.Printf("X wins:\t%d\n", total.XWins)
	fmt.Printf("O wins:\t%d\n", total.OWins)
	fmt.Printf("Ties:\t%d\n", total.Ties)
}

func printGame(_ experiments.MatchUp, final *game.State, gameMetric metrics.GameMetric) {
	fmt.Println(final)
	switch gameMetric.Winner {
	case game.X:
		fmt.Println("PLAYER X WINS")
	case game.O:
		fmt.Println("PLAYER O WINS")
	default:
		fmt.Println("TIED GAME")
	}
}
