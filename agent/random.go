package agent

import (
	"hash/fnv"
	"uttt/experiments/metrics"
	"uttt/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent playing uniformly random legal moves. Equal
// seeds give equal move sequences.
func NewRandomAgent(seed string) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(hashSeed(seed)))}
}

func (a *randomAgent) FindMove(state *game.State) (game.Cell, metrics.SearchMetric, error) {
	actions := state.Actions()
	if len(actions) == 0 {
		return game.Cell{}, metrics.SearchMetric{}, errors.New("no legal moves to choose from")
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}

func hashSeed(seed string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return h.Sum64()
}
