package experiments

import (
	"bytes"
	"os"
	"uttt/agent"
	"uttt/experiments/metrics"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MatchUp pairs two agents by AgentConfig.ID.
type MatchUp struct {
	X int `yaml:"x"`
	O int `yaml:"o"`
}

// Setup describes an experiment: the agents taking part and the games
// played between them.
type Setup struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"` // Per match up
	Agents   []metrics.AgentConfig `yaml:"agents"`
	MatchUps []MatchUp             `yaml:"matchups"`
}

// LoadSetup reads a YAML experiment setup, e.g.
//
//	name: depth
//	games: 10
//	agents:
//	  - {id: 1, type: MiniMaxAgent, evaluation: deep_simple_evaluation, depth: 3}
//	  - {id: 2, type: RandomAgent, seed: abc}
//	matchups:
//	  - {x: 1, o: 2}
func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, errors.Wrap(err, "reading experiment setup")
	}

	var setup Setup
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&setup); err != nil {
		return Setup{}, errors.Wrapf(err, "decoding %s", path)
	}

	if err := setup.Validate(); err != nil {
		return Setup{}, errors.Wrap(err, path)
	}
	return setup, nil
}

// Validate checks that every match up refers to a known agent and that every
// agent can be built.
func (s Setup) Validate() error {
	if s.Name == "" {
		return errors.New("experiment needs a name")
	}
	if s.Games <= 0 {
		return errors.Errorf("experiment %s: number of games must be positive, got %d", s.Name, s.Games)
	}
	if len(s.MatchUps) == 0 {
		return errors.Errorf("experiment %s: no match ups", s.Name)
	}

	ids := make(map[int]bool, len(s.Agents))
	for _, config := range s.Agents {
		if ids[config.ID] {
			return errors.Errorf("experiment %s: duplicate agent id %d", s.Name, config.ID)
		}
		ids[config.ID] = true
		if _, err := agent.New(config); err != nil {
			return errors.Wrapf(err, "experiment %s", s.Name)
		}
	}

	for _, matchUp := range s.MatchUps {
		if !ids[matchUp.X] || !ids[matchUp.O] {
			return errors.Errorf("experiment %s: match up %+v refers to an unknown agent", s.Name, matchUp)
		}
	}
	return nil
}

func (s Setup) agentConfig(id int) metrics.AgentConfig {
	for _, config := range s.Agents {
		if config.ID == id {
			return config
		}
	}
	panic("unknown agent id")
}
