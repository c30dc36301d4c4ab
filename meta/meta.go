// meta/meta.go
package meta

// MAX_TURNS bounds a game: every move fills one of the 81 cells.
const MAX_TURNS = 81

// DEFAULT_GAMES is the number of games played per run.
const DEFAULT_GAMES = 1

// DEFAULT_AGENT is the agent type used for both players.
const DEFAULT_AGENT = "RandomAgent"

// DEFAULT_SEED seeds random agents.
const DEFAULT_SEED = "jack czenszak"

// DEFAULT_EVALUATION names the evaluator used by minimax agents.
const DEFAULT_EVALUATION = "count_wins"

// DEFAULT_DEPTH is the search depth of minimax agents.
const DEFAULT_DEPTH = 4
