package gamemaster

import (
	"slices"
	"uttt/game"
	"uttt/meta"

	"github.com/pkg/errors"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
)

// UpdateGetter returns the next played move and the state after it. It never
// blocks: ok is false when no update is pending or the game is over.
type UpdateGetter func() (move game.Cell, state *game.State, ok bool)

type Engine interface {
	Init() (*game.State, UpdateGetter)
	Play(game.Cell) error
}

type update struct {
	move  game.Cell
	state *game.State
}

type localEngine struct {
	state    *game.State
	updateCh chan update
	gameOver bool
}

func NewLocalEngine() *localEngine {
	return &localEngine{}
}

// Init starts a new game and returns its initial state.
func (e *localEngine) Init() (*game.State, UpdateGetter) {
	e.state = game.NewGame()
	e.gameOver = false
	// Room for every move of a game, so Play never waits on a reader
	e.updateCh = make(chan update, meta.MAX_TURNS)

	updates := e.updateCh
	return e.state, func() (game.Cell, *game.State, bool) {
		select {
		case u, ok := <-updates:
			if !ok { // Game over
				return game.Cell{}, nil, false
			}
			return u.move, u.state, true
		default:
			return game.Cell{}, nil, false
		}
	}
}

// Play applies move if it is one of the legal actions of the current state.
func (e *localEngine) Play(move game.Cell) error {
	if e.state == nil {
		e.Init()
	}
	if e.gameOver || e.state.IsTerminal() {
		return ErrGameOver
	}

	legalMoves := e.state.Actions()
	if len(legalMoves) == 0 {
		return errors.Wrap(ErrIllegalMove, "no legal moves available")
	}
	if !slices.Contains(legalMoves, move) {
		return errors.Wrapf(ErrIllegalMove, "%s for player %s", move, e.state.ToMove())
	}

	e.state = e.state.Play(move)
	e.updateCh <- update{move: move, state: e.state}

	if e.state.IsTerminal() {
		e.gameOver = true
		close(e.updateCh)
	}
	return nil
}
