package game

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"github.com/pkg/errors"
)

// Win is the utility of a terminal state won by X. A state won by O is worth -Win.
const Win = 100.0

var ErrNonTerminal = errors.New("cannot compute the utility of a non-terminal game state")

// Board holds the mark of every cell, indexed by row then column.
type Board [9][9]Player

// Scores holds the outcome of every sub-board, indexed by sub-board row then column.
type Scores [3][3]Player

func (b *Board) at(row, column int) Player {
	return b[row][column]
}

func (s *Scores) at(row, column int) Player {
	return s[row][column]
}

// grid reads a mark from a rectangular board.
type grid func(row, column int) Player

// State is one position of a game. It is immutable: Play returns a new
// State and never modifies the receiver, so a State can be shared by any
// number of search branches.
type State struct {
	board    Board
	scores   Scores
	toMove   Player
	previous Cell
	started  bool // false until the first move is played
}

// NewGame returns the empty initial state with X to move.
func NewGame() *State {
	return &State{toMove: X}
}

// NewState builds an arbitrary position. A nil previous move means no move
// has been played yet.
func NewState(board Board, scores Scores, toMove Player, previous *Cell) *State {
	s := &State{
		board:  board,
		scores: scores,
		toMove: toMove,
	}
	if previous != nil {
		s.previous = *previous
		s.started = true
	}
	return s
}

// ToMove returns the player whose turn it is.
func (s *State) ToMove() Player {
	return s.toMove
}

func (s *State) Board() Board {
	return s.board
}

func (s *State) Scores() Scores {
	return s.scores
}

// PreviousMove returns the last cell played, if any.
func (s *State) PreviousMove() (Cell, bool) {
	return s.previous, s.started
}

// Actions returns the legal cells for the player to move, ordered by row then column.
func (s *State) Actions() []Cell {
	if !s.started {
		return openingActions()
	}

	fr, fc := s.previous.Offset()

	// The forced sub-board is closed, so any empty cell of an open sub-board is legal.
	if s.scores[fr][fc] != Empty {
		actions := []Cell{}
		for r := 0; r < 9; r++ {
			for c := 0; c < 9; c++ {
				if s.board[r][c] == Empty && s.scores[r/3][c/3] == Empty {
					actions = append(actions, Cell{Row: r, Column: c})
				}
			}
		}
		return actions
	}

	actions := make([]Cell, 0, 9)
	for r := fr * 3; r < fr*3+3; r++ {
		for c := fc * 3; c < fc*3+3; c++ {
			if s.board[r][c] == Empty {
				actions = append(actions, Cell{Row: r, Column: c})
			}
		}
	}
	return actions
}

// openingActions is the first-move set: rows 0-2 over columns 0-5, plus the
// center sub-board. Play accepts any cell on the first move.
func openingActions() []Cell {
	actions := make([]Cell, 0, 27)
	for r := 0; r < 3; r++ {
		for c := 0; c < 6; c++ {
			actions = append(actions, Cell{Row: r, Column: c})
		}
	}
	for r := 3; r < 6; r++ {
		for c := 3; c < 6; c++ {
			actions = append(actions, Cell{Row: r, Column: c})
		}
	}
	return actions
}

// Play returns the state reached by marking action for the player to move.
// An illegal action is not an error: the receiver itself is returned.
func (s *State) Play(action Cell) *State {
	if !s.isValid(action) {
		return s
	}

	next := *s
	next.board[action.Row][action.Column] = s.toMove

	// The opening move never closes a sub-board.
	if s.started {
		sr, sc := action.SubBoard()
		top := Cell{Row: sr * 3, Column: sc * 3}
		if containsWin(next.board.at, action, top) {
			next.scores[sr][sc] = s.toMove
		} else if noEmpty(next.board.at, top.Row, top.Column, top.Row+3, top.Column+3) {
			next.scores[sr][sc] = Cat
		}
	}

	next.toMove = s.toMove.Opponent()
	next.previous = action
	next.started = true
	return &next
}

func (s *State) isValid(action Cell) bool {
	if !action.inBounds() {
		return false
	}
	if !s.started {
		return true
	}
	if s.board[action.Row][action.Column] != Empty {
		return false
	}

	fr, fc := s.previous.Offset()
	sr, sc := action.SubBoard()

	if s.scores[fr][fc] != Empty {
		return s.scores[sr][sc] == Empty
	}
	return sr == fr && sc == fc
}

// IsTerminal reports whether the game is over: the last move closed a
// sub-board that completes a line on the meta-board, or every sub-board is closed.
func (s *State) IsTerminal() bool {
	if !s.started {
		return false
	}

	sr, sc := s.previous.SubBoard()
	closed := s.scores[sr][sc]
	if closed == Empty {
		return false
	}
	if closed != Cat && s.metaWin() {
		return true
	}
	return noEmpty(s.scores.at, 0, 0, 3, 3)
}

func (s *State) metaWin() bool {
	sr, sc := s.previous.SubBoard()
	return containsWin(s.scores.at, Cell{Row: sr, Column: sc}, Cell{})
}

// Utility returns Win if X won, -Win if O won and 0 for a tie. It fails on
// a non-terminal state.
func (s *State) Utility() (float64, error) {
	if !s.IsTerminal() {
		return 0, ErrNonTerminal
	}
	if !s.metaWin() {
		return 0, nil
	}
	// The winner is whoever just moved.
	if s.toMove == O {
		return Win, nil
	}
	return -Win, nil
}

// Winner returns X or O for a won game, Cat for a tied game and Empty while
// the game is still in progress.
func (s *State) Winner() Player {
	utility, err := s.Utility()
	switch {
	case err != nil:
		return Empty
	case utility > 0:
		return X
	case utility < 0:
		return O
	default:
		return Cat
	}
}

// String renders the board as nine rows of X, O and -, with a space after
// every third column and a blank line between sub-board rows.
func (s *State) String() string {
	var b strings.Builder
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			switch s.board[r][c] {
			case X:
				b.WriteByte('X')
			case O:
				b.WriteByte('O')
			default:
				b.WriteByte('-')
			}
			if c%3 == 2 {
				b.WriteByte(' ')
			}
		}

		if r == 8 {
			continue
		}
		b.WriteByte('\n')
		if r%3 == 2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (s *State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.toMove))

	for r := range s.board {
		for c := range s.board[r] {
			binary.Write(hasher, binary.LittleEndian, int64(s.board[r][c]))
		}
	}

	for r := range s.scores {
		for c := range s.scores[r] {
			binary.Write(hasher, binary.LittleEndian, int64(s.scores[r][c]))
		}
	}

	// The previous move decides the forced sub-board, so it is part of the position.
	if s.started {
		binary.Write(hasher, binary.LittleEndian, int64(s.previous.Row))
		binary.Write(hasher, binary.LittleEndian, int64(s.previous.Column))
	} else {
		binary.Write(hasher, binary.LittleEndian, int64(-1))
	}

	return StateHash(hasher.Sum64())
}

// containsWin reports whether the mark at last completes three in a row in
// the 3x3 region whose top-left corner is top. Only the row, the column and
// the diagonals passing through last are checked.
func containsWin(g grid, last Cell, top Cell) bool {
	mark := g(last.Row, last.Column)
	if mark == Empty || mark == Cat {
		return false
	}

	line := func(row, column, dRow, dColumn int) bool {
		for i := 0; i < 3; i++ {
			if g(row+i*dRow, column+i*dColumn) != mark {
				return false
			}
		}
		return true
	}

	lr, lc := last.Offset()
	switch {
	case line(top.Row, last.Column, 1, 0):
		return true
	case line(last.Row, top.Column, 0, 1):
		return true
	case lr == lc && line(top.Row, top.Column, 1, 1):
		return true
	case lr+lc == 2 && line(top.Row+2, top.Column, -1, 1):
		return true
	}
	return false
}

// noEmpty reports whether the rows [r1, r2) and columns [c1, c2) hold no Empty mark.
func noEmpty(g grid, r1, c1, r2, c2 int) bool {
	for r := r1; r < r2; r++ {
		for c := c1; c < c2; c++ {
			if g(r, c) == Empty {
				return false
			}
		}
	}
	return true
}
