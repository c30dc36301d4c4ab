package game

import "fmt"

// Player marks a cell or a sub-board. The zero value Empty means unoccupied
// (for a cell) or still open (for a sub-board). Cat marks a sub-board that
// closed without a winner.
type Player int8

const (
	Empty Player = iota
	X
	O
	Cat
)

// Value is the sign of the player used in scoring: X = +1, O = -1, anything else 0.
func (p Player) Value() float64 {
	switch p {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// Opponent returns the other mover. Only X and O have an opponent.
func (p Player) Opponent() Player {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		panic(fmt.Sprintf("player %s has no opponent", p))
	}
}

func (p Player) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	case Cat:
		return "Cat"
	default:
		return "-"
	}
}

// Cell addresses one of the 81 cells of the full board.
type Cell struct {
	Row    int
	Column int
}

// SubBoard returns the index of the 3x3 sub-board containing the cell.
func (c Cell) SubBoard() (int, int) {
	return c.Row / 3, c.Column / 3
}

// Offset returns the position of the cell inside its sub-board. The offset
// of the previous move names the sub-board the next mover is forced into.
func (c Cell) Offset() (int, int) {
	return c.Row % 3, c.Column % 3
}

func (c Cell) inBounds() bool {
	return 0 <= c.Row && c.Row < 9 && 0 <= c.Column && c.Column < 9
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

type StateHash uint64

// Evaluate scores a non-terminal state. Positive values favor X, negative
// values favor O, on the same scale as Utility.
type Evaluate func(*State) (float64, error)
