package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
    Empty Cell = iota
    X
    O
)

func (c Cell) String() string {
    switch c {
    case X:
        return "X"
    case O:
        return "O"
    default:
        return ""
    }
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Errors returned by domain operations.
var (
    ErrOutOfBounds = errors.New("out of bounds")
    ErrOccupied    = errors.New("cell occupied")
    ErrGameOver    = errors.New("game over")
    ErrNoSuchStep  = errors.New("no such step")
)

// Lines lists every winning line in the order they are checked.
var Lines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

// Result describes the outcome of a board.
type Result struct {
    Winner Cell
    Line   []int
    Draw   bool
}

// Over reports whether no further move may be played.
func (r Result) Over() bool { return r.Winner != Empty || r.Draw }

// Evaluate returns the first completed line, or a draw when the board is full.
func Evaluate(b Board) Result {
    for _, ln := range Lines {
        a := b[ln[0]]
        if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
            return Result{Winner: a, Line: []int{ln[0], ln[1], ln[2]}}
        }
    }
    return Result{Draw: b.Full()}
}

// Full reports whether every cell is taken.
func (b Board) Full() bool {
    for _, c := range b {
        if c == Empty {
            return false
        }
    }
    return true
}

// Filled counts the non-empty cells.
func (b Board) Filled() int {
    n := 0
    for _, c := range b {
        if c != Empty {
            n++
        }
    }
    return n
}

// Place returns a copy of b with mark at cell i.
func (b Board) Place(i int, mark Cell) (Board, error) {
    if i < 0 || i >= len(b) {
        return b, ErrOutOfBounds
    }
    if b[i] != Empty {
        return b, ErrOccupied
    }
    b[i] = mark
    return b, nil
}

// Index converts a zero-based row r and column c (0..2) to a cell index.
func Index(r, c int) (int, error) {
    if r < 0 || r > 2 || c < 0 || c > 2 {
        return 0, ErrOutOfBounds
    }
    return r*3 + c, nil
}

// Position returns the 1-based column and row of cell i.
func Position(i int) (col, row int) {
    return 1 + i%3, 1 + i/3
}
