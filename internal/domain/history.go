package domain

import "fmt"

// Step is one snapshot in a game's history.
// Moved is the cell filled to reach it, -1 for the opening snapshot.
type Step struct {
    Board Board
    Moved int
}

// Game holds a match together with every position it passed through.
type Game struct {
    History    []Step
    StepNumber int
    Ascending  bool
}

// MoveEntry is one row of the move list.
type MoveEntry struct {
    Step     int
    Cell     int
    Label    string
    Selected bool
}

// New returns a new game with X to move.
func New() Game {
    return Game{
        History:   []Step{{Moved: -1}},
        Ascending: true,
    }
}

// Current returns the snapshot being displayed.
func (g *Game) Current() Step {
    return g.History[g.StepNumber]
}

// XIsNext reports whether X places the next mark.
func (g *Game) XIsNext() bool { return g.StepNumber%2 == 0 }

// Turn returns the mark that plays next from the current step.
func (g *Game) Turn() Cell {
    if g.XIsNext() {
        return X
    }
    return O
}

// Result evaluates the current snapshot.
func (g *Game) Result() Result { return Evaluate(g.Current().Board) }

// Play places the next mark at cell i, discarding any history after the current step.
func (g *Game) Play(i int) error {
    cur := g.Current()
    if g.Result().Over() {
        return ErrGameOver
    }
    next, err := cur.Board.Place(i, g.Turn())
    if err != nil {
        return err
    }

    // Never append into a backing array a clone may still share.
    h := make([]Step, g.StepNumber+1, g.StepNumber+2)
    copy(h, g.History[:g.StepNumber+1])
    h = append(h, Step{Board: next, Moved: i})

    g.History = h
    g.StepNumber = len(h) - 1
    g.Ascending = true
    return nil
}

// PlayAt plays row r, column c (0..2).
func (g *Game) PlayAt(r, c int) error {
    i, err := Index(r, c)
    if err != nil {
        return err
    }
    return g.Play(i)
}

// JumpTo makes an earlier (or later, if still recorded) step current.
func (g *Game) JumpTo(step int) error {
    if step < 0 || step >= len(g.History) {
        return ErrNoSuchStep
    }
    g.StepNumber = step
    return nil
}

// ToggleOrder flips the move list between ascending and descending.
func (g *Game) ToggleOrder() { g.Ascending = !g.Ascending }

// Moves lists the history in display order.
func (g *Game) Moves() []MoveEntry {
    out := make([]MoveEntry, len(g.History))
    for n, st := range g.History {
        e := MoveEntry{Step: n, Cell: st.Moved, Selected: n == g.StepNumber && n != 0}
        if n == 0 {
            e.Label = "Go to game start"
        } else {
            col, row := Position(st.Moved)
            e.Label = fmt.Sprintf("(%d,%d) => move #%d", col, row, n)
        }
        out[n] = e
    }
    if !g.Ascending {
        for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
            out[i], out[j] = out[j], out[i]
        }
    }
    return out
}

// Status is the one-line summary shown above the move list.
func (g *Game) Status() string {
    res := g.Result()
    switch {
    case res.Winner != Empty:
        return "Winner: " + res.Winner.String()
    case res.Draw:
        return "Draw"
    default:
        return "Next player: " + g.Turn().String()
    }
}

// Clone returns a copy that shares no history with g.
func (g Game) Clone() Game {
    h := make([]Step, len(g.History))
    copy(h, g.History)
    g.History = h
    return g
}
