// Package textview prints a game as plain terminal text.
package textview

import (
    "fmt"
    "strings"

    "github.com/muesli/termenv"

    "github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

// Render returns the current board, status line and move list of g.
// Winning cells and the selected move are styled for out's colour profile.
func Render(out *termenv.Output, g *domain.Game) string {
    var b strings.Builder
    b.WriteString(Board(out, g.Current().Board, g.Result().Line))
    b.WriteString("\n")

    status := out.String(g.Status())
    if g.Result().Over() {
        status = status.Bold()
    }
    b.WriteString(status.String())
    b.WriteString("\n\n")

    for _, m := range g.Moves() {
        marker := "  "
        label := out.String(m.Label)
        if m.Selected {
            marker = "> "
            label = label.Bold()
        }
        fmt.Fprintf(&b, "%s%2d. %s\n", marker, m.Step, label.String())
    }
    return b.String()
}

// Board draws the 3x3 grid; cells listed in line are highlighted.
func Board(out *termenv.Output, board domain.Board, line []int) string {
    win := make(map[int]bool, len(line))
    for _, i := range line {
        win[i] = true
    }
    var b strings.Builder
    for r := 0; r < 3; r++ {
        cells := make([]string, 3)
        for c := 0; c < 3; c++ {
            i := r*3 + c
            sym := board[i].String()
            if sym == "" {
                sym = " "
            }
            st := out.String(sym)
            if win[i] {
                st = st.Foreground(out.Color("2")).Bold()
            }
            cells[c] = " " + st.String() + " "
        }
        b.WriteString(strings.Join(cells, "|"))
        b.WriteString("\n")
        if r < 2 {
            b.WriteString("---+---+---\n")
        }
    }
    return b.String()
}
