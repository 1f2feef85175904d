package domain

import (
    "errors"
    "testing"

    "github.com/google/go-cmp/cmp"
)

func playCells(t *testing.T, g *Game, cells ...int) {
    t.Helper()
    for n, c := range cells {
        if err := g.Play(c); err != nil {
            t.Fatalf("move %d (cell %d) failed: %v", n+1, c, err)
        }
    }
}

func TestMovesLabelsAndSelection(t *testing.T) {
    g := New()
    playCells(t, &g, 4, 0, 8)

    want := []MoveEntry{
        {Step: 0, Cell: -1, Label: "Go to game start"},
        {Step: 1, Cell: 4, Label: "(2,2) => move #1"},
        {Step: 2, Cell: 0, Label: "(1,1) => move #2"},
        {Step: 3, Cell: 8, Label: "(3,3) => move #3", Selected: true},
    }
    if diff := cmp.Diff(want, g.Moves()); diff != "" {
        t.Fatalf("moves mismatch (-want +got):\n%s", diff)
    }
}

func TestMovesDescending(t *testing.T) {
    g := New()
    playCells(t, &g, 2, 6)
    g.ToggleOrder()

    got := g.Moves()
    steps := make([]int, len(got))
    for i, e := range got {
        steps[i] = e.Step
    }
    if diff := cmp.Diff([]int{2, 1, 0}, steps); diff != "" {
        t.Fatalf("descending order mismatch (-want +got):\n%s", diff)
    }
    g.ToggleOrder()
    if !g.Ascending || g.Moves()[0].Step != 0 {
        t.Fatalf("expected toggle back to ascending")
    }
}

func TestStartStepNeverSelected(t *testing.T) {
    g := New()
    playCells(t, &g, 0)
    if err := g.JumpTo(0); err != nil {
        t.Fatalf("jump: %v", err)
    }
    for _, e := range g.Moves() {
        if e.Selected {
            t.Fatalf("no entry should be selected at step 0, got %+v", e)
        }
    }
}

func TestJumpToKeepsHistoryAndDerivesTurn(t *testing.T) {
    g := New()
    playCells(t, &g, 0, 1, 2, 3)

    if err := g.JumpTo(1); err != nil {
        t.Fatalf("jump: %v", err)
    }
    if len(g.History) != 5 {
        t.Fatalf("jump must not truncate history, len=%d", len(g.History))
    }
    if g.Turn() != O || g.XIsNext() {
        t.Fatalf("expected O to move at step 1, got %v", g.Turn())
    }
    if g.Status() != "Next player: O" {
        t.Fatalf("unexpected status %q", g.Status())
    }
    want := Board{X}
    if g.Current().Board != want {
        t.Fatalf("unexpected board at step 1: %v", g.Current().Board)
    }
    // forward again to a recorded step
    if err := g.JumpTo(4); err != nil {
        t.Fatalf("jump forward: %v", err)
    }
    if g.Current().Board.Filled() != 4 {
        t.Fatalf("expected 4 filled cells at step 4")
    }
}

func TestJumpToRejectsUnknownStep(t *testing.T) {
    g := New()
    playCells(t, &g, 0)
    for _, step := range []int{-1, 2, 10} {
        if err := g.JumpTo(step); !errors.Is(err, ErrNoSuchStep) {
            t.Fatalf("JumpTo(%d): expected ErrNoSuchStep, got %v", step, err)
        }
    }
    if g.StepNumber != 1 {
        t.Fatalf("failed jump must keep step, got %d", g.StepNumber)
    }
}

func TestPlayAfterJumpDiscardsFuture(t *testing.T) {
    g := New()
    playCells(t, &g, 0, 1, 2, 3)
    if err := g.JumpTo(2); err != nil {
        t.Fatalf("jump: %v", err)
    }
    if err := g.Play(8); err != nil {
        t.Fatalf("play after jump: %v", err)
    }
    if len(g.History) != 4 || g.StepNumber != 3 {
        t.Fatalf("expected truncated history of 4, got len=%d step=%d", len(g.History), g.StepNumber)
    }
    want := Board{X, O, Empty, Empty, Empty, Empty, Empty, Empty, X}
    if g.Current().Board != want {
        t.Fatalf("unexpected board after branch: %v", g.Current().Board)
    }
}

func TestPlayFromFinishedStepAfterJump(t *testing.T) {
    g := New()
    playCells(t, &g, 0, 3, 1, 4, 2) // X wins top row
    if err := g.Play(5); !errors.Is(err, ErrGameOver) {
        t.Fatalf("expected ErrGameOver, got %v", err)
    }
    // going back reopens play from that point
    if err := g.JumpTo(4); err != nil {
        t.Fatalf("jump: %v", err)
    }
    if err := g.Play(8); err != nil {
        t.Fatalf("expected play to resume after jump: %v", err)
    }
    if g.Result().Winner != Empty {
        t.Fatalf("branch should not carry old winner")
    }
}

func TestPlayResetsOrderToAscending(t *testing.T) {
    g := New()
    g.ToggleOrder()
    playCells(t, &g, 4)
    if !g.Ascending {
        t.Fatalf("a new move should reset the move list to ascending")
    }
}

func TestSnapshotsAlternateMarks(t *testing.T) {
    g := New()
    playCells(t, &g, 4, 0, 8, 2, 6)
    for n := 1; n < len(g.History); n++ {
        prev, cur := g.History[n-1], g.History[n]
        if cur.Board.Filled() != prev.Board.Filled()+1 {
            t.Fatalf("step %d should add exactly one mark", n)
        }
        want := X
        if n%2 == 0 {
            want = O
        }
        if cur.Board[cur.Moved] != want || prev.Board[cur.Moved] != Empty {
            t.Fatalf("step %d placed %v at %d, want %v", n, cur.Board[cur.Moved], cur.Moved, want)
        }
    }
}

func TestCloneSharesNoHistory(t *testing.T) {
    g := New()
    playCells(t, &g, 0, 1, 2)
    if err := g.JumpTo(1); err != nil {
        t.Fatalf("jump: %v", err)
    }
    snap := g.Clone()

    if err := g.Play(8); err != nil {
        t.Fatalf("play: %v", err)
    }
    if len(snap.History) != 4 || snap.History[2].Moved != 1 {
        t.Fatalf("clone changed after original moved: %+v", snap.History)
    }
    if err := snap.Play(5); err != nil {
        t.Fatalf("play on clone: %v", err)
    }
    if g.History[2].Moved != 8 {
        t.Fatalf("original changed after clone moved: %+v", g.History)
    }
}
