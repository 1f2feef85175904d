package main

import (
    "fmt"
    "strconv"

    "github.com/muesli/termenv"
    "github.com/spf13/cobra"

    "github.com/jaminalder/tic-tac-toe-history/internal/domain"
    "github.com/jaminalder/tic-tac-toe-history/internal/textview"
)

func newReplayCmd() *cobra.Command {
    var (
        step int
        desc bool
    )
    cmd := &cobra.Command{
        Use:   "replay [cell...]",
        Short: "Play the given cells in order and print the game",
        Example: `  tictactoe replay 4 0 8 2 6
  tictactoe replay 0 3 1 4 2 --step 2 --desc`,
        Args: cobra.ArbitraryArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            g, err := replay(args, step, desc)
            if err != nil {
                return err
            }
            logger.Debug().Int("moves", len(args)).Int("step", g.StepNumber).Msg("replayed")
            out := termenv.NewOutput(cmd.OutOrStdout())
            _, err = fmt.Fprint(out, textview.Render(out, &g))
            return err
        },
    }
    cmd.Flags().IntVar(&step, "step", -1, "Show this step instead of the last one")
    cmd.Flags().BoolVar(&desc, "desc", false, "List moves newest first")
    return cmd
}

func replay(cells []string, step int, desc bool) (domain.Game, error) {
    g := domain.New()
    for n, s := range cells {
        i, err := strconv.Atoi(s)
        if err != nil {
            return g, fmt.Errorf("move %d: %q is not a cell number", n+1, s)
        }
        if err := g.Play(i); err != nil {
            return g, fmt.Errorf("move %d (cell %d): %w", n+1, i, err)
        }
    }
    if step >= 0 {
        if err := g.JumpTo(step); err != nil {
            return g, fmt.Errorf("step %d: %w", step, err)
        }
    }
    if desc {
        g.ToggleOrder()
    }
    return g, nil
}
