package main

import (
    "fmt"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/spf13/cobra"

    "github.com/jaminalder/tic-tac-toe-history/internal/tui"
)

func newPlayCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "play",
        Short: "Play a hot-seat game in the terminal",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            g, err := tui.Run(
                tea.WithAltScreen(),
                tea.WithInput(cmd.InOrStdin()),
                tea.WithOutput(cmd.OutOrStdout()),
            )
            if err != nil {
                return err
            }
            logger.Debug().Int("steps", len(g.History)-1).Str("status", g.Status()).Msg("game finished")
            _, _ = fmt.Fprintln(cmd.OutOrStdout(), g.Status())
            return nil
        },
    }
}
