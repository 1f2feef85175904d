package main

import (
    "context"
    "os"

    "github.com/rs/zerolog"
    "github.com/spf13/cobra"

    "github.com/jaminalder/tic-tac-toe-history/internal/logging"
)

var (
    // Global flags
    logLevel  string
    logFormat string

    logger = zerolog.Nop()
)

func newRootCmd() *cobra.Command {
    root := &cobra.Command{
        Use:   "tictactoe",
        Short: "Tic-tac-toe with move history and time travel",
        Long: `Play tic-tac-toe in a browser (serve), in the terminal (play),
or print a game from a list of cells (replay).

Cells are numbered 0-8, row by row from the top left.`,
        SilenceUsage: true,
        PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
            logger = logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
            return nil
        },
    }
    root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
    root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

    root.AddCommand(newServeCmd())
    root.AddCommand(newPlayCmd())
    root.AddCommand(newReplayCmd())
    return root
}

func main() {
    if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
        os.Exit(1)
    }
}
