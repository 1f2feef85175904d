package main

import (
    "context"
    "errors"
    "fmt"
    "net"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/spf13/cobra"

    "github.com/jaminalder/tic-tac-toe-history/internal/app"
    "github.com/jaminalder/tic-tac-toe-history/internal/config"
    "github.com/jaminalder/tic-tac-toe-history/internal/logging"
    "github.com/jaminalder/tic-tac-toe-history/internal/web"
)

const shutdownGrace = 5 * time.Second

func newServeCmd() *cobra.Command {
    var addr string
    cmd := &cobra.Command{
        Use:   "serve",
        Short: "Serve the htmx board over HTTP",
        Long: `Starts the web front end. Settings come from TTT_* environment
variables (a .env file is read when present); flags override them.`,
        Args: cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := config.Load()
            if err != nil {
                return err
            }
            if cmd.Flags().Changed("addr") {
                cfg.Addr = addr
            }
            if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
                cfg.LogLevel = logLevel
            }
            if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
                cfg.LogFormat = logFormat
            }
            if err := cfg.Validate(); err != nil {
                return err
            }
            return serve(cmd.Context(), cfg)
        },
    }
    cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (overrides TTT_ADDR)")
    return cmd
}

func serve(parent context.Context, cfg config.Config) error {
    log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

    ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
    defer stop()

    svc := app.NewService()
    svc.SetLogger(log)
    svc.SetTTL(cfg.SessionTTL)
    go svc.Run(ctx, cfg.SweepInterval)

    srv := &http.Server{
        Addr: cfg.Addr,
        Handler: web.NewServer(svc,
            web.WithLogger(log),
            web.WithHeartbeat(cfg.Heartbeat),
            web.WithRequestTimeout(cfg.RequestTimeout),
        ),
        ReadHeaderTimeout: 5 * time.Second,
        // event streams end with the process context
        BaseContext: func(net.Listener) context.Context { return ctx },
    }

    errCh := make(chan error, 1)
    go func() { errCh <- srv.ListenAndServe() }()
    log.Info().Str("addr", cfg.Addr).Dur("session_ttl", cfg.SessionTTL).Msg("starting tictactoe server")

    select {
    case err := <-errCh:
        if !errors.Is(err, http.ErrServerClosed) {
            return fmt.Errorf("serve: %w", err)
        }
        return nil
    case <-ctx.Done():
    }

    log.Info().Msg("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        return fmt.Errorf("shutdown: %w", err)
    }
    return nil
}
