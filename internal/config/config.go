// Package config loads server settings from the environment.
package config

import (
    "errors"
    "fmt"
    "time"

    "github.com/caarlos0/env/v11"
    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
)

// Config controls the HTTP server and the in-memory game store.
type Config struct {
    Addr           string        `env:"TTT_ADDR"            envDefault:":8080"`
    LogLevel       string        `env:"TTT_LOG_LEVEL"       envDefault:"info"`
    LogFormat      string        `env:"TTT_LOG_FORMAT"      envDefault:"console"`
    Heartbeat      time.Duration `env:"TTT_SSE_HEARTBEAT"   envDefault:"15s"`
    SessionTTL     time.Duration `env:"TTT_SESSION_TTL"     envDefault:"2h"`
    SweepInterval  time.Duration `env:"TTT_SWEEP_INTERVAL"  envDefault:"5m"`
    RequestTimeout time.Duration `env:"TTT_REQUEST_TIMEOUT" envDefault:"10s"`
}

var (
    ErrBadFormat   = errors.New("log format must be console or json")
    ErrBadDuration = errors.New("durations must be positive")
)

// Load reads an optional .env file, then parses the environment.
func Load() (Config, error) {
    _ = godotenv.Load()
    return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
    var cfg Config
    if err := env.Parse(&cfg); err != nil {
        return Config{}, fmt.Errorf("parse env: %w", err)
    }
    if err := cfg.Validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

// Validate checks values the env parser cannot.
func (c Config) Validate() error {
    if c.Addr == "" {
        return errors.New("address must not be empty")
    }
    if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
        return fmt.Errorf("log level %q: %w", c.LogLevel, err)
    }
    switch c.LogFormat {
    case "console", "json":
    default:
        return fmt.Errorf("%w: %q", ErrBadFormat, c.LogFormat)
    }
    for name, d := range map[string]time.Duration{
        "heartbeat":       c.Heartbeat,
        "session ttl":     c.SessionTTL,
        "sweep interval":  c.SweepInterval,
        "request timeout": c.RequestTimeout,
    } {
        if d <= 0 {
            return fmt.Errorf("%s: %w", name, ErrBadDuration)
        }
    }
    return nil
}
