package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
    cfg, err := Parse()
    require.NoError(t, err)
    assert.Equal(t, ":8080", cfg.Addr)
    assert.Equal(t, "info", cfg.LogLevel)
    assert.Equal(t, "console", cfg.LogFormat)
    assert.Equal(t, 15*time.Second, cfg.Heartbeat)
    assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
    assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
    assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseOverrides(t *testing.T) {
    t.Setenv("TTT_ADDR", "127.0.0.1:9000")
    t.Setenv("TTT_LOG_LEVEL", "debug")
    t.Setenv("TTT_LOG_FORMAT", "json")
    t.Setenv("TTT_SESSION_TTL", "30m")

    cfg, err := Parse()
    require.NoError(t, err)
    assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
    assert.Equal(t, "debug", cfg.LogLevel)
    assert.Equal(t, "json", cfg.LogFormat)
    assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestParseRejectsBadValues(t *testing.T) {
    cases := map[string][2]string{
        "unparsable duration": {"TTT_SSE_HEARTBEAT", "soon"},
        "negative duration":   {"TTT_SWEEP_INTERVAL", "-1s"},
        "unknown format":      {"TTT_LOG_FORMAT", "xml"},
        "unknown level":       {"TTT_LOG_LEVEL", "loud"},
    }
    for name, kv := range cases {
        t.Run(name, func(t *testing.T) {
            t.Setenv(kv[0], kv[1])
            _, err := Parse()
            require.Error(t, err)
        })
    }
}

func TestValidateFormatError(t *testing.T) {
    cfg, err := Parse()
    require.NoError(t, err)
    cfg.LogFormat = "yaml"
    assert.ErrorIs(t, cfg.Validate(), ErrBadFormat)
    cfg.LogFormat = "json"
    cfg.RequestTimeout = 0
    assert.ErrorIs(t, cfg.Validate(), ErrBadDuration)
}

func TestLoadReadsDotEnv(t *testing.T) {
    dir := t.TempDir()
    require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TTT_ADDR=127.0.0.1:7777\n"), 0o600))
    t.Chdir(dir)
    // registers restore of the original value; godotenv never overrides a set variable
    t.Setenv("TTT_ADDR", "")
    require.NoError(t, os.Unsetenv("TTT_ADDR"))

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "127.0.0.1:7777", cfg.Addr)
}

func TestLoadEnvironmentWinsOverDotEnv(t *testing.T) {
    dir := t.TempDir()
    require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TTT_ADDR=127.0.0.1:7777\n"), 0o600))
    t.Chdir(dir)
    t.Setenv("TTT_ADDR", "127.0.0.1:9999")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
}
