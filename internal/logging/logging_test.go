package logging

import (
    "bytes"
    "encoding/json"
    "testing"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
    var buf bytes.Buffer
    log := New(&buf, "warn", "json")
    log.Info().Msg("hidden")
    log.Warn().Str("game", "g1").Msg("shown")

    var line map[string]any
    require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
    assert.Equal(t, "shown", line["message"])
    assert.Equal(t, "g1", line["game"])
    assert.Equal(t, "warn", line["level"])
}

func TestNewFallsBackToInfo(t *testing.T) {
    var buf bytes.Buffer
    log := New(&buf, "nonsense", "json")
    assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
    log = New(&buf, "", "json")
    assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewConsole(t *testing.T) {
    var buf bytes.Buffer
    log := New(&buf, "info", "console")
    log.Info().Msg("hello")
    assert.Contains(t, buf.String(), "hello")
    assert.NotContains(t, buf.String(), `"message"`)
}
