package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "q.log")

	log, closer, err := Setup("info", "json", path)
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	log.Info().Str("component", "test").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, "time")
}

func TestSetupDisabled(t *testing.T) {
	dir := t.TempDir()
	log, closer, err := Setup("disabled", "json", filepath.Join(dir, "never.log"))
	require.NoError(t, err)
	log.Error().Msg("dropped")
	require.NoError(t, closer.Close())

	_, err = os.Stat(filepath.Join(dir, "never.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestSetupDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	_, closer, err := Setup("bogus", "json", "")
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	path, err := DefaultLogPath()
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel, "pretty")
	log.Info().Msg("skip")
	log.Warn().Msg("careful")

	out := buf.String()
	assert.NotContains(t, out, "skip")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "WRN")
}
