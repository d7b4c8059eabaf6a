package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/ledger"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QUIZDECK_LOG_LEVEL", "disabled")
	t.Setenv("QUIZDECK_CONFIG", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTopicsCommand(t *testing.T) {
	out, err := execute(t, "", "topics", "--kind=")
	require.NoError(t, err)
	assert.Contains(t, out, "week-1-4")
	assert.Contains(t, out, "marathon")
	assert.Contains(t, out, "strategy-exam")

	out, err = execute(t, "", "topics", "--kind=written")
	require.NoError(t, err)
	assert.NotContains(t, out, "week-1-4")
	assert.Contains(t, out, "security-essay")

	_, err = execute(t, "", "topics", "--kind=essay")
	assert.Error(t, err)
}

func TestGradeCommand(t *testing.T) {
	out, err := execute(t, "", "grade", "--revealed=false", "s1-generic",
		"Cost leadership and differentiation both create competitive advantage.")
	require.NoError(t, err)
	assert.Contains(t, out, "3/5 matched")
	assert.Contains(t, out, "/100")
	assert.NotContains(t, out, "Reveal penalty")
}

func TestGradeCommandReadsStdin(t *testing.T) {
	out, err := execute(t, "Focus matters.", "grade", "--revealed=true", "s1-generic")
	require.NoError(t, err)
	assert.Contains(t, out, "1/5 matched")
	assert.Contains(t, out, "Reveal penalty")
}

func TestGradeCommandErrors(t *testing.T) {
	_, err := execute(t, "", "grade", "--revealed=false", "no-such-question", "text")
	assert.Error(t, err)

	_, err = execute(t, "", "grade", "--revealed=false", "w1-cia", "text")
	assert.ErrorContains(t, err, "not a written question")

	_, err = execute(t, "   ", "grade", "--revealed=false", "s1-generic")
	assert.ErrorContains(t, err, "empty answer")
}

func TestLedgerAndResetCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quizdeck.db")

	out, err := execute(t, "", "ledger", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No written topics completed yet.")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	book, err := ledger.Open(context.Background(), st.SnapshotRepo(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, book.Record(context.Background(), &session.Summary{
		TopicID:        "strategy-exam",
		TopicTitle:     "Strategy Exam",
		Mode:           session.ModeExam,
		PointsEarned:   20,
		PointsPossible: 40,
		CompletedAt:    time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}))
	require.NoError(t, st.Close())

	out, err = execute(t, "", "ledger", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "strategy-exam")
	assert.Contains(t, out, "Total: 20.0/40 points (50%) across 1 topics")

	_, err = execute(t, "", "reset", "--db", dbPath, "--yes=false")
	assert.Error(t, err)

	out, err = execute(t, "", "reset", "--db", dbPath, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Ledger cleared.")

	out, err = execute(t, "", "ledger", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No written topics completed yet.")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "quizdeck (devel)")
}
