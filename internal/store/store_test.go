package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "webpackq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)

	first, err := s.RecordRun(Run{
		Command:    "traverse-entrypoint",
		Entrypoint: "main",
		StatsFile:  "stats.json",
		NodeCount:  120,
		EdgeCount:  310,
		OutputPath: "webpackq.json",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = s.RecordRun(Run{
		Command:    "paths-to-chunk",
		Entrypoint: "admin",
		NodeCount:  4,
		EdgeCount:  3,
	})
	require.NoError(t, err)

	runs, err := s.Runs("")
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	filtered, err := s.Runs("main")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "traverse-entrypoint", filtered[0].Command)
	assert.Equal(t, 120, filtered[0].NodeCount)
}

func TestRuns_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.Runs("")
	require.NoError(t, err)
	assert.Empty(t, runs)
}
