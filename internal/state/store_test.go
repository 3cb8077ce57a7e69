package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/moddoc/internal/report"
)

func sampleReport(id string) *report.RunReport {
	return &report.RunReport{
		RunID:   id,
		Started: time.Now().UTC().Truncate(time.Second),
		Modules: []report.ModuleResult{{Module: "./demo", Types: 3}},
	}
}

func TestSQLiteStore_AppendAndRecent(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Append(ctx, sampleReport("run-1")))
	require.NoError(t, s.Append(ctx, sampleReport("run-2")))
	require.NoError(t, s.Append(ctx, sampleReport("run-3")))

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].RunID, "newest first")
	assert.Equal(t, "run-2", runs[1].RunID)
	require.Len(t, runs[0].Modules, 1)
	assert.Equal(t, 3, runs[0].Modules[0].Types)
}

func TestSQLiteStore_RecentDefaultLimit(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Append(ctx, sampleReport("run-1")))

	runs, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(context.Background(), sampleReport("run-1")))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].RunID)
}

func TestOpen_EmptyPathIsNoop(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(context.Background(), sampleReport("run-1")))
	runs, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
