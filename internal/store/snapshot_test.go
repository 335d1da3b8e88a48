package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharloom/echoes/internal/domain"
)

func newTestStateFiles(t *testing.T) *StateFiles {
	t.Helper()
	f, err := NewStateFiles(t.TempDir())
	require.NoError(t, err)
	return f
}

func TestStateFiles_SnapshotRoundTrip(t *testing.T) {
	f := newTestStateFiles(t)

	assert.Nil(t, f.LoadSnapshot(), "no snapshot stored yet")

	snap := domain.TimerSnapshot{TimeLeftSec: 423, IsRunning: true, SelectedArea: "farfields"}
	require.NoError(t, f.SaveSnapshot(snap))

	got := f.LoadSnapshot()
	require.NotNil(t, got)
	assert.Equal(t, snap, *got)

	require.NoError(t, f.ClearSnapshot())
	assert.Nil(t, f.LoadSnapshot())
}

func TestStateFiles_CorruptSnapshotDiscarded(t *testing.T) {
	f := newTestStateFiles(t)

	require.NoError(t, os.WriteFile(filepath.Join(f.Dir(), snapshotFile), []byte("{not json"), 0o644))
	assert.Nil(t, f.LoadSnapshot())

	require.NoError(t, os.WriteFile(filepath.Join(f.Dir(), snapshotFile), []byte(`{"timeLeftSec":-5}`), 0o644))
	assert.Nil(t, f.LoadSnapshot(), "negative remaining time is not restorable")
}

func TestStateFiles_PendingPlanRoundTrip(t *testing.T) {
	f := newTestStateFiles(t)

	assert.Nil(t, f.LoadPendingPlan())

	plan := domain.SessionPlan{Segments: []domain.Segment{{Area: "bonebottom", DurationSec: 1500}}}
	require.NoError(t, f.SavePendingPlan(plan))

	got := f.LoadPendingPlan()
	require.NotNil(t, got)
	assert.Equal(t, plan.Segments, got.Segments)

	require.NoError(t, f.ClearPendingPlan())
	assert.Nil(t, f.LoadPendingPlan())
}

func TestStateFiles_SessionID(t *testing.T) {
	f := newTestStateFiles(t)

	assert.Empty(t, f.LoadSessionID())

	require.NoError(t, f.SaveSessionID("abc-123"))
	assert.Equal(t, "abc-123", f.LoadSessionID())

	require.NoError(t, f.ClearSessionID())
	assert.Empty(t, f.LoadSessionID())
	require.NoError(t, f.ClearSessionID(), "clearing twice is fine")
}

func TestStateFiles_Autostart(t *testing.T) {
	f := newTestStateFiles(t)

	assert.False(t, f.Autostart())
	require.NoError(t, f.SetAutostart(true))
	assert.True(t, f.Autostart())
	require.NoError(t, f.SetAutostart(false))
	assert.False(t, f.Autostart())
}
