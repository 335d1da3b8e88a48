package store

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharloom/echoes/internal/domain"
)

type mockRemote struct {
	createErr error
	appendErr error

	created  []domain.SessionPlan
	appended []domain.SessionEvent
	lastID   string
}

func (m *mockRemote) CreateSession(ctx context.Context, plan domain.SessionPlan) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, plan)
	return "remote-1", nil
}

func (m *mockRemote) AppendEvent(ctx context.Context, sessionID string, ev domain.SessionEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.lastID = sessionID
	m.appended = append(m.appended, ev)
	return nil
}

type recorderFixture struct {
	recorder *Recorder
	sessions *SessionStore
	state    *StateFiles
	remote   *mockRemote
}

func newRecorderFixture(t *testing.T) *recorderFixture {
	t.Helper()
	dir := t.TempDir()
	sessions, err := NewSessionStore(filepath.Join(dir, "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	state, err := NewStateFiles(dir)
	require.NoError(t, err)

	remote := &mockRemote{}
	recorder := NewRecorder(sessions, state, remote, slog.Default())
	recorder.launch = func(f func()) { f() }
	return &recorderFixture{
		recorder: recorder,
		sessions: sessions,
		state:    state,
		remote:   remote,
	}
}

func TestRecorder_BeginWritesLocalFirst(t *testing.T) {
	f := newRecorderFixture(t)

	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))
	require.True(t, f.recorder.Active())

	sess, err := f.sessions.GetSession(f.recorder.SessionID())
	require.NoError(t, err)
	require.Len(t, sess.Events, 1)
	assert.Equal(t, domain.EventSessionStarted, sess.Events[0].Type)
}

func TestRecorder_BeginConsumesPendingPlan(t *testing.T) {
	f := newRecorderFixture(t)
	require.NoError(t, f.state.SavePendingPlan(testPlan()))

	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))
	assert.Nil(t, f.state.LoadPendingPlan())

	assert.Equal(t, f.recorder.SessionID(), f.state.LoadSessionID(), "id persisted for crash recovery")
	assert.Len(t, f.remote.created, 1)
}

func TestRecorder_RemoteFailureDoesNotFailBegin(t *testing.T) {
	f := newRecorderFixture(t)
	f.remote.createErr = errors.New("backend down")

	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))
	assert.True(t, f.recorder.Active())

	// Without a remote id, later events are not mirrored either.
	require.NoError(t, f.recorder.Record(context.Background(), domain.EventBreakReached))
	assert.Empty(t, f.remote.appended)

	sess, err := f.sessions.GetSession(f.recorder.SessionID())
	require.NoError(t, err)
	assert.Len(t, sess.Events, 2, "local log unaffected by remote outage")
}

func TestRecorder_RecordMirrorsToRemoteID(t *testing.T) {
	f := newRecorderFixture(t)
	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))

	require.NoError(t, f.recorder.Record(context.Background(), domain.EventFocusLost))

	require.Len(t, f.remote.appended, 1)
	assert.Equal(t, domain.EventFocusLost, f.remote.appended[0].Type)
	assert.Equal(t, "remote-1", f.remote.lastID, "mirror uses the backend's id, not the local one")
}

func TestRecorder_RecordWithoutSession(t *testing.T) {
	f := newRecorderFixture(t)

	err := f.recorder.Record(context.Background(), domain.EventBreakReached)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecorder_CompleteClosesAndClears(t *testing.T) {
	f := newRecorderFixture(t)
	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))
	id := f.recorder.SessionID()
	require.NoError(t, f.state.SaveSnapshot(domain.TimerSnapshot{TimeLeftSec: 10}))

	require.NoError(t, f.recorder.Complete(context.Background()))

	assert.False(t, f.recorder.Active())
	assert.Empty(t, f.state.LoadSessionID())
	assert.Nil(t, f.state.LoadSnapshot())

	sess, err := f.sessions.GetSession(id)
	require.NoError(t, err)
	assert.True(t, sess.Completed)
	assert.Equal(t, domain.EventSessionCompleted, sess.Events[len(sess.Events)-1].Type)

	err = f.recorder.Complete(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound, "no open session after completion")
}

func TestRecorder_AbandonKeepsHistory(t *testing.T) {
	f := newRecorderFixture(t)
	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))
	id := f.recorder.SessionID()

	f.recorder.Abandon()

	assert.False(t, f.recorder.Active())
	assert.Empty(t, f.state.LoadSessionID())

	sess, err := f.sessions.GetSession(id)
	require.NoError(t, err)
	assert.False(t, sess.Completed)
	assert.NotEmpty(t, sess.Events)
}

func TestRecorder_Streaks(t *testing.T) {
	f := newRecorderFixture(t)
	require.NoError(t, f.recorder.Begin(context.Background(), testPlan()))
	require.NoError(t, f.recorder.Complete(context.Background()))

	streaks, err := f.recorder.Streaks()
	require.NoError(t, err)
	assert.Equal(t, 1, streaks.Focus)
	assert.Equal(t, 1, streaks.NoDeath)
}
