package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pharloom/echoes/internal/domain"
)

// Remote mirrors session records to the backend. Implementations must not
// block beyond their own timeout; the recorder treats every remote failure
// as non-fatal.
type Remote interface {
	CreateSession(ctx context.Context, plan domain.SessionPlan) (string, error)
	AppendEvent(ctx context.Context, sessionID string, ev domain.SessionEvent) error
}

// Recorder is the single write path for session history. Local storage is
// authoritative and written synchronously; the remote copy is a best-effort
// mirror pushed in the background, and its failures never surface past a
// log line.
type Recorder struct {
	sessions *SessionStore
	state    *StateFiles
	remote   Remote
	logger   *slog.Logger

	// launch runs remote mirroring; tests replace it to run inline.
	launch func(func())

	mu       sync.Mutex
	current  string
	remoteID string
}

// NewRecorder wires a recorder over local stores and an optional remote.
func NewRecorder(sessions *SessionStore, state *StateFiles, remote Remote, logger *slog.Logger) *Recorder {
	return &Recorder{
		sessions: sessions,
		state:    state,
		remote:   remote,
		logger:   logger,
		launch:   func(f func()) { go f() },
	}
}

// Begin opens a new session: the local row is written first, the session id
// persisted for crash recovery, then the remote mirror started. Events
// recorded before the backend answers are simply not mirrored.
func (r *Recorder) Begin(ctx context.Context, plan domain.SessionPlan) error {
	sess, err := r.sessions.StartSession(plan)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = sess.SessionID
	r.remoteID = ""
	r.mu.Unlock()

	if err := r.state.SaveSessionID(sess.SessionID); err != nil {
		r.logger.Warn("session id not persisted", "error", err)
	}
	// The pending plan is consumed the moment a session starts.
	if err := r.state.ClearPendingPlan(); err != nil {
		r.logger.Warn("pending plan not cleared", "error", err)
	}

	if err := r.sessions.AppendEvent(sess.SessionID, domain.SessionEvent{
		Type: domain.EventSessionStarted,
		TS:   sess.StartedAt,
	}); err != nil {
		return err
	}

	if r.remote != nil {
		r.launch(func() {
			remoteID, err := r.remote.CreateSession(ctx, plan)
			if err != nil {
				r.logger.Warn("remote session not created", "error", err)
				return
			}
			r.mu.Lock()
			if r.current == sess.SessionID {
				r.remoteID = remoteID
			}
			r.mu.Unlock()
		})
	}

	return nil
}

// Active reports whether a session is open.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != ""
}

// SessionID returns the id of the open session, or "".
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Record appends an event to the open session. The local append happens
// first; the remote mirror runs in the background and a failure is logged
// and dropped.
func (r *Recorder) Record(ctx context.Context, typ domain.EventType) error {
	r.mu.Lock()
	current, remoteID := r.current, r.remoteID
	r.mu.Unlock()
	if current == "" {
		return domain.ErrNotFound
	}

	ev := domain.SessionEvent{Type: typ, TS: time.Now().UTC()}
	if err := r.sessions.AppendEvent(current, ev); err != nil {
		return err
	}

	if r.remote != nil && remoteID != "" {
		r.launch(func() {
			if err := r.remote.AppendEvent(ctx, remoteID, ev); err != nil {
				r.logger.Warn("remote event not mirrored", "type", typ, "error", err)
			}
		})
	}

	return nil
}

// Complete records the completion event, marks the session done, and clears
// the recovery keys. Completion is recorded at most once per session.
func (r *Recorder) Complete(ctx context.Context) error {
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()
	if current == "" {
		return domain.ErrNotFound
	}

	if err := r.Record(ctx, domain.EventSessionCompleted); err != nil {
		return err
	}
	if err := r.sessions.CompleteSession(current); err != nil {
		return err
	}

	if err := r.state.ClearSessionID(); err != nil {
		r.logger.Warn("session id not cleared", "error", err)
	}
	if err := r.state.ClearSnapshot(); err != nil {
		r.logger.Warn("snapshot not cleared", "error", err)
	}

	r.mu.Lock()
	r.current = ""
	r.remoteID = ""
	r.mu.Unlock()
	return nil
}

// Abandon closes the open session without completing it. The row and its
// events stay for history; only the recovery keys are cleared.
func (r *Recorder) Abandon() {
	r.mu.Lock()
	current := r.current
	r.current = ""
	r.remoteID = ""
	r.mu.Unlock()
	if current == "" {
		return
	}
	if err := r.state.ClearSessionID(); err != nil {
		r.logger.Warn("session id not cleared", "error", err)
	}
}

// Streaks computes the streak counters from local history.
func (r *Recorder) Streaks() (domain.Streaks, error) {
	sessions, err := r.sessions.ListSessions()
	if err != nil {
		return domain.Streaks{}, err
	}
	return ComputeStreaks(sessions), nil
}
