package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pharloom/echoes/internal/domain"
)

// SessionStore provides SQLite-backed persistence for study sessions and
// their event logs.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens the SQLite database at dbPath and creates tables if
// they don't exist.
func NewSessionStore(dbPath string) (*SessionStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &domain.StoreError{Op: "open", Key: dbPath, Err: err}
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, &domain.StoreError{Op: "migrate", Key: dbPath, Err: err}
	}

	return &SessionStore{db: db}, nil
}

// Close closes the database connection.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		plan TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		type TEXT NOT NULL,
		ts DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	`
	_, err := db.Exec(schema)
	return err
}

// StartSession records a new session with the given plan and returns it.
func (s *SessionStore) StartSession(plan domain.SessionPlan) (*domain.StoredSession, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, &domain.StoreError{Op: "start", Key: id, Err: err}
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (id, plan, started_at, completed)
		 VALUES (?, ?, ?, 0)`,
		id, string(planJSON), now,
	)
	if err != nil {
		return nil, &domain.StoreError{Op: "start", Key: id, Err: err}
	}

	return &domain.StoredSession{
		SessionID: id,
		StartedAt: now,
		Plan:      plan,
	}, nil
}

// AppendEvent appends an event to the session's log. Events are never
// updated or removed.
func (s *SessionStore) AppendEvent(sessionID string, ev domain.SessionEvent) error {
	ts := ev.TS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO events (session_id, type, ts) VALUES (?, ?, ?)`,
		sessionID, string(ev.Type), ts,
	)
	if err != nil {
		return &domain.StoreError{Op: "append", Key: sessionID, Err: err}
	}

	return nil
}

// CompleteSession marks the session completed. The completion timestamp is
// written once; repeated calls leave the original untouched.
func (s *SessionStore) CompleteSession(sessionID string) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET completed = 1, completed_at = ?
		 WHERE id = ? AND completed = 0`,
		time.Now().UTC(), sessionID,
	)
	if err != nil {
		return &domain.StoreError{Op: "complete", Key: sessionID, Err: err}
	}

	return nil
}

// GetSession retrieves one session with its event log.
func (s *SessionStore) GetSession(sessionID string) (*domain.StoredSession, error) {
	row := s.db.QueryRow(
		`SELECT id, plan, started_at, completed, completed_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "get", Key: sessionID, Err: err}
	}

	if err := s.loadEvents(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// ListSessions returns all sessions, most recently started first, each with
// its event log.
func (s *SessionStore) ListSessions() ([]domain.StoredSession, error) {
	rows, err := s.db.Query(
		`SELECT id, plan, started_at, completed, completed_at
		 FROM sessions
		 ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var sessions []domain.StoredSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: "list", Err: err}
		}
		sessions = append(sessions, *sess)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}

	for i := range sessions {
		if err := s.loadEvents(&sessions[i]); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// RecentSessions returns up to limit of the most recently started sessions.
func (s *SessionStore) RecentSessions(limit int) ([]domain.StoredSession, error) {
	sessions, err := s.ListSessions()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (s *SessionStore) loadEvents(sess *domain.StoredSession) error {
	rows, err := s.db.Query(
		`SELECT type, ts FROM events
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sess.SessionID,
	)
	if err != nil {
		return &domain.StoreError{Op: "events", Key: sess.SessionID, Err: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ev domain.SessionEvent
		var typ string
		if err := rows.Scan(&typ, &ev.TS); err != nil {
			return &domain.StoreError{Op: "events", Key: sess.SessionID, Err: err}
		}
		ev.Type = domain.EventType(typ)
		sess.Events = append(sess.Events, ev)
	}

	if err := rows.Err(); err != nil {
		return &domain.StoreError{Op: "events", Key: sess.SessionID, Err: err}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.StoredSession, error) {
	var sess domain.StoredSession
	var planJSON string
	var completed int
	var completedAt sql.NullTime

	if err := row.Scan(&sess.SessionID, &planJSON, &sess.StartedAt, &completed, &completedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(planJSON), &sess.Plan); err != nil {
		return nil, err
	}

	sess.Completed = completed != 0
	if completedAt.Valid {
		t := completedAt.Time
		sess.CompletedAt = &t
	}

	return &sess, nil
}
