package domain

import "time"

// EventType identifies a session lifecycle event.
type EventType string

const (
	EventSessionStarted   EventType = "SessionStarted"
	EventFocusLost        EventType = "FocusLost"
	EventBreakReached     EventType = "BreakReached"
	EventSessionCompleted EventType = "SessionCompleted"
	// EventDied is stored and counted but never emitted by the timer.
	EventDied EventType = "Died"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventSessionStarted, EventFocusLost, EventBreakReached,
		EventSessionCompleted, EventDied:
		return true
	}
	return false
}

// SessionEvent is one immutable entry in a session's event log.
type SessionEvent struct {
	Type EventType `json:"type"`
	TS   time.Time `json:"ts"`
}

// StoredSession is a durable session record. After creation it only grows:
// events are appended and the completion fields are set exactly once.
type StoredSession struct {
	SessionID   string         `json:"sessionId"`
	StartedAt   time.Time      `json:"startedAt"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Plan        SessionPlan    `json:"plan"`
	Events      []SessionEvent `json:"events"`
}

// Streaks are the read-only aggregates computed from stored sessions.
type Streaks struct {
	Daily   int `json:"daily"`
	Focus   int `json:"focus"`
	NoDeath int `json:"noDeath"`
}

// TimerSnapshot is the persisted slice of the timer's runtime state. It is
// written after every change and restored on startup; IsRunning is never
// auto-resumed from a restore.
type TimerSnapshot struct {
	TimeLeftSec  int    `json:"timeLeftSec"`
	IsRunning    bool   `json:"isRunning"`
	SelectedArea string `json:"selectedArea"`
}
