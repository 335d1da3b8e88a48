// Package media wraps one audio and one video playback resource, both
// backed by mpv processes driven over JSON-IPC. Playback state is derived
// solely from the events mpv reports, never asserted optimistically by
// calling code, and every fault is recoverable: the timer never waits on a
// media operation.
package media

import "context"

// EventKind classifies an event reported by a playback backend.
type EventKind int

const (
	// EventFileLoaded: the current file is loaded and playable.
	EventFileLoaded EventKind = iota
	// EventEndFile: playback ended or failed; Err is set on failure.
	EventEndFile
	// EventPause: the pause property changed; Paused carries the new value.
	EventPause
	// EventTimePos: playback position update in seconds.
	EventTimePos
	// EventDuration: file duration became known, in seconds.
	EventDuration
	// EventClosed: the backend shut down; no further events follow.
	EventClosed
)

// Event is one state report from a backend.
type Event struct {
	Kind   EventKind
	Paused bool
	Value  float64
	Err    error
}

// Backend controls a single playback engine instance. Implementations must
// be safe for one commanding goroutine plus one event-draining goroutine.
type Backend interface {
	// Start launches the engine and begins reporting events.
	Start(ctx context.Context) error
	// Command issues one fire-and-forget control command.
	Command(args ...any) error
	// Events returns the stream of state reports. Closed after EventClosed.
	Events() <-chan Event
	// Stop terminates the engine and releases its resources.
	Stop() error
}
