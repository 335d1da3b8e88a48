package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound    = errors.New("not found")
	ErrNoPlan      = errors.New("no duration information in plan")
	ErrUnknownArea = errors.New("unknown area")
)

// MediaFault classifies a media error for user-facing status text. Every
// fault is recoverable; none may stall the countdown.
type MediaFault int

const (
	FaultNetwork MediaFault = iota
	FaultUnsupported
	FaultBlocked
	FaultInterrupted
)

// Message returns the user-facing status string for the fault.
func (f MediaFault) Message() string {
	switch f {
	case FaultNetwork:
		return "Network error loading media"
	case FaultUnsupported:
		return "Media format not supported"
	case FaultBlocked:
		return "Playback blocked. Press enter to retry."
	case FaultInterrupted:
		return "Playback interrupted. Try again."
	default:
		return "Media error"
	}
}

// MediaError represents an error from the media controller.
type MediaError struct {
	Op     string // "load", "play", "pause", ...
	Medium string // "audio" or "video"
	Fault  MediaFault
	Err    error
}

func (e *MediaError) Error() string {
	if e.Medium != "" {
		return fmt.Sprintf("media %s [%s]: %v", e.Op, e.Medium, e.Err)
	}
	return fmt.Sprintf("media %s: %v", e.Op, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// StoreError represents an error from local persistence.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// APIError represents a failed call to the remote backend.
type APIError struct {
	Op     string
	Status int
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("api %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
