package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pharloom/echoes/internal/domain"
)

// File names for the small JSON state keys kept next to the database.
const (
	snapshotFile  = "timer_state.json"
	planFile      = "pending_plan.json"
	sessionIDFile = "current_session"
	autostartFile = "autostart"
)

// StateFiles persists the handful of small state keys that survive a
// restart: the timer snapshot, the pending plan handed over by the plan
// builder, the current session id, and the autostart flag.
type StateFiles struct {
	dir string
}

// NewStateFiles creates the state directory if needed.
func NewStateFiles(dir string) (*StateFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.StoreError{Op: "init", Key: dir, Err: err}
	}
	return &StateFiles{dir: dir}, nil
}

// Dir returns the state directory path.
func (f *StateFiles) Dir() string { return f.dir }

// SaveSnapshot writes the timer snapshot.
func (f *StateFiles) SaveSnapshot(snap domain.TimerSnapshot) error {
	return f.writeJSON(snapshotFile, snap)
}

// LoadSnapshot reads the timer snapshot. Returns nil when none is stored
// or the stored value is unreadable; a corrupt snapshot is discarded
// rather than surfaced.
func (f *StateFiles) LoadSnapshot() *domain.TimerSnapshot {
	var snap domain.TimerSnapshot
	if err := f.readJSON(snapshotFile, &snap); err != nil {
		return nil
	}
	if snap.TimeLeftSec < 0 {
		return nil
	}
	return &snap
}

// ClearSnapshot removes the stored timer snapshot.
func (f *StateFiles) ClearSnapshot() error {
	return f.remove(snapshotFile)
}

// SavePendingPlan stores the plan handed over for the next session.
func (f *StateFiles) SavePendingPlan(plan domain.SessionPlan) error {
	return f.writeJSON(planFile, plan)
}

// LoadPendingPlan reads the pending plan, or nil when none is stored or it
// is unreadable.
func (f *StateFiles) LoadPendingPlan() *domain.SessionPlan {
	var plan domain.SessionPlan
	if err := f.readJSON(planFile, &plan); err != nil {
		return nil
	}
	return &plan
}

// ClearPendingPlan removes the stored pending plan.
func (f *StateFiles) ClearPendingPlan() error {
	return f.remove(planFile)
}

// SaveSessionID stores the id of the session in progress.
func (f *StateFiles) SaveSessionID(id string) error {
	if err := os.WriteFile(f.path(sessionIDFile), []byte(id+"\n"), 0o644); err != nil {
		return &domain.StoreError{Op: "save", Key: sessionIDFile, Err: err}
	}
	return nil
}

// LoadSessionID returns the stored session id, or "" when none is stored.
func (f *StateFiles) LoadSessionID() string {
	data, err := os.ReadFile(f.path(sessionIDFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ClearSessionID removes the stored session id.
func (f *StateFiles) ClearSessionID() error {
	return f.remove(sessionIDFile)
}

// SetAutostart records whether the next launch should start its session
// without waiting for input.
func (f *StateFiles) SetAutostart(on bool) error {
	if !on {
		return f.remove(autostartFile)
	}
	if err := os.WriteFile(f.path(autostartFile), []byte("1\n"), 0o644); err != nil {
		return &domain.StoreError{Op: "save", Key: autostartFile, Err: err}
	}
	return nil
}

// Autostart reports whether the autostart flag is set.
func (f *StateFiles) Autostart() bool {
	_, err := os.Stat(f.path(autostartFile))
	return err == nil
}

func (f *StateFiles) path(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *StateFiles) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &domain.StoreError{Op: "save", Key: name, Err: err}
	}
	if err := os.WriteFile(f.path(name), append(data, '\n'), 0o644); err != nil {
		return &domain.StoreError{Op: "save", Key: name, Err: err}
	}
	return nil
}

func (f *StateFiles) readJSON(name string, v any) error {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		return &domain.StoreError{Op: "load", Key: name, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &domain.StoreError{Op: "load", Key: name, Err: err}
	}
	return nil
}

func (f *StateFiles) remove(name string) error {
	err := os.Remove(f.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.StoreError{Op: "clear", Key: name, Err: err}
	}
	return nil
}
