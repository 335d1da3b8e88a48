// Package timer implements the countdown state machine that drives a
// session: per-second ticking, segment advancement, break insertion, and
// completion detection. The engine is pure state; media commands and event
// log appends are issued by the caller based on the transition each tick
// reports, so every rule here is testable without a clock.
package timer

import (
	"github.com/pharloom/echoes/internal/domain"
	"github.com/pharloom/echoes/internal/plan"
)

// Phase is the current mode of the engine. Exactly one is active at a time.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseBreak
	PhaseCompleted
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "FOCUS"
	case PhaseBreak:
		return "BREAK"
	case PhaseCompleted:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Transition reports what a tick did beyond counting down. The caller maps
// each case to media commands and event log appends; the countdown itself
// never waits on either.
type Transition int

const (
	// TransitionNone: the remaining time decremented, nothing else.
	TransitionNone Transition = iota
	// TransitionBreakStarted: a segment ended and a break began. Pause
	// media, play the break chime, append a BreakReached event.
	TransitionBreakStarted
	// TransitionSegmentAdvanced: a segment ended and the next began with no
	// intervening break. Crossfade audio and restart video for the new area.
	TransitionSegmentAdvanced
	// TransitionSegmentResumed: a break ended and the next segment began.
	// Resume media for the new area.
	TransitionSegmentResumed
	// TransitionCompleted: the last segment (or trailing break) ended. Stop
	// media, play the completion chime, append SessionCompleted, and mark
	// the session completed.
	TransitionCompleted
)

// Engine is the session timing state machine. It owns the plan snapshot it
// was constructed with; a reset replaces the snapshot wholesale rather than
// mutating it.
type Engine struct {
	plan      plan.Plan
	phase     Phase
	segIndex  int
	remaining int
	ticking   bool

	pendingReset *resetGate
}

// resetGate holds the state needed to restore a running session if a
// requested reset is cancelled.
type resetGate struct {
	wasTicking bool
}

// New creates an engine positioned at the first segment, not yet ticking.
func New(p plan.Plan) *Engine {
	e := &Engine{}
	e.load(p)
	return e
}

func (e *Engine) load(p plan.Plan) {
	e.plan = p
	e.phase = PhaseRunning
	e.segIndex = 0
	e.remaining = 0
	if len(p.Segments) > 0 {
		e.remaining = p.Segments[0].DurationSec
	}
	e.ticking = false
	e.pendingReset = nil
}

// Start begins ticking. Idempotent: calling it while already running changes
// nothing and reports false. Starting a completed session does nothing.
func (e *Engine) Start() bool {
	if e.ticking || e.phase == PhaseCompleted {
		return false
	}
	e.ticking = true
	return true
}

// Pause stops ticking without touching phase, index, or remaining time.
func (e *Engine) Pause() {
	e.ticking = false
}

// Ticking reports whether the countdown is live.
func (e *Engine) Ticking() bool {
	return e.ticking
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// SegmentIndex returns the position in the segment list. Meaningless once
// the phase is Completed.
func (e *Engine) SegmentIndex() int {
	return e.segIndex
}

// Remaining returns the seconds left in the current segment or break.
func (e *Engine) Remaining() int {
	return e.remaining
}

// Plan returns the immutable plan snapshot the engine is running.
func (e *Engine) Plan() plan.Plan {
	return e.plan
}

// CurrentArea returns the area of the current segment, re-derived from the
// canonical segment list so repeated transitions cannot drift.
func (e *Engine) CurrentArea() string {
	if len(e.plan.Segments) == 0 {
		return ""
	}
	i := e.segIndex
	if i >= len(e.plan.Segments) {
		i = len(e.plan.Segments) - 1
	}
	return e.plan.Segments[i].Area
}

// NextArea returns the area of the upcoming segment, or "" when the current
// segment is the last.
func (e *Engine) NextArea() string {
	if e.segIndex+1 < len(e.plan.Segments) {
		return e.plan.Segments[e.segIndex+1].Area
	}
	return ""
}

// Snapshot returns the externally observable runtime state. It is what gets
// persisted after every change.
func (e *Engine) Snapshot() domain.TimerSnapshot {
	return domain.TimerSnapshot{
		TimeLeftSec:  e.remaining,
		IsRunning:    e.ticking,
		SelectedArea: e.CurrentArea(),
	}
}

// Tick advances the countdown by one second and returns the transition it
// caused. It reports ticked=false when the engine is paused or completed, in
// which case no state changed.
//
// The boundary check is "remaining <= 1", not "== 0": if a tick was skipped
// the transition still fires rather than counting below zero.
func (e *Engine) Tick() (t Transition, ticked bool) {
	if !e.ticking || e.phase == PhaseCompleted {
		return TransitionNone, false
	}

	switch e.phase {
	case PhaseRunning:
		if e.remaining > 1 {
			e.remaining--
			return TransitionNone, true
		}
		e.remaining = 0
		if e.segIndex+1 >= len(e.plan.Segments) {
			e.complete()
			return TransitionCompleted, true
		}
		if e.plan.BreakDurationSec > 0 {
			e.phase = PhaseBreak
			e.remaining = e.plan.BreakDurationSec
			return TransitionBreakStarted, true
		}
		e.advanceSegment()
		return TransitionSegmentAdvanced, true

	case PhaseBreak:
		if e.remaining > 1 {
			e.remaining--
			return TransitionNone, true
		}
		e.remaining = 0
		if e.segIndex+1 >= len(e.plan.Segments) {
			e.complete()
			return TransitionCompleted, true
		}
		e.advanceSegment()
		return TransitionSegmentResumed, true
	}

	return TransitionNone, false
}

func (e *Engine) advanceSegment() {
	e.segIndex++
	e.phase = PhaseRunning
	e.remaining = e.plan.Segments[e.segIndex].DurationSec
}

func (e *Engine) complete() {
	e.phase = PhaseCompleted
	e.ticking = false
	e.remaining = 0
}

// Reset replaces the plan snapshot and rewinds to the first segment,
// Running phase, not ticking.
func (e *Engine) Reset(p plan.Plan) {
	e.load(p)
}

// RequestReset gates a reset behind confirmation: ticking pauses and the
// prior running state is remembered so a cancel can restore it.
func (e *Engine) RequestReset() {
	if e.pendingReset != nil {
		return
	}
	e.pendingReset = &resetGate{wasTicking: e.ticking}
	e.ticking = false
}

// ResetPending reports whether a reset is awaiting confirmation.
func (e *Engine) ResetPending() bool {
	return e.pendingReset != nil
}

// ConfirmReset applies the gated reset with a fresh plan snapshot.
func (e *Engine) ConfirmReset(p plan.Plan) {
	e.load(p)
}

// CancelReset abandons the gated reset. If the session was running when the
// reset was requested, ticking resumes with index and remaining unchanged.
func (e *Engine) CancelReset() (resumed bool) {
	if e.pendingReset == nil {
		return false
	}
	resumed = e.pendingReset.wasTicking && e.phase != PhaseCompleted
	e.ticking = resumed
	e.pendingReset = nil
	return resumed
}
