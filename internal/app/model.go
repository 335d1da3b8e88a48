// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pharloom/echoes/internal/config"
	"github.com/pharloom/echoes/internal/domain"
	"github.com/pharloom/echoes/internal/media"
	"github.com/pharloom/echoes/internal/plan"
	"github.com/pharloom/echoes/internal/timer"
	"github.com/pharloom/echoes/internal/types"
	"github.com/pharloom/echoes/internal/ui/overlay"
	"github.com/pharloom/echoes/internal/ui/styles"
	"github.com/pharloom/echoes/internal/ui/toast"
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

const (
	toastDuration = 4 * time.Second
	volumeStep    = 0.05
)

// MediaController is the surface the model drives media through. The
// countdown never waits on any of these calls.
type MediaController interface {
	Audio() media.State
	Video() media.State
	LoadArea(area domain.Area)
	LoadAndPlayArea(area domain.Area)
	CrossfadeTo(area domain.Area, total time.Duration)
	Play()
	Pause()
	Reset()
	SetVolume(v float64)
	Volume() float64
	Chime(ctx context.Context, path string)
	Stop()
}

// SessionRecorder is the write path for session history.
type SessionRecorder interface {
	Begin(ctx context.Context, plan domain.SessionPlan) error
	Record(ctx context.Context, typ domain.EventType) error
	Complete(ctx context.Context) error
	Active() bool
	Abandon()
}

// SnapshotSaver persists the timer snapshot after every change.
type SnapshotSaver interface {
	SaveSnapshot(snap domain.TimerSnapshot) error
}

// autostartMsg starts the session immediately after launch.
type autostartMsg struct{}

// Options wires a Model.
type Options struct {
	Config    *config.Config
	Plan      plan.Plan
	RawPlan   domain.SessionPlan
	Engine    *timer.Engine
	Media     MediaController
	Recorder  SessionRecorder
	Snapshots SnapshotSaver
	Logger    *slog.Logger
	Autostart bool
}

// Model is the main application state
type Model struct {
	cfg      *config.Config
	sessPlan plan.Plan
	rawPlan  domain.SessionPlan
	engine   *timer.Engine
	media    MediaController
	recorder SessionRecorder
	snaps    SnapshotSaver
	logger   *slog.Logger

	// UI state
	overlayStack  *overlay.Stack
	styles        *styles.Styles
	toastRenderer *toast.ToastRenderer
	spinner       spinner.Model

	toasts    []Toast
	indicator types.Indicator

	// tickGen identifies the live tick chain. Every stop or start bumps it;
	// ticks stamped with an older generation are dropped.
	tickGen int

	zen        bool
	debugPane  bool
	muted      bool
	lastVolume float64
	loadedArea string
	autostart  bool

	// Terminal size
	width  int
	height int
}

// New creates the application model. The engine arrives already positioned
// (fresh plan or restored snapshot) and not ticking.
func New(opts Options) Model {
	st := styles.New()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:           opts.Config,
		sessPlan:      opts.Plan,
		rawPlan:       opts.RawPlan,
		engine:        opts.Engine,
		media:         opts.Media,
		recorder:      opts.Recorder,
		snaps:         opts.Snapshots,
		logger:        opts.Logger,
		overlayStack:  overlay.NewStack(),
		styles:        st,
		toastRenderer: toast.New(st),
		spinner:       sp,
		lastVolume:    opts.Config.Media.Volume,
		autostart:     opts.Autostart,
		width:         80,
		height:        24,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.autostart {
		cmds = append(cmds, func() tea.Msg { return autostartMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case autostartMsg:
		return m.startCountdown()

	case tickMsg:
		return m.handleTick(msg)

	case toastSweepMsg:
		m.expireToasts()
		return m, nil

	case indicatorExpiredMsg:
		// Only the expiry belonging to the current indicator clears it; a
		// repeated action replaces the indicator and strands the old expiry.
		if m.indicator.Expires.Equal(msg.setAt.Add(types.IndicatorDuration)) {
			m.indicator = types.Indicator{}
		}
		return m, nil

	case tea.BlurMsg:
		return m.handleBlur()

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Update(msg)
		return m, nil

	case tea.KeyMsg:
		// An open overlay owns the keyboard.
		if !m.overlayStack.IsEmpty() {
			cmd := m.overlayStack.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()

	case " ", "k":
		if m.engine.Ticking() {
			return m.pauseCountdown()
		}
		return m.startCountdown()

	case "f":
		m.zen = !m.zen
		return m.withIndicator(types.ActionZen)

	case "d":
		m.debugPane = !m.debugPane
		return m, nil

	case "?":
		cmd := m.overlayStack.Push(overlay.NewHelpOverlay())
		return m, cmd

	case "m":
		return m.toggleMute()

	case "+", "=", "up":
		return m.adjustVolume(volumeStep)

	case "-", "_", "down":
		return m.adjustVolume(-volumeStep)

	case "r":
		return m.requestReset()

	case "enter":
		// Retry playback after a media failure. Harmless otherwise.
		if m.engine.Ticking() && m.engine.Phase() == timer.PhaseRunning {
			m.media.Play()
			return m.withIndicator(types.ActionPlay)
		}
		return m, nil
	}

	return m, nil
}

// startCountdown starts or resumes the countdown. The first start of a
// fresh plan opens the session record before any media command runs.
func (m Model) startCountdown() (tea.Model, tea.Cmd) {
	if !m.engine.Start() {
		return m, nil
	}

	if !m.recorder.Active() {
		if err := m.recorder.Begin(context.Background(), m.rawPlan); err != nil {
			m.logger.Error("session not recorded", "error", err)
			m.addToast(Toast{Level: ToastError, Message: "History unavailable: " + err.Error(), Expires: time.Now().Add(toastDuration)})
		}
	}

	area, ok := m.cfg.AreaByID(m.engine.CurrentArea())
	if ok && m.loadedArea != area.ID {
		m.media.LoadAndPlayArea(area)
		m.loadedArea = area.ID
	} else {
		m.media.Play()
	}

	m.saveSnapshot()
	m.tickGen++
	model, cmd := m.withIndicator(types.ActionPlay)
	return model, tea.Batch(cmd, tickEvery(time.Second, m.tickGen))
}

func (m Model) pauseCountdown() (tea.Model, tea.Cmd) {
	m.tickGen++
	m.engine.Pause()
	m.media.Pause()
	m.saveSnapshot()
	return m.withIndicator(types.ActionPause)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.engine.Ticking() {
		m.engine.Pause()
		m.media.Pause()
	}
	m.saveSnapshot()
	m.media.Stop()
	return m, tea.Quit
}

func (m Model) toggleMute() (tea.Model, tea.Cmd) {
	if m.muted {
		restore := m.lastVolume
		if restore <= 0 {
			restore = m.cfg.Media.Volume
		}
		m.media.SetVolume(restore)
		m.muted = false
		return m.withIndicator(types.ActionVolume)
	}
	if v := m.media.Volume(); v > 0 {
		m.lastVolume = v
	}
	m.media.SetVolume(0)
	m.muted = true
	return m.withIndicator(types.ActionMute)
}

func (m Model) adjustVolume(delta float64) (tea.Model, tea.Cmd) {
	v := m.media.Volume() + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.media.SetVolume(v)
	m.muted = v == 0
	if v > 0 {
		m.lastVolume = v
	}
	return m.withIndicator(types.ActionVolume)
}

// requestReset gates the reset behind a confirmation dialog. While the
// dialog is up the countdown is paused; cancelling restores the prior
// running state. A completed session resets without asking.
func (m Model) requestReset() (tea.Model, tea.Cmd) {
	if m.engine.Phase() == timer.PhaseCompleted {
		m.applyReset()
		return m.withIndicator(types.ActionReset)
	}

	m.tickGen++
	m.engine.RequestReset()
	m.media.Pause()
	cmd := m.overlayStack.Push(overlay.NewConfirmDialog(
		"Reset Session",
		"Restart the session from the first segment?",
	))
	return m, cmd
}

func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.overlayStack.Pop()

	result, ok := msg.Value.(overlay.ConfirmResult)
	if !ok || !m.engine.ResetPending() {
		return m, nil
	}

	if result.Confirmed {
		m.applyReset()
		m.addToast(Toast{Level: ToastInfo, Message: "Session reset", Expires: time.Now().Add(toastDuration)})
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastSweepMsg{} })
	}

	if resumed := m.engine.CancelReset(); resumed {
		m.media.Play()
		m.tickGen++
		return m, tickEvery(time.Second, m.tickGen)
	}
	return m, nil
}

// applyReset rewinds the engine to the first segment and the media to the
// first area, paused. The open session record is abandoned, not completed.
func (m *Model) applyReset() {
	m.tickGen++
	m.engine.ConfirmReset(m.sessPlan)
	if m.recorder.Active() {
		m.recorder.Abandon()
	}
	if area, ok := m.cfg.AreaByID(m.engine.CurrentArea()); ok {
		m.media.LoadArea(area)
		m.loadedArea = area.ID
	}
	m.media.Reset()
	m.saveSnapshot()
}

// handleBlur records a focus loss while a focus segment is live. The
// countdown keeps running.
func (m Model) handleBlur() (tea.Model, tea.Cmd) {
	if !m.engine.Ticking() || m.engine.Phase() != timer.PhaseRunning || !m.recorder.Active() {
		return m, nil
	}
	if err := m.recorder.Record(context.Background(), domain.EventFocusLost); err != nil {
		m.logger.Warn("focus loss not recorded", "error", err)
	}
	m.addToast(Toast{Level: ToastWarning, Message: "Focus lost", Expires: time.Now().Add(toastDuration)})
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastSweepMsg{} })
}

// handleTick advances the countdown one second and applies the side effects
// of whatever boundary it crossed. Event log appends run before media
// commands; media failures are downgraded to player state and never stall
// the next tick. A tick from a superseded chain is dropped so a restart
// within one interval cannot leave two chains decrementing at once.
func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen {
		return m, nil
	}

	m.expireToasts()

	transition, ticked := m.engine.Tick()
	if !ticked {
		return m, nil
	}

	ctx := context.Background()
	switch transition {
	case timer.TransitionBreakStarted:
		if err := m.recorder.Record(ctx, domain.EventBreakReached); err != nil {
			m.logger.Warn("break not recorded", "error", err)
		}
		m.media.Pause()
		m.media.Chime(ctx, m.cfg.Media.BreakChime)
		msg := "Break time"
		if next, ok := m.cfg.AreaByID(m.engine.NextArea()); ok {
			msg = fmt.Sprintf("Break time, up next: %s", next.DisplayName)
		}
		m.addToast(Toast{Level: ToastInfo, Message: msg, Expires: time.Now().Add(toastDuration)})

	case timer.TransitionSegmentAdvanced:
		if area, ok := m.cfg.AreaByID(m.engine.CurrentArea()); ok {
			m.media.CrossfadeTo(area, 0)
			m.loadedArea = area.ID
		}

	case timer.TransitionSegmentResumed:
		if area, ok := m.cfg.AreaByID(m.engine.CurrentArea()); ok {
			m.media.LoadAndPlayArea(area)
			m.loadedArea = area.ID
		}

	case timer.TransitionCompleted:
		if err := m.recorder.Complete(ctx); err != nil {
			m.logger.Error("completion not recorded", "error", err)
		}
		m.media.Pause()
		m.media.Reset()
		m.media.Chime(ctx, m.cfg.Media.CompletionChime)
		m.addToast(Toast{Level: ToastSuccess, Message: "Session complete", Expires: time.Now().Add(toastDuration)})
	}

	m.saveSnapshot()

	if m.engine.Ticking() {
		return m, tickEvery(time.Second, m.tickGen)
	}
	return m, nil
}

func (m *Model) saveSnapshot() {
	if err := m.snaps.SaveSnapshot(m.engine.Snapshot()); err != nil {
		m.logger.Warn("snapshot not saved", "error", err)
	}
}

// withIndicator sets the action indicator and schedules its expiry.
func (m Model) withIndicator(action types.Action) (tea.Model, tea.Cmd) {
	now := time.Now()
	m.indicator = types.Indicator{Action: action, Expires: now.Add(types.IndicatorDuration)}
	return m, tea.Tick(types.IndicatorDuration, func(time.Time) tea.Msg {
		return indicatorExpiredMsg{setAt: now}
	})
}

// addToast adds a toast notification to the list
func (m *Model) addToast(t Toast) {
	m.toasts = append(m.toasts, t)
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	now := time.Now()
	filtered := make([]Toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			filtered = append(filtered, t)
		}
	}
	m.toasts = filtered
}
