package media

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pharloom/echoes/internal/domain"
)

// State is the externally observable playback state of one medium. It only
// changes in response to backend events, with two exceptions that mirror
// commanded values rather than engine feedback: Volume and the cleared
// error on a fresh load.
type State struct {
	IsLoaded    bool
	IsPlaying   bool
	Error       string
	Volume      float64
	CurrentTime float64
	Duration    float64
}

// Player wraps one playback backend and tracks its state.
type Player struct {
	medium  string // "audio" or "video"
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	onState func(medium string, s State)
}

// NewPlayer creates a player for the given medium. onState, when non-nil,
// is invoked after every state change (from the event-pump goroutine).
func NewPlayer(medium string, backend Backend, logger *slog.Logger, onState func(string, State)) *Player {
	return &Player{
		medium:  medium,
		backend: backend,
		logger:  logger,
		state:   State{Volume: 0.7},
		onState: onState,
	}
}

// Start launches the backend and begins draining its events.
func (p *Player) Start(ctx context.Context) error {
	if err := p.backend.Start(ctx); err != nil {
		return &domain.MediaError{Op: "start", Medium: p.medium, Fault: domain.FaultBlocked, Err: err}
	}
	go p.pump()
	return nil
}

func (p *Player) pump() {
	for ev := range p.backend.Events() {
		switch ev.Kind {
		case EventFileLoaded:
			p.update(func(s *State) {
				s.IsLoaded = true
				s.Error = ""
			})
		case EventEndFile:
			if ev.Err != nil {
				fault := classifyLoadError(ev.Err)
				p.logger.Warn("media load failed", "medium", p.medium, "error", ev.Err)
				p.update(func(s *State) {
					s.IsLoaded = false
					s.IsPlaying = false
					s.Error = fault.Message()
				})
			}
		case EventPause:
			paused := ev.Paused
			p.update(func(s *State) {
				s.IsPlaying = !paused
				if !paused {
					s.Error = ""
				}
			})
		case EventTimePos:
			p.update(func(s *State) { s.CurrentTime = ev.Value })
		case EventDuration:
			p.update(func(s *State) { s.Duration = ev.Value })
		case EventClosed:
			p.update(func(s *State) {
				s.IsLoaded = false
				s.IsPlaying = false
			})
			return
		}
	}
}

func (p *Player) update(fn func(*State)) {
	p.mu.Lock()
	fn(&p.state)
	snapshot := p.state
	p.mu.Unlock()
	if p.onState != nil {
		p.onState(p.medium, snapshot)
	}
}

// State returns a copy of the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load replaces the current file, paused and rewound. Loaded/playing flags
// stay false until the backend reports the file playable.
func (p *Player) Load(path string) error {
	p.update(func(s *State) {
		s.IsLoaded = false
		s.IsPlaying = false
		s.Error = ""
		s.CurrentTime = 0
		s.Duration = 0
	})
	if err := p.backend.Command("set_property", "pause", true); err != nil {
		return p.commandError("load", err)
	}
	if err := p.backend.Command("loadfile", path); err != nil {
		return p.commandError("load", err)
	}
	return nil
}

// Play requests playback. The playing flag flips only when the backend
// confirms the pause property changed.
func (p *Player) Play() error {
	if err := p.backend.Command("set_property", "pause", false); err != nil {
		return p.commandError("play", err)
	}
	return nil
}

// Pause requests playback stop.
func (p *Player) Pause() error {
	if err := p.backend.Command("set_property", "pause", true); err != nil {
		return p.commandError("pause", err)
	}
	return nil
}

// Reset rewinds to the start of the current file, paused.
func (p *Player) Reset() error {
	if err := p.Pause(); err != nil {
		return err
	}
	if err := p.backend.Command("seek", 0, "absolute"); err != nil {
		return p.commandError("reset", err)
	}
	p.update(func(s *State) { s.CurrentTime = 0 })
	return nil
}

// SetVolume sets playback volume, clamped to [0,1].
func (p *Player) SetVolume(v float64) error {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if err := p.backend.Command("set_property", "volume", v*100); err != nil {
		return p.commandError("volume", err)
	}
	p.update(func(s *State) { s.Volume = v })
	return nil
}

// Volume returns the last commanded volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Volume
}

// Stop shuts the backend down.
func (p *Player) Stop() error {
	return p.backend.Stop()
}

// commandError records the fault in state and wraps it. The caller may
// ignore the return: the countdown must not stall on media failures.
func (p *Player) commandError(op string, err error) error {
	fault := domain.FaultInterrupted
	if strings.Contains(err.Error(), "not connected") {
		fault = domain.FaultBlocked
	}
	p.update(func(s *State) { s.Error = fault.Message() })
	return &domain.MediaError{Op: op, Medium: p.medium, Fault: fault, Err: err}
}

func classifyLoadError(err error) domain.MediaFault {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unrecognized") || strings.Contains(msg, "unsupported") || strings.Contains(msg, "format"):
		return domain.FaultUnsupported
	case strings.Contains(msg, "no such file") || strings.Contains(msg, "network") || strings.Contains(msg, "open"):
		return domain.FaultNetwork
	default:
		return domain.FaultInterrupted
	}
}
