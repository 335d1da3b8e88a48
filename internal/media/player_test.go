package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharloom/echoes/internal/domain"
)

// mockBackend implements Backend for testing. Commands are recorded;
// events are injected by tests.
type mockBackend struct {
	mu       sync.Mutex
	commands [][]any
	cmdErr   error
	startErr error
	events   chan Event
}

func newMockBackend() *mockBackend {
	return &mockBackend{events: make(chan Event, 16)}
}

func (m *mockBackend) Start(ctx context.Context) error { return m.startErr }

func (m *mockBackend) Command(args ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cmdErr != nil {
		return m.cmdErr
	}
	m.commands = append(m.commands, args)
	return nil
}

func (m *mockBackend) Events() <-chan Event { return m.events }

func (m *mockBackend) Stop() error {
	close(m.events)
	return nil
}

func (m *mockBackend) commandLog() [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]any, len(m.commands))
	copy(out, m.commands)
	return out
}

func (m *mockBackend) countCommand(name string) int {
	n := 0
	for _, c := range m.commandLog() {
		if len(c) > 0 && c[0] == name {
			n++
		}
	}
	return n
}

func newTestPlayer(t *testing.T, backend Backend) *Player {
	t.Helper()
	p := NewPlayer("audio", backend, slog.Default(), nil)
	require.NoError(t, p.Start(context.Background()))
	return p
}

func waitForState(t *testing.T, p *Player, cond func(State) bool) {
	t.Helper()
	require.Eventually(t, func() bool { return cond(p.State()) },
		time.Second, time.Millisecond)
}

func TestPlayer_StateDerivedFromEvents(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(t, backend)

	require.NoError(t, p.Load("/tmp/bone_bottom.mp3"))
	assert.False(t, p.State().IsLoaded, "load must not assert loaded optimistically")

	require.NoError(t, p.Play())
	assert.False(t, p.State().IsPlaying, "play must not assert playing optimistically")

	backend.events <- Event{Kind: EventFileLoaded}
	waitForState(t, p, func(s State) bool { return s.IsLoaded })

	backend.events <- Event{Kind: EventPause, Paused: false}
	waitForState(t, p, func(s State) bool { return s.IsPlaying })

	backend.events <- Event{Kind: EventPause, Paused: true}
	waitForState(t, p, func(s State) bool { return !s.IsPlaying })

	backend.events <- Event{Kind: EventDuration, Value: 212.5}
	waitForState(t, p, func(s State) bool { return s.Duration == 212.5 })
}

func TestPlayer_LoadFailureSetsErrorState(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(t, backend)

	backend.events <- Event{Kind: EventEndFile, Err: errors.New("mpv end-file: no such file")}
	waitForState(t, p, func(s State) bool { return s.Error != "" && !s.IsLoaded })
	assert.Equal(t, domain.FaultNetwork.Message(), p.State().Error)
}

func TestPlayer_CommandErrorWrapped(t *testing.T) {
	backend := newMockBackend()
	backend.cmdErr = fmt.Errorf("mpv ipc not connected")
	p := NewPlayer("audio", backend, slog.Default(), nil)

	err := p.Play()
	require.Error(t, err)

	var mediaErr *domain.MediaError
	require.ErrorAs(t, err, &mediaErr)
	assert.Equal(t, "play", mediaErr.Op)
	assert.Equal(t, "audio", mediaErr.Medium)
	assert.Equal(t, domain.FaultBlocked, mediaErr.Fault)
	assert.Equal(t, domain.FaultBlocked.Message(), p.State().Error)
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	backend := newMockBackend()
	p := NewPlayer("audio", backend, slog.Default(), nil)

	require.NoError(t, p.SetVolume(1.5))
	assert.Equal(t, 1.0, p.Volume())

	require.NoError(t, p.SetVolume(-0.2))
	assert.Equal(t, 0.0, p.Volume())

	log := backend.commandLog()
	require.Len(t, log, 2)
	assert.Equal(t, []any{"set_property", "volume", 100.0}, log[0])
	assert.Equal(t, []any{"set_property", "volume", 0.0}, log[1])
}

func TestPlayer_ResetRewindsPaused(t *testing.T) {
	backend := newMockBackend()
	p := NewPlayer("audio", backend, slog.Default(), nil)

	require.NoError(t, p.Reset())

	log := backend.commandLog()
	require.Len(t, log, 2)
	assert.Equal(t, []any{"set_property", "pause", true}, log[0])
	assert.Equal(t, []any{"seek", 0, "absolute"}, log[1])
}

func TestClassifyLoadError(t *testing.T) {
	tests := []struct {
		msg  string
		want domain.MediaFault
	}{
		{"mpv end-file: no such file or directory", domain.FaultNetwork},
		{"mpv end-file: unrecognized file format", domain.FaultUnsupported},
		{"mpv end-file: something else", domain.FaultInterrupted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyLoadError(errors.New(tt.msg)), tt.msg)
	}
}
