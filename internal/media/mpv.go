package media

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// mpvBackend drives a real mpv process over its JSON-IPC socket.
type mpvBackend struct {
	binary     string
	socketPath string
	extraArgs  []string

	cmd    *exec.Cmd
	conn   net.Conn
	events chan Event
}

// NewMpvBackend creates a backend for one mpv instance. extraArgs are
// appended to the baseline flags (audio players pass --no-video --loop,
// video players pass --no-audio --loop).
func NewMpvBackend(binary, label string, extraArgs ...string) Backend {
	sock := filepath.Join(os.TempDir(), fmt.Sprintf("echoes-mpv-%s-%d.sock", label, os.Getpid()))
	return &mpvBackend{
		binary:     binary,
		socketPath: sock,
		extraArgs:  extraArgs,
		events:     make(chan Event, 64),
	}
}

// socket dial schedule: mpv needs a moment to create the IPC socket.
var dialRetry = []time.Duration{50 * time.Millisecond, 150 * time.Millisecond, 400 * time.Millisecond, 1 * time.Second}

func (b *mpvBackend) Start(ctx context.Context) error {
	args := append([]string{
		"--idle=yes",
		"--no-terminal",
		"--input-ipc-server=" + b.socketPath,
	}, b.extraArgs...)

	b.cmd = exec.CommandContext(ctx, b.binary, args...)
	if err := b.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	var conn net.Conn
	var err error
	for _, wait := range dialRetry {
		time.Sleep(wait)
		conn, err = net.Dial("unix", b.socketPath)
		if err == nil {
			break
		}
	}
	if err != nil {
		_ = b.cmd.Process.Kill()
		return fmt.Errorf("dial mpv ipc: %w", err)
	}
	b.conn = conn

	// Subscribe to the properties the player derives its state from.
	for i, prop := range []string{"pause", "time-pos", "duration"} {
		if err := b.Command("observe_property", i+1, prop); err != nil {
			return err
		}
	}

	go b.readLoop()
	return nil
}

func (b *mpvBackend) Command(args ...any) error {
	if b.conn == nil {
		return fmt.Errorf("mpv ipc not connected")
	}
	payload, err := json.Marshal(map[string]any{"command": args})
	if err != nil {
		return err
	}
	if _, err := b.conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("mpv ipc write: %w", err)
	}
	return nil
}

func (b *mpvBackend) Events() <-chan Event {
	return b.events
}

func (b *mpvBackend) Stop() error {
	if b.conn != nil {
		_ = b.Command("quit")
		_ = b.conn.Close()
	}
	if b.cmd != nil && b.cmd.Process != nil {
		_ = b.cmd.Process.Kill()
		_ = b.cmd.Wait()
	}
	_ = os.Remove(b.socketPath)
	return nil
}

// ipcMessage is the subset of mpv's IPC output the backend understands.
type ipcMessage struct {
	Event  string  `json:"event"`
	Name   string  `json:"name"`
	Data   any     `json:"data"`
	Reason string  `json:"reason"`
	Error  string  `json:"error"`
	ID     float64 `json:"id"`
}

func (b *mpvBackend) readLoop() {
	defer func() {
		b.events <- Event{Kind: EventClosed}
		close(b.events)
	}()

	scanner := bufio.NewScanner(b.conn)
	for scanner.Scan() {
		var msg ipcMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		switch msg.Event {
		case "file-loaded":
			b.events <- Event{Kind: EventFileLoaded}
		case "end-file":
			var err error
			if msg.Reason == "error" {
				err = fmt.Errorf("mpv end-file: %s", msg.Error)
			}
			b.events <- Event{Kind: EventEndFile, Err: err}
		case "property-change":
			switch msg.Name {
			case "pause":
				paused, _ := msg.Data.(bool)
				b.events <- Event{Kind: EventPause, Paused: paused}
			case "time-pos":
				if v, ok := msg.Data.(float64); ok {
					b.events <- Event{Kind: EventTimePos, Value: v}
				}
			case "duration":
				if v, ok := msg.Data.(float64); ok {
					b.events <- Event{Kind: EventDuration, Value: v}
				}
			}
		}
	}
}
