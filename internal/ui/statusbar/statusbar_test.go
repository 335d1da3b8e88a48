package statusbar

import (
	"strings"
	"testing"

	"github.com/pharloom/echoes/internal/timer"
	"github.com/pharloom/echoes/internal/ui/styles"
)

func TestStatusBar_RenderRunning(t *testing.T) {
	style := styles.New()
	sb := New(timer.PhaseRunning, true, 1, 4, 0.7, false, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "FOCUS") {
		t.Errorf("Expected status bar to contain 'FOCUS', got: %s", result)
	}
	if !strings.Contains(result, "segment 2/4") {
		t.Errorf("Expected status bar to contain segment position, got: %s", result)
	}
	if !strings.Contains(result, "Space: pause") {
		t.Errorf("Expected status bar to contain pause hint, got: %s", result)
	}
	if !strings.Contains(result, "vol") {
		t.Errorf("Expected status bar to contain volume meter, got: %s", result)
	}
}

func TestStatusBar_RenderPaused(t *testing.T) {
	style := styles.New()
	sb := New(timer.PhaseRunning, false, 0, 1, 0.7, false, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "Space: start") {
		t.Errorf("Expected status bar to contain start hint, got: %s", result)
	}
}

func TestStatusBar_RenderBreak(t *testing.T) {
	style := styles.New()
	sb := New(timer.PhaseBreak, true, 0, 3, 0.5, false, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "BREAK") {
		t.Errorf("Expected status bar to contain 'BREAK', got: %s", result)
	}
}

func TestStatusBar_RenderCompleted(t *testing.T) {
	style := styles.New()
	sb := New(timer.PhaseCompleted, false, 2, 3, 0.5, false, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "DONE") {
		t.Errorf("Expected status bar to contain 'DONE', got: %s", result)
	}
	if strings.Contains(result, "segment") {
		t.Errorf("Completed bar should not show segment position, got: %s", result)
	}
	if !strings.Contains(result, "r: new session") {
		t.Errorf("Expected completion hints, got: %s", result)
	}
}

func TestStatusBar_Muted(t *testing.T) {
	style := styles.New()
	sb := New(timer.PhaseRunning, true, 0, 1, 0.7, true, 80, style)

	result := sb.Render()

	if !strings.Contains(result, "vol ✕") {
		t.Errorf("Expected muted marker, got: %s", result)
	}
}

func TestVolumeMeter(t *testing.T) {
	tests := []struct {
		volume float64
		filled int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
	}

	for _, tt := range tests {
		sb := StatusBar{volume: tt.volume}
		meter := sb.volumeMeter()
		if got := strings.Count(meter, "█"); got != tt.filled {
			t.Errorf("volume %v: got %d filled cells, want %d", tt.volume, got, tt.filled)
		}
	}
}
