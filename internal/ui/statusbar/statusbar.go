package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pharloom/echoes/internal/timer"
	"github.com/pharloom/echoes/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	phase        timer.Phase
	ticking      bool
	segment      int
	segmentCount int
	volume       float64
	muted        bool
	width        int
	styles       *styles.Styles
}

// New creates a new StatusBar for the given timer state
func New(phase timer.Phase, ticking bool, segment, segmentCount int, volume float64, muted bool, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		phase:        phase,
		ticking:      ticking,
		segment:      segment,
		segmentCount: segmentCount,
		volume:       volume,
		muted:        muted,
		width:        width,
		styles:       styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	phaseBadge := sb.styles.PhaseBadgeFor(sb.phase).Render(" " + sb.phase.String() + " ")

	parts := []string{phaseBadge}
	separator := sb.styles.StatusHint.Render(" │ ")

	if sb.segmentCount > 0 && sb.phase != timer.PhaseCompleted {
		segInfo := sb.styles.StatusInfo.Render(
			fmt.Sprintf("segment %d/%d", sb.segment+1, sb.segmentCount))
		parts = append(parts, separator, segInfo)
	}

	parts = append(parts, separator, sb.styles.VolumeMeter.Render(sb.volumeMeter()))

	hints := Hints(sb.phase, sb.ticking)
	if hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

// volumeMeter draws a ten-cell bar for the current volume.
func (sb StatusBar) volumeMeter() string {
	if sb.muted {
		return "vol ✕"
	}
	filled := int(sb.volume*10 + 0.5)
	if filled > 10 {
		filled = 10
	}
	bar := ""
	for i := 0; i < 10; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return "vol " + bar
}
