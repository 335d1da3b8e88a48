package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pharloom/echoes/internal/timer"
)

// Styles holds all the UI styles
type Styles struct {
	// Clock
	Clock         lipgloss.Style
	ClockPaused   lipgloss.Style
	ClockBreak    lipgloss.Style
	ClockComplete lipgloss.Style

	// Phase and area labels
	PhaseBadge  lipgloss.Style
	AreaName    lipgloss.Style
	SegmentInfo lipgloss.Style
	Indicator   lipgloss.Style

	// Media panel
	MediaLabel   lipgloss.Style
	MediaPlaying lipgloss.Style
	MediaPaused  lipgloss.Style
	MediaError   lipgloss.Style
	VolumeMeter  lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlay frame
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// Debug pane
	DebugPane  lipgloss.Style
	DebugLabel lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Clock: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		ClockPaused: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		ClockBreak: lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true),

		ClockComplete: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		PhaseBadge: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Bold(true).
			Padding(0, 1),

		AreaName: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true),

		SegmentInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Indicator: lipgloss.NewStyle().
			Foreground(Yellow),

		MediaLabel: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		MediaPlaying: lipgloss.NewStyle().
			Foreground(Green),

		MediaPaused: lipgloss.NewStyle().
			Foreground(Overlay0),

		MediaError: lipgloss.NewStyle().
			Foreground(Red),

		VolumeMeter: lipgloss.NewStyle().
			Foreground(Sapphire),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		DebugPane: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Surface1).
			Foreground(Subtext0).
			Padding(0, 1),

		DebugLabel: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),
	}
}

// ClockFor returns the clock style for the given phase, dimmed when the
// countdown is not ticking.
func (s *Styles) ClockFor(phase timer.Phase, ticking bool) lipgloss.Style {
	switch phase {
	case timer.PhaseBreak:
		return s.ClockBreak
	case timer.PhaseCompleted:
		return s.ClockComplete
	default:
		if !ticking {
			return s.ClockPaused
		}
		return s.Clock
	}
}

// PhaseBadgeFor returns the phase badge with a phase-specific background.
func (s *Styles) PhaseBadgeFor(phase timer.Phase) lipgloss.Style {
	switch phase {
	case timer.PhaseBreak:
		return s.PhaseBadge.Background(Teal)
	case timer.PhaseCompleted:
		return s.PhaseBadge.Background(Green)
	default:
		return s.PhaseBadge
	}
}
