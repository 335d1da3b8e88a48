package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pharloom/echoes/internal/media"
	"github.com/pharloom/echoes/internal/timer"
	"github.com/pharloom/echoes/internal/ui/statusbar"
	"github.com/pharloom/echoes/internal/ui/styles"
)

func (m Model) View() string {
	if m.zen {
		return m.zenView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.clockView())
	b.WriteString("\n\n")
	b.WriteString(m.segmentsView())
	b.WriteString("\n")
	b.WriteString(m.mediaView())

	if m.debugPane {
		b.WriteString("\n")
		b.WriteString(m.debugView())
	}

	content := lipgloss.NewStyle().Padding(1, 2).Render(b.String())

	segments := m.engine.Plan().Segments
	bar := statusbar.New(
		m.engine.Phase(), m.engine.Ticking(),
		m.engine.SegmentIndex(), len(segments),
		m.media.Volume(), m.muted,
		m.width, m.styles,
	).Render()

	view := lipgloss.JoinVertical(lipgloss.Left, content, bar)

	if toasts := m.toastRenderer.Render(m.toasts, m.width); toasts != "" {
		view = lipgloss.JoinVertical(lipgloss.Right, view, toasts)
	}

	if ov := m.overlayStack.Current(); ov != nil {
		view = m.overlayView(ov.Title(), ov.View())
	}

	return view
}

// zenView is the distraction-free rendering: the clock and nothing else.
func (m Model) zenView() string {
	clock := m.styles.ClockFor(m.engine.Phase(), m.engine.Ticking()).
		Render(timer.FormatClock(m.engine.Remaining()))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, clock)
}

func (m Model) headerView() string {
	switch m.engine.Phase() {
	case timer.PhaseCompleted:
		return m.styles.AreaName.Render("Session complete")
	case timer.PhaseBreak:
		line := m.styles.AreaName.Render("Break")
		if next, ok := m.cfg.AreaByID(m.engine.NextArea()); ok {
			line += m.styles.SegmentInfo.Render("  · up next: " + next.DisplayName)
		}
		return line
	default:
		name := m.engine.CurrentArea()
		if area, ok := m.cfg.AreaByID(name); ok {
			name = area.DisplayName
		}
		return m.styles.AreaName.Render(name)
	}
}

func (m Model) clockView() string {
	clock := m.styles.ClockFor(m.engine.Phase(), m.engine.Ticking()).
		Render(timer.FormatClock(m.engine.Remaining()))
	if ind := m.toastRenderer.RenderIndicator(m.indicator); ind != "" {
		clock += "  " + ind
	}
	return clock
}

// segmentsView lists the plan with the current position marked.
func (m Model) segmentsView() string {
	segments := m.engine.Plan().Segments
	if m.engine.Phase() == timer.PhaseCompleted || len(segments) == 0 {
		return ""
	}

	var parts []string
	for i, seg := range segments {
		name := seg.Area
		if area, ok := m.cfg.AreaByID(seg.Area); ok {
			name = area.DisplayName
		}
		label := fmt.Sprintf("%s %s", name, timer.FormatClock(seg.DurationSec))

		style := m.styles.SegmentInfo
		if i == m.engine.SegmentIndex() {
			style = style.Foreground(styles.AreaColor(i)).Bold(true)
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, m.styles.SegmentInfo.Render(" → "))
}

func (m Model) mediaView() string {
	audio := m.mediumLine("audio", m.media.Audio())
	video := m.mediumLine("video", m.media.Video())
	return audio + "\n" + video
}

func (m Model) mediumLine(label string, s media.State) string {
	line := m.styles.MediaLabel.Render(label + " ")
	switch {
	case s.Error != "":
		line += m.styles.MediaError.Render(s.Error + " (enter to retry)")
	case s.IsPlaying:
		line += m.styles.MediaPlaying.Render("playing")
	case s.IsLoaded:
		line += m.styles.MediaPaused.Render("paused")
	default:
		if m.engine.Ticking() {
			line += m.spinner.View() + m.styles.MediaPaused.Render(" loading")
		} else {
			line += m.styles.MediaPaused.Render("idle")
		}
	}
	return line
}

func (m Model) debugView() string {
	snap := m.engine.Snapshot()
	audio, video := m.media.Audio(), m.media.Video()
	lines := []string{
		m.styles.DebugLabel.Render("timer") + fmt.Sprintf(" phase=%s seg=%d remaining=%d ticking=%v",
			m.engine.Phase(), m.engine.SegmentIndex(), snap.TimeLeftSec, snap.IsRunning),
		m.styles.DebugLabel.Render("audio") + fmt.Sprintf(" loaded=%v playing=%v vol=%.2f pos=%.1f err=%q",
			audio.IsLoaded, audio.IsPlaying, audio.Volume, audio.CurrentTime, audio.Error),
		m.styles.DebugLabel.Render("video") + fmt.Sprintf(" loaded=%v playing=%v pos=%.1f err=%q",
			video.IsLoaded, video.IsPlaying, video.CurrentTime, video.Error),
	}
	return m.styles.DebugPane.Render(strings.Join(lines, "\n"))
}

// overlayView renders the active overlay centered over a dimmed screen.
func (m Model) overlayView(title, content string) string {
	box := m.styles.Overlay.Render(
		m.styles.OverlayTitle.Render(title) + "\n" + content,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
