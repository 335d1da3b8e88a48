package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pharloom/echoes/internal/ui/styles"
)

// Styles covers overlay bodies. The surrounding frame and title belong to
// the app view, not to the overlays themselves.
type Styles struct {
	Item       lipgloss.Style
	ItemActive lipgloss.Style
	Key        lipgloss.Style
	Header     lipgloss.Style
	Footer     lipgloss.Style
}

func New() *Styles {
	return &Styles{
		Item:       lipgloss.NewStyle().Foreground(styles.Text),
		ItemActive: lipgloss.NewStyle().Foreground(styles.Blue).Bold(true),
		Key:        lipgloss.NewStyle().Foreground(styles.Yellow).Bold(true),
		Header:     lipgloss.NewStyle().Foreground(styles.Subtext1).Bold(true),
		Footer:     lipgloss.NewStyle().Foreground(styles.Subtext0).MarginTop(1),
	}
}
