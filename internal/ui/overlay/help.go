package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// helpBinding pairs a key chord with what it does.
type helpBinding struct {
	key  string
	desc string
}

// helpSection groups bindings under one header.
type helpSection struct {
	name     string
	bindings []helpBinding
}

// HelpOverlay lists the keybindings, scrollable when the list outgrows
// the pane.
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		viewHeight: 20,
	}
}

func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, func() tea.Msg { return CloseOverlayMsg{} }
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll)
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

func (h *HelpOverlay) View() string {
	var content strings.Builder
	for i, sec := range helpSections() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(h.styles.Header.Render(sec.name + ":"))
		content.WriteString("\n")
		for _, b := range sec.bindings {
			content.WriteString("  ")
			content.WriteString(h.styles.Key.Render(b.key))
			content.WriteString("  ")
			content.WriteString(h.styles.Item.Render(b.desc))
			content.WriteString("\n")
		}
	}

	lines := strings.Split(content.String(), "\n")
	h.maxScroll = max(0, len(lines)-h.viewHeight)

	end := min(h.scroll+h.viewHeight, len(lines))
	view := strings.Join(lines[h.scroll:end], "\n")
	if h.maxScroll > 0 {
		hint := "[" + h.styles.Key.Render("j/k") + " to scroll, " + h.styles.Key.Render("g/G") + " to jump]"
		view += "\n\n" + h.styles.Footer.Render(hint)
	}
	return view
}

func (h *HelpOverlay) Title() string {
	return "Help"
}

func helpSections() []helpSection {
	return []helpSection{
		{
			name: "Timer",
			bindings: []helpBinding{
				{"Space/k", "Start or pause the countdown"},
				{"r", "Reset session (asks first)"},
				{"Enter", "Retry playback after a media error"},
			},
		},
		{
			name: "Media",
			bindings: []helpBinding{
				{"m", "Mute / restore last volume"},
				{"+/=", "Volume up"},
				{"-/_", "Volume down"},
				{"↑/↓", "Volume up/down"},
			},
		},
		{
			name: "View",
			bindings: []helpBinding{
				{"f", "Zen mode (clock only)"},
				{"d", "Debug pane"},
				{"?", "Help (this screen)"},
			},
		},
		{
			name: "Other",
			bindings: []helpBinding{
				{"q", "Quit"},
				{"Ctrl+C", "Quit"},
			},
		},
	}
}
