package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog gates a destructive choice behind an explicit yes. It opens
// with No selected so a stray Enter keeps the session intact.
type ConfirmDialog struct {
	title   string
	message string
	styles  *Styles
	yes     bool
}

// ConfirmResult is the payload of a ConfirmDialog's SelectionMsg.
type ConfirmResult struct {
	Confirmed bool
}

func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		styles:  New(),
	}
}

func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// choose emits the decision; the app pops the dialog when it arrives.
func (c *ConfirmDialog) choose(confirmed bool) tea.Cmd {
	key := "no"
	if confirmed {
		key = "yes"
	}
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: ConfirmResult{Confirmed: confirmed}}
	}
}

func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.choose(true)
	case "n", "N", "esc":
		return c, c.choose(false)
	case "enter":
		return c, c.choose(c.yes)
	case "left", "h":
		c.yes = false
	case "right", "l", "tab":
		c.yes = true
	}
	return c, nil
}

func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.Item.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.Item, c.styles.ItemActive
	if c.yes {
		yesStyle, noStyle = c.styles.ItemActive, c.styles.Item
	}
	b.WriteString(yesStyle.Render("[Y] Yes"))
	b.WriteString("    ")
	b.WriteString(noStyle.Render("[N] No"))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Footer.Render("←/→ or Tab to switch • Enter to confirm • Esc to cancel"))

	return b.String()
}

func (c *ConfirmDialog) Title() string {
	return c.title
}
