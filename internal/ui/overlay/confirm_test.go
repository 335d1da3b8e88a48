package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmKey(t *testing.T, d *ConfirmDialog, msg tea.Msg) (*ConfirmDialog, tea.Cmd) {
	t.Helper()
	model, cmd := d.Update(msg)
	next, ok := model.(*ConfirmDialog)
	require.True(t, ok)
	return next, cmd
}

// decision runs the command and unwraps the SelectionMsg it produces.
func decision(t *testing.T, cmd tea.Cmd) SelectionMsg {
	t.Helper()
	require.NotNil(t, cmd)
	sel, ok := cmd().(SelectionMsg)
	require.True(t, ok)
	return sel
}

func TestConfirmYesKey(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	_, cmd := confirmKey(t, d, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	sel := decision(t, cmd)

	assert.Equal(t, "yes", sel.Key)
	assert.Equal(t, ConfirmResult{Confirmed: true}, sel.Value)
}

func TestConfirmNoKey(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	_, cmd := confirmKey(t, d, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	sel := decision(t, cmd)

	assert.Equal(t, "no", sel.Key)
	assert.Equal(t, ConfirmResult{Confirmed: false}, sel.Value)
}

func TestConfirmEscCancels(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	_, cmd := confirmKey(t, d, tea.KeyMsg{Type: tea.KeyEsc})
	sel := decision(t, cmd)

	assert.Equal(t, ConfirmResult{Confirmed: false}, sel.Value)
}

func TestConfirmEnterDefaultsToNo(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	_, cmd := confirmKey(t, d, tea.KeyMsg{Type: tea.KeyEnter})
	sel := decision(t, cmd)

	assert.Equal(t, "no", sel.Key, "No is preselected so Enter alone never resets")
}

func TestConfirmTabThenEnterConfirms(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	d, _ = confirmKey(t, d, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := confirmKey(t, d, tea.KeyMsg{Type: tea.KeyEnter})
	sel := decision(t, cmd)

	assert.Equal(t, "yes", sel.Key)
}

func TestConfirmArrowsMoveSelection(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	d, _ = confirmKey(t, d, tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, d.yes)

	d, _ = confirmKey(t, d, tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, d.yes)
}

func TestConfirmIgnoresOtherInput(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	next, cmd := confirmKey(t, d, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.False(t, next.yes)

	_, cmd = d.Update(struct{}{})
	assert.Nil(t, cmd)
}

func TestConfirmView(t *testing.T) {
	d := NewConfirmDialog("Reset Session", "Restart from the first segment?")

	view := d.View()
	assert.Contains(t, view, "Restart from the first segment?")
	assert.Contains(t, view, "[Y] Yes")
	assert.Contains(t, view, "[N] No")
	assert.Equal(t, "Reset Session", d.Title())
}
