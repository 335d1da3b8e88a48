package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal that owns the keyboard while open. The app view draws
// the frame and title around it, so an overlay renders its body only.
type Overlay interface {
	tea.Model
	Title() string
}

// CloseOverlayMsg dismisses the top overlay without a decision.
type CloseOverlayMsg struct{}

// SelectionMsg carries a decision out of an overlay. Key names the choice
// and Value carries its payload, such as a ConfirmResult.
type SelectionMsg struct {
	Key   string
	Value any
}

// Stack holds the open overlays, most recent on top. Messages only reach
// the top one.
type Stack struct {
	overlays []Overlay
}

func NewStack() *Stack {
	return &Stack{}
}

// Push opens an overlay on top of the stack and runs its Init.
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop closes the top overlay. Returns nil when nothing is open.
func (s *Stack) Pop() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	top := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]
	return top
}

// Current returns the top overlay without closing it.
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Update routes a message to the top overlay. A CloseOverlayMsg pops the
// overlay instead of being delivered to it.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	if s.IsEmpty() {
		return nil
	}
	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}
	model, cmd := s.Current().Update(msg)
	if o, ok := model.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}
