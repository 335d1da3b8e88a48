package statusbar

import "github.com/pharloom/echoes/internal/timer"

// Hints returns the keybinding hints for the given timer state
func Hints(phase timer.Phase, ticking bool) string {
	switch phase {
	case timer.PhaseCompleted:
		return "r: new session  q: quit"
	case timer.PhaseBreak:
		return "Space: pause  m: mute  f: zen  ?: help  q: quit"
	default:
		if !ticking {
			return "Space: start  r: reset  m: mute  f: zen  ?: help  q: quit"
		}
		return "Space: pause  r: reset  m: mute  f: zen  ?: help  q: quit"
	}
}
