package types

import "time"

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// IndicatorDuration is how long an action indicator stays visible.
const IndicatorDuration = 650 * time.Millisecond

// Indicator is a short-lived acknowledgment of a user action, shown near
// the clock. At most one is visible; a new action replaces it.
type Indicator struct {
	Action  Action
	Expires time.Time
}

// Action identifies which user action an indicator acknowledges.
type Action int

const (
	ActionNone Action = iota
	ActionPlay
	ActionPause
	ActionReset
	ActionVolume
	ActionMute
	ActionZen
)

// Label returns the short text shown for the action.
func (a Action) Label() string {
	switch a {
	case ActionPlay:
		return "▶ play"
	case ActionPause:
		return "⏸ pause"
	case ActionReset:
		return "↺ reset"
	case ActionVolume:
		return "vol"
	case ActionMute:
		return "muted"
	case ActionZen:
		return "zen"
	default:
		return ""
	}
}
