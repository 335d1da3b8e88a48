package plan

import (
	"fmt"
	"time"
)

// Authoring limits, matching the session creation form.
const (
	MaxSegments     = 6
	MaxDurationMin  = 120
	MaxBreakMin     = 15
	MaxDurationSec  = 1800 // per-segment cap in seconds mode
	MaxBreakSec     = 600  // break cap in seconds mode
)

// ValidateBreak checks a break duration against the cap for the given mode.
// The returned message is user-facing.
func ValidateBreak(breakSec int, secondsMode bool) (bool, string) {
	if breakSec < 0 {
		return false, "Break duration cannot be negative"
	}
	max := MaxBreakMin * 60
	if secondsMode {
		max = MaxBreakSec
	}
	if breakSec > max {
		return false, fmt.Sprintf(
			"Seriously? %s break? Get back to studying! (Max: %s)",
			formatDetailed(breakSec), formatDetailed(max),
		)
	}
	return true, ""
}

// ValidateSegments checks each segment duration against the per-segment
// bounds for the given mode.
func ValidateSegments(p Plan, secondsMode bool) (bool, string) {
	if len(p.Segments) == 0 {
		return false, "A session needs at least one segment"
	}
	min, max, unit := 60, MaxDurationMin*60, "1 minute"
	if secondsMode {
		min, max, unit = 1, MaxDurationSec, "1 second"
	}
	for _, s := range p.Segments {
		if s.DurationSec < min {
			return false, fmt.Sprintf("Each segment must be at least %s", unit)
		}
		if s.DurationSec > max {
			return false, fmt.Sprintf("Segments cannot exceed %s", formatDetailed(max))
		}
	}
	return true, ""
}

func formatDetailed(totalSec int) string {
	d := time.Duration(totalSec) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}
