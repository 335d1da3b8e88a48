package timer

import "fmt"

// FormatClock renders seconds as m:ss, the big timer display format.
func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%d:%02d", totalSec/60, totalSec%60)
}

// FormatDetailed renders seconds as "1h 2m 3s" (hours omitted when zero).
func FormatDetailed(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}
