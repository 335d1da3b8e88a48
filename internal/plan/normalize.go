// Package plan converts user-authored session plans into the canonical
// segment list the timer runs, and resolves which plan to run on startup.
package plan

import (
	"github.com/pharloom/echoes/internal/domain"
)

// Plan is a normalized, immutable snapshot of a session plan: an ordered
// segment list plus a uniform break length. The timer treats it as read-only
// for the duration of a session; a reset recomputes a fresh one.
type Plan struct {
	Segments         []domain.Segment
	BreakDurationSec int
}

// Defaults supplies the values normalization falls back on.
type Defaults struct {
	Area        string
	DurationSec int
	BreakSec    int
}

// Normalize converts raw into canonical form.
//
// Segmented plans pass through in order with each duration clamped to at
// least one second. Legacy plans split the total duration evenly across the
// listed areas (or the default area), with the division remainder absorbed
// into the last segment so durations always sum exactly to the total.
// Returns domain.ErrNoPlan when raw carries no duration information at all;
// the caller decides the fallback in that case.
func Normalize(raw domain.SessionPlan, def Defaults) (Plan, error) {
	breakSec := normalizeBreak(raw, def)

	if len(raw.Segments) > 0 {
		segs := make([]domain.Segment, len(raw.Segments))
		for i, s := range raw.Segments {
			d := s.DurationSec
			if d < 1 {
				d = 1
			}
			segs[i] = domain.Segment{Area: s.Area, DurationSec: d}
		}
		return Plan{Segments: segs, BreakDurationSec: breakSec}, nil
	}

	totalSec := raw.TotalDurationSec
	if totalSec <= 0 {
		totalSec = raw.TotalDurationMin * 60
	}
	if totalSec <= 0 {
		return Plan{}, domain.ErrNoPlan
	}

	areas := raw.Areas
	if len(areas) == 0 {
		areas = []string{def.Area}
	}

	return Plan{Segments: Split(totalSec, areas), BreakDurationSec: breakSec}, nil
}

// Split divides totalSec evenly across the given areas, one segment per
// area, adding the remainder to the last segment. Every segment is at least
// one second long.
func Split(totalSec int, areas []string) []domain.Segment {
	n := len(areas)
	per := totalSec / n
	if per < 1 {
		per = 1
	}
	remainder := totalSec - per*n
	if remainder < 0 {
		remainder = 0
	}

	segs := make([]domain.Segment, n)
	for i, a := range areas {
		d := per
		if i == n-1 {
			d += remainder
		}
		segs[i] = domain.Segment{Area: a, DurationSec: d}
	}
	return segs
}

// Fallback builds the documented degraded plan: a single segment from the
// last known area and duration.
func Fallback(area string, durationSec, breakSec int) Plan {
	if durationSec < 1 {
		durationSec = 1
	}
	if breakSec < 0 {
		breakSec = 0
	}
	return Plan{
		Segments:         []domain.Segment{{Area: area, DurationSec: durationSec}},
		BreakDurationSec: breakSec,
	}
}

func normalizeBreak(raw domain.SessionPlan, def Defaults) int {
	var breakSec int
	switch {
	case raw.BreakDurationSec != nil:
		breakSec = *raw.BreakDurationSec
	case raw.BreakDurationMin > 0:
		breakSec = raw.BreakDurationMin * 60
	default:
		breakSec = def.BreakSec
	}
	if breakSec < 0 {
		breakSec = 0
	}
	return breakSec
}
