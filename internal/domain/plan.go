package domain

// Segment is one contiguous timed block of a session bound to a single area.
type Segment struct {
	Area        string `json:"area"`
	DurationSec int    `json:"durationSec"`
}

// SessionPlan is the user-authored plan for a session. The segmented form is
// canonical; the remaining fields are the legacy total+areas model kept for
// plans written by older clients. Normalization (internal/plan) converts any
// of these forms into segments before use.
type SessionPlan struct {
	Segments         []Segment `json:"segments,omitempty"`
	BreakDurationSec *int      `json:"breakDurationSec,omitempty"`

	// Legacy fields.
	Unit             string   `json:"unit,omitempty"` // "minutes" or "seconds"
	TotalDurationMin int      `json:"totalDurationMin,omitempty"`
	TotalDurationSec int      `json:"totalDurationSec,omitempty"`
	BreakDurationMin int      `json:"breakDurationMin,omitempty"`
	Areas            []string `json:"areas,omitempty"`
}

// TotalSeconds returns the summed duration of the plan's segments, or the
// legacy total when no segments are present.
func (p SessionPlan) TotalSeconds() int {
	if len(p.Segments) > 0 {
		total := 0
		for _, s := range p.Segments {
			if s.DurationSec > 0 {
				total += s.DurationSec
			}
		}
		return total
	}
	if p.TotalDurationSec > 0 {
		return p.TotalDurationSec
	}
	return p.TotalDurationMin * 60
}

// AreaIDs returns the ordered area ids the plan visits.
func (p SessionPlan) AreaIDs() []string {
	if len(p.Segments) > 0 {
		ids := make([]string, len(p.Segments))
		for i, s := range p.Segments {
			ids[i] = s.Area
		}
		return ids
	}
	return p.Areas
}
