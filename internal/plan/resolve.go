package plan

import (
	"math/rand"

	"github.com/pharloom/echoes/internal/domain"
)

// Resolve picks the plan to run on a cold start. Resolution is explicit and
// three-tiered: a pending authored plan always wins, then the last persisted
// runtime snapshot (degraded to a single segment), then defaults.
func Resolve(pending *domain.SessionPlan, snap *domain.TimerSnapshot, def Defaults) Plan {
	if pending != nil {
		if p, err := Normalize(*pending, def); err == nil {
			return p
		}
	}
	if snap != nil && snap.SelectedArea != "" && snap.TimeLeftSec > 0 {
		return Fallback(snap.SelectedArea, snap.TimeLeftSec, def.BreakSec)
	}
	return Fallback(def.Area, def.DurationSec, def.BreakSec)
}

// allowDuplicatesAboveSec mirrors the authoring rule: sessions longer than
// an hour may revisit areas.
const allowDuplicatesAboveSec = 3600

// Randomize builds a plan of count segments over randomly chosen areas
// summing exactly to totalSec. Areas are distinct until the pool runs out;
// past an hour of total time duplicates are allowed.
func Randomize(areaIDs []string, totalSec, count, breakSec int, rng *rand.Rand) Plan {
	if totalSec < 1 {
		totalSec = 1
	}
	if count < 1 {
		count = 1
	}

	allowDupes := totalSec > allowDuplicatesAboveSec
	var chosen []string
	pool := append([]string(nil), areaIDs...)
	for i := 0; i < count; i++ {
		if allowDupes {
			chosen = append(chosen, areaIDs[rng.Intn(len(areaIDs))])
			continue
		}
		if len(pool) == 0 {
			break
		}
		j := rng.Intn(len(pool))
		chosen = append(chosen, pool[j])
		pool = append(pool[:j], pool[j+1:]...)
	}
	if len(chosen) == 0 {
		chosen = []string{areaIDs[0]}
	}

	if breakSec < 0 {
		breakSec = 0
	}
	return Plan{Segments: Split(totalSec, chosen), BreakDurationSec: breakSec}
}
