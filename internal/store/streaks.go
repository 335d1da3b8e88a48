package store

import (
	"sort"
	"time"

	"github.com/pharloom/echoes/internal/domain"
)

// ComputeStreaks derives the three streak counters from the stored session
// list.
func ComputeStreaks(sessions []domain.StoredSession) domain.Streaks {
	return domain.Streaks{
		Daily:   dailyStreak(sessions),
		Focus:   runStreak(sessions, focusKey, domain.EventFocusLost),
		NoDeath: runStreak(sessions, noDeathKey, domain.EventDied),
	}
}

// dailyStreak counts consecutive calendar days with at least one completed
// session, walking back from the most recent such day. The walk starts at
// that day whether or not it is today.
func dailyStreak(sessions []domain.StoredSession) int {
	days := make(map[string]bool)
	var latest time.Time
	for _, sess := range sessions {
		if !sess.Completed || sess.CompletedAt == nil {
			continue
		}
		days[dayKey(*sess.CompletedAt)] = true
		if sess.CompletedAt.After(latest) {
			latest = *sess.CompletedAt
		}
	}

	streak := 0
	for day := latest; days[dayKey(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// runStreak counts how many of the most recent sessions, ordered by key
// descending, are free of the violation event. The count stops at the
// first session that contains one. Abandoned sessions participate too;
// only sessions whose key is zero are outside the run.
func runStreak(sessions []domain.StoredSession, key func(domain.StoredSession) time.Time, violation domain.EventType) int {
	type entry struct {
		at       time.Time
		violated bool
	}

	var entries []entry
	for _, sess := range sessions {
		at := key(sess)
		if at.IsZero() {
			continue
		}
		entries = append(entries, entry{at: at, violated: hasEvent(sess, violation)})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].at.After(entries[j].at)
	})

	streak := 0
	for _, e := range entries {
		if e.violated {
			break
		}
		streak++
	}
	return streak
}

// focusKey orders sessions by the last break they reached, falling back to
// completion time for sessions that never took a break.
func focusKey(sess domain.StoredSession) time.Time {
	var last time.Time
	for _, ev := range sess.Events {
		if ev.Type == domain.EventBreakReached && ev.TS.After(last) {
			last = ev.TS
		}
	}
	if !last.IsZero() {
		return last
	}
	if sess.CompletedAt != nil {
		return *sess.CompletedAt
	}
	return time.Time{}
}

// noDeathKey orders sessions by completion time, falling back to start time.
func noDeathKey(sess domain.StoredSession) time.Time {
	if sess.CompletedAt != nil {
		return *sess.CompletedAt
	}
	return sess.StartedAt
}

func hasEvent(sess domain.StoredSession, typ domain.EventType) bool {
	for _, ev := range sess.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
