// Package streak computes journaling streak statistics from entry dates.
package streak

import (
	"sort"
	"time"

	"github.com/daybookapp/daybook/pkg/daybook/models"
)

// Snapshot summarizes a user's journaling consistency.
type Snapshot struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	MissedDays    int `json:"missed_days"`
	TotalEntries  int `json:"total_entries"`
}

// Calculate derives streak statistics from the given entry dates, relative
// to the supplied "today". Input dates may be unsorted, duplicated, or carry
// a time of day; they are normalized and deduplicated first.
//
// The current streak is anchored at the most recent entry date, and only
// counts if that date is today or yesterday; an older latest entry means the
// streak has lapsed. Missed days are the empty days strictly between the
// first and last entry date.
func Calculate(dates []time.Time, today time.Time) Snapshot {
	days := distinctDays(dates)
	if len(days) == 0 {
		return Snapshot{}
	}

	today = models.Day(today)

	snap := Snapshot{TotalEntries: len(days)}

	latest := days[len(days)-1]
	if latest.Equal(today) || latest.Equal(today.AddDate(0, 0, -1)) {
		snap.CurrentStreak = 1
		for i := len(days) - 1; i > 0; i-- {
			if days[i-1].Equal(days[i].AddDate(0, 0, -1)) {
				snap.CurrentStreak++
			} else {
				break
			}
		}
	}

	run := 1
	for i := 1; i < len(days); i++ {
		gap := int(days[i].Sub(days[i-1]).Hours() / 24)
		if gap == 1 {
			run++
			continue
		}
		if run > snap.LongestStreak {
			snap.LongestStreak = run
		}
		run = 1
		snap.MissedDays += gap - 1
	}
	if run > snap.LongestStreak {
		snap.LongestStreak = run
	}

	return snap
}

func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := models.Day(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
