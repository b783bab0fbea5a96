package service

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// currentStreak counts consecutive calendar days with activity ending at
// today. A user who has not read yet today keeps their streak: the run may
// start at yesterday instead.
func currentStreak(days map[string]struct{}, today time.Time) int {
	day := today
	if _, ok := days[dayKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := days[dayKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// longestStreak is the maximum run length over the full distinct-date set.
func longestStreak(days map[string]struct{}) int {
	if len(days) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(days))
	for key := range days {
		d, err := time.Parse(dayLayout, key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
