// Package streak computes the daily quiz streak from history timestamps.
package streak

import (
	"slices"
	"time"

	"github.com/vytor/quizzical/internal/models"
)

// Compute counts the consecutive calendar days, ending yesterday, that each
// have at least one quiz, and adds today when the newest quiz was taken
// today. Days are calendar days in now's location. timestamps are
// milliseconds since the epoch and are not modified.
func Compute(timestamps []int64, now time.Time) models.StreakInfo {
	if len(timestamps) == 0 {
		return models.StreakInfo{Mood: MoodFor(0)}
	}

	loc := now.Location()
	sorted := slices.Clone(timestamps)
	slices.SortFunc(sorted, func(a, b int64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	newest := time.UnixMilli(sorted[0]).In(loc)
	doneToday := !newest.Before(today) && newest.Before(tomorrow)

	days := 0
	dayStart := today.AddDate(0, 0, -1)
	dayEnd := today
	i := 0
	for {
		// skip anything on or after the day being checked
		for i < len(sorted) && !time.UnixMilli(sorted[i]).Before(dayEnd) {
			i++
		}
		if i == len(sorted) || time.UnixMilli(sorted[i]).Before(dayStart) {
			break
		}
		days++
		dayEnd = dayStart
		dayStart = dayStart.AddDate(0, 0, -1)
	}

	if doneToday {
		days++
	}
	return models.StreakInfo{Days: days, DoneToday: doneToday, Mood: MoodFor(days)}
}

func MoodFor(days int) models.Mood {
	switch {
	case days <= 0:
		return models.MoodUnhappy
	case days <= 3:
		return models.MoodHappy
	default:
		return models.MoodVeryHappy
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
