package services

import (
	"time"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

// UpdateStreak applies one mood report to the profile's streak counter and
// returns the updated profile. The rules live here and nowhere else:
//   - the best mood always resets the streak to zero,
//   - a gap of more than one day resets and counts today as day one,
//   - otherwise the streak grows by one.
//
// last_mood_date is stamped with today in every branch.
func UpdateStreak(profile models.CycleProfile, moodIsBest bool, today time.Time) models.CycleProfile {
	day := DateAtLocation(today, today.Location())

	switch {
	case moodIsBest:
		profile.MoodStreak = 0
	case profile.LastMoodDate == nil || DaysBetween(*profile.LastMoodDate, day) > 1:
		profile.MoodStreak = 1
	default:
		profile.MoodStreak++
	}

	profile.LastMoodDate = &day
	return profile
}
