package services

import (
	"testing"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

func TestUpdateStreak(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		priorStreak  int
		lastMood     string
		moodIsBest   bool
		today        string
		wantStreak   int
	}{
		{name: "best mood resets", priorStreak: 7, lastMood: "2026-02-09", moodIsBest: true, today: "2026-02-10", wantStreak: 0},
		{name: "best mood resets without history", priorStreak: 0, lastMood: "", moodIsBest: true, today: "2026-02-10", wantStreak: 0},
		{name: "first report starts at one", priorStreak: 0, lastMood: "", moodIsBest: false, today: "2026-02-10", wantStreak: 1},
		{name: "consecutive day increments", priorStreak: 2, lastMood: "2026-02-09", moodIsBest: false, today: "2026-02-10", wantStreak: 3},
		{name: "two day gap resets to one", priorStreak: 4, lastMood: "2026-02-08", moodIsBest: false, today: "2026-02-10", wantStreak: 1},
		{name: "long gap resets to one", priorStreak: 9, lastMood: "2026-01-10", moodIsBest: false, today: "2026-02-10", wantStreak: 1},
		{name: "same day repeat counts again", priorStreak: 1, lastMood: "2026-02-10", moodIsBest: false, today: "2026-02-10", wantStreak: 2},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			profile := models.NewCycleProfile(1)
			profile.MoodStreak = testCase.priorStreak
			if testCase.lastMood != "" {
				profile.LastMoodDate = dayPtr(t, testCase.lastMood)
			}

			today := mustParseDay(t, testCase.today)
			updated := UpdateStreak(profile, testCase.moodIsBest, today)

			if updated.MoodStreak != testCase.wantStreak {
				t.Fatalf("expected streak %d, got %d", testCase.wantStreak, updated.MoodStreak)
			}
			if updated.LastMoodDate == nil || !SameDay(*updated.LastMoodDate, today) {
				t.Fatalf("expected last mood date %s, got %v", testCase.today, updated.LastMoodDate)
			}
		})
	}
}

func TestUpdateStreak_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	profile := models.NewCycleProfile(1)
	profile.MoodStreak = 3
	profile.LastMoodDate = dayPtr(t, "2026-02-09")

	_ = UpdateStreak(profile, false, mustParseDay(t, "2026-02-10"))

	if profile.MoodStreak != 3 {
		t.Fatalf("input profile mutated: streak %d", profile.MoodStreak)
	}
	if !SameDay(*profile.LastMoodDate, mustParseDay(t, "2026-02-09")) {
		t.Fatal("input profile mutated: last mood date changed")
	}
}
