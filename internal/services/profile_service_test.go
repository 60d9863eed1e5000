package services

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/frrrka/menstrualni-bot/internal/db"
	"github.com/frrrka/menstrualni-bot/internal/models"
)

func newTestProfileService(t *testing.T) *ProfileService {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ciklus-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return NewProfileService(db.NewProfileRepository(database))
}

func TestProfileService_GetCreatesDefaults(t *testing.T) {
	t.Parallel()

	service := newTestProfileService(t)

	profile, err := service.Get(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if profile.ChatID != 42 {
		t.Fatalf("expected chat id 42, got %d", profile.ChatID)
	}
	if profile.CycleLength != models.DefaultCycleLength {
		t.Fatalf("expected default cycle length, got %d", profile.CycleLength)
	}
	if profile.PeriodLength != models.DefaultPeriodLength {
		t.Fatalf("expected default period length, got %d", profile.PeriodLength)
	}
	if profile.HasLastStart() || profile.DailyEnabled || profile.SeenOnboarding {
		t.Fatal("expected a blank profile on first contact")
	}

	// A second get returns the stored row, not a fresh one.
	again, err := service.Get(42)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if again.CreatedAt.IsZero() {
		t.Fatal("expected the stored profile to carry its creation time")
	}
}

func TestProfileService_UpdatePersists(t *testing.T) {
	t.Parallel()

	service := newTestProfileService(t)

	if _, err := service.Update(7, func(profile *models.CycleProfile) error {
		profile.CycleLength = 30
		profile.DailyEnabled = true
		return nil
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := service.Get(7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CycleLength != 30 || !stored.DailyEnabled {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestProfileService_UpdateErrorLeavesRecordUntouched(t *testing.T) {
	t.Parallel()

	service := newTestProfileService(t)

	if _, err := service.Update(7, func(profile *models.CycleProfile) error {
		profile.CycleLength = 33
		return nil
	}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	if _, err := service.Update(7, func(profile *models.CycleProfile) error {
		profile.CycleLength = 99
		return ErrCycleLengthOutOfRange
	}); err == nil {
		t.Fatal("expected the rejected update to return an error")
	}

	stored, err := service.Get(7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CycleLength != 33 {
		t.Fatalf("rejected update leaked into storage: %d", stored.CycleLength)
	}
}

func TestProfileService_UpdateThenCommitSeesSavedState(t *testing.T) {
	t.Parallel()

	service := newTestProfileService(t)

	commits := 0
	if _, err := service.UpdateThen(9,
		func(profile *models.CycleProfile) error {
			profile.MoodStreak = 3
			return nil
		},
		func(profile models.CycleProfile) {
			if profile.MoodStreak != 3 {
				t.Errorf("commit saw streak %d before the write", profile.MoodStreak)
			}
			commits++
		}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// A rejected mutate must not reach the commit hook.
	if _, err := service.UpdateThen(9,
		func(profile *models.CycleProfile) error {
			return ErrCycleLengthOutOfRange
		},
		func(profile models.CycleProfile) {
			commits++
		}); err == nil {
		t.Fatal("expected the rejected update to return an error")
	}

	if commits != 1 {
		t.Fatalf("expected exactly one commit, got %d", commits)
	}
}

func TestProfileService_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	t.Parallel()

	service := newTestProfileService(t)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, _ = service.Update(1, func(profile *models.CycleProfile) error {
				profile.MoodStreak++
				return nil
			})
		}()
	}
	wg.Wait()

	stored, err := service.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.MoodStreak != writers {
		t.Fatalf("lost updates: expected streak %d, got %d", writers, stored.MoodStreak)
	}
}

func TestProfileService_ForEachVisitsAllProfiles(t *testing.T) {
	t.Parallel()

	service := newTestProfileService(t)
	for _, chatID := range []int64{1, 2, 3} {
		if _, err := service.Get(chatID); err != nil {
			t.Fatalf("seed profile %d: %v", chatID, err)
		}
	}

	visited := make(map[int64]bool)
	if err := service.ForEach(func(profile models.CycleProfile) error {
		visited[profile.ChatID] = true
		return nil
	}); err != nil {
		t.Fatalf("foreach failed: %v", err)
	}

	if len(visited) != 3 {
		t.Fatalf("expected 3 profiles, visited %d", len(visited))
	}
}
