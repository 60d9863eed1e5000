package services

import (
	"time"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

// CycleDay is where today falls within the profile's cycle.
type CycleDay struct {
	DayOfCycle int
	Phase      models.Phase
}

// Milestones are the estimate dates derived from the last cycle start by
// fixed offsets. These are estimates, not predictions from history.
type Milestones struct {
	NextStart    time.Time
	FertileStart time.Time
	FertileEnd   time.Time
	PeriodEnd    time.Time
}

// ComputePhase maps a profile and a calendar date to the day-of-cycle and
// phase. The second return is false when the profile has no recorded start
// or when today predates it.
func ComputePhase(profile models.CycleProfile, today time.Time) (CycleDay, bool) {
	if !profile.HasLastStart() {
		return CycleDay{}, false
	}

	elapsed := DaysBetween(*profile.LastStart, today)
	if elapsed < 0 {
		return CycleDay{}, false
	}

	dayOfCycle := elapsed + 1
	return CycleDay{
		DayOfCycle: dayOfCycle,
		Phase:      ClassifyPhase(dayOfCycle, profile.PeriodLength),
	}, true
}

// ClassifyPhase implements the fixed phase table: the ovulation boundary
// sits at day 14 regardless of cycle length, matching how the assistant has
// always reported phases.
func ClassifyPhase(dayOfCycle int, periodLength int) models.Phase {
	switch {
	case dayOfCycle <= periodLength:
		return models.PhaseMenstrual
	case dayOfCycle <= 13:
		return models.PhaseFollicular
	case dayOfCycle == 14:
		return models.PhaseOvulation
	default:
		return models.PhaseLuteal
	}
}

// ComputeMilestones derives the estimate dates from the recorded start.
// Pure offset arithmetic; returns false only when no start is recorded.
func ComputeMilestones(profile models.CycleProfile) (Milestones, bool) {
	if !profile.HasLastStart() {
		return Milestones{}, false
	}

	start := *profile.LastStart
	return Milestones{
		NextStart:    start.AddDate(0, 0, profile.CycleLength),
		FertileStart: start.AddDate(0, 0, profile.CycleLength-18),
		FertileEnd:   start.AddDate(0, 0, profile.CycleLength-12),
		PeriodEnd:    start.AddDate(0, 0, profile.PeriodLength),
	}, true
}
