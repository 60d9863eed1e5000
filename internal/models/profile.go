package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5

	MinCycleLength  = 20
	MaxCycleLength  = 45
	MinPeriodLength = 2
	MaxPeriodLength = 10

	// LastStartLookbackDays bounds how far in the past a reported cycle
	// start may lie. Anything older gives nonsense day-of-cycle values.
	LastStartLookbackDays = 90
)

// CycleProfile is the durable per-chat record. One row per Telegram chat,
// created with defaults on first contact and never deleted.
type CycleProfile struct {
	ChatID         int64      `gorm:"primaryKey;autoIncrement:false"`
	CycleLength    int        `gorm:"not null;default:28"`
	PeriodLength   int        `gorm:"not null;default:5"`
	LastStart      *time.Time `gorm:"type:date"`
	StarSign       string     `gorm:"not null;default:''"`
	DailyEnabled   bool       `gorm:"not null;default:false"`
	MoodStreak     int        `gorm:"not null;default:0"`
	LastMoodDate   *time.Time `gorm:"type:date"`
	SeenOnboarding bool       `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CycleProfile) TableName() string {
	return "cycle_profiles"
}

func NewCycleProfile(chatID int64) CycleProfile {
	return CycleProfile{
		ChatID:       chatID,
		CycleLength:  DefaultCycleLength,
		PeriodLength: DefaultPeriodLength,
	}
}

func (profile CycleProfile) HasLastStart() bool {
	return profile.LastStart != nil && !profile.LastStart.IsZero()
}

func (profile CycleProfile) Sign() (StarSign, bool) {
	return ParseStarSign(profile.StarSign)
}
