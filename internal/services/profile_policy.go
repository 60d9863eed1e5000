package services

import (
	"errors"
	"strings"
	"time"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

var (
	ErrCycleLengthOutOfRange  = errors.New("cycle length out of range")
	ErrPeriodLengthOutOfRange = errors.New("period length out of range")
	ErrLastStartFormat        = errors.New("last start date unreadable")
	ErrLastStartInFuture      = errors.New("last start date in the future")
	ErrLastStartTooOld        = errors.New("last start date too old")
	ErrStarSignUnknown        = errors.New("star sign unknown")
)

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= models.MinPeriodLength && value <= models.MaxPeriodLength
}

// ParseLastStart reads a user-entered date in the formats the chat wizard
// accepts: dd.mm.yyyy with or without the trailing dot.
func ParseLastStart(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}

	trimmed := strings.TrimSpace(raw)
	for _, format := range []string{"02.01.2006.", "02.01.2006"} {
		parsed, err := time.ParseInLocation(format, trimmed, location)
		if err == nil {
			return DateAtLocation(parsed, location), nil
		}
	}
	return time.Time{}, ErrLastStartFormat
}

// ValidateLastStart bounds the reported start to [today-90d, today].
func ValidateLastStart(start time.Time, now time.Time, location *time.Location) error {
	today := DateAtLocation(now, location)
	day := DateAtLocation(start, location)

	if day.After(today) {
		return ErrLastStartInFuture
	}
	if day.Before(today.AddDate(0, 0, -models.LastStartLookbackDays)) {
		return ErrLastStartTooOld
	}
	return nil
}

type CycleConfig struct {
	CycleLength  int
	PeriodLength int
	LastStart    time.Time
}

// ValidateCycleConfig checks a full wizard submission. Nothing is written
// on rejection; the wizard re-prompts for the offending step.
func ValidateCycleConfig(config CycleConfig, now time.Time, location *time.Location) error {
	if !IsValidCycleLength(config.CycleLength) {
		return ErrCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(config.PeriodLength) {
		return ErrPeriodLengthOutOfRange
	}
	return ValidateLastStart(config.LastStart, now, location)
}
