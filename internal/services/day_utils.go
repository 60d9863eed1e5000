package services

import (
	"math"
	"time"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysBetween counts whole calendar days from first to second. Both values
// are truncated to midnight in their own locations first, so DST shifts do
// not produce off-by-one results.
func DaysBetween(first time.Time, second time.Time) int {
	firstDay := DateAtLocation(first, first.Location())
	secondDay := DateAtLocation(second, second.Location())
	return int(math.Round(secondDay.Sub(firstDay).Hours() / 24))
}

func SameDay(a time.Time, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
