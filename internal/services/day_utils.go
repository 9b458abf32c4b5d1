package services

import "time"

// DateAtLocation truncates a timestamp to the start of its civil day in the
// given location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayKey formats a timestamp as the calendar-day key used across the KP
// series and the cache.
func DayKey(value time.Time) string {
	return value.Format("2006-01-02")
}
