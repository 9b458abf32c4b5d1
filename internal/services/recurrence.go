package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/astrelina/helia/internal/models"
)

var ErrInvalidRecurrence = errors.New("invalid recurrence rule")

// Safety cap so a malformed end date can never expand into an unbounded
// occurrence list.
const maxOccurrencesPerRecord = 1000

// DerivedOccurrenceID builds the identity of a generated occurrence. Server
// ids never contain ':', so derived ids cannot collide with a persisted
// record.
func DerivedOccurrenceID(recordID string, index int) string {
	return fmt.Sprintf("%s:%d", recordID, index)
}

// ExpandRecurrence turns a future medication record with a repeat rule into
// its concrete occurrences. The first element is the seed itself (raw record
// id); every following occurrence inherits the time of day, medication,
// dosage and notes, lands repeatInterval days after the previous one and
// never exceeds repeatEndDate. An end date before the record date yields
// only the seed.
func ExpandRecurrence(record models.HealthRecord) ([]models.Event, error) {
	seed, err := ProjectRecord(record)
	if err != nil {
		return nil, err
	}
	if !record.IsFuture || record.RepeatType == "" || record.RepeatType == models.RepeatNone {
		return []models.Event{seed}, nil
	}

	interval, err := repeatIntervalDays(record)
	if err != nil {
		return nil, err
	}
	if record.RepeatEndDate == nil || record.RepeatEndDate.Before(record.RecordDate) {
		return []models.Event{seed}, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: interval,
		Dtstart:  record.RecordDate,
		Until:    endOfDay(*record.RepeatEndDate, record.RecordDate.Location()),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	occurrences := rule.All()
	if len(occurrences) > maxOccurrencesPerRecord {
		occurrences = occurrences[:maxOccurrencesPerRecord]
	}
	events := make([]models.Event, 0, len(occurrences))
	for index, start := range occurrences {
		event := seed
		event.Start = start
		if index > 0 {
			event.ID = DerivedOccurrenceID(record.ID, index)
		}
		events = append(events, event)
	}
	if len(events) == 0 {
		events = append(events, seed)
	}
	return events, nil
}

// repeatIntervalDays resolves the repeat rule to a day interval: 1 for
// daily, 7 for weekly, the explicit interval for everyXdays.
func repeatIntervalDays(record models.HealthRecord) (int, error) {
	switch record.RepeatType {
	case models.RepeatDaily:
		return 1, nil
	case models.RepeatWeekly:
		return 7, nil
	case models.RepeatEveryX:
		if record.RepeatInterval <= 0 {
			return 0, fmt.Errorf("%w: interval %d must be positive", ErrInvalidRecurrence, record.RepeatInterval)
		}
		return record.RepeatInterval, nil
	default:
		return 0, fmt.Errorf("%w: unknown repeat type %q", ErrInvalidRecurrence, record.RepeatType)
	}
}

// endOfDay widens a date-only bound to the last instant of that civil day,
// so an occurrence whose inherited time of day falls later than midnight
// still lands on (and not past) the end date.
func endOfDay(value time.Time, location *time.Location) time.Time {
	day := DateAtLocation(value, location)
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
