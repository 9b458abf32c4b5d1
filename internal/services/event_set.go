package services

import (
	"github.com/astrelina/helia/internal/models"
)

// BuildEventSet projects every record and analysis into the full calendar
// event set, expanding repeating future medications into their concrete
// occurrences. A malformed record or an invalid recurrence rule skips that
// one item and is reported in the second return value; one bad record must
// not blank the whole calendar.
func BuildEventSet(records []models.HealthRecord, analyses []models.Analysis) ([]models.Event, []error) {
	events := make([]models.Event, 0, len(records)+len(analyses))
	var skipped []error

	for _, record := range records {
		expanded, err := ExpandRecurrence(record)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		events = append(events, expanded...)
	}

	for _, analysis := range analyses {
		events = append(events, ProjectAnalysis(analysis))
	}

	return events, skipped
}
