package export

import (
	"strings"
	"testing"
	"time"

	"github.com/astrelina/helia/internal/models"
)

func TestBuildICSEmitsOneVEventPerEvent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		{
			ID:       "42",
			Title:    "Headache - severity 3",
			Start:    time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC),
			Category: models.CategorySymptom,
		},
		{
			ID:       "a7",
			Title:    "Blood test",
			Start:    time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			AllDay:   true,
			Category: models.CategoryAnalysis,
		},
	}

	serialized := BuildICS(events, now)

	if got := strings.Count(serialized, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 VEVENT blocks, got %d", got)
	}
	if !strings.Contains(serialized, "UID:42@helia") {
		t.Fatalf("expected event uid 42@helia in feed:\n%s", serialized)
	}
	if !strings.Contains(serialized, "UID:a7@helia") {
		t.Fatalf("expected analysis uid a7@helia in feed:\n%s", serialized)
	}
	if !strings.Contains(serialized, "SUMMARY:Headache - severity 3") {
		t.Fatalf("expected projected title as summary:\n%s", serialized)
	}
}

func TestBuildICSAllDayEventsUseDateValues(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		{
			ID:       "a7",
			Title:    "Blood test",
			Start:    time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			AllDay:   true,
			Category: models.CategoryAnalysis,
		},
	}

	serialized := BuildICS(events, now)

	if !strings.Contains(serialized, "DTSTART;VALUE=DATE:20260311") {
		t.Fatalf("expected all-day DTSTART date value:\n%s", serialized)
	}
	if !strings.Contains(serialized, "DTEND;VALUE=DATE:20260312") {
		t.Fatalf("expected all-day DTEND on the following day:\n%s", serialized)
	}
}

func TestBuildICSTimedEventsGetOneHourBlock(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		{
			ID:       "42",
			Title:    "Ibuprofen",
			Start:    time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC),
			Category: models.CategoryMedication,
		},
	}

	serialized := BuildICS(events, now)

	if !strings.Contains(serialized, "DTSTART:20260309T093000Z") {
		t.Fatalf("expected timed DTSTART:\n%s", serialized)
	}
	if !strings.Contains(serialized, "DTEND:20260309T103000Z") {
		t.Fatalf("expected DTEND one hour after start:\n%s", serialized)
	}
	if !strings.Contains(serialized, "X-HELIA-CATEGORY:medication") {
		t.Fatalf("expected category marker property:\n%s", serialized)
	}
}

func TestBuildICSEmptySetStillSerializesCalendar(t *testing.T) {
	serialized := BuildICS(nil, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	if !strings.Contains(serialized, "BEGIN:VCALENDAR") {
		t.Fatalf("expected calendar envelope:\n%s", serialized)
	}
	if strings.Contains(serialized, "BEGIN:VEVENT") {
		t.Fatalf("expected no events in empty feed:\n%s", serialized)
	}
}
