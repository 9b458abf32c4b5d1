package services

import (
	"errors"
	"testing"
	"time"

	"github.com/astrelina/helia/internal/models"
)

func futureMedicationRecord(t *testing.T, repeatType string, interval int, end time.Time) models.HealthRecord {
	t.Helper()
	endDate := end
	return models.HealthRecord{
		ID:             "55",
		RecordDate:     time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
		MedicationID:   uintPtr(7),
		Dosage:         floatPtr(500),
		Notes:          stringPtr("2"),
		Medication:     &models.Medication{ID: 7, Name: "Paracetamol"},
		IsFuture:       true,
		RepeatType:     repeatType,
		RepeatInterval: interval,
		RepeatEndDate:  &endDate,
	}
}

func TestExpandRecurrenceEveryThreeDaysStopsAtEndDate(t *testing.T) {
	record := futureMedicationRecord(t, models.RepeatEveryX, 3, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	events, err := ExpandRecurrence(record)
	if err != nil {
		t.Fatalf("unexpected expansion error: %v", err)
	}

	wantDays := []string{"2024-01-01", "2024-01-04", "2024-01-07", "2024-01-10"}
	if len(events) != len(wantDays) {
		t.Fatalf("expected %d occurrences, got %d", len(wantDays), len(events))
	}
	for i, event := range events {
		if got := event.Start.Format("2006-01-02"); got != wantDays[i] {
			t.Fatalf("occurrence %d on %s, expected %s", i, got, wantDays[i])
		}
		if event.Start.Hour() != 8 {
			t.Fatalf("occurrence %d lost the inherited time of day: %v", i, event.Start)
		}
	}
}

func TestExpandRecurrenceSeedKeepsRecordIDAndOccurrencesDeriveTheirs(t *testing.T) {
	record := futureMedicationRecord(t, models.RepeatDaily, 0, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC))

	events, err := ExpandRecurrence(record)
	if err != nil {
		t.Fatalf("unexpected expansion error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 daily occurrences, got %d", len(events))
	}
	if events[0].ID != "55" {
		t.Fatalf("seed must keep the record id, got %q", events[0].ID)
	}
	seen := map[string]bool{}
	for _, event := range events {
		if seen[event.ID] {
			t.Fatalf("duplicate occurrence id %q", event.ID)
		}
		seen[event.ID] = true
	}
	if events[1].ID != "55:1" || events[2].ID != "55:2" {
		t.Fatalf("derived ids must append the occurrence index, got %q and %q", events[1].ID, events[2].ID)
	}
}

func TestExpandRecurrenceOccurrencesInheritMedicationPayload(t *testing.T) {
	record := futureMedicationRecord(t, models.RepeatWeekly, 0, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))

	events, err := ExpandRecurrence(record)
	if err != nil {
		t.Fatalf("unexpected expansion error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected weekly occurrences on 01, 08, 15; got %d", len(events))
	}
	for i, event := range events {
		if event.Medication == nil || event.Medication.Dosage == nil || *event.Medication.Dosage != 500 {
			t.Fatalf("occurrence %d lost the dosage: %+v", i, event.Medication)
		}
		if event.Medication.Quantity == nil || *event.Medication.Quantity != 2 {
			t.Fatalf("occurrence %d lost the quantity: %+v", i, event.Medication)
		}
		if !event.IsFuture {
			t.Fatalf("occurrence %d must stay marked as scheduled", i)
		}
	}
}

func TestExpandRecurrenceEndBeforeStartYieldsOnlySeed(t *testing.T) {
	record := futureMedicationRecord(t, models.RepeatEveryX, 3, time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC))

	events, err := ExpandRecurrence(record)
	if err != nil {
		t.Fatalf("unexpected expansion error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "55" {
		t.Fatalf("expected only the seed, got %d events", len(events))
	}
}

func TestExpandRecurrenceRejectsNonPositiveInterval(t *testing.T) {
	record := futureMedicationRecord(t, models.RepeatEveryX, 0, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	if _, err := ExpandRecurrence(record); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence, got %v", err)
	}

	record.RepeatInterval = -2
	if _, err := ExpandRecurrence(record); !errors.Is(err, ErrInvalidRecurrence) {
		t.Fatalf("expected ErrInvalidRecurrence for negative interval, got %v", err)
	}
}

func TestExpandRecurrenceNonRepeatingRecordProjectsAsIs(t *testing.T) {
	record := models.HealthRecord{
		ID:           "8",
		RecordDate:   time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
		MedicationID: uintPtr(7),
		Medication:   &models.Medication{ID: 7, Name: "Aspirin"},
	}

	events, err := ExpandRecurrence(record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "8" {
		t.Fatalf("expected the single projected event, got %+v", events)
	}
}
