package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/astrelina/helia/internal/models"
)

var ErrMalformedRecord = errors.New("record has neither symptom nor medication reference")

// ProjectRecord maps one health record onto its calendar event. It is pure:
// the same record always yields the same event. Records with neither
// reference id set are rejected rather than rendered with a guessed shape.
func ProjectRecord(record models.HealthRecord) (models.Event, error) {
	switch record.Kind() {
	case models.RecordKindSymptom:
		return projectSymptomRecord(record), nil
	case models.RecordKindMedication:
		return projectMedicationRecord(record), nil
	default:
		return models.Event{}, fmt.Errorf("%w: record %s", ErrMalformedRecord, record.ID)
	}
}

func projectSymptomRecord(record models.HealthRecord) models.Event {
	return models.Event{
		ID:       record.ID,
		Title:    SymptomTitle(symptomName(record), record.Weight),
		Start:    record.RecordDate,
		AllDay:   false,
		Category: models.CategorySymptom,
		Symptom: &models.SymptomDetails{
			SymptomID: *record.SymptomID,
			Weight:    record.Weight,
		},
		IsFuture: record.IsFuture,
	}
}

func projectMedicationRecord(record models.HealthRecord) models.Event {
	details := &models.MedicationDetails{
		MedicationID: *record.MedicationID,
		Dosage:       record.Dosage,
	}
	if record.Notes != nil {
		details.Notes = *record.Notes
		details.Quantity = parseQuantityNotes(*record.Notes)
	}

	return models.Event{
		ID:         record.ID,
		Title:      MedicationTitle(medicationName(record), details.Quantity, details.Dosage),
		Start:      record.RecordDate,
		AllDay:     false,
		Category:   models.CategoryMedication,
		Medication: details,
		IsFuture:   record.IsFuture,
	}
}

// ProjectAnalysis maps a file-backed analysis onto an all-day event.
func ProjectAnalysis(analysis models.Analysis) models.Event {
	return models.Event{
		ID:       analysis.ID,
		Title:    strings.TrimSpace(analysis.Title),
		Start:    analysis.RecordDate,
		AllDay:   true,
		Category: models.CategoryAnalysis,
		FilePath: analysis.FilePath,
	}
}

// SymptomTitle composes "<name> - severity <w>", omitting the severity part
// when the weight is unknown.
func SymptomTitle(name string, weight *int) string {
	parts := []string{strings.TrimSpace(name)}
	if weight != nil {
		parts = append(parts, fmt.Sprintf("severity %d", *weight))
	}
	return strings.Join(parts, " - ")
}

// MedicationTitle composes "<name> - x<quantity> - <dosage> mg". Quantity
// and dosage are optional independently; a missing field is omitted, never
// rendered empty.
func MedicationTitle(name string, quantity *int, dosage *float64) string {
	parts := []string{strings.TrimSpace(name)}
	if quantity != nil {
		parts = append(parts, fmt.Sprintf("x%d", *quantity))
	}
	if dosage != nil {
		parts = append(parts, strconv.FormatFloat(*dosage, 'f', -1, 64)+" mg")
	}
	return strings.Join(parts, " - ")
}

// parseQuantityNotes recovers the medication quantity the backend stores as
// free text in the notes field. Non-numeric notes simply yield no quantity.
func parseQuantityNotes(notes string) *int {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return nil
	}
	quantity, err := strconv.Atoi(trimmed)
	if err != nil || quantity < 0 {
		return nil
	}
	return &quantity
}

func symptomName(record models.HealthRecord) string {
	if record.Symptom != nil && strings.TrimSpace(record.Symptom.Name) != "" {
		return record.Symptom.Name
	}
	return fmt.Sprintf("Symptom #%d", *record.SymptomID)
}

func medicationName(record models.HealthRecord) string {
	if record.Medication != nil && strings.TrimSpace(record.Medication.Name) != "" {
		return record.Medication.Name
	}
	return fmt.Sprintf("Medication #%d", *record.MedicationID)
}
