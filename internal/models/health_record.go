package models

import "time"

const (
	RecordKindSymptom    = "symptom"
	RecordKindMedication = "medication"
)

const (
	RepeatNone   = "none"
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
	RepeatEveryX = "everyXdays"
)

// HealthRecord is one logged occurrence as the records backend returns it.
// Exactly one of SymptomID/MedicationID is set; Weight is meaningful only
// for symptom records, Dosage and Notes only for medication records. The
// backend overloads Notes to carry the medication quantity as a string.
type HealthRecord struct {
	ID           string      `json:"id"`
	RecordDate   time.Time   `json:"recordDate"`
	SymptomID    *uint       `json:"symptomId,omitempty"`
	MedicationID *uint       `json:"medicationId,omitempty"`
	Weight       *int        `json:"weight,omitempty"`
	Dosage       *float64    `json:"dosage,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Symptom      *Symptom    `json:"symptom,omitempty"`
	Medication   *Medication `json:"medication,omitempty"`

	IsFuture       bool       `json:"isFuture,omitempty"`
	RepeatType     string     `json:"repeatType,omitempty"`
	RepeatInterval int        `json:"repeatInterval,omitempty"`
	RepeatEndDate  *time.Time `json:"repeatEndDate,omitempty"`
}

// Kind reports which family the record belongs to, empty when neither
// reference id is set (a malformed record).
func (r HealthRecord) Kind() string {
	switch {
	case r.SymptomID != nil && r.MedicationID == nil:
		return RecordKindSymptom
	case r.MedicationID != nil && r.SymptomID == nil:
		return RecordKindMedication
	default:
		return ""
	}
}

type Symptom struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"isCustom"`
}

type Medication struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"isCustom"`
}

// Analysis is a file-backed record: always an all-day event, never recurs,
// never carries severity or dosage.
type Analysis struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	FilePath   string    `json:"filePath"`
	RecordDate time.Time `json:"recordDate"`
	UserID     string    `json:"userId"`
}
