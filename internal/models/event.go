package models

import "time"

const (
	CategorySymptom    = "symptom"
	CategoryMedication = "medication"
	CategoryAnalysis   = "analysis"
)

// MedicationDetails carries the medication-specific payload of a projected
// event as typed numbers. The backend wire format stashes quantity inside
// the free-text notes field; projection parses it out once so nothing
// downstream has to re-interpret strings.
type MedicationDetails struct {
	MedicationID uint     `json:"medicationId"`
	Dosage       *float64 `json:"dosage,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type SymptomDetails struct {
	SymptomID uint `json:"symptomId"`
	Weight    *int `json:"weight,omitempty"`
}

// Event is the ephemeral calendar-displayable derivation of a record. It is
// recomputed on every read and never written back to the store.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	AllDay   bool      `json:"allDay"`
	Category string    `json:"category"`

	Symptom    *SymptomDetails    `json:"symptom,omitempty"`
	Medication *MedicationDetails `json:"medication,omitempty"`
	FilePath   string             `json:"filePath,omitempty"`

	// IsFuture records whether the source was originally scheduled ahead
	// of time, independent of whether it has since come due.
	IsFuture bool `json:"isFuture,omitempty"`

	// Pending marks a locally-synthesized optimistic entry whose server id
	// is not known yet.
	Pending bool `json:"pending,omitempty"`
}

// KP-index sources; historical measurements win over forecast values on a
// date collision.
const (
	KpSourceHistorical = "historical"
	KpSourceForecast   = "forecast"
)

// KpIndexEntry is one calendar day of geomagnetic activity. KpIndex is nil
// when the value is unknown for that day.
type KpIndexEntry struct {
	Date    string `json:"date"`
	KpIndex *int   `json:"kpIndex"`
	Source  string `json:"-"`
}

// FilterCriteria is the user-chosen filter set. The zero value means "no
// filtering": all events pass.
type FilterCriteria struct {
	Symptom    bool
	Medication bool
	Analysis   bool

	SymptomIDs    map[uint]struct{}
	MedicationIDs map[uint]struct{}
}

// IsEmpty reports the default/off state: no category flag and no entity-id
// allow-list.
func (c FilterCriteria) IsEmpty() bool {
	return !c.Symptom && !c.Medication && !c.Analysis &&
		len(c.SymptomIDs) == 0 && len(c.MedicationIDs) == 0
}

// HasCategoryFlag reports whether at least one category toggle is on.
func (c FilterCriteria) HasCategoryFlag() bool {
	return c.Symptom || c.Medication || c.Analysis
}
