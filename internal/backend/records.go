package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/astrelina/helia/internal/models"
)

// NewSymptomRecord is the create payload for a symptom occurrence.
type NewSymptomRecord struct {
	RecordDate time.Time `json:"recordDate"`
	Weight     int       `json:"weight"`
	Notes      *string   `json:"notes"`
	UserID     string    `json:"userId"`
	SymptomID  uint      `json:"symptomId"`
}

// NewMedicationRecord is the create payload for a medication intake. The
// recurrence fields ride along only when the dose is scheduled ahead.
type NewMedicationRecord struct {
	RecordDate   time.Time `json:"recordDate"`
	Dosage       *float64  `json:"dosage"`
	Notes        *string   `json:"notes"`
	UserID       string    `json:"userId"`
	MedicationID uint      `json:"medicationId"`

	IsFuture       bool       `json:"isFuture,omitempty"`
	RepeatType     string     `json:"repeatType,omitempty"`
	RepeatInterval int        `json:"repeatInterval,omitempty"`
	RepeatEndDate  *time.Time `json:"repeatEndDate,omitempty"`
}

// RecordUpdate carries only the changed fields of an existing record.
type RecordUpdate struct {
	ID           string     `json:"id"`
	RecordDate   *time.Time `json:"recordDate,omitempty"`
	Weight       *int       `json:"weight,omitempty"`
	Dosage       *float64   `json:"dosage,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	UserID       string     `json:"userId"`
	SymptomID    *uint      `json:"symptomId,omitempty"`
	MedicationID *uint      `json:"medicationId,omitempty"`
}

func (c *Client) FetchHealthRecords(ctx context.Context, userID string) ([]models.HealthRecord, error) {
	records := make([]models.HealthRecord, 0)
	err := c.getJSON(ctx, "fetch health records", "/healthRecords/all/"+url.PathEscape(userID), &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateSymptomRecord(ctx context.Context, record NewSymptomRecord) (models.HealthRecord, error) {
	var created models.HealthRecord
	err := c.sendJSON(ctx, "create symptom record", http.MethodPost, "/healthRecords/symptoms", record, &created)
	return created, err
}

func (c *Client) CreateMedicationRecord(ctx context.Context, record NewMedicationRecord) (models.HealthRecord, error) {
	var created models.HealthRecord
	err := c.sendJSON(ctx, "create medication record", http.MethodPost, "/healthRecords/medications", record, &created)
	return created, err
}

func (c *Client) UpdateRecord(ctx context.Context, update RecordUpdate) (models.HealthRecord, error) {
	var updated models.HealthRecord
	err := c.sendJSON(ctx, "update record", http.MethodPut, "/healthRecords/"+url.PathEscape(update.ID), update, &updated)
	return updated, err
}

func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "delete record", "/healthRecords/"+url.PathEscape(id))
}
