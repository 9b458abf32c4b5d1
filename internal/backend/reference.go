package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/astrelina/helia/internal/models"
)

// NewReferenceEntity is the create payload for a user-defined symptom or
// medication type.
type NewReferenceEntity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsCustom    bool   `json:"isCustom"`
	UserID      string `json:"userId"`
}

func (c *Client) FetchSymptoms(ctx context.Context, userID string) ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	err := c.getJSON(ctx, "fetch symptoms", "/symptom/all/"+url.PathEscape(userID), &symptoms)
	if err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (c *Client) FetchMedications(ctx context.Context, userID string) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	err := c.getJSON(ctx, "fetch medications", "/medication/all/"+url.PathEscape(userID), &medications)
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (c *Client) CreateSymptom(ctx context.Context, entity NewReferenceEntity) (models.Symptom, error) {
	var created models.Symptom
	err := c.sendJSON(ctx, "create symptom", http.MethodPost, "/symptom", entity, &created)
	return created, err
}

func (c *Client) CreateMedication(ctx context.Context, entity NewReferenceEntity) (models.Medication, error) {
	var created models.Medication
	err := c.sendJSON(ctx, "create medication", http.MethodPost, "/medication", entity, &created)
	return created, err
}
