package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/astrelina/helia/internal/metrics"
	"github.com/astrelina/helia/internal/models"
	"github.com/astrelina/helia/internal/store"
)

func newEventsTestApp(t *testing.T, recordStore *store.Store, now time.Time) *fiber.App {
	t.Helper()

	handler := NewHandler(recordStore, nil, nil, nil, metrics.New(), time.UTC)
	handler.now = func() time.Time { return now }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func seedEventsStore(t *testing.T) *store.Store {
	t.Helper()

	recordStore := store.New()
	symptomID := uint(1)
	medicationID := uint(7)
	weight := 3

	recordStore.ReplaceRecords([]models.HealthRecord{
		{
			ID:         "10",
			RecordDate: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
			SymptomID:  &symptomID,
			Weight:     &weight,
			Symptom:    &models.Symptom{ID: symptomID, Name: "Headache"},
		},
		{
			ID:           "11",
			RecordDate:   time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC),
			MedicationID: &medicationID,
			Medication:   &models.Medication{ID: medicationID, Name: "Ibuprofen"},
		},
	})
	recordStore.ReplaceAnalyses([]models.Analysis{
		{ID: "a1", Title: "Blood test", RecordDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
	})
	return recordStore
}

type eventsResponse struct {
	Events  []EventView `json:"events"`
	Pending int         `json:"pending"`
}

func decodeEventsResponse(t *testing.T, response *http.Response) eventsResponse {
	t.Helper()

	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status 200, got %d: %s", response.StatusCode, body)
	}
	var decoded eventsResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode events response: %v", err)
	}
	return decoded
}

func TestGetEventsReturnsClassifiedSet(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	app := newEventsTestApp(t, seedEventsStore(t), now)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events", nil), -1)
	if err != nil {
		t.Fatalf("events request failed: %v", err)
	}
	decoded := decodeEventsResponse(t, response)

	if len(decoded.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(decoded.Events))
	}

	states := make(map[string]string, len(decoded.Events))
	for _, view := range decoded.Events {
		states[view.ID] = string(view.State)
	}
	if states["10"] != "elapsed" {
		t.Fatalf("expected past symptom elapsed, got %q", states["10"])
	}
	if states["11"] != "upcoming" {
		t.Fatalf("expected future medication upcoming, got %q", states["11"])
	}
}

func TestGetEventsAppliesFilterParams(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	app := newEventsTestApp(t, seedEventsStore(t), now)

	request := httptest.NewRequest(http.MethodGet, "/api/events?categories=medication", nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("events request failed: %v", err)
	}
	decoded := decodeEventsResponse(t, response)

	if len(decoded.Events) != 1 {
		t.Fatalf("expected 1 medication event, got %d", len(decoded.Events))
	}
	if decoded.Events[0].Category != models.CategoryMedication {
		t.Fatalf("unexpected category %q", decoded.Events[0].Category)
	}
}

func TestGetEventsRejectsBadFilterParams(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	app := newEventsTestApp(t, seedEventsStore(t), now)

	request := httptest.NewRequest(http.MethodGet, "/api/events?categories=mood", nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("events request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestGetEventsFeedServesCalendar(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	app := newEventsTestApp(t, seedEventsStore(t), now)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events/feed.ics", nil), -1)
	if err != nil {
		t.Fatalf("feed request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if contentType := response.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(contentType, "text/calendar") {
		t.Fatalf("expected text/calendar content type, got %q", contentType)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read feed body: %v", err)
	}
	if got := strings.Count(string(body), "BEGIN:VEVENT"); got != 3 {
		t.Fatalf("expected 3 VEVENT blocks in feed, got %d", got)
	}
}

func TestStatusReportsStoreError(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	recordStore := store.New()
	recordStore.Fail(errors.New("records backend unreachable"))
	app := newEventsTestApp(t, recordStore, now)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/status", nil), -1)
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}
	defer response.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	message, _ := payload["error"].(string)
	if !strings.Contains(message, "unreachable") {
		t.Fatalf("expected surfaced store error, got %v", payload)
	}
}
