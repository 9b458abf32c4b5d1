package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/astrelina/helia/internal/export"
	"github.com/astrelina/helia/internal/models"
	"github.com/astrelina/helia/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// EventView is one calendar entry as the frontend consumes it: the
// projected event plus its temporal state, computed at read time against
// the wall clock.
type EventView struct {
	models.Event
	State  services.TemporalState `json:"state"`
	Origin services.EventOrigin   `json:"origin,omitempty"`
}

// GetEvents returns the projected, classified and filtered event set.
func (handler *Handler) GetEvents(c *fiber.Ctx) error {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	views := handler.buildEventViews(criteria)
	return c.JSON(fiber.Map{
		"events":  views,
		"pending": handler.store.PendingCount(),
	})
}

// GetEventsFeed serves the same event set as an iCalendar subscription.
// The feed carries the unfiltered set unless filter params are present.
func (handler *Handler) GetEventsFeed(c *fiber.Ctx) error {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	now := handler.now()
	events := handler.filteredEvents(criteria, now)

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="helia.ics"`)
	return c.SendString(export.BuildICS(events, now))
}

// Status reports the store's loading flag and last transport error.
func (handler *Handler) Status(c *fiber.Ctx) error {
	payload := fiber.Map{
		"loading": handler.store.Loading(),
		"pending": handler.store.PendingCount(),
	}
	if err := handler.store.Err(); err != nil {
		payload["error"] = err.Error()
	}
	return c.JSON(payload)
}

func (handler *Handler) KpOutlook(c *fiber.Ctx) error {
	return c.JSON(handler.kp.Outlook(handler.now()))
}

func (handler *Handler) buildEventViews(criteria models.FilterCriteria) []EventView {
	now := handler.now()
	events := handler.filteredEvents(criteria, now)

	views := make([]EventView, 0, len(events))
	for _, event := range events {
		classification := services.Classify(event, now)
		views = append(views, EventView{
			Event:  event,
			State:  classification.State,
			Origin: classification.Origin,
		})
	}
	return views
}

func (handler *Handler) filteredEvents(criteria models.FilterCriteria, now time.Time) []models.Event {
	events, skipped := handler.store.EventSet(now)
	for _, err := range skipped {
		handler.metrics.ProjectionSkips.Inc()
		log.Printf("projection skipped record: %v", err)
	}
	return services.FilterEvents(events, criteria)
}
