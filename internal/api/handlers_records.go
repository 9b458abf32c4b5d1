package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/astrelina/helia/internal/backend"
	"github.com/astrelina/helia/internal/services"
)

func (handler *Handler) CreateSymptomRecord(c *fiber.Ctx) error {
	var payload struct {
		backend.NewSymptomRecord
		SymptomName string `json:"symptomName"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	event, err := handler.coordinator.CreateSymptomRecord(c.UserContext(), payload.NewSymptomRecord, payload.SymptomName)
	if err != nil {
		handler.metrics.Mutations.WithLabelValues("create", "error").Inc()
		handler.metrics.OptimisticRolled.Inc()
		return mutationError(c, err)
	}
	handler.metrics.Mutations.WithLabelValues("create", "ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) CreateMedicationRecord(c *fiber.Ctx) error {
	var payload struct {
		backend.NewMedicationRecord
		MedicationName string `json:"medicationName"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	event, err := handler.coordinator.CreateMedicationRecord(c.UserContext(), payload.NewMedicationRecord, payload.MedicationName)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecurrence) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		handler.metrics.Mutations.WithLabelValues("create", "error").Inc()
		handler.metrics.OptimisticRolled.Inc()
		return mutationError(c, err)
	}
	handler.metrics.Mutations.WithLabelValues("create", "ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) UpdateRecord(c *fiber.Ctx) error {
	var update backend.RecordUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	update.ID = c.Params("id")

	canonical, err := handler.coordinator.UpdateRecord(c.UserContext(), update)
	if err != nil {
		handler.metrics.Mutations.WithLabelValues("update", "error").Inc()
		return mutationError(c, err)
	}
	handler.metrics.Mutations.WithLabelValues("update", "ok").Inc()
	return c.JSON(canonical)
}

func (handler *Handler) DeleteRecord(c *fiber.Ctx) error {
	if err := handler.coordinator.DeleteRecord(c.UserContext(), c.Params("id")); err != nil {
		handler.metrics.Mutations.WithLabelValues("delete", "error").Inc()
		return mutationError(c, err)
	}
	handler.metrics.Mutations.WithLabelValues("delete", "ok").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteAnalysis(c *fiber.Ctx) error {
	if err := handler.coordinator.DeleteAnalysis(c.UserContext(), c.Params("id")); err != nil {
		handler.metrics.Mutations.WithLabelValues("delete", "error").Inc()
		return mutationError(c, err)
	}
	handler.metrics.Mutations.WithLabelValues("delete", "ok").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSymptoms serves the reference list the filter panel is built from.
func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	return c.JSON(handler.store.Symptoms())
}

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	return c.JSON(handler.store.Medications())
}

func (handler *Handler) CreateCustomSymptom(c *fiber.Ctx) error {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	created, err := handler.coordinator.CreateCustomSymptom(c.UserContext(), payload.Name, payload.Description)
	if err != nil {
		return mutationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) CreateCustomMedication(c *fiber.Ctx) error {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	created, err := handler.coordinator.CreateCustomMedication(c.UserContext(), payload.Name, payload.Description)
	if err != nil {
		return mutationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) Refetch(c *fiber.Ctx) error {
	if err := handler.coordinator.Refetch(c.UserContext()); err != nil {
		handler.metrics.Refetches.WithLabelValues("error").Inc()
		return mutationError(c, err)
	}
	handler.metrics.Refetches.WithLabelValues("ok").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

func mutationError(c *fiber.Ctx, err error) error {
	var transport *backend.TransportError
	if errors.As(err, &transport) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": transport.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
