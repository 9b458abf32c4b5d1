package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	events := api.Group("/events")
	events.Get("", handler.GetEvents)
	events.Get("/feed.ics", handler.GetEventsFeed)

	records := api.Group("/records")
	records.Post("/symptoms", handler.CreateSymptomRecord)
	records.Post("/medications", handler.CreateMedicationRecord)
	records.Put("/:id", handler.UpdateRecord)
	records.Delete("/:id", handler.DeleteRecord)

	api.Get("/symptoms", handler.ListSymptoms)
	api.Post("/symptoms", handler.CreateCustomSymptom)
	api.Get("/medications", handler.ListMedications)
	api.Post("/medications", handler.CreateCustomMedication)

	analyses := api.Group("/analyses")
	analyses.Post("", handler.UploadAnalysis)
	analyses.Get("/:id/file", handler.DownloadAnalysis)
	analyses.Delete("/:id", handler.DeleteAnalysis)

	api.Post("/refetch", handler.Refetch)
	api.Get("/status", handler.Status)
	api.Get("/kp/outlook", handler.KpOutlook)
}
