package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/astrelina/helia/internal/backend"
)

// UploadAnalysis accepts a multipart form with the analysis file and its
// metadata, forwards it to the records backend and refreshes the list.
func (handler *Handler) UploadAnalysis(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}

	recordDate, err := time.Parse(time.RFC3339, c.FormValue("recordDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recordDate must be RFC 3339"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer file.Close()

	created, err := handler.coordinator.UploadAnalysis(c.UserContext(), backend.AnalysisUpload{
		Title:      c.FormValue("title", fileHeader.Filename),
		FileName:   fileHeader.Filename,
		RecordDate: recordDate,
		Content:    file,
	})
	if err != nil {
		handler.metrics.Mutations.WithLabelValues("create", "error").Inc()
		return mutationError(c, err)
	}
	handler.metrics.Mutations.WithLabelValues("create", "ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(created)
}

// DownloadAnalysis streams the stored file through from the backend.
func (handler *Handler) DownloadAnalysis(c *fiber.Ctx) error {
	body, err := handler.files.DownloadAnalysis(c.UserContext(), c.Params("id"))
	if err != nil {
		return mutationError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(body)
}
