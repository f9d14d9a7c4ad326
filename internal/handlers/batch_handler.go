package handlers

import (
	"io"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BatchHandler struct {
	batchService  *services.BatchService
	classifierURL string
}

func NewBatchHandler(batchService *services.BatchService, classifierURL string) *BatchHandler {
	return &BatchHandler{batchService: batchService, classifierURL: classifierURL}
}

// UploadCSV handles POST /api/admin/grievances/csv with multipart field "file".
func (h *BatchHandler) UploadCSV(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	result, err := h.batchService.IngestCSV(header.Filename, data)
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	return c.JSON(result)
}
