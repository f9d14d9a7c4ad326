package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	store      storage.Storage
	classifier services.Classifier
}

func NewHealthHandler(store storage.Storage, classifier services.Classifier) *HealthHandler {
	return &HealthHandler{store: store, classifier: classifier}
}

// Check handles GET /api/health. A store outage degrades the status; the
// classifier being offline does not.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := h.store.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:           status,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		DB:               dbStatus,
		ClassifierStatus: h.classifier.Status(),
	})
}

// ClassifierStatus handles GET /api/ai/status.
func (h *HealthHandler) ClassifierStatus(c *fiber.Ctx) error {
	return c.JSON(dto.ClassifierStatusResponse{
		Status:     h.classifier.Status(),
		BackendURL: h.classifier.BaseURL(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
