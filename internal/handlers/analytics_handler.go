package handlers

import (
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	classifierURL    string
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, classifierURL string) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, classifierURL: classifierURL}
}

// Get handles GET /api/admin/analytics. With ?persist=true the result is
// also stored as a batch summary.
func (h *AnalyticsHandler) Get(c *fiber.Ctx) error {
	if c.QueryBool("persist", false) {
		payload, err := h.analyticsService.ComputeAndPersist(c.Query("name"))
		if err != nil {
			return respondError(c, err, h.classifierURL)
		}
		return c.JSON(payload)
	}

	payload, err := h.analyticsService.ComputeAnalytics()
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}
	return c.JSON(payload)
}

// ListBatches handles GET /api/admin/batches.
func (h *AnalyticsHandler) ListBatches(c *fiber.Ctx) error {
	summaries, err := h.analyticsService.ListBatchSummaries()
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}
	return c.JSON(fiber.Map{
		"batches": summaries,
		"count":   len(summaries),
	})
}

// LatestBatch handles GET /api/admin/batches/latest.
func (h *AnalyticsHandler) LatestBatch(c *fiber.Ctx) error {
	summary, err := h.analyticsService.LatestBatchSummary()
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}
	if summary == nil {
		return c.JSON(fiber.Map{"batch": nil})
	}
	return c.JSON(fiber.Map{"batch": summary})
}
