package handlers

import (
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type GrievanceHandler struct {
	grievanceService *services.GrievanceService
	classifierURL    string
}

func NewGrievanceHandler(grievanceService *services.GrievanceService, classifierURL string) *GrievanceHandler {
	return &GrievanceHandler{grievanceService: grievanceService, classifierURL: classifierURL}
}

// Submit handles POST /api/grievances from the public form.
func (h *GrievanceHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	info := &models.UserInfo{
		Name:       optional(req.Name),
		RoomNumber: optional(req.RoomNumber),
		Email:      optional(req.Email),
	}

	id, err := h.grievanceService.Submit(req.RawText, info, c.IP())
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitResponse{
		Success: true,
		ID:      id,
		Message: "Grievance submitted successfully",
	})
}

// SubmitAndAnalyze handles POST /api/grievances/analyze.
func (h *GrievanceHandler) SubmitAndAnalyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.grievanceService.SubmitAndAnalyze(req.RawText, req.UserInfo, c.IP())
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	message := "Grievance submitted successfully (analysis unavailable)"
	if result.AnalysisAvailable {
		message = "Grievance submitted and analyzed successfully"
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AnalyzeResponse{
		Success:           true,
		ID:                result.GrievanceID,
		Complaint:         result.RawText,
		AnalysisID:        result.AnalysisID,
		AnalysisAvailable: result.AnalysisAvailable,
		Message:           message,
		Classification:    result.Classification,
	})
}

// List handles GET /api/admin/grievances.
func (h *GrievanceHandler) List(c *fiber.Ctx) error {
	filter := storage.GrievanceFilter{
		Search:    c.Query("q"),
		Category:  c.Query("category"),
		Sentiment: c.Query("sentiment"),
		Urgency:   c.Query("urgency"),
		Limit:     c.QueryInt("limit", defaultListLimit),
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = defaultListLimit
	}

	grievances, err := h.grievanceService.ListGrievances(filter)
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	return c.JSON(dto.GrievanceListResponse{
		Grievances: grievances,
		Count:      len(grievances),
	})
}

// Get handles GET /api/admin/grievances/:id.
func (h *GrievanceHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid grievance id")
	}

	grievance, err := h.grievanceService.GetGrievance(id)
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	return c.JSON(grievance)
}

// Analyze handles POST /api/admin/grievances/:id/analyze.
func (h *GrievanceHandler) Analyze(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid grievance id")
	}

	analysis, err := h.grievanceService.AnalyzeExisting(id)
	if err != nil {
		return respondError(c, err, h.classifierURL)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"grievance_id": id,
		"analysis":     analysis,
		"status":       "completed",
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
