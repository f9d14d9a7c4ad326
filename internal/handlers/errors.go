package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/grievance-portal/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const classifierStartHint = "Start the analysis service with: cd backend && ./start_backend.sh"

// respondError maps service errors onto HTTP responses. Anything not
// recognised is logged, reported to Sentry and returned as a generic 500.
func respondError(c *fiber.Ctx, err error, classifierURL string) error {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:          true,
			Message:        "Database connection failed",
			Code:           "STORE_UNAVAILABLE",
			Details:        "Please check the database connection.",
			DatabaseStatus: "error",
		})
	case errors.Is(err, services.ErrServiceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:      true,
			Message:    "AI analysis service is not available. Please ensure the analysis service is running.",
			Code:       "CLASSIFIER_UNAVAILABLE",
			Details:    classifierStartHint,
			BackendURL: classifierURL,
		})
	case errors.Is(err, services.ErrGrievanceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyAnalyzed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "request_id", requestID(c), "error", err)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error", Details: err.Error(),
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
