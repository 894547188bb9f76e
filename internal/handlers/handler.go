// Package handlers contains the fiber HTTP handlers. Handlers parse and
// validate transport concerns, delegate to the service layer and serialize
// the response envelope.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/analytics"
	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
	"github.com/osspulse/osspulse/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	metricsService  *services.MetricsService
	analysisService *services.AnalysisService
	profileService  *services.ProfileService
}

// New creates a new handler instance
func New(logger *logging.Logger, metrics services.MetricSource,
	profiles services.ProfileSource, cfg config.AnalysisConfig,
) *Handler {
	return &Handler{
		logger:          logger,
		metricsService:  services.NewMetricsService(logger, metrics, cfg),
		analysisService: services.NewAnalysisService(logger, metrics, cfg),
		profileService:  services.NewProfileService(logger, metrics, profiles),
	}
}

// respondError translates service-layer errors into HTTP responses.
// Insufficient data is a valid analytical outcome and keeps status 200.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var insufficient *analytics.InsufficientDataError
	if errors.As(err, &insufficient) {
		return c.JSON(insufficient)
	}

	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		switch svcErr.Code {
		case services.CodeInvalidRequest, services.CodeUnsupportedMetric:
			status = fiber.StatusBadRequest
		case services.CodeMetricNotFound, services.CodeRepositoryNotFound, services.CodeUserNotFound:
			status = fiber.StatusNotFound
		case services.CodeUpstreamFailure:
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}

func invalidJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_JSON",
			Message: "Failed to parse JSON body",
			Details: map[string]interface{}{"error": err.Error()},
		},
	})
}
