package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/models"
)

// AnalyzeTrend handles trend analysis requests
// POST /v1/analysis/trend
func (h *Handler) AnalyzeTrend(c *fiber.Ctx) error {
	var req models.TrendRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	result, err := h.analysisService.Trend(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(result))
}

// AnalyzeCorrelation handles correlation analysis requests
// POST /v1/analysis/correlation
func (h *Handler) AnalyzeCorrelation(c *fiber.Ctx) error {
	var req models.CorrelationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	result, err := h.analysisService.Correlation(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(result))
}

// Predict handles prediction requests
// POST /v1/analysis/predict
func (h *Handler) Predict(c *fiber.Ctx) error {
	var req models.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	result, err := h.analysisService.Predict(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(result))
}

// Compare handles multi-repository comparison requests
// POST /v1/analysis/compare
func (h *Handler) Compare(c *fiber.Ctx) error {
	var req models.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	result, err := h.analysisService.Compare(c.UserContext(), &req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(result))
}
