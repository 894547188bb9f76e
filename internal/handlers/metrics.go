package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/models"
)

// RepoMetrics handles raw metric series requests
// GET /v1/metrics/repo/:owner/:repo?metrics=a,b&start_date=YYYY-MM&end_date=YYYY-MM
func (h *Handler) RepoMetrics(c *fiber.Ctx) error {
	owner := c.Params("owner")
	repo := c.Params("repo")

	var metrics []string
	if raw := c.Query("metrics"); raw != "" {
		metrics = splitAndTrim(raw, ",")
	}

	result, err := h.metricsService.RepoMetrics(c.UserContext(), owner, repo,
		metrics, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(result))
}

// SupportedMetrics handles metric vocabulary requests
// GET /v1/metrics/supported
func (h *Handler) SupportedMetrics(c *fiber.Ctx) error {
	return c.JSON(models.Success(h.metricsService.Supported()))
}

// splitAndTrim splits a string and removes empty segments.
func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
