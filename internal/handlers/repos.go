package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/models"
)

// RepoInfo handles repository profile requests
// GET /v1/repos/:owner/:repo
func (h *Handler) RepoInfo(c *fiber.Ctx) error {
	info, err := h.profileService.RepoInfo(c.UserContext(), c.Params("owner"), c.Params("repo"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(info))
}

// Developer handles developer profile requests
// GET /v1/developers/:username
func (h *Handler) Developer(c *fiber.Ctx) error {
	resp, err := h.profileService.Developer(c.UserContext(), c.Params("username"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(models.Success(resp))
}
