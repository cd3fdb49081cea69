package handlers

import (
	"bookcourier/internal/domain"
	applog "bookcourier/internal/log"
	"bookcourier/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Stats *repos.StatsRepo
}

// GET /stats (public marketplace totals)
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	s, err := h.Stats.Summary()
	if err != nil {
		applog.Error(c, "stats.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Error fetching stats")
	}
	if s.Categories == nil {
		s.Categories = []domain.CategoryCount{}
	}
	return c.JSON(s)
}
