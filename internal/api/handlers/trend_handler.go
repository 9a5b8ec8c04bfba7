package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialtrend/automator/internal/service"
)

type TrendHandler struct {
	s service.TrendService
}

func NewTrendHandler(service service.TrendService) *TrendHandler {
	return &TrendHandler{s: service}
}

func (h *TrendHandler) ListTrends(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	trends, err := h.s.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"trends": trends,
	})
}
