package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/socialtrend/automator/internal/service"
	"github.com/socialtrend/automator/internal/transfer"
)

// WebhookHandler receives upload completion callbacks from the automation
// service. The route is unauthenticated; it is reachable only from the
// trusted network the automation service lives on.
type WebhookHandler struct {
	s service.WebhookService
}

func NewWebhookHandler(service service.WebhookService) *WebhookHandler {
	return &WebhookHandler{s: service}
}

func (h *WebhookHandler) UploadCallback(c *fiber.Ctx) error {
	var cb transfer.UploadCallback
	if err := c.BodyParser(&cb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unable to parse request body",
		})
	}

	result, err := h.s.Apply(c.Context(), &cb)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": ve.Error(),
			})
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Scheduled post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error processing webhook: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Scheduled post status updated to " + result.Status,
		"data":    result,
	})
}
