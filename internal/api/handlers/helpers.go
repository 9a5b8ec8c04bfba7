package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/socialtrend/automator/internal/service"
	"github.com/socialtrend/automator/internal/transfer"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

func GetRequestMeta(c *fiber.Ctx) transfer.RequestMeta {
	return transfer.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// respondError maps service errors onto the API surface: validation failures
// become 422 with a per-field errors map, not-found sentinels become 404,
// anything else is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "The given data was invalid.",
			"errors": fiber.Map{
				ve.Field: []string{ve.Message},
			},
		})
	}

	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": err.Error(),
	})
}
