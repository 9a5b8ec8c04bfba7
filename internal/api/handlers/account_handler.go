package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialtrend/automator/internal/service"
	"github.com/socialtrend/automator/internal/transfer"
)

type AccountHandler struct {
	s service.AccountService
}

func NewAccountHandler(service service.AccountService) *AccountHandler {
	return &AccountHandler{s: service}
}

func (h *AccountHandler) ConnectAccount(c *fiber.Ctx) error {
	var req transfer.AccountCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	account, err := h.s.Connect(c.Context(), GetUserID(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *AccountHandler) RemoveAccount(c *fiber.Ctx) error {
	accountID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), GetUserID(c), int64(accountID))
	if err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
