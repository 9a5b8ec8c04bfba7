package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/socialtrend/automator/configs"
	"github.com/socialtrend/automator/internal/service"
	"github.com/socialtrend/automator/internal/transfer"
	"github.com/socialtrend/automator/pkg/utils"
)

const tokenDuration = 24 * time.Hour

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req transfer.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Register(c.Context(), &req, GetRequestMeta(c))
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.issueToken(c, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Login(c.Context(), &req, GetRequestMeta(c))
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.issueToken(c, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) issueToken(c *fiber.Ctx, userID int64) (string, error) {
	token, err := utils.GenerateToken(h.cfg.SecretKey, fmt.Sprintf("%d", userID), tokenDuration)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Path:     "/",
		Expires:  time.Now().Add(tokenDuration),
	})

	return token, nil
}
