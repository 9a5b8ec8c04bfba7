package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/transfer"
	"github.com/socialtrend/automator/pkg/utils"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, req *transfer.RegisterRequest, meta transfer.RequestMeta) (*models.User, error)
	Login(ctx context.Context, req *transfer.LoginRequest, meta transfer.RequestMeta) (*models.User, error)
}

type authService struct {
	u     repository.UserRepository
	audit AuditService
}

func NewAuthService(u repository.UserRepository, audit AuditService) AuthService {
	return &authService{u: u, audit: audit}
}

func (s *authService) Register(ctx context.Context, req *transfer.RegisterRequest, meta transfer.RequestMeta) (*models.User, error) {
	if req.Name == "" {
		return nil, invalid("name", "name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, invalid("email", "email must be a valid address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if req.Password != req.PasswordConfirmation {
		return nil, invalid("password", "password confirmation does not match")
	}

	_, exists, err := s.u.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, invalid("email", "email has already been taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	userID, err := s.u.Create(ctx, nil, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	user.ID = userID

	s.audit.Log(ctx, userID, "register", "User", userID, meta)
	slog.Info("user registered", "user_id", userID)

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *transfer.LoginRequest, meta transfer.RequestMeta) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalid("email", "email and password are required")
	}

	user, exists, err := s.u.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if !exists || !utils.CheckPassword(user.PasswordHash, req.Password) {
		if exists {
			s.audit.Log(ctx, user.ID, "login_failed", "", 0, meta)
		}
		return nil, invalid("email", "the provided credentials are incorrect")
	}

	s.audit.Log(ctx, user.ID, "login_success", "", 0, meta)
	return user, nil
}
