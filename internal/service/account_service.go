package service

import (
	"context"
	"fmt"
	"time"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/transfer"
)

var supportedPlatforms = map[string]struct{}{
	"instagram": {},
	"tiktok":    {},
	"youtube":   {},
	"twitter":   {},
}

type AccountService interface {
	Connect(ctx context.Context, userID int64, ac *transfer.AccountCreation) (*models.SocialAccount, error)
	List(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	Remove(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	ac repository.SocialAccountRepository
}

func NewAccountService(ac repository.SocialAccountRepository) AccountService {
	return &accountService{ac: ac}
}

func (s *accountService) Connect(ctx context.Context, userID int64, ac *transfer.AccountCreation) (*models.SocialAccount, error) {
	if _, ok := supportedPlatforms[ac.Platform]; !ok {
		return nil, invalid("platform", fmt.Sprintf("platform %q is not supported", ac.Platform))
	}
	if ac.Username == "" {
		return nil, invalid("username", "username is required")
	}

	account := &models.SocialAccount{
		UserID:       userID,
		Platform:     ac.Platform,
		Username:     ac.Username,
		AccessToken:  ac.AccessToken,
		RefreshToken: ac.RefreshToken,
		IsActive:     true,
	}

	if ac.TokenExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, ac.TokenExpiresAt)
		if err != nil {
			return nil, invalid("token_expires_at", "token_expires_at must be a valid timestamp")
		}
		account.TokenExpiresAt = &expiresAt
	}

	accountID, err := s.ac.Create(ctx, nil, account)
	if err != nil {
		return nil, fmt.Errorf("creating social account: %w", err)
	}
	account.ID = accountID
	account.AccessToken = ""
	account.RefreshToken = ""

	return account, nil
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	accounts, err := s.ac.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing social accounts: %w", err)
	}

	// Token material stays inside the service boundary.
	for _, account := range accounts {
		account.AccessToken = ""
		account.RefreshToken = ""
	}
	return accounts, nil
}

func (s *accountService) Remove(ctx context.Context, userID, accountID int64) error {
	exists, err := s.ac.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAccountNotFound
	}

	return s.ac.Remove(ctx, accountID)
}
