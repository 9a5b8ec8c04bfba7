package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/pkg/utils"
)

type SocialAccountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialAccount, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

// socialAccountRepository encrypts access and refresh tokens on the way in and
// decrypts them on the way out, so token material is never stored in the clear.
type socialAccountRepository struct {
	db  *sql.DB
	key []byte
}

func NewSocialAccountRepository(db *sql.DB, secretKey []byte) SocialAccountRepository {
	return &socialAccountRepository{db: db, key: secretKey}
}

func (r *socialAccountRepository) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	accessToken, err := r.sealToken(sa.AccessToken)
	if err != nil {
		return 0, err
	}
	refreshToken, err := r.sealToken(sa.RefreshToken)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO social_accounts (user_id, platform, username, access_token, refresh_token, token_expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, sa.UserID, sa.Platform, sa.Username, accessToken, refreshToken, sa.TokenExpiresAt, sa.IsActive).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, sa.UserID, sa.Platform, sa.Username, accessToken, refreshToken, sa.TokenExpiresAt, sa.IsActive).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	query := `
		SELECT id, user_id, platform, username, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at
		FROM social_accounts
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	sa, err := r.scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return sa, nil
}

func (r *socialAccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	query := `
		SELECT id, user_id, platform, username, access_token, refresh_token, token_expires_at, is_active, created_at, updated_at
		FROM social_accounts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		sa, err := r.scanAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, sa)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return accounts, nil
}

func (r *socialAccountRepository) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	query := "SELECT 1 FROM social_accounts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, accountID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *socialAccountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM social_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *socialAccountRepository) scanAccount(row rowScanner) (*models.SocialAccount, error) {
	var sa models.SocialAccount
	var accessToken, refreshToken sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(&sa.ID, &sa.UserID, &sa.Platform, &sa.Username, &accessToken, &refreshToken,
		&expiresAt, &sa.IsActive, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if accessToken.Valid {
		sa.AccessToken, err = r.openToken(accessToken.String)
		if err != nil {
			return nil, err
		}
	}
	if refreshToken.Valid {
		sa.RefreshToken, err = r.openToken(refreshToken.String)
		if err != nil {
			return nil, err
		}
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		sa.TokenExpiresAt = &t
	}

	return &sa, nil
}

func (r *socialAccountRepository) sealToken(token string) (*string, error) {
	if token == "" {
		return nil, nil
	}
	sealed, err := utils.Encrypt([]byte(token), r.key)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return &sealed, nil
}

func (r *socialAccountRepository) openToken(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	token, err := utils.Decrypt(sealed, r.key)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	return token, nil
}
