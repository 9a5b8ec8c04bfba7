package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/socialtrend/automator/internal/models"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) (int64, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.AuditLog, error)
}

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) (int64, error) {
	query := `
		INSERT INTO audit_logs (user_id, action, resource_type, resource_id, ip_address, user_agent, metadata)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, 0), $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, entry.UserID, entry.Action, entry.ResourceType,
		entry.ResourceID, entry.IPAddress, entry.UserAgent, []byte(entry.Metadata)).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *auditLogRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, user_id, action, COALESCE(resource_type, ''), COALESCE(resource_id, 0), ip_address, user_agent, metadata, created_at
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		var metadata []byte
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.ResourceType,
			&entry.ResourceID, &entry.IPAddress, &entry.UserAgent, &metadata, &entry.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entry.Metadata = metadata
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return entries, nil
}
