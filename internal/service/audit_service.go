package service

import (
	"context"
	"log/slog"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/transfer"
)

// AuditService records user activity. A failed write is logged and dropped;
// auditing never fails the action it describes.
type AuditService interface {
	Log(ctx context.Context, userID int64, action, resourceType string, resourceID int64, meta transfer.RequestMeta)
}

type auditService struct {
	ar repository.AuditLogRepository
}

func NewAuditService(ar repository.AuditLogRepository) AuditService {
	return &auditService{ar: ar}
}

func (s *auditService) Log(ctx context.Context, userID int64, action, resourceType string, resourceID int64, meta transfer.RequestMeta) {
	if userID == 0 {
		return
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	}

	if _, err := s.ar.Create(ctx, entry); err != nil {
		slog.Error("failed to write audit log", "action", action, "user_id", userID, "error", err)
	}
}
