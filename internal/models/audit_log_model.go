package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	Action       string          `db:"action" json:"action"` // register, login_success, login_failed, schedule
	ResourceType string          `db:"resource_type" json:"resource_type,omitempty"`
	ResourceID   int64           `db:"resource_id" json:"resource_id,omitempty"`
	IPAddress    string          `db:"ip_address" json:"ip_address"`
	UserAgent    string          `db:"user_agent" json:"user_agent"`
	Metadata     json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
