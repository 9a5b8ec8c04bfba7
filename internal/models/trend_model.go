package models

import (
	"encoding/json"
	"time"
)

type Trend struct {
	ID        int64           `db:"id" json:"id"`
	Platform  string          `db:"platform" json:"platform"`
	Keyword   string          `db:"keyword" json:"keyword"`
	Count     int64           `db:"count" json:"count"`
	Metadata  json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
