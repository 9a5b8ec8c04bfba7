package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/socialtrend/automator/internal/models"
)

type TrendRepository interface {
	Create(ctx context.Context, trend *models.Trend) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Trend, error)
	Count(ctx context.Context) (int64, error)
}

type trendRepository struct {
	db *sql.DB
}

func NewTrendRepository(db *sql.DB) TrendRepository {
	return &trendRepository{db: db}
}

func (r *trendRepository) Create(ctx context.Context, trend *models.Trend) (int64, error) {
	query := `
		INSERT INTO trends (platform, keyword, count, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, trend.Platform, trend.Keyword, trend.Count, []byte(trend.Metadata)).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *trendRepository) List(ctx context.Context, limit, offset int) ([]*models.Trend, error) {
	query := `
		SELECT id, platform, keyword, count, metadata, created_at, updated_at
		FROM trends
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var trends []*models.Trend
	for rows.Next() {
		var trend models.Trend
		var metadata []byte
		err := rows.Scan(&trend.ID, &trend.Platform, &trend.Keyword, &trend.Count, &metadata, &trend.CreatedAt, &trend.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		trend.Metadata = metadata
		trends = append(trends, &trend)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return trends, nil
}

func (r *trendRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trends").Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
