package service

import (
	"context"
	"fmt"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
)

const trendsPerPage = 20

type TrendPage struct {
	Trends      []*models.Trend `json:"data"`
	CurrentPage int             `json:"current_page"`
	PerPage     int             `json:"per_page"`
	Total       int64           `json:"total"`
}

type TrendService interface {
	List(ctx context.Context, page int) (*TrendPage, error)
}

type trendService struct {
	tr repository.TrendRepository
}

func NewTrendService(tr repository.TrendRepository) TrendService {
	return &trendService{tr: tr}
}

func (s *trendService) List(ctx context.Context, page int) (*TrendPage, error) {
	if page < 1 {
		page = 1
	}

	trends, err := s.tr.List(ctx, trendsPerPage, (page-1)*trendsPerPage)
	if err != nil {
		return nil, fmt.Errorf("listing trends: %w", err)
	}

	total, err := s.tr.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting trends: %w", err)
	}

	return &TrendPage{
		Trends:      trends,
		CurrentPage: page,
		PerPage:     trendsPerPage,
		Total:       total,
	}, nil
}
