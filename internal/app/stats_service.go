package app

import (
	"context"

	"github.com/jihan212/BUBT-DX/internal/domain/analytics"
)

type StatsService struct {
	analytics analytics.Repository
}

func NewStatsService(analytics analytics.Repository) *StatsService {
	return &StatsService{analytics: analytics}
}

func (s *StatsService) Overview(ctx context.Context) (*analytics.Overview, error) {
	return s.analytics.Overview(ctx)
}
