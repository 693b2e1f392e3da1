package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/api/metrics"
	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// ReportService serves the dashboard figures. Dashboard reads go through
// the stats cache; cache failures only cost a recomputation.
type ReportService struct {
	repo   ports.ReportRepository
	cache  ports.StatsCache
	logger zerolog.Logger
	now    func() time.Time
}

func NewReportService(repo ports.ReportRepository, cache ports.StatsCache, logger zerolog.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReportService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	today := domain.NewDate(s.now())
	key := today.String()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.ReportCacheTotal.WithLabelValues(metrics.ResultError).Inc()
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		case cached != nil:
			metrics.ReportCacheTotal.WithLabelValues(metrics.ResultHit).Inc()
			return cached, nil
		default:
			metrics.ReportCacheTotal.WithLabelValues(metrics.ResultMiss).Inc()
		}
	}

	stats, err := s.repo.Dashboard(ctx, today)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats); err != nil {
			s.logger.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return stats, nil
}

// Overdue lists clients with open payments past their due date.
func (s *ReportService) Overdue(ctx context.Context) ([]*domain.OverdueClient, error) {
	return s.repo.Overdue(ctx, domain.NewDate(s.now()))
}

// PaidThisMonth lists clients with at least one payment settled this month.
func (s *ReportService) PaidThisMonth(ctx context.Context) ([]*domain.PaidClient, error) {
	return s.repo.PaidInMonth(ctx, s.now().Format(domain.MonthLayout))
}

// invalidateStats drops cached dashboard figures after a write that changes
// them. A failure only leaves the cache stale until its TTL.
func invalidateStats(ctx context.Context, cache ports.StatsCache, logger zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}
