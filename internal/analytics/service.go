// internal/analytics/service.go
package analytics

import (
	"context"
	"strings"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/cache"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/repository"
	"github.com/yoichiojima-2/karaage-tencho-kun/pkg/logger"
)

const defaultRangeDays = 7

// Service answers sales analytics questions over the seeded history.
type Service struct {
	repo  repository.SalesRepository
	cache cache.AnalyticsCache
}

func NewService(repo repository.SalesRepository, c cache.AnalyticsCache) *Service {
	if c == nil {
		c = cache.NewNoopAnalyticsCache()
	}
	return &Service{repo: repo, cache: c}
}

// DailySummaries returns the last N days of aggregated sales, newest
// first. Cache failures degrade to the database, they never fail the call.
func (s *Service) DailySummaries(ctx context.Context, days int) ([]domain.DailySummary, error) {
	if days <= 0 {
		days = defaultRangeDays
	}

	if cached, found, err := s.cache.GetDailySummaries(ctx, days); err != nil {
		logger.Log.Warn().Err(err).Msg("analytics cache read failed")
	} else if found {
		return cached, nil
	}

	summaries, err := s.repo.DailySummaries(ctx, days)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDailySummaries(ctx, days, summaries); err != nil {
		logger.Log.Warn().Err(err).Msg("analytics cache write failed")
	}
	return summaries, nil
}

// CategoryRanking returns categories ordered by quantity sold over the
// last N days.
func (s *Service) CategoryRanking(ctx context.Context, days int) ([]domain.CategorySales, error) {
	if days <= 0 {
		days = defaultRangeDays
	}
	return s.repo.CategoryRanking(ctx, days)
}

// HourlyPattern returns the all-time sales aggregate per hour of day.
func (s *Service) HourlyPattern(ctx context.Context) ([]domain.HourlySales, error) {
	return s.repo.HourlyPattern(ctx)
}

// Query runs a caller-supplied statement against the sales tables. Only
// read statements pass the guard; anything else is rejected before it
// reaches the database.
func (s *Service) Query(ctx context.Context, sql string) ([]map[string]any, error) {
	if err := validateReadOnly(sql); err != nil {
		return nil, err
	}
	return s.repo.Query(ctx, sql)
}

func validateReadOnly(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return domain.NewValidationError("sql を指定してください")
	}
	if strings.Contains(trimmed, ";") {
		return domain.NewValidationError("複数ステートメントは実行できません")
	}

	head := strings.ToUpper(trimmed)
	if !strings.HasPrefix(head, "SELECT") && !strings.HasPrefix(head, "WITH") {
		return domain.NewValidationError("SELECT / WITH 以外のクエリは実行できません")
	}
	return nil
}
