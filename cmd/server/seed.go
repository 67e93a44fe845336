// cmd/server/seed.go
package main

import (
	"context"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/cache"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/dataload"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/repository"
	"github.com/yoichiojima-2/karaage-tencho-kun/pkg/logger"
)

// salesSeedFile is the pre-generated sales history written by the seed
// command.
type salesSeedFile struct {
	Sales        []domain.SaleRecord   `json:"sales"`
	DailySummary []domain.DailySummary `json:"daily_summary"`
}

// seedSales replaces the sales tables and drops any cached summaries left
// over from a previous process, so analytics never serves numbers from an
// older seed.
func seedSales(ctx context.Context, repo repository.SalesRepository, analyticsCache cache.AnalyticsCache, path string) error {
	loader := dataload.New[salesSeedFile](path)
	data, err := loader.Load()
	if err != nil {
		return err
	}

	if err := repo.Seed(ctx, data.Sales, data.DailySummary); err != nil {
		return err
	}
	if err := analyticsCache.InvalidateAll(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to invalidate analytics cache after seeding")
	}
	logger.Log.Info().
		Int("sales", len(data.Sales)).
		Int("days", len(data.DailySummary)).
		Msg("Sales history seeded")
	return nil
}
