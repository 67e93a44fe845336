// internal/repository/sales_repository.go
package repository

import (
	"context"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

// SalesRepository serves the analytical sales tables.
type SalesRepository interface {
	DailySummaries(ctx context.Context, days int) ([]domain.DailySummary, error)
	CategoryRanking(ctx context.Context, days int) ([]domain.CategorySales, error)
	HourlyPattern(ctx context.Context) ([]domain.HourlySales, error)

	// Query runs a caller-supplied read-only statement and returns generic
	// rows. The service layer guards what is allowed through.
	Query(ctx context.Context, sql string) ([]map[string]any, error)

	// Seed replaces the sales history. Startup and test use only.
	Seed(ctx context.Context, sales []domain.SaleRecord, days []domain.DailySummary) error
}
