// cmd/server/seed_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

type fakeSalesRepo struct {
	seedErr     error
	seededSales int
	seededDays  int
}

func (f *fakeSalesRepo) DailySummaries(context.Context, int) ([]domain.DailySummary, error) {
	return nil, nil
}

func (f *fakeSalesRepo) CategoryRanking(context.Context, int) ([]domain.CategorySales, error) {
	return nil, nil
}

func (f *fakeSalesRepo) HourlyPattern(context.Context) ([]domain.HourlySales, error) {
	return nil, nil
}

func (f *fakeSalesRepo) Query(context.Context, string) ([]map[string]any, error) {
	return nil, nil
}

func (f *fakeSalesRepo) Seed(_ context.Context, sales []domain.SaleRecord, days []domain.DailySummary) error {
	if f.seedErr != nil {
		return f.seedErr
	}
	f.seededSales = len(sales)
	f.seededDays = len(days)
	return nil
}

type fakeAnalyticsCache struct {
	invalidated int
}

func (f *fakeAnalyticsCache) GetDailySummaries(context.Context, int) ([]domain.DailySummary, bool, error) {
	return nil, false, nil
}

func (f *fakeAnalyticsCache) SetDailySummaries(context.Context, int, []domain.DailySummary) error {
	return nil
}

func (f *fakeAnalyticsCache) InvalidateAll(context.Context) error {
	f.invalidated++
	return nil
}

func writeSeedFile(t *testing.T, sales, days int) string {
	t.Helper()

	payload := salesSeedFile{
		Sales:        make([]domain.SaleRecord, sales),
		DailySummary: make([]domain.DailySummary, days),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal seed file: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sales_seed.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeedSalesInvalidatesAnalyticsCache(t *testing.T) {
	repo := &fakeSalesRepo{}
	analyticsCache := &fakeAnalyticsCache{}

	path := writeSeedFile(t, 2, 1)
	if err := seedSales(context.Background(), repo, analyticsCache, path); err != nil {
		t.Fatalf("seedSales: %v", err)
	}

	if repo.seededSales != 2 || repo.seededDays != 1 {
		t.Errorf("seeded %d sales, %d days, want 2/1", repo.seededSales, repo.seededDays)
	}
	if analyticsCache.invalidated != 1 {
		t.Errorf("cache invalidated %d times, want 1", analyticsCache.invalidated)
	}
}

func TestSeedSalesSkipsInvalidationOnFailure(t *testing.T) {
	repo := &fakeSalesRepo{seedErr: errors.New("db closed")}
	analyticsCache := &fakeAnalyticsCache{}

	path := writeSeedFile(t, 1, 1)
	if err := seedSales(context.Background(), repo, analyticsCache, path); err == nil {
		t.Fatal("seedSales succeeded with a failing repository")
	}
	if analyticsCache.invalidated != 0 {
		t.Errorf("cache invalidated %d times after failed seed, want 0", analyticsCache.invalidated)
	}
}

func TestSeedSalesMissingFile(t *testing.T) {
	repo := &fakeSalesRepo{}
	analyticsCache := &fakeAnalyticsCache{}

	path := filepath.Join(t.TempDir(), "missing.json")
	if err := seedSales(context.Background(), repo, analyticsCache, path); err == nil {
		t.Fatal("seedSales succeeded without a seed file")
	}
	if analyticsCache.invalidated != 0 {
		t.Errorf("cache invalidated %d times without seeding, want 0", analyticsCache.invalidated)
	}
}
