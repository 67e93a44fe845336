// internal/analytics/service_test.go
package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

type fakeSalesRepo struct {
	summaries []domain.DailySummary
	queries   []string

	dailyCalls int
}

func (f *fakeSalesRepo) DailySummaries(_ context.Context, days int) ([]domain.DailySummary, error) {
	f.dailyCalls++
	if days > len(f.summaries) {
		days = len(f.summaries)
	}
	return f.summaries[:days], nil
}

func (f *fakeSalesRepo) CategoryRanking(context.Context, int) ([]domain.CategorySales, error) {
	return []domain.CategorySales{{Category: "ホットスナック", Quantity: 120, TotalAmount: 28560}}, nil
}

func (f *fakeSalesRepo) HourlyPattern(context.Context) ([]domain.HourlySales, error) {
	return []domain.HourlySales{{Hour: 12, Quantity: 80, TotalAmount: 16000}}, nil
}

func (f *fakeSalesRepo) Query(_ context.Context, sql string) ([]map[string]any, error) {
	f.queries = append(f.queries, sql)
	return []map[string]any{{"n": int64(1)}}, nil
}

func (f *fakeSalesRepo) Seed(context.Context, []domain.SaleRecord, []domain.DailySummary) error {
	return nil
}

// fakeCache records reads and writes and can serve a canned hit.
type fakeCache struct {
	hit    []domain.DailySummary
	err    error
	stored map[int][]domain.DailySummary
}

func (f *fakeCache) GetDailySummaries(_ context.Context, days int) ([]domain.DailySummary, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.hit != nil {
		return f.hit, true, nil
	}
	return nil, false, nil
}

func (f *fakeCache) SetDailySummaries(_ context.Context, days int, summaries []domain.DailySummary) error {
	if f.err != nil {
		return f.err
	}
	if f.stored == nil {
		f.stored = map[int][]domain.DailySummary{}
	}
	f.stored[days] = summaries
	return nil
}

func (f *fakeCache) InvalidateAll(context.Context) error { return nil }

func TestDailySummariesCacheMiss(t *testing.T) {
	repo := &fakeSalesRepo{summaries: []domain.DailySummary{
		{Date: "2026-08-30", TotalSales: 150000},
		{Date: "2026-08-29", TotalSales: 140000},
		{Date: "2026-08-28", TotalSales: 130000},
	}}
	c := &fakeCache{}
	svc := NewService(repo, c)

	got, err := svc.DailySummaries(context.Background(), 2)
	if err != nil {
		t.Fatalf("DailySummaries: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2026-08-30" {
		t.Errorf("summaries = %+v", got)
	}
	if len(c.stored[2]) != 2 {
		t.Errorf("cache not populated after miss: %+v", c.stored)
	}
}

func TestDailySummariesCacheHit(t *testing.T) {
	repo := &fakeSalesRepo{}
	c := &fakeCache{hit: []domain.DailySummary{{Date: "2026-08-30", TotalSales: 99}}}
	svc := NewService(repo, c)

	got, err := svc.DailySummaries(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailySummaries: %v", err)
	}
	if len(got) != 1 || got[0].TotalSales != 99 {
		t.Errorf("summaries = %+v, want the cached copy", got)
	}
	if repo.dailyCalls != 0 {
		t.Errorf("repository queried %d times on a cache hit", repo.dailyCalls)
	}
}

func TestDailySummariesCacheFailureDegradesToDB(t *testing.T) {
	repo := &fakeSalesRepo{summaries: []domain.DailySummary{{Date: "2026-08-30"}}}
	c := &fakeCache{err: errors.New("redis down")}
	svc := NewService(repo, c)

	got, err := svc.DailySummaries(context.Background(), 1)
	if err != nil {
		t.Fatalf("DailySummaries with broken cache: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("summaries = %+v", got)
	}
}

func TestDailySummariesDefaultDays(t *testing.T) {
	repo := &fakeSalesRepo{summaries: make([]domain.DailySummary, 10)}
	svc := NewService(repo, nil)

	got, err := svc.DailySummaries(context.Background(), 0)
	if err != nil {
		t.Fatalf("DailySummaries: %v", err)
	}
	if len(got) != 7 {
		t.Errorf("got %d days for the zero-days default, want 7", len(got))
	}
}

func TestQueryGuard(t *testing.T) {
	repo := &fakeSalesRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	cases := []struct {
		sql     string
		message string
	}{
		{"", "sql を指定してください"},
		{"   ", "sql を指定してください"},
		{"SELECT 1; DROP TABLE sales", "複数ステートメントは実行できません"},
		{"UPDATE sales SET quantity = 0", "SELECT / WITH 以外のクエリは実行できません"},
		{"DELETE FROM sales", "SELECT / WITH 以外のクエリは実行できません"},
		{"PRAGMA table_info(sales)", "SELECT / WITH 以外のクエリは実行できません"},
	}
	for _, tc := range cases {
		_, err := svc.Query(ctx, tc.sql)
		if domain.KindOf(err) != domain.KindValidation {
			t.Errorf("Query(%q) kind = %v, want validation", tc.sql, domain.KindOf(err))
			continue
		}
		if err.Error() != tc.message {
			t.Errorf("Query(%q) message = %q, want %q", tc.sql, err.Error(), tc.message)
		}
	}
	if len(repo.queries) != 0 {
		t.Errorf("rejected statements reached the repository: %v", repo.queries)
	}
}

func TestQueryAllowsReads(t *testing.T) {
	repo := &fakeSalesRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	for _, sql := range []string{
		"SELECT category, SUM(quantity) FROM sales GROUP BY category",
		"  select * from daily_summary  ",
		"WITH t AS (SELECT 1 AS n) SELECT n FROM t",
	} {
		if _, err := svc.Query(ctx, sql); err != nil {
			t.Errorf("Query(%q) rejected: %v", sql, err)
		}
	}
	if len(repo.queries) != 3 {
		t.Errorf("repository saw %d queries, want 3", len(repo.queries))
	}
}
