// internal/repository/sqlite/repository_test.go
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

var testNow = time.Date(2026, 2, 7, 12, 0, 0, 0, timeutil.JST)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB("")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedItem(id, name, category string, qty, minLevel, reorder int, expiresIn float64) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:        id,
		ItemName:      name,
		Category:      category,
		Quantity:      qty,
		MinStockLevel: minLevel,
		ReorderPoint:  reorder,
		StockedAt:     testNow.Add(-2 * time.Hour),
		ExpiresAt:     testNow.Add(time.Duration(expiresIn * float64(time.Hour))),
	}
}

func TestInventorySeedRoundTrip(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	items := []domain.InventoryItem{
		seedItem("INV001", "からあげクン レギュラー", "ホットスナック", 8, 5, 10, 2.5),
		seedItem("INV002", "おにぎり 鮭", "おにぎり", 15, 8, 15, 15),
	}
	if err := repo.Seed(ctx, items, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	got, err := repo.Get(ctx, "INV001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("seeded item missing")
	}
	if got.ItemName != "からあげクン レギュラー" || got.Quantity != 8 {
		t.Errorf("item = %+v", got)
	}
	if !got.ExpiresAt.Equal(items[0].ExpiresAt.Truncate(time.Second)) {
		t.Errorf("expires_at = %v, want %v", got.ExpiresAt, items[0].ExpiresAt)
	}

	missing, err := repo.Get(ctx, "INV999")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing item = %+v, want nil", missing)
	}
}

func TestListInStockExcludesSoldOut(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Seed(ctx, []domain.InventoryItem{
		seedItem("INV001", "在庫あり", "ホットスナック", 8, 5, 10, 3),
		seedItem("INV002", "売切", "ホットスナック", 0, 5, 10, 3),
	}, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	items, err := repo.ListInStock(ctx, "")
	if err != nil {
		t.Fatalf("ListInStock: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != "INV001" {
		t.Errorf("in-stock items = %+v", items)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll = %d items, want sold-out included", len(all))
	}
}

func TestListByExpiryOrder(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Seed(ctx, []domain.InventoryItem{
		seedItem("INV001", "遅い", "弁当", 5, 3, 6, 12),
		seedItem("INV002", "早い", "弁当", 5, 3, 6, 2),
		seedItem("INV003", "中間", "おにぎり", 5, 3, 6, 6),
	}, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	items, err := repo.ListByExpiry(ctx, "")
	if err != nil {
		t.Fatalf("ListByExpiry: %v", err)
	}
	want := []string{"INV002", "INV003", "INV001"}
	for i, id := range want {
		if items[i].ItemID != id {
			t.Fatalf("expiry order = %v", items)
		}
	}
}

func TestListBelowReorderOrdering(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Seed(ctx, []domain.InventoryItem{
		seedItem("INV001", "少し不足", "ホットスナック", 8, 5, 10, 3),
		seedItem("INV002", "大幅不足", "おにぎり", 1, 8, 15, 15),
		seedItem("INV003", "在庫十分", "飲料", 30, 10, 20, 700),
	}, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	items, err := repo.ListBelowReorder(ctx, "")
	if err != nil {
		t.Fatalf("ListBelowReorder: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("below-reorder = %d items, want 2", len(items))
	}
	// Largest shortage first: 15-1=14 before 10-8=2.
	if items[0].ItemID != "INV002" || items[1].ItemID != "INV001" {
		t.Errorf("shortage order = %v, %v", items[0].ItemID, items[1].ItemID)
	}

	filtered, err := repo.ListBelowReorder(ctx, "おにぎり")
	if err != nil {
		t.Fatalf("ListBelowReorder filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ItemID != "INV002" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestNextItemSeq(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	seq, err := repo.NextItemSeq(ctx)
	if err != nil {
		t.Fatalf("NextItemSeq empty: %v", err)
	}
	if seq != 1 {
		t.Errorf("empty table seq = %d, want 1", seq)
	}

	if err := repo.Seed(ctx, []domain.InventoryItem{
		seedItem("INV003", "a", "x", 1, 1, 2, 1),
		seedItem("INV012", "b", "x", 1, 1, 2, 1),
	}, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	seq, err = repo.NextItemSeq(ctx)
	if err != nil {
		t.Fatalf("NextItemSeq: %v", err)
	}
	if seq != 13 {
		t.Errorf("seq = %d, want 13", seq)
	}
}

func TestAdjustQuantityAndMovements(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Seed(ctx, []domain.InventoryItem{
		seedItem("INV001", "からあげクン", "ホットスナック", 8, 5, 10, 3),
	}, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	movement := domain.StockMovement{
		MovementID:   "MOVTEST0001",
		ItemID:       "INV001",
		ItemName:     "からあげクン",
		MovementType: domain.MovementOut,
		Quantity:     3,
		Reason:       "販売",
		CreatedAt:    testNow,
	}
	if err := repo.AdjustQuantity(ctx, "INV001", 5, movement); err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}

	got, err := repo.Get(ctx, "INV001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", got.Quantity)
	}

	movements, err := repo.ListMovements(ctx, testNow.Add(-time.Hour), "")
	if err != nil {
		t.Fatalf("ListMovements: %v", err)
	}
	if len(movements) != 1 || movements[0].Reason != "販売" {
		t.Errorf("movements = %+v", movements)
	}

	// Category filter joins through the inventory table.
	filtered, err := repo.ListMovements(ctx, testNow.Add(-time.Hour), "おにぎり")
	if err != nil {
		t.Fatalf("ListMovements filtered: %v", err)
	}
	if len(filtered) != 0 {
		t.Errorf("unrelated category returned %d movements", len(filtered))
	}

	if err := repo.AdjustQuantity(ctx, "INV999", 1, movement); err == nil {
		t.Error("adjusting a missing item returned no error")
	}
}

func TestCreateItem(t *testing.T) {
	repo := NewInventoryRepository(newTestDB(t))
	ctx := context.Background()

	item := seedItem("INV001", "新商品", "スイーツ", 10, 5, 10, 48)
	movement := domain.StockMovement{
		MovementID:   "MOVTEST0002",
		ItemID:       "INV001",
		ItemName:     "新商品",
		MovementType: domain.MovementIn,
		Quantity:     10,
		Reason:       "新規入荷",
		CreatedAt:    testNow,
	}
	if err := repo.CreateItem(ctx, item, movement); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	got, err := repo.Get(ctx, "INV001")
	if err != nil || got == nil {
		t.Fatalf("Get after create: %v, %v", got, err)
	}
	if got.Category != "スイーツ" {
		t.Errorf("item = %+v", got)
	}

	// Duplicate ids are rejected by the primary key.
	if err := repo.CreateItem(ctx, item, movement); err == nil {
		t.Error("duplicate item id inserted without error")
	}
}

func TestSalesRepository(t *testing.T) {
	repo := NewSalesRepository(newTestDB(t))
	ctx := context.Background()

	sales := []domain.SaleRecord{
		{SaleID: "S00000001", SaleDate: "2026-02-06", SaleHour: 12, ItemID: "K001", ItemName: "からあげクン", Category: "ホットスナック", Quantity: 2, UnitPrice: 238, TotalAmount: 476, Weather: "sunny", Temperature: 12.5, DayOfWeek: 4},
		{SaleID: "S00000002", SaleDate: "2026-02-07", SaleHour: 12, ItemID: "O001", ItemName: "おにぎり 鮭", Category: "おにぎり", Quantity: 1, UnitPrice: 140, TotalAmount: 140, Weather: "cloudy", Temperature: 10.0, DayOfWeek: 5},
		{SaleID: "S00000003", SaleDate: "2026-02-07", SaleHour: 18, ItemID: "K001", ItemName: "からあげクン", Category: "ホットスナック", Quantity: 1, UnitPrice: 238, TotalAmount: 238, Weather: "cloudy", Temperature: 10.0, DayOfWeek: 5},
	}
	dailies := []domain.DailySummary{
		{Date: "2026-02-06", TotalSales: 476, TotalItems: 2, Weather: "sunny", Temperature: 12.5, CustomerCount: 1},
		{Date: "2026-02-07", TotalSales: 378, TotalItems: 2, Weather: "cloudy", Temperature: 10.0, CustomerCount: 1},
	}
	if err := repo.Seed(ctx, sales, dailies); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	summaries, err := repo.DailySummaries(ctx, 1)
	if err != nil {
		t.Fatalf("DailySummaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Date != "2026-02-07" {
		t.Errorf("summaries = %+v, want newest day only", summaries)
	}

	ranking, err := repo.CategoryRanking(ctx, 2)
	if err != nil {
		t.Fatalf("CategoryRanking: %v", err)
	}
	if len(ranking) != 2 || ranking[0].Category != "ホットスナック" || ranking[0].Quantity != 3 {
		t.Errorf("ranking = %+v", ranking)
	}

	hourly, err := repo.HourlyPattern(ctx)
	if err != nil {
		t.Fatalf("HourlyPattern: %v", err)
	}
	if len(hourly) != 2 || hourly[0].Hour != 12 || hourly[0].Quantity != 3 {
		t.Errorf("hourly = %+v", hourly)
	}

	rows, err := repo.Query(ctx, "SELECT COUNT(*) AS n FROM sales")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	if n, ok := rows[0]["n"].(int64); !ok || n != 3 {
		t.Errorf("count = %v (%T)", rows[0]["n"], rows[0]["n"])
	}

	// Text expressions come back as strings, not byte slices.
	rows, err = repo.Query(ctx, "SELECT category FROM sales GROUP BY category ORDER BY category")
	if err != nil {
		t.Fatalf("Query text: %v", err)
	}
	if _, ok := rows[0]["category"].(string); !ok {
		t.Errorf("category column type = %T, want string", rows[0]["category"])
	}
}
