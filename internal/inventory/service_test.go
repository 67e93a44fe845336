// internal/inventory/service_test.go
package inventory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

var testNow = time.Date(2026, 2, 7, 12, 0, 0, 0, timeutil.JST)

func testPolicy() Policy {
	return Policy{
		MarkdownRules: map[string]MarkdownRule{
			"high":   {ThresholdHours: 2, Action: "即時値引きまたは廃棄準備", Discount: 50},
			"medium": {ThresholdHours: 4, Action: "値引きシール貼付", Discount: 30},
			"low":    {ThresholdHours: 24, Action: "経過観察", Discount: 0},
		},
		ExpirationHours: map[string]float64{
			"ホットスナック": 4,
			"おにぎり":    18,
		},
	}
}

// fakeRepo is an in-memory InventoryRepository for service tests.
type fakeRepo struct {
	items     map[string]domain.InventoryItem
	movements []domain.StockMovement
}

func newFakeRepo(items ...domain.InventoryItem) *fakeRepo {
	r := &fakeRepo{items: map[string]domain.InventoryItem{}}
	for _, item := range items {
		r.items[item.ItemID] = item
	}
	return r
}

func (r *fakeRepo) sorted(filter func(domain.InventoryItem) bool) []domain.InventoryItem {
	var out []domain.InventoryItem
	for _, item := range r.items {
		if filter == nil || filter(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}

func (r *fakeRepo) ListInStock(_ context.Context, category string) ([]domain.InventoryItem, error) {
	return r.sorted(func(i domain.InventoryItem) bool {
		return i.Quantity > 0 && (category == "" || i.Category == category)
	}), nil
}

func (r *fakeRepo) ListByExpiry(_ context.Context, category string) ([]domain.InventoryItem, error) {
	out := r.sorted(func(i domain.InventoryItem) bool {
		return i.Quantity > 0 && (category == "" || i.Category == category)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]domain.InventoryItem, error) {
	return r.sorted(nil), nil
}

func (r *fakeRepo) ListBelowReorder(_ context.Context, category string) ([]domain.InventoryItem, error) {
	out := r.sorted(func(i domain.InventoryItem) bool {
		return i.Quantity <= i.ReorderPoint && (category == "" || i.Category == category)
	})
	sort.SliceStable(out, func(i, j int) bool {
		si := out[i].ReorderPoint - out[i].Quantity
		sj := out[j].ReorderPoint - out[j].Quantity
		return si > sj
	})
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, itemID string) (*domain.InventoryItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeRepo) NextItemSeq(_ context.Context) (int, error) {
	max := 0
	for id := range r.items {
		if strings.HasPrefix(id, "INV") {
			if n, err := strconv.Atoi(id[3:]); err == nil && n > max {
				max = n
			}
		}
	}
	return max + 1, nil
}

func (r *fakeRepo) AdjustQuantity(_ context.Context, itemID string, newQuantity int, movement domain.StockMovement) error {
	item := r.items[itemID]
	item.Quantity = newQuantity
	r.items[itemID] = item
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeRepo) CreateItem(_ context.Context, item domain.InventoryItem, movement domain.StockMovement) error {
	r.items[item.ItemID] = item
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeRepo) ListMovements(_ context.Context, since time.Time, category string) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, m := range r.movements {
		if m.CreatedAt.Before(since) {
			continue
		}
		if category != "" {
			if item, ok := r.items[m.ItemID]; !ok || item.Category != category {
				continue
			}
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) Seed(_ context.Context, items []domain.InventoryItem, movements []domain.StockMovement) error {
	r.items = map[string]domain.InventoryItem{}
	for _, item := range items {
		r.items[item.ItemID] = item
	}
	r.movements = append([]domain.StockMovement(nil), movements...)
	return nil
}

func item(id, name, category string, qty, minLevel, reorder int, expiresIn float64) domain.InventoryItem {
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

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, testPolicy()).WithClock(func() time.Time { return testNow })
}

func TestListGroupsByCategory(t *testing.T) {
	repo := newFakeRepo(
		item("INV001", "からあげクン レギュラー", "ホットスナック", 8, 5, 10, 3),
		item("INV002", "Lチキ", "ホットスナック", 6, 5, 10, 3),
		item("INV003", "おにぎり 鮭", "おにぎり", 15, 8, 15, 12),
		item("INV004", "売切商品", "おにぎり", 0, 5, 10, 12),
	)
	svc := newTestService(repo)

	result, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3 (zero-quantity rows excluded)", result.TotalItems)
	}
	hs := result.CategorySummary["ホットスナック"]
	if hs.Count != 2 || hs.TotalQuantity != 14 {
		t.Errorf("hot snack summary = %+v, want count 2 quantity 14", hs)
	}
	for _, it := range result.Items {
		if it.RemainingHours == 0 {
			t.Errorf("item %s has no remaining hours annotation", it.ItemID)
		}
	}
}

func TestListUnknownCategoryIsEmptyNotError(t *testing.T) {
	svc := newTestService(newFakeRepo(item("INV001", "からあげクン", "ホットスナック", 8, 5, 10, 3)))

	result, err := svc.List(context.Background(), "存在しないカテゴリ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.TotalItems != 0 || len(result.Items) != 0 {
		t.Errorf("expected empty result, got %d items", result.TotalItems)
	}
}

func TestCheckExpirationUrgencyBuckets(t *testing.T) {
	repo := newFakeRepo(
		item("INV001", "期限2h", "ホットスナック", 5, 5, 10, 1.5),
		item("INV002", "期限3h", "ホットスナック", 5, 5, 10, 3),
		item("INV003", "期限12h", "おにぎり", 5, 5, 10, 12),
	)
	svc := newTestService(repo)

	result, err := svc.CheckExpiration(context.Background(), CheckExpirationParams{})
	if err != nil {
		t.Fatalf("CheckExpiration: %v", err)
	}
	if result.Summary.HighUrgency != 1 || result.Summary.MediumUrgency != 1 || result.Summary.LowUrgency != 1 {
		t.Fatalf("summary = %+v, want 1/1/1", result.Summary)
	}
	if result.Summary.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Summary.Total)
	}

	// Alerts follow expiry order, soonest first.
	if result.Alerts[0].Urgency != "high" || result.Alerts[0].DiscountPercent != 50 {
		t.Errorf("first alert = %+v, want high/50%%", result.Alerts[0])
	}
	if result.Alerts[1].Urgency != "medium" || result.Alerts[1].DiscountPercent != 30 {
		t.Errorf("second alert = %+v, want medium/30%%", result.Alerts[1])
	}
}

func TestCheckExpirationFilters(t *testing.T) {
	repo := newFakeRepo(
		item("INV001", "期限1h", "ホットスナック", 5, 5, 10, 1),
		item("INV002", "期限3h", "ホットスナック", 5, 5, 10, 3),
		item("INV003", "期限12h", "おにぎり", 5, 5, 10, 12),
	)
	svc := newTestService(repo)

	threshold := 4.0
	result, err := svc.CheckExpiration(context.Background(), CheckExpirationParams{HoursThreshold: &threshold})
	if err != nil {
		t.Fatalf("CheckExpiration: %v", err)
	}
	if len(result.Alerts) != 2 {
		t.Fatalf("alerts = %d, want 2 within threshold", len(result.Alerts))
	}

	result, err = svc.CheckExpiration(context.Background(), CheckExpirationParams{Urgency: "high"})
	if err != nil {
		t.Fatalf("CheckExpiration: %v", err)
	}
	if len(result.Alerts) != 1 || result.Alerts[0].ItemID != "INV001" {
		t.Fatalf("urgency filter kept %d alerts, want INV001 only", len(result.Alerts))
	}
}

func TestAddStockExistingItem(t *testing.T) {
	repo := newFakeRepo(item("INV001", "からあげクン", "ホットスナック", 8, 5, 10, 3))
	svc := newTestService(repo)

	result, err := svc.AddStock(context.Background(), AddStockParams{ItemID: "INV001", Quantity: 12})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if result.PreviousQuantity != 8 || result.NewQuantity != 20 {
		t.Errorf("quantities = %d -> %d, want 8 -> 20", result.PreviousQuantity, result.NewQuantity)
	}
	if len(repo.movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(repo.movements))
	}
	m := repo.movements[0]
	if m.MovementType != domain.MovementIn || m.Reason != "入荷" {
		t.Errorf("movement = %+v, want in/入荷", m)
	}
	if !strings.HasPrefix(m.MovementID, "MOV") || len(m.MovementID) != 11 {
		t.Errorf("movement id %q not MOV + 8 chars", m.MovementID)
	}
	if m.MovementID != strings.ToUpper(m.MovementID) {
		t.Errorf("movement id %q not uppercase", m.MovementID)
	}
}

func TestAddStockNewItem(t *testing.T) {
	repo := newFakeRepo(item("INV007", "既存", "おにぎり", 5, 5, 10, 12))
	svc := newTestService(repo)

	result, err := svc.AddStock(context.Background(), AddStockParams{
		ItemName: "新商品まん",
		Category: "中華まん",
		Quantity: 10,
	})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if result.ItemID != "INV008" {
		t.Errorf("ItemID = %q, want INV008 (max existing + 1)", result.ItemID)
	}
	created := repo.items["INV008"]
	if created.MinStockLevel != 5 || created.ReorderPoint != 10 {
		t.Errorf("defaults = min %d reorder %d, want 5/10", created.MinStockLevel, created.ReorderPoint)
	}
	// Unknown category falls back to the 8 hour default shelf life.
	if got := created.ExpiresAt; !got.Equal(testNow.Add(8 * time.Hour)) {
		t.Errorf("ExpiresAt = %v, want now+8h", got)
	}
	if repo.movements[0].Reason != "新規入荷" {
		t.Errorf("reason = %q, want 新規入荷", repo.movements[0].Reason)
	}
}

func TestAddStockValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.AddStock(context.Background(), AddStockParams{ItemName: "x", Category: "y", Quantity: 0})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("kind = %v, want validation", domain.KindOf(err))
	}
	if err.Error() != "quantity は1以上の数値を指定してください" {
		t.Errorf("message = %q", err.Error())
	}

	_, err = svc.AddStock(context.Background(), AddStockParams{Category: "y", Quantity: 1})
	if err == nil || err.Error() != "新規商品には item_name が必要です" {
		t.Errorf("missing name error = %v", err)
	}

	_, err = svc.AddStock(context.Background(), AddStockParams{ItemName: "x", Quantity: 1})
	if err == nil || err.Error() != "新規商品には category が必要です" {
		t.Errorf("missing category error = %v", err)
	}
}

func TestRemoveStock(t *testing.T) {
	repo := newFakeRepo(item("INV001", "からあげクン", "ホットスナック", 5, 5, 10, 3))
	svc := newTestService(repo)

	result, err := svc.RemoveStock(context.Background(), RemoveStockParams{ItemID: "INV001", Quantity: 3})
	if err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	if result.NewQuantity != 2 || result.Reason != "販売" {
		t.Errorf("result = %+v, want quantity 2 reason 販売", result)
	}
	if repo.movements[0].MovementType != domain.MovementOut {
		t.Errorf("movement type = %q, want out", repo.movements[0].MovementType)
	}
}

func TestRemoveStockInsufficient(t *testing.T) {
	repo := newFakeRepo(item("INV001", "からあげクン", "ホットスナック", 5, 5, 10, 3))
	svc := newTestService(repo)

	_, err := svc.RemoveStock(context.Background(), RemoveStockParams{ItemID: "INV001", Quantity: 10})
	if domain.KindOf(err) != domain.KindInsufficientStock {
		t.Fatalf("kind = %v, want insufficient stock", domain.KindOf(err))
	}
	if err.Error() != "在庫不足です。現在の在庫: 5、出庫要求: 10" {
		t.Errorf("message = %q", err.Error())
	}
	// The failed removal must leave no trace.
	if repo.items["INV001"].Quantity != 5 {
		t.Errorf("quantity changed to %d after failed removal", repo.items["INV001"].Quantity)
	}
	if len(repo.movements) != 0 {
		t.Errorf("movements written on failure: %d", len(repo.movements))
	}
}

func TestRemoveStockNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.RemoveStock(context.Background(), RemoveStockParams{ItemID: "INV999", Quantity: 1})
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want not found", domain.KindOf(err))
	}
	if err.Error() != "商品が見つかりません: INV999" {
		t.Errorf("message = %q", err.Error())
	}

	_, err = svc.RemoveStock(context.Background(), RemoveStockParams{Quantity: 1})
	if err == nil || err.Error() != "item_id を指定してください" {
		t.Errorf("missing id error = %v", err)
	}
}

func TestRemoveStockExpiredClassification(t *testing.T) {
	for _, reason := range []string{"賞味期限切れのため廃棄", "期限超過"} {
		repo := newFakeRepo(item("INV001", "肉まん", "中華まん", 4, 4, 8, 1))
		svc := newTestService(repo)

		_, err := svc.RemoveStock(context.Background(), RemoveStockParams{ItemID: "INV001", Quantity: 2, Reason: reason})
		if err != nil {
			t.Fatalf("RemoveStock(%q): %v", reason, err)
		}
		if repo.movements[0].MovementType != domain.MovementExpired {
			t.Errorf("reason %q classified as %q, want expired", reason, repo.movements[0].MovementType)
		}
	}
}

func TestLowStockAlertLevels(t *testing.T) {
	repo := newFakeRepo(
		item("INV001", "危険水準", "ホットスナック", 2, 5, 10, 3),
		item("INV002", "警告水準", "ホットスナック", 7, 5, 10, 3),
		item("INV003", "十分", "ホットスナック", 20, 5, 10, 3),
	)
	svc := newTestService(repo)

	result, err := svc.LowStockAlert(context.Background(), "")
	if err != nil {
		t.Fatalf("LowStockAlert: %v", err)
	}
	if result.Summary.CriticalCount != 1 || result.Summary.WarningCount != 1 {
		t.Fatalf("summary = %+v, want 1 critical 1 warning", result.Summary)
	}
	// Largest shortage first.
	if result.Alerts[0].ItemID != "INV001" || result.Alerts[0].AlertLevel != domain.AlertCritical {
		t.Errorf("first alert = %+v", result.Alerts[0])
	}
	if got := result.Alerts[0].RecommendedOrderQuantity; got != 13 {
		t.Errorf("recommended = %d, want reorder-qty+5 = 13", got)
	}
}

func TestOrderRecommendationExpiryBranches(t *testing.T) {
	repo := newFakeRepo(
		item("INV001", "間近", "ホットスナック", 2, 5, 10, 3.9),
		item("INV002", "近い", "ホットスナック", 2, 5, 10, 7.9),
		item("INV003", "通常", "おにぎり", 2, 5, 10, 8.0),
	)
	svc := newTestService(repo)

	result, err := svc.OrderRecommendation(context.Background())
	if err != nil {
		t.Fatalf("OrderRecommendation: %v", err)
	}

	byID := map[string]domain.ReorderItem{}
	for _, rec := range result.Recommendations {
		byID[rec.ItemID] = rec
	}

	// base order = 10 + 5 - 2 = 13
	if rec := byID["INV001"]; rec.RecommendedOrderQuantity != 0 || rec.Note != "期限切れ間近のため発注見送り" {
		t.Errorf("INV001 = %+v", rec)
	}
	if rec := byID["INV002"]; rec.RecommendedOrderQuantity != 6 || rec.Note != "期限が近いため少量発注推奨" {
		t.Errorf("INV002 = %+v, want 13/2=6", rec)
	}
	if rec := byID["INV003"]; rec.RecommendedOrderQuantity != 13 || rec.Note != "通常発注" {
		t.Errorf("INV003 = %+v", rec)
	}

	if result.Summary.TotalQuantityToOrder != 19 {
		t.Errorf("total = %d, want 19", result.Summary.TotalQuantityToOrder)
	}
	if result.CategoryOrders["ホットスナック"] != 6 || result.CategoryOrders["おにぎり"] != 13 {
		t.Errorf("category orders = %+v", result.CategoryOrders)
	}
}

func TestMovementHistorySummary(t *testing.T) {
	repo := newFakeRepo(item("INV001", "からあげクン", "ホットスナック", 8, 5, 10, 3))
	repo.movements = []domain.StockMovement{
		{MovementID: "MOV00000001", ItemID: "INV001", MovementType: domain.MovementIn, Quantity: 20, CreatedAt: testNow.Add(-26 * time.Hour)},
		{MovementID: "MOV00000002", ItemID: "INV001", MovementType: domain.MovementOut, Quantity: 12, CreatedAt: testNow.Add(-20 * time.Hour)},
		{MovementID: "MOV00000003", ItemID: "INV001", MovementType: domain.MovementExpired, Quantity: 3, CreatedAt: testNow.Add(-2 * time.Hour)},
		{MovementID: "MOV00000004", ItemID: "INV001", MovementType: domain.MovementIn, Quantity: 5, CreatedAt: testNow.Add(-10 * 24 * time.Hour)},
	}
	svc := newTestService(repo)

	result, err := svc.MovementHistory(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("MovementHistory: %v", err)
	}
	if result.Summary.TotalIn != 20 || result.Summary.TotalOut != 12 || result.Summary.TotalExpired != 3 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if result.Summary.TotalMovements != 3 {
		t.Errorf("TotalMovements = %d, want 3 (older row excluded)", result.Summary.TotalMovements)
	}
	// Newest first.
	if result.Movements[0].MovementID != "MOV00000003" {
		t.Errorf("first movement = %s, want newest", result.Movements[0].MovementID)
	}
}

func TestSnapshotAnnotatesRemainingHours(t *testing.T) {
	repo := newFakeRepo(
		item("INV001", "からあげクン", "ホットスナック", 8, 5, 10, 2.5),
		item("INV002", "おにぎり 鮭", "おにぎり", 15, 8, 15, 12),
		item("INV003", "売切", "おにぎり", 0, 5, 10, 12),
	)
	svc := newTestService(repo)

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapshot["おにぎり"]) != 2 {
		t.Errorf("おにぎり group = %d items, want 2 (zero quantity included)", len(snapshot["おにぎり"]))
	}
	hot := snapshot["ホットスナック"]
	if len(hot) != 1 || hot[0].RemainingHours != 2.5 {
		t.Errorf("hot snack snapshot = %+v, want remaining 2.5h", hot)
	}
}

func TestUrgencyMonotonic(t *testing.T) {
	p := testPolicy()
	rank := map[string]int{"high": 2, "medium": 1, "low": 0}
	prev := rank[p.Urgency(100)]
	for h := 100.0; h >= -5; h -= 0.5 {
		cur := rank[p.Urgency(h)]
		if cur < prev {
			t.Fatalf("urgency dropped from %d to %d at %.1fh", prev, cur, h)
		}
		prev = cur
	}
	if p.Urgency(2) != "high" || p.Urgency(2.1) != "medium" || p.Urgency(4) != "medium" || p.Urgency(4.1) != "low" {
		t.Errorf("boundary urgencies wrong")
	}
}
