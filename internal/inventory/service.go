// internal/inventory/service.go
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/repository"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

const (
	defaultMinStockLevel = 5
	defaultReorderPoint  = 10
	// orderBuffer pads every reorder suggestion above the bare shortage.
	orderBuffer = 5
)

// Service implements the inventory operations on top of the backing table.
// All state lives in the repository; the service itself is stateless apart
// from the injected policy and clock.
type Service struct {
	repo   repository.InventoryRepository
	policy Policy
	now    func() time.Time
}

func NewService(repo repository.InventoryRepository, policy Policy) *Service {
	return &Service{repo: repo, policy: policy, now: timeutil.NowJST}
}

// WithClock overrides the service clock. Test use.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func newMovementID() string {
	return "MOV" + strings.ToUpper(uuid.New().String()[:8])
}

func annotate(item domain.InventoryItem, now time.Time) domain.InventoryItem {
	item.RemainingHours = timeutil.Round1(timeutil.HoursUntil(item.ExpiresAt, now))
	return item
}

// List returns in-stock items with remaining shelf life and a per-category
// roll-up. An unmatched category filter yields an empty list, not an error.
func (s *Service) List(ctx context.Context, category string) (*domain.ListResult, error) {
	now := s.now()
	items, err := s.repo.ListInStock(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	summary := map[string]domain.CategorySummary{}
	for i, item := range items {
		items[i] = annotate(item, now)
		cs := summary[item.Category]
		cs.Count++
		cs.TotalQuantity += item.Quantity
		summary[item.Category] = cs
	}

	return &domain.ListResult{
		CurrentTime:     now,
		Items:           items,
		TotalItems:      len(items),
		CategorySummary: summary,
	}, nil
}

// CheckExpirationParams filters the expiration check. HoursThreshold drops
// alerts whose remaining hours exceed it; Urgency keeps one bucket only.
type CheckExpirationParams struct {
	Category       string
	Urgency        string
	HoursThreshold *float64
}

func (s *Service) CheckExpiration(ctx context.Context, params CheckExpirationParams) (*domain.ExpirationResult, error) {
	now := s.now()
	items, err := s.repo.ListByExpiry(ctx, strings.TrimSpace(params.Category))
	if err != nil {
		return nil, err
	}

	urgencyFilter := strings.ToLower(strings.TrimSpace(params.Urgency))

	alerts := []domain.ExpirationAlert{}
	var summary domain.ExpirationSummary

	for _, item := range items {
		remaining := timeutil.Round1(timeutil.HoursUntil(item.ExpiresAt, now))
		urgency := s.policy.Urgency(remaining)

		if params.HoursThreshold != nil && remaining > *params.HoursThreshold {
			continue
		}
		if urgencyFilter != "" && urgency != urgencyFilter {
			continue
		}

		switch urgency {
		case "high":
			summary.HighUrgency++
		case "medium":
			summary.MediumUrgency++
		default:
			summary.LowUrgency++
		}

		rule := s.policy.MarkdownRules[urgency]
		alerts = append(alerts, domain.ExpirationAlert{
			ItemID:          item.ItemID,
			ItemName:        item.ItemName,
			Category:        item.Category,
			ExpiresAt:       item.ExpiresAt,
			RemainingHours:  remaining,
			Quantity:        item.Quantity,
			Action:          rule.Action,
			DiscountPercent: rule.Discount,
			Urgency:         urgency,
		})
	}

	summary.Total = len(alerts)
	return &domain.ExpirationResult{CurrentTime: now, Alerts: alerts, Summary: summary}, nil
}

// AddStockParams describes an incoming delivery. ItemName and Category are
// required only when ItemID does not resolve to an existing item.
type AddStockParams struct {
	ItemID         string
	ItemName       string
	Category       string
	Quantity       int
	ExpiresInHours *float64
}

func (s *Service) AddStock(ctx context.Context, params AddStockParams) (*domain.StockChangeResult, error) {
	if params.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity は1以上の数値を指定してください")
	}

	now := s.now()
	itemID := strings.TrimSpace(params.ItemID)

	var existing *domain.InventoryItem
	if itemID != "" {
		var err error
		existing, err = s.repo.Get(ctx, itemID)
		if err != nil {
			return nil, err
		}
	}

	if existing != nil {
		newQty := existing.Quantity + params.Quantity
		movement := domain.StockMovement{
			MovementID:   newMovementID(),
			ItemID:       existing.ItemID,
			ItemName:     existing.ItemName,
			MovementType: domain.MovementIn,
			Quantity:     params.Quantity,
			Reason:       "入荷",
			CreatedAt:    now,
		}
		if err := s.repo.AdjustQuantity(ctx, existing.ItemID, newQty, movement); err != nil {
			return nil, err
		}
		return &domain.StockChangeResult{
			Success:          true,
			Action:           "add_stock",
			ItemID:           existing.ItemID,
			ItemName:         existing.ItemName,
			PreviousQuantity: existing.Quantity,
			AddedQuantity:    params.Quantity,
			NewQuantity:      newQty,
			MovementID:       movement.MovementID,
			Timestamp:        now,
		}, nil
	}

	itemName := strings.TrimSpace(params.ItemName)
	category := strings.TrimSpace(params.Category)
	if itemName == "" {
		return nil, domain.NewValidationError("新規商品には item_name が必要です")
	}
	if category == "" {
		return nil, domain.NewValidationError("新規商品には category が必要です")
	}

	expiresIn := s.policy.DefaultExpiryHours(category)
	if params.ExpiresInHours != nil {
		expiresIn = *params.ExpiresInHours
	}

	if itemID == "" {
		seq, err := s.repo.NextItemSeq(ctx)
		if err != nil {
			return nil, err
		}
		itemID = fmt.Sprintf("INV%03d", seq)
	}

	item := domain.InventoryItem{
		ItemID:        itemID,
		ItemName:      itemName,
		Category:      category,
		Quantity:      params.Quantity,
		MinStockLevel: defaultMinStockLevel,
		ReorderPoint:  defaultReorderPoint,
		StockedAt:     now,
		ExpiresAt:     now.Add(time.Duration(expiresIn * float64(time.Hour))),
	}
	movement := domain.StockMovement{
		MovementID:   newMovementID(),
		ItemID:       itemID,
		ItemName:     itemName,
		MovementType: domain.MovementIn,
		Quantity:     params.Quantity,
		Reason:       "新規入荷",
		CreatedAt:    now,
	}
	if err := s.repo.CreateItem(ctx, item, movement); err != nil {
		return nil, err
	}

	return &domain.StockChangeResult{
		Success:       true,
		Action:        "add_stock",
		ItemID:        itemID,
		ItemName:      itemName,
		Category:      category,
		AddedQuantity: params.Quantity,
		NewQuantity:   params.Quantity,
		ExpiresAt:     item.ExpiresAt,
		MovementID:    movement.MovementID,
		Timestamp:     now,
	}, nil
}

// RemoveStockParams describes a sale, disposal, or other outflow.
type RemoveStockParams struct {
	ItemID   string
	Quantity int
	Reason   string
}

func (s *Service) RemoveStock(ctx context.Context, params RemoveStockParams) (*domain.StockChangeResult, error) {
	itemID := strings.TrimSpace(params.ItemID)
	if itemID == "" {
		return nil, domain.NewValidationError("item_id を指定してください")
	}
	if params.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity は1以上の数値を指定してください")
	}

	reason := strings.TrimSpace(params.Reason)
	if reason == "" {
		reason = "販売"
	}

	now := s.now()
	existing, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFoundError("商品が見つかりません: %s", itemID)
	}
	if params.Quantity > existing.Quantity {
		return nil, domain.NewInsufficientStockError(existing.Quantity, params.Quantity)
	}

	movementType := domain.MovementOut
	if strings.Contains(reason, "廃棄") || strings.Contains(reason, "期限") {
		movementType = domain.MovementExpired
	}

	newQty := existing.Quantity - params.Quantity
	movement := domain.StockMovement{
		MovementID:   newMovementID(),
		ItemID:       existing.ItemID,
		ItemName:     existing.ItemName,
		MovementType: movementType,
		Quantity:     params.Quantity,
		Reason:       reason,
		CreatedAt:    now,
	}
	if err := s.repo.AdjustQuantity(ctx, existing.ItemID, newQty, movement); err != nil {
		return nil, err
	}

	return &domain.StockChangeResult{
		Success:          true,
		Action:           "remove_stock",
		ItemID:           existing.ItemID,
		ItemName:         existing.ItemName,
		PreviousQuantity: existing.Quantity,
		RemovedQuantity:  params.Quantity,
		NewQuantity:      newQty,
		Reason:           reason,
		MovementID:       movement.MovementID,
		Timestamp:        now,
	}, nil
}

// LowStockAlert classifies every item at or below its reorder point:
// critical at or below the minimum stock level, warning otherwise.
func (s *Service) LowStockAlert(ctx context.Context, category string) (*domain.LowStockResult, error) {
	now := s.now()
	items, err := s.repo.ListBelowReorder(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.LowStockAlert, 0, len(items))
	var summary domain.LowStockSummary
	for _, item := range items {
		level := domain.AlertWarning
		if item.Quantity <= item.MinStockLevel {
			level = domain.AlertCritical
			summary.CriticalCount++
		} else {
			summary.WarningCount++
		}

		recommended := item.ReorderPoint - item.Quantity + orderBuffer
		if recommended < 0 {
			recommended = 0
		}

		alerts = append(alerts, domain.LowStockAlert{
			ItemID:                   item.ItemID,
			ItemName:                 item.ItemName,
			Category:                 item.Category,
			CurrentQuantity:          item.Quantity,
			MinStockLevel:            item.MinStockLevel,
			ReorderPoint:             item.ReorderPoint,
			Shortage:                 item.ReorderPoint - item.Quantity,
			RecommendedOrderQuantity: recommended,
			AlertLevel:               level,
		})
	}

	summary.Total = len(alerts)
	return &domain.LowStockResult{CurrentTime: now, Alerts: alerts, Summary: summary}, nil
}

// OrderRecommendation builds the expiry-aware reorder list for every item
// at or below its reorder point. Items about to expire are withheld; items
// near expiry get half the base order.
func (s *Service) OrderRecommendation(ctx context.Context) (*domain.ReorderResult, error) {
	now := s.now()
	items, err := s.repo.ListBelowReorder(ctx, "")
	if err != nil {
		return nil, err
	}

	recommendations := make([]domain.ReorderItem, 0, len(items))
	categoryOrders := map[string]int{}
	totalToOrder := 0

	for _, item := range items {
		remaining := timeutil.Round1(timeutil.HoursUntil(item.ExpiresAt, now))
		baseOrder := item.ReorderPoint + orderBuffer - item.Quantity

		var orderQty int
		var note string
		switch {
		case remaining < 4:
			orderQty = 0
			note = "期限切れ間近のため発注見送り"
		case remaining < 8:
			orderQty = maxInt(0, baseOrder/2)
			note = "期限が近いため少量発注推奨"
		default:
			orderQty = maxInt(0, baseOrder)
			note = "通常発注"
		}

		totalToOrder += orderQty
		categoryOrders[item.Category] += orderQty

		recommendations = append(recommendations, domain.ReorderItem{
			ItemID:                    item.ItemID,
			ItemName:                  item.ItemName,
			Category:                  item.Category,
			CurrentQuantity:           item.Quantity,
			ReorderPoint:              item.ReorderPoint,
			Shortage:                  item.ReorderPoint - item.Quantity,
			RecommendedOrderQuantity:  orderQty,
			RemainingHoursUntilExpiry: remaining,
			Note:                      note,
		})
	}

	return &domain.ReorderResult{
		CurrentTime:     now,
		Recommendations: recommendations,
		CategoryOrders:  categoryOrders,
		Summary: domain.ReorderSummary{
			TotalItems:           len(recommendations),
			TotalQuantityToOrder: totalToOrder,
		},
	}, nil
}

// MovementHistory returns the ledger for the trailing period, newest first.
func (s *Service) MovementHistory(ctx context.Context, days int, category string) (*domain.MovementHistoryResult, error) {
	if days <= 0 {
		days = 7
	}
	now := s.now()
	cutoff := now.AddDate(0, 0, -days)

	movements, err := s.repo.ListMovements(ctx, cutoff, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	var summary domain.MovementSummary
	for _, m := range movements {
		switch m.MovementType {
		case domain.MovementIn:
			summary.TotalIn += m.Quantity
		case domain.MovementOut:
			summary.TotalOut += m.Quantity
		case domain.MovementExpired:
			summary.TotalExpired += m.Quantity
		}
	}
	summary.TotalMovements = len(movements)

	return &domain.MovementHistoryResult{
		CurrentTime: now,
		PeriodDays:  days,
		Movements:   movements,
		Summary:     summary,
	}, nil
}

// Snapshot returns every item grouped by category with remaining hours
// annotated, for the optimizer's inventory join.
func (s *Service) Snapshot(ctx context.Context) (map[string][]domain.InventoryItem, error) {
	now := s.now()
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := map[string][]domain.InventoryItem{}
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], annotate(item, now))
	}
	return byCategory, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
