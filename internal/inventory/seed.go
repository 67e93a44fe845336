// internal/inventory/seed.go
package inventory

import (
	"time"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

// SeedItem is one sample inventory row, expressed relative to process
// start so seeded expiries are always in a meaningful window.
type SeedItem struct {
	ItemID          string  `json:"item_id"`
	ItemName        string  `json:"item_name"`
	Category        string  `json:"category"`
	Quantity        int     `json:"quantity"`
	MinStockLevel   int     `json:"min_stock_level"`
	ReorderPoint    int     `json:"reorder_point"`
	StockedHoursAgo float64 `json:"stocked_hours_ago"`
	ExpiresInHours  float64 `json:"expires_in_hours"`
}

// SeedMovement is one sample ledger row, expressed relative to now.
type SeedMovement struct {
	MovementID   string  `json:"movement_id"`
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	MovementType string  `json:"movement_type"`
	Quantity     int     `json:"quantity"`
	Reason       string  `json:"reason"`
	HoursAgo     float64 `json:"hours_ago"`
}

// SeedData is the inventory seed file: sample data plus the policy tables.
type SeedData struct {
	MarkdownRules   map[string]MarkdownRule `json:"markdown_rules"`
	ExpirationHours map[string]float64      `json:"expiration_hours"`
	SampleInventory []SeedItem              `json:"sample_inventory"`
	SampleMovements []SeedMovement          `json:"sample_movements"`
}

// Policy extracts the typed policy tables from the seed file.
func (s *SeedData) Policy() Policy {
	return Policy{
		MarkdownRules:   s.MarkdownRules,
		ExpirationHours: s.ExpirationHours,
	}
}

// Materialize resolves the relative sample rows against now.
func (s *SeedData) Materialize(now time.Time) ([]domain.InventoryItem, []domain.StockMovement) {
	items := make([]domain.InventoryItem, 0, len(s.SampleInventory))
	for _, si := range s.SampleInventory {
		minLevel := si.MinStockLevel
		if minLevel == 0 {
			minLevel = defaultMinStockLevel
		}
		reorder := si.ReorderPoint
		if reorder == 0 {
			reorder = defaultReorderPoint
		}
		items = append(items, domain.InventoryItem{
			ItemID:        si.ItemID,
			ItemName:      si.ItemName,
			Category:      si.Category,
			Quantity:      si.Quantity,
			MinStockLevel: minLevel,
			ReorderPoint:  reorder,
			StockedAt:     now.Add(-time.Duration(si.StockedHoursAgo * float64(time.Hour))),
			ExpiresAt:     now.Add(time.Duration(si.ExpiresInHours * float64(time.Hour))),
		})
	}

	movements := make([]domain.StockMovement, 0, len(s.SampleMovements))
	for _, sm := range s.SampleMovements {
		movements = append(movements, domain.StockMovement{
			MovementID:   sm.MovementID,
			ItemID:       sm.ItemID,
			ItemName:     sm.ItemName,
			MovementType: sm.MovementType,
			Quantity:     sm.Quantity,
			Reason:       sm.Reason,
			CreatedAt:    now.Add(-time.Duration(sm.HoursAgo * float64(time.Hour))),
		})
	}

	return items, movements
}
