// internal/domain/models.go
package domain

import "time"

// InventoryItem is a stocked product. Category is the join key between
// inventory and the demand forecast.
type InventoryItem struct {
	ItemID         string    `json:"item_id" db:"item_id"`
	ItemName       string    `json:"item_name" db:"item_name"`
	Category       string    `json:"category" db:"category"`
	Quantity       int       `json:"quantity" db:"quantity"`
	MinStockLevel  int       `json:"min_stock_level" db:"min_stock_level"`
	ReorderPoint   int       `json:"reorder_point" db:"reorder_point"`
	StockedAt      time.Time `json:"stocked_at" db:"-"`
	ExpiresAt      time.Time `json:"expires_at" db:"-"`
	RemainingHours float64   `json:"remaining_hours" db:"-"`
}

// StockMovement is one row of the append-only in/out/expired ledger.
type StockMovement struct {
	MovementID   string    `json:"movement_id" db:"movement_id"`
	ItemID       string    `json:"item_id" db:"item_id"`
	ItemName     string    `json:"item_name" db:"item_name"`
	MovementType string    `json:"movement_type" db:"movement_type"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Reason       string    `json:"reason" db:"reason"`
	CreatedAt    time.Time `json:"created_at" db:"-"`
}

// Movement types.
const (
	MovementIn      = "in"
	MovementOut     = "out"
	MovementExpired = "expired"
)

// CategorySummary aggregates items of one category in a list result.
type CategorySummary struct {
	Count         int `json:"count"`
	TotalQuantity int `json:"total_quantity"`
}

// ListResult is the payload of the inventory list operation.
type ListResult struct {
	CurrentTime     time.Time                  `json:"current_time"`
	Items           []InventoryItem            `json:"items"`
	TotalItems      int                        `json:"total_items"`
	CategorySummary map[string]CategorySummary `json:"category_summary"`
}

// ExpirationAlert is one near-expiry item with its markdown policy applied.
type ExpirationAlert struct {
	ItemID          string    `json:"item_id"`
	ItemName        string    `json:"item_name"`
	Category        string    `json:"category"`
	ExpiresAt       time.Time `json:"expires_at"`
	RemainingHours  float64   `json:"remaining_hours"`
	Quantity        int       `json:"quantity"`
	Action          string    `json:"action"`
	DiscountPercent int       `json:"discount_percent"`
	Urgency         string    `json:"urgency"`
}

// ExpirationSummary counts alerts per urgency bucket.
type ExpirationSummary struct {
	HighUrgency   int `json:"high_urgency"`
	MediumUrgency int `json:"medium_urgency"`
	LowUrgency    int `json:"low_urgency"`
	Total         int `json:"total"`
}

// ExpirationResult is the payload of the expiration check operation.
type ExpirationResult struct {
	CurrentTime time.Time         `json:"current_time"`
	Alerts      []ExpirationAlert `json:"alerts"`
	Summary     ExpirationSummary `json:"summary"`
}

// StockChangeResult reports a completed add/remove mutation.
type StockChangeResult struct {
	Success          bool      `json:"success"`
	Action           string    `json:"action"`
	ItemID           string    `json:"item_id"`
	ItemName         string    `json:"item_name"`
	Category         string    `json:"category,omitempty"`
	PreviousQuantity int       `json:"previous_quantity,omitempty"`
	AddedQuantity    int       `json:"added_quantity,omitempty"`
	RemovedQuantity  int       `json:"removed_quantity,omitempty"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	ExpiresAt        time.Time `json:"expires_at,omitempty"`
	MovementID       string    `json:"movement_id"`
	Timestamp        time.Time `json:"timestamp"`
}

// LowStockAlert is one item at or below its reorder point.
type LowStockAlert struct {
	ItemID                   string `json:"item_id"`
	ItemName                 string `json:"item_name"`
	Category                 string `json:"category"`
	CurrentQuantity          int    `json:"current_quantity"`
	MinStockLevel            int    `json:"min_stock_level"`
	ReorderPoint             int    `json:"reorder_point"`
	Shortage                 int    `json:"shortage"`
	RecommendedOrderQuantity int    `json:"recommended_order_quantity"`
	AlertLevel               string `json:"alert_level"`
}

// Alert levels for low-stock classification.
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
)

// LowStockResult is the payload of the low-stock alert operation.
type LowStockResult struct {
	CurrentTime time.Time       `json:"current_time"`
	Alerts      []LowStockAlert `json:"alerts"`
	Summary     LowStockSummary `json:"summary"`
}

type LowStockSummary struct {
	CriticalCount int `json:"critical_count"`
	WarningCount  int `json:"warning_count"`
	Total         int `json:"total"`
}

// ReorderItem is one entry of the expiry-aware reorder list.
type ReorderItem struct {
	ItemID                    string  `json:"item_id"`
	ItemName                  string  `json:"item_name"`
	Category                  string  `json:"category"`
	CurrentQuantity           int     `json:"current_quantity"`
	ReorderPoint              int     `json:"reorder_point"`
	Shortage                  int     `json:"shortage"`
	RecommendedOrderQuantity  int     `json:"recommended_order_quantity"`
	RemainingHoursUntilExpiry float64 `json:"remaining_hours_until_expiry"`
	Note                      string  `json:"note"`
}

// ReorderResult is the payload of the standalone order recommendation.
type ReorderResult struct {
	CurrentTime     time.Time      `json:"current_time"`
	Recommendations []ReorderItem  `json:"recommendations"`
	CategoryOrders  map[string]int `json:"category_orders"`
	Summary         ReorderSummary `json:"summary"`
}

type ReorderSummary struct {
	TotalItems           int `json:"total_items"`
	TotalQuantityToOrder int `json:"total_quantity_to_order"`
}

// MovementHistoryResult is the payload of the movement history operation.
type MovementHistoryResult struct {
	CurrentTime time.Time       `json:"current_time"`
	PeriodDays  int             `json:"period_days"`
	Movements   []StockMovement `json:"movements"`
	Summary     MovementSummary `json:"summary"`
}

type MovementSummary struct {
	TotalIn        int `json:"total_in"`
	TotalOut       int `json:"total_out"`
	TotalExpired   int `json:"total_expired"`
	TotalMovements int `json:"total_movements"`
}

// DemandPrediction is the forecast for one category. Item carries the
// category name (the model is trained on the category taxonomy, not SKUs).
type DemandPrediction struct {
	Item            string  `json:"item"`
	PredictedDemand int     `json:"predicted_demand"`
	BaseDemand      int     `json:"base_demand"`
	ChangePercent   float64 `json:"change_percent"`
}

// OrderRecommendation is one item-level output of the optimizer.
type OrderRecommendation struct {
	ItemID                    string  `json:"item_id"`
	ItemName                  string  `json:"item_name"`
	Category                  string  `json:"category"`
	CurrentQuantity           int     `json:"current_quantity"`
	ReorderPoint              int     `json:"reorder_point"`
	AdjustedTarget            int     `json:"adjusted_target"`
	DemandRatio               float64 `json:"demand_ratio"`
	RecommendedOrderQuantity  int     `json:"recommended_order_quantity"`
	RemainingHoursUntilExpiry float64 `json:"remaining_hours_until_expiry"`
	Note                      string  `json:"note"`
}

// OptimizeConditions echoes the normalized optimizer inputs.
type OptimizeConditions struct {
	Weather         string  `json:"weather"`
	Temperature     float64 `json:"temperature"`
	Humidity        float64 `json:"humidity"`
	SafetyStockDays float64 `json:"safety_stock_days"`
}

// OptimizeCategorySummary rolls recommendations up per category.
type OptimizeCategorySummary struct {
	OrderQuantity int     `json:"order_quantity"`
	DemandRatio   float64 `json:"demand_ratio"`
}

// OptimizeSummary totals the optimizer output.
type OptimizeSummary struct {
	TotalItems         int `json:"total_items"`
	ItemsToOrder       int `json:"items_to_order"`
	TotalOrderQuantity int `json:"total_order_quantity"`
}

// OptimizeResult is the full payload of one optimizer run.
type OptimizeResult struct {
	CurrentTime     time.Time                          `json:"current_time"`
	Conditions      OptimizeConditions                 `json:"conditions"`
	DemandForecast  []DemandPrediction                 `json:"demand_forecast"`
	Recommendations []OrderRecommendation              `json:"recommendations"`
	CategorySummary map[string]OptimizeCategorySummary `json:"category_summary"`
	Summary         OptimizeSummary                    `json:"summary"`
	WeatherWarning  string                             `json:"weather_warning,omitempty"`
}
