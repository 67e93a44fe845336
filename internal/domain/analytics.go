// internal/domain/analytics.go
package domain

// SaleRecord is one line of the synthetic sales history.
type SaleRecord struct {
	SaleID      string  `json:"sale_id" db:"sale_id"`
	SaleDate    string  `json:"sale_date" db:"sale_date"`
	SaleHour    int     `json:"sale_hour" db:"sale_hour"`
	ItemID      string  `json:"item_id" db:"item_id"`
	ItemName    string  `json:"item_name" db:"item_name"`
	Category    string  `json:"category" db:"category"`
	Quantity    int     `json:"quantity" db:"quantity"`
	UnitPrice   int     `json:"unit_price" db:"unit_price"`
	TotalAmount int     `json:"total_amount" db:"total_amount"`
	Weather     string  `json:"weather" db:"weather"`
	Temperature float64 `json:"temperature" db:"temperature"`
	DayOfWeek   int     `json:"day_of_week" db:"day_of_week"`
}

// DailySummary is one day of aggregated sales.
type DailySummary struct {
	Date          string  `json:"date" db:"date"`
	TotalSales    int     `json:"total_sales" db:"total_sales"`
	TotalItems    int     `json:"total_items" db:"total_items"`
	Weather       string  `json:"weather" db:"weather"`
	Temperature   float64 `json:"temperature" db:"temperature"`
	CustomerCount int     `json:"customer_count" db:"customer_count"`
}

// CategorySales ranks one category by sold quantity and amount.
type CategorySales struct {
	Category    string `json:"category" db:"category"`
	Quantity    int    `json:"quantity" db:"quantity"`
	TotalAmount int    `json:"total_amount" db:"total_amount"`
}

// HourlySales is the aggregate sales pattern for one hour of day.
type HourlySales struct {
	Hour        int `json:"hour" db:"sale_hour"`
	Quantity    int `json:"quantity" db:"quantity"`
	TotalAmount int `json:"total_amount" db:"total_amount"`
}
