// internal/repository/sqlite/sales_repository.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/repository"
)

type SalesRepository struct {
	db *DB
}

var _ repository.SalesRepository = (*SalesRepository)(nil)

func NewSalesRepository(db *DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) DailySummaries(ctx context.Context, days int) ([]domain.DailySummary, error) {
	var rows []domain.DailySummary
	err := r.db.SelectContext(ctx, &rows,
		`SELECT date, total_sales, total_items, weather, temperature, customer_count
		 FROM daily_summary
		 ORDER BY date DESC
		 LIMIT ?`, days)
	if err != nil {
		return nil, fmt.Errorf("select daily summaries: %w", err)
	}
	return rows, nil
}

func (r *SalesRepository) CategoryRanking(ctx context.Context, days int) ([]domain.CategorySales, error) {
	var rows []domain.CategorySales
	err := r.db.SelectContext(ctx, &rows,
		`SELECT category, SUM(quantity) AS quantity, SUM(total_amount) AS total_amount
		 FROM sales
		 WHERE sale_date >= (SELECT MIN(date) FROM (
		     SELECT date FROM daily_summary ORDER BY date DESC LIMIT ?
		 ))
		 GROUP BY category
		 ORDER BY total_amount DESC, category`, days)
	if err != nil {
		return nil, fmt.Errorf("select category ranking: %w", err)
	}
	return rows, nil
}

func (r *SalesRepository) HourlyPattern(ctx context.Context) ([]domain.HourlySales, error) {
	var rows []domain.HourlySales
	err := r.db.SelectContext(ctx, &rows,
		`SELECT sale_hour, SUM(quantity) AS quantity, SUM(total_amount) AS total_amount
		 FROM sales
		 GROUP BY sale_hour
		 ORDER BY sale_hour`)
	if err != nil {
		return nil, fmt.Errorf("select hourly pattern: %w", err)
	}
	return rows, nil
}

func (r *SalesRepository) Query(ctx context.Context, query string) ([]map[string]any, error) {
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run analytics query: %w", err)
	}
	defer rows.Close()

	results := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan analytics row: %w", err)
		}
		// sqlite hands back []byte for TEXT expressions; make them JSON-friendly
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analytics rows: %w", err)
	}
	return results, nil
}

func (r *SalesRepository) Seed(ctx context.Context, sales []domain.SaleRecord, days []domain.DailySummary) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales`); err != nil {
			return fmt.Errorf("clear sales: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM daily_summary`); err != nil {
			return fmt.Errorf("clear daily_summary: %w", err)
		}
		for _, s := range sales {
			_, err := tx.NamedExecContext(ctx,
				`INSERT INTO sales (sale_id, sale_date, sale_hour, item_id, item_name, category,
				                    quantity, unit_price, total_amount, weather, temperature, day_of_week)
				 VALUES (:sale_id, :sale_date, :sale_hour, :item_id, :item_name, :category,
				         :quantity, :unit_price, :total_amount, :weather, :temperature, :day_of_week)`, s)
			if err != nil {
				return fmt.Errorf("seed sale %s: %w", s.SaleID, err)
			}
		}
		for _, d := range days {
			_, err := tx.NamedExecContext(ctx,
				`INSERT INTO daily_summary (date, total_sales, total_items, weather, temperature, customer_count)
				 VALUES (:date, :total_sales, :total_items, :weather, :temperature, :customer_count)`, d)
			if err != nil {
				return fmt.Errorf("seed daily summary %s: %w", d.Date, err)
			}
		}
		return nil
	})
}
