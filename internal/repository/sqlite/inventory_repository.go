// internal/repository/sqlite/inventory_repository.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/repository"
)

type InventoryRepository struct {
	db *DB
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

func NewInventoryRepository(db *DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Timestamps are stored as RFC3339 text with a fixed offset, so string
// comparison and chronological comparison agree.
type inventoryRow struct {
	ItemID        string `db:"item_id"`
	ItemName      string `db:"item_name"`
	Category      string `db:"category"`
	Quantity      int    `db:"quantity"`
	MinStockLevel int    `db:"min_stock_level"`
	ReorderPoint  int    `db:"reorder_point"`
	StockedAt     string `db:"stocked_at"`
	ExpiresAt     string `db:"expires_at"`
}

type movementRow struct {
	MovementID   string         `db:"movement_id"`
	ItemID       string         `db:"item_id"`
	ItemName     string         `db:"item_name"`
	MovementType string         `db:"movement_type"`
	Quantity     int            `db:"quantity"`
	Reason       sql.NullString `db:"reason"`
	CreatedAt    string         `db:"created_at"`
}

func (r inventoryRow) toDomain() (domain.InventoryItem, error) {
	stockedAt, err := time.Parse(time.RFC3339, r.StockedAt)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("parse stocked_at of %s: %w", r.ItemID, err)
	}
	expiresAt, err := time.Parse(time.RFC3339, r.ExpiresAt)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("parse expires_at of %s: %w", r.ItemID, err)
	}
	return domain.InventoryItem{
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		Category:      r.Category,
		Quantity:      r.Quantity,
		MinStockLevel: r.MinStockLevel,
		ReorderPoint:  r.ReorderPoint,
		StockedAt:     stockedAt,
		ExpiresAt:     expiresAt,
	}, nil
}

func (r movementRow) toDomain() (domain.StockMovement, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return domain.StockMovement{}, fmt.Errorf("parse created_at of %s: %w", r.MovementID, err)
	}
	return domain.StockMovement{
		MovementID:   r.MovementID,
		ItemID:       r.ItemID,
		ItemName:     r.ItemName,
		MovementType: r.MovementType,
		Quantity:     r.Quantity,
		Reason:       r.Reason.String,
		CreatedAt:    createdAt,
	}, nil
}

func (r *InventoryRepository) selectItems(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	var rows []inventoryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select inventory: %w", err)
	}

	items := make([]domain.InventoryItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *InventoryRepository) ListInStock(ctx context.Context, category string) ([]domain.InventoryItem, error) {
	query := `SELECT item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at
		FROM inventory WHERE quantity > 0`
	args := []any{}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY category, item_name"
	return r.selectItems(ctx, query, args...)
}

func (r *InventoryRepository) ListByExpiry(ctx context.Context, category string) ([]domain.InventoryItem, error) {
	query := `SELECT item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at
		FROM inventory WHERE quantity > 0`
	args := []any{}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY expires_at ASC"
	return r.selectItems(ctx, query, args...)
}

func (r *InventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at
		FROM inventory WHERE quantity >= 0 ORDER BY category, item_name`
	return r.selectItems(ctx, query)
}

func (r *InventoryRepository) ListBelowReorder(ctx context.Context, category string) ([]domain.InventoryItem, error) {
	query := `SELECT item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at
		FROM inventory WHERE quantity <= reorder_point`
	args := []any{}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY (reorder_point - quantity) DESC, category, item_name"
	return r.selectItems(ctx, query, args...)
}

func (r *InventoryRepository) Get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	var row inventoryRow
	err := r.db.GetContext(ctx, &row,
		`SELECT item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at
		 FROM inventory WHERE item_id = ?`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item %s: %w", itemID, err)
	}
	item, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) NextItemSeq(ctx context.Context) (int, error) {
	var maxSeq sql.NullInt64
	err := r.db.GetContext(ctx, &maxSeq,
		`SELECT MAX(CAST(SUBSTR(item_id, 4) AS INTEGER)) FROM inventory`)
	if err != nil {
		return 0, fmt.Errorf("max item seq: %w", err)
	}
	return int(maxSeq.Int64) + 1, nil
}

func (r *InventoryRepository) AdjustQuantity(ctx context.Context, itemID string, newQuantity int, movement domain.StockMovement) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE inventory SET quantity = ? WHERE item_id = ?`, newQuantity, itemID)
		if err != nil {
			return fmt.Errorf("update quantity of %s: %w", itemID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("update quantity: item %s not found", itemID)
		}
		return insertMovement(ctx, tx, movement)
	})
}

func (r *InventoryRepository) CreateItem(ctx context.Context, item domain.InventoryItem, movement domain.StockMovement) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ItemID, item.ItemName, item.Category, item.Quantity,
			item.MinStockLevel, item.ReorderPoint,
			item.StockedAt.Format(time.RFC3339), item.ExpiresAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert inventory item %s: %w", item.ItemID, err)
		}
		return insertMovement(ctx, tx, movement)
	})
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, m domain.StockMovement) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO stock_movements (movement_id, item_id, item_name, movement_type, quantity, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.MovementID, m.ItemID, m.ItemName, m.MovementType, m.Quantity, m.Reason,
		m.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert movement %s: %w", m.MovementID, err)
	}
	return nil
}

func (r *InventoryRepository) ListMovements(ctx context.Context, since time.Time, category string) ([]domain.StockMovement, error) {
	query := `SELECT m.movement_id, m.item_id, m.item_name, m.movement_type, m.quantity, m.reason, m.created_at
		FROM stock_movements m`
	args := []any{}
	if category != "" {
		query += ` JOIN inventory i ON m.item_id = i.item_id
			WHERE m.created_at >= ? AND i.category = ?`
		args = append(args, since.Format(time.RFC3339), category)
	} else {
		query += ` WHERE m.created_at >= ?`
		args = append(args, since.Format(time.RFC3339))
	}
	query += " ORDER BY m.created_at DESC"

	var rows []movementRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	movements := make([]domain.StockMovement, 0, len(rows))
	for _, row := range rows {
		m, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func (r *InventoryRepository) Seed(ctx context.Context, items []domain.InventoryItem, movements []domain.StockMovement) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stock_movements`); err != nil {
			return fmt.Errorf("clear stock_movements: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
			return fmt.Errorf("clear inventory: %w", err)
		}
		for _, item := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO inventory (item_id, item_name, category, quantity, min_stock_level, reorder_point, stocked_at, expires_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				item.ItemID, item.ItemName, item.Category, item.Quantity,
				item.MinStockLevel, item.ReorderPoint,
				item.StockedAt.Format(time.RFC3339), item.ExpiresAt.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("seed inventory item %s: %w", item.ItemID, err)
			}
		}
		for _, m := range movements {
			if err := insertMovement(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}
