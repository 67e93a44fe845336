// internal/repository/inventory_repository.go
package repository

import (
	"context"
	"time"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

// InventoryRepository is the contract for the inventory backing table and
// its movement ledger. Mutations are atomic: the quantity change and its
// ledger row commit together or not at all.
type InventoryRepository interface {
	// ListInStock returns items with quantity > 0, ordered by category then
	// item name. Empty category means no filter.
	ListInStock(ctx context.Context, category string) ([]domain.InventoryItem, error)

	// ListByExpiry returns items with quantity > 0 ordered by expires_at
	// ascending, optionally filtered by category.
	ListByExpiry(ctx context.Context, category string) ([]domain.InventoryItem, error)

	// ListAll returns every item record (quantity 0 included), ordered by
	// category then item name.
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)

	// ListBelowReorder returns items with quantity <= reorder_point ordered
	// by shortage descending, then category, then item name.
	ListBelowReorder(ctx context.Context, category string) ([]domain.InventoryItem, error)

	// Get returns the item or nil when the id is unknown.
	Get(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// NextItemSeq returns the next free numeric suffix for generated ids.
	NextItemSeq(ctx context.Context) (int, error)

	// AdjustQuantity sets the item's quantity and appends the movement in
	// one transaction.
	AdjustQuantity(ctx context.Context, itemID string, newQuantity int, movement domain.StockMovement) error

	// CreateItem inserts a new item and its initial movement in one
	// transaction.
	CreateItem(ctx context.Context, item domain.InventoryItem, movement domain.StockMovement) error

	// ListMovements returns ledger rows with created_at >= since, newest
	// first, optionally joined on the item's category.
	ListMovements(ctx context.Context, since time.Time, category string) ([]domain.StockMovement, error)

	// Seed replaces the table contents. Startup and test use only.
	Seed(ctx context.Context, items []domain.InventoryItem, movements []domain.StockMovement) error
}
