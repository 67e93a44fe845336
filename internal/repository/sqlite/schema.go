// internal/repository/sqlite/schema.go
package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS inventory (
    item_id         TEXT PRIMARY KEY,
    item_name       TEXT NOT NULL,
    category        TEXT NOT NULL,
    quantity        INTEGER NOT NULL,
    min_stock_level INTEGER NOT NULL DEFAULT 5,
    reorder_point   INTEGER NOT NULL DEFAULT 10,
    stocked_at      TEXT NOT NULL,
    expires_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inventory_category ON inventory(category);

CREATE TABLE IF NOT EXISTS stock_movements (
    movement_id   TEXT PRIMARY KEY,
    item_id       TEXT NOT NULL,
    item_name     TEXT NOT NULL,
    movement_type TEXT NOT NULL,
    quantity      INTEGER NOT NULL,
    reason        TEXT,
    created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_movements_created ON stock_movements(created_at);
CREATE INDEX IF NOT EXISTS idx_movements_item ON stock_movements(item_id);

CREATE TABLE IF NOT EXISTS sales (
    sale_id      TEXT PRIMARY KEY,
    sale_date    TEXT NOT NULL,
    sale_hour    INTEGER NOT NULL,
    item_id      TEXT NOT NULL,
    item_name    TEXT NOT NULL,
    category     TEXT NOT NULL,
    quantity     INTEGER NOT NULL,
    unit_price   INTEGER NOT NULL,
    total_amount INTEGER NOT NULL,
    weather      TEXT NOT NULL,
    temperature  REAL NOT NULL,
    day_of_week  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);
CREATE INDEX IF NOT EXISTS idx_sales_category ON sales(category);

CREATE TABLE IF NOT EXISTS daily_summary (
    date           TEXT PRIMARY KEY,
    total_sales    INTEGER NOT NULL,
    total_items    INTEGER NOT NULL,
    weather        TEXT NOT NULL,
    temperature    REAL NOT NULL,
    customer_count INTEGER NOT NULL
);
`
