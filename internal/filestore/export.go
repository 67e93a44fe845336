// internal/filestore/export.go
package filestore

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

// ExportOrdersCSV renders order recommendations as a CSV document, in
// the same row order the optimizer produced.
func ExportOrdersCSV(recommendations []domain.OrderRecommendation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"item_id", "item_name", "category",
		"current_quantity", "reorder_point", "adjusted_target",
		"demand_ratio", "recommended_order_quantity",
		"remaining_hours_until_expiry", "note",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range recommendations {
		row := []string{
			rec.ItemID,
			rec.ItemName,
			rec.Category,
			strconv.Itoa(rec.CurrentQuantity),
			strconv.Itoa(rec.ReorderPoint),
			strconv.Itoa(rec.AdjustedTarget),
			strconv.FormatFloat(rec.DemandRatio, 'f', 2, 64),
			strconv.Itoa(rec.RecommendedOrderQuantity),
			strconv.FormatFloat(rec.RemainingHoursUntilExpiry, 'f', 1, 64),
			rec.Note,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
