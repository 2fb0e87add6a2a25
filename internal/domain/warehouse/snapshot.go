package warehouse

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventorySnapshot is the per-day, per-product cumulative stock quantity.
// Rows inside a recompute window are fully replaced, never patched, so a
// re-run over the same unchanged sources reproduces identical rows.
type InventorySnapshot struct {
	DateKey   string          `gorm:"column:snapshot_date;type:varchar(10);primaryKey"`
	ProductSK uuid.UUID       `gorm:"column:product_sk;type:uuid;primaryKey"`
	StockQty  decimal.Decimal `gorm:"column:stock_qty;type:decimal(18,4);not null"`
}

func (InventorySnapshot) TableName() string {
	return "wh_fact_inventory"
}
