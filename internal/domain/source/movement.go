package source

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a point-of-sale stock movement.
type MovementType string

const (
	MovementSale       MovementType = "Sale"
	MovementStockIn    MovementType = "Stock-In"
	MovementReturn     MovementType = "Return"
	MovementAdjustment MovementType = "Adjustment"
)

// AffectsLedger reports whether the movement contributes to the inventory
// ledger delta. Sale movements do not: the same sale is already captured by
// the receipt line fact, and summing both would double-count it.
func (m MovementType) AffectsLedger() bool {
	return m != MovementSale
}

// InventoryMovement is a raw point-of-sale stock-affecting event.
// Marketplace channels do not record movements; their stock effect is
// inferred from order line items.
type InventoryMovement struct {
	MovementID   string          `gorm:"column:movement_id"`
	ProductID    string          `gorm:"column:product_id"`
	StoreID      string          `gorm:"column:store_id"`
	MovementType MovementType    `gorm:"column:movement_type"`
	QtyDelta     decimal.Decimal `gorm:"column:qty_delta;type:decimal(18,4)"`
	ReferenceID  string          `gorm:"column:reference_id"`
	MovedAt      time.Time       `gorm:"column:moved_at"`
	Note         string          `gorm:"column:note"`
}
