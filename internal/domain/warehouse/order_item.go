package warehouse

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is the unified order line fact, unique on (order, product).
// Multiple purchases of the same product within one order are pre-aggregated
// by quantity before load; they never become separate rows. Conflicting
// loads fully overwrite every measure, unlike the order-level coalesce rule.
type OrderItem struct {
	OrderSK   uuid.UUID       `gorm:"column:order_sk;type:uuid;primaryKey"`
	ProductSK uuid.UUID       `gorm:"column:product_sk;type:uuid;primaryKey"`
	Qty       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Revenue   decimal.Decimal `gorm:"column:revenue_net;type:decimal(18,4);not null"`
	Cost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Margin    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// CostKnown is false when no bridge cost snapshot existed at load time.
	// Cost then defaults to zero and margin equals revenue, which must not be
	// confused with a genuinely free good.
	CostKnown bool `gorm:"column:cost_known;not null;default:true"`
}

func (OrderItem) TableName() string {
	return "wh_fact_order_items"
}

// NewOrderItem computes the derived measures for a line. Revenue and cost
// are rounded to two decimal places here; ledger accumulation downstream
// performs no further rounding.
func NewOrderItem(orderSK, productSK uuid.UUID, qty, price, discount, costEach decimal.Decimal, costKnown bool) *OrderItem {
	revenue := price.Sub(discount).Mul(qty).Round(2)
	cost := costEach.Mul(qty).Round(2)
	return &OrderItem{
		OrderSK:   orderSK,
		ProductSK: productSK,
		Qty:       qty,
		Price:     price,
		Discount:  discount,
		Revenue:   revenue,
		Cost:      cost,
		Margin:    revenue.Sub(cost),
		CostKnown: costKnown,
	}
}
