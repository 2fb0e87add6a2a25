package warehouse

import (
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the unified status vocabulary across all channels.
// Marketplace channels use the full lifecycle; point-of-sale receipts only
// ever arrive as completed, cancelled or refunded.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Order is the unified order/receipt fact. The business order id is unique
// within its channel. On conflict, status/currency/totals take the latest
// load while resolved customer and store keys coalesce to non-null: a later
// load that failed to resolve a key never erases a previously resolved one.
type Order struct {
	SK             uuid.UUID       `gorm:"column:order_sk;type:uuid;primaryKey"`
	OrderID        string          `gorm:"column:order_id;type:varchar(50);not null;uniqueIndex:idx_order_channel,priority:1"`
	ChannelID      int64           `gorm:"column:channel_id;not null;uniqueIndex:idx_order_channel,priority:2"`
	CustomerSK     *uuid.UUID      `gorm:"column:customer_sk;type:uuid;index"`
	StoreSK        *uuid.UUID      `gorm:"column:store_sk;type:uuid;index"`
	OrderTS        time.Time       `gorm:"column:order_ts;not null"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null"`
	CurrencyNative string          `gorm:"column:currency_native;type:varchar(3)"`
	TotalGross     decimal.Decimal `gorm:"column:order_total_gross;type:decimal(18,4);not null;default:0"`
	TotalNet       decimal.Decimal `gorm:"column:order_total_net;type:decimal(18,4);not null;default:0"`
	ShippingFee    decimal.Decimal `gorm:"column:shipping_fee;type:decimal(18,4);not null;default:0"`
	TaxTotal       decimal.Decimal `gorm:"column:tax_total;type:decimal(18,4);not null;default:0"`
	VoucherAmount  decimal.Decimal `gorm:"column:voucher_amount;type:decimal(18,4);not null;default:0"`
}

func (Order) TableName() string {
	return "wh_fact_orders"
}

// IsRefundEligible reports whether the order's status allows refund rows.
func (o *Order) IsRefundEligible() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusRefunded
}

// DateKey returns the order's day bucket. Line items inherit this bucket in
// the inventory ledger regardless of their own timestamps.
func (o *Order) DateKey() string {
	return shared.DateKeyOf(o.OrderTS)
}
