package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refund is the refund fact, unique on the business refund id. The parent
// order surrogate key is required; the product key is optional because not
// every source attributes refunds at item level. On conflict everything
// overwrites except the product key, which coalesces to non-null so that
// late item-level attribution is never lost.
type Refund struct {
	SK           uuid.UUID       `gorm:"column:refund_sk;type:uuid;primaryKey"`
	RefundID     string          `gorm:"column:refund_id;type:varchar(50);not null;uniqueIndex"`
	OrderSK      uuid.UUID       `gorm:"column:order_sk;type:uuid;not null;index"`
	ProductSK    *uuid.UUID      `gorm:"column:product_sk;type:uuid"`
	AmountNative decimal.Decimal `gorm:"column:amount_native;type:decimal(18,4);not null"`
	Reason       string          `gorm:"type:varchar(200)"`
	ProcessedTS  time.Time       `gorm:"column:processed_ts"`
}

func (Refund) TableName() string {
	return "wh_fact_refunds"
}
