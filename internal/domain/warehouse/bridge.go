package warehouse

import (
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BridgeEntry maps a (channel, source product id) pair to a master product
// surrogate key, carrying a denormalized snapshot of the source record at
// mapping time. The pair is unique; re-resolving overwrites the snapshot
// and may re-point the master key, but never duplicates the row.
//
// This entry is the sole de-duplication mechanism across channels: two
// channels selling the same real-world product must bridge to the same
// master surrogate key.
type BridgeEntry struct {
	ProductSK       uuid.UUID      `gorm:"column:product_sk;type:uuid;not null;index"`
	SourceChannel   shared.Channel `gorm:"column:source_channel;type:varchar(20);primaryKey"`
	SourceProductID string         `gorm:"column:source_product_id;type:varchar(50);primaryKey"`
	SourceSKU       string         `gorm:"column:source_sku;type:varchar(100)"`
	SourceName      string         `gorm:"column:source_name;type:varchar(200)"`
	// CostNative is null when the source never reported a cost; downstream
	// margin computation flags the line instead of assuming a free good.
	CostNative     decimal.NullDecimal `gorm:"column:cost_native;type:decimal(18,4)"`
	PriceNative    decimal.Decimal     `gorm:"column:price_native;type:decimal(18,4)"`
	CurrencyNative string              `gorm:"column:currency_native;type:varchar(3)"`
	UpdatedAt      time.Time           `gorm:"column:updated_at"`
}

func (BridgeEntry) TableName() string {
	return "wh_bridge_product_source"
}

// CostEach returns the per-unit cost snapshot and whether it is known.
// An unknown cost reports zero, which makes margin equal revenue upstream;
// callers must carry the flag rather than treat the line as a free good.
func (e BridgeEntry) CostEach() (decimal.Decimal, bool) {
	if !e.CostNative.Valid {
		return decimal.Zero, false
	}
	return e.CostNative.Decimal, true
}
