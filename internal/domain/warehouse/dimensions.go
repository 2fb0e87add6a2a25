package warehouse

import (
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Channel is a pre-registered row of the channel dimension. Loading a
// channel that has no row here is a setup defect and aborts the run.
type Channel struct {
	ID   int64          `gorm:"column:channel_id;primaryKey;autoIncrement"`
	Name shared.Channel `gorm:"type:varchar(20);not null;uniqueIndex"`
}

func (Channel) TableName() string {
	return "wh_dim_channel"
}

// Store is a point-of-sale store dimension row.
type Store struct {
	SK       uuid.UUID `gorm:"column:store_sk;type:uuid;primaryKey"`
	StoreID  string    `gorm:"column:store_id;type:varchar(50);not null;uniqueIndex"`
	Name     string    `gorm:"type:varchar(200)"`
	Region   string    `gorm:"type:varchar(100)"`
	Timezone string    `gorm:"type:varchar(50)"`
}

func (Store) TableName() string {
	return "wh_dim_store"
}

// NewStore creates a store dimension row from a raw store record.
func NewStore(storeID, name, region, timezone string) *Store {
	return &Store{
		SK:       uuid.New(),
		StoreID:  storeID,
		Name:     name,
		Region:   region,
		Timezone: timezone,
	}
}

// Customer is a channel-scoped customer dimension row. The same person on
// two channels is two rows; no cross-channel identity resolution is done.
// On conflict, region keeps the existing value unless the incoming one is
// non-empty, and first_seen_at keeps the earlier of the two timestamps.
type Customer struct {
	SK               uuid.UUID      `gorm:"column:customer_sk;type:uuid;primaryKey"`
	SourceCustomerID string         `gorm:"column:source_customer_id;type:varchar(50);not null;uniqueIndex:idx_customer_source,priority:1"`
	SourceChannel    shared.Channel `gorm:"column:source_channel;type:varchar(20);not null;uniqueIndex:idx_customer_source,priority:2"`
	Region           *string        `gorm:"type:varchar(100)"`
	FirstSeenAt      time.Time      `gorm:"column:first_seen_at"`
}

func (Customer) TableName() string {
	return "wh_dim_customer"
}

// NewCustomer creates a customer dimension row.
func NewCustomer(sourceCustomerID string, ch shared.Channel, region string, firstSeenAt time.Time) *Customer {
	c := &Customer{
		SK:               uuid.New(),
		SourceCustomerID: sourceCustomerID,
		SourceChannel:    ch,
		FirstSeenAt:      firstSeenAt,
	}
	if region != "" {
		c.Region = &region
	}
	return c
}

// Campaign is a marketing campaign dimension row (tiktok only).
type Campaign struct {
	SK               uuid.UUID       `gorm:"column:campaign_sk;type:uuid;primaryKey"`
	SourceCampaignID string          `gorm:"column:source_campaign_id;type:varchar(50);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(200)"`
	ChannelID        int64           `gorm:"column:channel_id;not null"`
	StartAt          time.Time       `gorm:"column:start_at"`
	EndAt            time.Time       `gorm:"column:end_at"`
	BudgetNative     decimal.Decimal `gorm:"column:budget_native;type:decimal(18,4)"`
	CurrencyNative   string          `gorm:"column:currency_native;type:varchar(3)"`
}

func (Campaign) TableName() string {
	return "wh_dim_campaign"
}
