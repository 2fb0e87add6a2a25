package warehouse

import (
	"context"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/google/uuid"
)

// ChannelRepository resolves channel dimension rows.
type ChannelRepository interface {
	// IDByName returns the channel dimension id for a channel name.
	// Returns shared.ErrChannelNotRegistered when the row is missing.
	IDByName(ctx context.Context, ch shared.Channel) (int64, error)
}

// ProductRepository manages the master product dimension.
type ProductRepository interface {
	// UpsertSeed inserts or updates master products keyed on the business
	// code. Existing rows keep their surrogate key.
	UpsertSeed(ctx context.Context, products []*MasterProduct) error

	// SKByCode returns the business-code to surrogate-key map.
	SKByCode(ctx context.Context) (map[string]uuid.UUID, error)

	// List returns every master product.
	List(ctx context.Context) ([]MasterProduct, error)
}

// StoreRepository manages the store dimension.
type StoreRepository interface {
	UpsertAll(ctx context.Context, stores []*Store) error
	SKByStoreID(ctx context.Context) (map[string]uuid.UUID, error)
}

// CustomerRepository manages the channel-scoped customer dimension.
type CustomerRepository interface {
	UpsertAll(ctx context.Context, customers []*Customer) error

	// SKBySourceID returns the source-customer-id to surrogate-key map for
	// one channel.
	SKBySourceID(ctx context.Context, ch shared.Channel) (map[string]uuid.UUID, error)
}

// CampaignRepository manages the campaign dimension.
type CampaignRepository interface {
	UpsertAll(ctx context.Context, campaigns []*Campaign) error
}

// CalendarRepository manages the lazily populated calendar dimension.
type CalendarRepository interface {
	// EnsureRange inserts any missing calendar rows between start and end
	// inclusive. Existing rows are left untouched.
	EnsureRange(ctx context.Context, start, end time.Time) error
}

// FxRateRepository manages currency-passthrough rates.
type FxRateRepository interface {
	// EnsurePassthrough inserts the MYR identity rate for each date key,
	// skipping keys that already have one.
	EnsurePassthrough(ctx context.Context, dateKeys []string) error
}

// BridgeRepository manages the product source bridge.
type BridgeRepository interface {
	// UpsertAll writes bridge entries, overwriting the mapped key and all
	// snapshot fields on (channel, source product id) conflict.
	UpsertAll(ctx context.Context, entries []BridgeEntry) error

	// ByChannel returns a channel's entries keyed by source product id.
	ByChannel(ctx context.Context, ch shared.Channel) (map[string]BridgeEntry, error)
}

// OrderRepository manages the unified order fact.
type OrderRepository interface {
	UpsertAll(ctx context.Context, orders []*Order) error

	// SKByOrderID returns the business-order-id to surrogate-key map for one
	// channel, reflecting committed rows rather than the batch just written.
	SKByOrderID(ctx context.Context, channelID int64) (map[string]uuid.UUID, error)

	// RefundEligible is SKByOrderID restricted to orders whose status allows
	// refund rows.
	RefundEligible(ctx context.Context, channelID int64) (map[string]uuid.UUID, error)

	// MinOrderDate returns the earliest order timestamp across all channels.
	// The boolean is false when no orders exist.
	MinOrderDate(ctx context.Context) (time.Time, bool, error)

	// DayBuckets maps each order surrogate key to its day bucket, limited to
	// orders whose date key falls within [startKey, endKey].
	DayBuckets(ctx context.Context, startKey, endKey string) (map[uuid.UUID]string, error)
}

// OrderItemRepository manages the order line fact.
type OrderItemRepository interface {
	UpsertAll(ctx context.Context, items []*OrderItem) error
	List(ctx context.Context) ([]OrderItem, error)
}

// RefundRepository manages the refund fact.
type RefundRepository interface {
	UpsertAll(ctx context.Context, refunds []*Refund) error
}

// SnapshotRepository manages the inventory ledger.
type SnapshotRepository interface {
	// DeleteWindow removes every snapshot whose date key falls within
	// [startKey, endKey]. Rows outside the window are untouched.
	DeleteWindow(ctx context.Context, startKey, endKey string) error

	InsertAll(ctx context.Context, snapshots []InventorySnapshot) error
}
