package persistence

import (
	"github.com/ecomdw/warehouse/internal/domain/source"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"gorm.io/gorm"
)

// Repositories bundles every repository over a single gorm handle. The
// pipeline builds one bundle per transaction so that all stages share the
// same transactional view.
type Repositories struct {
	Source     source.Reader
	Channels   warehouse.ChannelRepository
	Products   warehouse.ProductRepository
	Stores     warehouse.StoreRepository
	Customers  warehouse.CustomerRepository
	Campaigns  warehouse.CampaignRepository
	Calendar   warehouse.CalendarRepository
	FxRates    warehouse.FxRateRepository
	Bridge     warehouse.BridgeRepository
	Orders     warehouse.OrderRepository
	OrderItems warehouse.OrderItemRepository
	Refunds    warehouse.RefundRepository
	Snapshots  warehouse.SnapshotRepository
}

// NewRepositories creates a repository bundle over the given handle, which
// may be a plain connection or an open transaction.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Source:     NewGormSourceReader(db),
		Channels:   NewGormChannelRepository(db),
		Products:   NewGormProductRepository(db),
		Stores:     NewGormStoreRepository(db),
		Customers:  NewGormCustomerRepository(db),
		Campaigns:  NewGormCampaignRepository(db),
		Calendar:   NewGormCalendarRepository(db),
		FxRates:    NewGormFxRateRepository(db),
		Bridge:     NewGormBridgeRepository(db),
		Orders:     NewGormOrderRepository(db),
		OrderItems: NewGormOrderItemRepository(db),
		Refunds:    NewGormRefundRepository(db),
		Snapshots:  NewGormSnapshotRepository(db),
	}
}
