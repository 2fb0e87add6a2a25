package etl

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/source"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DimensionLoader loads the non-product dimensions: stores, customers and
// campaigns.
type DimensionLoader struct {
	reader    source.Reader
	channels  warehouse.ChannelRepository
	stores    warehouse.StoreRepository
	customers warehouse.CustomerRepository
	campaigns warehouse.CampaignRepository
	log       *zap.Logger
}

// NewDimensionLoader creates a new DimensionLoader
func NewDimensionLoader(
	reader source.Reader,
	channels warehouse.ChannelRepository,
	stores warehouse.StoreRepository,
	customers warehouse.CustomerRepository,
	campaigns warehouse.CampaignRepository,
	log *zap.Logger,
) *DimensionLoader {
	return &DimensionLoader{
		reader:    reader,
		channels:  channels,
		stores:    stores,
		customers: customers,
		campaigns: campaigns,
		log:       log,
	}
}

// LoadStores upserts the point-of-sale store dimension.
func (l *DimensionLoader) LoadStores(ctx context.Context) error {
	raw, err := l.reader.Stores(ctx)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	stores := make([]*warehouse.Store, 0, len(raw))
	for _, s := range raw {
		stores = append(stores, warehouse.NewStore(s.StoreID, s.Name, s.Region, s.Timezone))
	}
	if err := l.stores.UpsertAll(ctx, stores); err != nil {
		return err
	}
	l.log.Info("stores loaded", zap.Int("count", len(stores)))
	return nil
}

// LoadCustomers upserts one channel's customer dimension rows.
func (l *DimensionLoader) LoadCustomers(ctx context.Context, ch shared.Channel) error {
	raw, err := l.reader.Customers(ctx, ch)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	customers := make([]*warehouse.Customer, 0, len(raw))
	for _, c := range raw {
		customers = append(customers, warehouse.NewCustomer(c.CustomerID, ch, c.Region, c.CreatedAt))
	}
	if err := l.customers.UpsertAll(ctx, customers); err != nil {
		return err
	}
	l.log.Info("customers loaded", zap.String("channel", ch.String()), zap.Int("count", len(customers)))
	return nil
}

// LoadAllCustomers upserts customers for every channel.
func (l *DimensionLoader) LoadAllCustomers(ctx context.Context) error {
	for _, ch := range shared.AllChannels() {
		if err := l.LoadCustomers(ctx, ch); err != nil {
			return fmt.Errorf("loading %s customers: %w", ch, err)
		}
	}
	return nil
}

// LoadCampaigns upserts the campaign dimension. Campaigns exist only on
// tiktok; a missing tiktok channel row is a setup defect and aborts.
func (l *DimensionLoader) LoadCampaigns(ctx context.Context) error {
	channelID, err := l.channels.IDByName(ctx, shared.ChannelTiktok)
	if err != nil {
		return err
	}
	raw, err := l.reader.Campaigns(ctx)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	campaigns := make([]*warehouse.Campaign, 0, len(raw))
	for _, c := range raw {
		campaigns = append(campaigns, &warehouse.Campaign{
			SK:               uuid.New(),
			SourceCampaignID: c.CampaignID,
			Name:             c.Name,
			ChannelID:        channelID,
			StartAt:          c.StartAt,
			EndAt:            c.EndAt,
			BudgetNative:     c.Budget,
			CurrencyNative:   "MYR",
		})
	}
	if err := l.campaigns.UpsertAll(ctx, campaigns); err != nil {
		return err
	}
	l.log.Info("campaigns loaded", zap.Int("count", len(campaigns)))
	return nil
}
