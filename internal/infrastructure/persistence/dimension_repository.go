package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements warehouse.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// UpsertAll writes store dimension rows, overwriting descriptive attributes
// on store_id conflict.
func (r *GormStoreRepository) UpsertAll(ctx context.Context, stores []*warehouse.Store) error {
	if len(stores) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "region", "timezone"}),
	}).Create(stores).Error
	if err != nil {
		return fmt.Errorf("upserting stores: %w", err)
	}
	return nil
}

// SKByStoreID returns the business-id to surrogate-key map.
func (r *GormStoreRepository) SKByStoreID(ctx context.Context) (map[string]uuid.UUID, error) {
	var stores []warehouse.Store
	if err := r.db.WithContext(ctx).Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	m := make(map[string]uuid.UUID, len(stores))
	for _, s := range stores {
		m[s.StoreID] = s.SK
	}
	return m, nil
}

// GormCustomerRepository implements warehouse.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// UpsertAll writes customer dimension rows. On (source id, channel) conflict
// the region coalesces to non-null and first_seen_at keeps the earlier of
// the existing and incoming timestamps.
func (r *GormCustomerRepository) UpsertAll(ctx context.Context, customers []*warehouse.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_customer_id"}, {Name: "source_channel"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"region": gorm.Expr("COALESCE(excluded.region, wh_dim_customer.region)"),
			"first_seen_at": gorm.Expr(
				"CASE WHEN excluded.first_seen_at < wh_dim_customer.first_seen_at" +
					" THEN excluded.first_seen_at ELSE wh_dim_customer.first_seen_at END"),
		}),
	}).Create(customers).Error
	if err != nil {
		return fmt.Errorf("upserting customers: %w", err)
	}
	return nil
}

// SKBySourceID returns the source-id to surrogate-key map for one channel.
func (r *GormCustomerRepository) SKBySourceID(ctx context.Context, ch shared.Channel) (map[string]uuid.UUID, error) {
	var customers []warehouse.Customer
	err := r.db.WithContext(ctx).Where("source_channel = ?", string(ch)).Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s customers: %w", ch, err)
	}
	m := make(map[string]uuid.UUID, len(customers))
	for _, c := range customers {
		m[c.SourceCustomerID] = c.SK
	}
	return m, nil
}

// GormCampaignRepository implements warehouse.CampaignRepository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// UpsertAll writes campaign dimension rows, overwriting all attributes on
// source_campaign_id conflict.
func (r *GormCampaignRepository) UpsertAll(ctx context.Context, campaigns []*warehouse.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "channel_id", "start_at", "end_at", "budget_native", "currency_native",
		}),
	}).Create(campaigns).Error
	if err != nil {
		return fmt.Errorf("upserting campaigns: %w", err)
	}
	return nil
}

// GormCalendarRepository implements warehouse.CalendarRepository using GORM
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewGormCalendarRepository creates a new GormCalendarRepository
func NewGormCalendarRepository(db *gorm.DB) *GormCalendarRepository {
	return &GormCalendarRepository{db: db}
}

// EnsureRange inserts any missing calendar rows between start and end
// inclusive. The dimension is monotonic: existing rows are never touched.
func (r *GormCalendarRepository) EnsureRange(ctx context.Context, start, end time.Time) error {
	rows := warehouse.CalendarRange(start, end)
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date_key"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("ensuring calendar range: %w", err)
	}
	return nil
}

// GormFxRateRepository implements warehouse.FxRateRepository using GORM
type GormFxRateRepository struct {
	db *gorm.DB
}

// NewGormFxRateRepository creates a new GormFxRateRepository
func NewGormFxRateRepository(db *gorm.DB) *GormFxRateRepository {
	return &GormFxRateRepository{db: db}
}

// EnsurePassthrough inserts the MYR identity rate for each date key,
// skipping keys that already have one.
func (r *GormFxRateRepository) EnsurePassthrough(ctx context.Context, dateKeys []string) error {
	if len(dateKeys) == 0 {
		return nil
	}
	rows := make([]warehouse.FxRate, 0, len(dateKeys))
	for _, key := range dateKeys {
		rows = append(rows, *warehouse.PassthroughRate(key))
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date_key"}, {Name: "currency"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("ensuring fx passthrough rates: %w", err)
	}
	return nil
}
