package persistence

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBridgeRepository implements warehouse.BridgeRepository using GORM
type GormBridgeRepository struct {
	db *gorm.DB
}

// NewGormBridgeRepository creates a new GormBridgeRepository
func NewGormBridgeRepository(db *gorm.DB) *GormBridgeRepository {
	return &GormBridgeRepository{db: db}
}

// UpsertAll writes bridge entries. On (channel, source product id) conflict
// the mapped master key and every snapshot field are overwritten; the pair
// never duplicates.
func (r *GormBridgeRepository) UpsertAll(ctx context.Context, entries []warehouse.BridgeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_channel"}, {Name: "source_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_sk", "source_sku", "source_name",
			"cost_native", "price_native", "currency_native", "updated_at",
		}),
	}).Create(&entries).Error
	if err != nil {
		return fmt.Errorf("upserting bridge entries: %w", err)
	}
	return nil
}

// ByChannel returns a channel's bridge entries keyed by source product id.
func (r *GormBridgeRepository) ByChannel(ctx context.Context, ch shared.Channel) (map[string]warehouse.BridgeEntry, error) {
	var entries []warehouse.BridgeEntry
	err := r.db.WithContext(ctx).Where("source_channel = ?", string(ch)).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("listing %s bridge entries: %w", ch, err)
	}
	m := make(map[string]warehouse.BridgeEntry, len(entries))
	for _, e := range entries {
		m[e.SourceProductID] = e
	}
	return m, nil
}
