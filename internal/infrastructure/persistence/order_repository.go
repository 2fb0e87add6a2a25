package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements warehouse.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// UpsertAll writes order facts. On (order id, channel) conflict the status,
// currency and totals take the latest load; customer and store surrogate
// keys coalesce to non-null so a resolved key is never regressed to null by
// a later load that failed to resolve it.
func (r *GormOrderRepository) UpsertAll(ctx context.Context, orders []*warehouse.Order) error {
	if len(orders) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}, {Name: "channel_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":            gorm.Expr("excluded.status"),
			"customer_sk":       gorm.Expr("COALESCE(excluded.customer_sk, wh_fact_orders.customer_sk)"),
			"store_sk":          gorm.Expr("COALESCE(excluded.store_sk, wh_fact_orders.store_sk)"),
			"currency_native":   gorm.Expr("excluded.currency_native"),
			"order_total_gross": gorm.Expr("excluded.order_total_gross"),
			"order_total_net":   gorm.Expr("excluded.order_total_net"),
			"shipping_fee":      gorm.Expr("excluded.shipping_fee"),
			"tax_total":         gorm.Expr("excluded.tax_total"),
			"voucher_amount":    gorm.Expr("excluded.voucher_amount"),
		}),
	}).Create(orders).Error
	if err != nil {
		return fmt.Errorf("upserting orders: %w", err)
	}
	return nil
}

// SKByOrderID returns the business-order-id to surrogate-key map for one
// channel. The map reflects committed rows, so orders that conflicted on
// upsert resolve to their original surrogate key.
func (r *GormOrderRepository) SKByOrderID(ctx context.Context, channelID int64) (map[string]uuid.UUID, error) {
	var orders []warehouse.Order
	err := r.db.WithContext(ctx).Where("channel_id = ?", channelID).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("listing orders for channel %d: %w", channelID, err)
	}
	m := make(map[string]uuid.UUID, len(orders))
	for _, o := range orders {
		m[o.OrderID] = o.SK
	}
	return m, nil
}

// RefundEligible returns the business-order-id to surrogate-key map for one
// channel, limited to orders whose status allows refund rows. Filtering
// happens in Go so the status rules stay on the Order entity.
func (r *GormOrderRepository) RefundEligible(ctx context.Context, channelID int64) (map[string]uuid.UUID, error) {
	var orders []warehouse.Order
	err := r.db.WithContext(ctx).Where("channel_id = ?", channelID).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("listing orders for channel %d: %w", channelID, err)
	}
	m := make(map[string]uuid.UUID)
	for _, o := range orders {
		if o.IsRefundEligible() {
			m[o.OrderID] = o.SK
		}
	}
	return m, nil
}

// MinOrderDate returns the earliest order timestamp across all channels.
func (r *GormOrderRepository) MinOrderDate(ctx context.Context) (time.Time, bool, error) {
	var order warehouse.Order
	err := r.db.WithContext(ctx).Order("order_ts asc").First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("finding earliest order: %w", err)
	}
	return order.OrderTS, true, nil
}

// DayBuckets maps each order surrogate key to its day bucket, limited to
// orders whose date key falls within [startKey, endKey]. Bucketing happens
// here rather than in SQL so that date handling is identical across
// database drivers.
func (r *GormOrderRepository) DayBuckets(ctx context.Context, startKey, endKey string) (map[uuid.UUID]string, error) {
	var orders []warehouse.Order
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	m := make(map[uuid.UUID]string)
	for _, o := range orders {
		if key := o.DateKey(); key >= startKey && key <= endKey {
			m[o.SK] = key
		}
	}
	return m, nil
}
