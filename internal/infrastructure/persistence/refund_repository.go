package persistence

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRefundRepository implements warehouse.RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// UpsertAll writes refund facts. On refund_id conflict every field
// overwrites except the product surrogate key, which coalesces to non-null:
// a refund that gains item-level attribution keeps it.
func (r *GormRefundRepository) UpsertAll(ctx context.Context, refunds []*warehouse.Refund) error {
	if len(refunds) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "refund_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"order_sk":      gorm.Expr("excluded.order_sk"),
			"product_sk":    gorm.Expr("COALESCE(excluded.product_sk, wh_fact_refunds.product_sk)"),
			"amount_native": gorm.Expr("excluded.amount_native"),
			"reason":        gorm.Expr("excluded.reason"),
			"processed_ts":  gorm.Expr("excluded.processed_ts"),
		}),
	}).Create(refunds).Error
	if err != nil {
		return fmt.Errorf("upserting refunds: %w", err)
	}
	return nil
}
