package persistence

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderItemRepository implements warehouse.OrderItemRepository using GORM
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GormOrderItemRepository
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// UpsertAll writes order line facts. Conflicting rows on (order, product)
// are fully overwritten: the latest load wins for every measure, unlike the
// order-level coalesce rule.
func (r *GormOrderItemRepository) UpsertAll(ctx context.Context, items []*warehouse.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_sk"}, {Name: "product_sk"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"qty", "price", "discount", "revenue_net", "cost", "margin", "cost_known",
		}),
	}).Create(items).Error
	if err != nil {
		return fmt.Errorf("upserting order items: %w", err)
	}
	return nil
}

// List returns every order line fact.
func (r *GormOrderItemRepository) List(ctx context.Context) ([]warehouse.OrderItem, error) {
	var items []warehouse.OrderItem
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	return items, nil
}
