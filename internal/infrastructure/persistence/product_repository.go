package persistence

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements warehouse.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// UpsertSeed inserts or updates master products keyed on the business code.
// Conflicting rows keep their surrogate key; only descriptive attributes,
// starting inventory and creation timestamp are refreshed.
func (r *GormProductRepository) UpsertSeed(ctx context.Context, products []*warehouse.MasterProduct) error {
	if len(products) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "master_product_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "brand", "starting_inventory", "created_at",
		}),
	}).Create(products).Error
	if err != nil {
		return fmt.Errorf("upserting master products: %w", err)
	}
	return nil
}

// SKByCode returns the business-code to surrogate-key map.
func (r *GormProductRepository) SKByCode(ctx context.Context) (map[string]uuid.UUID, error) {
	var products []warehouse.MasterProduct
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("listing master products: %w", err)
	}
	m := make(map[string]uuid.UUID, len(products))
	for _, p := range products {
		m[p.Code] = p.SK
	}
	return m, nil
}

// List returns every master product.
func (r *GormProductRepository) List(ctx context.Context) ([]warehouse.MasterProduct, error) {
	var products []warehouse.MasterProduct
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("listing master products: %w", err)
	}
	return products, nil
}
