package warehouse

import (
	"strings"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasterProduct is the canonical catalog entity that all channel-local
// product records reconcile to. The surrogate key is assigned at first
// insert and never changes; reseeding the same business code only updates
// the descriptive attributes.
type MasterProduct struct {
	SK                uuid.UUID       `gorm:"column:product_sk;type:uuid;primaryKey"`
	Code              string          `gorm:"column:master_product_code;type:varchar(50);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Category          string          `gorm:"type:varchar(100)"`
	Brand             string          `gorm:"type:varchar(100)"`
	StartingInventory decimal.Decimal `gorm:"column:starting_inventory;type:decimal(18,4);not null;default:0"`
	CreatedAt         time.Time       `gorm:"column:created_at;not null"`
}

// TableName returns the table name for GORM
func (MasterProduct) TableName() string {
	return "wh_dim_product"
}

// NewMasterProduct creates a master product with a fresh surrogate key.
func NewMasterProduct(code, name, category, brand string, startingInventory decimal.Decimal, createdAt time.Time) (*MasterProduct, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Master product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Master product name cannot be empty")
	}
	if startingInventory.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STARTING_INVENTORY", "Starting inventory cannot be negative")
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &MasterProduct{
		SK:                uuid.New(),
		Code:              code,
		Name:              name,
		Category:          category,
		Brand:             brand,
		StartingInventory: startingInventory,
		CreatedAt:         createdAt,
	}, nil
}

// CreatedDateKey returns the date key of the product's creation day.
// The inventory ledger never emits a snapshot before this day.
func (p *MasterProduct) CreatedDateKey() string {
	return shared.DateKeyOf(p.CreatedAt)
}
