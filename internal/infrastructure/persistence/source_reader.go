package persistence

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/source"
	"gorm.io/gorm"
)

// GormSourceReader reads the raw per-channel tables. Source tables follow
// the src_<channel>_<table> naming convention and are written by the
// external collaborators; this reader never modifies them.
type GormSourceReader struct {
	db *gorm.DB
}

// NewGormSourceReader creates a new GormSourceReader
func NewGormSourceReader(db *gorm.DB) *GormSourceReader {
	return &GormSourceReader{db: db}
}

func srcTable(ch shared.Channel, name string) string {
	return fmt.Sprintf("src_%s_%s", ch, name)
}

// Products lists the full current product catalog of a channel.
func (r *GormSourceReader) Products(ctx context.Context, ch shared.Channel) ([]source.Product, error) {
	var out []source.Product
	if err := r.db.WithContext(ctx).Table(srcTable(ch, "products")).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading %s products: %w", ch, err)
	}
	return out, nil
}

// Customers lists a channel's customers. Marketplace channels key customers
// by buyer_id; the point-of-sale system by customer_id. Both are aliased
// into the uniform customer_id column.
func (r *GormSourceReader) Customers(ctx context.Context, ch shared.Channel) ([]source.Customer, error) {
	idCol := "customer_id"
	if ch.IsMarketplace() {
		idCol = "buyer_id"
	}
	var out []source.Customer
	err := r.db.WithContext(ctx).
		Table(srcTable(ch, "customers")).
		Select(fmt.Sprintf("%s AS customer_id, region, created_at", idCol)).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("reading %s customers: %w", ch, err)
	}
	return out, nil
}

// Orders lists a marketplace channel's order headers.
func (r *GormSourceReader) Orders(ctx context.Context, ch shared.Channel) ([]source.Order, error) {
	if !ch.IsMarketplace() {
		return nil, fmt.Errorf("channel %s has no orders table: %w", ch, shared.ErrInvalidInput)
	}
	var out []source.Order
	if err := r.db.WithContext(ctx).Table(srcTable(ch, "orders")).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading %s orders: %w", ch, err)
	}
	return out, nil
}

// OrderItems lists a marketplace channel's order lines.
func (r *GormSourceReader) OrderItems(ctx context.Context, ch shared.Channel) ([]source.OrderItem, error) {
	if !ch.IsMarketplace() {
		return nil, fmt.Errorf("channel %s has no order_items table: %w", ch, shared.ErrInvalidInput)
	}
	var out []source.OrderItem
	if err := r.db.WithContext(ctx).Table(srcTable(ch, "order_items")).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading %s order items: %w", ch, err)
	}
	return out, nil
}

// Refunds lists a marketplace channel's refunds.
func (r *GormSourceReader) Refunds(ctx context.Context, ch shared.Channel) ([]source.Refund, error) {
	if !ch.IsMarketplace() {
		return nil, fmt.Errorf("channel %s has no refunds table: %w", ch, shared.ErrInvalidInput)
	}
	var out []source.Refund
	if err := r.db.WithContext(ctx).Table(srcTable(ch, "refunds")).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading %s refunds: %w", ch, err)
	}
	return out, nil
}

// Receipts lists point-of-sale transaction headers.
func (r *GormSourceReader) Receipts(ctx context.Context) ([]source.Receipt, error) {
	var out []source.Receipt
	if err := r.db.WithContext(ctx).Table("src_pos_receipts").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading pos receipts: %w", err)
	}
	return out, nil
}

// ReceiptLines lists point-of-sale receipt lines.
func (r *GormSourceReader) ReceiptLines(ctx context.Context) ([]source.ReceiptLine, error) {
	var out []source.ReceiptLine
	if err := r.db.WithContext(ctx).Table("src_pos_receipt_lines").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading pos receipt lines: %w", err)
	}
	return out, nil
}

// InventoryMovements lists point-of-sale stock movements.
func (r *GormSourceReader) InventoryMovements(ctx context.Context) ([]source.InventoryMovement, error) {
	var out []source.InventoryMovement
	if err := r.db.WithContext(ctx).Table("src_pos_inventory_movements").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading pos inventory movements: %w", err)
	}
	return out, nil
}

// Stores lists point-of-sale stores.
func (r *GormSourceReader) Stores(ctx context.Context) ([]source.Store, error) {
	var out []source.Store
	if err := r.db.WithContext(ctx).Table("src_pos_stores").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading pos stores: %w", err)
	}
	return out, nil
}

// Campaigns lists tiktok marketing campaigns.
func (r *GormSourceReader) Campaigns(ctx context.Context) ([]source.Campaign, error) {
	var out []source.Campaign
	if err := r.db.WithContext(ctx).Table("src_tiktok_campaigns").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("reading tiktok campaigns: %w", err)
	}
	return out, nil
}
