package source

import (
	"context"

	"github.com/ecomdw/warehouse/internal/domain/shared"
)

// Reader provides uniform access to the raw tables of every channel.
// An empty table is a successful no-op for every method; readers never
// interpret or filter rows.
type Reader interface {
	// Products lists the full current product catalog of a channel.
	Products(ctx context.Context, ch shared.Channel) ([]Product, error)

	// Customers lists a channel's customers with the channel-specific id
	// column normalized into CustomerID.
	Customers(ctx context.Context, ch shared.Channel) ([]Customer, error)

	// Orders lists a marketplace channel's order headers.
	Orders(ctx context.Context, ch shared.Channel) ([]Order, error)

	// OrderItems lists a marketplace channel's order lines.
	OrderItems(ctx context.Context, ch shared.Channel) ([]OrderItem, error)

	// Refunds lists a marketplace channel's refunds.
	Refunds(ctx context.Context, ch shared.Channel) ([]Refund, error)

	// Receipts lists point-of-sale transaction headers.
	Receipts(ctx context.Context) ([]Receipt, error)

	// ReceiptLines lists point-of-sale receipt lines.
	ReceiptLines(ctx context.Context) ([]ReceiptLine, error)

	// InventoryMovements lists point-of-sale stock movements.
	InventoryMovements(ctx context.Context) ([]InventoryMovement, error)

	// Stores lists point-of-sale stores.
	Stores(ctx context.Context) ([]Store, error)

	// Campaigns lists tiktok marketing campaigns.
	Campaigns(ctx context.Context) ([]Campaign, error)
}
