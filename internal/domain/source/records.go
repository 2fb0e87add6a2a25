package source

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a raw product listing as recorded by a channel.
// Each channel keeps its own product_id namespace; reconciliation to the
// master catalog happens in the bridge resolver, not here.
type Product struct {
	ProductID string              `gorm:"column:product_id"`
	SKU       string              `gorm:"column:sku"`
	Name      string              `gorm:"column:name"`
	Category  string              `gorm:"column:category"`
	Brand     string              `gorm:"column:brand"`
	Cost      decimal.NullDecimal `gorm:"column:cost;type:decimal(18,4)"`
	Price     decimal.Decimal     `gorm:"column:price;type:decimal(18,4)"`
	Currency  string              `gorm:"column:currency"`
	UpdatedAt time.Time           `gorm:"column:updated_at"`
}

// Customer is a raw channel customer. Marketplace channels call the key
// buyer_id, the point-of-sale system calls it customer_id; readers normalize
// both into CustomerID.
type Customer struct {
	CustomerID string    `gorm:"column:customer_id"`
	Region     string    `gorm:"column:region"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// Order is a raw marketplace order header.
type Order struct {
	OrderID       string          `gorm:"column:order_id"`
	BuyerID       string          `gorm:"column:buyer_id"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	Status        string          `gorm:"column:status"`
	Currency      string          `gorm:"column:currency"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(18,4)"`
	ShippingFee   decimal.Decimal `gorm:"column:shipping_fee;type:decimal(18,4)"`
	TaxTotal      decimal.Decimal `gorm:"column:tax_total;type:decimal(18,4)"`
	VoucherAmount decimal.Decimal `gorm:"column:voucher_amount;type:decimal(18,4)"`
}

// OrderItem is a raw marketplace order line.
type OrderItem struct {
	OrderID   string          `gorm:"column:order_id"`
	ProductID string          `gorm:"column:product_id"`
	Qty       decimal.Decimal `gorm:"column:qty;type:decimal(18,4)"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,4)"`
	Discount  decimal.Decimal `gorm:"column:discount;type:decimal(18,4)"`
}

// Receipt is a raw point-of-sale transaction header.
type Receipt struct {
	ReceiptID     string          `gorm:"column:receipt_id"`
	CustomerID    string          `gorm:"column:customer_id"`
	StoreID       string          `gorm:"column:store_id"`
	SoldAt        time.Time       `gorm:"column:sold_at"`
	Status        string          `gorm:"column:status"`
	Currency      string          `gorm:"column:currency"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;type:decimal(18,4)"`
	DiscountTotal decimal.Decimal `gorm:"column:discount_total;type:decimal(18,4)"`
	TaxTotal      decimal.Decimal `gorm:"column:tax_total;type:decimal(18,4)"`
	ShippingFee   decimal.Decimal `gorm:"column:shipping_fee;type:decimal(18,4)"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:decimal(18,4)"`
}

// ReceiptLine is a raw point-of-sale receipt line.
type ReceiptLine struct {
	ReceiptID    string          `gorm:"column:receipt_id"`
	ProductID    string          `gorm:"column:product_id"`
	Qty          decimal.Decimal `gorm:"column:qty;type:decimal(18,4)"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:decimal(18,4)"`
	LineDiscount decimal.Decimal `gorm:"column:line_discount;type:decimal(18,4)"`
}

// Refund is a raw marketplace refund record.
type Refund struct {
	RefundID    string          `gorm:"column:refund_id"`
	OrderID     string          `gorm:"column:order_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(18,4)"`
	Reason      string          `gorm:"column:reason"`
	ProcessedAt time.Time       `gorm:"column:processed_at"`
}

// Store is a raw point-of-sale store record.
type Store struct {
	StoreID  string `gorm:"column:store_id"`
	Name     string `gorm:"column:name"`
	Region   string `gorm:"column:region"`
	Timezone string `gorm:"column:timezone"`
}

// Campaign is a raw marketing campaign record (tiktok only).
type Campaign struct {
	CampaignID string          `gorm:"column:campaign_id"`
	Name       string          `gorm:"column:name"`
	StartAt    time.Time       `gorm:"column:start_at"`
	EndAt      time.Time       `gorm:"column:end_at"`
	Budget     decimal.Decimal `gorm:"column:budget;type:decimal(18,4)"`
}
