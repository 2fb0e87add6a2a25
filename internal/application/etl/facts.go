package etl

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/source"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FactLoader loads order and line-item facts for all channels. Marketplace
// channels and the point-of-sale system share one algorithm; the latter is
// only a field-mapping variant with receipt/line vocabulary.
type FactLoader struct {
	reader    source.Reader
	channels  warehouse.ChannelRepository
	customers warehouse.CustomerRepository
	stores    warehouse.StoreRepository
	orders    warehouse.OrderRepository
	items     warehouse.OrderItemRepository
	calendar  warehouse.CalendarRepository
	fx        warehouse.FxRateRepository
	bridge    warehouse.BridgeRepository
	log       *zap.Logger
}

// NewFactLoader creates a new FactLoader
func NewFactLoader(
	reader source.Reader,
	channels warehouse.ChannelRepository,
	customers warehouse.CustomerRepository,
	stores warehouse.StoreRepository,
	orders warehouse.OrderRepository,
	items warehouse.OrderItemRepository,
	calendar warehouse.CalendarRepository,
	fx warehouse.FxRateRepository,
	bridge warehouse.BridgeRepository,
	log *zap.Logger,
) *FactLoader {
	return &FactLoader{
		reader:    reader,
		channels:  channels,
		customers: customers,
		stores:    stores,
		orders:    orders,
		items:     items,
		calendar:  calendar,
		fx:        fx,
		bridge:    bridge,
		log:       log,
	}
}

// rawLine is the channel-agnostic line shape fed to the items phase.
type rawLine struct {
	OrderID   string
	ProductID string
	Qty       decimal.Decimal
	Price     decimal.Decimal
	Discount  decimal.Decimal
}

// LoadMarketplace runs the two-phase order and item load for one
// marketplace channel.
func (l *FactLoader) LoadMarketplace(ctx context.Context, ch shared.Channel) error {
	channelID, err := l.channels.IDByName(ctx, ch)
	if err != nil {
		return err
	}

	rawOrders, err := l.reader.Orders(ctx, ch)
	if err != nil {
		return err
	}
	if len(rawOrders) > 0 {
		customerSKs, err := l.customers.SKBySourceID(ctx, ch)
		if err != nil {
			return err
		}

		orders := make([]*warehouse.Order, 0, len(rawOrders))
		dates := newDateTracker()
		for _, o := range rawOrders {
			dates.observe(o.CreatedAt)
			orders = append(orders, &warehouse.Order{
				SK:             uuid.New(),
				OrderID:        o.OrderID,
				ChannelID:      channelID,
				CustomerSK:     lookupSK(customerSKs, o.BuyerID),
				OrderTS:        o.CreatedAt,
				Status:         normalizeStatus(o.Status),
				CurrencyNative: o.Currency,
				TotalGross:     o.TotalAmount,
				TotalNet:       o.TotalAmount.Sub(o.VoucherAmount),
				ShippingFee:    o.ShippingFee,
				TaxTotal:       o.TaxTotal,
				VoucherAmount:  o.VoucherAmount,
			})
		}
		if err := l.orders.UpsertAll(ctx, orders); err != nil {
			return err
		}
		if err := l.sideEffects(ctx, dates); err != nil {
			return err
		}
		l.log.Info("orders loaded", zap.String("channel", ch.String()), zap.Int("count", len(orders)))
	}

	rawItems, err := l.reader.OrderItems(ctx, ch)
	if err != nil {
		return err
	}
	lines := make([]rawLine, 0, len(rawItems))
	for _, it := range rawItems {
		lines = append(lines, rawLine{
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     it.Price,
			Discount:  it.Discount,
		})
	}
	return l.loadLines(ctx, ch, channelID, lines)
}

// LoadPOS runs the two-phase load for the point-of-sale channel. Receipts
// carry a mandatory store reference; a receipt whose store is not in the
// store dimension still loads, with the miss logged, so that a late store
// sync does not drop sales facts.
func (l *FactLoader) LoadPOS(ctx context.Context) error {
	ch := shared.ChannelPOS
	channelID, err := l.channels.IDByName(ctx, ch)
	if err != nil {
		return err
	}

	receipts, err := l.reader.Receipts(ctx)
	if err != nil {
		return err
	}
	if len(receipts) > 0 {
		customerSKs, err := l.customers.SKBySourceID(ctx, ch)
		if err != nil {
			return err
		}
		storeSKs, err := l.stores.SKByStoreID(ctx)
		if err != nil {
			return err
		}

		orders := make([]*warehouse.Order, 0, len(receipts))
		dates := newDateTracker()
		storeMisses := 0
		for _, rc := range receipts {
			dates.observe(rc.SoldAt)
			storeSK := lookupSK(storeSKs, rc.StoreID)
			if storeSK == nil {
				storeMisses++
			}
			orders = append(orders, &warehouse.Order{
				SK:             uuid.New(),
				OrderID:        rc.ReceiptID,
				ChannelID:      channelID,
				CustomerSK:     lookupSK(customerSKs, rc.CustomerID),
				StoreSK:        storeSK,
				OrderTS:        rc.SoldAt,
				Status:         normalizeStatus(rc.Status),
				CurrencyNative: rc.Currency,
				TotalGross:     rc.GrandTotal,
				TotalNet:       rc.Subtotal.Sub(rc.DiscountTotal),
				ShippingFee:    rc.ShippingFee,
				TaxTotal:       rc.TaxTotal,
				VoucherAmount:  rc.DiscountTotal,
			})
		}
		if err := l.orders.UpsertAll(ctx, orders); err != nil {
			return err
		}
		if err := l.sideEffects(ctx, dates); err != nil {
			return err
		}
		if storeMisses > 0 {
			l.log.Warn("receipts with unresolved store", zap.Int("count", storeMisses))
		}
		l.log.Info("receipts loaded", zap.Int("count", len(orders)))
	}

	rawLines, err := l.reader.ReceiptLines(ctx)
	if err != nil {
		return err
	}
	lines := make([]rawLine, 0, len(rawLines))
	for _, rl := range rawLines {
		lines = append(lines, rawLine{
			OrderID:   rl.ReceiptID,
			ProductID: rl.ProductID,
			Qty:       rl.Qty,
			Price:     rl.UnitPrice,
			Discount:  rl.LineDiscount,
		})
	}
	return l.loadLines(ctx, ch, channelID, lines)
}

// loadLines is the items phase. Both the order and the product must resolve
// or the line is skipped; orphan lines are the expected steady state for
// unmapped listings, never an error. Lines for the same (order, product)
// pair are pre-aggregated by quantity before the upsert.
func (l *FactLoader) loadLines(ctx context.Context, ch shared.Channel, channelID int64, lines []rawLine) error {
	if len(lines) == 0 {
		return nil
	}

	orderSKs, err := l.orders.SKByOrderID(ctx, channelID)
	if err != nil {
		return err
	}
	bridgeEntries, err := l.bridge.ByChannel(ctx, ch)
	if err != nil {
		return err
	}

	type lineKey struct {
		orderID   string
		productID string
	}
	merged := make(map[lineKey]rawLine)
	var order []lineKey // deterministic upsert order
	for _, line := range lines {
		key := lineKey{orderID: line.OrderID, productID: line.ProductID}
		if existing, ok := merged[key]; ok {
			// Same product twice in one order: aggregate the quantity, take
			// the latest price and discount.
			line.Qty = line.Qty.Add(existing.Qty)
			merged[key] = line
			continue
		}
		merged[key] = line
		order = append(order, key)
	}

	items := make([]*warehouse.OrderItem, 0, len(merged))
	skipped := 0
	costUnknown := 0
	for _, key := range order {
		line := merged[key]
		orderSK, okOrder := orderSKs[line.OrderID]
		entry, okProduct := bridgeEntries[line.ProductID]
		if !okOrder || !okProduct {
			skipped++
			continue
		}
		costEach, costKnown := entry.CostEach()
		if !costKnown {
			costUnknown++
		}
		items = append(items, warehouse.NewOrderItem(
			orderSK, entry.ProductSK, line.Qty, line.Price, line.Discount, costEach, costKnown,
		))
	}

	if err := l.items.UpsertAll(ctx, items); err != nil {
		return err
	}
	l.log.Info("order items loaded",
		zap.String("channel", ch.String()),
		zap.Int("count", len(items)),
		zap.Int("skipped", skipped),
		zap.Int("cost_unknown", costUnknown),
	)
	return nil
}

// sideEffects backfills the calendar dimension and the currency-passthrough
// rate for every order date observed in a batch.
func (l *FactLoader) sideEffects(ctx context.Context, dates *dateTracker) error {
	if dates.empty() {
		return nil
	}
	if err := l.calendar.EnsureRange(ctx, dates.min, dates.max); err != nil {
		return err
	}
	return l.fx.EnsurePassthrough(ctx, dates.keys())
}

// dateTracker accumulates the distinct day buckets seen during a load.
type dateTracker struct {
	min, max time.Time
	seen     map[string]struct{}
}

func newDateTracker() *dateTracker {
	return &dateTracker{seen: make(map[string]struct{})}
}

func (t *dateTracker) observe(ts time.Time) {
	if ts.IsZero() {
		return
	}
	if t.min.IsZero() || ts.Before(t.min) {
		t.min = ts
	}
	if t.max.IsZero() || ts.After(t.max) {
		t.max = ts
	}
	t.seen[shared.DateKeyOf(ts)] = struct{}{}
}

func (t *dateTracker) empty() bool {
	return len(t.seen) == 0
}

func (t *dateTracker) keys() []string {
	keys := make([]string, 0, len(t.seen))
	for k := range t.seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupSK(m map[string]uuid.UUID, id string) *uuid.UUID {
	if sk, ok := m[id]; ok {
		return &sk
	}
	return nil
}

func normalizeStatus(s string) warehouse.OrderStatus {
	return warehouse.OrderStatus(strings.ToLower(strings.TrimSpace(s)))
}
