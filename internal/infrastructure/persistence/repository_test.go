package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductRepository_UpsertSeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("reseeding keeps the surrogate key", func(t *testing.T) {
		first, err := warehouse.NewMasterProduct("WIDGET-01", "Widget", "Gadgets", "Acme", dec("100"), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, repo.UpsertSeed(ctx, []*warehouse.MasterProduct{first}))

		second, err := warehouse.NewMasterProduct("WIDGET-01", "Widget v2", "Gadgets", "Acme", dec("120"), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, repo.UpsertSeed(ctx, []*warehouse.MasterProduct{second}))

		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, first.SK, products[0].SK)
		assert.Equal(t, "Widget v2", products[0].Name)
		assert.True(t, products[0].StartingInventory.Equal(dec("120")))
	})

	t.Run("empty seed is a no-op", func(t *testing.T) {
		require.NoError(t, repo.UpsertSeed(ctx, nil))
	})
}

func TestChannelRepository_IDByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormChannelRepository(db)
	ctx := context.Background()

	t.Run("resolves registered channels", func(t *testing.T) {
		for _, ch := range shared.AllChannels() {
			id, err := repo.IDByName(ctx, ch)
			require.NoError(t, err)
			assert.Positive(t, id)
		}
	})

	t.Run("unregistered channel is a setup defect", func(t *testing.T) {
		_, err := repo.IDByName(ctx, shared.Channel("amazon"))
		assert.ErrorIs(t, err, shared.ErrChannelNotRegistered)
	})
}

func TestCustomerRepository_UpsertAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	earlier := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("region coalesces and first_seen keeps the earlier timestamp", func(t *testing.T) {
		first := warehouse.NewCustomer("C1", shared.ChannelLazada, "Selangor", later)
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Customer{first}))

		// Second load has no region but an earlier first-seen timestamp.
		second := warehouse.NewCustomer("C1", shared.ChannelLazada, "", earlier)
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Customer{second}))

		var rows []warehouse.Customer
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, first.SK, rows[0].SK)
		require.NotNil(t, rows[0].Region)
		assert.Equal(t, "Selangor", *rows[0].Region)
		assert.True(t, rows[0].FirstSeenAt.Equal(earlier), rows[0].FirstSeenAt)
	})

	t.Run("later first_seen never overwrites", func(t *testing.T) {
		third := warehouse.NewCustomer("C1", shared.ChannelLazada, "Johor", later.AddDate(0, 1, 0))
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Customer{third}))

		var rows []warehouse.Customer
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].FirstSeenAt.Equal(earlier), rows[0].FirstSeenAt)
		// Non-empty region from the latest load does land.
		assert.Equal(t, "Johor", *rows[0].Region)
	})

	t.Run("same id on another channel is a separate row", func(t *testing.T) {
		other := warehouse.NewCustomer("C1", shared.ChannelShopee, "Penang", earlier)
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Customer{other}))

		lazada, err := repo.SKBySourceID(ctx, shared.ChannelLazada)
		require.NoError(t, err)
		shopee, err := repo.SKBySourceID(ctx, shared.ChannelShopee)
		require.NoError(t, err)
		assert.NotEqual(t, lazada["C1"], shopee["C1"])
	})
}

func TestCalendarRepository_EnsureRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCalendarRepository(db)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.EnsureRange(ctx, start, end))

	var count int64
	require.NoError(t, db.Model(&warehouse.CalendarDate{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)

	// Overlapping range only adds the missing days.
	require.NoError(t, repo.EnsureRange(ctx, start, end.AddDate(0, 0, 2)))
	require.NoError(t, db.Model(&warehouse.CalendarDate{}).Count(&count).Error)
	assert.EqualValues(t, 7, count)
}

func TestFxRateRepository_EnsurePassthrough(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFxRateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsurePassthrough(ctx, []string{"2025-03-01", "2025-03-02"}))
	require.NoError(t, repo.EnsurePassthrough(ctx, []string{"2025-03-02", "2025-03-03"}))

	var rows []warehouse.FxRate
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, "MYR", r.Currency)
		assert.True(t, r.ToMYR.Equal(decimal.NewFromInt(1)))
	}
}

func TestBridgeRepository_UpsertAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBridgeRepository(db)
	ctx := context.Background()

	skA, skB := uuid.New(), uuid.New()
	entry := warehouse.BridgeEntry{
		ProductSK:       skA,
		SourceChannel:   shared.ChannelLazada,
		SourceProductID: "L1",
		SourceSKU:       "LAZ-WIDGET-01",
		PriceNative:     dec("19.90"),
		CurrencyNative:  "MYR",
	}

	t.Run("re-resolving overwrites without duplicating", func(t *testing.T) {
		require.NoError(t, repo.UpsertAll(ctx, []warehouse.BridgeEntry{entry}))

		entry.ProductSK = skB
		entry.CostNative = decimal.NewNullDecimal(dec("8.00"))
		require.NoError(t, repo.UpsertAll(ctx, []warehouse.BridgeEntry{entry}))

		byID, err := repo.ByChannel(ctx, shared.ChannelLazada)
		require.NoError(t, err)
		require.Len(t, byID, 1)
		assert.Equal(t, skB, byID["L1"].ProductSK)
		cost, known := byID["L1"].CostEach()
		assert.True(t, known)
		assert.True(t, cost.Equal(dec("8.00")))
	})

	t.Run("same source id on another channel is distinct", func(t *testing.T) {
		other := entry
		other.SourceChannel = shared.ChannelShopee
		other.ProductSK = skA
		require.NoError(t, repo.UpsertAll(ctx, []warehouse.BridgeEntry{other}))

		shopee, err := repo.ByChannel(ctx, shared.ChannelShopee)
		require.NoError(t, err)
		assert.Equal(t, skA, shopee["L1"].ProductSK)
	})
}

func TestOrderRepository_UpsertAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	lazadaID := channelID(t, db, shared.ChannelLazada)

	customerSK := uuid.New()
	ts := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	newOrder := func(customer *uuid.UUID, status warehouse.OrderStatus, gross string) *warehouse.Order {
		return &warehouse.Order{
			SK:             uuid.New(),
			OrderID:        "ORD-1",
			ChannelID:      lazadaID,
			CustomerSK:     customer,
			OrderTS:        ts,
			Status:         status,
			CurrencyNative: "MYR",
			TotalGross:     dec(gross),
			TotalNet:       dec(gross),
		}
	}

	t.Run("reload keeps surrogate key and coalesces customer", func(t *testing.T) {
		first := newOrder(&customerSK, warehouse.OrderStatusPaid, "100.00")
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Order{first}))

		// Second load failed to resolve the customer but has a newer status.
		second := newOrder(nil, warehouse.OrderStatusCompleted, "100.00")
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Order{second}))

		var rows []warehouse.Order
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, first.SK, rows[0].SK)
		assert.Equal(t, warehouse.OrderStatusCompleted, rows[0].Status)
		require.NotNil(t, rows[0].CustomerSK)
		assert.Equal(t, customerSK, *rows[0].CustomerSK)
	})

	t.Run("sk map reflects committed rows", func(t *testing.T) {
		m, err := repo.SKByOrderID(ctx, lazadaID)
		require.NoError(t, err)
		require.Len(t, m, 1)
		assert.NotEqual(t, uuid.Nil, m["ORD-1"])
	})

	t.Run("min order date and day buckets", func(t *testing.T) {
		earlier := newOrder(nil, warehouse.OrderStatusPaid, "50.00")
		earlier.OrderID = "ORD-0"
		earlier.OrderTS = time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Order{earlier}))

		minDate, ok, err := repo.MinOrderDate(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "2025-03-08", shared.DateKeyOf(minDate))

		buckets, err := repo.DayBuckets(ctx, "2025-03-08", "2025-03-09")
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, "2025-03-08", buckets[earlier.SK])
	})

	t.Run("refund eligibility follows status", func(t *testing.T) {
		cancelled := newOrder(nil, warehouse.OrderStatusCancelled, "25.00")
		cancelled.OrderID = "ORD-2"
		require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Order{cancelled}))

		// ORD-0 (paid) and ORD-1 (completed) must not appear.
		eligible, err := repo.RefundEligible(ctx, lazadaID)
		require.NoError(t, err)
		require.Len(t, eligible, 1)
		assert.Equal(t, cancelled.SK, eligible["ORD-2"])
	})

	t.Run("no orders reports absence", func(t *testing.T) {
		empty := setupTestDB(t)
		_, ok, err := NewGormOrderRepository(empty).MinOrderDate(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestOrderItemRepository_UpsertAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderItemRepository(db)
	ctx := context.Background()

	orderSK, productSK := uuid.New(), uuid.New()

	first := warehouse.NewOrderItem(orderSK, productSK, dec("2"), dec("10.00"), dec("0"), dec("4.00"), true)
	require.NoError(t, repo.UpsertAll(ctx, []*warehouse.OrderItem{first}))

	// Reload fully overwrites the measures.
	second := warehouse.NewOrderItem(orderSK, productSK, dec("3"), dec("10.00"), dec("1.00"), decimal.Zero, false)
	require.NoError(t, repo.UpsertAll(ctx, []*warehouse.OrderItem{second}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Qty.Equal(dec("3")))
	assert.True(t, items[0].Revenue.Equal(dec("27.00")))
	assert.False(t, items[0].CostKnown)
}

func TestRefundRepository_UpsertAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRefundRepository(db)
	ctx := context.Background()

	orderSK := uuid.New()
	productSK := uuid.New()

	withProduct := &warehouse.Refund{
		SK: uuid.New(), RefundID: "R1", OrderSK: orderSK,
		ProductSK: &productSK, AmountNative: dec("25.00"), Reason: "damaged",
	}
	require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Refund{withProduct}))

	// A later load without item attribution must not erase it.
	without := &warehouse.Refund{
		SK: uuid.New(), RefundID: "R1", OrderSK: orderSK,
		AmountNative: dec("30.00"), Reason: "damaged, adjusted",
	}
	require.NoError(t, repo.UpsertAll(ctx, []*warehouse.Refund{without}))

	var rows []warehouse.Refund
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, withProduct.SK, rows[0].SK)
	assert.True(t, rows[0].AmountNative.Equal(dec("30.00")))
	require.NotNil(t, rows[0].ProductSK)
	assert.Equal(t, productSK, *rows[0].ProductSK)
}

func TestSnapshotRepository_DeleteWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSnapshotRepository(db)
	ctx := context.Background()

	productSK := uuid.New()
	snap := func(key, qty string) warehouse.InventorySnapshot {
		return warehouse.InventorySnapshot{DateKey: key, ProductSK: productSK, StockQty: dec(qty)}
	}

	require.NoError(t, repo.InsertAll(ctx, []warehouse.InventorySnapshot{
		snap("2025-03-01", "100"),
		snap("2025-03-02", "95"),
		snap("2025-03-03", "90"),
		snap("2025-03-04", "85"),
	}))

	// The window is inclusive on both ends.
	require.NoError(t, repo.DeleteWindow(ctx, "2025-03-02", "2025-03-03"))

	var rows []warehouse.InventorySnapshot
	require.NoError(t, db.Order("snapshot_date asc").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-01", rows[0].DateKey)
	assert.Equal(t, "2025-03-04", rows[1].DateKey)
}
