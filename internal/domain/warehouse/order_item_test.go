package warehouse

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewOrderItem(t *testing.T) {
	orderSK, productSK := uuid.New(), uuid.New()

	t.Run("computes revenue cost and margin", func(t *testing.T) {
		item := NewOrderItem(orderSK, productSK, dec("3"), dec("25.00"), dec("2.50"), dec("10.00"), true)

		assert.True(t, item.Revenue.Equal(dec("67.50")), item.Revenue)
		assert.True(t, item.Cost.Equal(dec("30.00")), item.Cost)
		assert.True(t, item.Margin.Equal(dec("37.50")), item.Margin)
		assert.True(t, item.CostKnown)
	})

	t.Run("rounds revenue and cost to two places", func(t *testing.T) {
		item := NewOrderItem(orderSK, productSK, dec("3"), dec("9.999"), dec("0"), dec("3.333"), true)

		assert.True(t, item.Revenue.Equal(dec("30.00")), item.Revenue)
		assert.True(t, item.Cost.Equal(dec("10.00")), item.Cost)
	})

	t.Run("unknown cost keeps margin equal to revenue but flags the line", func(t *testing.T) {
		item := NewOrderItem(orderSK, productSK, dec("2"), dec("50.00"), dec("0"), decimal.Zero, false)

		assert.True(t, item.Cost.IsZero())
		assert.True(t, item.Margin.Equal(item.Revenue))
		assert.False(t, item.CostKnown)
	})

	t.Run("discount applies per unit", func(t *testing.T) {
		item := NewOrderItem(orderSK, productSK, dec("4"), dec("10.00"), dec("1.00"), dec("5.00"), true)
		assert.True(t, item.Revenue.Equal(dec("36.00")), item.Revenue)
	})
}

func TestOrderHelpers(t *testing.T) {
	t.Run("refund eligibility follows status", func(t *testing.T) {
		assert.True(t, (&Order{Status: OrderStatusCancelled}).IsRefundEligible())
		assert.True(t, (&Order{Status: OrderStatusRefunded}).IsRefundEligible())
		assert.False(t, (&Order{Status: OrderStatusCompleted}).IsRefundEligible())
		assert.False(t, (&Order{Status: OrderStatusPending}).IsRefundEligible())
	})
}

func TestCostEach(t *testing.T) {
	t.Run("known cost", func(t *testing.T) {
		e := BridgeEntry{CostNative: decimal.NewNullDecimal(dec("12.34"))}
		cost, known := e.CostEach()
		assert.True(t, known)
		assert.True(t, cost.Equal(dec("12.34")))
	})

	t.Run("null cost reports unknown", func(t *testing.T) {
		e := BridgeEntry{}
		cost, known := e.CostEach()
		assert.False(t, known)
		assert.True(t, cost.IsZero())
	})
}
