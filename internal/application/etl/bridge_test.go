package etl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/source"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBridgeResolver(t *testing.T) {
	skWidget := uuid.New()
	skGadget := uuid.New()
	master := map[string]uuid.UUID{
		"WIDGET-01": skWidget,
		"GADGET-02": skGadget,
	}

	product := func(id, sku string) source.Product {
		return source.Product{
			ProductID: id,
			SKU:       sku,
			Name:      "Item " + id,
			Price:     decimal.RequireFromString("19.90"),
			Currency:  "MYR",
			UpdatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	resolve := func(cfg ResolverConfig, ch shared.Channel, p source.Product) (uuid.UUID, bool) {
		r := NewBridgeResolver(cfg, zap.NewNop())
		entries := r.Resolve(ch, []source.Product{p}, master)
		if len(entries) == 0 {
			return uuid.Nil, false
		}
		return entries[0].ProductSK, true
	}

	t.Run("exact sku match", func(t *testing.T) {
		sk, ok := resolve(ResolverConfig{}, shared.ChannelLazada, product("L1", "WIDGET-01"))
		require.True(t, ok)
		assert.Equal(t, skWidget, sk)
	})

	t.Run("suffix match after last dash", func(t *testing.T) {
		// No exact match for the channel-prefixed SKU; "01" is not a code
		// either, but the full suffix after the channel tag is.
		p := product("L2", "LAZ-WIDGET-01")
		_, ok := resolve(ResolverConfig{}, shared.ChannelLazada, p)
		// Last-dash fallback yields "01", which is not a master code.
		assert.False(t, ok)

		// With the channel prefix configured the whole code survives.
		cfg := ResolverConfig{Prefixes: map[shared.Channel]string{shared.ChannelLazada: "LAZ-"}}
		sk, ok := resolve(cfg, shared.ChannelLazada, p)
		require.True(t, ok)
		assert.Equal(t, skWidget, sk)
	})

	t.Run("last dash fallback without configured prefix", func(t *testing.T) {
		// The fallback keeps only the part after the last dash, so codes that
		// themselves contain dashes never match this way.
		_, ok := resolve(ResolverConfig{}, shared.ChannelShopee, product("S1", "SHP-GADGET-02"))
		assert.False(t, ok)

		// A dashless master code would match: register one to prove the rule.
		master["PLAIN"] = skWidget
		defer delete(master, "PLAIN")
		sk, ok := resolve(ResolverConfig{}, shared.ChannelShopee, product("S2", "SHP-PLAIN"))
		require.True(t, ok)
		assert.Equal(t, skWidget, sk)
	})

	t.Run("override wins over sku matching", func(t *testing.T) {
		cfg := ResolverConfig{Overrides: map[OverrideKey]string{
			{Channel: shared.ChannelTiktok, SourceProductID: "T1"}: "GADGET-02",
		}}
		sk, ok := resolve(cfg, shared.ChannelTiktok, product("T1", "WIDGET-01"))
		require.True(t, ok)
		assert.Equal(t, skGadget, sk)
	})

	t.Run("dangling override falls through to sku match", func(t *testing.T) {
		cfg := ResolverConfig{Overrides: map[OverrideKey]string{
			{Channel: shared.ChannelTiktok, SourceProductID: "T2"}: "DOES-NOT-EXIST",
		}}
		sk, ok := resolve(cfg, shared.ChannelTiktok, product("T2", "WIDGET-01"))
		require.True(t, ok)
		assert.Equal(t, skWidget, sk)
	})

	t.Run("override is channel scoped", func(t *testing.T) {
		cfg := ResolverConfig{Overrides: map[OverrideKey]string{
			{Channel: shared.ChannelLazada, SourceProductID: "X1"}: "GADGET-02",
		}}
		_, ok := resolve(cfg, shared.ChannelShopee, product("X1", "NOPE"))
		assert.False(t, ok)
	})

	t.Run("unresolvable products are dropped silently", func(t *testing.T) {
		r := NewBridgeResolver(ResolverConfig{}, zap.NewNop())
		entries := r.Resolve(shared.ChannelLazada, []source.Product{
			product("L1", "WIDGET-01"),
			product("L9", "UNKNOWN-SKU-X"),
			product("L10", ""),
		}, master)
		require.Len(t, entries, 1)
		assert.Equal(t, "L1", entries[0].SourceProductID)
	})

	t.Run("entry carries the source snapshot", func(t *testing.T) {
		r := NewBridgeResolver(ResolverConfig{}, zap.NewNop())
		p := product("L1", "WIDGET-01")
		p.Cost = decimal.NewNullDecimal(decimal.RequireFromString("7.50"))
		entries := r.Resolve(shared.ChannelLazada, []source.Product{p}, master)
		require.Len(t, entries, 1)

		e := entries[0]
		assert.Equal(t, shared.ChannelLazada, e.SourceChannel)
		assert.Equal(t, "WIDGET-01", e.SourceSKU)
		assert.Equal(t, "MYR", e.CurrencyNative)
		cost, known := e.CostEach()
		assert.True(t, known)
		assert.True(t, cost.Equal(decimal.RequireFromString("7.50")))
	})
}

func TestLoadOverridesCSV(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "overrides.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("parses rows", func(t *testing.T) {
		path := writeFile(t, "channel,source_product_id,master_product_code\nlazada,L1,WIDGET-01\npos,P7,GADGET-02\n")
		overrides, err := LoadOverridesCSV(path)
		require.NoError(t, err)
		assert.Len(t, overrides, 2)
		assert.Equal(t, "WIDGET-01", overrides[OverrideKey{Channel: shared.ChannelLazada, SourceProductID: "L1"}])
		assert.Equal(t, "GADGET-02", overrides[OverrideKey{Channel: shared.ChannelPOS, SourceProductID: "P7"}])
	})

	t.Run("rejects unknown channel", func(t *testing.T) {
		path := writeFile(t, "channel,source_product_id,master_product_code\namazon,A1,WIDGET-01\n")
		_, err := LoadOverridesCSV(path)
		assert.Error(t, err)
	})

	t.Run("rejects missing columns", func(t *testing.T) {
		path := writeFile(t, "channel,product\nlazada,L1\n")
		_, err := LoadOverridesCSV(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOverridesCSV(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}
