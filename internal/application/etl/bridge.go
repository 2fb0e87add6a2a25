package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/source"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OverrideKey addresses a manual bridge override.
type OverrideKey struct {
	Channel         shared.Channel
	SourceProductID string
}

// ResolverConfig is the injected matching policy for the bridge resolver.
type ResolverConfig struct {
	// Overrides maps (channel, source product id) to a master business code.
	// An override pointing at an unregistered code falls through to SKU
	// matching instead of failing.
	Overrides map[OverrideKey]string

	// Prefixes maps a channel to the SKU prefix stripped before suffix
	// matching, e.g. "lazada" -> "LAZ-". Channels without an explicit prefix
	// fall back to the suffix after the last dash.
	Prefixes map[shared.Channel]string
}

// BridgeResolver matches channel product records to master catalog identity.
//
// Resolution order per product, first match wins:
//  1. manual override to a registered master code
//  2. exact SKU match against a master code
//  3. SKU suffix match after stripping the channel prefix
//
// Products that match nothing are dropped. That is the expected steady
// state for unmapped or new listings, not an error.
type BridgeResolver struct {
	cfg ResolverConfig
	log *zap.Logger
}

// NewBridgeResolver creates a new BridgeResolver
func NewBridgeResolver(cfg ResolverConfig, log *zap.Logger) *BridgeResolver {
	return &BridgeResolver{cfg: cfg, log: log}
}

// Resolve produces bridge entries for every resolvable product of a
// channel. It has no side effects; persisting the entries is the caller's
// responsibility.
func (r *BridgeResolver) Resolve(ch shared.Channel, products []source.Product, masterByCode map[string]uuid.UUID) []warehouse.BridgeEntry {
	entries := make([]warehouse.BridgeEntry, 0, len(products))
	skipped := 0
	for _, p := range products {
		sk, ok := r.resolveOne(ch, p, masterByCode)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, warehouse.BridgeEntry{
			ProductSK:       sk,
			SourceChannel:   ch,
			SourceProductID: p.ProductID,
			SourceSKU:       p.SKU,
			SourceName:      p.Name,
			CostNative:      p.Cost,
			PriceNative:     p.Price,
			CurrencyNative:  p.Currency,
			UpdatedAt:       p.UpdatedAt,
		})
	}
	if skipped > 0 {
		r.log.Debug("unresolvable products dropped",
			zap.String("channel", ch.String()),
			zap.Int("skipped", skipped),
		)
	}
	return entries
}

func (r *BridgeResolver) resolveOne(ch shared.Channel, p source.Product, masterByCode map[string]uuid.UUID) (uuid.UUID, bool) {
	if code, ok := r.cfg.Overrides[OverrideKey{Channel: ch, SourceProductID: p.ProductID}]; ok {
		if sk, ok := masterByCode[code]; ok {
			return sk, true
		}
		// Dangling override: fall through to SKU matching.
	}

	sku := strings.TrimSpace(p.SKU)
	if sku == "" {
		return uuid.Nil, false
	}
	if sk, ok := masterByCode[sku]; ok {
		return sk, true
	}

	if suffix := r.stripPrefix(ch, sku); suffix != "" {
		if sk, ok := masterByCode[suffix]; ok {
			return sk, true
		}
	}
	return uuid.Nil, false
}

// stripPrefix returns the SKU suffix used for the third matching rule, or
// empty when the SKU has no strippable prefix.
func (r *BridgeResolver) stripPrefix(ch shared.Channel, sku string) string {
	if prefix, ok := r.cfg.Prefixes[ch]; ok && prefix != "" {
		if strings.HasPrefix(sku, prefix) {
			return sku[len(prefix):]
		}
		return ""
	}
	if i := strings.LastIndex(sku, "-"); i >= 0 {
		return sku[i+1:]
	}
	return ""
}

// BridgeLoader resolves and persists the bridge for each channel.
type BridgeLoader struct {
	reader   source.Reader
	products warehouse.ProductRepository
	bridge   warehouse.BridgeRepository
	resolver *BridgeResolver
	log      *zap.Logger
}

// NewBridgeLoader creates a new BridgeLoader
func NewBridgeLoader(
	reader source.Reader,
	products warehouse.ProductRepository,
	bridge warehouse.BridgeRepository,
	resolver *BridgeResolver,
	log *zap.Logger,
) *BridgeLoader {
	return &BridgeLoader{
		reader:   reader,
		products: products,
		bridge:   bridge,
		resolver: resolver,
		log:      log,
	}
}

// LoadChannel resolves one channel's product list against the master
// catalog and upserts the resulting entries. A channel with zero products
// is a no-op.
func (l *BridgeLoader) LoadChannel(ctx context.Context, ch shared.Channel) error {
	products, err := l.reader.Products(ctx, ch)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	masterByCode, err := l.products.SKByCode(ctx)
	if err != nil {
		return err
	}

	entries := l.resolver.Resolve(ch, products, masterByCode)
	if err := l.bridge.UpsertAll(ctx, entries); err != nil {
		return err
	}
	l.log.Info("bridge updated",
		zap.String("channel", ch.String()),
		zap.Int("source_products", len(products)),
		zap.Int("mapped", len(entries)),
	)
	return nil
}

// LoadAll resolves the bridge for every channel in load order.
func (l *BridgeLoader) LoadAll(ctx context.Context) error {
	for _, ch := range shared.AllChannels() {
		if err := l.LoadChannel(ctx, ch); err != nil {
			return fmt.Errorf("bridging channel %s: %w", ch, err)
		}
	}
	return nil
}

// LoadOverridesCSV reads manual bridge overrides from a CSV file with the
// header channel,source_product_id,master_product_code.
func LoadOverridesCSV(path string) (map[OverrideKey]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening overrides file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading overrides header: %w", err)
	}
	col := indexColumns(header)
	for _, required := range []string{"channel", "source_product_id", "master_product_code"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("overrides file is missing column %q", required)
		}
	}

	overrides := make(map[OverrideKey]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading overrides row: %w", err)
		}
		ch := shared.Channel(field(record, col, "channel"))
		if !ch.IsValid() {
			return nil, fmt.Errorf("overrides row: unknown channel %q", ch)
		}
		overrides[OverrideKey{Channel: ch, SourceProductID: field(record, col, "source_product_id")}] =
			field(record, col, "master_product_code")
	}
	return overrides, nil
}
