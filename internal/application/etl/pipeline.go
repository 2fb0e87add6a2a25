package etl

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunOptions carries the operator-supplied inputs for one pipeline run.
type RunOptions struct {
	Seed      []SeedEntry
	Overrides map[OverrideKey]string
	Prefixes  map[shared.Channel]string
	Window    Window
}

// Pipeline runs the full batch: seed, dimensions, bridge, facts, refunds,
// and the inventory recompute, in that order, inside one transaction. A
// failure at any stage rolls back the whole run, so a partial batch never
// becomes visible.
type Pipeline struct {
	db  *persistence.Database
	log *zap.Logger
}

// NewPipeline creates a new Pipeline
func NewPipeline(db *persistence.Database, log *zap.Logger) *Pipeline {
	return &Pipeline{db: db, log: log}
}

// Run executes the batch.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		repos := persistence.NewRepositories(tx)

		seeder := NewSeeder(repos.Products, p.log)
		if err := seeder.Seed(ctx, opts.Seed); err != nil {
			return fmt.Errorf("seeding master catalog: %w", err)
		}

		dims := NewDimensionLoader(repos.Source, repos.Channels, repos.Stores, repos.Customers, repos.Campaigns, p.log)
		if err := dims.LoadStores(ctx); err != nil {
			return fmt.Errorf("loading stores: %w", err)
		}
		if err := dims.LoadAllCustomers(ctx); err != nil {
			return err
		}
		if err := dims.LoadCampaigns(ctx); err != nil {
			return fmt.Errorf("loading campaigns: %w", err)
		}

		resolver := NewBridgeResolver(ResolverConfig{
			Overrides: opts.Overrides,
			Prefixes:  opts.Prefixes,
		}, p.log)
		bridge := NewBridgeLoader(repos.Source, repos.Products, repos.Bridge, resolver, p.log)
		if err := bridge.LoadAll(ctx); err != nil {
			return err
		}

		facts := NewFactLoader(
			repos.Source, repos.Channels, repos.Customers, repos.Stores,
			repos.Orders, repos.OrderItems, repos.Calendar, repos.FxRates,
			repos.Bridge, p.log,
		)
		for _, ch := range shared.MarketplaceChannels() {
			if err := facts.LoadMarketplace(ctx, ch); err != nil {
				return fmt.Errorf("loading %s facts: %w", ch, err)
			}
		}
		if err := facts.LoadPOS(ctx); err != nil {
			return fmt.Errorf("loading pos facts: %w", err)
		}

		refunds := NewRefundLoader(repos.Source, repos.Channels, repos.Orders, repos.Refunds, repos.Calendar, repos.FxRates, p.log)
		if err := refunds.LoadAll(ctx); err != nil {
			return err
		}

		recomputer := NewRecomputer(
			repos.Source, repos.Products, repos.Orders, repos.OrderItems,
			repos.Bridge, repos.Calendar, repos.FxRates, repos.Snapshots, p.log,
		)
		if err := recomputer.Recompute(ctx, opts.Window); err != nil {
			return fmt.Errorf("recomputing inventory: %w", err)
		}

		p.log.Info("pipeline run complete")
		return nil
	})
}
