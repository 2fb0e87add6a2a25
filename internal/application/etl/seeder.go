package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SeedEntry is one master catalog row supplied by the operator. The seed is
// explicit configuration passed in at call time; the engine holds no
// process-wide catalog state.
type SeedEntry struct {
	Code              string
	Name              string
	Category          string
	Brand             string
	StartingInventory decimal.Decimal
	CreatedAt         time.Time
}

// Seeder upserts the master product catalog.
type Seeder struct {
	products warehouse.ProductRepository
	log      *zap.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(products warehouse.ProductRepository, log *zap.Logger) *Seeder {
	return &Seeder{products: products, log: log}
}

// Seed upserts the given catalog entries keyed on business code. Safe to
// re-run: existing products keep their surrogate key. An empty seed is a
// successful no-op.
func (s *Seeder) Seed(ctx context.Context, entries []SeedEntry) error {
	if len(entries) == 0 {
		s.log.Info("no master products to seed")
		return nil
	}

	products := make([]*warehouse.MasterProduct, 0, len(entries))
	for _, e := range entries {
		p, err := warehouse.NewMasterProduct(e.Code, e.Name, e.Category, e.Brand, e.StartingInventory, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("seed entry %q: %w", e.Code, err)
		}
		products = append(products, p)
	}

	if err := s.products.UpsertSeed(ctx, products); err != nil {
		return err
	}
	s.log.Info("seeded master products", zap.Int("count", len(products)))
	return nil
}

// LoadSeedCSV reads seed entries from a CSV file with the header
// master_product_code,name,category,brand,starting_inventory,created_at.
// created_at may be empty; it defaults to the current time.
func LoadSeedCSV(path string) ([]SeedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading seed header: %w", err)
	}
	col := indexColumns(header)
	for _, required := range []string{"master_product_code", "name", "starting_inventory"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("seed file is missing column %q", required)
		}
	}

	var entries []SeedEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading seed row: %w", err)
		}

		inv, err := decimal.NewFromString(field(record, col, "starting_inventory"))
		if err != nil {
			return nil, fmt.Errorf("seed row %q: invalid starting_inventory: %w", field(record, col, "master_product_code"), err)
		}

		createdAt := time.Now().UTC()
		if raw := field(record, col, "created_at"); raw != "" {
			createdAt, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Errorf("seed row %q: invalid created_at: %w", field(record, col, "master_product_code"), err)
			}
		}

		entries = append(entries, SeedEntry{
			Code:              field(record, col, "master_product_code"),
			Name:              field(record, col, "name"),
			Category:          field(record, col, "category"),
			Brand:             field(record, col, "brand"),
			StartingInventory: inv,
			CreatedAt:         createdAt,
		})
	}
	return entries, nil
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
