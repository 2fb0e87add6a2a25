package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add wh fact refunds", "add_wh_fact_refunds"},
		{"Add-Fx-Rates", "add_fx_rates"},
		{"SRC_POS_RECEIPTS", "src_pos_receipts"},
		{"create__source__tables", "create_source_tables"},
		{"widen sku to 200", "widen_sku_to_200"},
		{"  drop legacy  ", "drop_legacy"},
		{"index!@#orders", "indexorders"},
		{"trailing-", "trailing"},
		{"-leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add wh fact refunds", "Refund fact keyed by refund id")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// Version prefix is YYYYMMDDHHMMSS so files sort in apply order.
	assert.Len(t, mf.Version, 14)
	assert.Equal(t, mf.Version+"_add_wh_fact_refunds.up.sql", filepath.Base(mf.UpPath))
	assert.Equal(t, mf.Version+"_add_wh_fact_refunds.down.sql", filepath.Base(mf.DownPath))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- Migration: add wh fact refunds\n"))
	assert.Contains(t, string(up), "-- Description: Refund fact keyed by refund id")
	assert.Contains(t, string(up), "src_<channel>_*")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "-- Migration: add wh fact refunds (Rollback)")
	assert.Contains(t, string(down), "Rollback for Refund fact keyed by refund id")
	assert.Contains(t, string(down), "reverse dependency order")
}

func TestCreateMigration_DefaultsDescription(t *testing.T) {
	mf, err := CreateMigration(t.TempDir(), "Widen-SKU-Column", "")
	require.NoError(t, err)
	assert.Equal(t, "widen sku column", mf.Description)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Description: widen sku column")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "deploy", "migrations")

	mf, err := CreateMigration(nested, "create source tables", "staging tables")
	require.NoError(t, err)
	require.NotNil(t, mf)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"20250901000001_create_source_tables.up.sql",
		"20250901000001_create_source_tables.down.sql",
		"20250901000002_create_warehouse_tables.up.sql",
		"20250901000002_create_warehouse_tables.down.sql",
		"20250901000003_add_fx_rates.up.sql",
		"20250901000003_add_fx_rates.down.sql",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- placeholder"), 0644))
	}

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20250901000001_create_source_tables",
		"20250901000002_create_warehouse_tables",
		"20250901000003_add_fx_rates",
	}, migrations)
}

func TestListMigrations_MissingOrEmptyDirectory(t *testing.T) {
	migrations, err := ListMigrations(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, migrations)

	migrations, err = ListMigrations(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestListMigrations_IgnoresStrayEntries(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250901000001_init.up.sql"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250901000001_init.down.sql"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20250901000001_init"}, migrations)
}
