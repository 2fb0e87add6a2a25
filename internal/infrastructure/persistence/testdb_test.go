package persistence

import (
	"testing"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database with the warehouse schema and the
// four channels pre-registered.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&warehouse.Channel{},
		&warehouse.MasterProduct{},
		&warehouse.Store{},
		&warehouse.Customer{},
		&warehouse.Campaign{},
		&warehouse.CalendarDate{},
		&warehouse.FxRate{},
		&warehouse.BridgeEntry{},
		&warehouse.Order{},
		&warehouse.OrderItem{},
		&warehouse.Refund{},
		&warehouse.InventorySnapshot{},
	)
	require.NoError(t, err)

	for _, ch := range shared.AllChannels() {
		require.NoError(t, db.Create(&warehouse.Channel{Name: ch}).Error)
	}
	return db
}

func channelID(t *testing.T, db *gorm.DB, ch shared.Channel) int64 {
	t.Helper()
	var row warehouse.Channel
	require.NoError(t, db.Where("name = ?", string(ch)).First(&row).Error)
	return row.ID
}
