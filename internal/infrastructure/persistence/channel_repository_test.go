package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// These tests run the repository against the postgres dialector so the
// generated SQL is the production shape, not the in-memory test shape.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestChannelRepository_Postgres(t *testing.T) {
	t.Run("returns the channel id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormChannelRepository(db)

		mock.ExpectQuery(`SELECT .* FROM "wh_dim_channel"`).
			WillReturnRows(sqlmock.NewRows([]string{"channel_id", "name"}).AddRow(int64(3), "tiktok"))

		id, err := repo.IDByName(context.Background(), shared.ChannelTiktok)
		require.NoError(t, err)
		assert.EqualValues(t, 3, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to the registration error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormChannelRepository(db)

		mock.ExpectQuery(`SELECT .* FROM "wh_dim_channel"`).
			WillReturnRows(sqlmock.NewRows([]string{"channel_id", "name"}))

		_, err := repo.IDByName(context.Background(), shared.Channel("amazon"))
		assert.ErrorIs(t, err, shared.ErrChannelNotRegistered)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
