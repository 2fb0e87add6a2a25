package persistence

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotRepository implements warehouse.SnapshotRepository using GORM
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// DeleteWindow removes every snapshot whose date key falls within
// [startKey, endKey]. Rows outside the window are untouched.
func (r *GormSnapshotRepository) DeleteWindow(ctx context.Context, startKey, endKey string) error {
	err := r.db.WithContext(ctx).
		Where("snapshot_date BETWEEN ? AND ?", startKey, endKey).
		Delete(&warehouse.InventorySnapshot{}).Error
	if err != nil {
		return fmt.Errorf("deleting snapshot window [%s, %s]: %w", startKey, endKey, err)
	}
	return nil
}

// InsertAll writes snapshot rows. The recomputer deletes the window first,
// so conflicts only occur if two runs race; last write wins in that case.
func (r *GormSnapshotRepository) InsertAll(ctx context.Context, snapshots []warehouse.InventorySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_date"}, {Name: "product_sk"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock_qty"}),
	}).Create(&snapshots).Error
	if err != nil {
		return fmt.Errorf("inserting snapshots: %w", err)
	}
	return nil
}
