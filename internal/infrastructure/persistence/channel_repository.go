package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormChannelRepository implements warehouse.ChannelRepository using GORM
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository creates a new GormChannelRepository
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

// IDByName returns the channel dimension id for a channel name. A missing
// row indicates a setup defect, not a data defect, and is surfaced as
// shared.ErrChannelNotRegistered.
func (r *GormChannelRepository) IDByName(ctx context.Context, ch shared.Channel) (int64, error) {
	var row warehouse.Channel
	if err := r.db.WithContext(ctx).Where("name = ?", string(ch)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("channel %q: %w", ch, shared.ErrChannelNotRegistered)
		}
		return 0, fmt.Errorf("looking up channel %q: %w", ch, err)
	}
	return row.ID, nil
}
