package etl

import (
	"context"
	"fmt"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/ecomdw/warehouse/internal/domain/source"
	"github.com/ecomdw/warehouse/internal/domain/warehouse"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RefundLoader loads refund facts for the marketplace channels. The
// point-of-sale system does not produce refund records.
type RefundLoader struct {
	reader   source.Reader
	channels warehouse.ChannelRepository
	orders   warehouse.OrderRepository
	refunds  warehouse.RefundRepository
	calendar warehouse.CalendarRepository
	fx       warehouse.FxRateRepository
	log      *zap.Logger
}

// NewRefundLoader creates a new RefundLoader
func NewRefundLoader(
	reader source.Reader,
	channels warehouse.ChannelRepository,
	orders warehouse.OrderRepository,
	refunds warehouse.RefundRepository,
	calendar warehouse.CalendarRepository,
	fx warehouse.FxRateRepository,
	log *zap.Logger,
) *RefundLoader {
	return &RefundLoader{
		reader:   reader,
		channels: channels,
		orders:   orders,
		refunds:  refunds,
		calendar: calendar,
		fx:       fx,
		log:      log,
	}
}

// LoadChannel loads one channel's refunds. Only cancelled or refunded parent
// orders produce refund rows; refunds whose parent was never loaded or has
// not reached such a status are skipped, not errored. Item-level product
// attribution is absent in the raw feeds, so the product key starts null and
// coalesces in later if a source ever supplies it.
func (l *RefundLoader) LoadChannel(ctx context.Context, ch shared.Channel) error {
	raw, err := l.reader.Refunds(ctx, ch)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	channelID, err := l.channels.IDByName(ctx, ch)
	if err != nil {
		return err
	}
	orderSKs, err := l.orders.RefundEligible(ctx, channelID)
	if err != nil {
		return err
	}

	refunds := make([]*warehouse.Refund, 0, len(raw))
	dates := newDateTracker()
	skipped := 0
	for _, r := range raw {
		orderSK, ok := orderSKs[r.OrderID]
		if !ok {
			skipped++
			continue
		}
		dates.observe(r.ProcessedAt)
		refunds = append(refunds, &warehouse.Refund{
			SK:           uuid.New(),
			RefundID:     r.RefundID,
			OrderSK:      orderSK,
			AmountNative: r.Amount,
			Reason:       r.Reason,
			ProcessedTS:  r.ProcessedAt,
		})
	}

	if err := l.refunds.UpsertAll(ctx, refunds); err != nil {
		return err
	}
	if !dates.empty() {
		if err := l.calendar.EnsureRange(ctx, dates.min, dates.max); err != nil {
			return err
		}
		if err := l.fx.EnsurePassthrough(ctx, dates.keys()); err != nil {
			return err
		}
	}
	l.log.Info("refunds loaded",
		zap.String("channel", ch.String()),
		zap.Int("count", len(refunds)),
		zap.Int("skipped", skipped),
	)
	return nil
}

// LoadAll loads refunds for every marketplace channel.
func (l *RefundLoader) LoadAll(ctx context.Context) error {
	for _, ch := range shared.MarketplaceChannels() {
		if err := l.LoadChannel(ctx, ch); err != nil {
			return fmt.Errorf("loading %s refunds: %w", ch, err)
		}
	}
	return nil
}
