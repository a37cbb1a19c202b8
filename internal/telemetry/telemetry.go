// Package telemetry emits named analytics events with coarse-bucketed
// properties. Delivery is best-effort: a failing sink never surfaces an error
// to the caller and never blocks a core operation.
package telemetry

import (
	"context"

	"github.com/shopspring/decimal"

	"carrello/internal/log"
)

// Sink delivers one signal. Implementations must be non-blocking or fast;
// errors are logged and dropped by the tracker.
type Sink interface {
	Signal(ctx context.Context, name string, properties map[string]string) error
}

// Tracker is the process-wide entry point for analytics events.
type Tracker struct {
	sink   Sink
	logger *log.Logger
}

// New creates a tracker. A nil sink disables delivery but keeps all Track
// methods safe to call.
func New(sink Sink, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Tracker{sink: sink, logger: logger.WithComponent(log.ComponentTelemetry)}
}

func (t *Tracker) signal(ctx context.Context, name string, properties map[string]string) {
	if t == nil || t.sink == nil {
		return
	}
	if err := t.sink.Signal(ctx, name, properties); err != nil {
		// Telemetry must never affect correctness: log and move on.
		t.logger.Warn("Dropping telemetry signal", log.FieldEvent, name, log.FieldError, err)
	}
}

// --- items ---

func (t *Tracker) TrackItemCreated(ctx context.Context, price decimal.Decimal, hasCategory bool) {
	t.signal(ctx, "item-created", map[string]string{
		"price_range":  PriceRange(price),
		"has_category": yesNo(hasCategory),
	})
}

func (t *Tracker) TrackItemEdited(ctx context.Context) {
	t.signal(ctx, "item-edited", nil)
}

func (t *Tracker) TrackItemDeleted(ctx context.Context) {
	t.signal(ctx, "item-deleted", nil)
}

// --- shopping items ---

func (t *Tracker) TrackShoppingItemAdded(ctx context.Context, price decimal.Decimal, fromExisting bool) {
	source := "new"
	if fromExisting {
		source = "existing"
	}
	t.signal(ctx, "shopping-item-added", map[string]string{
		"price_range": PriceRange(price),
		"source":      source,
	})
}

func (t *Tracker) TrackShoppingItemEdited(ctx context.Context) {
	t.signal(ctx, "shopping-item-edited", nil)
}

func (t *Tracker) TrackShoppingItemDeleted(ctx context.Context) {
	t.signal(ctx, "shopping-item-deleted", nil)
}

// --- shopping trips ---

func (t *Tracker) TrackShoppingTripCreated(ctx context.Context, hasStore bool, itemCount int) {
	t.signal(ctx, "shopping-trip-created", map[string]string{
		"has_store":  yesNo(hasStore),
		"item_count": itoa(itemCount),
	})
}

func (t *Tracker) TrackShoppingTripCompleted(ctx context.Context, hasStore bool, itemCount int, total decimal.Decimal) {
	t.signal(ctx, "shopping-trip-completed", map[string]string{
		"has_store":   yesNo(hasStore),
		"item_count":  itoa(itemCount),
		"total_range": PriceRange(total),
	})
}

// --- catalog ---

func (t *Tracker) TrackCategoryCreated(ctx context.Context) {
	t.signal(ctx, "category-created", nil)
}

func (t *Tracker) TrackCategoryEdited(ctx context.Context) {
	t.signal(ctx, "category-edited", nil)
}

func (t *Tracker) TrackCategoryDeleted(ctx context.Context) {
	t.signal(ctx, "category-deleted", nil)
}

func (t *Tracker) TrackStoreCreated(ctx context.Context) {
	t.signal(ctx, "store-created", nil)
}

func (t *Tracker) TrackStoreEdited(ctx context.Context) {
	t.signal(ctx, "store-edited", nil)
}

func (t *Tracker) TrackStoreDeleted(ctx context.Context) {
	t.signal(ctx, "store-deleted", nil)
}

// PriceRange converts a price to a categorical bucket so raw amounts never
// leave the process.
func PriceRange(price decimal.Decimal) string {
	switch {
	case price.LessThan(decimal.NewFromInt(1)):
		return "under_1"
	case price.LessThan(decimal.NewFromInt(5)):
		return "1_to_5"
	case price.LessThan(decimal.NewFromInt(10)):
		return "5_to_10"
	case price.LessThan(decimal.NewFromInt(20)):
		return "10_to_20"
	case price.LessThan(decimal.NewFromInt(50)):
		return "20_to_50"
	case price.LessThan(decimal.NewFromInt(100)):
		return "50_to_100"
	default:
		return "over_100"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
