// Package worker runs the trip export consumer: completed trips arrive over
// AMQP and leave as one summary row per trip.
package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"carrello/internal/amqp"
	"carrello/internal/core"
	"carrello/internal/export"
	"carrello/internal/log"
	"carrello/internal/storage"
)

// ExportWorker loads a completed trip, recomputes its totals against the
// current catalog and appends one summary row to the configured writer.
type ExportWorker struct {
	storage    *storage.Repository
	writer     export.TripWriter
	amqpClient *amqp.Client
	logger     *log.Logger
}

func NewExportWorker(storage *storage.Repository, writer export.TripWriter, amqpClient *amqp.Client, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExportWorker{
		storage:    storage,
		writer:     writer,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentWorker),
	}
}

// Run consumes export messages until ctx is cancelled.
func (w *ExportWorker) Run(ctx context.Context) error {
	return w.amqpClient.ConsumeTripExports(ctx, func(msg *amqp.TripExportMessage) error {
		return w.Handle(ctx, msg)
	})
}

// Handle exports one trip. A failure requeues the message, so the work here
// must stay idempotent: recomputing totals and appending the same summary
// twice only costs a duplicate row, never corrupts state.
func (w *ExportWorker) Handle(ctx context.Context, msg *amqp.TripExportMessage) error {
	tripID, err := uuid.Parse(msg.TripID)
	if err != nil {
		return fmt.Errorf("parse trip ID %q: %w", msg.TripID, err)
	}

	summary, err := w.Summarize(ctx, tripID)
	if err != nil {
		return err
	}

	rowRef, err := w.writer.Append(ctx, summary)
	if err != nil {
		return fmt.Errorf("append summary: %w", err)
	}

	w.logger.InfoContext(ctx, "Exported trip",
		log.FieldTripID, tripID.String(),
		"row", rowRef,
		"total", summary.Total.StringFixed(2))
	return nil
}

// Summarize builds the export row for a trip from its current lines.
func (w *ExportWorker) Summarize(ctx context.Context, tripID uuid.UUID) (export.TripSummary, error) {
	trip, err := w.storage.GetTrip(ctx, tripID)
	if err != nil {
		return export.TripSummary{}, fmt.Errorf("load trip: %w", err)
	}
	store, err := w.storage.GetStore(ctx, trip.StoreID)
	if err != nil {
		return export.TripSummary{}, fmt.Errorf("load store: %w", err)
	}
	lines, err := w.storage.TripLines(ctx, tripID)
	if err != nil {
		return export.TripSummary{}, fmt.Errorf("load trip lines: %w", err)
	}

	return export.TripSummary{
		TripID:    trip.ID.String(),
		Date:      trip.Date,
		StoreName: store.Name,
		ItemCount: len(lines),
		Subtotal:  core.TripSubtotal(lines),
		Tax:       core.TripTax(lines),
		Total:     core.TripTotal(lines),
	}, nil
}
