package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrello/internal/amqp"
	"carrello/internal/core"
	"carrello/internal/log"
	"carrello/internal/storage"
	"carrello/internal/telemetry"
)

// TripTotals is a fully computed trip: grand totals plus the per-category
// breakdown, all recomputed from current catalog data.
type TripTotals struct {
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
	Breakdown []core.CategoryTotal
}

// TripService manages shopping trips and their line items.
type TripService struct {
	storage    *storage.Repository
	tracker    *telemetry.Tracker
	amqpClient *amqp.Client
	logger     *log.Logger
}

// NewTripService creates a trip service. The AMQP client may be nil, in which
// case completed trips are not enqueued for export.
func NewTripService(storage *storage.Repository, tracker *telemetry.Tracker, amqpClient *amqp.Client, logger *log.Logger) *TripService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &TripService{
		storage:    storage,
		tracker:    tracker,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentTrip),
	}
}

func (s *TripService) CreateTrip(ctx context.Context, storeID uuid.UUID, date time.Time) (core.ShoppingTrip, error) {
	trip, err := core.NewShoppingTrip(storeID, date)
	if err != nil {
		return core.ShoppingTrip{}, err
	}
	if err := s.storage.CreateTrip(ctx, trip); err != nil {
		return core.ShoppingTrip{}, fmt.Errorf("create trip: %w", err)
	}
	s.tracker.TrackShoppingTripCreated(ctx, trip.StoreID != uuid.Nil, 0)
	return trip, nil
}

func (s *TripService) GetTrip(ctx context.Context, id uuid.UUID) (core.ShoppingTrip, error) {
	return s.storage.GetTrip(ctx, id)
}

func (s *TripService) ListTrips(ctx context.Context) ([]core.ShoppingTrip, error) {
	return s.storage.ListTrips(ctx)
}

// DeleteTrip removes a trip and all its line items. Catalog items survive.
func (s *TripService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return nil
}

// AddItem puts a catalog item on the trip with the given quantity. The line
// references the item; price and tax stay live until export.
func (s *TripService) AddItem(ctx context.Context, tripID, itemID uuid.UUID, quantity int, fromExisting bool) (core.ShoppingItem, error) {
	trip, err := s.storage.GetTrip(ctx, tripID)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("load trip: %w", err)
	}
	item, err := s.storage.GetItem(ctx, itemID)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("load item: %w", err)
	}

	line, err := core.NewShoppingItem(itemID, trip.StoreID, tripID, quantity)
	if err != nil {
		return core.ShoppingItem{}, err
	}
	if err := s.storage.AddShoppingItem(ctx, line); err != nil {
		return core.ShoppingItem{}, fmt.Errorf("add shopping item: %w", err)
	}
	s.tracker.TrackShoppingItemAdded(ctx, item.CurrentPrice, fromExisting)
	return line, nil
}

// UpdateQuantity changes a line's quantity. Zero and negative quantities are
// rejected; removal is explicit via RemoveItem.
func (s *TripService) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	guard := core.ShoppingItem{Quantity: 1}
	if err := guard.UpdateQuantity(quantity); err != nil {
		return err
	}
	if err := s.storage.UpdateShoppingItemQuantity(ctx, lineID, quantity); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	s.tracker.TrackShoppingItemEdited(ctx)
	return nil
}

func (s *TripService) RemoveItem(ctx context.Context, lineID uuid.UUID) error {
	if err := s.storage.DeleteShoppingItem(ctx, lineID); err != nil {
		return fmt.Errorf("remove shopping item: %w", err)
	}
	s.tracker.TrackShoppingItemDeleted(ctx)
	return nil
}

// Lines resolves the trip's line items against the current catalog.
func (s *TripService) Lines(ctx context.Context, tripID uuid.UUID) ([]core.Line, error) {
	return s.storage.TripLines(ctx, tripID)
}

// Totals recomputes the trip from scratch against current prices and rates.
func (s *TripService) Totals(ctx context.Context, tripID uuid.UUID) (TripTotals, error) {
	lines, err := s.storage.TripLines(ctx, tripID)
	if err != nil {
		return TripTotals{}, fmt.Errorf("load trip lines: %w", err)
	}
	return TripTotals{
		Subtotal:  core.TripSubtotal(lines),
		Tax:       core.TripTax(lines),
		Total:     core.TripTotal(lines),
		ItemCount: len(lines),
		Breakdown: core.CategoryBreakdown(lines),
	}, nil
}

// Complete finalizes a trip: it computes the totals, emits the completion
// signal and enqueues the trip for export. The totals are returned even when
// enqueueing fails; export delivery is best-effort.
func (s *TripService) Complete(ctx context.Context, tripID uuid.UUID) (TripTotals, error) {
	trip, err := s.storage.GetTrip(ctx, tripID)
	if err != nil {
		return TripTotals{}, fmt.Errorf("load trip: %w", err)
	}
	totals, err := s.Totals(ctx, tripID)
	if err != nil {
		return TripTotals{}, err
	}

	s.tracker.TrackShoppingTripCompleted(ctx, trip.StoreID != uuid.Nil, totals.ItemCount, totals.Total)
	s.publishExport(ctx, trip.ID)
	return totals, nil
}

func (s *TripService) publishExport(ctx context.Context, tripID uuid.UUID) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishTripExport(ctx, tripID.String()); err != nil {
		// The trip is already persisted; a lost export message only delays
		// the spreadsheet row.
		s.logger.WarnContext(ctx, "Failed to enqueue trip export",
			log.FieldTripID, tripID.String(), log.FieldError, err)
	} else {
		s.logger.InfoContext(ctx, "Enqueued trip export", log.FieldTripID, tripID.String())
	}
}
