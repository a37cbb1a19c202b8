package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"carrello/internal/core"
	"carrello/internal/storage"
	"carrello/internal/telemetry"
)

type tripFixture struct {
	repo     *storage.Repository
	trips    *TripService
	sink     *recordingSink
	store    core.Store
	category core.Category
	item     core.Item
}

func newTripFixture(t *testing.T) *tripFixture {
	t.Helper()
	ctx := context.Background()
	repo := newTestRepo(t)
	sink := &recordingSink{}
	tracker := telemetry.New(sink, nil)

	store := core.Store{ID: uuid.New(), Name: "Aldi"}
	if err := repo.CreateStore(ctx, store); err != nil {
		t.Fatalf("create store: %v", err)
	}
	category := core.Category{ID: uuid.New(), Name: "Groceries", TaxRate: dec(t, "0.0175"), Emoji: "🛒"}
	if err := repo.CreateCategory(ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := core.NewItem("Milk", dec(t, "2.50"), category.ID)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	return &tripFixture{
		repo:     repo,
		trips:    NewTripService(repo, tracker, nil, nil),
		sink:     sink,
		store:    store,
		category: category,
		item:     item,
	}
}

func TestCreateTripRequiresStore(t *testing.T) {
	fx := newTripFixture(t)
	ctx := context.Background()

	if _, err := fx.trips.CreateTrip(ctx, uuid.Nil, time.Now()); !errors.Is(err, core.ErrMissingStore) {
		t.Fatalf("expected ErrMissingStore, got %v", err)
	}
	if len(fx.sink.names) != 0 {
		t.Fatalf("no signal expected on rejected trip, got %v", fx.sink.names)
	}
}

func TestAddItemAndQuantityGuard(t *testing.T) {
	fx := newTripFixture(t)
	ctx := context.Background()

	trip, err := fx.trips.CreateTrip(ctx, fx.store.ID, time.Now())
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	if _, err := fx.trips.AddItem(ctx, trip.ID, fx.item.ID, 0, true); !errors.Is(err, core.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	line, err := fx.trips.AddItem(ctx, trip.ID, fx.item.ID, 4, true)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := fx.trips.UpdateQuantity(ctx, line.ID, -1); !errors.Is(err, core.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := fx.trips.UpdateQuantity(ctx, line.ID, 2); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	lines, err := fx.trips.Lines(ctx, trip.ID)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", lines)
	}
}

func TestTotalsRecomputeFromCurrentRates(t *testing.T) {
	fx := newTripFixture(t)
	ctx := context.Background()

	trip, err := fx.trips.CreateTrip(ctx, fx.store.ID, time.Now())
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if _, err := fx.trips.AddItem(ctx, trip.ID, fx.item.ID, 4, true); err != nil {
		t.Fatalf("add item: %v", err)
	}

	totals, err := fx.trips.Totals(ctx, trip.ID)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if !totals.Subtotal.Equal(dec(t, "10.00")) {
		t.Fatalf("expected subtotal 10.00, got %s", totals.Subtotal)
	}
	if !totals.Tax.Equal(dec(t, "0.175")) {
		t.Fatalf("expected tax 0.175, got %s", totals.Tax)
	}
	if !totals.Total.Equal(dec(t, "10.175")) {
		t.Fatalf("expected total 10.175, got %s", totals.Total)
	}

	// A category rate change applies retroactively: nothing was snapshotted.
	fx.category.TaxRate = dec(t, "0.0825")
	if err := fx.repo.UpdateCategory(ctx, fx.category); err != nil {
		t.Fatalf("update category: %v", err)
	}
	totals, err = fx.trips.Totals(ctx, trip.ID)
	if err != nil {
		t.Fatalf("totals after rate change: %v", err)
	}
	if !totals.Tax.Equal(dec(t, "0.825")) {
		t.Fatalf("expected tax 0.825 after rate change, got %s", totals.Tax)
	}
	if len(totals.Breakdown) != 1 || totals.Breakdown[0].Category.ID != fx.category.ID {
		t.Fatalf("expected one breakdown entry, got %+v", totals.Breakdown)
	}
}

func TestCompleteWithoutBrokerReturnsTotals(t *testing.T) {
	fx := newTripFixture(t)
	ctx := context.Background()

	trip, err := fx.trips.CreateTrip(ctx, fx.store.ID, time.Now())
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if _, err := fx.trips.AddItem(ctx, trip.ID, fx.item.ID, 2, false); err != nil {
		t.Fatalf("add item: %v", err)
	}

	totals, err := fx.trips.Complete(ctx, trip.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if totals.ItemCount != 1 || !totals.Subtotal.Equal(dec(t, "5.00")) {
		t.Fatalf("unexpected totals %+v", totals)
	}

	last := fx.sink.names[len(fx.sink.names)-1]
	if last != "shopping-trip-completed" {
		t.Fatalf("expected shopping-trip-completed, got %v", fx.sink.names)
	}
}

func TestDeleteTripKeepsCatalogItem(t *testing.T) {
	fx := newTripFixture(t)
	ctx := context.Background()

	trip, err := fx.trips.CreateTrip(ctx, fx.store.ID, time.Now())
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if _, err := fx.trips.AddItem(ctx, trip.ID, fx.item.ID, 1, true); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := fx.trips.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("delete trip: %v", err)
	}
	if _, err := fx.trips.GetTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := fx.repo.GetItem(ctx, fx.item.ID); err != nil {
		t.Fatalf("catalog item must survive trip deletion: %v", err)
	}
}
