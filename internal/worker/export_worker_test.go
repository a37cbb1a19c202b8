package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrello/internal/amqp"
	"carrello/internal/cache"
	"carrello/internal/core"
	"carrello/internal/export/memory"
	"carrello/internal/storage"
)

func newExportFixture(t *testing.T) (*ExportWorker, *memory.Writer, core.ShoppingTrip) {
	t.Helper()
	ctx := context.Background()

	repo, err := storage.New(filepath.Join(t.TempDir(), "test.db"), cache.NewLRU[[]byte](8, time.Minute))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	store := core.Store{ID: uuid.New(), Name: "Aldi"}
	if err := repo.CreateStore(ctx, store); err != nil {
		t.Fatalf("create store: %v", err)
	}
	category := core.Category{ID: uuid.New(), Name: "Groceries", TaxRate: decimal.RequireFromString("0.0175")}
	if err := repo.CreateCategory(ctx, category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := core.NewItem("Milk", decimal.RequireFromString("2.50"), category.ID)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	trip, err := core.NewShoppingTrip(store.ID, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new trip: %v", err)
	}
	if err := repo.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("create trip: %v", err)
	}
	line, err := core.NewShoppingItem(item.ID, store.ID, trip.ID, 4)
	if err != nil {
		t.Fatalf("new shopping item: %v", err)
	}
	if err := repo.AddShoppingItem(ctx, line); err != nil {
		t.Fatalf("add shopping item: %v", err)
	}

	writer := memory.New()
	return NewExportWorker(repo, writer, nil, nil), writer, trip
}

func TestHandleExportsOneRow(t *testing.T) {
	w, writer, trip := newExportFixture(t)
	ctx := context.Background()

	msg := amqp.NewTripExportMessage(trip.ID.String())
	if err := w.Handle(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row.TripID != trip.ID.String() || row.StoreName != "Aldi" || row.ItemCount != 1 {
		t.Fatalf("unexpected row %+v", row)
	}
	if !row.Subtotal.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected subtotal 10.00, got %s", row.Subtotal)
	}
	if !row.Tax.Equal(decimal.RequireFromString("0.175")) {
		t.Fatalf("expected tax 0.175, got %s", row.Tax)
	}
	if !row.Total.Equal(decimal.RequireFromString("10.175")) {
		t.Fatalf("expected total 10.175, got %s", row.Total)
	}
}

func TestHandleRejectsMalformedTripID(t *testing.T) {
	w, writer, _ := newExportFixture(t)

	msg := amqp.NewTripExportMessage("not-a-uuid")
	if err := w.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected error for malformed trip ID")
	}
	if len(writer.Rows()) != 0 {
		t.Fatal("no row expected for malformed message")
	}
}

func TestHandleUnknownTrip(t *testing.T) {
	w, writer, _ := newExportFixture(t)

	msg := amqp.NewTripExportMessage(uuid.NewString())
	if err := w.Handle(context.Background(), msg); err == nil {
		t.Fatal("expected error for unknown trip")
	}
	if len(writer.Rows()) != 0 {
		t.Fatal("no row expected for unknown trip")
	}
}
