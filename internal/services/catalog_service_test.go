package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrello/internal/cache"
	"carrello/internal/core"
	"carrello/internal/storage"
	"carrello/internal/telemetry"
)

type recordingSink struct {
	names []string
}

func (s *recordingSink) Signal(_ context.Context, name string, _ map[string]string) error {
	s.names = append(s.names, name)
	return nil
}

func newTestRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.New(filepath.Join(t.TempDir(), "test.db"), cache.NewLRU[[]byte](8, time.Minute))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newCatalogService(t *testing.T) (*CatalogService, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return NewCatalogService(newTestRepo(t), telemetry.New(sink, nil)), sink
}

func TestCreateStoreCoercesEmptyName(t *testing.T) {
	svc, sink := newCatalogService(t)
	ctx := context.Background()

	store, err := svc.CreateStore(ctx, "   ", "Main St 1")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if store.Name != "Untitled" {
		t.Fatalf("expected Untitled, got %q", store.Name)
	}
	if len(sink.names) != 1 || sink.names[0] != "store-created" {
		t.Fatalf("expected store-created signal, got %v", sink.names)
	}
}

func TestCreateCategoryRejectsBadRate(t *testing.T) {
	svc, sink := newCatalogService(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "Produce", dec(t, "1.5"), "🥦"); !errors.Is(err, core.ErrInvalidTaxRate) {
		t.Fatalf("expected ErrInvalidTaxRate, got %v", err)
	}
	if len(sink.names) != 0 {
		t.Fatalf("no signal expected on rejected category, got %v", sink.names)
	}
}

func TestCreateItemRequiresCategory(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, "Milk", dec(t, "2.50"), uuid.Nil); !errors.Is(err, core.ErrMissingCategory) {
		t.Fatalf("expected ErrMissingCategory, got %v", err)
	}
	if _, err := svc.CreateItem(ctx, "Milk", dec(t, "-1"), uuid.New()); !errors.Is(err, core.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestUpdateItemPriceAppendsHistory(t *testing.T) {
	svc, sink := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Groceries", dec(t, "0.0175"), "🛒")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := svc.CreateItem(ctx, "Milk", dec(t, "10.00"), category.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := svc.UpdateItemPrice(ctx, item.ID, dec(t, "12.50")); err != nil {
		t.Fatalf("update price: %v", err)
	}

	got, err := svc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if !got.CurrentPrice.Equal(dec(t, "12.50")) {
		t.Fatalf("expected 12.50, got %s", got.CurrentPrice)
	}
	if len(got.PriceHistory) != 1 || !got.PriceHistory[0].Price.Equal(dec(t, "10.00")) {
		t.Fatalf("expected previous price 10.00 in history, got %+v", got.PriceHistory)
	}

	want := []string{"category-created", "item-created", "item-edited"}
	if len(sink.names) != len(want) {
		t.Fatalf("expected signals %v, got %v", want, sink.names)
	}
}

func TestUpdateItemPriceRejectsNegativeWithoutMutation(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Groceries", dec(t, "0.0175"), "🛒")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := svc.CreateItem(ctx, "Milk", dec(t, "10.00"), category.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := svc.UpdateItemPrice(ctx, item.ID, dec(t, "-0.01")); !errors.Is(err, core.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	got, err := svc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if !got.CurrentPrice.Equal(dec(t, "10.00")) || len(got.PriceHistory) != 0 {
		t.Fatalf("item must be untouched after rejected update, got %+v", got)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Groceries", dec(t, "0.0175"), "🛒")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateItem(ctx, "Milk", dec(t, "2.50"), category.ID); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := svc.DeleteCategory(ctx, category.ID); !errors.Is(err, storage.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Groceries", dec(t, "0.0175"), "🛒")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := svc.CreateItem(ctx, "Milk", dec(t, "2.50"), category.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	on, err := svc.ToggleFavorite(ctx, item.ID)
	if err != nil || !on {
		t.Fatalf("expected favorite on, got %v (err=%v)", on, err)
	}
	off, err := svc.ToggleFavorite(ctx, item.ID)
	if err != nil || off {
		t.Fatalf("expected favorite off, got %v (err=%v)", off, err)
	}
}

func TestAttachUPCAndPhoto(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, "Groceries", dec(t, "0.0175"), "🛒")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	item, err := svc.CreateItem(ctx, "Milk", dec(t, "2.50"), category.ID)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := svc.AttachUPC(ctx, item.ID, "0123456789012"); err != nil {
		t.Fatalf("attach upc: %v", err)
	}
	if err := svc.AttachPhoto(ctx, item.ID, []byte{0xFF, 0xD8}); err != nil {
		t.Fatalf("attach photo: %v", err)
	}

	got, err := svc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.UPC != "0123456789012" {
		t.Fatalf("expected upc persisted, got %q", got.UPC)
	}
	photo, err := svc.ItemPhoto(ctx, item.ID)
	if err != nil || len(photo) != 2 {
		t.Fatalf("expected photo bytes, got %v (err=%v)", photo, err)
	}
}
