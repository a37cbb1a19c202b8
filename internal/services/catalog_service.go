// Package services orchestrates storage, telemetry and export around the
// domain model. Writes validate first and persist before any best-effort
// publishing happens.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrello/internal/core"
	"carrello/internal/storage"
	"carrello/internal/telemetry"
)

// untitledName is the forgiving default for empty names: blank input is
// coerced, never rejected.
const untitledName = "Untitled"

// CatalogService manages stores, categories and catalog items.
type CatalogService struct {
	storage *storage.Repository
	tracker *telemetry.Tracker
}

func NewCatalogService(storage *storage.Repository, tracker *telemetry.Tracker) *CatalogService {
	return &CatalogService{storage: storage, tracker: tracker}
}

// --- stores ---

func (s *CatalogService) CreateStore(ctx context.Context, name, address string) (core.Store, error) {
	store := core.Store{
		ID:      uuid.New(),
		Name:    orUntitled(name),
		Address: address,
	}
	if err := s.storage.CreateStore(ctx, store); err != nil {
		return core.Store{}, fmt.Errorf("create store: %w", err)
	}
	s.tracker.TrackStoreCreated(ctx)
	return store, nil
}

func (s *CatalogService) UpdateStore(ctx context.Context, store core.Store) error {
	store.Name = orUntitled(store.Name)
	if err := s.storage.UpdateStore(ctx, store); err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	s.tracker.TrackStoreEdited(ctx)
	return nil
}

func (s *CatalogService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteStore(ctx, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	s.tracker.TrackStoreDeleted(ctx)
	return nil
}

func (s *CatalogService) ListStores(ctx context.Context) ([]core.Store, error) {
	return s.storage.ListStores(ctx)
}

// --- categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, name string, taxRate decimal.Decimal, emoji string) (core.Category, error) {
	category := core.Category{
		ID:      uuid.New(),
		Name:    orUntitled(name),
		TaxRate: taxRate,
		Emoji:   emoji,
	}
	if err := category.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.storage.CreateCategory(ctx, category); err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	s.tracker.TrackCategoryCreated(ctx)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, category core.Category) error {
	category.Name = orUntitled(category.Name)
	if err := category.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateCategory(ctx, category); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	s.tracker.TrackCategoryEdited(ctx)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.tracker.TrackCategoryDeleted(ctx)
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.storage.ListCategories(ctx)
}

// --- items ---

func (s *CatalogService) CreateItem(ctx context.Context, name string, price decimal.Decimal, categoryID uuid.UUID) (core.Item, error) {
	item, err := core.NewItem(orUntitled(name), price, categoryID)
	if err != nil {
		return core.Item{}, err
	}
	if err := s.storage.CreateItem(ctx, item); err != nil {
		return core.Item{}, fmt.Errorf("create item: %w", err)
	}
	s.tracker.TrackItemCreated(ctx, item.CurrentPrice, item.CategoryID != uuid.Nil)
	return item, nil
}

// UpdateItem persists the item's mutable fields except the price, which goes
// through UpdateItemPrice to keep the history append-only.
func (s *CatalogService) UpdateItem(ctx context.Context, item core.Item) error {
	item.Name = orUntitled(item.Name)
	if err := s.storage.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	s.tracker.TrackItemEdited(ctx)
	return nil
}

// UpdateItemPrice validates the new price, appends the superseded price to
// the history keyed by the change time, then persists both atomically.
func (s *CatalogService) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, newPrice decimal.Decimal) error {
	item, err := s.storage.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}

	now := time.Now()
	previous := core.PricePoint{ChangedAt: now, Price: item.CurrentPrice}
	if err := item.UpdatePrice(newPrice, now); err != nil {
		return err
	}
	if err := s.storage.UpdateItemPrice(ctx, itemID, newPrice, previous); err != nil {
		return fmt.Errorf("persist price update: %w", err)
	}
	s.tracker.TrackItemEdited(ctx)
	return nil
}

// UpdateItemUnit sets the item's unit count. Non-positive counts fail before
// anything is stored.
func (s *CatalogService) UpdateItemUnit(ctx context.Context, itemID uuid.UUID, unit int) error {
	item, err := s.storage.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	if err := item.UpdateUnit(unit); err != nil {
		return err
	}
	if err := s.storage.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("persist unit update: %w", err)
	}
	s.tracker.TrackItemEdited(ctx)
	return nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.storage.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.tracker.TrackItemDeleted(ctx)
	return nil
}

func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (core.Item, error) {
	return s.storage.GetItem(ctx, id)
}

func (s *CatalogService) ListItems(ctx context.Context) ([]core.Item, error) {
	return s.storage.ListItems(ctx)
}

// ToggleFavorite flips the item's favorite flag and returns the new value.
func (s *CatalogService) ToggleFavorite(ctx context.Context, itemID uuid.UUID) (bool, error) {
	item, err := s.storage.GetItem(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("load item: %w", err)
	}
	item.IsFavorite = !item.IsFavorite
	if err := s.storage.UpdateItem(ctx, item); err != nil {
		return false, fmt.Errorf("persist favorite: %w", err)
	}
	s.tracker.TrackItemEdited(ctx)
	return item.IsFavorite, nil
}

// AttachUPC stores a scanned barcode payload on the item.
func (s *CatalogService) AttachUPC(ctx context.Context, itemID uuid.UUID, upc string) error {
	item, err := s.storage.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("load item: %w", err)
	}
	item.UPC = upc
	if err := s.storage.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("persist upc: %w", err)
	}
	return nil
}

// AttachPhoto stores picked photo bytes on the item.
func (s *CatalogService) AttachPhoto(ctx context.Context, itemID uuid.UUID, photo []byte) error {
	if err := s.storage.SetItemPhoto(ctx, itemID, photo); err != nil {
		return fmt.Errorf("persist photo: %w", err)
	}
	return nil
}

// ItemPhoto loads an item's photo, nil when none is stored.
func (s *CatalogService) ItemPhoto(ctx context.Context, itemID uuid.UUID) ([]byte, error) {
	return s.storage.ItemPhoto(ctx, itemID)
}

// ItemTax is the tax on a single unquantified item at its category's current
// rate, for catalog display.
func (s *CatalogService) ItemTax(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	item, err := s.storage.GetItem(ctx, itemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load item: %w", err)
	}
	category, err := s.storage.GetCategory(ctx, item.CategoryID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load category: %w", err)
	}
	return core.ItemTotalTax(item, category), nil
}

func orUntitled(name string) string {
	if strings.TrimSpace(name) == "" {
		return untitledName
	}
	return name
}
