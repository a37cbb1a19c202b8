package bootstrap

import (
	"context"
	"errors"
	"testing"

	"carrello/internal/core"
	"carrello/internal/log"
)

type fakeCatalog struct {
	stores     []core.Store
	categories []core.Category
	seedCalls  int
	seedErr    error
}

func (f *fakeCatalog) CountStores(ctx context.Context) (int64, error) {
	return int64(len(f.stores)), nil
}

func (f *fakeCatalog) CountCategories(ctx context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeCatalog) SeedCatalog(ctx context.Context, stores []core.Store, categories []core.Category) error {
	f.seedCalls++
	if f.seedErr != nil {
		return f.seedErr
	}
	f.stores = append(f.stores, stores...)
	f.categories = append(f.categories, categories...)
	return nil
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestRunSeedsEmptyCatalog(t *testing.T) {
	cat := &fakeCatalog{}

	if err := Run(context.Background(), cat, testLogger()); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(cat.stores) != 10 {
		t.Fatalf("expected 10 default stores, got %d", len(cat.stores))
	}
	if len(cat.categories) != 31 {
		t.Fatalf("expected 31 default categories, got %d", len(cat.categories))
	}
	for _, s := range cat.stores {
		if !s.IsDefault {
			t.Fatalf("store %q not flagged default", s.Name)
		}
	}
	for _, c := range cat.categories {
		if !c.IsDefault {
			t.Fatalf("category %q not flagged default", c.Name)
		}
		if c.Emoji == "" {
			t.Fatalf("category %q missing emoji", c.Name)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("category %q invalid: %v", c.Name, err)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cat := &fakeCatalog{}
	ctx := context.Background()

	if err := Run(ctx, cat, testLogger()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	stores, categories := len(cat.stores), len(cat.categories)

	if err := Run(ctx, cat, testLogger()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(cat.stores) != stores || len(cat.categories) != categories {
		t.Fatalf("second run changed the catalog: %d/%d -> %d/%d",
			stores, categories, len(cat.stores), len(cat.categories))
	}
	if cat.seedCalls != 1 {
		t.Fatalf("expected a single seed call, got %d", cat.seedCalls)
	}
}

func TestRunSkipsPartialCatalog(t *testing.T) {
	t.Run("existing category only", func(t *testing.T) {
		cat := &fakeCatalog{categories: []core.Category{{Name: "Mine"}}}
		if err := Run(context.Background(), cat, testLogger()); err != nil {
			t.Fatalf("expected ok, got %v", err)
		}
		if cat.seedCalls != 0 || len(cat.stores) != 0 {
			t.Fatal("partial catalog must suppress seeding")
		}
	})
	t.Run("existing store only", func(t *testing.T) {
		cat := &fakeCatalog{stores: []core.Store{{Name: "Mine"}}}
		if err := Run(context.Background(), cat, testLogger()); err != nil {
			t.Fatalf("expected ok, got %v", err)
		}
		if cat.seedCalls != 0 || len(cat.categories) != 0 {
			t.Fatal("partial catalog must suppress seeding")
		}
	})
}

func TestRunSurfacesSeedFailure(t *testing.T) {
	boom := errors.New("disk full")
	cat := &fakeCatalog{seedErr: boom}

	err := Run(context.Background(), cat, testLogger())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped seed error, got %v", err)
	}
}

func TestDefaultCategoriesRates(t *testing.T) {
	for _, c := range DefaultCategories() {
		if !c.TaxRate.Equal(groceryRate) && !c.TaxRate.Equal(generalRate) {
			t.Fatalf("category %q has unexpected rate %s", c.Name, c.TaxRate)
		}
	}
}
