// Package bootstrap seeds the default store and category catalog exactly
// once, on first run.
package bootstrap

import (
	"context"
	"fmt"

	"carrello/internal/core"
	"carrello/internal/log"
)

// CatalogStore is the slice of the repository the bootstrapper needs.
type CatalogStore interface {
	CountStores(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	SeedCatalog(ctx context.Context, stores []core.Store, categories []core.Category) error
}

// Run seeds the default catalog when both the store and category collections
// are empty. Any pre-existing record in either collection, even a partial
// catalog, counts as already bootstrapped and suppresses seeding entirely.
// Safe to call on every start: N runs leave the same catalog as one.
func Run(ctx context.Context, store CatalogStore, logger *log.Logger) error {
	stores, err := store.CountStores(ctx)
	if err != nil {
		return fmt.Errorf("count stores: %w", err)
	}
	categories, err := store.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}

	if stores > 0 || categories > 0 {
		logger.Debug("Catalog already bootstrapped",
			"stores", stores, "categories", categories)
		return nil
	}

	defaultStores := DefaultStores()
	defaultCategories := DefaultCategories()
	if err := store.SeedCatalog(ctx, defaultStores, defaultCategories); err != nil {
		return fmt.Errorf("seed default catalog: %w", err)
	}

	logger.Info("Bootstrapped default catalog",
		"stores", len(defaultStores), "categories", len(defaultCategories))
	return nil
}
