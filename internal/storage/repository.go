// Package storage persists the catalog and trip ledger in SQLite. Monetary
// values are stored as canonical decimal strings so binary floating point
// never touches a price or a tax rate.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrello/internal/cache"
	"carrello/internal/core"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrStoreInUse    = errors.New("store is referenced by items or trips")
	ErrCategoryInUse = errors.New("category is referenced by items")
	ErrItemInUse     = errors.New("item is referenced by trip lines")
)

const timeLayout = time.RFC3339Nano

// Repository is the SQLite-backed object store for all entities.
type Repository struct {
	db         *sql.DB
	photoCache *cache.LRU[[]byte]
}

// New opens (creating if needed) the database at dbPath, runs migrations and
// returns a ready repository. photoCache may be nil to disable photo caching.
func New(dbPath string, photoCache *cache.LRU[[]byte]) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, photoCache: photoCache}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- stores ---

func (r *Repository) CreateStore(ctx context.Context, s core.Store) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stores (id, name, address, is_default) VALUES (?, ?, ?, ?)`,
		s.ID.String(), s.Name, s.Address, boolToInt(s.IsDefault))
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *Repository) UpdateStore(ctx context.Context, s core.Store) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stores SET name = ?, address = ?, is_default = ? WHERE id = ?`,
		s.Name, s.Address, boolToInt(s.IsDefault), s.ID.String())
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return checkAffected(res)
}

// DeleteStore fails with ErrStoreInUse while items or trips still reference
// the store.
func (r *Repository) DeleteStore(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id.String())
	if err != nil {
		if isFKViolation(err) {
			return ErrStoreInUse
		}
		return fmt.Errorf("delete store: %w", err)
	}
	return checkAffected(res)
}

func (r *Repository) GetStore(ctx context.Context, id uuid.UUID) (core.Store, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, is_default FROM stores WHERE id = ?`, id.String())
	return scanStore(row)
}

func (r *Repository) ListStores(ctx context.Context) ([]core.Store, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, is_default FROM stores ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []core.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *Repository) CountStores(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return n, nil
}

// --- categories ---

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, tax_rate, is_default, emoji) VALUES (?, ?, ?, ?, ?)`,
		c.ID.String(), c.Name, c.TaxRate.String(), boolToInt(c.IsDefault), c.Emoji)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, tax_rate = ?, is_default = ?, emoji = ? WHERE id = ?`,
		c.Name, c.TaxRate.String(), boolToInt(c.IsDefault), c.Emoji, c.ID.String())
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return checkAffected(res)
}

// DeleteCategory fails with ErrCategoryInUse while items still reference the
// category.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id.String())
	if err != nil {
		if isFKViolation(err) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return checkAffected(res)
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, tax_rate, is_default, emoji FROM categories WHERE id = ?`, id.String())
	return scanCategory(row)
}

func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, tax_rate, is_default, emoji FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// SeedCatalog inserts the default stores and categories in one transaction,
// so a failure leaves no partial catalog behind.
func (r *Repository) SeedCatalog(ctx context.Context, stores []core.Store, categories []core.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range stores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stores (id, name, address, is_default) VALUES (?, ?, ?, ?)`,
			s.ID.String(), s.Name, s.Address, boolToInt(s.IsDefault)); err != nil {
			return fmt.Errorf("seed store %q: %w", s.Name, err)
		}
	}
	for _, c := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, tax_rate, is_default, emoji) VALUES (?, ?, ?, ?, ?)`,
			c.ID.String(), c.Name, c.TaxRate.String(), boolToInt(c.IsDefault), c.Emoji); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.InfoContext(ctx, "Seeded default catalog",
		"stores", len(stores), "categories", len(categories))
	return nil
}

// --- items ---

func (r *Repository) CreateItem(ctx context.Context, i core.Item) error {
	if err := i.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, name, current_price, category_id, brand, upc, emoji,
		    is_favorite, unit, unit_type, preferred_store_id, photo, date_added)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID.String(), i.Name, i.CurrentPrice.String(), i.CategoryID.String(),
		i.Brand, i.UPC, i.Emoji, boolToInt(i.IsFavorite), i.Unit, i.UnitType,
		nullableID(i.PreferredStoreID), i.Photo, i.DateAdded.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateItem persists the item's mutable fields. Price changes go through
// UpdateItemPrice so the history stays append-only.
func (r *Repository) UpdateItem(ctx context.Context, i core.Item) error {
	if err := i.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, category_id = ?, brand = ?, upc = ?, emoji = ?,
		    is_favorite = ?, unit = ?, unit_type = ?, preferred_store_id = ?
		 WHERE id = ?`,
		i.Name, i.CategoryID.String(), i.Brand, i.UPC, i.Emoji,
		boolToInt(i.IsFavorite), i.Unit, i.UnitType, nullableID(i.PreferredStoreID),
		i.ID.String())
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return checkAffected(res)
}

// UpdateItemPrice sets the new current price and appends the superseded price
// to the history, atomically.
func (r *Repository) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, newPrice decimal.Decimal, previous core.PricePoint) error {
	if newPrice.IsNegative() {
		return core.ErrInvalidPrice
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin price transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO item_price_history (item_id, changed_at, price) VALUES (?, ?, ?)`,
		itemID.String(), previous.ChangedAt.Format(timeLayout), previous.Price.String()); err != nil {
		return fmt.Errorf("append price history: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE items SET current_price = ? WHERE id = ?`,
		newPrice.String(), itemID.String())
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit price transaction: %w", err)
	}

	slog.InfoContext(ctx, "Item price updated",
		"item_id", itemID.String(), "price", newPrice.String())
	return nil
}

// DeleteItem fails with ErrItemInUse while trip lines still reference it.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id.String())
	if err != nil {
		if isFKViolation(err) {
			return ErrItemInUse
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if r.photoCache != nil {
		r.photoCache.Delete(id.String())
	}
	return checkAffected(res)
}

// GetItem loads an item with its full price history. The photo blob is left
// out; use ItemPhoto for it.
func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (core.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, current_price, category_id, brand, upc, emoji,
		    is_favorite, unit, unit_type, preferred_store_id, date_added
		 FROM items WHERE id = ?`, id.String())
	item, err := scanItem(row)
	if err != nil {
		return core.Item{}, err
	}

	history, err := r.priceHistory(ctx, id)
	if err != nil {
		return core.Item{}, err
	}
	item.PriceHistory = history
	return item, nil
}

// ListItems returns all items ordered by name, without history or photos.
func (r *Repository) ListItems(ctx context.Context) ([]core.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, current_price, category_id, brand, upc, emoji,
		    is_favorite, unit, unit_type, preferred_store_id, date_added
		 FROM items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []core.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *Repository) priceHistory(ctx context.Context, itemID uuid.UUID) ([]core.PricePoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT changed_at, price FROM item_price_history WHERE item_id = ? ORDER BY changed_at`,
		itemID.String())
	if err != nil {
		return nil, fmt.Errorf("load price history: %w", err)
	}
	defer rows.Close()

	var history []core.PricePoint
	for rows.Next() {
		var changedAt, price string
		if err := rows.Scan(&changedAt, &price); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		at, err := time.Parse(timeLayout, changedAt)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse history price: %w", err)
		}
		history = append(history, core.PricePoint{ChangedAt: at, Price: p})
	}
	return history, rows.Err()
}

// SetItemPhoto stores the photo blob and refreshes the cache entry.
func (r *Repository) SetItemPhoto(ctx context.Context, id uuid.UUID, photo []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET photo = ? WHERE id = ?`, photo, id.String())
	if err != nil {
		return fmt.Errorf("set item photo: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return err
	}
	if r.photoCache != nil {
		r.photoCache.Delete(id.String())
	}
	return nil
}

// ItemPhoto returns the item's photo blob, nil when none is stored. Reads go
// through the LRU cache.
func (r *Repository) ItemPhoto(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if r.photoCache != nil {
		if photo, ok := r.photoCache.Get(id.String()); ok {
			return photo, nil
		}
	}

	var photo []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT photo FROM items WHERE id = ?`, id.String()).Scan(&photo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load item photo: %w", err)
	}

	if r.photoCache != nil && photo != nil {
		r.photoCache.Set(id.String(), photo)
	}
	return photo, nil
}

// --- trips ---

func (r *Repository) CreateTrip(ctx context.Context, t core.ShoppingTrip) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_trips (id, store_id, date) VALUES (?, ?, ?)`,
		t.ID.String(), t.StoreID.String(), t.Date.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *Repository) GetTrip(ctx context.Context, id uuid.UUID) (core.ShoppingTrip, error) {
	var trip core.ShoppingTrip
	var idStr, storeID, date string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, date FROM shopping_trips WHERE id = ?`, id.String()).
		Scan(&idStr, &storeID, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return trip, ErrNotFound
	}
	if err != nil {
		return trip, fmt.Errorf("get trip: %w", err)
	}
	return buildTrip(idStr, storeID, date)
}

// ListTrips returns all trips, most recent first.
func (r *Repository) ListTrips(ctx context.Context) ([]core.ShoppingTrip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, store_id, date FROM shopping_trips ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var trips []core.ShoppingTrip
	for rows.Next() {
		var idStr, storeID, date string
		if err := rows.Scan(&idStr, &storeID, &date); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		t, err := buildTrip(idStr, storeID, date)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// DeleteTrip removes the trip; the schema cascades the delete onto its line
// items while referenced catalog items survive.
func (r *Repository) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_trips WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return checkAffected(res)
}

func (r *Repository) AddShoppingItem(ctx context.Context, si core.ShoppingItem) error {
	if si.Quantity <= 0 {
		return core.ErrInvalidQuantity
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_items (id, trip_id, item_id, store_id, quantity, date_added)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		si.ID.String(), nullableID(si.TripID), si.ItemID.String(), si.StoreID.String(),
		si.Quantity, si.DateAdded.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert shopping item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateShoppingItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return core.ErrInvalidQuantity
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE shopping_items SET quantity = ? WHERE id = ?`, quantity, id.String())
	if err != nil {
		return fmt.Errorf("update shopping item quantity: %w", err)
	}
	return checkAffected(res)
}

func (r *Repository) DeleteShoppingItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	return checkAffected(res)
}

// TripLines loads a trip's line items with their item and category references
// resolved at read time, so totals always reflect current prices and rates.
func (r *Repository) TripLines(ctx context.Context, tripID uuid.UUID) ([]core.Line, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT si.id, si.item_id, si.store_id, si.trip_id, si.quantity, si.date_added,
		    i.id, i.name, i.current_price, i.category_id, i.brand, i.upc, i.emoji,
		    i.is_favorite, i.unit, i.unit_type, i.preferred_store_id, i.date_added,
		    c.id, c.name, c.tax_rate, c.is_default, c.emoji
		 FROM shopping_items si
		 JOIN items i ON i.id = si.item_id
		 JOIN categories c ON c.id = i.category_id
		 WHERE si.trip_id = ?
		 ORDER BY si.date_added`, tripID.String())
	if err != nil {
		return nil, fmt.Errorf("load trip lines: %w", err)
	}
	defer rows.Close()

	var lines []core.Line
	for rows.Next() {
		var (
			siID, siItemID, siStoreID, siDateAdded        string
			siTripID                                      sql.NullString
			quantity                                      int
			itID, itName, itPrice, itCategoryID           string
			itBrand, itUPC, itEmoji, itUnitType, itAdded  string
			itFavorite, itUnit                            int
			itPreferredStore                              sql.NullString
			cID, cName, cTaxRate, cEmoji                  string
			cDefault                                      int
		)
		if err := rows.Scan(
			&siID, &siItemID, &siStoreID, &siTripID, &quantity, &siDateAdded,
			&itID, &itName, &itPrice, &itCategoryID, &itBrand, &itUPC, &itEmoji,
			&itFavorite, &itUnit, &itUnitType, &itPreferredStore, &itAdded,
			&cID, &cName, &cTaxRate, &cDefault, &cEmoji); err != nil {
			return nil, fmt.Errorf("scan trip line: %w", err)
		}

		si, err := buildShoppingItem(siID, siItemID, siStoreID, siTripID, quantity, siDateAdded)
		if err != nil {
			return nil, err
		}
		item, err := buildItem(itID, itName, itPrice, itCategoryID, itBrand, itUPC, itEmoji,
			itFavorite, itUnit, itUnitType, itPreferredStore, itAdded)
		if err != nil {
			return nil, err
		}
		category, err := buildCategory(cID, cName, cTaxRate, cDefault, cEmoji)
		if err != nil {
			return nil, err
		}

		lines = append(lines, core.Line{ShoppingItem: si, Item: item, Category: category})
	}
	return lines, rows.Err()
}

// --- scanning helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(row rowScanner) (core.Store, error) {
	var idStr, name, address string
	var isDefault int
	err := row.Scan(&idStr, &name, &address, &isDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Store{}, ErrNotFound
	}
	if err != nil {
		return core.Store{}, fmt.Errorf("scan store: %w", err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return core.Store{}, fmt.Errorf("parse store id: %w", err)
	}
	return core.Store{ID: id, Name: name, Address: address, IsDefault: isDefault != 0}, nil
}

func scanCategory(row rowScanner) (core.Category, error) {
	var idStr, name, taxRate, emoji string
	var isDefault int
	err := row.Scan(&idStr, &name, &taxRate, &isDefault, &emoji)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("scan category: %w", err)
	}
	return buildCategory(idStr, name, taxRate, isDefault, emoji)
}

func scanItem(row rowScanner) (core.Item, error) {
	var (
		idStr, name, price, categoryID                string
		brand, upc, emoji, unitType, dateAdded        string
		isFavorite, unit                              int
		preferredStore                                sql.NullString
	)
	err := row.Scan(&idStr, &name, &price, &categoryID, &brand, &upc, &emoji,
		&isFavorite, &unit, &unitType, &preferredStore, &dateAdded)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Item{}, ErrNotFound
	}
	if err != nil {
		return core.Item{}, fmt.Errorf("scan item: %w", err)
	}
	return buildItem(idStr, name, price, categoryID, brand, upc, emoji,
		isFavorite, unit, unitType, preferredStore, dateAdded)
}

func buildCategory(idStr, name, taxRate string, isDefault int, emoji string) (core.Category, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return core.Category{}, fmt.Errorf("parse category id: %w", err)
	}
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return core.Category{}, fmt.Errorf("parse tax rate: %w", err)
	}
	return core.Category{ID: id, Name: name, TaxRate: rate, IsDefault: isDefault != 0, Emoji: emoji}, nil
}

func buildItem(idStr, name, price, categoryID, brand, upc, emoji string,
	isFavorite, unit int, unitType string, preferredStore sql.NullString, dateAdded string) (core.Item, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return core.Item{}, fmt.Errorf("parse item id: %w", err)
	}
	catID, err := uuid.Parse(categoryID)
	if err != nil {
		return core.Item{}, fmt.Errorf("parse item category id: %w", err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return core.Item{}, fmt.Errorf("parse item price: %w", err)
	}
	added, err := time.Parse(timeLayout, dateAdded)
	if err != nil {
		return core.Item{}, fmt.Errorf("parse item date: %w", err)
	}
	storeID := uuid.Nil
	if preferredStore.Valid {
		storeID, err = uuid.Parse(preferredStore.String)
		if err != nil {
			return core.Item{}, fmt.Errorf("parse preferred store id: %w", err)
		}
	}
	return core.Item{
		ID: id, Name: name, CurrentPrice: p, CategoryID: catID,
		Brand: brand, UPC: upc, Emoji: emoji, IsFavorite: isFavorite != 0,
		Unit: unit, UnitType: unitType, PreferredStoreID: storeID, DateAdded: added,
	}, nil
}

func buildShoppingItem(idStr, itemID, storeID string, tripID sql.NullString, quantity int, dateAdded string) (core.ShoppingItem, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("parse shopping item id: %w", err)
	}
	iID, err := uuid.Parse(itemID)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("parse shopping item item id: %w", err)
	}
	sID, err := uuid.Parse(storeID)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("parse shopping item store id: %w", err)
	}
	tID := uuid.Nil
	if tripID.Valid {
		tID, err = uuid.Parse(tripID.String)
		if err != nil {
			return core.ShoppingItem{}, fmt.Errorf("parse shopping item trip id: %w", err)
		}
	}
	added, err := time.Parse(timeLayout, dateAdded)
	if err != nil {
		return core.ShoppingItem{}, fmt.Errorf("parse shopping item date: %w", err)
	}
	return core.ShoppingItem{
		ID: id, ItemID: iID, StoreID: sID, TripID: tID,
		Quantity: quantity, DateAdded: added,
	}, nil
}

func buildTrip(idStr, storeID, date string) (core.ShoppingTrip, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return core.ShoppingTrip{}, fmt.Errorf("parse trip id: %w", err)
	}
	sID, err := uuid.Parse(storeID)
	if err != nil {
		return core.ShoppingTrip{}, fmt.Errorf("parse trip store id: %w", err)
	}
	d, err := time.Parse(timeLayout, date)
	if err != nil {
		return core.ShoppingTrip{}, fmt.Errorf("parse trip date: %w", err)
	}
	return core.ShoppingTrip{ID: id, StoreID: sID, Date: d}, nil
}

func nullableID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
