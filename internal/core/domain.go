package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidTaxRate  = errors.New("invalid tax rate")
	ErrMissingCategory = errors.New("missing category reference")
	ErrMissingStore    = errors.New("missing store reference")
	ErrMissingItem     = errors.New("missing item reference")
)

type (
	// Store is a place where shopping happens. Default stores are seeded once
	// at bootstrap and flagged so they can be told apart from user entries.
	Store struct {
		ID        uuid.UUID
		Name      string
		Address   string
		IsDefault bool
	}

	// Category groups items and carries the sales-tax rate applied to them.
	// TaxRate is a fraction (0.0825 means 8.25%) and is looked up live when
	// totals are computed, never frozen onto a line item.
	Category struct {
		ID        uuid.UUID
		Name      string
		TaxRate   decimal.Decimal
		IsDefault bool
		Emoji     string
	}

	// PricePoint is one superseded price in an item's append-only history.
	// The recorded price is the one that was replaced, keyed by when the
	// change happened.
	PricePoint struct {
		ChangedAt time.Time
		Price     decimal.Decimal
	}

	// Item is a catalog entry shared by reference across trips.
	Item struct {
		ID               uuid.UUID
		Name             string
		CurrentPrice     decimal.Decimal
		CategoryID       uuid.UUID
		Brand            string
		UPC              string
		Emoji            string
		IsFavorite       bool
		Unit             int // 0 when no unit count is set
		UnitType         string
		PreferredStoreID uuid.UUID // uuid.Nil when no preferred store
		PriceHistory     []PricePoint
		Photo            []byte
		DateAdded        time.Time
	}

	// ShoppingItem is one trip line: a quantity of a catalog item priced at a
	// specific store. It holds references, not copies; prices and tax rates
	// are resolved at read time.
	ShoppingItem struct {
		ID        uuid.UUID
		ItemID    uuid.UUID
		StoreID   uuid.UUID
		TripID    uuid.UUID // uuid.Nil when not attached to a trip yet
		Quantity  int
		DateAdded time.Time
	}

	// ShoppingTrip is a single visit to one store. It owns its line items:
	// deleting the trip deletes them, while the referenced catalog items
	// survive.
	ShoppingTrip struct {
		ID      uuid.UUID
		StoreID uuid.UUID
		Date    time.Time
	}
)

// NewItem creates a catalog item. The price must be non-negative and the
// category reference is required.
func NewItem(name string, price decimal.Decimal, categoryID uuid.UUID) (Item, error) {
	if price.IsNegative() {
		return Item{}, ErrInvalidPrice
	}
	if categoryID == uuid.Nil {
		return Item{}, ErrMissingCategory
	}
	return Item{
		ID:           uuid.New(),
		Name:         name,
		CurrentPrice: price,
		CategoryID:   categoryID,
		DateAdded:    time.Now(),
	}, nil
}

// UpdatePrice records the price being replaced into the history, keyed by
// now, then sets the new price. A negative price fails before anything is
// touched.
func (i *Item) UpdatePrice(newPrice decimal.Decimal, now time.Time) error {
	if newPrice.IsNegative() {
		return ErrInvalidPrice
	}
	i.PriceHistory = append(i.PriceHistory, PricePoint{ChangedAt: now, Price: i.CurrentPrice})
	i.CurrentPrice = newPrice
	return nil
}

// UpdateUnit sets the per-item unit count. Zero or negative counts fail.
func (i *Item) UpdateUnit(newUnit int) error {
	if newUnit <= 0 {
		return ErrInvalidUnit
	}
	i.Unit = newUnit
	return nil
}

// UnitPrice is the price per single unit, or zero when no unit count is set.
func (i Item) UnitPrice() decimal.Decimal {
	if i.Unit <= 0 {
		return decimal.Zero
	}
	return i.CurrentPrice.Div(decimal.NewFromInt(int64(i.Unit)))
}

func (i Item) Validate() error {
	if i.CurrentPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if i.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}
	if i.Unit < 0 {
		return ErrInvalidUnit
	}
	return nil
}

// NewShoppingItem creates a trip line. Quantity must be strictly positive;
// item and store references are required. tripID may be uuid.Nil for a line
// not yet attached to a trip.
func NewShoppingItem(itemID, storeID, tripID uuid.UUID, quantity int) (ShoppingItem, error) {
	if quantity <= 0 {
		return ShoppingItem{}, ErrInvalidQuantity
	}
	if itemID == uuid.Nil {
		return ShoppingItem{}, ErrMissingItem
	}
	if storeID == uuid.Nil {
		return ShoppingItem{}, ErrMissingStore
	}
	return ShoppingItem{
		ID:        uuid.New(),
		ItemID:    itemID,
		StoreID:   storeID,
		TripID:    tripID,
		Quantity:  quantity,
		DateAdded: time.Now(),
	}, nil
}

// UpdateQuantity applies the same guard as construction: the stored quantity
// is untouched when the new one is not strictly positive.
func (s *ShoppingItem) UpdateQuantity(newQuantity int) error {
	if newQuantity <= 0 {
		return ErrInvalidQuantity
	}
	s.Quantity = newQuantity
	return nil
}

// NewShoppingTrip creates a trip for a store. The store reference is required.
func NewShoppingTrip(storeID uuid.UUID, date time.Time) (ShoppingTrip, error) {
	if storeID == uuid.Nil {
		return ShoppingTrip{}, ErrMissingStore
	}
	return ShoppingTrip{ID: uuid.New(), StoreID: storeID, Date: date}, nil
}

func (c Category) Validate() error {
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidTaxRate
	}
	return nil
}
