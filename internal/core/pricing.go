package core

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a shopping item with its item and category references resolved.
// The storage layer builds these at read time, so a later category tax-rate
// change or item price change shows up in every recomputed total.
type Line struct {
	ShoppingItem
	Item     Item
	Category Category
}

// UnitPrice passes through to the item's current price.
func (l Line) UnitPrice() decimal.Decimal {
	return l.Item.CurrentPrice
}

// Subtotal is current price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.CurrentPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Tax is the line subtotal times the category's fractional tax rate. No
// rounding is applied mid-calculation.
func (l Line) Tax() decimal.Decimal {
	return l.Subtotal().Mul(l.Category.TaxRate)
}

// Total is subtotal plus tax, exactly.
func (l Line) Total() decimal.Decimal {
	return l.Subtotal().Add(l.Tax())
}

// TripSubtotal sums line subtotals. An empty trip yields zero.
func TripSubtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// TripTax sums line taxes.
func TripTax(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Tax())
	}
	return sum
}

// TripTotal is TripSubtotal plus TripTax.
func TripTotal(lines []Line) decimal.Decimal {
	return TripSubtotal(lines).Add(TripTax(lines))
}

// CategoryTotal aggregates the lines of one category within a trip.
type CategoryTotal struct {
	Category Category
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
}

func (ct CategoryTotal) Total() decimal.Decimal {
	return ct.Subtotal.Add(ct.Tax)
}

// CategoryBreakdown groups trip lines by category identity (two categories
// with the same name stay distinct) and returns the groups sorted by
// category name ascending for stable display.
func CategoryBreakdown(lines []Line) []CategoryTotal {
	byID := make(map[uuid.UUID]*CategoryTotal)
	for _, l := range lines {
		ct, ok := byID[l.Category.ID]
		if !ok {
			ct = &CategoryTotal{Category: l.Category, Subtotal: decimal.Zero, Tax: decimal.Zero}
			byID[l.Category.ID] = ct
		}
		ct.Subtotal = ct.Subtotal.Add(l.Subtotal())
		ct.Tax = ct.Tax.Add(l.Tax())
	}

	out := make([]CategoryTotal, 0, len(byID))
	for _, ct := range byID {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category.Name != out[j].Category.Name {
			return out[i].Category.Name < out[j].Category.Name
		}
		return out[i].Category.ID.String() < out[j].Category.ID.String()
	})
	return out
}

// ItemTotalTax is the tax on a single unquantified item, as shown in the
// item catalog.
func ItemTotalTax(item Item, category Category) decimal.Decimal {
	return item.CurrentPrice.Mul(category.TaxRate)
}
