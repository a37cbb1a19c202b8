package bootstrap

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carrello/internal/core"
)

// Fractional sales-tax rates for the two seed tiers: groceries and general
// merchandise.
var (
	groceryRate = decimal.RequireFromString("0.0175")
	generalRate = decimal.RequireFromString("0.0825")
)

// DefaultStores returns the fixed seed list of stores, all flagged default.
func DefaultStores() []core.Store {
	names := []string{
		"Aldi",
		"Amazon",
		"Costco",
		"Instacart",
		"Meijer",
		"Target",
		"Trader Joe's",
		"Walmart",
		"Whole Foods",
		"Other",
	}
	stores := make([]core.Store, len(names))
	for i, name := range names {
		stores[i] = core.Store{ID: uuid.New(), Name: name, IsDefault: true}
	}
	return stores
}

// DefaultCategories returns the fixed seed list of categories with their tax
// tier and display emoji, all flagged default.
func DefaultCategories() []core.Category {
	seeds := []struct {
		name  string
		rate  decimal.Decimal
		emoji string
	}{
		// Main categories
		{"Groceries", groceryRate, "🛒"},
		{"Prepared Food", generalRate, "🍱"},
		{"Household", generalRate, "🏠"},
		{"Clothing", generalRate, "👕"},
		{"Electronics", generalRate, "🔌"},

		// Grocery subcategories
		{"Bakery", groceryRate, "🥐"},
		{"Baking Items", groceryRate, "🧁"},
		{"Beverages", groceryRate, "🥤"},
		{"Breads and Cereals", groceryRate, "🍞"},
		{"Canned Foods & Soups", groceryRate, "🥫"},
		{"Coffee and Tea", groceryRate, "☕"},
		{"Dairy & Cheese", groceryRate, "🧀"},
		{"Deli", groceryRate, "🥪"},
		{"Frozen Foods", groceryRate, "🧊"},
		{"Meat", groceryRate, "🥩"},
		{"Pantry", groceryRate, "🥣"},
		{"Pasta, Rice & Beans", groceryRate, "🍝"},
		{"Pet Care", groceryRate, "🐾"},
		{"Produce", groceryRate, "🥦"},
		{"Sauces & Condiments", groceryRate, "🥫"},
		{"Seafood", groceryRate, "🐟"},
		{"Snacks & Candy", groceryRate, "🍬"},
		{"Spices & Seasonings", groceryRate, "🧂"},
		{"Wine, Beer & Spirits", generalRate, "🍷"},

		// Home subcategories
		{"Baby Care", generalRate, "🍼"},
		{"Childcare", generalRate, "🧸"},
		{"Cleaning Supplies", generalRate, "🧽"},
		{"Laundry", generalRate, "🧺"},
		{"Paper Products", generalRate, "🧻"},
		{"Personal Care", generalRate, "🪥"},
		{"Other", generalRate, "🏷️"},
	}

	categories := make([]core.Category, len(seeds))
	for i, s := range seeds {
		categories[i] = core.Category{
			ID:        uuid.New(),
			Name:      s.name,
			TaxRate:   s.rate,
			IsDefault: true,
			Emoji:     s.emoji,
		}
	}
	return categories
}
