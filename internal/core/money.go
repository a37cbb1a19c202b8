// Package core holds the grocery-tracker domain model and the pricing
// engine.
//
// This file contains parsing helpers for monetary amounts and tax rates
// entered as strings. All monetary math uses decimal values end to end so
// that subtotal + tax == total holds exactly.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a decimal string to an exact price value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs are
// rejected, so the result is always >= 0; zero is a valid price.
//
// Examples:
//
//	ParsePrice("12.34") -> 12.34, nil
//	ParsePrice("12,34") -> 12.34, nil
//	ParsePrice("0")     -> 0, nil
//	ParsePrice("-1")    -> ErrInvalidPrice
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// ParseTaxRate converts a decimal string to a fractional tax rate in the
// closed range [0, 1]. "0.0825" means 8.25%.
func ParseTaxRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidTaxRate
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidTaxRate
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, ErrInvalidTaxRate
	}
	return d, nil
}

// FormatPrice renders a price with two decimal places for display. Exact
// values keep their full precision in storage; this is presentation only.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
