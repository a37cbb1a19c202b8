// Package export defines the outbound port for pushing completed-trip
// summaries to an external destination.
package export

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TripSummary is one exported row: a completed trip with its totals as
// computed at export time.
type TripSummary struct {
	TripID    string
	Date      time.Time
	StoreName string
	ItemCount int
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// TripWriter appends one trip summary and returns an opaque row reference.
type TripWriter interface {
	Append(ctx context.Context, s TripSummary) (rowRef string, err error)
}
