// Package memory provides an in-memory export.TripWriter for tests and local
// runs without a spreadsheet.
package memory

import (
	"context"
	"strconv"
	"sync"

	"carrello/internal/export"
)

type Writer struct {
	mu   sync.Mutex
	rows []export.TripSummary
}

var _ export.TripWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

// Append implements export.TripWriter.
func (w *Writer) Append(_ context.Context, s export.TripSummary) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, s)
	return "row-" + strconv.Itoa(len(w.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (w *Writer) Rows() []export.TripSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]export.TripSummary, len(w.rows))
	copy(out, w.rows)
	return out
}
