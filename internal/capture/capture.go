// Package capture bridges asynchronous input devices (barcode scanners,
// photo pickers) into single-shot results. A session resolves exactly once:
// with a result, with a cancellation, or with the caller's context expiring.
package capture

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is returned when the capture was dismissed without a result.
var ErrCanceled = errors.New("capture canceled")

// Result is whatever the device produced. Exactly one field is set.
type Result struct {
	UPC   string
	Photo []byte
}

// Session is a one-shot capture in flight. Deliver and Cancel may be called
// from any goroutine; only the first call wins.
type Session struct {
	once sync.Once
	done chan struct{}
	res  Result
	err  error
}

func NewSession() *Session {
	return &Session{done: make(chan struct{})}
}

// Deliver resolves the session with a result. Later calls are ignored.
func (s *Session) Deliver(res Result) {
	s.once.Do(func() {
		s.res = res
		close(s.done)
	})
}

// Cancel resolves the session with ErrCanceled. Later calls are ignored.
func (s *Session) Cancel() {
	s.once.Do(func() {
		s.err = ErrCanceled
		close(s.done)
	})
}

// Await blocks until the session resolves or ctx expires.
func (s *Session) Await(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-s.done:
		return s.res, s.err
	}
}

// ScanBarcode runs one scan through the given device function and waits for
// the result. The device receives the session and resolves it when the user
// scans or dismisses.
func ScanBarcode(ctx context.Context, device func(*Session)) (string, error) {
	session := NewSession()
	go device(session)
	res, err := session.Await(ctx)
	if err != nil {
		return "", err
	}
	return res.UPC, nil
}

// PickPhoto runs one photo pick through the given device function.
func PickPhoto(ctx context.Context, device func(*Session)) ([]byte, error) {
	session := NewSession()
	go device(session)
	res, err := session.Await(ctx)
	if err != nil {
		return nil, err
	}
	return res.Photo, nil
}
