package ledger

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation covers requests that can never succeed, such as a
// self swipe or an unknown direction. Callers must not retry them.
var ErrInvalidOperation = errors.New("invalid operation")

// PersistenceError reports a failed read or write against a backing store.
// The ledger does not retry; the caller decides what to tell the user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

func IsPersistence(err error) (*PersistenceError, bool) {
	var pe PersistenceError
	if errors.As(err, &pe) {
		return &pe, true
	}
	return nil, false
}

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := IsPersistence(err); ok {
		return err
	}
	return PersistenceError{Op: op, Err: err}
}
