package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
)

// Logical keys of the persisted documents. Each maps to one serialized JSON
// document that is read once at startup and overwritten wholesale on every
// mutation; there are no partial updates and no schema versioning.
const (
	KeyStatistics   = "quiz_statistics"
	KeyWrongAnswers = "wrong_answers"
	KeyDarkMode     = "dark_mode"
)

// Store is the narrow persistence port the quiz core writes through. Get
// returns ErrNotFound for absent keys; callers treat malformed documents the
// same as absent ones and fall back to the default value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New returns a Store for the configured driver: "sqlite" (default) or
// "json".
func New(driver, path string) (Store, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLite(path)
	case "json":
		return NewJSONFile(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
