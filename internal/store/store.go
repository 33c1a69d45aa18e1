// Package store holds the guild-scoped repositories. Every operation is a single
// statement against the shared connection pool.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// HistoryLimit caps how many history rows a listing returns.
const HistoryLimit = 5

// ErrNotFound reports that an operation needing an existing row matched none.
var ErrNotFound = errors.New("no such row")

// Error wraps a store fault with the operation and entity it happened on.
type Error struct {
	Op     string
	Entity string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError normalizes gorm errors; record-not-found becomes ErrNotFound.
func wrapError(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrNotFound
	}
	return &Error{Op: op, Entity: entity, Err: err}
}

// detach keeps a statement running once issued even if the caller goes away.
func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
