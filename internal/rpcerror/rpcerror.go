// Package rpcerror maps repository failures onto the RPC error taxonomy.
package rpcerror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/router-for-me/guildrpc/internal/store"
)

// Code is the machine-readable error name carried in every error body.
type Code string

const (
	NotFound        Code = "NotFound"
	InvalidArgument Code = "InvalidArgument"
	Internal        Code = "Internal"
	// Unauthenticated is only produced by the service-token middleware.
	Unauthenticated Code = "Unauthenticated"
)

// HTTPStatus returns the status code a response with this code is sent with.
func (c Code) HTTPStatus() int {
	switch c {
	case NotFound:
		return http.StatusNotFound
	case InvalidArgument:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure already classified for the wire.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Body is the JSON error payload.
type Body struct {
	Error   Code   `json:"error"`
	Message string `json:"message,omitempty"`
}

// Body renders e for the wire.
func (e *Error) Body() Body {
	return Body{Error: e.Code, Message: e.Message}
}

func NewNotFound(cause error) *Error {
	return &Error{Code: NotFound, Message: store.ErrNotFound.Error(), cause: cause}
}

func NewInvalidArgument(cause error) *Error {
	msg := "invalid request"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Code: InvalidArgument, Message: msg, cause: cause}
}

func NewInternal(cause error) *Error {
	msg := "internal error"
	if cause != nil {
		msg = cause.Error()
		var storeErr *store.Error
		if errors.As(cause, &storeErr) && storeErr.Err != nil {
			msg = storeErr.Err.Error()
		}
	}
	return &Error{Code: Internal, Message: msg, cause: cause}
}

// Translate classifies err. Errors that are neither already classified nor a
// missing row are Internal. A nil error translates to nil.
func Translate(err error) *Error {
	if err == nil {
		return nil
	}
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return NewNotFound(err)
	default:
		return NewInternal(err)
	}
}

// SQLState returns the postgres error code behind err, or "" when err did not
// come from postgres.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
