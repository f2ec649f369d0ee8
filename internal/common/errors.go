package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrValidation     = errors.New("validation failed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrConflict       = errors.New("resource conflict")
	ErrInternalServer = errors.New("internal server error")
)

// apiError carries a client-facing message while remaining matchable
// against one of the sentinel kinds above via errors.Is.
type apiError struct {
	msg  string
	kind error
}

func (e *apiError) Error() string { return e.msg }
func (e *apiError) Unwrap() error { return e.kind }

// ValidationError returns a business-precondition failure with the given
// message, surfaced to clients as a 400.
func ValidationError(msg string) error {
	return &apiError{msg: msg, kind: ErrValidation}
}

// TokenError returns an expired/invalid token failure with the given message.
func TokenError(msg string) error {
	return &apiError{msg: msg, kind: ErrTokenExpired}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}

	// pgx unique constraint violations are client errors (duplicate signup etc.)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
