package usecase

import (
	"errors"
	"fmt"

	"store-rating/internal/data/repository"
)

// Sentinel kinds for the service error taxonomy. Handlers map them onto
// HTTP statuses with errors.Is; anything unmatched is a 500.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error pairs a taxonomy kind with a caller-facing message
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) *Error {
	return newError(ErrValidation, format, args...)
}

func unauthorizedError(format string, args ...any) *Error {
	return newError(ErrUnauthorized, format, args...)
}

func notFoundError(format string, args ...any) *Error {
	return newError(ErrNotFound, format, args...)
}

func conflictError(format string, args ...any) *Error {
	return newError(ErrConflict, format, args...)
}

// isDuplicate reports whether the data layer hit a uniqueness constraint
func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
