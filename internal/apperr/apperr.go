package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure into the taxonomy the HTTP layer maps onto
// status codes.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindStateViolation
	KindUpstream
)

// Error is the structured failure carried from the service layer to the
// transport boundary. Slug feeds the machine-readable problem type, Extras
// carries error-specific fields such as missing product ids.
type Error struct {
	Kind   Kind
	Slug   string
	Title  string
	Detail string
	Extras map[string]any
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Slug, e.Detail, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Slug, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// With attaches an error-specific field and returns the error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Extras == nil {
		e.Extras = make(map[string]any)
	}
	e.Extras[key] = value

	return e
}

// HTTPStatus returns the status code for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func newError(kind Kind, slug, title, detail string) *Error {
	return &Error{Kind: kind, Slug: slug, Title: title, Detail: detail}
}

// Validation reports malformed or missing input. Never retried, always 400.
func Validation(slug, title, detail string) *Error {
	return newError(KindValidation, slug, title, detail)
}

// NotFound reports a missing order, product or status.
func NotFound(slug, title, detail string) *Error {
	return newError(KindNotFound, slug, title, detail)
}

// Conflict reports a duplicate, e.g. a second opinion for the same order.
func Conflict(slug, title, detail string) *Error {
	return newError(KindConflict, slug, title, detail)
}

// Forbidden reports an ownership or role mismatch.
func Forbidden(slug, title, detail string) *Error {
	return newError(KindForbidden, slug, title, detail)
}

// StateViolation reports an illegal lifecycle operation: a regressive or
// terminal-state transition, or an opinion requested before eligibility.
func StateViolation(slug, title, detail string) *Error {
	return newError(KindStateViolation, slug, title, detail)
}

// Upstream wraps a collaborator failure (catalog, identity, persistence).
// Only the failure text is exposed, no internal diagnostics.
func Upstream(op string, err error) *Error {
	e := newError(KindUpstream, "internal", "Internal server error", fmt.Sprintf("%s: %v", op, err))
	e.cause = err

	return e
}

// From extracts the structured error from err, treating anything untyped as
// an upstream failure so no error leaves the boundary unclassified.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return Upstream("unexpected error", err)
}
