package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. The transport layer maps these to
// HTTP status codes: not found -> 404, forbidden -> 403, conflict -> 409,
// unauthorized -> 401, validation -> 422.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConflict     = errors.New("domain: conflict")
	ErrForbidden    = errors.New("domain: forbidden")
	ErrUnauthorized = errors.New("domain: unauthorized")
	ErrValidation   = errors.New("domain: validation")
)

// ValidationError reports a field that violates a domain constraint.
// It is matched by errors.Is(err, ErrValidation).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidTransitionError reports an illegal project status transition.
// It is a sub-kind of ErrConflict: errors.Is(err, ErrConflict) is true.
type InvalidTransitionError struct {
	From ProjectStatus
	To   ProjectStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrConflict
}
