// Package apperr defines the caller-facing error taxonomy shared by the
// domain operations and the transport layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed, out-of-range or missing required input.
// It is always fixable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("Invalid %s. %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// ConflictError reports a request that contradicts the current state of an
// entity, such as moving a reminder out of a terminal status.
type ConflictError struct {
	Entity string
	ID     any
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Entity, e.ID, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Conflict builds a ConflictError.
func Conflict(entity string, id any, reason string) error {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// HTTPStatus maps an error to the outcome class the transport reports.
// Anything outside the taxonomy is an internal fault.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
