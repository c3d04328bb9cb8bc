// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both missing rows and rows outside the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for missing credentials or a forbidden export.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries per-field messages for a rejected input
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an error with a single field message
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add appends a message for field
func (v *ValidationError) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// Empty reports whether no messages were collected
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

// OrNil returns v when it holds messages and nil otherwise
func (v *ValidationError) OrNil() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
