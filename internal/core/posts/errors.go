package posts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Resource kinds carried by NotFoundError
const (
	ResourcePost    = "post"
	ResourceComment = "comment"
)

// Sentinel errors for post operations
var (
	// ErrNotFound is matched by every NotFoundError via errors.Is
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized is returned when the caller may not perform a destructive operation
	ErrNotAuthorized = errors.New("not authorized")

	// ErrConcurrentModification is returned when the post kept changing underneath
	// a read-modify-write and the retry budget ran out
	ErrConcurrentModification = errors.New("post was modified by another operation")

	// ErrAuthRequired is returned when an operation that needs a caller identity gets none
	ErrAuthRequired = errors.New("authentication required")
)

// NotFoundError represents a missing post or comment
type NotFoundError struct {
	Resource string // "post" or "comment"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NotFoundResource returns the resource kind of a not found error, or "" if err is not one
func NotFoundResource(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Resource
	}
	return ""
}

// ValidationFailedError carries every field that failed validation, keyed by JSON field name
type ValidationFailedError struct {
	Fields map[string]string
}

func (e *ValidationFailedError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationFailedError creates a validation error from a field error mapping
func NewValidationFailedError(fields map[string]string) error {
	return &ValidationFailedError{Fields: fields}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationFailedError
	return errors.As(err, &valErr)
}

// ValidationFields returns the field errors of a validation error, or nil
func ValidationFields(err error) map[string]string {
	var valErr *ValidationFailedError
	if errors.As(err, &valErr) {
		return valErr.Fields
	}
	return nil
}
