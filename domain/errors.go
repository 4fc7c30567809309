package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrCacheMiss is returned by caches when the key is absent or unusable
	ErrCacheMiss = errors.New("cache miss")

	ErrUnauthorized        = errors.New("authentication required")
	ErrValidationFailed    = errors.New("validation failed")
	ErrCommentsDisabled    = errors.New("comments are disabled for this blog")
	ErrInvalidParent       = errors.New("parent comment does not exist in this blog")
	ErrNotFoundOrForbidden = errors.New("comment not found or not owned by user")
	ErrNotFoundOrDeleted   = errors.New("comment not found or already deleted")
	ErrInvalidCursor       = errors.New("invalid cursor")
	ErrInvalidID           = errors.New("invalid id")
)

// ValidationError carries per-field messages. It matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
