package usecase

import (
	"errors"

	"restaurant-booking/pkg/utils"
)

// ErrNotFound covers unknown records as well as records owned by someone
// else, so callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// ValidationError carries field scoped messages keyed by json field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func fieldError(field, message string) *ValidationError {
	return newValidationError(map[string]string{field: message})
}
