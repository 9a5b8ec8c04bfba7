package service

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound    = errors.New("scheduled post not found")
	ErrAccountNotFound = errors.New("social account not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ValidationError marks input the caller can fix. Handlers map it to 422,
// everything else falls through as an internal error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
