package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrUserNotFound signals the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries one localized message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UserNotFoundError reports a lookup of an unknown id. Message is already localized.
type UserNotFoundError struct {
	ID      uuid.UUID
	Message string
}

func (e *UserNotFoundError) Error() string {
	return e.Message
}

func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
