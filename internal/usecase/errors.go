package usecase

import (
	"errors"
	"fmt"

	"cinema-ticketing/pkg/utils"
)

// Error kinds a *ValidationError unwraps to, plus plain sentinels.
var (
	ErrOutOfRange       = errors.New("out of range")
	ErrSeatTaken        = errors.New("seat already taken")
	ErrEmptyOrder       = errors.New("order has no tickets")
	ErrInvalidReference = errors.New("invalid reference")

	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInUse              = errors.New("in use")
)

// NonField is the field name of errors that concern the object as a whole.
const NonField = "non_field"

// ValidationError is a field scoped failure reported back to the client.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// Fields renders the error as a field -> message map.
func (e *ValidationError) Fields() map[string]string {
	return map[string]string{e.Field: e.Message}
}

// WithPrefix returns a copy whose field is nested under prefix,
// e.g. "row" under "tickets[2]" becomes "tickets[2].row".
func (e *ValidationError) WithPrefix(prefix string) *ValidationError {
	return &ValidationError{
		Field:   prefix + "." + e.Field,
		Message: e.Message,
		kind:    e.kind,
	}
}

// RangeError reports row or seat outside the hall grid.
func RangeError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrOutOfRange}
}

// ConflictError reports a place already held for the session.
func ConflictError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrSeatTaken}
}

// EmptyInputError reports an order without tickets.
func EmptyInputError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrEmptyOrder}
}

func InvalidReferenceError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrInvalidReference}
}

func credentialsError(message string) *ValidationError {
	return &ValidationError{Field: NonField, Message: message, kind: ErrInvalidCredentials}
}

func alreadyExistsError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrAlreadyExists}
}

// InUseError reports an object that cannot be deleted while others reference it.
func InUseError(message string) *ValidationError {
	return &ValidationError{Field: NonField, Message: message, kind: ErrInUse}
}

func emailTakenError() *ValidationError {
	return &ValidationError{Field: "email", Message: "user with this email already exists.", kind: ErrEmailTaken}
}

// FieldErrors is the result of request struct validation.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(fe)
}

func ticketField(index int) string {
	return fmt.Sprintf("tickets[%d]", index)
}
