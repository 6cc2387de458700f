package apiclient

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrInvalidAttributes is returned when bulk-population input cannot
	// be resolved to a mapping.
	ErrInvalidAttributes = errors.New("apiclient: invalid attributes")

	// ErrValidation is returned when a declared validation rule fails.
	ErrValidation = errors.New("apiclient: validation failed")

	// ErrUnknownName is returned when an attribute name is not declared
	// on the model and no fallback is configured.
	ErrUnknownName = errors.New("apiclient: unknown attribute name")

	// ErrUnresolved is returned when a link is read on a model that has
	// no resolver configured.
	ErrUnresolved = errors.New("apiclient: link not resolved")

	// ErrInvalidSchema is returned when a schema declaration cannot be
	// compiled into the registry.
	ErrInvalidSchema = errors.New("apiclient: invalid schema")
)

// InvalidAttributesError represents a bulk-population input that is not
// a mapping.
type InvalidAttributesError struct {
	typ   string // Type name of the model being populated
	value any    // The rejected input
}

// Error returns the error string.
func (e *InvalidAttributesError) Error() string {
	return fmt.Sprintf("apiclient: invalid attributes for %s: expected mapping, got %T", e.typ, e.value)
}

// Is reports whether the target error matches InvalidAttributesError.
// This allows errors.Is(err, ErrInvalidAttributes) to return true.
func (e *InvalidAttributesError) Is(err error) bool {
	return err == ErrInvalidAttributes
}

// TypeName returns the name of the model type being populated.
func (e *InvalidAttributesError) TypeName() string {
	return e.typ
}

// Value returns the rejected input value.
func (e *InvalidAttributesError) Value() any {
	return e.value
}

// NewInvalidAttributesError returns a new InvalidAttributesError for the
// given model type and rejected input.
func NewInvalidAttributesError(typ string, value any) *InvalidAttributesError {
	return &InvalidAttributesError{typ: typ, value: value}
}

// IsInvalidAttributes returns true if the error is an InvalidAttributesError.
func IsInvalidAttributes(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidAttributesError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidAttributes)
}

// ValidationError represents a validation failure on a model attribute.
// Nested validation failures propagate unchanged, so Type and Attr always
// name the model that owns the failing attribute.
type ValidationError struct {
	Type string // Model type name
	Attr string // Attribute name
	Err  error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("apiclient: validation failed for %s.%s: %s", e.Type, e.Attr, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ValidationError.
func (e *ValidationError) Is(err error) bool {
	return err == ErrValidation
}

// NewValidationError returns a new ValidationError for the given
// attribute of the given model type.
func NewValidationError(typ, attr string, err error) *ValidationError {
	return &ValidationError{Type: typ, Attr: attr, Err: err}
}

// NewRequiredError returns the ValidationError raised when a required
// attribute is missing or empty.
func NewRequiredError(typ, attr string) *ValidationError {
	return &ValidationError{Type: typ, Attr: attr, Err: errors.New("required attribute is missing or empty")}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e) || errors.Is(err, ErrValidation)
}

// UnknownNameError represents a read or write of an attribute name the
// model does not declare, with no fallback configured to receive it.
type UnknownNameError struct {
	typ  string // Model type name
	name string // The unknown attribute name
}

// Error returns the error string.
func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("apiclient: unknown attribute %q on %s", e.name, e.typ)
}

// Is reports whether the target error matches UnknownNameError.
func (e *UnknownNameError) Is(err error) bool {
	return err == ErrUnknownName
}

// TypeName returns the model type name.
func (e *UnknownNameError) TypeName() string {
	return e.typ
}

// Name returns the unknown attribute name.
func (e *UnknownNameError) Name() string {
	return e.name
}

// NewUnknownNameError returns a new UnknownNameError.
func NewUnknownNameError(typ, name string) *UnknownNameError {
	return &UnknownNameError{typ: typ, name: name}
}

// IsUnknownName returns true if the error is an UnknownNameError.
func IsUnknownName(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownNameError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownName)
}

// UnresolvedError represents a link read on a model with no resolver.
type UnresolvedError struct {
	href string
}

// Error returns the error string.
func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("apiclient: cannot resolve link %q: no resolver configured", e.href)
}

// Is reports whether the target error matches UnresolvedError.
func (e *UnresolvedError) Is(err error) bool {
	return err == ErrUnresolved
}

// Href returns the link target.
func (e *UnresolvedError) Href() string {
	return e.href
}

// NewUnresolvedError returns a new UnresolvedError for the given link target.
func NewUnresolvedError(href string) *UnresolvedError {
	return &UnresolvedError{href: href}
}

// IsUnresolved returns true if the error is an UnresolvedError.
func IsUnresolved(err error) bool {
	if err == nil {
		return false
	}
	var e *UnresolvedError
	return errors.As(err, &e) || errors.Is(err, ErrUnresolved)
}

// SchemaError represents a schema declaration that cannot be compiled
// into the registry.
type SchemaError struct {
	Type    string // Schema type name
	Name    string // Attribute or relation name (if applicable)
	Message string
	Cause   error
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	msg := "apiclient: schema error"
	if e.Type != "" {
		msg += " on type " + e.Type
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" (%s)", e.Name)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches SchemaError.
func (e *SchemaError) Is(err error) bool {
	return err == ErrInvalidSchema
}

// NewSchemaError returns a new SchemaError.
func NewSchemaError(typ, name, message string, cause error) *SchemaError {
	return &SchemaError{Type: typ, Name: name, Message: message, Cause: cause}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidSchema)
}
