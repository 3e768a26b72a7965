package validation

import "errors"

var (
	// ErrUnknownValidator is returned when a schema references a validator
	// name that was never registered.
	ErrUnknownValidator = errors.New("validation: unknown validator")
	// ErrInvalidJSONSchema wraps compile failures of inline JSON Schema
	// fragments.
	ErrInvalidJSONSchema = errors.New("validation: invalid json schema")
	// ErrInvalidTag is returned for malformed go-playground tag expressions.
	ErrInvalidTag = errors.New("validation: invalid tag expression")
)
