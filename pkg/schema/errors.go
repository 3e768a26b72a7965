package schema

import "errors"

var (
	// ErrDuplicateField signals two descriptors share a name.
	ErrDuplicateField = errors.New("schema: duplicate field name")
	// ErrEmptyName signals a descriptor without a name.
	ErrEmptyName = errors.New("schema: field name is required")
	// ErrUnknownKind signals an input kind outside text/password/checkbox.
	ErrUnknownKind = errors.New("schema: unknown input kind")
	// ErrOperationNotFound is returned when an OpenAPI document lacks the
	// requested operation id.
	ErrOperationNotFound = errors.New("schema: operation not found")
	// ErrNoRequestBody is returned when an OpenAPI operation has no usable
	// form or JSON request body.
	ErrNoRequestBody = errors.New("schema: operation has no usable request body")
)
