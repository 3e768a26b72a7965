package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/validation"
)

// InputKind selects how a field is rendered.
type InputKind string

const (
	KindText     InputKind = "text"
	KindPassword InputKind = "password"
	KindCheckbox InputKind = "checkbox"
)

// ParseKind normalises a kind name; empty defaults to text.
func ParseKind(raw string) (InputKind, error) {
	switch InputKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KindText:
		return KindText, nil
	case KindPassword:
		return KindPassword, nil
	case KindCheckbox:
		return KindCheckbox, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Kind        InputKind
	Placeholder string
	// MaxLength mirrors the input's maxlength attribute; nil means unbounded.
	MaxLength *int
	// Required marks fields whose blank value fails the submit pass.
	Required  bool
	Validator validation.Func
}

// Validate runs the field's validator against raw.
func (f Field) Validate(raw string) validation.Result {
	return validation.Validate(f.Validator, raw)
}

// Len is a helper for MaxLength literals.
func Len(n int) *int {
	return &n
}
