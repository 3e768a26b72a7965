package schema

import (
	"fmt"
	"strings"
)

// Schema is an ordered, immutable list of field descriptors.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New validates the descriptors and builds a schema. Duplicate or empty names
// are programmer errors and fail construction.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return nil, fmt.Errorf("%w (position %d)", ErrEmptyName, i)
		}
		if _, exists := s.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		kind, err := ParseKind(string(field.Kind))
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}
		field.Name = name
		field.Kind = kind
		if field.MaxLength != nil {
			field.MaxLength = Len(*field.MaxLength)
		}
		s.index[name] = len(s.fields)
		s.fields = append(s.fields, field)
	}
	return s, nil
}

// Must is New that panics on error, for schemas declared in code.
func Must(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = copyField(field)
	}
	return out
}

// Field returns the descriptor registered under name.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return copyField(s.fields[idx]), true
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Names lists field names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Name
	}
	return out
}

// Len reports the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// InitialValues maps every field name to the empty string.
func (s *Schema) InitialValues() map[string]string {
	out := make(map[string]string, s.Len())
	for _, name := range s.Names() {
		out[name] = ""
	}
	return out
}

func copyField(field Field) Field {
	if field.MaxLength != nil {
		field.MaxLength = Len(*field.MaxLength)
	}
	return field
}
