package schema

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/validation"
)

// document is the on-disk representation of a schema. JSON documents decode
// through the same path since YAML is a superset.
type document struct {
	Fields []fieldDocument `yaml:"fields"`
}

type fieldDocument struct {
	Name        string         `yaml:"name"`
	Label       string         `yaml:"label"`
	Kind        string         `yaml:"kind"`
	Type        string         `yaml:"type"`
	Placeholder string         `yaml:"placeholder"`
	MaxLength   *int           `yaml:"maxLength"`
	Required    bool           `yaml:"required"`
	Validators  []string       `yaml:"validators"`
	Schema      map[string]any `yaml:"schema"`
	Message     string         `yaml:"message"`
}

// Load parses a YAML (or JSON) schema document. Validator names resolve
// against registry; a nil registry uses validation.NewRegistry.
func Load(data []byte, registry *validation.Registry) (*Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	if registry == nil {
		registry = validation.NewRegistry()
	}

	fields := make([]Field, 0, len(doc.Fields))
	for i, raw := range doc.Fields {
		field, err := raw.toField(registry)
		if err != nil {
			return nil, fmt.Errorf("schema: field %d (%s): %w", i, strings.TrimSpace(raw.Name), err)
		}
		fields = append(fields, field)
	}
	return New(fields...)
}

// LoadFS reads path from fsys and parses it with Load.
func LoadFS(fsys fs.FS, path string, registry *validation.Registry) (*Schema, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	s, err := Load(data, registry)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return s, nil
}

func (d fieldDocument) toField(registry *validation.Registry) (Field, error) {
	kindName := d.Kind
	if kindName == "" {
		kindName = d.Type
	}
	kind, err := ParseKind(kindName)
	if err != nil {
		return Field{}, err
	}

	var fns []validation.Func
	if len(d.Validators) > 0 {
		fn, err := registry.Resolve(d.Validators...)
		if err != nil {
			return Field{}, err
		}
		fns = append(fns, fn)
	}
	if len(d.Schema) > 0 {
		fn, err := validation.FromJSONSchemaValue(d.Schema, d.Message)
		if err != nil {
			return Field{}, err
		}
		fns = append(fns, fn)
	}

	field := Field{
		Name:        d.Name,
		Label:       d.Label,
		Kind:        kind,
		Placeholder: d.Placeholder,
		MaxLength:   d.MaxLength,
		Required:    d.Required,
	}
	switch len(fns) {
	case 0:
	case 1:
		field.Validator = fns[0]
	default:
		field.Validator = validation.Chain(fns...)
	}
	return field, nil
}
