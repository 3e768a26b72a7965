package schema

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/validation"
)

// Vendor extensions honoured on request body properties.
const (
	extValidator   = "x-validator"
	extOrder       = "x-order"
	extPlaceholder = "x-placeholder"
	extMessage     = "x-message"
)

var formMediaTypes = []string{
	"multipart/form-data",
	"application/x-www-form-urlencoded",
	"application/json",
}

// FromOpenAPI derives a schema from the request body of operationID in an
// OpenAPI 3 document. Properties are ordered by x-order, then by name.
func FromOpenAPI(ctx context.Context, data []byte, operationID string, registry *validation.Registry) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if registry == nil {
		registry = validation.NewRegistry()
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	body := requestSchema(op)
	if body == nil || len(body.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := propertyOrder(body.Properties[names[i]]), propertyOrder(body.Properties[names[j]])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := fieldFromProperty(name, ref.Value, required[name], registry)
		if err != nil {
			return nil, fmt.Errorf("schema: property %q: %w", name, err)
		}
		fields = append(fields, field)
	}
	return New(fields...)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt := content.Get(mediaType); mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool, registry *validation.Registry) (Field, error) {
	field := Field{
		Name:        name,
		Label:       prop.Title,
		Kind:        KindText,
		Placeholder: extensionString(prop.Extensions, extPlaceholder),
		Required:    required,
	}
	if field.Label == "" {
		field.Label = humanize(name)
	}
	if field.Placeholder == "" {
		field.Placeholder = prop.Description
	}

	switch {
	case prop.Type != nil && prop.Type.Is(openapi3.TypeBoolean):
		field.Kind = KindCheckbox
	case prop.Format == "password":
		field.Kind = KindPassword
	}

	message := extensionString(prop.Extensions, extMessage)
	var fns []validation.Func
	if named := extensionString(prop.Extensions, extValidator); named != "" {
		names := strings.Split(named, ",")
		if strings.HasPrefix(named, validation.TagPrefix) {
			names = []string{named}
		}
		fn, err := registry.Resolve(names...)
		if err != nil {
			return Field{}, err
		}
		fns = append(fns, fn)
	}
	if prop.MaxLength != nil {
		field.MaxLength = Len(int(*prop.MaxLength))
		fns = append(fns, validation.MaxLength(int(*prop.MaxLength), message))
	}
	if prop.Pattern != "" {
		re, err := regexp.Compile(prop.Pattern)
		if err != nil {
			return Field{}, fmt.Errorf("compile pattern: %w", err)
		}
		fns = append(fns, validation.Pattern(re, message))
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

func propertyOrder(ref *openapi3.SchemaRef) int {
	if ref == nil || ref.Value == nil {
		return 1 << 30
	}
	raw, ok := ref.Value.Extensions[extOrder]
	if !ok {
		return 1 << 30
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 1 << 30
}

func extensionString(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	if s, ok := ext[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
