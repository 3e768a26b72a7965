package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var fragmentSeq atomic.Uint64

// FromJSONSchema compiles a JSON Schema fragment describing a single string
// value (for example {"type":"string","pattern":"^[A-Z0-9 ]*$"}) into a
// validator. Raw inputs are validated as JSON string instances. When message
// is empty the first schema violation is used as the rejection message.
func FromJSONSchema(fragment []byte, message string) (Func, error) {
	if len(bytes.TrimSpace(fragment)) == 0 {
		return nil, fmt.Errorf("%w: empty fragment", ErrInvalidJSONSchema)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	url := fmt.Sprintf("formflow://field/%d.json", fragmentSeq.Add(1))
	if err := compiler.AddResource(url, bytes.NewReader(fragment)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONSchema, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONSchema, err)
	}

	return func(raw string) Result {
		if err := compiled.Validate(raw); err != nil {
			if message != "" {
				return Rejected(message)
			}
			return Rejected(schemaMessage(err))
		}
		return Accepted()
	}, nil
}

// FromJSONSchemaValue marshals a decoded fragment (as produced by YAML or JSON
// decoders) and compiles it with FromJSONSchema.
func FromJSONSchemaValue(fragment any, message string) (Func, error) {
	raw, err := json.Marshal(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONSchema, err)
	}
	return FromJSONSchema(raw, message)
}

func schemaMessage(err error) string {
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		leaf := verr
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		if msg := strings.TrimSpace(leaf.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(err.Error())
}
