package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagPrefix marks registry names that are go-playground validator tags,
// e.g. "tag:alphanum,max=12".
const TagPrefix = "tag:"

var tagValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New()
})

// Tag returns a validator that checks input against a go-playground tag
// expression. Empty input is accepted unless the expression starts with
// "required". An empty message selects a message derived from the failing
// tag.
func Tag(expr, message string) (Func, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidTag)
	}
	if !strings.HasPrefix(expr, "required") && !strings.HasPrefix(expr, "omitempty") {
		expr = "omitempty," + expr
	}
	if err := checkTag(expr); err != nil {
		return nil, err
	}

	v := tagValidator()
	return func(raw string) Result {
		err := v.Var(raw, expr)
		if err == nil {
			return Accepted()
		}
		if message != "" {
			return Rejected(message)
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Rejected(tagMessage(fieldErrs[0]))
		}
		return Rejected("Invalid value.")
	}, nil
}

// checkTag surfaces unknown tags as errors; the validator panics on them.
func checkTag(expr string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidTag, expr, r)
		}
	}()
	_ = tagValidator().Var("", expr)
	return nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "numeric", "number":
		return "Must be a number."
	case "alpha":
		return "Letters only."
	case "alphanum":
		return "Letters and digits only."
	case "email":
		return "Invalid email format."
	case "len":
		return fmt.Sprintf("Must be exactly %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
