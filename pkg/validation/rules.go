package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Chain runs validators in order and returns the first rejection.
func Chain(fns ...Func) Func {
	return func(raw string) Result {
		for _, fn := range fns {
			if res := Validate(fn, raw); !res.OK() {
				return res
			}
		}
		return Accepted()
	}
}

// Required rejects blank input.
func Required(message string) Func {
	if message == "" {
		message = "This field is required."
	}
	return func(raw string) Result {
		if strings.TrimSpace(raw) == "" {
			return Rejected(message)
		}
		return Accepted()
	}
}

// MaxLength rejects input longer than n characters.
func MaxLength(n int, message string) Func {
	if message == "" {
		message = fmt.Sprintf("Must be at most %d characters.", n)
	}
	return func(raw string) Result {
		if utf8.RuneCountInString(raw) > n {
			return Rejected(message)
		}
		return Accepted()
	}
}

// Pattern rejects non-empty input that does not match re. Empty input is left
// to Required.
func Pattern(re *regexp.Regexp, message string) Func {
	if message == "" {
		message = "Value does not match the required format."
	}
	return func(raw string) Result {
		if raw == "" || re == nil {
			return Accepted()
		}
		if !re.MatchString(raw) {
			return Rejected(message)
		}
		return Accepted()
	}
}

// Decimal accepts empty input or a non-negative decimal number such as "4" or
// "2.50".
func Decimal(message string) Func {
	if message == "" {
		message = "Please enter a number (e.g. 4.00, 2.50)."
	}
	return func(raw string) Result {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Accepted()
		}
		if !decimalPattern.MatchString(trimmed) {
			return Rejected(message)
		}
		return Accepted()
	}
}

var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
