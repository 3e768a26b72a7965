package validation

// Result is the outcome of validating a single raw input. The zero value is
// an accepted result.
type Result struct {
	rejected bool
	message  string
}

// Accepted reports a value that passed validation.
func Accepted() Result {
	return Result{}
}

// Rejected reports a value that failed validation with a user-facing message.
func Rejected(message string) Result {
	return Result{rejected: true, message: message}
}

// OK reports whether the value was accepted.
func (r Result) OK() bool {
	return !r.rejected
}

// Message returns the rejection message; empty for accepted results.
func (r Result) Message() string {
	if !r.rejected {
		return ""
	}
	return r.message
}

func (r Result) String() string {
	if !r.rejected {
		return "accepted"
	}
	return "rejected: " + r.message
}
