package submit

import (
	"fmt"
	"net/http"
)

// FailureKind classifies submission failures.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailureDecode    FailureKind = "decode"
	FailureStorage   FailureKind = "storage"
	FailureHandler   FailureKind = "handler"
	FailureAborted   FailureKind = "aborted"
)

// Outcome is either a success carrying a payload or a failure carrying a kind
// and message. The zero value is an empty success.
type Outcome struct {
	failed  bool
	payload any
	kind    FailureKind
	message string
	status  int
	cause   error
}

// Success wraps a payload.
func Success(payload any) Outcome {
	return Outcome{payload: payload}
}

// Failure reports a failed submission.
func Failure(kind FailureKind, message string) Outcome {
	return Outcome{failed: true, kind: kind, message: message}
}

// WithStatus attaches the HTTP status of the response that caused a failure.
func (o Outcome) WithStatus(status int) Outcome {
	o.status = status
	return o
}

// WithCause attaches the underlying error.
func (o Outcome) WithCause(err error) Outcome {
	o.cause = err
	return o
}

func (o Outcome) OK() bool          { return !o.failed }
func (o Outcome) Payload() any      { return o.payload }
func (o Outcome) Kind() FailureKind { return o.kind }
func (o Outcome) Message() string   { return o.message }
func (o Outcome) Status() int       { return o.status }

// Err returns nil on success and a *Error otherwise.
func (o Outcome) Err() error {
	if !o.failed {
		return nil
	}
	return &Error{Kind: o.kind, Status: o.status, Message: o.message, Err: o.cause}
}

func (o Outcome) String() string {
	if !o.failed {
		return "success"
	}
	return fmt.Sprintf("failure(%s): %s", o.kind, o.message)
}

// Error is the error form of a failed Outcome.
type Error struct {
	Kind    FailureKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("submit: %s (%d %s): %s", e.Kind, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("submit: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
