package submit

import (
	"context"
	"errors"
)

// ErrNoHandler is reported when a Callback pipeline has no handler.
var ErrNoHandler = errors.New("submit: callback handler is nil")

// Handler receives the submitted values. Returning done=true asks the
// pipeline to signal the closer.
type Handler func(ctx context.Context, values map[string]string) (done bool, err error)

// CallbackOption configures a Callback pipeline.
type CallbackOption func(*Callback)

// WithCloser sets the collaborator asked to hide the panel on completion.
func WithCloser(c Closer) CallbackOption {
	return func(cb *Callback) {
		cb.closer = c
	}
}

// WithCallbackLogger routes pipeline logs to logger.
func WithCallbackLogger(logger Logger) CallbackOption {
	return func(cb *Callback) {
		if logger != nil {
			cb.logger = logger
		}
	}
}

// Callback forwards values synchronously to a handler. It performs no I/O and
// no validation of its own.
type Callback struct {
	handler Handler
	closer  Closer
	logger  Logger
}

var _ Pipeline = (*Callback)(nil)

// NewCallback wraps handler.
func NewCallback(handler Handler, options ...CallbackOption) *Callback {
	cb := &Callback{handler: handler, logger: defaultLogger()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cb)
	}
	return cb
}

// Submit hands a copy of values to the handler. The success payload is that
// same copy.
func (cb *Callback) Submit(ctx context.Context, values map[string]string) Outcome {
	if cb.handler == nil {
		return Failure(FailureHandler, "no handler configured").WithCause(ErrNoHandler)
	}
	forwarded := copyValues(values)
	done, err := cb.handler(ctx, forwarded)
	if err != nil {
		cb.logger.Printf("submit: callback handler: %v", err)
		return Failure(FailureHandler, err.Error()).WithCause(err)
	}
	if done && cb.closer != nil {
		if err := cb.closer.Close(ctx); err != nil {
			cb.logger.Printf("submit: close panel: %v", err)
		}
	}
	return Success(copyValues(forwarded))
}
