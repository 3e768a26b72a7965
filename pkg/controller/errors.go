package controller

import "errors"

var (
	// ErrUnknownField is returned for values or policies naming a field the
	// schema does not declare.
	ErrUnknownField = errors.New("controller: unknown field")
	// ErrNilSchema and ErrNilPipeline are construction errors.
	ErrNilSchema   = errors.New("controller: schema is nil")
	ErrNilPipeline = errors.New("controller: pipeline is nil")
	// ErrValidation is returned by OnSubmit when the submit pass rejects a
	// field; the messages are in the store.
	ErrValidation = errors.New("controller: validation failed")
	// ErrSubmitInFlight is returned by OnSubmit while a submission is
	// pending. The call has no effect.
	ErrSubmitInFlight = errors.New("controller: submission already in flight")
	// ErrAlreadySubmitted is returned by OnSubmit after a successful
	// submission until the form is reset.
	ErrAlreadySubmitted = errors.New("controller: form already submitted")
	// ErrDisposed is returned by OnSubmit after Dispose.
	ErrDisposed = errors.New("controller: surface disposed")
)
