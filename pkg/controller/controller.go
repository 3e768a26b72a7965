package controller

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/store"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// MessageRequired is written for blank required fields on submit.
const MessageRequired = "This field is required."

// Controller is one mounted form instance.
type Controller struct {
	id        string
	schema    *schema.Schema
	store     store.Store
	pipeline  submit.Pipeline
	policies  []Policy
	logger    Logger
	lifecycle *submit.Lifecycle

	mu        sync.Mutex
	status    Status
	last      submit.Outcome
	submitted bool
	formError string
}

// New mounts a controller. The store is reset to the schema's initial state,
// discarding anything a shared store held from a previous mount.
func New(s *schema.Schema, pipeline submit.Pipeline, options ...Option) (*Controller, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	if pipeline == nil {
		return nil, ErrNilPipeline
	}

	c := &Controller{
		id:        uuid.NewString(),
		schema:    s,
		pipeline:  pipeline,
		logger:    log.Default(),
		lifecycle: submit.NewLifecycle(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	for _, p := range c.policies {
		if !s.Has(p.Field) {
			return nil, fmt.Errorf("%w: policy references %q", ErrUnknownField, p.Field)
		}
	}

	initial := c.initialState()
	if c.store == nil {
		c.store = store.NewMemory(initial)
	} else {
		c.store.Reset(initial)
	}
	return c, nil
}

// ID identifies this controller instance in logs.
func (c *Controller) ID() string { return c.id }

// Schema returns the bound schema.
func (c *Controller) Schema() *schema.Schema { return c.schema }

// Store returns the backing store, for render targets that subscribe to it.
func (c *Controller) Store() store.Store { return c.store }

// State returns a snapshot of values and errors.
func (c *Controller) State() store.State { return c.store.Get() }

// Status reports the submission state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastOutcome returns the most recent pipeline outcome, if any.
func (c *Controller) LastOutcome() (submit.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.submitted
}

// FormError returns the message of the last failed submission. It is cleared
// when a new submission starts or the form is reset.
func (c *Controller) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formError
}

// OnChange validates raw for name. Rejected input records the error and keeps
// the last accepted value; accepted input clears the error and is committed.
func (c *Controller) OnChange(name, raw string) (validation.Result, error) {
	field, ok := c.schema.Field(name)
	if !ok {
		return validation.Result{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	res := keystrokeCheck(field, raw)
	if !res.OK() {
		c.store.SetError(name, res.Message())
		return res, nil
	}
	c.store.Set(map[string]string{name: raw})
	c.store.SetError(name, "")
	return res, nil
}

// IsSubmittable reports whether the submit action should be enabled. It is
// derived from the current store state on every call.
func (c *Controller) IsSubmittable() bool {
	if c.Status() != StatusEditing {
		return false
	}
	state := c.store.Get()
	if state.HasErrors() {
		return false
	}
	for _, field := range c.schema.Fields() {
		if field.Required && strings.TrimSpace(state.Value(field.Name)) == "" {
			return false
		}
	}
	for _, p := range c.policies {
		if !validation.Validate(p.Check, state.Value(p.Field)).OK() {
			return false
		}
	}
	return true
}

// OnSubmit runs the submit pass and, if it succeeds, the pipeline. Input
// rejected while typing keeps its error and blocks the pipeline. A call
// made while another submission is pending returns ErrSubmitInFlight and
// changes nothing. Pipeline failures return the failed Outcome together with
// its error; entered values are left untouched.
func (c *Controller) OnSubmit(ctx context.Context) (submit.Outcome, error) {
	c.mu.Lock()
	switch {
	case c.status == StatusSubmitting:
		c.mu.Unlock()
		return submit.Outcome{}, ErrSubmitInFlight
	case c.status == StatusSubmitted:
		c.mu.Unlock()
		return submit.Outcome{}, ErrAlreadySubmitted
	case c.lifecycle.Disposed():
		c.mu.Unlock()
		return submit.Outcome{}, ErrDisposed
	}

	// Claim the submission before touching the store so observers that call
	// back into the controller never run under c.mu.
	c.status = StatusSubmitting
	c.formError = ""
	c.mu.Unlock()

	state := c.store.Get()
	if !c.submitCheck(state) {
		c.mu.Lock()
		c.status = StatusEditing
		c.mu.Unlock()
		return submit.Outcome{}, ErrValidation
	}

	outcome := c.pipeline.Submit(ctx, state.Values)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = outcome
	c.submitted = true
	if outcome.OK() {
		c.status = StatusSubmitted
		return outcome, nil
	}
	c.status = StatusEditing
	c.formError = outcome.Message()
	if !c.lifecycle.Disposed() {
		c.logger.Printf("controller %s: submission failed: %v", c.id, outcome.Err())
	}
	return outcome, outcome.Err()
}

// OnReset restores the schema's initial state. It is allowed in any state and
// does not abort a pending submission.
func (c *Controller) OnReset() {
	c.store.Reset(c.initialState())
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formError = ""
	if c.status == StatusSubmitted {
		c.status = StatusEditing
	}
}

// Reopen moves a Submitted controller back to Editing without touching the
// state, for surfaces such as filter panels that submit repeatedly.
func (c *Controller) Reopen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSubmitted {
		c.status = StatusEditing
	}
}

// Dispose marks the surface unmounted. Later submissions are refused and
// guarded collaborators sharing the lifecycle become no-ops.
func (c *Controller) Dispose() {
	c.lifecycle.Dispose()
}

// Lifecycle exposes the controller's lifecycle for guarding collaborators.
func (c *Controller) Lifecycle() *submit.Lifecycle {
	return c.lifecycle
}

func (c *Controller) initialState() store.State {
	return store.NewState(c.schema.Names()...)
}

// submitCheck re-validates every committed value, writing or clearing each
// field's error. A pending keystroke error stays in place and fails the pass.
func (c *Controller) submitCheck(state store.State) bool {
	failures := make(map[string]string)
	for _, field := range c.schema.Fields() {
		if pending := state.Error(field.Name); pending != "" {
			failures[field.Name] = pending
			continue
		}
		value := state.Value(field.Name)
		if res := keystrokeCheck(field, value); !res.OK() {
			failures[field.Name] = res.Message()
			continue
		}
		if field.Required && strings.TrimSpace(value) == "" {
			failures[field.Name] = MessageRequired
		}
	}
	for _, p := range c.policies {
		if _, failed := failures[p.Field]; failed {
			continue
		}
		if res := validation.Validate(p.Check, state.Value(p.Field)); !res.OK() {
			failures[p.Field] = res.Message()
		}
	}

	for _, name := range c.schema.Names() {
		c.store.SetError(name, failures[name])
	}
	return len(failures) == 0
}

func keystrokeCheck(field schema.Field, raw string) validation.Result {
	if field.MaxLength != nil && utf8.RuneCountInString(raw) > *field.MaxLength {
		if field.Validator != nil {
			if res := field.Validate(raw); !res.OK() {
				return res
			}
		}
		return validation.Rejected(fmt.Sprintf("Must be at most %d characters.", *field.MaxLength))
	}
	return field.Validate(raw)
}
