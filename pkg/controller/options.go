package controller

import (
	"github.com/goliatone/go-formflow/pkg/store"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Policy is a submit-time gate for one field, checked after the field's own
// validator. It also feeds IsSubmittable.
type Policy struct {
	Field string
	Check validation.Func
}

// Logger is the minimal logging surface used by the controller.
type Logger interface {
	Printf(format string, args ...any)
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore injects the state store, e.g. a shared slice from
// store.Registry. By default each controller owns a private store.
func WithStore(s store.Store) Option {
	return func(c *Controller) {
		if s != nil {
			c.store = s
		}
	}
}

// WithPolicy appends submit-time policies.
func WithPolicy(policies ...Policy) Option {
	return func(c *Controller) {
		c.policies = append(c.policies, policies...)
	}
}

// WithLogger routes controller logs to logger.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycle shares a lifecycle with guarded collaborators so Dispose
// silences them too.
func WithLifecycle(lc *submit.Lifecycle) Option {
	return func(c *Controller) {
		if lc != nil {
			c.lifecycle = lc
		}
	}
}

// WithID overrides the generated controller id.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}
