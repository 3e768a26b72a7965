// Package formflow exposes convenience constructors over the form engine for
// callers that only need the built-in surfaces.
package formflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/storage"
	"github.com/goliatone/go-formflow/pkg/submit"
)

// Storage backend names accepted by OpenStorage.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Outcome aliases submit.Outcome for callers using the root package only.
type Outcome = submit.Outcome

// SignInConfig aliases forms.SignInConfig.
type SignInConfig = forms.SignInConfig

// FilterConfig aliases forms.FilterConfig.
type FilterConfig = forms.FilterConfig

// NewSignIn mounts the sign-in form.
func NewSignIn(cfg SignInConfig) (*forms.SignIn, error) {
	return forms.NewSignIn(cfg)
}

// NewFilter mounts the low-NSD filter panel.
func NewFilter(cfg FilterConfig) (*forms.Filter, error) {
	return forms.NewFilter(cfg)
}

// OpenStorage opens the named persisted storage backend. The returned close
// function is always non-nil.
func OpenStorage(ctx context.Context, backend, path string) (storage.Storage, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return storage.NewMemory(), noop, nil
	case BackendFile:
		if path == "" {
			return nil, noop, fmt.Errorf("formflow: file storage requires a path")
		}
		return storage.NewFile(path), noop, nil
	case BackendSQLite:
		if path == "" {
			return nil, noop, fmt.Errorf("formflow: sqlite storage requires a path")
		}
		db, err := storage.OpenSQLite(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("formflow: unknown storage backend %q", backend)
	}
}

// RenderHTML renders view with the embedded form template.
func RenderHTML(view html.View, options ...html.Option) (string, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(view)
}

// RunTerminal drives form from the terminal until it is submitted or the
// user cancels.
func RunTerminal(ctx context.Context, form tui.Form, options ...tui.Option) (Outcome, error) {
	return tui.New(options...).Run(ctx, form)
}
