package submit

import (
	"context"
	"sync/atomic"

	"github.com/goliatone/go-formflow/pkg/storage"
)

// DefaultRoute is where a successful sign-in navigates.
const DefaultRoute = "/"

// Navigator moves the embedding application to another view.
type Navigator interface {
	Navigate(ctx context.Context, route string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string) error

func (fn NavigatorFunc) Navigate(ctx context.Context, route string) error {
	return fn(ctx, route)
}

// Closer hides the surface that triggered a submission, e.g. a filter panel.
type Closer interface {
	Close(ctx context.Context) error
}

// CloserFunc adapts a function to Closer.
type CloserFunc func(ctx context.Context) error

func (fn CloserFunc) Close(ctx context.Context) error {
	return fn(ctx)
}

// Lifecycle tracks whether the surface owning a pipeline is still mounted.
// Guarded collaborators turn into no-ops once it is disposed.
type Lifecycle struct {
	disposed atomic.Bool
}

// NewLifecycle returns a mounted lifecycle.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Dispose marks the surface unmounted. It is idempotent.
func (l *Lifecycle) Dispose() {
	if l != nil {
		l.disposed.Store(true)
	}
}

// Disposed reports whether Dispose was called.
func (l *Lifecycle) Disposed() bool {
	return l != nil && l.disposed.Load()
}

// GuardNavigator drops navigation requests after lc is disposed.
func GuardNavigator(lc *Lifecycle, next Navigator) Navigator {
	return NavigatorFunc(func(ctx context.Context, route string) error {
		if next == nil || lc.Disposed() {
			return nil
		}
		return next.Navigate(ctx, route)
	})
}

// GuardCloser drops close requests after lc is disposed.
func GuardCloser(lc *Lifecycle, next Closer) Closer {
	return CloserFunc(func(ctx context.Context) error {
		if next == nil || lc.Disposed() {
			return nil
		}
		return next.Close(ctx)
	})
}

// GuardStorage drops writes after lc is disposed. Reads pass through.
func GuardStorage(lc *Lifecycle, next storage.Storage) storage.Storage {
	return &guardedStorage{lc: lc, next: next}
}

type guardedStorage struct {
	lc   *Lifecycle
	next storage.Storage
}

func (g *guardedStorage) Set(ctx context.Context, key, value string) error {
	if g.next == nil || g.lc.Disposed() {
		return nil
	}
	return g.next.Set(ctx, key, value)
}

func (g *guardedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if g.next == nil {
		return "", false, nil
	}
	return g.next.Get(ctx, key)
}

func (g *guardedStorage) Delete(ctx context.Context, key string) error {
	if g.next == nil || g.lc.Disposed() {
		return nil
	}
	return g.next.Delete(ctx, key)
}
