package testsupport

import (
	"context"
	"fmt"
	"sync"
)

// NopLogger discards everything.
type NopLogger struct{}

// Printf implements the Logger interfaces used across formflow.
func (NopLogger) Printf(string, ...any) {}

// RecordingLogger keeps formatted lines for assertions.
type RecordingLogger struct {
	mu    sync.Mutex
	lines []string
}

// Printf records the formatted line.
func (l *RecordingLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded lines.
func (l *RecordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Navigator records every route it is asked to open.
type Navigator struct {
	mu     sync.Mutex
	routes []string
	Err    error
}

// Navigate records route and returns the configured error.
func (n *Navigator) Navigate(_ context.Context, route string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
	return n.Err
}

// Routes returns the recorded routes.
func (n *Navigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// Closer counts close signals.
type Closer struct {
	mu    sync.Mutex
	count int
}

// Close records one close signal.
func (c *Closer) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return nil
}

// Count reports how many close signals were received.
func (c *Closer) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
