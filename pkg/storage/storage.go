package storage

import (
	"context"
	"errors"
	"sync"
)

// Well-known keys written on sign-in.
const (
	KeyUserData   = "userData"
	KeyIsLoggedIn = "isLoggedIn"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: closed")

// Storage is a string key/value store.
type Storage interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// Memory keeps values in process. It is the default for tests and the CLI.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Storage = (*Memory)(nil)

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Snapshot copies every stored pair.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
