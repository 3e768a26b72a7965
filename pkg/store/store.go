package store

import "sync"

// Store is the contract controllers depend on. Implementations must make each
// Set a single atomic merge and must hand out copies from Get.
type Store interface {
	Get() State
	Set(partial map[string]string)
	SetError(name, message string)
	Reset(initial State)
	Subscribe(fn func(State)) (unsubscribe func())
}

// Memory is the in-process Store implementation.
type Memory struct {
	mu        sync.Mutex
	state     State
	observers map[int]func(State)
	nextID    int
}

var _ Store = (*Memory)(nil)

// NewMemory returns a store seeded with a copy of initial.
func NewMemory(initial State) *Memory {
	return &Memory{
		state:     initial.Clone(),
		observers: make(map[int]func(State)),
	}
}

// Get returns a snapshot of the current state.
func (m *Memory) Get() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Set merges partial into the current values, overwriting only the named
// keys.
func (m *Memory) Set(partial map[string]string) {
	if len(partial) == 0 {
		return
	}
	m.mu.Lock()
	if m.state.Values == nil {
		m.state.Values = make(map[string]string, len(partial))
	}
	for name, value := range partial {
		m.state.Values[name] = value
	}
	snapshot, observers := m.snapshotLocked()
	m.mu.Unlock()
	notify(observers, snapshot)
}

// SetError records message for name; an empty message clears the error.
func (m *Memory) SetError(name, message string) {
	m.mu.Lock()
	if m.state.Errors == nil {
		m.state.Errors = make(map[string]string)
	}
	if message == "" {
		if _, ok := m.state.Errors[name]; !ok {
			m.mu.Unlock()
			return
		}
		delete(m.state.Errors, name)
	} else {
		m.state.Errors[name] = message
	}
	snapshot, observers := m.snapshotLocked()
	m.mu.Unlock()
	notify(observers, snapshot)
}

// Reset replaces the whole state with a copy of initial.
func (m *Memory) Reset(initial State) {
	m.mu.Lock()
	m.state = initial.Clone()
	snapshot, observers := m.snapshotLocked()
	m.mu.Unlock()
	notify(observers, snapshot)
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (m *Memory) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	if m.observers == nil {
		m.observers = make(map[int]func(State))
	}
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.observers, id)
			m.mu.Unlock()
		})
	}
}

func (m *Memory) snapshotLocked() (State, []func(State)) {
	if len(m.observers) == 0 {
		return State{}, nil
	}
	observers := make([]func(State), 0, len(m.observers))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	return m.state.Clone(), observers
}

func notify(observers []func(State), snapshot State) {
	for _, fn := range observers {
		fn(snapshot)
	}
}
