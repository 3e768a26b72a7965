package validation

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in validator names available from NewRegistry.
const (
	NameMobile         = "mobile"
	NameMobileComplete = "mobile_complete"
	NameDecimal        = "decimal"
	NameRequired       = "required"
)

// Registry resolves validators by name so declarative schemas can reference
// them.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns a registry seeded with the built-in validators.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.funcs[NameMobile] = MobileNumber
	r.funcs[NameMobileComplete] = MobileComplete
	r.funcs[NameDecimal] = Decimal("")
	r.funcs[NameRequired] = Required("")
	return r
}

// Register adds or replaces a named validator.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return fmt.Errorf("validation: validator name and func required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = make(map[string]Func)
	}
	r.funcs[name] = fn
	return nil
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[strings.TrimSpace(name)]
	return fn, ok
}

// Resolve looks up several names and chains them, failing on the first
// unknown name. Names starting with TagPrefix compile to a Tag validator.
func (r *Registry) Resolve(names ...string) (Func, error) {
	var fns []Func
	for _, name := range names {
		if expr, ok := strings.CutPrefix(strings.TrimSpace(name), TagPrefix); ok {
			fn, err := Tag(expr, "")
			if err != nil {
				return nil, err
			}
			fns = append(fns, fn)
			continue
		}
		fn, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
		}
		fns = append(fns, fn)
	}
	switch len(fns) {
	case 0:
		return nil, nil
	case 1:
		return fns[0], nil
	default:
		return Chain(fns...), nil
	}
}

// Names lists registered validator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
