package equations

import (
	"sort"
	"sync"
)

// Registry maps names to equations so that equations can use each other's
// results. It is safe for concurrent use. The zero value is an empty registry
// ready to use.
type Registry struct {
	mu  sync.RWMutex
	eqs map[string]*Equation
}

// Default is the registry equations use unless they are created with In.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{eqs: make(map[string]*Equation)}
}

// Set registers e under name, replacing any equation already registered with
// that name. Setting a nil equation is the same as Delete.
func (r *Registry) Set(name string, e *Equation) {
	if e == nil {
		r.Delete(name)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.eqs == nil {
		r.eqs = make(map[string]*Equation)
	}
	r.eqs[name] = e
}

// Get returns the equation registered under name, or nil if there is none.
// A nil registry has no equations.
func (r *Registry) Get(name string) *Equation {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.eqs[name]
}

// Delete removes the equation registered under name, if any.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.eqs, name)
}

// Clear removes all equations.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eqs = make(map[string]*Equation)
}

// Names returns the sorted names of all registered equations.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.eqs))
	for k := range r.eqs {
		names = append(names, k)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
