package param

import (
	"sync"
)

// Registry manages plugin parameters by dense ordinal.
//
// Besides guarding its own structure, a Registry carries the shared
// parameter lock: the audio thread and the delegate/UI thread both take it
// around compare-and-write sequences and change notifications.
type Registry struct {
	params []*Parameter
	byName map[string]*Parameter
	mu     sync.RWMutex

	shared sync.Mutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make([]*Parameter, 0),
		byName: make(map[string]*Parameter),
	}
}

// Add registers parameters in order, assigning each its ordinal.
func (r *Registry) Add(params ...*Parameter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		p.ID = uint32(len(r.params))
		r.params = append(r.params, p)
		if p.Name != "" {
			r.byName[p.Name] = p
		}
	}
}

// GetByIndex retrieves a parameter by ordinal
func (r *Registry) GetByIndex(index int) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.params) {
		return nil
	}
	return r.params[index]
}

// GetByName retrieves a parameter by name
func (r *Registry) GetByName(name string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.params)
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.params))
	copy(result, r.params)
	return result
}

// Lock acquires the shared parameter lock.
func (r *Registry) Lock() {
	r.shared.Lock()
}

// Unlock releases the shared parameter lock.
func (r *Registry) Unlock() {
	r.shared.Unlock()
}

// ResetAll restores every parameter to its default value.
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
