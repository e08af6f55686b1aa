package param

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicate        = errors.New("duplicate parameter")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrInvalidValue     = errors.New("invalid value")
)

// Registry manages plugin parameters
type Registry struct {
	params map[uint32]*Parameter
	keys   map[string]*Parameter
	order  []uint32 // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		keys:   make(map[string]*Parameter),
		order:  make([]uint32, 0),
	}
}

// Add registers parameters. IDs and keys must be unique.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("%w: id %d", ErrDuplicate, p.ID)
		}
		if _, exists := r.keys[p.Key]; exists {
			return fmt.Errorf("%w: key %q", ErrDuplicate, p.Key)
		}
		r.params[p.ID] = p
		r.keys[p.Key] = p
		r.order = append(r.order, p.ID)
	}

	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// Lookup retrieves a parameter by key.
func (r *Registry) Lookup(key string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.keys[key]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.order) {
		return nil
	}

	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}

// Values returns the current value of every parameter keyed by parameter key.
func (r *Registry) Values() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make(map[string]int, len(r.order))
	for _, id := range r.order {
		p := r.params[id]
		values[p.Key] = p.Value()
	}
	return values
}

// Set stores value into the parameter named key.
func (r *Registry) Set(key string, value int) error {
	p := r.Lookup(key)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	p.SetValue(value)
	return nil
}

// Apply stores every value in values. Unknown keys are collected into the
// returned error; known keys are applied regardless.
func (r *Registry) Apply(values map[string]int) error {
	var errs []error
	for key, v := range values {
		if err := r.Set(key, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResetAll restores every parameter to its default.
func (r *Registry) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.params {
		p.Reset()
	}
}
