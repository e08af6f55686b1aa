package plugin

import (
	"errors"
	"fmt"
)

var ErrInvalidSpecification = errors.New("invalid specification")

// Specification is a construction-time setting, fixed for the lifetime of an
// instance.
type Specification struct {
	Key     string
	Name    string
	Min     int
	Max     int
	Default int
}

// Specifications is an ordered list of construction settings.
type Specifications []Specification

// Defaults returns the default value of every specification keyed by Key.
func (s Specifications) Defaults() map[string]int {
	values := make(map[string]int, len(s))
	for _, spec := range s {
		values[spec.Key] = spec.Default
	}
	return values
}

// Resolve fills missing keys with defaults and checks every value against its
// range. Unknown keys are rejected.
func (s Specifications) Resolve(values map[string]int) (map[string]int, error) {
	out := s.Defaults()
	for key, v := range values {
		spec, ok := s.find(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown specification %q", ErrInvalidSpecification, key)
		}
		if v < spec.Min || v > spec.Max {
			return nil, fmt.Errorf("%w: %s = %d (want %d..%d)", ErrInvalidSpecification, spec.Name, v, spec.Min, spec.Max)
		}
		out[key] = v
	}
	return out, nil
}

func (s Specifications) find(key string) (Specification, bool) {
	for _, spec := range s {
		if spec.Key == key {
			return spec, true
		}
	}
	return Specification{}, false
}
