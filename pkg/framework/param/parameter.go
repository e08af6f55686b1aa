// Package param provides the integer-valued parameter table an algorithm
// exposes to its host.
package param

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Parameter represents one algorithm parameter. Values are plain integers in
// [Min, Max]; enums store the choice index.
type Parameter struct {
	ID        uint32
	Key       string
	Name      string
	ShortName string
	Unit      string
	Min       int
	Max       int
	Default   int
	Flags     uint32

	// Atomic value for lock-free access in audio thread
	value atomic.Int64

	choices    []string
	formatFunc func(int) string
	parseFunc  func(string) (int, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsList      uint32 = 1 << 3
	IsBypass    uint32 = 1 << 16
)

// Value returns the current plain value.
func (p *Parameter) Value() int {
	return int(p.value.Load())
}

// SetValue stores v clamped to [Min, Max] and returns the stored value.
func (p *Parameter) SetValue(v int) int {
	v = p.Clamp(v)
	p.value.Store(int64(v))
	return v
}

// Bool reports whether the value is nonzero.
func (p *Parameter) Bool() bool {
	return p.Value() != 0
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.Default)
}

// Clamp limits v to the parameter range.
func (p *Parameter) Clamp(v int) int {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// Normalized returns the current value mapped to 0..1.
func (p *Parameter) Normalized() float64 {
	return p.Normalize(p.Value())
}

// Normalize converts a plain value to 0..1.
func (p *Parameter) Normalize(plain int) float64 {
	if p.Max <= p.Min {
		return 0
	}
	return float64(p.Clamp(plain)-p.Min) / float64(p.Max-p.Min)
}

// Denormalize converts 0..1 to the nearest plain value.
func (p *Parameter) Denormalize(normalized float64) int {
	if normalized <= 0 {
		return p.Min
	}
	if normalized >= 1 {
		return p.Max
	}
	span := float64(p.Max - p.Min)
	return p.Min + int(normalized*span+0.5)
}

// Choices returns the enum strings, or nil for numeric parameters.
func (p *Parameter) Choices() []string {
	return p.choices
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(int) string, parse func(string) (int, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// String formats the current value.
func (p *Parameter) String() string {
	return p.FormatValue(p.Value())
}

// FormatValue returns the display string of a plain value.
func (p *Parameter) FormatValue(plain int) string {
	plain = p.Clamp(plain)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if i := plain - p.Min; p.choices != nil && i >= 0 && i < len(p.choices) {
		return p.choices[i]
	}
	if p.Unit != "" {
		return fmt.Sprintf("%d %s", plain, p.Unit)
	}
	return strconv.Itoa(plain)
}

// ParseValue parses a display string or number into a clamped plain value.
func (p *Parameter) ParseValue(str string) (int, error) {
	str = strings.TrimSpace(str)
	if p.parseFunc != nil {
		v, err := p.parseFunc(str)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %w", p.Key, err)
		}
		return p.Clamp(v), nil
	}
	for i, c := range p.choices {
		if strings.EqualFold(str, c) {
			return p.Min + i, nil
		}
	}
	str = strings.TrimSpace(strings.TrimSuffix(str, p.Unit))
	v, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w: %q", p.Key, ErrInvalidValue, str)
	}
	return p.Clamp(v), nil
}
