package param

import (
	"errors"
	"sync"
	"testing"
)

func TestParameterClamp(t *testing.T) {
	p := Integer(1, "fade", "Fade", 0, 10, 3).Build()

	tests := []struct {
		set, want int
	}{
		{5, 5},
		{-1, 0},
		{11, 10},
	}
	for _, tt := range tests {
		if got := p.SetValue(tt.set); got != tt.want || p.Value() != tt.want {
			t.Errorf("SetValue(%d) = %d (Value %d), want %d", tt.set, got, p.Value(), tt.want)
		}
	}

	p.Reset()
	if p.Value() != 3 {
		t.Errorf("Reset() left %d, want 3", p.Value())
	}
}

func TestBuildClampsDefault(t *testing.T) {
	p := Integer(1, "x", "X", 1, 4, 9).Build()
	if p.Default != 4 || p.Value() != 4 {
		t.Errorf("Default = %d, Value = %d, want 4", p.Default, p.Value())
	}
}

func TestNormalize(t *testing.T) {
	p := Integer(1, "pan", "Pan", -100, 100, 0).Build()

	if got := p.Normalized(); got != 0.5 {
		t.Errorf("Normalized() = %v, want 0.5", got)
	}
	tests := []struct {
		norm float64
		want int
	}{
		{0, -100},
		{1, 100},
		{0.25, -50},
		{-3, -100},
		{2, 100},
	}
	for _, tt := range tests {
		if got := p.Denormalize(tt.norm); got != tt.want {
			t.Errorf("Denormalize(%v) = %d, want %d", tt.norm, got, tt.want)
		}
	}

	flat := Integer(2, "flat", "Flat", 3, 3, 3).Build()
	if flat.Normalize(3) != 0 {
		t.Error("zero-width range should normalize to 0")
	}
}

func TestFormatDefault(t *testing.T) {
	p := Integer(1, "cc", "MIDI CC", 0, 127, 0).Build()
	if got := p.FormatValue(64); got != "64" {
		t.Errorf("FormatValue(64) = %q", got)
	}
	u := Integer(2, "x", "X", 0, 10, 0).Unit("ms").Build()
	if got := u.FormatValue(4); got != "4 ms" {
		t.Errorf("FormatValue(4) = %q", got)
	}
	if v, err := u.ParseValue("7 ms"); err != nil || v != 7 {
		t.Errorf("ParseValue(7 ms) = %d, %v", v, err)
	}
	if _, err := u.ParseValue("seven"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("ParseValue(seven) error = %v, want ErrInvalidValue", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := Integer(1, "a", "A", 0, 10, 1).Build()
	b := Integer(2, "b", "B", 0, 10, 2).Build()

	if err := r.Add(a, b); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if r.Get(2) != b || r.Lookup("a") != a || r.GetByIndex(1) != b {
		t.Error("lookup mismatch")
	}
	if r.GetByIndex(5) != nil || r.GetByIndex(-1) != nil || r.Lookup("zz") != nil {
		t.Error("missing parameters should be nil")
	}

	if err := r.Add(Integer(1, "c", "C", 0, 1, 0).Build()); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate id error = %v", err)
	}
	if err := r.Add(Integer(3, "a", "A2", 0, 1, 0).Build()); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate key error = %v", err)
	}

	all := r.All()
	if len(all) != 2 || all[0] != a || all[1] != b {
		t.Errorf("All() order wrong")
	}
}

func TestRegistryValues(t *testing.T) {
	r := NewRegistry()
	r.Add(
		Integer(1, "a", "A", 0, 10, 1).Build(),
		Integer(2, "b", "B", 0, 10, 2).Build(),
	)

	err := r.Apply(map[string]int{"a": 7, "b": 50, "nope": 1})
	if !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("Apply() error = %v, want ErrUnknownParameter", err)
	}
	values := r.Values()
	if values["a"] != 7 || values["b"] != 10 {
		t.Errorf("Values() = %v", values)
	}

	r.ResetAll()
	values = r.Values()
	if values["a"] != 1 || values["b"] != 2 {
		t.Errorf("after ResetAll: %v", values)
	}
}

func TestConcurrentValueAccess(t *testing.T) {
	p := Integer(1, "v", "V", 0, 1000, 0).Build()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p.SetValue(j)
				if v := p.Value(); v < 0 || v > 1000 {
					t.Errorf("Value() = %d out of range", v)
				}
			}
		}(i)
	}
	wg.Wait()
}
