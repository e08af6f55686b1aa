package bus

import (
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		n     int
		kind  Kind
		index int
		name  string
	}{
		{0, KindNone, 0, "None"},
		{-2, KindNone, 0, "None"},
		{29, KindNone, 0, "None"},
		{1, KindInput, 1, "Input 1"},
		{12, KindInput, 12, "Input 12"},
		{13, KindOutput, 1, "Output 1"},
		{20, KindOutput, 8, "Output 8"},
		{21, KindAux, 1, "Aux 1"},
		{28, KindAux, 8, "Aux 8"},
	}

	for _, tt := range tests {
		got := Describe(tt.n)
		if got.Kind != tt.kind || got.Index != tt.index || got.Name != tt.name {
			t.Errorf("Describe(%d) = %+v, want kind %v index %d name %q", tt.n, got, tt.kind, tt.index, tt.name)
		}
		if Name(tt.n) != tt.name {
			t.Errorf("Name(%d) = %q, want %q", tt.n, Name(tt.n), tt.name)
		}
	}
}

func TestBankResolve(t *testing.T) {
	b := NewBank(128)

	if b.Frames() != 128 {
		t.Errorf("Frames() = %d, want 128", b.Frames())
	}
	if b.Resolve(0, 64) != nil {
		t.Error("bus 0 should resolve to nil")
	}
	if b.Resolve(Count+1, 64) != nil {
		t.Error("out of range bus should resolve to nil")
	}
	if b.Resolve(3, 256) != nil {
		t.Error("oversized request should resolve to nil")
	}

	buf := b.Resolve(3, 64)
	if len(buf) != 64 {
		t.Fatalf("len(Resolve(3, 64)) = %d, want 64", len(buf))
	}
	buf[0] = 1
	if b.Bus(3)[0] != 1 {
		t.Error("Resolve should alias the bank storage")
	}
	if b.Bus(2)[127] != 0 || b.Bus(4)[0] != 0 {
		t.Error("buses overlap")
	}
}

func TestBankBusesDoNotOverlap(t *testing.T) {
	b := NewBank(4)
	for n := 1; n <= Count; n++ {
		buf := b.Bus(n)
		// Appending must not spill into the next bus.
		buf = append(buf, 99)
		_ = buf
	}
	for n := 1; n <= Count; n++ {
		for i, v := range b.Bus(n) {
			if v != 0 {
				t.Fatalf("bus %d sample %d = %v after append", n, i, v)
			}
		}
	}
}

func TestBankClear(t *testing.T) {
	b := NewBank(8)
	for n := 1; n <= Count; n++ {
		b.Bus(n)[0] = float32(n)
	}

	b.Clear()
	for n := 1; n <= Count; n++ {
		if b.Bus(n)[0] != 0 {
			t.Fatalf("bus %d not cleared", n)
		}
	}
}
