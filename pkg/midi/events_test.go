package midi

import (
	"testing"
)

func TestControlChangeEvent(t *testing.T) {
	event := ControlChangeEvent{
		BaseEvent:  BaseEvent{EventChannel: 2, Offset: 50},
		Controller: 7,
		Value:      100,
	}

	if event.Type() != EventTypeControlChange {
		t.Errorf("Expected type %v, got %v", EventTypeControlChange, event.Type())
	}
	if event.Channel() != 2 {
		t.Errorf("Expected channel 2, got %d", event.Channel())
	}
	if event.ChannelNumber() != 3 {
		t.Errorf("Expected channel number 3, got %d", event.ChannelNumber())
	}

	status, d1, d2 := event.Bytes()
	if status != 0xB2 || d1 != 7 || d2 != 100 {
		t.Errorf("Bytes() = %02X %02X %02X, want B2 07 64", status, d1, d2)
	}

	expected := "CC{ch:3, ctrl:7, val:100, offset:50}"
	if event.String() != expected {
		t.Errorf("Expected string %s, got %s", expected, event.String())
	}
}

func TestRawEvent(t *testing.T) {
	event := RawEvent{Offset: 10, Data: [3]byte{0x93, 60, 100}}
	if event.Type() != EventTypeRaw {
		t.Errorf("Expected raw type, got %v", event.Type())
	}
	if event.Channel() != 3 {
		t.Errorf("Expected channel 3, got %d", event.Channel())
	}
	s, d1, d2 := event.Bytes()
	if s != 0x93 || d1 != 60 || d2 != 100 {
		t.Errorf("Bytes() = %02X %02X %02X", s, d1, d2)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		status     byte
		d1, d2     byte
		ok         bool
		channel    uint8
		controller uint8
		value      uint8
	}{
		{"CC channel 1", 0xB0, 0, 127, true, 0, 0, 127},
		{"CC channel 16", 0xBF, 74, 12, true, 15, 74, 12},
		{"Note on ignored", 0x90, 60, 100, false, 0, 0, 0},
		{"Program change ignored", 0xC0, 5, 0, false, 0, 0, 0},
		{"Pitch bend ignored", 0xE0, 0, 64, false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Parse(tt.status, tt.d1, tt.d2)
			if ok != tt.ok {
				t.Fatalf("Parse ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if ev.Channel() != tt.channel || ev.Controller != tt.controller || ev.Value != tt.value {
				t.Errorf("Parse = %v, want ch %d cc %d val %d", ev, tt.channel, tt.controller, tt.value)
			}
		})
	}
}

func TestIsControlChange(t *testing.T) {
	for s := 0; s < 256; s++ {
		want := s >= 0xB0 && s <= 0xBF
		if got := IsControlChange(byte(s)); got != want {
			t.Errorf("IsControlChange(%02X) = %v, want %v", s, got, want)
		}
	}
}

func TestNewControlChange(t *testing.T) {
	ev := NewControlChange(480, 10, 3, 64)
	if ev.ChannelNumber() != 10 || ev.Controller != 3 || ev.Value != 64 || ev.Offset != 480 {
		t.Errorf("NewControlChange = %v", ev)
	}

	clamped := NewControlChange(0, 99, 1, 1)
	if clamped.ChannelNumber() != 16 {
		t.Errorf("channel should clamp to 16, got %d", clamped.ChannelNumber())
	}
	clamped = NewControlChange(0, 0, 1, 1)
	if clamped.ChannelNumber() != 1 {
		t.Errorf("channel should clamp to 1, got %d", clamped.ChannelNumber())
	}
}
