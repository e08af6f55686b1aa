package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// IsControlChange reports whether status belongs to the continuous-controller class.
func IsControlChange(status byte) bool {
	return status&statusClassMask == StatusControlChange
}

// Parse decodes a 3-byte message. ok is false for anything that is not a
// control change.
func Parse(status, data1, data2 byte) (ev ControlChangeEvent, ok bool) {
	if !IsControlChange(status) {
		return ControlChangeEvent{}, false
	}
	msg := gomidi.Message{status, data1, data2}
	var ch, cc, val uint8
	if !msg.GetControlChange(&ch, &cc, &val) {
		return ControlChangeEvent{}, false
	}
	ev.EventChannel = ch
	ev.Controller = cc
	ev.Value = val
	return ev, true
}

// NewControlChange builds a control change at offset. channel is 1-based
// (1..16) and is clamped into range.
func NewControlChange(offset int64, channel int, controller, value uint8) ControlChangeEvent {
	if channel < 1 {
		channel = 1
	} else if channel > 16 {
		channel = 16
	}
	msg := gomidi.ControlChange(uint8(channel-1), controller, value)
	ev, _ := Parse(msg[0], msg[1], msg[2])
	ev.Offset = offset
	return ev
}
