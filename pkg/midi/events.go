// Package midi provides the controller events that select mixer destinations.
package midi

import (
	"fmt"
)

type EventType uint8

const (
	EventTypeControlChange EventType = iota
	EventTypeRaw
)

// Status bytes used by the mixer.
const (
	StatusControlChange byte = 0xB0
	StatusNoteOn        byte = 0x90

	statusClassMask byte = 0xF0
	channelMask     byte = 0x0F
)

// Event is anything that can be scheduled at an absolute frame offset and
// delivered to an algorithm as a 3-byte message.
type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int64
	Bytes() (status, data1, data2 byte)
	String() string
}

type BaseEvent struct {
	EventChannel uint8 // 0-15
	Offset       int64
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) SampleOffset() int64 {
	return e.Offset
}

// ControlChangeEvent is a decoded continuous-controller message.
type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

func (e ControlChangeEvent) Type() EventType {
	return EventTypeControlChange
}

func (e ControlChangeEvent) Bytes() (status, data1, data2 byte) {
	return StatusControlChange | (e.EventChannel & channelMask), e.Controller & 0x7F, e.Value & 0x7F
}

// ChannelNumber returns the 1-based channel as shown to users.
func (e ControlChangeEvent) ChannelNumber() int {
	return int(e.EventChannel) + 1
}

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.ChannelNumber(), e.Controller, e.Value, e.Offset)
}

// RawEvent carries an undecoded 3-byte message. It is used to deliver
// messages the mixer is expected to ignore.
type RawEvent struct {
	Offset int64
	Data   [3]byte
}

func (e RawEvent) Type() EventType {
	return EventTypeRaw
}

func (e RawEvent) Channel() uint8 {
	return e.Data[0] & channelMask
}

func (e RawEvent) SampleOffset() int64 {
	return e.Offset
}

func (e RawEvent) Bytes() (status, data1, data2 byte) {
	return e.Data[0], e.Data[1], e.Data[2]
}

func (e RawEvent) String() string {
	return fmt.Sprintf("Raw{%02X %02X %02X, offset:%d}", e.Data[0], e.Data[1], e.Data[2], e.Offset)
}

// withOffset returns a copy of e moved by delta frames.
func withOffset(e Event, delta int64) Event {
	switch ev := e.(type) {
	case ControlChangeEvent:
		ev.Offset += delta
		return ev
	case RawEvent:
		ev.Offset += delta
		return ev
	}
	return e
}
