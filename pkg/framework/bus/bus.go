// Package bus provides the fixed bank of audio buses an algorithm reads from
// and writes to.
package bus

import (
	"fmt"
)

// Bus layout. Bus numbers are 1-based; 0 means unconnected.
const (
	Count       = 28
	InputCount  = 12
	OutputCount = 8
	AuxCount    = Count - InputCount - OutputCount

	FirstOutput = InputCount + 1
	FirstAux    = InputCount + OutputCount + 1
)

// Kind represents the role of a bus
type Kind int32

const (
	// KindNone is the unconnected bus number 0
	KindNone Kind = iota
	// KindInput represents a hardware input
	KindInput
	// KindOutput represents a hardware output
	KindOutput
	// KindAux represents an internal auxiliary bus
	KindAux
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindOutput:
		return "Output"
	case KindAux:
		return "Aux"
	default:
		return "None"
	}
}

// Info describes one bus
type Info struct {
	Number int
	Kind   Kind
	Index  int // 1-based within its kind
	Name   string
}

// Describe returns the Info of bus n. Out-of-range numbers describe bus 0.
func Describe(n int) Info {
	switch {
	case n < 1 || n > Count:
		return Info{Name: "None"}
	case n < FirstOutput:
		return Info{Number: n, Kind: KindInput, Index: n, Name: fmt.Sprintf("Input %d", n)}
	case n < FirstAux:
		i := n - InputCount
		return Info{Number: n, Kind: KindOutput, Index: i, Name: fmt.Sprintf("Output %d", i)}
	default:
		i := n - InputCount - OutputCount
		return Info{Number: n, Kind: KindAux, Index: i, Name: fmt.Sprintf("Aux %d", i)}
	}
}

// Name returns the display name of bus n.
func Name(n int) string {
	return Describe(n).Name
}

// Bank owns Count buffers of a fixed frame size.
type Bank struct {
	frames  int
	buffers [Count][]float32
}

// NewBank allocates every bus with room for frames samples.
func NewBank(frames int) *Bank {
	if frames < 0 {
		frames = 0
	}
	b := &Bank{frames: frames}
	storage := make([]float32, Count*frames)
	for i := range b.buffers {
		b.buffers[i] = storage[i*frames : (i+1)*frames : (i+1)*frames]
	}
	return b
}

// Frames returns the per-bus capacity.
func (b *Bank) Frames() int {
	return b.frames
}

// Bus returns the full buffer of bus n, or nil when n is 0 or out of range.
func (b *Bank) Bus(n int) []float32 {
	if n < 1 || n > Count {
		return nil
	}
	return b.buffers[n-1]
}

// Resolve returns the first frames samples of bus n, or nil when the bus is
// unconnected or frames exceeds the capacity.
func (b *Bank) Resolve(n, frames int) []float32 {
	buf := b.Bus(n)
	if buf == nil || frames < 0 || frames > len(buf) {
		return nil
	}
	return buf[:frames]
}

// Clear zeroes every bus.
func (b *Bank) Clear() {
	for _, buf := range b.buffers {
		clear(buf)
	}
}
