// Package oscillator generates periodic test and control signals.
package oscillator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownWaveform is returned by ParseWaveform.
var ErrUnknownWaveform = errors.New("unknown waveform")

// Waveform selects the shape an Oscillator produces.
type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
	Pulse
)

var waveformNames = [...]string{"sine", "saw", "square", "triangle", "pulse"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform accepts the lower-case waveform names.
func ParseWaveform(s string) (Waveform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWaveform, s)
}

// Oscillator is a naive (not band-limited) phase-accumulator oscillator.
// Output is bipolar in [-1, 1].
type Oscillator struct {
	shape      Waveform
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
	width      float64
}

func New(shape Waveform, sampleRate float64) *Oscillator {
	return &Oscillator{
		shape:      shape,
		sampleRate: sampleRate,
		frequency:  440.0,
		phaseInc:   440.0 / sampleRate,
		width:      0.5,
	}
}

func (o *Oscillator) Waveform() Waveform {
	return o.shape
}

func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// SetPhase sets the phase in cycles; it wraps to [0, 1).
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

// SetWidth sets the high fraction of a Pulse cycle, clamped to [0, 1].
func (o *Oscillator) SetWidth(width float64) {
	o.width = math.Max(0, math.Min(1, width))
}

func (o *Oscillator) Reset() {
	o.phase = 0.0
}

func (o *Oscillator) advance() {
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
}

func (o *Oscillator) value() float64 {
	switch o.shape {
	case Saw:
		return 2.0*o.phase - 1.0
	case Square:
		if o.phase < 0.5 {
			return 1.0
		}
		return -1.0
	case Triangle:
		if o.phase < 0.5 {
			return 4.0*o.phase - 1.0
		}
		return 3.0 - 4.0*o.phase
	case Pulse:
		if o.phase < o.width {
			return 1.0
		}
		return -1.0
	default:
		return math.Sin(2.0 * math.Pi * o.phase)
	}
}

// Next returns one sample and advances the phase.
func (o *Oscillator) Next() float32 {
	sample := float32(o.value())
	o.advance()
	return sample
}

// Process fills buffer with offset + amplitude*wave.
func (o *Oscillator) Process(buffer []float32, amplitude, offset float32) {
	for i := range buffer {
		buffer[i] = offset + amplitude*o.Next()
	}
}
