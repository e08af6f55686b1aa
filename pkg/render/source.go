package render

import (
	"fmt"

	"github.com/justyntemme/swmx/pkg/dsp/noise"
	"github.com/justyntemme/swmx/pkg/dsp/oscillator"
)

// source writes frames [start, start+len(dst)) of one input into dst.
type source interface {
	fill(dst []float32, start int64)
}

// sampleSource plays back a decoded file channel, then silence.
type sampleSource struct {
	data []float32
}

func (s *sampleSource) fill(dst []float32, start int64) {
	n := 0
	if start < int64(len(s.data)) {
		n = copy(dst, s.data[start:])
	}
	clear(dst[n:])
}

// signalSource renders a generated signal inside its [begin, end) window
// and silence outside it.
type signalSource struct {
	begin, end int64 // end < 0 means open-ended
	next       func(frame int64) float32
}

func newSignalSource(sig *Signal, rate int, total int64) (*signalSource, error) {
	s := &signalSource{
		begin: seconds(sig.Start, rate),
		end:   -1,
	}
	if sig.End > 0 {
		s.end = seconds(sig.End, rate)
	}

	amplitude, offset := float32(sig.Amplitude), float32(sig.Offset)

	switch sig.Type {
	case "constant":
		v := float32(sig.Value)
		s.next = func(int64) float32 { return v }
	case "ramp":
		last := total
		if s.end >= 0 {
			last = s.end
		}
		span := float64(max(last-s.begin-1, 1))
		from, to := sig.From, sig.To
		s.next = func(frame int64) float32 {
			t := min(float64(frame-s.begin)/span, 1)
			return float32(from + (to-from)*t)
		}
	case "noise":
		color, err := noise.ParseColor(sig.Color)
		if err != nil {
			return nil, fmt.Errorf("signal: %w", err)
		}
		gen := noise.New(color, sig.Seed)
		s.next = func(int64) float32 { return offset + amplitude*gen.Next() }
	default:
		shape, err := oscillator.ParseWaveform(sig.Type)
		if err != nil {
			return nil, fmt.Errorf("signal: %w", err)
		}
		osc := oscillator.New(shape, float64(rate))
		osc.SetFrequency(sig.Frequency)
		if sig.Width > 0 {
			osc.SetWidth(sig.Width)
		}
		s.next = func(int64) float32 { return offset + amplitude*osc.Next() }
	}
	return s, nil
}

func (s *signalSource) active(frame int64) bool {
	return frame >= s.begin && (s.end < 0 || frame < s.end)
}

func (s *signalSource) fill(dst []float32, start int64) {
	for i := range dst {
		frame := start + int64(i)
		if !s.active(frame) {
			dst[i] = 0
			continue
		}
		dst[i] = s.next(frame)
	}
}
