package debug

import (
	"fmt"
	"math"

	"github.com/justyntemme/swmx/pkg/dsp/gain"
)

// AudioAnalyzer measures rendered audio buffers.
type AudioAnalyzer struct {
	clippingThreshold float32
	silenceThreshold  float32
}

// NewAudioAnalyzer creates a new audio analyzer with default settings.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		clippingThreshold: 0.99,
		silenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	Silent         bool
}

// PeakDb returns the peak level in dBFS, or -inf for silence.
func (r AnalysisResult) PeakDb() float64 {
	if r.Peak <= 0 {
		return math.Inf(-1)
	}
	return gain.LinearToDb(float64(r.Peak))
}

func (r AnalysisResult) String() string {
	return fmt.Sprintf("peak %.1f dBFS, rms %.4f, dc %.4f, clipped %d, nan %d",
		r.PeakDb(), r.RMS, r.DC, r.ClippedSamples, r.NaNCount)
}

// Analyze measures one buffer.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	var m Meter
	m.threshold = a.clippingThreshold
	m.Add(buffer)
	return m.Result(a.silenceThreshold)
}

// Meter accumulates statistics over many blocks.
type Meter struct {
	threshold float32

	n          int
	nan        int
	clipped    int
	peak       float32
	sum, sumSq float64
}

// NewMeter returns a meter using the analyzer's clipping threshold.
func (a *AudioAnalyzer) NewMeter() *Meter {
	return &Meter{threshold: a.clippingThreshold}
}

// Add accumulates buffer into the meter.
func (m *Meter) Add(buffer []float32) {
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) {
			m.nan++
			continue
		}
		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > m.peak {
			m.peak = abs
		}
		if m.threshold > 0 && abs >= m.threshold {
			m.clipped++
		}
		m.sum += float64(sample)
		m.sumSq += float64(sample) * float64(sample)
		m.n++
	}
}

// Result returns the statistics accumulated so far.
func (m *Meter) Result(silence float32) AnalysisResult {
	r := AnalysisResult{
		Samples:        m.n,
		Peak:           m.peak,
		ClippedSamples: m.clipped,
		NaNCount:       m.nan,
	}
	if m.n > 0 {
		r.RMS = float32(math.Sqrt(m.sumSq / float64(m.n)))
		r.DC = float32(m.sum / float64(m.n))
	}
	r.Silent = r.RMS < silence
	return r
}

// CheckBuffer returns a list of problems found in buffer, or nil.
func CheckBuffer(buffer []float32, name string) []string {
	r := NewAudioAnalyzer().Analyze(buffer)
	var issues []string
	if r.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d NaN samples", name, r.NaNCount))
	}
	if r.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d clipped samples (peak %.3f)", name, r.ClippedSamples, r.Peak))
	}
	return issues
}
