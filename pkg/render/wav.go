package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	resampling "github.com/tphakala/go-audio-resampling"
)

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrChannelCount        = errors.New("channel count mismatch")
)

// Audio is decoded, de-interleaved audio in [-1, 1].
type Audio struct {
	SampleRate int
	Channels   [][]float32
}

// Frames returns the length of the longest channel.
func (a *Audio) Frames() int {
	n := 0
	for _, ch := range a.Channels {
		n = max(n, len(ch))
	}
	return n
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8:
		return 128.0, nil
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}

// ReadWAV decodes a PCM WAV file.
func ReadWAV(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	a, err := DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeWAV decodes a PCM WAV stream.
func DecodeWAV(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, ErrNotWavFile
	}

	// 8-bit WAV data is unsigned.
	var bias int
	if dec.BitDepth == 8 {
		bias = 128
	}
	scale, err := fullScale(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	numChans := buf.Format.NumChannels
	frames := len(buf.Data) / numChans
	a := &Audio{
		SampleRate: buf.Format.SampleRate,
		Channels:   make([][]float32, numChans),
	}
	for c := range a.Channels {
		a.Channels[c] = make([]float32, frames)
	}
	for i := 0; i < frames*numChans; i++ {
		a.Channels[i%numChans][i/numChans] = float32(float64(buf.Data[i]-bias) / scale)
	}
	return a, nil
}

// WriteWAV encodes channels as a PCM WAV file at bitDepth (16 or 24),
// creating parent directories as needed.
func WriteWAV(path string, sampleRate, bitDepth int, channels ...[]float32) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeWAV(f, sampleRate, bitDepth, channels...); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// EncodeWAV interleaves channels, which must share one length, and writes
// them as PCM. Samples outside [-1, 1] are clipped.
func EncodeWAV(w io.WriteSeeker, sampleRate, bitDepth int, channels ...[]float32) error {
	if len(channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrChannelCount)
	}
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel lengths differ", ErrChannelCount)
		}
	}

	scale, _ := fullScale(bitDepth)
	peak := scale - 1
	numChans := len(channels)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		Data:           make([]int, frames*numChans),
		SourceBitDepth: bitDepth,
	}
	for i := 0; i < frames; i++ {
		for c, ch := range channels {
			v := math.Round(float64(ch[i]) * scale)
			buf.Data[i*numChans+c] = int(math.Max(-scale, math.Min(peak, v)))
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChans, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// resampleTail is the silence appended to push the filter's delay line out.
const resampleTail = 1024

// Resample converts one channel from rate from to rate to. The result has
// exactly round(len(in) * to / from) samples.
func Resample(in []float32, from, to int) ([]float32, error) {
	if from == to {
		out := make([]float32, len(in))
		copy(out, in)
		return out, nil
	}
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("invalid resample rates %d -> %d", from, to)
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	input := make([]float64, len(in)+resampleTail)
	for i, v := range in {
		input[i] = float64(v)
	}
	output, err := r.Process(input)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}

	want := int(math.Round(float64(len(in)) * float64(to) / float64(from)))
	out := make([]float32, want)
	for i := range out {
		if i < len(output) {
			out[i] = float32(output[i])
		}
	}
	return out, nil
}

// Resample converts every channel to rate hz in place.
func (a *Audio) Resample(hz int) error {
	if a.SampleRate == hz {
		return nil
	}
	for c, ch := range a.Channels {
		out, err := Resample(ch, a.SampleRate, hz)
		if err != nil {
			return err
		}
		a.Channels[c] = out
	}
	a.SampleRate = hz
	return nil
}
