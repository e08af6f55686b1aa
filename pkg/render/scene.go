package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/justyntemme/swmx/pkg/dsp/noise"
	"github.com/justyntemme/swmx/pkg/dsp/oscillator"
	"github.com/justyntemme/swmx/pkg/framework/bus"
	"github.com/justyntemme/swmx/pkg/router"
)

// Scene defaults.
const (
	DefaultBlockSize = 128
	DefaultBitDepth  = 24
	MaxBlockSize     = 4096
)

// ErrInvalidScene wraps every scene validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// FieldError names the scene field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidScene
}

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Scene describes one offline render.
type Scene struct {
	SampleRate   int            `yaml:"sample_rate"`
	BlockSize    int            `yaml:"block_size"`
	Duration     float64        `yaml:"duration"` // seconds; 0 uses the longest input file
	Groups       int            `yaml:"groups"`
	Destinations int            `yaml:"destinations"`
	Preset       string         `yaml:"preset"`
	Params       map[string]any `yaml:"params"`
	Inputs       []Input        `yaml:"inputs"`
	Midi         []MidiEvent    `yaml:"midi"`
	Outputs      []Output       `yaml:"outputs"`

	// Dir resolves relative file names. LoadScene sets it to the scene's
	// directory.
	Dir string `yaml:"-"`
}

// Input feeds one bus from a WAV file channel or a generated signal.
type Input struct {
	Bus     int     `yaml:"bus"`
	File    string  `yaml:"file"`
	Channel int     `yaml:"channel"` // 0-based file channel
	Signal  *Signal `yaml:"signal"`
}

// Signal is a generated input. Type is constant, ramp, noise, or any
// oscillator waveform (sine, saw, square, triangle, pulse). Periodic and
// noise signals produce offset + amplitude*wave.
type Signal struct {
	Type      string  `yaml:"type"`
	Value     float64 `yaml:"value"`
	From      float64 `yaml:"from"`
	To        float64 `yaml:"to"`
	Start     float64 `yaml:"start"` // seconds
	End       float64 `yaml:"end"`   // seconds; 0 is the end of the render
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Offset    float64 `yaml:"offset"`
	Width     float64 `yaml:"width"`
	Color     string  `yaml:"color"` // noise: white, pink or brown
	Seed      int64   `yaml:"seed"`
}

// MidiEvent is a controller message at Time seconds. Raw, when set, is sent
// as-is instead of a control change built from Channel, CC and Value.
type MidiEvent struct {
	Time    float64 `yaml:"time"`
	Channel int     `yaml:"channel"` // 1-based
	CC      int     `yaml:"cc"`
	Value   int     `yaml:"value"`
	Raw     []int   `yaml:"raw"`
}

// Output writes one or two buses to a WAV file.
type Output struct {
	File     string `yaml:"file"`
	Left     int    `yaml:"left"`
	Right    int    `yaml:"right"` // 0 writes a mono file
	BitDepth int    `yaml:"bit_depth"`
}

// Channels returns 1 for mono outputs and 2 for stereo.
func (o Output) Channels() int {
	if o.Right > 0 {
		return 2
	}
	return 1
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	return ParseScene(data, filepath.Dir(path))
}

// ParseScene decodes YAML, fills defaults and validates the result.
func ParseScene(data []byte, dir string) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	s.Dir = dir
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.SampleRate == 0 {
		s.SampleRate = router.DefaultSampleRate
	}
	if s.BlockSize == 0 {
		s.BlockSize = DefaultBlockSize
	}
	if s.Groups == 0 {
		s.Groups = 1
	}
	if s.Destinations == 0 {
		s.Destinations = router.MinDestinations
	}
	for i := range s.Outputs {
		if s.Outputs[i].BitDepth == 0 {
			s.Outputs[i].BitDepth = DefaultBitDepth
		}
	}
}

// Validate checks every field and joins the failures.
func (s *Scene) Validate() error {
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	if s.SampleRate <= 0 {
		add(fieldErr("sample_rate", "must be positive, got %d", s.SampleRate))
	}
	if s.BlockSize <= 0 || s.BlockSize%4 != 0 || s.BlockSize > MaxBlockSize {
		add(fieldErr("block_size", "must be a positive multiple of 4 up to %d, got %d", MaxBlockSize, s.BlockSize))
	}
	if s.Duration < 0 {
		add(fieldErr("duration", "must not be negative"))
	}
	if s.Groups < 1 || s.Groups > router.MaxGroups {
		add(fieldErr("groups", "must be 1..%d, got %d", router.MaxGroups, s.Groups))
	}
	if s.Destinations < router.MinDestinations || s.Destinations > router.MaxDestinations {
		add(fieldErr("destinations", "must be %d..%d, got %d",
			router.MinDestinations, router.MaxDestinations, s.Destinations))
	}

	hasFile := false
	for i, in := range s.Inputs {
		field := fmt.Sprintf("inputs[%d]", i)
		if in.Bus < 1 || in.Bus > bus.Count {
			add(fieldErr(field+".bus", "must be 1..%d, got %d", bus.Count, in.Bus))
		}
		switch {
		case in.File != "" && in.Signal != nil:
			add(fieldErr(field, "file and signal are exclusive"))
		case in.File != "":
			hasFile = true
			if in.Channel < 0 {
				add(fieldErr(field+".channel", "must not be negative"))
			}
		case in.Signal != nil:
			if err := in.Signal.validate(field + ".signal"); err != nil {
				add(err)
			}
		default:
			add(fieldErr(field, "needs a file or a signal"))
		}
	}
	if s.Duration == 0 && !hasFile {
		add(fieldErr("duration", "required when no input file sets the length"))
	}

	for i, ev := range s.Midi {
		field := fmt.Sprintf("midi[%d]", i)
		if ev.Time < 0 {
			add(fieldErr(field+".time", "must not be negative"))
		}
		if len(ev.Raw) > 0 {
			if len(ev.Raw) != 3 {
				add(fieldErr(field+".raw", "must hold 3 bytes, got %d", len(ev.Raw)))
			}
			for _, b := range ev.Raw {
				if b < 0 || b > 0xFF {
					add(fieldErr(field+".raw", "byte %d out of range", b))
					break
				}
			}
			continue
		}
		if ev.Channel < 1 || ev.Channel > 16 {
			add(fieldErr(field+".channel", "must be 1..16, got %d", ev.Channel))
		}
		if ev.CC < 0 || ev.CC > 127 {
			add(fieldErr(field+".cc", "must be 0..127, got %d", ev.CC))
		}
		if ev.Value < 0 || ev.Value > 127 {
			add(fieldErr(field+".value", "must be 0..127, got %d", ev.Value))
		}
	}

	if len(s.Outputs) == 0 {
		add(fieldErr("outputs", "at least one output is required"))
	}
	for i, out := range s.Outputs {
		field := fmt.Sprintf("outputs[%d]", i)
		if out.File == "" {
			add(fieldErr(field+".file", "required"))
		}
		if out.Left < 1 || out.Left > bus.Count {
			add(fieldErr(field+".left", "must be 1..%d, got %d", bus.Count, out.Left))
		}
		if out.Right < 0 || out.Right > bus.Count {
			add(fieldErr(field+".right", "must be 0..%d, got %d", bus.Count, out.Right))
		}
		if out.BitDepth != 16 && out.BitDepth != 24 {
			add(fieldErr(field+".bit_depth", "must be 16 or 24, got %d", out.BitDepth))
		}
	}

	return errors.Join(errs...)
}

func (sig *Signal) validate(field string) error {
	switch sig.Type {
	case "constant", "ramp":
	case "noise":
		if _, err := noise.ParseColor(sig.Color); err != nil {
			return fieldErr(field+".color", "unknown noise color %q", sig.Color)
		}
	default:
		if _, err := oscillator.ParseWaveform(sig.Type); err != nil {
			return fieldErr(field+".type", "unknown signal type %q", sig.Type)
		}
		if sig.Frequency <= 0 {
			return fieldErr(field+".frequency", "must be positive")
		}
	}
	if sig.Start < 0 || sig.End < 0 || (sig.End > 0 && sig.End <= sig.Start) {
		return fieldErr(field, "invalid start/end window")
	}
	return nil
}

// Path resolves name against the scene directory.
func (s *Scene) Path(name string) string {
	if name == "" || filepath.IsAbs(name) || s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// Frames returns the render length at the scene rate.
func (s *Scene) Frames() int64 {
	return seconds(s.Duration, s.SampleRate)
}

func seconds(sec float64, rate int) int64 {
	return int64(sec*float64(rate) + 0.5)
}
