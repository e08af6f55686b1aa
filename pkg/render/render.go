// Package render runs the switching mixer offline: it feeds input buses from
// WAV files or generated signals, schedules controller events between blocks
// and writes selected output buses to WAV files.
package render

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/justyntemme/swmx/pkg/framework/bus"
	"github.com/justyntemme/swmx/pkg/framework/debug"
	"github.com/justyntemme/swmx/pkg/framework/param"
	"github.com/justyntemme/swmx/pkg/midi"
	"github.com/justyntemme/swmx/pkg/swmx"
)

// ErrUnknownParameter is returned for scene params that the layout lacks.
var ErrUnknownParameter = errors.New("unknown parameter")

const stepMeasurement = "step"

// Report summarizes a finished render.
type Report struct {
	ID      string
	Frames  int64
	Blocks  int
	Events  int
	Outputs []OutputReport
	Step    debug.Measurement
	Load    float64 // mean step time over block duration
	Elapsed time.Duration
}

// OutputReport holds the level statistics of one written file.
type OutputReport struct {
	File  string
	Left  debug.AnalysisResult
	Right *debug.AnalysisResult // nil for mono outputs
}

// Peak returns the larger channel peak.
func (o OutputReport) Peak() float32 {
	if o.Right != nil {
		return max(o.Left.Peak, o.Right.Peak)
	}
	return o.Left.Peak
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(l *debug.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithOutputDir writes relative output files under dir instead of the scene
// directory.
func WithOutputDir(dir string) Option {
	return func(r *Renderer) { r.outDir = dir }
}

// Renderer renders scenes. It is safe to reuse sequentially.
type Renderer struct {
	log    *debug.Logger
	outDir string
}

func New(opts ...Option) *Renderer {
	r := &Renderer{log: debug.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("render")
	return r
}

type outputBuffers struct {
	left, right       []float32
	leftMtr, rightMtr *debug.Meter
}

// Render runs the scene to completion and writes its outputs. ctx is checked
// between blocks.
func (r *Renderer) Render(ctx context.Context, s *Scene) (*Report, error) {
	started := time.Now()

	a, err := swmx.New(map[string]int{
		swmx.SpecGroups:       s.Groups,
		swmx.SpecDestinations: s.Destinations,
	}, swmx.WithLogger(r.log), swmx.WithMaxFrames(s.BlockSize), swmx.WithSampleRate(s.SampleRate))
	if err != nil {
		return nil, err
	}
	if err := r.configure(a, s); err != nil {
		return nil, err
	}

	sources, frames, err := r.openInputs(s)
	if err != nil {
		return nil, err
	}

	queue := midi.NewEventQueue()
	for _, ev := range s.Midi {
		queue.Add(midiEvent(ev, s.SampleRate))
	}

	analyzer := debug.NewAudioAnalyzer()
	outputs := make([]outputBuffers, len(s.Outputs))
	for i, out := range s.Outputs {
		outputs[i] = outputBuffers{
			left:    make([]float32, 0, frames),
			leftMtr: analyzer.NewMeter(),
		}
		if out.Channels() == 2 {
			outputs[i].right = make([]float32, 0, frames)
			outputs[i].rightMtr = analyzer.NewMeter()
		}
	}

	report := &Report{ID: uuid.NewString(), Frames: frames}
	profiler := debug.NewProfiler(1024)
	bank := a.Buses()

	r.log.Info("render %s: %d frames at %d Hz, %d-frame blocks", report.ID, frames, s.SampleRate, s.BlockSize)

	for pos := int64(0); pos < frames; pos += int64(s.BlockSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := int(min(int64(s.BlockSize), frames-pos))

		bank.Clear()
		for b, src := range sources {
			src.fill(bank.Bus(b)[:n], pos)
		}

		report.Events += queue.ProcessEvents(dispatcher{a}, pos+int64(n))

		stop := profiler.Start(stepMeasurement)
		a.Step(n)
		stop()
		report.Blocks++

		for i, out := range s.Outputs {
			ob := &outputs[i]
			l := bank.Bus(out.Left)[:n]
			ob.left = append(ob.left, l...)
			ob.leftMtr.Add(l)
			if ob.right != nil {
				rb := bank.Bus(out.Right)[:n]
				ob.right = append(ob.right, rb...)
				ob.rightMtr.Add(rb)
			}
		}
	}

	if left := queue.Size(); left > 0 {
		r.log.Warn("%d midi event(s) after the end of the render were dropped", left)
	}

	silence := float32(0.0001)
	for i, out := range s.Outputs {
		ob := &outputs[i]
		path := r.outputPath(s, out.File)
		channels := [][]float32{ob.left}
		rep := OutputReport{File: path, Left: ob.leftMtr.Result(silence)}
		if ob.right != nil {
			channels = append(channels, ob.right)
			right := ob.rightMtr.Result(silence)
			rep.Right = &right
		}
		if err := WriteWAV(path, s.SampleRate, out.BitDepth, channels...); err != nil {
			return nil, err
		}
		for ch, buf := range channels {
			name := path
			if len(channels) == 2 {
				name += " " + [...]string{"L", "R"}[ch]
			}
			for _, w := range debug.CheckBuffer(buf, name) {
				r.log.Warn("%s", w)
			}
		}
		r.log.Debug("wrote %s: %s", path, rep.Left)
		report.Outputs = append(report.Outputs, rep)
	}

	if m, ok := profiler.Measurement(stepMeasurement); ok {
		report.Step = m
		report.Load = debug.BlockLoad(m, s.SampleRate, s.BlockSize)
	}
	report.Elapsed = time.Since(started)
	return report, nil
}

// configure applies the preset file and then the scene's params.
func (r *Renderer) configure(a *swmx.Algorithm, s *Scene) error {
	if s.Preset != "" {
		if _, err := a.State().LoadFile(s.Path(s.Preset)); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}

	reg := a.Parameters()
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(s.Params)) {
		p := reg.Lookup(key)
		if p == nil {
			errs = append(errs, fieldErr("params."+key, "%v", ErrUnknownParameter))
			continue
		}
		v, err := paramValue(p, s.Params[key])
		if err != nil {
			errs = append(errs, fieldErr("params."+key, "%v", err))
			continue
		}
		p.SetValue(v)
	}
	return errors.Join(errs...)
}

// paramValue accepts numbers and display strings ("Trigger", "-6.0 dB", "Out 3").
func paramValue(p *param.Parameter, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, nil
		}
		return p.ParseValue(v)
	}
	return 0, fmt.Errorf("unsupported value %v (%T)", raw, raw)
}

// openInputs decodes the input files, fixes the render length and builds
// one source per bus. A later input replaces an earlier one on the same bus.
func (r *Renderer) openInputs(s *Scene) (map[int]source, int64, error) {
	sources := make(map[int]source, len(s.Inputs))
	files := make(map[string]*Audio)
	var longest int64

	for i, in := range s.Inputs {
		if in.Signal != nil {
			continue
		}
		path := s.Path(in.File)
		a, ok := files[path]
		if !ok {
			var err error
			if a, err = ReadWAV(path); err != nil {
				return nil, 0, err
			}
			if a.SampleRate != s.SampleRate {
				r.log.Info("resampling %s from %d Hz to %d Hz", path, a.SampleRate, s.SampleRate)
				if err := a.Resample(s.SampleRate); err != nil {
					return nil, 0, fmt.Errorf("%s: %w", path, err)
				}
			}
			files[path] = a
		}
		if in.Channel >= len(a.Channels) {
			return nil, 0, fieldErr(fmt.Sprintf("inputs[%d].channel", i),
				"file %s has %d channel(s)", in.File, len(a.Channels))
		}
		longest = max(longest, int64(a.Frames()))
	}

	frames := longest
	if s.Duration > 0 {
		frames = s.Frames()
	}

	for i, in := range s.Inputs {
		if _, dup := sources[in.Bus]; dup {
			r.log.Warn("inputs[%d] replaces the earlier source of bus %s", i, bus.Name(in.Bus))
		}
		if in.Signal == nil {
			sources[in.Bus] = &sampleSource{data: files[s.Path(in.File)].Channels[in.Channel]}
			continue
		}
		src, err := newSignalSource(in.Signal, s.SampleRate, frames)
		if err != nil {
			return nil, 0, fieldErr(fmt.Sprintf("inputs[%d].signal", i), "%v", err)
		}
		sources[in.Bus] = src
	}
	return sources, frames, nil
}

func (r *Renderer) outputPath(s *Scene, name string) string {
	if r.outDir != "" {
		s = &Scene{Dir: r.outDir}
	}
	return s.Path(name)
}

// dispatcher delivers queued events to the algorithm's controller input.
type dispatcher struct {
	a *swmx.Algorithm
}

func (d dispatcher) ProcessEvent(ev midi.Event) {
	d.a.MidiMessage(ev.Bytes())
}

func midiEvent(ev MidiEvent, rate int) midi.Event {
	offset := seconds(ev.Time, rate)
	if len(ev.Raw) == 3 {
		return midi.RawEvent{
			Offset: offset,
			Data:   [3]byte{byte(ev.Raw[0]), byte(ev.Raw[1]), byte(ev.Raw[2])},
		}
	}
	return midi.ControlChangeEvent{
		BaseEvent:  midi.BaseEvent{EventChannel: uint8(ev.Channel - 1), Offset: offset},
		Controller: uint8(ev.CC),
		Value:      uint8(ev.Value),
	}
}
