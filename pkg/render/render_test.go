package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/swmx/pkg/framework/debug"
)

var centre = float32(math.Cos(math.Pi / 4))

func newRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	return New(WithLogger(debug.New(io.Discard, "", 0)), WithOutputDir(dir)), dir
}

func mustScene(t *testing.T, src string) *Scene {
	t.Helper()
	s, err := ParseScene([]byte(src), t.TempDir())
	if err != nil {
		t.Fatalf("ParseScene() error = %v", err)
	}
	return s
}

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestRenderRoutesToActiveDestination(t *testing.T) {
	r, dir := newRenderer(t)
	s := mustScene(t, `
block_size: 64
duration: 0.01
params:
  g1.crossfade: Off
  g1.active_dest: 2
inputs:
  - bus: 1
    signal: {type: constant, value: 0.5}
outputs:
  - {file: dest1.wav, left: 13, right: 14, bit_depth: 24}
  - {file: dest2.wav, left: 15, right: 16, bit_depth: 24}
`)

	report, err := r.Render(context.Background(), s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if report.Frames != 480 || report.Blocks != 8 {
		t.Errorf("frames/blocks = %d/%d, want 480/8", report.Frames, report.Blocks)
	}
	if report.ID == "" {
		t.Error("report has no ID")
	}
	if report.Outputs[0].Peak() != 0 {
		t.Errorf("dest 1 peak = %v, want silence", report.Outputs[0].Peak())
	}
	if got := report.Outputs[1].Peak(); !near(got, 0.5*centre, 1e-4) {
		t.Errorf("dest 2 peak = %v, want %v", got, 0.5*centre)
	}

	out, err := ReadWAV(filepath.Join(dir, "dest2.wav"))
	if err != nil {
		t.Fatalf("ReadWAV() error = %v", err)
	}
	if out.SampleRate != 48000 || len(out.Channels) != 2 || out.Frames() != 480 {
		t.Fatalf("output = %d Hz, %d channels, %d frames", out.SampleRate, len(out.Channels), out.Frames())
	}
	if !near(out.Channels[1][100], 0.5*centre, 1e-4) {
		t.Errorf("dest 2 R[100] = %v", out.Channels[1][100])
	}
}

func TestRenderBypassIsSilent(t *testing.T) {
	r, _ := newRenderer(t)
	s := mustScene(t, `
duration: 0.05
params:
  bypass: 1
inputs:
  - bus: 1
    signal: {type: sine, frequency: 440, amplitude: 1}
outputs:
  - {file: out.wav, left: 13, right: 14}
`)

	report, err := r.Render(context.Background(), s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	o := report.Outputs[0]
	if !o.Left.Silent || o.Right == nil || !o.Right.Silent {
		t.Errorf("bypassed output not silent: %+v", o)
	}
}

func TestRenderSchedulesMidiBetweenBlocks(t *testing.T) {
	r, dir := newRenderer(t)
	// Frame 100 falls in the second 64-frame block, so the switch applies
	// from frame 64 onward.
	s := mustScene(t, `
block_size: 64
duration: 0.005
params:
  g1.crossfade: 0
  g1.ctrl_type: Trigger
  g1.control: 9
  g1.midi_enable: 1
  g1.midi_channel: 1
  g1.midi_cc: 0
inputs:
  - bus: 1
    signal: {type: constant, value: 1}
midi:
  - {time: 0.0020833, channel: 1, cc: 0, value: 127}
  - {time: 0.003, channel: 2, cc: 0, value: 127}
  - {time: 0.003, raw: [144, 60, 100]}
  - {time: 1.0, channel: 1, cc: 0, value: 0}
outputs:
  - {file: d1.wav, left: 13, bit_depth: 24}
  - {file: d2.wav, left: 15, bit_depth: 24}
`)

	report, err := r.Render(context.Background(), s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if report.Events != 3 {
		t.Errorf("Events = %d, want 3 (the last one is past the end)", report.Events)
	}

	d1, err := ReadWAV(filepath.Join(dir, "d1.wav"))
	if err != nil {
		t.Fatal(err)
	}
	d2, err := ReadWAV(filepath.Join(dir, "d2.wav"))
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 63} {
		if !near(d1.Channels[0][i], centre, 1e-4) || d2.Channels[0][i] != 0 {
			t.Errorf("frame %d: d1 = %v, d2 = %v; want dest 1", i, d1.Channels[0][i], d2.Channels[0][i])
		}
	}
	for _, i := range []int{64, 100, 239} {
		if d1.Channels[0][i] != 0 || !near(d2.Channels[0][i], centre, 1e-4) {
			t.Errorf("frame %d: d1 = %v, d2 = %v; want dest 2", i, d1.Channels[0][i], d2.Channels[0][i])
		}
	}
}

func TestRenderFileInputWithResample(t *testing.T) {
	r, dir := newRenderer(t)
	srcDir := t.TempDir()

	in := make([]float32, 8820) // 0.2 s at 44.1 kHz
	for i := range in {
		in[i] = 0.5
	}
	if err := WriteWAV(filepath.Join(srcDir, "in.wav"), 44100, 16, in); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}

	s, err := ParseScene([]byte(`
params:
  g1.crossfade: 0
inputs:
  - {bus: 1, file: in.wav}
outputs:
  - {file: out.wav, left: 13, bit_depth: 24}
`), srcDir)
	if err != nil {
		t.Fatal(err)
	}

	report, err := r.Render(context.Background(), s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if report.Frames != 9600 {
		t.Errorf("Frames = %d, want 9600", report.Frames)
	}

	out, err := ReadWAV(filepath.Join(dir, "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Channels[0][4800]; !near(got, 0.5*centre, 0.02) {
		t.Errorf("out[4800] = %v, want ~%v", got, 0.5*centre)
	}
}

func TestRenderInputErrors(t *testing.T) {
	r, _ := newRenderer(t)

	s := mustScene(t, `
inputs:
  - {bus: 1, file: missing.wav}
outputs:
  - {file: out.wav, left: 13}
`)
	if _, err := r.Render(context.Background(), s); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	s = mustScene(t, `
duration: 0.01
params:
  g1.nope: 1
outputs:
  - {file: out.wav, left: 13}
`)
	if _, err := r.Render(context.Background(), s); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("unknown param error = %v", err)
	}

	s = mustScene(t, `
duration: 0.01
params:
  g1.ctrl_type: Sideways
outputs:
  - {file: out.wav, left: 13}
`)
	if _, err := r.Render(context.Background(), s); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("bad choice error = %v", err)
	}
}

func TestRenderChannelOutOfRange(t *testing.T) {
	r, _ := newRenderer(t)
	dir := t.TempDir()
	if err := WriteWAV(filepath.Join(dir, "mono.wav"), 48000, 16, make([]float32, 64)); err != nil {
		t.Fatal(err)
	}
	s, err := ParseScene([]byte(`
inputs:
  - {bus: 1, file: mono.wav, channel: 1}
outputs:
  - {file: out.wav, left: 13}
`), dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(context.Background(), s); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("error = %v, want ErrInvalidScene", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	r, _ := newRenderer(t)
	s := mustScene(t, "duration: 1\noutputs:\n  - {file: out.wav, left: 13}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, s); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRenderPreset(t *testing.T) {
	r, dir := newRenderer(t)
	presetDir := t.TempDir()
	preset := `format: swmx-preset
version: 1
plugin: com.justyntemme.swmx
values:
  g1.volume: 0
`
	if err := os.WriteFile(filepath.Join(presetDir, "mute.yaml"), []byte(preset), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ParseScene([]byte(`
duration: 0.01
preset: mute.yaml
inputs:
  - bus: 1
    signal: {type: constant, value: 1}
outputs:
  - {file: out.wav, left: 13}
`), presetDir)
	if err != nil {
		t.Fatal(err)
	}

	report, err := r.Render(context.Background(), s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !report.Outputs[0].Left.Silent {
		t.Errorf("muted preset produced %v", report.Outputs[0].Left)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.wav")); err != nil {
		t.Errorf("output not written under the output dir: %v", err)
	}
}

func TestRenderGeneratedSignals(t *testing.T) {
	r, _ := newRenderer(t)
	s := mustScene(t, `
duration: 0.1
groups: 2
params:
  g1.crossfade: 0
  g2.crossfade: 0
  g2.input_l: 2
  g2.dest1.l: 21
  g2.dest1.r: 22
inputs:
  - bus: 1
    signal: {type: noise, color: pink, amplitude: 0.5, seed: 3}
  - bus: 2
    signal: {type: ramp, from: 0, to: 1, start: 0.05}
outputs:
  - {file: noise.wav, left: 13}
  - {file: ramp.wav, left: 21}
`)

	report, err := r.Render(context.Background(), s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	n := report.Outputs[0].Left
	if n.Silent || n.Peak > 0.5*centre+1e-4 {
		t.Errorf("noise output = %v", n)
	}
	ramp := report.Outputs[1].Left
	if !near(ramp.Peak, centre, 1e-3) {
		t.Errorf("ramp peak = %v, want %v", ramp.Peak, centre)
	}
}

func TestRenderWarnsAboutClippedRightChannel(t *testing.T) {
	var logs bytes.Buffer
	r := New(WithLogger(debug.New(&logs, "", 0)), WithOutputDir(t.TempDir()))
	s := mustScene(t, `
duration: 0.01
params:
  g1.crossfade: 0
  g1.volume: 106
  g1.pan: 100
inputs:
  - bus: 1
    signal: {type: constant, value: 0.5}
outputs:
  - {file: out.wav, left: 13, right: 14}
`)

	if _, err := r.Render(context.Background(), s); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "out.wav R: 480 clipped samples") {
		t.Errorf("no clipping warning for the right channel:\n%s", out)
	}
	if strings.Contains(out, "out.wav L:") {
		t.Errorf("unexpected warning for the silent left channel:\n%s", out)
	}
}
