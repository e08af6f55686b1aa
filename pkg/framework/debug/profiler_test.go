package debug

import (
	"strings"
	"testing"
	"time"
)

func TestProfilerRecord(t *testing.T) {
	p := NewProfiler(4)
	for _, d := range []time.Duration{4, 1, 3, 2, 10} {
		p.Record("step", d*time.Millisecond)
	}

	m, ok := p.Measurement("step")
	if !ok {
		t.Fatal("measurement missing")
	}
	if m.Count != 5 || m.Min != time.Millisecond || m.Max != 10*time.Millisecond {
		t.Errorf("measurement = %+v", m)
	}
	if m.Average() != 4*time.Millisecond {
		t.Errorf("Average() = %v, want 4ms", m.Average())
	}
	// The ring keeps the last four samples: 10, 1, 3, 2.
	if got := m.Percentile(100); got != 10*time.Millisecond {
		t.Errorf("Percentile(100) = %v", got)
	}
	if got := m.Percentile(0); got != time.Millisecond {
		t.Errorf("Percentile(0) = %v", got)
	}

	if _, ok := p.Measurement("missing"); ok {
		t.Error("missing measurement reported present")
	}
}

func TestProfilerStartAndReport(t *testing.T) {
	p := NewProfiler(10)
	if p.Report() != "No measurements recorded" {
		t.Errorf("empty Report() = %q", p.Report())
	}

	stop := p.Start("block")
	stop()
	p.Record("alpha", time.Microsecond)

	report := p.Report()
	if !strings.Contains(report, "block: count 1") {
		t.Errorf("Report() = %q", report)
	}
	if strings.Index(report, "alpha") > strings.Index(report, "block") {
		t.Error("Report() not sorted")
	}
}

func TestBlockLoad(t *testing.T) {
	p := NewProfiler(10)
	// 128 frames at 48 kHz is 2.666ms; 1.333ms per block is half load.
	p.Record("step", 1333333*time.Nanosecond)
	m, _ := p.Measurement("step")

	load := BlockLoad(m, 48000, 128)
	if load < 0.49 || load > 0.51 {
		t.Errorf("BlockLoad() = %v, want ~0.5", load)
	}
	if BlockLoad(Measurement{}, 48000, 128) != 0 {
		t.Error("empty measurement should have zero load")
	}
}
