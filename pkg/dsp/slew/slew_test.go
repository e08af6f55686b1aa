package slew

import (
	"math"
	"testing"
)

func TestCoefficient(t *testing.T) {
	t.Run("ZeroTimeIsInstant", func(t *testing.T) {
		if got := Coefficient(48000, 0); got != Instant {
			t.Errorf("Coefficient(48000, 0) = %f, want %f", got, Instant)
		}
		if got := Coefficient(0, 1); got != Instant {
			t.Errorf("Coefficient(0, 1) = %f, want %f", got, Instant)
		}
	})

	t.Run("TimeConstant", func(t *testing.T) {
		const sr = 48000.0
		rate := Coefficient(sr, 0.5)

		// After one time constant the step response reaches 1 - 1/e.
		v := 0.0
		for i := 0; i < int(sr*0.5); i++ {
			v = Step(v, 1, rate)
		}
		want := 1 - 1/math.E
		if math.Abs(v-want) > 1e-4 {
			t.Errorf("after one time constant = %f, want %f", v, want)
		}
	})

	t.Run("LongerTimeIsSlower", func(t *testing.T) {
		fast := Coefficient(48000, 0.5)
		slow := Coefficient(48000, 5)
		if !(slow < fast) {
			t.Errorf("expected slow (%f) < fast (%f)", slow, fast)
		}
	})
}

func TestStepMonotonic(t *testing.T) {
	rate := Coefficient(44100, 0.01)
	v := 0.0
	for i := 0; i < 5000; i++ {
		next := Step(v, 1, rate)
		if next < v {
			t.Fatalf("step %d decreased: %f -> %f", i, v, next)
		}
		if next > 1 {
			t.Fatalf("step %d overshot: %f", i, next)
		}
		v = next
	}

	v = 1.0
	for i := 0; i < 5000; i++ {
		next := Step(v, 0, rate)
		if next > v || next < 0 {
			t.Fatalf("fade-out step %d invalid: %f -> %f", i, v, next)
		}
		v = next
	}
}

func TestStepInstant(t *testing.T) {
	if got := Step(0.3, 1, Instant); got != 1 {
		t.Errorf("Step with Instant = %f, want 1", got)
	}
	if got := Step(0.7, 0, Instant); got != 0 {
		t.Errorf("Step with Instant = %f, want 0", got)
	}
}

func TestSamplesToSettle(t *testing.T) {
	if got := SamplesToSettle(1, 0.001); got != 1 {
		t.Errorf("SamplesToSettle(1) = %d, want 1", got)
	}
	rate := Coefficient(48000, 0.1)
	n := SamplesToSettle(rate, 0.001)
	v := 0.0
	for i := 0; i < n; i++ {
		v = Step(v, 1, rate)
	}
	if 1-v > 0.002 {
		t.Errorf("after %d samples remaining error %f", n, 1-v)
	}
}

func TestStepReachesTargetWithSlowCoefficient(t *testing.T) {
	const sr, seconds = 96000.0, 5.0
	rate := Coefficient(sr, seconds)
	v := 0.0
	for i := 0; i < int(10*sr*seconds); i++ {
		v = Step(v, 1, rate)
	}
	if 1-v > 1e-4 {
		t.Errorf("after ten time constants = %v, want within 1e-4 of 1", v)
	}
}
