// Package slew provides one-pole smoothing used to fade gains without zipper noise.
package slew

import (
	"math"
)

// Instant is the coefficient that reaches the target in a single step.
const Instant = 1.0

// Coefficient returns the one-pole coefficient whose time constant equals
// seconds at the given sample rate: 1 - exp(-1 / (sampleRate * seconds)).
// Non-positive time or rate returns Instant.
// Slow fades give coefficients near 1e-6; smoothed values need float64 state
// or the step falls below half an ulp near 1.0 and stalls.
func Coefficient(sampleRate, seconds float64) float64 {
	if seconds <= 0 || sampleRate <= 0 {
		return Instant
	}
	return 1.0 - math.Exp(-1.0/(sampleRate*seconds))
}

// Step moves current toward target by rate and returns the new value.
// For rate in (0, 1] the result never overshoots target.
func Step(current, target, rate float64) float64 {
	return current + (target-current)*rate
}

// SamplesToSettle returns the number of steps a coefficient of rate needs to
// get within tolerance of a unit jump.
func SamplesToSettle(rate, tolerance float64) int {
	if rate >= 1 {
		return 1
	}
	if rate <= 0 || tolerance <= 0 || tolerance >= 1 {
		return 0
	}
	n := math.Log(tolerance) / math.Log(1-rate)
	return int(math.Ceil(n))
}
