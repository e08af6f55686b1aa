// Package pan provides stereo panning laws.
package pan

import (
	"math"
)

// Raw pan range as stored in the parameter table.
const (
	RawMin = -100
	RawMax = 100
)

// Normalize maps a raw pan value to [-1, 1], clamping out-of-range input.
func Normalize(raw int) float32 {
	if raw < RawMin {
		raw = RawMin
	} else if raw > RawMax {
		raw = RawMax
	}
	return float32(raw) / RawMax
}

// MonoToStereo returns constant-power left and right gains for a mono signal.
// pan: -1.0 = hard left, 0.0 = center, 1.0 = hard right
func MonoToStereo(pan float32) (left, right float32) {
	return constantPowerPan(pan)
}

// BalanceGains returns left/right gains for an existing stereo signal.
// Only the channel opposite the pan direction is attenuated.
func BalanceGains(balance float32) (left, right float32) {
	left, right = 1, 1
	if balance < 0 {
		right = 1 + balance
	} else if balance > 0 {
		left = 1 - balance
	}
	return left, right
}

// constantPowerPan sweeps angle over [0, pi/2] as pan goes from -1 to 1.
func constantPowerPan(pan float32) (left, right float32) {
	angle := float64(pan+1.0) * math.Pi / 4.0
	left = float32(math.Cos(angle))
	right = float32(math.Sin(angle))
	return
}
