// Package gain provides amplitude and volume-curve operations.
package gain

import (
	"math"
)

// Constants for dB conversion
const (
	// MinDB is the minimum dB value (effectively -infinity)
	MinDB = -200.0
)

// Volume curve constants. Raw volume values are integers as stored in the
// parameter table.
const (
	// VolumeMute is the raw value that hard-mutes the signal.
	VolumeMute = 0
	// VolumeUnity is the raw value for 0 dB.
	VolumeUnity = 100
	// VolumeMax is the largest raw value (+6 dB).
	VolumeMax = 106

	// attenuation per raw step below unity, in dB
	stepBelowUnityDb = 0.6
	// boost per raw step above unity, in dB
	stepAboveUnityDb = 1.0
)

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// VolumeDb returns the dB value of a raw volume setting.
// The raw value is clamped to [VolumeMute, VolumeMax]; VolumeMute returns MinDB.
func VolumeDb(raw int) float64 {
	switch {
	case raw <= VolumeMute:
		return MinDB
	case raw >= VolumeMax:
		raw = VolumeMax
	}
	if raw >= VolumeUnity {
		return float64(raw-VolumeUnity) * stepAboveUnityDb
	}
	return float64(raw-VolumeUnity) * stepBelowUnityDb
}

// VolumeToLinear converts a raw volume setting into a linear gain factor.
func VolumeToLinear(raw int) float32 {
	if raw <= VolumeMute {
		return 0
	}
	if raw == VolumeUnity {
		return 1
	}
	return float32(DbToLinear(VolumeDb(raw)))
}
