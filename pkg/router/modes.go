// Package router implements the switching mixer core: control decoding,
// per-group destination state, gain smoothing and the per-sample routing loop.
//
// Process and OnControllerEvent are meant to be called from the same audio
// thread. Neither allocates, blocks or logs.
package router

// Hardware bounds.
const (
	MaxGroups       = 4
	MinDestinations = 2
	MaxDestinations = 4
)

// Control thresholds.
const (
	TriggerThreshold float32 = 2.5
	GateThreshold    float32 = 2.5
	// ControllerMidpoint is the largest controller value still considered low.
	ControllerMidpoint uint8 = 63
	ControllerMax      uint8 = 127
)

// ControlMode selects how a control value is turned into a destination.
type ControlMode int

const (
	ModeUnipolar ControlMode = iota
	ModeBipolar
	ModeTrigger
	ModeTriggerReverse
	ModeGate
	ModeGateReverse
	modeCount
)

var modeNames = [...]string{"Unipolar", "Bipolar", "Trigger", "Trig Rev", "Gate", "Gate Rev"}

// ModeNames returns the display names in enum order.
func ModeNames() []string {
	return modeNames[:]
}

// ClampMode maps any integer into the valid enum range.
func ClampMode(v int) ControlMode {
	return ControlMode(clampInt(v, 0, int(modeCount)-1))
}

func (m ControlMode) String() string {
	return modeNames[ClampMode(int(m))]
}

// Curve is the crossfade curve setting. It is stored with the group but the
// smoothing is always one-pole exponential.
type Curve int

const (
	CurveLinear Curve = iota
	CurveEqualPower
	CurveSCurve
	curveCount
)

var curveNames = [...]string{"Linear", "Equal Power", "S-Curve"}

func CurveNames() []string {
	return curveNames[:]
}

func ClampCurve(v int) Curve {
	return Curve(clampInt(v, 0, int(curveCount)-1))
}

func (c Curve) String() string {
	return curveNames[ClampCurve(int(c))]
}

// StereoMode selects how a stereo input is handled before distribution.
type StereoMode int

const (
	// StereoSum averages left and right to mono, then applies the pan law.
	StereoSum StereoMode = iota
	// StereoIndependent keeps left and right apart; pan acts as balance.
	StereoIndependent
	stereoModeCount
)

var stereoNames = [...]string{"Sum", "Independent"}

func StereoModeNames() []string {
	return stereoNames[:]
}

func ClampStereoMode(v int) StereoMode {
	return StereoMode(clampInt(v, 0, int(stereoModeCount)-1))
}

func (s StereoMode) String() string {
	return stereoNames[ClampStereoMode(int(s))]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
