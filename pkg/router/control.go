package router

const (
	// bucketCeiling keeps full-scale input inside the last bucket.
	bucketCeiling float32 = 0.9999

	unipolarRange float32 = 10
	bipolarOffset float32 = 5
)

// Edge is the state a Decoder reads. Decoders never mutate it; the caller
// commits the returned memory.
type Edge struct {
	Target      int
	TriggerHigh bool
	LastValue   uint8
}

// Decoder turns a control value into a destination index for one control mode.
type Decoder interface {
	// Signal decodes a control-voltage sample. It returns the destination and
	// the trigger edge memory to store.
	Signal(cv float32, numDests int, edge Edge) (dest int, high bool)
	// Controller decodes a 0..127 controller value. The caller stores value as
	// the new controller edge memory.
	Controller(value uint8, numDests int, edge Edge) int
}

var decoders = [modeCount]Decoder{
	ModeUnipolar:       unipolar{},
	ModeBipolar:        bipolar{},
	ModeTrigger:        trigger{step: 1},
	ModeTriggerReverse: trigger{step: -1},
	ModeGate:           gate{},
	ModeGateReverse:    gate{inverted: true},
}

// DecoderFor returns the decoder of mode; out-of-range modes are clamped.
func DecoderFor(mode ControlMode) Decoder {
	return decoders[ClampMode(int(mode))]
}

type unipolar struct{}

func (unipolar) Signal(cv float32, numDests int, edge Edge) (int, bool) {
	return bucket(clampUnit(cv/unipolarRange), numDests), edge.TriggerHigh
}

func (unipolar) Controller(value uint8, numDests int, _ Edge) int {
	return bucket(controllerUnit(value), numDests)
}

type bipolar struct{}

func (bipolar) Signal(cv float32, numDests int, edge Edge) (int, bool) {
	return bucket(clampUnit((cv+bipolarOffset)/unipolarRange), numDests), edge.TriggerHigh
}

// Controller has no bipolar variant; it uses the unipolar mapping.
func (bipolar) Controller(value uint8, numDests int, _ Edge) int {
	return bucket(controllerUnit(value), numDests)
}

// trigger advances the target by step on every rising edge.
type trigger struct {
	step int
}

func (t trigger) Signal(cv float32, numDests int, edge Edge) (int, bool) {
	high := cv > TriggerThreshold
	if high && !edge.TriggerHigh {
		return t.advance(edge.Target, numDests), high
	}
	return edge.Target, high
}

func (t trigger) Controller(value uint8, numDests int, edge Edge) int {
	wasHigh := edge.LastValue > ControllerMidpoint
	if value > ControllerMidpoint && !wasHigh {
		return t.advance(edge.Target, numDests)
	}
	return edge.Target
}

func (t trigger) advance(target, numDests int) int {
	if numDests <= 0 {
		return 0
	}
	return (target + numDests + t.step) % numDests
}

// gate selects destination 0 when low and destination 1 when high.
type gate struct {
	inverted bool
}

func (g gate) Signal(cv float32, numDests int, edge Edge) (int, bool) {
	return g.pick(cv > GateThreshold, numDests), edge.TriggerHigh
}

func (g gate) Controller(value uint8, numDests int, _ Edge) int {
	return g.pick(value > ControllerMidpoint, numDests)
}

func (g gate) pick(high bool, numDests int) int {
	if high == g.inverted {
		return 0
	}
	return min(1, numDests-1)
}

func bucket(normalized float32, numDests int) int {
	return int(normalized * float32(numDests))
}

// clampUnit clamps to [0, bucketCeiling]; NaN maps to 0.
func clampUnit(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	if x > bucketCeiling {
		return bucketCeiling
	}
	return x
}

func controllerUnit(value uint8) float32 {
	if value > ControllerMax {
		value = ControllerMax
	}
	return float32(value) / float32(ControllerMax) * bucketCeiling
}
