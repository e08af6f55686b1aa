package router

import (
	"github.com/justyntemme/swmx/pkg/dsp/slew"
)

// silenceFloor is the gain below which a destination is not written.
const silenceFloor float32 = 0.0001

// GroupState is the runtime state owned by one group. It persists across
// blocks and controller events and is only changed through its methods.
type GroupState struct {
	numDests int

	currentDest int // mirrors targetDest; kept for state snapshots
	targetDest  int
	destGains   [MaxDestinations]float64
	targetGains [MaxDestinations]float32

	lastTriggerHigh bool
	lastMidiValue   uint8
}

// NewGroupState returns a state targeting destination 0 with its gain fully open.
func NewGroupState(numDests int) GroupState {
	var s GroupState
	s.numDests = clampInt(numDests, 1, MaxDestinations)
	s.Reset()
	return s
}

// Reset returns the state to destination 0 and clears edge memory.
func (s *GroupState) Reset() {
	s.destGains = [MaxDestinations]float64{}
	s.lastTriggerHigh = false
	s.lastMidiValue = 0
	s.commit(0)
	s.destGains[0] = 1
}

// NumDests returns the destination count the state was created with.
func (s *GroupState) NumDests() int {
	return s.numDests
}

// Target returns the destination currently faded toward.
func (s *GroupState) Target() int {
	return s.targetDest
}

// Gain returns the smoothed gain of destination d.
func (s *GroupState) Gain(d int) float32 {
	if d < 0 || d >= s.numDests {
		return 0
	}
	return float32(s.destGains[d])
}

// TargetGain returns the one-hot target gain of destination d.
func (s *GroupState) TargetGain(d int) float32 {
	if d < 0 || d >= s.numDests {
		return 0
	}
	return s.targetGains[d]
}

// TriggerHigh reports the stored trigger edge memory.
func (s *GroupState) TriggerHigh() bool {
	return s.lastTriggerHigh
}

// LastControllerValue returns the last controller value received.
func (s *GroupState) LastControllerValue() uint8 {
	return s.lastMidiValue
}

func (s *GroupState) edge() Edge {
	return Edge{
		Target:      s.targetDest,
		TriggerHigh: s.lastTriggerHigh,
		LastValue:   s.lastMidiValue,
	}
}

// DecodeFromSignal decodes a control-voltage sample with mode, stores the
// trigger edge memory and commits the resulting target.
func (s *GroupState) DecodeFromSignal(cv float32, mode ControlMode) int {
	dest, high := DecoderFor(mode).Signal(cv, s.numDests, s.edge())
	s.lastTriggerHigh = high
	return s.commit(dest)
}

// DecodeFromController decodes a 0..127 controller value with mode, stores
// it as controller edge memory and commits the resulting target.
func (s *GroupState) DecodeFromController(value uint8, mode ControlMode) int {
	dest := DecoderFor(mode).Controller(value, s.numDests, s.edge())
	s.lastMidiValue = value
	return s.commit(dest)
}

// SetTarget commits dest (0-based) directly. Edge memory is left untouched.
func (s *GroupState) SetTarget(dest int) int {
	return s.commit(dest)
}

// commit clamps dest and rebuilds the one-hot target gains.
func (s *GroupState) commit(dest int) int {
	dest = clampInt(dest, 0, s.numDests-1)
	s.targetDest = dest
	s.currentDest = dest
	for d := range s.targetGains {
		if d == dest {
			s.targetGains[d] = 1
		} else {
			s.targetGains[d] = 0
		}
	}
	return dest
}

// Advance moves every destination gain one sample toward its target.
func (s *GroupState) Advance(rate float64) {
	for d := 0; d < s.numDests; d++ {
		s.destGains[d] = slew.Step(s.destGains[d], float64(s.targetGains[d]), rate)
	}
}

// Snapshot is a copy of a group's state for inspection outside the audio path.
type Snapshot struct {
	Current             int
	Target              int
	Gains               [MaxDestinations]float32
	TargetGains         [MaxDestinations]float32
	TriggerHigh         bool
	LastControllerValue uint8
}

func (s *GroupState) Snapshot() Snapshot {
	snap := Snapshot{
		Current:             s.currentDest,
		Target:              s.targetDest,
		TargetGains:         s.targetGains,
		TriggerHigh:         s.lastTriggerHigh,
		LastControllerValue: s.lastMidiValue,
	}
	for d, g := range s.destGains {
		snap.Gains[d] = float32(g)
	}
	return snap
}
