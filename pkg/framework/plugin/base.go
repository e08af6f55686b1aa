// Package plugin provides algorithm metadata, construction specifications and
// the shared base every algorithm embeds.
package plugin

import (
	"github.com/justyntemme/swmx/pkg/framework/bus"
	"github.com/justyntemme/swmx/pkg/framework/param"
	"github.com/justyntemme/swmx/pkg/framework/state"
)

// Base provides core functionality for all plugins
type Base struct {
	Info   Info
	params *param.Registry
	state  *state.Manager
	buses  *bus.Bank
}

// NewBase creates a new plugin base with a bus bank of maxFrames per bus.
func NewBase(info Info, maxFrames int) *Base {
	b := &Base{
		Info:   info,
		params: param.NewRegistry(),
		buses:  bus.NewBank(maxFrames),
	}

	// Initialize state manager with parameter registry
	b.state = state.NewManager(b.params)
	b.state.Describe(info.ID, nil)

	return b
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// State returns the preset manager.
func (b *Base) State() *state.Manager {
	return b.state
}

// Buses returns the bus bank.
func (b *Base) Buses() *bus.Bank {
	return b.buses
}

// Processor is the interface hosts drive. Step and MidiMessage run on the
// audio thread and must not allocate.
type Processor interface {
	Parameters() *param.Registry
	State() *state.Manager
	Buses() *bus.Bank
	SetSampleRate(hz int)
	// Step processes frames samples in place on the bus bank.
	Step(frames int)
	// MidiMessage delivers one 3-byte message between blocks.
	MidiMessage(status, data1, data2 byte)
	Reset()
}
