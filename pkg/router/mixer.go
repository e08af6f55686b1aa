package router

import (
	"errors"
	"fmt"

	"github.com/justyntemme/swmx/pkg/midi"
)

var (
	ErrInvalidGroups       = errors.New("group count out of range")
	ErrInvalidDestinations = errors.New("destination count out of range")
	ErrNoProvider          = errors.New("configuration provider is required")
	ErrNoResolver          = errors.New("buffer resolver is required")
)

// Mixer drives every active group once per block and dispatches controller
// events into the same per-group state.
type Mixer struct {
	numGroups int
	numDests  int
	states    [MaxGroups]GroupState

	config Provider
	buses  Resolver
	rate   SampleRateProvider
}

// New validates the group and destination counts and creates a mixer.
// rate may be nil, in which case DefaultSampleRate is used.
func New(numGroups, numDests int, config Provider, buses Resolver, rate SampleRateProvider) (*Mixer, error) {
	if numGroups < 1 || numGroups > MaxGroups {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidGroups, numGroups, MaxGroups)
	}
	if numDests < MinDestinations || numDests > MaxDestinations {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidDestinations, numDests, MinDestinations, MaxDestinations)
	}
	if config == nil {
		return nil, ErrNoProvider
	}
	if buses == nil {
		return nil, ErrNoResolver
	}

	m := &Mixer{
		numGroups: numGroups,
		numDests:  numDests,
		config:    config,
		buses:     buses,
		rate:      rate,
	}
	for g := range m.states {
		m.states[g] = NewGroupState(numDests)
	}
	return m, nil
}

func (m *Mixer) NumGroups() int {
	return m.numGroups
}

func (m *Mixer) NumDests() int {
	return m.numDests
}

// SampleRate returns the rate the next block will use.
func (m *Mixer) SampleRate() int {
	if m.rate == nil {
		return DefaultSampleRate
	}
	return ResolveSampleRate(m.rate.SampleRate())
}

// State returns a snapshot of group g. Out-of-range groups return a zero snapshot.
func (m *Mixer) State(g int) Snapshot {
	if g < 0 || g >= m.numGroups {
		return Snapshot{}
	}
	return m.states[g].Snapshot()
}

// Reset returns every group to destination 0.
func (m *Mixer) Reset() {
	for g := range m.states {
		m.states[g].Reset()
	}
}

// Process runs one block of n samples, adding each group's signal into its
// destination buses. With bypass set nothing is written.
func (m *Mixer) Process(n int) {
	if n <= 0 {
		return
	}
	global := m.config.Global()
	if global.Bypass {
		return
	}
	sr := m.SampleRate()
	for g := 0; g < m.numGroups; g++ {
		m.processGroup(g, global, sr, n)
	}
}

func (m *Mixer) processGroup(g int, global GlobalConfig, sampleRate, n int) {
	cfg := m.config.Group(g)
	st := &m.states[g]

	var io groupIO
	io.inL = m.resolve(cfg.InputL, n)
	io.inR = m.resolve(cfg.InputR, n)
	io.ctrl = m.resolve(cfg.Control, n)
	for d := 0; d < m.numDests; d++ {
		io.destL[d] = m.resolve(cfg.DestL[d], n)
		io.destR[d] = m.resolve(cfg.DestR[d], n)
	}

	// The last sample stands for the whole block.
	if io.ctrl != nil {
		st.DecodeFromSignal(io.ctrl[n-1], cfg.Mode)
	} else {
		st.SetTarget(clampInt(cfg.ActiveDest, 1, m.numDests) - 1)
	}

	rate := SlewRate(cfg.Crossfade, EffectiveFade(cfg.Fade, global.Fade), sampleRate)
	route(st, &io, newLevels(cfg), rate, n)
}

func (m *Mixer) resolve(bus, n int) []float32 {
	if bus <= 0 {
		return nil
	}
	buf := m.buses.Resolve(bus, n)
	if len(buf) < n {
		return nil
	}
	return buf[:n]
}

// OnControllerEvent handles one 3-byte controller message. Messages that are
// not control changes are ignored. Every enabled group whose channel and
// controller number match gets a new target immediately.
func (m *Mixer) OnControllerEvent(status, id, value byte) {
	ev, ok := midi.Parse(status, id, value)
	if !ok {
		return
	}
	channel := ev.ChannelNumber()
	for g := 0; g < m.numGroups; g++ {
		cfg := m.config.Group(g)
		if !cfg.Midi.Matches(channel, ev.Controller) {
			continue
		}
		m.states[g].DecodeFromController(ev.Value, cfg.Mode)
	}
}
