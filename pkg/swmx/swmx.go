// Package swmx is the switching mixer algorithm: it builds the parameter
// layout for a set of construction specifications and drives router.Mixer
// from it.
package swmx

import (
	"fmt"
	"sync/atomic"

	"github.com/justyntemme/swmx/pkg/framework/debug"
	"github.com/justyntemme/swmx/pkg/framework/param"
	"github.com/justyntemme/swmx/pkg/framework/plugin"
	"github.com/justyntemme/swmx/pkg/router"
)

// Specification keys.
const (
	SpecGroups       = "groups"
	SpecDestinations = "destinations"
)

// DefaultMaxFrames is the bus capacity used when no option overrides it.
const DefaultMaxFrames = 512

// Info describes the algorithm.
var Info = plugin.Info{
	ID:          "com.justyntemme.swmx",
	GUID:        "SwMx",
	Name:        "Switching Mixer",
	Version:     "1.0.0",
	Vendor:      "swmx",
	Category:    "Utility",
	Description: "Routes each input group to one of up to four destinations via CV or MIDI, with smooth crossfades.",
	Tags:        []string{"utility", "routing", "mixer"},
}

// Specifications lists the construction-time settings.
var Specifications = plugin.Specifications{
	{Key: SpecGroups, Name: "Groups", Min: 1, Max: router.MaxGroups, Default: 1},
	{Key: SpecDestinations, Name: "Destinations", Min: router.MinDestinations, Max: router.MaxDestinations, Default: 2},
}

// Option configures an Algorithm.
type Option func(*options)

type options struct {
	logger    *debug.Logger
	maxFrames int
	rate      int
}

// WithLogger sets the logger used outside the audio path.
func WithLogger(l *debug.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxFrames sets the per-bus capacity, the largest block Step accepts.
func WithMaxFrames(n int) Option {
	return func(o *options) { o.maxFrames = n }
}

// WithSampleRate sets the initial sample rate.
func WithSampleRate(hz int) Option {
	return func(o *options) { o.rate = hz }
}

// Algorithm is one switching mixer instance.
type Algorithm struct {
	*plugin.Base

	numGroups int
	numDests  int

	bypass     *param.Parameter
	globalFade *param.Parameter
	groups     []*groupParams

	sampleRate atomic.Int64
	mixer      *router.Mixer
	log        *debug.Logger
}

var _ plugin.Processor = (*Algorithm)(nil)

// New creates an instance. specs may omit keys to use defaults; out-of-range
// values fail with plugin.ErrInvalidSpecification.
func New(specs map[string]int, opts ...Option) (*Algorithm, error) {
	o := options{
		logger:    debug.Default(),
		maxFrames: DefaultMaxFrames,
		rate:      router.DefaultSampleRate,
	}
	for _, opt := range opts {
		opt(&o)
	}

	resolved, err := Specifications.Resolve(specs)
	if err != nil {
		return nil, err
	}

	a := &Algorithm{
		Base:      plugin.NewBase(Info, o.maxFrames),
		numGroups: resolved[SpecGroups],
		numDests:  resolved[SpecDestinations],
		log:       o.logger.Named("swmx"),
	}
	a.State().Describe(Info.ID, resolved)
	a.SetSampleRate(o.rate)

	if err := a.buildParameters(); err != nil {
		return nil, fmt.Errorf("failed to build parameters: %w", err)
	}

	a.mixer, err = router.New(a.numGroups, a.numDests, a, a.Buses(), a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", plugin.ErrInvalidSpecification, err)
	}

	a.log.Debug("created %d group(s) x %d destination(s), %d parameters",
		a.numGroups, a.numDests, a.Parameters().Count())
	return a, nil
}

func (a *Algorithm) buildParameters() error {
	a.bypass = param.BypassParameter(ParamBypass, "bypass").Build()
	a.globalFade = param.Integer(ParamGlobalFade, "global_fade", "Global Fade",
		router.FadeMin, router.FadeMax, DefaultGlobalFade).
		Formatter(globalFadeFormatter, nil).Build()

	reg := a.Parameters()
	if err := reg.Add(a.bypass, a.globalFade); err != nil {
		return err
	}

	a.groups = make([]*groupParams, a.numGroups)
	for g := range a.groups {
		a.groups[g] = newGroupParams(g, a.numDests)
		if err := reg.Add(a.groups[g].params(a.numDests)...); err != nil {
			return err
		}
	}
	return nil
}

// NumGroups returns the group count fixed at construction.
func (a *Algorithm) NumGroups() int {
	return a.numGroups
}

// NumDests returns the destination count fixed at construction.
func (a *Algorithm) NumDests() int {
	return a.numDests
}

// Global implements router.Provider.
func (a *Algorithm) Global() router.GlobalConfig {
	return router.GlobalConfig{
		Bypass: a.bypass.Bool(),
		Fade:   a.globalFade.Value(),
	}
}

// Group implements router.Provider.
func (a *Algorithm) Group(g int) router.GroupConfig {
	return a.groups[g].config()
}

// SampleRate implements router.SampleRateProvider.
func (a *Algorithm) SampleRate() int {
	return int(a.sampleRate.Load())
}

// SetSampleRate stores the host rate. Unsupported rates are kept but the
// mixer runs at router.DefaultSampleRate.
func (a *Algorithm) SetSampleRate(hz int) {
	if a.log != nil && router.ResolveSampleRate(hz) != hz {
		a.log.Warn("unsupported sample rate %d Hz, using %d Hz", hz, router.DefaultSampleRate)
	}
	a.sampleRate.Store(int64(hz))
}

// Step processes frames samples in place on the bus bank. Blocks larger than
// the bank are truncated to its capacity.
func (a *Algorithm) Step(frames int) {
	a.mixer.Process(min(frames, a.Buses().Frames()))
}

// MidiMessage dispatches a 3-byte message to every matching group.
func (a *Algorithm) MidiMessage(status, data1, data2 byte) {
	a.mixer.OnControllerEvent(status, data1, data2)
}

// Reset returns every group to its first destination.
func (a *Algorithm) Reset() {
	a.mixer.Reset()
}

// GroupState returns a snapshot of group g's runtime state.
func (a *Algorithm) GroupState(g int) router.Snapshot {
	return a.mixer.State(g)
}
