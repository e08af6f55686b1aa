package router

// MidiConfig holds a group's controller matching settings.
type MidiConfig struct {
	Enabled bool
	Channel int // 1..16
	CC      int // 0..127
}

// Matches reports whether a controller message on the 1-based channel with
// controller number cc is addressed to this group.
func (m MidiConfig) Matches(channel int, cc uint8) bool {
	return m.Enabled && m.Channel == channel && m.CC == int(cc)
}

// GroupConfig is one group's configuration, read fresh every block.
// Bus fields are 1-based; 0 means unconnected.
type GroupConfig struct {
	InputL  int
	InputR  int
	Control int

	Volume int // 0 mute, 100 unity, 106 max
	Pan    int // -100..100

	Mode      ControlMode
	Curve     Curve
	Fade      int // 0..10, 0 uses the global default
	Crossfade bool

	// ActiveDest is the 1-based destination used when no control bus is connected.
	ActiveDest int

	DestL [MaxDestinations]int
	DestR [MaxDestinations]int

	Stereo StereoMode
	Midi   MidiConfig
}

// GlobalConfig holds settings shared by all groups.
type GlobalConfig struct {
	Bypass bool
	Fade   int
}

// Provider supplies configuration snapshots. Implementations must not
// allocate; they are called on the audio thread.
type Provider interface {
	Global() GlobalConfig
	Group(g int) GroupConfig
}

// Resolver maps a 1-based bus index to a buffer of at least n samples.
// It returns nil for 0 or any index it does not know.
type Resolver interface {
	Resolve(bus, n int) []float32
}

// SampleRateProvider reports the host sample rate in Hz.
type SampleRateProvider interface {
	SampleRate() int
}

// FixedRate is a SampleRateProvider with a constant rate.
type FixedRate int

func (r FixedRate) SampleRate() int {
	return int(r)
}
